package handlers

import (
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/services"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RejectionRequest struct {
	RejectionReason string `json:"rejectionReason"`
}

type CommentRequest struct {
	Comment string `json:"comment"`
}

type ReviewVenueRequestBody struct {
	Action  string `json:"action"`
	Comment string `json:"comment"`
}

type VenueBody struct {
	Name               *string  `json:"name"`
	Address            *string  `json:"address"`
	Capacity           *int     `json:"capacity"`
	Latitude           *float64 `json:"latitude"`
	Longitude          *float64 `json:"longitude"`
	AvailabilityStatus *string  `json:"availabilityStatus"`
}

func (h *Handler) registerAdminRoutes(admin fiber.Router) {
	admin.Get("/users", h.AdminListUsers)
	admin.Delete("/users/:userId", h.AdminDeactivateUser)
	admin.Post("/users/:userId/reactivate", h.AdminReactivateUser)
	admin.Post("/users/:userId/approve", h.AdminApproveUser)
	admin.Post("/users/:userId/reject", h.AdminRejectUser)

	admin.Get("/organizers", h.AdminListOrganizers)
	admin.Post("/organizers/:organizerId/approve", h.AdminApproveOrganizer)
	admin.Post("/organizers/:organizerId/reject", h.AdminRejectOrganizer)

	admin.Get("/events", h.AdminListEvents)
	admin.Put("/events/:eventId/approve", h.AdminApproveEvent)
	admin.Put("/events/:eventId/reject", h.AdminRejectEvent)
	admin.Put("/events/:eventId/cancel", h.AdminCancelEvent)
	admin.Put("/events/:eventId", h.AdminUpdateEvent)
	admin.Delete("/events/:eventId", h.AdminDeleteEvent)

	admin.Get("/venues", h.AdminListVenues)
	admin.Post("/venues", h.AdminCreateVenue)
	admin.Put("/venues/:venueId/approve", h.AdminApproveVenue)
	admin.Put("/venues/:venueId/reject", h.AdminRejectVenue)
	admin.Put("/venues/:venueId", h.AdminUpdateVenue)
	admin.Delete("/venues/:venueId", h.AdminDeleteVenue)

	admin.Get("/organizer-requests", h.AdminListOrganizerRequests)
	admin.Post("/organizer-requests/:requestId/approve", h.AdminApproveOrganizerRequest)
	admin.Post("/organizer-requests/:requestId/reject", h.AdminRejectOrganizerRequest)
	admin.Get("/user-requests", h.AdminListUserRequests)
	admin.Post("/user-requests/:requestId/approve", h.AdminApproveUserRequest)
	admin.Post("/user-requests/:requestId/reject", h.AdminRejectUserRequest)
	admin.Get("/venue-requests/pending", h.AdminListPendingVenueRequests)
	admin.Post("/venue-requests/:requestId/review", h.AdminReviewVenueRequest)
}

// Users

// AdminListUsers lists users, optionally by role and including deactivated
// accounts
// @Summary List users
// @Tags Admin
// @Produce json
// @Security BearerAuth
// @Param role query string false "Role filter"
// @Param includeDeleted query bool false "Include deactivated users"
// @Success 200 {object} utils.Response
// @Router /admin/users [get]
func (h *Handler) AdminListUsers(c *fiber.Ctx) error {
	users, err := h.adminSvc.ListUsers(c.Query("role"), c.QueryBool("includeDeleted", false))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, users, len(users), "Users retrieved successfully")
}

// @Summary Deactivate user
// @Tags Admin
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} utils.Response
// @Router /admin/users/{userId} [delete]
func (h *Handler) AdminDeactivateUser(c *fiber.Ctx) error {
	return h.setUserDeleted(c, true, "User deactivated successfully")
}

// @Summary Reactivate user
// @Tags Admin
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} utils.Response
// @Router /admin/users/{userId}/reactivate [post]
func (h *Handler) AdminReactivateUser(c *fiber.Ctx) error {
	return h.setUserDeleted(c, false, "User reactivated successfully")
}

func (h *Handler) setUserDeleted(c *fiber.Ctx, deleted bool, message string) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}
	user, err := h.adminSvc.SetUserDeleted(userID, deleted)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, user, message)
}

// @Summary Approve user
// @Tags Admin
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Success 200 {object} utils.Response
// @Router /admin/users/{userId}/approve [post]
func (h *Handler) AdminApproveUser(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}
	user, err := h.adminSvc.DecideUser(userID, models.StatusApproved, "")
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, user, "User approved successfully")
}

// @Summary Reject user
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param userId path int true "User ID"
// @Param request body RejectionRequest true "Reason"
// @Success 200 {object} utils.Response
// @Router /admin/users/{userId}/reject [post]
func (h *Handler) AdminRejectUser(c *fiber.Ctx) error {
	userID, ok := paramID(c, "userId")
	if !ok {
		return badRequest(c, "Invalid user ID")
	}
	var req RejectionRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	user, err := h.adminSvc.DecideUser(userID, models.StatusRejected, req.RejectionReason)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, user, "User rejected successfully")
}

// Organizers

// @Summary List organizers
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/organizers [get]
func (h *Handler) AdminListOrganizers(c *fiber.Ctx) error {
	organizers, err := h.adminSvc.ListOrganizers()
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, organizers, len(organizers), "Organizers retrieved successfully")
}

// @Summary Approve organizer
// @Tags Admin
// @Security BearerAuth
// @Param organizerId path int true "Organizer ID"
// @Success 200 {object} utils.Response
// @Router /admin/organizers/{organizerId}/approve [post]
func (h *Handler) AdminApproveOrganizer(c *fiber.Ctx) error {
	id, ok := paramID(c, "organizerId")
	if !ok {
		return badRequest(c, "Invalid organizer ID")
	}
	organizer, err := h.adminSvc.DecideOrganizer(id, models.StatusApproved, "")
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, organizer, "Organizer approved successfully")
}

// @Summary Reject organizer
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param organizerId path int true "Organizer ID"
// @Param request body RejectionRequest true "Reason"
// @Success 200 {object} utils.Response
// @Router /admin/organizers/{organizerId}/reject [post]
func (h *Handler) AdminRejectOrganizer(c *fiber.Ctx) error {
	id, ok := paramID(c, "organizerId")
	if !ok {
		return badRequest(c, "Invalid organizer ID")
	}
	var req RejectionRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	organizer, err := h.adminSvc.DecideOrganizer(id, models.StatusRejected, req.RejectionReason)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, organizer, "Organizer rejected successfully")
}

// Events

// @Summary List all events
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/events [get]
func (h *Handler) AdminListEvents(c *fiber.Ctx) error {
	events, err := h.adminSvc.ListEvents()
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, events, len(events), "Events retrieved successfully")
}

// @Summary Approve event
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body CommentRequest false "Optional comment"
// @Success 200 {object} utils.Response
// @Router /admin/events/{eventId}/approve [put]
func (h *Handler) AdminApproveEvent(c *fiber.Ctx) error {
	return h.decideEvent(c, models.StatusApproved, "Event approved successfully")
}

// @Summary Reject event
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body CommentRequest true "Reason"
// @Success 200 {object} utils.Response
// @Router /admin/events/{eventId}/reject [put]
func (h *Handler) AdminRejectEvent(c *fiber.Ctx) error {
	return h.decideEvent(c, models.StatusRejected, "Event rejected successfully")
}

func (h *Handler) decideEvent(c *fiber.Ctx, to, message string) error {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}
	var req CommentRequest
	if len(c.Body()) > 0 {
		if err := middleware.ValidateBody(c, &req); err != nil {
			return badRequest(c, err.Error())
		}
	}
	event, err := h.adminSvc.DecideEvent(eventID, to, req.Comment)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, event, message)
}

// @Summary Update event
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body EventRequest true "Fields to change"
// @Success 200 {object} utils.Response
// @Router /admin/events/{eventId} [put]
func (h *Handler) AdminUpdateEvent(c *fiber.Ctx) error {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}
	var req EventRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	patch, msg := req.patch()
	if msg != "" {
		return badRequest(c, msg)
	}
	event, err := h.adminSvc.UpdateEvent(eventID, patch)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, event, "Event updated successfully")
}

// @Summary Cancel event
// @Tags Admin
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} utils.Response
// @Router /admin/events/{eventId}/cancel [put]
func (h *Handler) AdminCancelEvent(c *fiber.Ctx) error {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}
	event, err := h.adminSvc.CancelEvent(eventID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, event, "Event cancelled successfully")
}

// @Summary Delete event
// @Tags Admin
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} utils.Response
// @Router /admin/events/{eventId} [delete]
func (h *Handler) AdminDeleteEvent(c *fiber.Ctx) error {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}
	if err := h.adminSvc.DeleteEvent(eventID); err != nil {
		return fail(c, err)
	}
	return utils.Success(c, nil, "Event deleted successfully")
}

// Venues

// @Summary List venues
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/venues [get]
func (h *Handler) AdminListVenues(c *fiber.Ctx) error {
	venues, err := h.adminSvc.ListVenues()
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, venues, len(venues), "Venues retrieved successfully")
}

// @Summary Create venue
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param request body VenueBody true "Venue data"
// @Success 201 {object} utils.Response
// @Router /admin/venues [post]
func (h *Handler) AdminCreateVenue(c *fiber.Ctx) error {
	var req VenueBody
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	in := services.VenueInput{Latitude: req.Latitude, Longitude: req.Longitude}
	if req.Name != nil {
		in.Name = *req.Name
	}
	if req.Address != nil {
		in.Address = *req.Address
	}
	if req.Capacity != nil {
		in.Capacity = *req.Capacity
	}

	venue, err := h.adminSvc.CreateVenue(in)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, venue, "Venue created successfully", fiber.StatusCreated)
}

// @Summary Update venue
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param venueId path int true "Venue ID"
// @Param request body VenueBody true "Fields to change"
// @Success 200 {object} utils.Response
// @Router /admin/venues/{venueId} [put]
func (h *Handler) AdminUpdateVenue(c *fiber.Ctx) error {
	venueID, ok := paramID(c, "venueId")
	if !ok {
		return badRequest(c, "Invalid venue ID")
	}
	var req VenueBody
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	venue, err := h.adminSvc.UpdateVenue(venueID, services.VenuePatch{
		Name:               req.Name,
		Address:            req.Address,
		Capacity:           req.Capacity,
		Latitude:           req.Latitude,
		Longitude:          req.Longitude,
		AvailabilityStatus: req.AvailabilityStatus,
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, venue, "Venue updated successfully")
}

// @Summary Delete venue
// @Tags Admin
// @Security BearerAuth
// @Param venueId path int true "Venue ID"
// @Success 200 {object} utils.Response
// @Router /admin/venues/{venueId} [delete]
func (h *Handler) AdminDeleteVenue(c *fiber.Ctx) error {
	venueID, ok := paramID(c, "venueId")
	if !ok {
		return badRequest(c, "Invalid venue ID")
	}
	if err := h.adminSvc.DeleteVenue(venueID); err != nil {
		return fail(c, err)
	}
	return utils.Success(c, nil, "Venue deleted successfully")
}

// @Summary Approve venue
// @Tags Admin
// @Security BearerAuth
// @Param venueId path int true "Venue ID"
// @Success 200 {object} utils.Response
// @Router /admin/venues/{venueId}/approve [put]
func (h *Handler) AdminApproveVenue(c *fiber.Ctx) error {
	return h.decideVenue(c, services.ReviewApprove, "Venue approved successfully")
}

// @Summary Reject venue
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param venueId path int true "Venue ID"
// @Param request body CommentRequest true "Reason"
// @Success 200 {object} utils.Response
// @Router /admin/venues/{venueId}/reject [put]
func (h *Handler) AdminRejectVenue(c *fiber.Ctx) error {
	return h.decideVenue(c, services.ReviewReject, "Venue rejected successfully")
}

func (h *Handler) decideVenue(c *fiber.Ctx, action, message string) error {
	venueID, ok := paramID(c, "venueId")
	if !ok {
		return badRequest(c, "Invalid venue ID")
	}
	var req CommentRequest
	if len(c.Body()) > 0 {
		if err := middleware.ValidateBody(c, &req); err != nil {
			return badRequest(c, err.Error())
		}
	}
	venue, err := h.adminSvc.DecideVenue(venueID, action, req.Comment)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, venue, message)
}

// Request queues

// @Summary List organizer requests
// @Tags Admin
// @Security BearerAuth
// @Param status query string false "Status (default Pending)"
// @Success 200 {object} utils.Response
// @Router /admin/organizer-requests [get]
func (h *Handler) AdminListOrganizerRequests(c *fiber.Ctx) error {
	reqs, err := h.adminSvc.ListOrganizerRequests(c.Query("status"))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, reqs, len(reqs), "Organizer requests retrieved successfully")
}

// AdminApproveOrganizerRequest promotes a request into an organizer account
// @Summary Approve organizer request
// @Tags Admin
// @Security BearerAuth
// @Param requestId path int true "Request ID"
// @Success 200 {object} utils.Response
// @Router /admin/organizer-requests/{requestId}/approve [post]
func (h *Handler) AdminApproveOrganizerRequest(c *fiber.Ctx) error {
	id, ok := paramID(c, "requestId")
	if !ok {
		return badRequest(c, "Invalid request ID")
	}
	organizer, err := h.adminSvc.PromoteOrganizerRequest(id)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, organizer, "Organizer request approved successfully")
}

// @Summary Reject organizer request
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param requestId path int true "Request ID"
// @Param request body RejectionRequest true "Reason"
// @Success 200 {object} utils.Response
// @Router /admin/organizer-requests/{requestId}/reject [post]
func (h *Handler) AdminRejectOrganizerRequest(c *fiber.Ctx) error {
	id, ok := paramID(c, "requestId")
	if !ok {
		return badRequest(c, "Invalid request ID")
	}
	var req RejectionRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	rejected, err := h.adminSvc.RejectOrganizerRequest(id, req.RejectionReason)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, rejected, "Organizer request rejected successfully")
}

// @Summary List user requests
// @Tags Admin
// @Security BearerAuth
// @Param status query string false "Status (default Pending)"
// @Success 200 {object} utils.Response
// @Router /admin/user-requests [get]
func (h *Handler) AdminListUserRequests(c *fiber.Ctx) error {
	reqs, err := h.adminSvc.ListUserRequests(c.Query("status"))
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, reqs, len(reqs), "User requests retrieved successfully")
}

// @Summary Approve user request
// @Tags Admin
// @Security BearerAuth
// @Param requestId path int true "Request ID"
// @Success 200 {object} utils.Response
// @Router /admin/user-requests/{requestId}/approve [post]
func (h *Handler) AdminApproveUserRequest(c *fiber.Ctx) error {
	id, ok := paramID(c, "requestId")
	if !ok {
		return badRequest(c, "Invalid request ID")
	}
	user, err := h.adminSvc.PromoteUserRequest(id)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, user, "User request approved successfully")
}

// @Summary Reject user request
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param requestId path int true "Request ID"
// @Param request body RejectionRequest true "Reason"
// @Success 200 {object} utils.Response
// @Router /admin/user-requests/{requestId}/reject [post]
func (h *Handler) AdminRejectUserRequest(c *fiber.Ctx) error {
	id, ok := paramID(c, "requestId")
	if !ok {
		return badRequest(c, "Invalid request ID")
	}
	var req RejectionRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	rejected, err := h.adminSvc.RejectUserRequest(id, req.RejectionReason)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, rejected, "User request rejected successfully")
}

// @Summary Pending venue requests
// @Tags Admin
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /admin/venue-requests/pending [get]
func (h *Handler) AdminListPendingVenueRequests(c *fiber.Ctx) error {
	reqs, err := h.adminSvc.ListPendingVenueRequests()
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, reqs, len(reqs), "Pending venue requests retrieved successfully")
}

// AdminReviewVenueRequest approves or rejects a venue request
// @Summary Review venue request
// @Tags Admin
// @Accept json
// @Security BearerAuth
// @Param requestId path int true "Request ID"
// @Param request body ReviewVenueRequestBody true "approve or reject, with comment"
// @Success 200 {object} utils.Response
// @Router /admin/venue-requests/{requestId}/review [post]
func (h *Handler) AdminReviewVenueRequest(c *fiber.Ctx) error {
	id, ok := paramID(c, "requestId")
	if !ok {
		return badRequest(c, "Invalid request ID")
	}
	var req ReviewVenueRequestBody
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	review, err := h.adminSvc.ReviewVenueRequest(id, req.Action, req.Comment)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, review, "Venue request reviewed successfully")
}
