package handlers

import (
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/services"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type OrganizerRequestBody struct {
	OrganizerType string `json:"organizerType"`
	OrganizerName string `json:"organizerName"`
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone"`
	Address       string `json:"address"`
	Password      string `json:"password"`
}

type UpdateOrganizerProfileRequest struct {
	OrganizerName *string `json:"organizerName"`
	OrganizerType *string `json:"organizerType"`
	Phone         *string `json:"phone"`
	Address       *string `json:"address"`
}

// EventRequest is shared by event creation and updates. Times are RFC 3339.
type EventRequest struct {
	EventName            *string  `json:"eventName"`
	Description          *string  `json:"description"`
	RulesAndRestrictions *string  `json:"rulesAndRestrictions"`
	Type                 *string  `json:"type"`
	VenueID              *uint    `json:"venueId"`
	TicketsProvided      *int     `json:"ticketsProvided"`
	MaxTicketsPerUser    *int     `json:"maxTicketsPerUser"`
	TicketPrice          *float64 `json:"ticketPrice"`
	StartTime            string   `json:"startTime"`
	EndTime              string   `json:"endTime"`
}

// patch converts the body into a partial update, rejecting malformed times.
func (r EventRequest) patch() (services.EventPatch, string) {
	p := services.EventPatch{
		EventName:            r.EventName,
		Description:          r.Description,
		RulesAndRestrictions: r.RulesAndRestrictions,
		Type:                 r.Type,
		VenueID:              r.VenueID,
		TicketsProvided:      r.TicketsProvided,
		MaxTicketsPerUser:    r.MaxTicketsPerUser,
		TicketPrice:          r.TicketPrice,
	}
	var err error
	if p.StartTime, err = parseTime(r.StartTime); err != nil {
		return p, "Invalid startTime"
	}
	if p.EndTime, err = parseTime(r.EndTime); err != nil {
		return p, "Invalid endTime"
	}
	return p, ""
}

func (r EventRequest) input() (services.EventInput, string) {
	p, msg := r.patch()
	in := services.EventInput{
		TicketPrice: p.TicketPrice,
		StartTime:   p.StartTime,
		EndTime:     p.EndTime,
	}
	if p.EventName != nil {
		in.EventName = *p.EventName
	}
	if p.Description != nil {
		in.Description = *p.Description
	}
	if p.RulesAndRestrictions != nil {
		in.RulesAndRestrictions = *p.RulesAndRestrictions
	}
	if p.Type != nil {
		in.Type = *p.Type
	}
	if p.VenueID != nil {
		in.VenueID = *p.VenueID
	}
	if p.TicketsProvided != nil {
		in.TicketsProvided = *p.TicketsProvided
	}
	if p.MaxTicketsPerUser != nil {
		in.MaxTicketsPerUser = *p.MaxTicketsPerUser
	}
	return in, msg
}

type VenueRequestBody struct {
	Name         string   `json:"name"`
	LocationName string   `json:"locationName"`
	Address      string   `json:"address"`
	Capacity     *int     `json:"capacity"`
	Latitude     *float64 `json:"latitude"`
	Longitude    *float64 `json:"longitude"`
	Reason       string   `json:"reason"`
}

// SubmitOrganizerRequest files an organizer application
// @Summary Submit organizer request
// @Tags Organizers
// @Accept json
// @Produce json
// @Param request body OrganizerRequestBody true "Organizer data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /organizers/request [post]
func (h *Handler) SubmitOrganizerRequest(c *fiber.Ctx) error {
	var req OrganizerRequestBody
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	orgReq, err := h.organizerSvc.SubmitRequest(services.OrganizerRequestInput{
		OrganizerType: req.OrganizerType,
		OrganizerName: req.OrganizerName,
		Email:         req.Email,
		Phone:         req.Phone,
		Address:       req.Address,
		Password:      req.Password,
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{
		"requestId":     orgReq.ID,
		"trackingToken": orgReq.TrackingToken,
		"submittedAt":   orgReq.CreatedAt,
	}, "Organizer request submitted successfully", fiber.StatusCreated)
}

// TrackRequest looks up any request by its tracking token
// @Summary Track request
// @Tags Organizers
// @Produce json
// @Param token path string true "32-character tracking token"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /organizers/status/{token} [get]
func (h *Handler) TrackRequest(c *fiber.Ctx) error {
	found, err := h.organizerSvc.TrackRequest(c.Params("token"))
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, found, "Request found")
}

// @Summary Update organizer profile
// @Tags Organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateOrganizerProfileRequest true "Profile fields"
// @Success 200 {object} utils.Response
// @Router /organizer/profile [put]
func (h *Handler) UpdateOrganizerProfile(c *fiber.Ctx) error {
	var req UpdateOrganizerProfileRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	profile, err := h.organizerSvc.UpdateProfile(identity(c).UserID, services.UpdateOrganizerProfileInput{
		OrganizerName: req.OrganizerName,
		OrganizerType: req.OrganizerType,
		Phone:         req.Phone,
		Address:       req.Address,
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, profile, "Profile updated successfully")
}

// @Summary List own events
// @Tags Organizer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /organizer/events [get]
func (h *Handler) ListOrganizerEvents(c *fiber.Ctx) error {
	events, err := h.organizerSvc.ListEvents(identity(c).UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, events, len(events), "Events retrieved successfully")
}

// @Summary Get own event
// @Tags Organizer
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /organizer/events/{eventId} [get]
func (h *Handler) GetOrganizerEvent(c *fiber.Ctx) error {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	event, err := h.organizerSvc.GetEvent(identity(c).UserID, eventID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, event, "Event retrieved successfully")
}

// CreateEvent submits an event for admin approval
// @Summary Create event
// @Tags Organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body EventRequest true "Event data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /organizer/events [post]
func (h *Handler) CreateEvent(c *fiber.Ctx) error {
	var req EventRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}
	in, msg := req.input()
	if msg != "" {
		return badRequest(c, msg)
	}

	event, err := h.organizerSvc.CreateEvent(identity(c).UserID, in)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, event, "Event created successfully and is pending approval", fiber.StatusCreated)
}

// @Summary Update pending event
// @Tags Organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body EventRequest true "Fields to change"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /organizer/events/{eventId} [put]
func (h *Handler) UpdateOrganizerEvent(c *fiber.Ctx) error {
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

	event, err := h.organizerSvc.UpdateEvent(identity(c).UserID, eventID, patch)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, event, "Event updated successfully")
}

// @Summary Event feedback
// @Tags Organizer
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Success 200 {object} utils.Response
// @Router /organizer/events/{eventId}/feedback [get]
func (h *Handler) ListEventFeedback(c *fiber.Ctx) error {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	feedback, err := h.organizerSvc.ListFeedback(identity(c).UserID, eventID)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, feedback, len(feedback), "Feedback retrieved successfully")
}

// BookingSummary totals tickets and revenue across the organizer's events
// @Summary Booking summary
// @Tags Organizer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /organizer/events/bookings/summary [get]
func (h *Handler) BookingSummary(c *fiber.Ctx) error {
	summary, err := h.organizerSvc.BookingSummary(identity(c).UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, summary, "Booking summary retrieved successfully")
}

// @Summary Submit venue request
// @Tags Organizer
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body VenueRequestBody true "Venue data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /organizers/venue-requests [post]
func (h *Handler) SubmitVenueRequest(c *fiber.Ctx) error {
	var req VenueRequestBody
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	venueReq, err := h.organizerSvc.SubmitVenueRequest(identity(c).UserID, services.VenueRequestInput{
		Name:         req.Name,
		LocationName: req.LocationName,
		Address:      req.Address,
		Capacity:     req.Capacity,
		Latitude:     req.Latitude,
		Longitude:    req.Longitude,
		Reason:       req.Reason,
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, venueReq, "Venue request submitted successfully", fiber.StatusCreated)
}

// @Summary List own venue requests
// @Tags Organizer
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /organizers/venue-requests [get]
func (h *Handler) ListVenueRequests(c *fiber.Ctx) error {
	reqs, err := h.organizerSvc.ListVenueRequests(identity(c).UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, reqs, len(reqs), "Venue requests retrieved successfully")
}
