package handlers

import (
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/services"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

type RegisterUserRequest struct {
	Name           string `json:"name"`
	Email          string `json:"email" validate:"omitempty,email"`
	Password       string `json:"password"`
	Phone          string `json:"phone"`
	Gender         string `json:"gender"`
	DOB            string `json:"dob"`
	ProfilePicture string `json:"profilePicture"`
}

func (r RegisterUserRequest) input() services.RegisterUserInput {
	return services.RegisterUserInput{
		Name:           r.Name,
		Email:          r.Email,
		Password:       r.Password,
		Phone:          r.Phone,
		Gender:         r.Gender,
		DOB:            r.DOB,
		ProfilePicture: r.ProfilePicture,
	}
}

type UpdateUserProfileRequest struct {
	Name           *string `json:"name"`
	Phone          *string `json:"phone"`
	Gender         *string `json:"gender"`
	DOB            *string `json:"dob"`
	ProfilePicture *string `json:"profilePicture"`
}

type TransferTicketRequest struct {
	TicketID       uint   `json:"ticketId"`
	RecipientEmail string `json:"recipientEmail" validate:"omitempty,email"`
	Reason         string `json:"reason"`
}

type RegisterForEventRequest struct {
	EventID        uint   `json:"eventId"`
	TicketQuantity int    `json:"ticketQuantity"`
	TicketType     string `json:"ticketType"`
}

type SimulatePaymentRequest struct {
	TicketID uint `json:"ticketId"`
}

type BankPaymentRequest struct {
	TicketID          uint   `json:"ticketId"`
	FromAccountNumber string `json:"fromAccountNumber"`
	Remarks           string `json:"remarks"`
}

type FeedbackRequest struct {
	Comments string `json:"comments"`
	Rating   int    `json:"rating" validate:"gte=0,lte=5"`
}

// RegisterUser creates an approved user account
// @Summary Register user
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "User data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /users/register [post]
func (h *Handler) RegisterUser(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.userSvc.Register(req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, user, "User registered successfully", fiber.StatusCreated)
}

// SubmitUserRequest files an account application for admin review
// @Summary Submit user request
// @Tags Users
// @Accept json
// @Produce json
// @Param request body RegisterUserRequest true "User data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /users/request [post]
func (h *Handler) SubmitUserRequest(c *fiber.Ctx) error {
	var req RegisterUserRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	userReq, err := h.userSvc.SubmitUserRequest(req.input())
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, fiber.Map{
		"requestId":     userReq.ID,
		"trackingToken": userReq.TrackingToken,
		"submittedAt":   userReq.CreatedAt,
	}, "User request submitted successfully", fiber.StatusCreated)
}

// UpdateUserProfile changes the caller's profile fields
// @Summary Update user profile
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateUserProfileRequest true "Profile fields"
// @Success 200 {object} utils.Response
// @Router /users/profile [put]
func (h *Handler) UpdateUserProfile(c *fiber.Ctx) error {
	var req UpdateUserProfileRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	user, err := h.userSvc.UpdateProfile(identity(c).UserID, services.UpdateUserProfileInput{
		Name:           req.Name,
		Phone:          req.Phone,
		Gender:         req.Gender,
		DOB:            req.DOB,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, user, "Profile updated successfully")
}

// ListRegisteredEvents returns the events the caller holds tickets for
// @Summary Registered events
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /users/registered-events [get]
func (h *Handler) ListRegisteredEvents(c *fiber.Ctx) error {
	events, err := h.userSvc.ListRegisteredEvents(identity(c).UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, events, len(events), "Registered events retrieved successfully")
}

// @Summary List tickets
// @Tags Users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} utils.Response
// @Router /users/tickets [get]
func (h *Handler) ListTickets(c *fiber.Ctx) error {
	tickets, err := h.userSvc.ListTickets(identity(c).UserID)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, tickets, len(tickets), "Tickets retrieved successfully")
}

// TicketQRCode streams the entry QR code of an owned ticket
// @Summary Ticket QR code
// @Tags Users
// @Produce png
// @Security BearerAuth
// @Param ticketId path int true "Ticket ID"
// @Success 200 {file} binary
// @Failure 404 {object} utils.Response
// @Router /users/tickets/{ticketId}/qrcode [get]
func (h *Handler) TicketQRCode(c *fiber.Ctx) error {
	ticketID, ok := paramID(c, "ticketId")
	if !ok {
		return badRequest(c, "Invalid ticket ID")
	}

	png, err := h.userSvc.TicketQRCode(identity(c).UserID, ticketID)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "image/png")
	return c.Send(png)
}

// @Summary Transfer ticket
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body TransferTicketRequest true "Transfer data"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /users/tickets/transfer [post]
func (h *Handler) TransferTicket(c *fiber.Ctx) error {
	var req TransferTicketRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	ticket, err := h.userSvc.TransferTicket(identity(c).UserID, req.TicketID, req.RecipientEmail, req.Reason)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, ticket, "Ticket transferred successfully")
}

// RegisterForEvent books tickets for the caller
// @Summary Register for event
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body RegisterForEventRequest true "Booking data"
// @Success 201 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /users/events/register [post]
func (h *Handler) RegisterForEvent(c *fiber.Ctx) error {
	var req RegisterForEventRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	ticket, err := h.userSvc.RegisterForEvent(identity(c).UserID, services.RegisterForEventInput{
		EventID:    req.EventID,
		Quantity:   req.TicketQuantity,
		TicketType: req.TicketType,
	})
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, ticket, "Successfully registered for event", fiber.StatusCreated)
}

// @Summary Simulate payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SimulatePaymentRequest true "Ticket"
// @Success 200 {object} utils.Response
// @Router /users/payments/simulate [post]
func (h *Handler) SimulatePayment(c *fiber.Ctx) error {
	var req SimulatePaymentRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	payment, err := h.userSvc.SimulatePayment(identity(c).UserID, req.TicketID)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, payment, "Payment successful")
}

// PayWithBank charges the ticket price through the bank gateway
// @Summary Bank payment
// @Tags Payments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BankPaymentRequest true "Payment data"
// @Success 200 {object} utils.Response
// @Failure 402 {object} utils.Response
// @Router /users/payments/bank [post]
func (h *Handler) PayWithBank(c *fiber.Ctx) error {
	var req BankPaymentRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	payment, err := h.userSvc.PayWithBank(identity(c).UserID, req.TicketID, req.FromAccountNumber, req.Remarks)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, payment, "Payment successful")
}

// @Summary Submit feedback
// @Tags Users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param eventId path int true "Event ID"
// @Param request body FeedbackRequest true "Feedback"
// @Success 201 {object} utils.Response
// @Failure 403 {object} utils.Response
// @Router /users/events/{eventId}/feedback [post]
func (h *Handler) SubmitFeedback(c *fiber.Ctx) error {
	eventID, ok := paramID(c, "eventId")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}
	var req FeedbackRequest
	if err := middleware.ValidateBody(c, &req); err != nil {
		return badRequest(c, err.Error())
	}

	feedback, err := h.userSvc.SubmitFeedback(identity(c).UserID, eventID, req.Comments, req.Rating)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, feedback, "Feedback submitted successfully", fiber.StatusCreated)
}
