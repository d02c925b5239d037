package handlers

import (
	"errors"
	"strconv"
	"time"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/middleware"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/services"
	"eventhub-backend/internal/utils"
	"eventhub-backend/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	authSvc      *services.AuthService
	userSvc      *services.UserService
	eventSvc     *services.EventService
	organizerSvc *services.OrganizerService
	adminSvc     *services.AdminService
	cfg          *config.Config
	limitStorage fiber.Storage
}

func NewHandler(
	authSvc *services.AuthService,
	userSvc *services.UserService,
	eventSvc *services.EventService,
	organizerSvc *services.OrganizerService,
	adminSvc *services.AdminService,
	cfg *config.Config,
	limitStorage fiber.Storage,
) *Handler {
	return &Handler{
		authSvc:      authSvc,
		userSvc:      userSvc,
		eventSvc:     eventSvc,
		organizerSvc: organizerSvc,
		adminSvc:     adminSvc,
		cfg:          cfg,
		limitStorage: limitStorage,
	}
}

func (h *Handler) RegisterRoutes(router fiber.Router) {
	auth := middleware.JWTMiddleware(h.cfg)
	limit := middleware.RateLimit(h.cfg.RateLimitMax, h.cfg.RateLimitWindow, h.limitStorage)

	router.Get("/health", h.Health)

	// Auth
	router.Post("/auth/login", limit, h.Login)
	router.Get("/auth/profile", auth, h.GetProfile)

	// Public catalogue
	events := router.Group("/events")
	{
		events.Get("/", h.ListEvents)
		events.Get("/filter", h.FilterEvents)
		events.Get("/:eventId", h.GetEvent)
	}
	router.Get("/venues", h.ListAvailableVenues)

	// Users
	asUser := guard(auth, middleware.RequireRole(models.RoleUser))
	users := router.Group("/users")
	{
		users.Post("/register", limit, h.RegisterUser)
		users.Post("/request", limit, h.SubmitUserRequest)
		users.Put("/profile", asUser(h.UpdateUserProfile)...)
		users.Get("/registered-events", asUser(h.ListRegisteredEvents)...)
		users.Get("/tickets", asUser(h.ListTickets)...)
		users.Get("/tickets/:ticketId/qrcode", asUser(h.TicketQRCode)...)
		users.Post("/tickets/transfer", asUser(h.TransferTicket)...)
		users.Post("/events/register", asUser(h.RegisterForEvent)...)
		users.Post("/events/:eventId/feedback", asUser(h.SubmitFeedback)...)
		users.Post("/payments/simulate", asUser(h.SimulatePayment)...)
		users.Post("/payments/bank", asUser(h.PayWithBank)...)
	}

	// Organizer intake and tracking
	asOrganizer := guard(auth, middleware.RequireRole(models.RoleOrganizer))
	asAdmin := guard(auth, middleware.RequireRole(models.RoleAdmin))
	organizers := router.Group("/organizers")
	{
		organizers.Get("/", asAdmin(h.AdminListOrganizers)...)
		organizers.Post("/request", limit, h.SubmitOrganizerRequest)
		organizers.Get("/status/:token", limit, h.TrackRequest)
		organizers.Post("/venue-requests", asOrganizer(h.SubmitVenueRequest)...)
		organizers.Get("/venue-requests", asOrganizer(h.ListVenueRequests)...)
	}

	// Organizer workspace
	organizer := router.Group("/organizer")
	{
		organizer.Get("/profile", asOrganizer(h.GetProfile)...)
		organizer.Put("/profile", asOrganizer(h.UpdateOrganizerProfile)...)
		organizer.Get("/events", asOrganizer(h.ListOrganizerEvents)...)
		organizer.Post("/events", asOrganizer(h.CreateEvent)...)
		organizer.Get("/events/bookings/summary", asOrganizer(h.BookingSummary)...)
		organizer.Get("/events/:eventId", asOrganizer(h.GetOrganizerEvent)...)
		organizer.Put("/events/:eventId", asOrganizer(h.UpdateOrganizerEvent)...)
		organizer.Get("/events/:eventId/feedback", asOrganizer(h.ListEventFeedback)...)
	}

	h.registerAdminRoutes(router.Group("/admin", auth, middleware.RequireRole(models.RoleAdmin)))
}

// guard prepends middleware to a single route handler. Group-level
// middleware would also run for sibling paths sharing the prefix.
func guard(mw ...fiber.Handler) func(fiber.Handler) []fiber.Handler {
	return func(h fiber.Handler) []fiber.Handler {
		chain := make([]fiber.Handler, 0, len(mw)+1)
		chain = append(chain, mw...)
		return append(chain, h)
	}
}

// Health reports liveness.
// @Summary Health check
// @Tags System
// @Produce json
// @Success 200 {object} utils.Response
// @Router /health [get]
func (h *Handler) Health(c *fiber.Ctx) error {
	return utils.Success(c, fiber.Map{"status": "ok", "time": time.Now().UTC()}, "Service is healthy")
}

// ErrorHandler handles errors that escape the handlers, including panics
// recovered by the recover middleware.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	message := "Internal server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code = fe.Code
		message = fe.Message
	}

	if code >= fiber.StatusInternalServerError {
		logger.WithFields(logrus.Fields{
			"requestId": middleware.GetRequestID(c),
			"path":      c.Path(),
			"error":     err,
		}).Error("unhandled error")
		message = "Internal server error"
	}

	return utils.Error(c, message, code)
}

var statusByCode = map[services.ErrorCode]int{
	services.ErrValidation:    fiber.StatusBadRequest,
	services.ErrDuplicate:     fiber.StatusBadRequest,
	services.ErrConflict:      fiber.StatusBadRequest,
	services.ErrNotFound:      fiber.StatusNotFound,
	services.ErrUnauthorized:  fiber.StatusUnauthorized,
	services.ErrForbidden:     fiber.StatusForbidden,
	services.ErrPaymentFailed: fiber.StatusPaymentRequired,
}

// fail writes a service error. Storage and unexpected failures are logged
// and answered with a generic message.
func fail(c *fiber.Ctx, err error) error {
	var serr *services.ServiceError
	if errors.As(err, &serr) {
		if status, ok := statusByCode[serr.Code]; ok {
			return utils.Error(c, serr.Message, status)
		}
	}

	logger.WithFields(logrus.Fields{
		"requestId": middleware.GetRequestID(c),
		"method":    c.Method(),
		"path":      c.Path(),
		"error":     err,
	}).Error("request failed")
	return utils.Error(c, "Internal server error", fiber.StatusInternalServerError)
}

func badRequest(c *fiber.Ctx, message string) error {
	return utils.Error(c, message, fiber.StatusBadRequest)
}

// paramID parses a positive numeric path parameter.
func paramID(c *fiber.Ctx, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func identity(c *fiber.Ctx) middleware.Identity {
	id, _ := middleware.CurrentIdentity(c)
	return id
}

// parseTime accepts RFC 3339 timestamps and plain dates.
func parseTime(value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, value); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, errors.New("invalid time")
}
