package handlers

import (
	"strconv"

	"eventhub-backend/internal/services"
	"eventhub-backend/internal/utils"

	"github.com/gofiber/fiber/v2"
)

// ListEvents returns approved, active events
// @Summary List events
// @Tags Events
// @Produce json
// @Success 200 {object} utils.Response
// @Router /events [get]
func (h *Handler) ListEvents(c *fiber.Ctx) error {
	events, err := h.eventSvc.ListEvents()
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, events, len(events), "Events retrieved successfully")
}

// FilterEvents narrows the public catalogue
// @Summary Filter events
// @Tags Events
// @Produce json
// @Param type query string false "Event type"
// @Param minPrice query number false "Minimum ticket price"
// @Param maxPrice query number false "Maximum ticket price"
// @Param startDate query string false "Earliest start (RFC 3339 or YYYY-MM-DD)"
// @Param endDate query string false "Latest end (RFC 3339 or YYYY-MM-DD)"
// @Param search query string false "Text in name or description"
// @Success 200 {object} utils.Response
// @Failure 400 {object} utils.Response
// @Router /events/filter [get]
func (h *Handler) FilterEvents(c *fiber.Ctx) error {
	filter := services.PublicEventFilter{
		Type:   c.Query("type"),
		Search: c.Query("search"),
	}

	for name, dst := range map[string]**float64{"minPrice": &filter.MinPrice, "maxPrice": &filter.MaxPrice} {
		raw := c.Query(name)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return badRequest(c, "Invalid "+name)
		}
		*dst = &v
	}

	var err error
	if filter.StartDate, err = parseTime(c.Query("startDate")); err != nil {
		return badRequest(c, "Invalid startDate")
	}
	if filter.EndDate, err = parseTime(c.Query("endDate")); err != nil {
		return badRequest(c, "Invalid endDate")
	}

	events, err := h.eventSvc.FilterEvents(filter)
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, events, len(events), "Events retrieved successfully")
}

// GetEvent returns a single public event
// @Summary Get event
// @Tags Events
// @Produce json
// @Param eventId path int true "Event ID"
// @Success 200 {object} utils.Response
// @Failure 404 {object} utils.Response
// @Router /events/{eventId} [get]
func (h *Handler) GetEvent(c *fiber.Ctx) error {
	id, ok := paramID(c, "eventId")
	if !ok {
		return badRequest(c, "Invalid event ID")
	}

	event, err := h.eventSvc.GetEvent(id)
	if err != nil {
		return fail(c, err)
	}
	return utils.Success(c, event, "Event retrieved successfully")
}

// ListAvailableVenues returns venues open for booking
// @Summary List available venues
// @Tags Venues
// @Produce json
// @Success 200 {object} utils.Response
// @Router /venues [get]
func (h *Handler) ListAvailableVenues(c *fiber.Ctx) error {
	venues, err := h.eventSvc.ListAvailableVenues()
	if err != nil {
		return fail(c, err)
	}
	return utils.SuccessList(c, venues, len(venues), "Venues retrieved successfully")
}
