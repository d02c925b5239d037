package services

import (
	"fmt"
	"strings"
	"time"

	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"
)

// EventInput carries the fields of a new event.
type EventInput struct {
	EventName            string
	Description          string
	RulesAndRestrictions string
	Type                 string
	VenueID              uint
	TicketsProvided      int
	MaxTicketsPerUser    int
	TicketPrice          *float64
	StartTime            *time.Time
	EndTime              *time.Time
}

// EventPatch is a partial update; nil fields are left untouched.
type EventPatch struct {
	EventName            *string
	Description          *string
	RulesAndRestrictions *string
	Type                 *string
	VenueID              *uint
	TicketsProvided      *int
	MaxTicketsPerUser    *int
	TicketPrice          *float64
	StartTime            *time.Time
	EndTime              *time.Time
}

func (in EventInput) complete() bool {
	return strings.TrimSpace(in.EventName) != "" &&
		strings.TrimSpace(in.Description) != "" &&
		strings.TrimSpace(in.RulesAndRestrictions) != "" &&
		strings.TrimSpace(in.Type) != "" &&
		in.VenueID != 0 &&
		in.TicketsProvided != 0 &&
		in.MaxTicketsPerUser != 0 &&
		in.TicketPrice != nil &&
		in.StartTime != nil &&
		in.EndTime != nil
}

func (p EventPatch) apply(e *models.Event) {
	if p.EventName != nil && *p.EventName != "" {
		e.EventName = *p.EventName
	}
	if p.Description != nil && *p.Description != "" {
		e.Description = *p.Description
	}
	if p.RulesAndRestrictions != nil && *p.RulesAndRestrictions != "" {
		e.RulesAndRestrictions = *p.RulesAndRestrictions
	}
	if p.Type != nil && *p.Type != "" {
		e.Type = *p.Type
	}
	if p.VenueID != nil && *p.VenueID != 0 {
		e.VenueID = *p.VenueID
	}
	if p.TicketsProvided != nil {
		e.TicketsProvided = *p.TicketsProvided
	}
	if p.MaxTicketsPerUser != nil {
		e.MaxTicketsPerUser = *p.MaxTicketsPerUser
	}
	if p.TicketPrice != nil {
		e.TicketPrice = *p.TicketPrice
	}
	if p.StartTime != nil {
		e.StartTime = *p.StartTime
	}
	if p.EndTime != nil {
		e.EndTime = *p.EndTime
	}
}

// checkEventRules validates an event against its venue and, for existing
// events, against the seats already sold.
func checkEventRules(repo *repositories.Repository, e *models.Event) error {
	if !contains(models.EventTypes, e.Type) {
		return validationError("Invalid event type")
	}
	if e.TicketsProvided < 1 || e.MaxTicketsPerUser < 1 {
		return validationError("Tickets provided and maximum tickets per user must be at least 1")
	}
	if e.TicketPrice < 0 {
		return validationError("Ticket price cannot be negative")
	}
	if !e.EndTime.After(e.StartTime) {
		return validationError("End time must be after start time")
	}

	venue, err := repo.VenueRepo.GetActiveVenueByID(e.VenueID, false)
	if err != nil {
		return lookupError("Venue not found", err)
	}
	if e.TicketsProvided > venue.Capacity {
		return validationError("Tickets provided cannot exceed venue capacity")
	}
	if e.MaxTicketsPerUser > e.TicketsProvided {
		return validationError("Maximum tickets per user cannot exceed tickets provided")
	}

	if e.ID != 0 {
		sold, err := repo.TicketRepo.SumQuantityByEvent(e.ID)
		if err != nil {
			return storageError("failed to read tickets", err)
		}
		if int64(e.TicketsProvided) < sold {
			return validationError(fmt.Sprintf("Tickets provided cannot be less than the %d tickets already sold", sold))
		}
		largest, err := repo.TicketRepo.MaxQuantityPerUserByEvent(e.ID)
		if err != nil {
			return storageError("failed to read tickets", err)
		}
		if int64(e.MaxTicketsPerUser) < largest {
			return validationError(fmt.Sprintf("Maximum tickets per user cannot be less than the %d tickets a user already holds", largest))
		}
	}
	return nil
}
