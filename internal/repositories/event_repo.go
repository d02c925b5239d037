package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"eventhub-backend/internal/models"

	"gorm.io/gorm"
)

type EventFilters struct {
	OrganizerID    uint
	ApprovalStatus string
	Status         string
	Type           string
	MinPrice       *float64
	MaxPrice       *float64
	StartsAfter    *time.Time
	EndsBefore     *time.Time
	Search         string
}

type eventRepo struct {
	db *gorm.DB
}

func NewEventRepository(db *gorm.DB) EventRepository {
	return &eventRepo{db: db}
}

// CreateEvent creates a new event
func (r *eventRepo) CreateEvent(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}
	if err := r.db.Create(event).Error; err != nil {
		return fmt.Errorf("failed to create event: %w", err)
	}
	return nil
}

// GetActiveEventByID retrieves a non-deleted event by its ID
func (r *eventRepo) GetActiveEventByID(id uint, lock bool) (*models.Event, error) {
	var event models.Event
	if err := forUpdate(r.db, lock).
		Where("id = ? AND deleted = ?", id, false).
		First(&event).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	return &event, nil
}

// GetEventDetails retrieves a non-deleted event joined with venue and organizer
func (r *eventRepo) GetEventDetails(id uint) (*models.EventDetails, error) {
	var details []models.EventDetails
	if err := r.detailsQuery().
		Where("events.id = ? AND events.deleted = ?", id, false).
		Limit(1).
		Scan(&details).Error; err != nil {
		return nil, fmt.Errorf("failed to get event: %w", err)
	}
	if len(details) == 0 {
		return nil, fmt.Errorf("event %d: %w", id, ErrNotFound)
	}
	return &details[0], nil
}

// ListEventDetails retrieves non-deleted events matching the filters
func (r *eventRepo) ListEventDetails(filters *EventFilters) ([]models.EventDetails, error) {
	query := r.detailsQuery().Where("events.deleted = ?", false)

	if filters != nil {
		if filters.OrganizerID != 0 {
			query = query.Where("events.organizer_id = ?", filters.OrganizerID)
		}
		if filters.ApprovalStatus != "" {
			query = query.Where("events.approval_status = ?", filters.ApprovalStatus)
		}
		if filters.Status != "" {
			query = query.Where("events.status = ?", filters.Status)
		}
		if filters.Type != "" {
			query = query.Where("events.type = ?", filters.Type)
		}
		if filters.MinPrice != nil {
			query = query.Where("events.ticket_price >= ?", *filters.MinPrice)
		}
		if filters.MaxPrice != nil {
			query = query.Where("events.ticket_price <= ?", *filters.MaxPrice)
		}
		if filters.StartsAfter != nil {
			query = query.Where("events.start_time >= ?", *filters.StartsAfter)
		}
		if filters.EndsBefore != nil {
			query = query.Where("events.end_time <= ?", *filters.EndsBefore)
		}
		if filters.Search != "" {
			searchTerm := "%" + strings.ToLower(filters.Search) + "%"
			query = query.Where("(LOWER(events.event_name) LIKE ? OR LOWER(events.description) LIKE ?)", searchTerm, searchTerm)
		}
	}

	var details []models.EventDetails
	if err := query.Order("events.start_time ASC, events.id ASC").Scan(&details).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return details, nil
}

// ListEventDetailsByIDs retrieves events by ID regardless of their state;
// tickets keep pointing at events that were cancelled or deleted later.
func (r *eventRepo) ListEventDetailsByIDs(ids []uint) ([]models.EventDetails, error) {
	if len(ids) == 0 {
		return []models.EventDetails{}, nil
	}
	var details []models.EventDetails
	if err := r.detailsQuery().
		Where("events.id IN ?", ids).
		Scan(&details).Error; err != nil {
		return nil, fmt.Errorf("failed to list events: %w", err)
	}
	return details, nil
}

func (r *eventRepo) ListActiveEventsByOrganizer(organizerID uint) ([]models.Event, error) {
	var events []models.Event
	if err := r.db.Where("organizer_id = ? AND deleted = ?", organizerID, false).
		Order("created_at DESC").
		Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizer events: %w", err)
	}
	return events, nil
}

// MaxTicketsProvidedByVenue returns the largest ticket allocation among the
// live events held at the venue, or 0 when there are none.
func (r *eventRepo) MaxTicketsProvidedByVenue(venueID uint) (int64, error) {
	var largest int64
	if err := r.db.Model(&models.Event{}).
		Select("COALESCE(MAX(tickets_provided), 0)").
		Where("venue_id = ? AND deleted = ? AND status = ?", venueID, false, models.EventStatusActive).
		Scan(&largest).Error; err != nil {
		return 0, fmt.Errorf("failed to get venue ticket allocation: %w", err)
	}
	return largest, nil
}

// UpdateEvent saves every column of the event
func (r *eventRepo) UpdateEvent(event *models.Event) error {
	if event == nil {
		return errors.New("event cannot be nil")
	}
	if err := r.db.Save(event).Error; err != nil {
		return fmt.Errorf("failed to update event: %w", err)
	}
	return nil
}

func (r *eventRepo) detailsQuery() *gorm.DB {
	return r.db.Model(&models.Event{}).
		Select(`events.*,
			COALESCE(venues.name, '') AS venue_name,
			COALESCE(venues.address, '') AS venue_address,
			COALESCE(venues.capacity, 0) AS venue_capacity,
			COALESCE(venues.latitude, 0) AS venue_latitude,
			COALESCE(venues.longitude, 0) AS venue_longitude,
			COALESCE(organizers.organizer_name, '') AS organizer_name,
			COALESCE(organizers.organizer_type, '') AS organizer_type`).
		Joins("LEFT JOIN venues ON venues.id = events.venue_id").
		Joins("LEFT JOIN organizers ON organizers.id = events.organizer_id")
}
