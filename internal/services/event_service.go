package services

import (
	"time"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"
)

// EventService serves the public catalogue: approved, active events and
// bookable venues.
type EventService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewEventService(repo *repositories.Repository, cfg *config.Config) *EventService {
	return &EventService{repo: repo, cfg: cfg}
}

type PublicEventFilter struct {
	Type      string
	MinPrice  *float64
	MaxPrice  *float64
	StartDate *time.Time
	EndDate   *time.Time
	Search    string
}

func (s *EventService) ListEvents() ([]models.EventDetails, error) {
	return s.FilterEvents(PublicEventFilter{})
}

func (s *EventService) FilterEvents(f PublicEventFilter) ([]models.EventDetails, error) {
	events, err := s.repo.EventRepo.ListEventDetails(&repositories.EventFilters{
		ApprovalStatus: models.StatusApproved,
		Status:         models.EventStatusActive,
		Type:           f.Type,
		MinPrice:       f.MinPrice,
		MaxPrice:       f.MaxPrice,
		StartsAfter:    f.StartDate,
		EndsBefore:     f.EndDate,
		Search:         f.Search,
	})
	if err != nil {
		return nil, storageError("failed to read events", err)
	}
	return events, nil
}

// GetEvent hides events that are not open to the public.
func (s *EventService) GetEvent(id uint) (*models.EventDetails, error) {
	event, err := s.repo.EventRepo.GetEventDetails(id)
	if err != nil {
		return nil, lookupError("Event not found", err)
	}
	if event.ApprovalStatus != models.StatusApproved || event.Status != models.EventStatusActive {
		return nil, NewServiceError("Event not found", ErrNotFound, nil)
	}
	return event, nil
}

func (s *EventService) ListAvailableVenues() ([]models.Venue, error) {
	venues, err := s.repo.VenueRepo.ListActiveVenues(models.VenueAvailable)
	if err != nil {
		return nil, storageError("failed to read venues", err)
	}
	return venues, nil
}
