package services

import (
	"errors"
	"strings"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/internal/utils"
	"eventhub-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

// Capacity given to venue requests submitted in the short form.
const legacyVenueCapacity = 100

type OrganizerService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewOrganizerService(repo *repositories.Repository, cfg *config.Config) *OrganizerService {
	return &OrganizerService{repo: repo, cfg: cfg}
}

type OrganizerRequestInput struct {
	OrganizerType string
	OrganizerName string
	Email         string
	Phone         string
	Address       string
	Password      string
}

type UpdateOrganizerProfileInput struct {
	OrganizerName *string
	OrganizerType *string
	Phone         *string
	Address       *string
}

// VenueRequestInput accepts either full venue details or the short form of
// a location name plus reason.
type VenueRequestInput struct {
	Name         string
	LocationName string
	Address      string
	Capacity     *int
	Latitude     *float64
	Longitude    *float64
	Reason       string
}

// Tracked request views returned by TrackRequest, tagged with their kind.
type TrackedOrganizerRequest struct {
	Type string `json:"type"`
	*models.OrganizerRequest
}

type TrackedVenueRequest struct {
	Type string `json:"type"`
	*models.VenueRequest
}

type TrackedUserRequest struct {
	Type string `json:"type"`
	*models.UserRequest
}

func (s *OrganizerService) SubmitRequest(in OrganizerRequestInput) (*models.OrganizerRequest, error) {
	if missingField(map[string]string{
		"organizerType": in.OrganizerType, "organizerName": in.OrganizerName, "email": in.Email,
		"phone": in.Phone, "address": in.Address, "password": in.Password,
	}, "organizerType", "organizerName", "email", "phone", "address", "password") != "" {
		return nil, validationError("All fields are required")
	}
	if !contains(models.OrganizerTypes, in.OrganizerType) {
		return nil, validationError("Invalid organizer type")
	}
	email := normalizeEmail(in.Email)

	_, err := s.repo.OrganizerRequestRepo.FindPendingOrganizerRequestByEmail(email)
	if err == nil {
		return nil, duplicateError("You already have a pending request")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storageError("failed to read organizer requests", err)
	}
	if err := ensureOrganizerEmailFree(s.repo, email); err != nil {
		return nil, err
	}

	hash, err := hashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	req := &models.OrganizerRequest{
		OrganizerType: in.OrganizerType,
		OrganizerName: strings.TrimSpace(in.OrganizerName),
		Email:         email,
		Password:      hash,
		Phone:         in.Phone,
		Address:       in.Address,
		Status:        models.StatusPending,
		TrackingToken: utils.NewTrackingToken(),
	}
	if err := s.repo.OrganizerRequestRepo.CreateOrganizerRequest(req); err != nil {
		return nil, storageError("failed to create organizer request", err)
	}

	logger.WithFields(logrus.Fields{"requestId": req.ID}).Info("organizer request submitted")
	return req, nil
}

func ensureOrganizerEmailFree(repo *repositories.Repository, email string) error {
	_, err := repo.OrganizerRepo.GetActiveOrganizerByEmail(email)
	if err == nil {
		return duplicateError("Email already registered")
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return storageError("failed to read organizers", err)
	}
	return nil
}

// TrackRequest looks a tracking token up in the organizer, venue and user
// request queues, in that order.
func (s *OrganizerService) TrackRequest(token string) (interface{}, error) {
	token = strings.ToLower(strings.TrimSpace(token))
	if !utils.IsValidTrackingToken(token) {
		return nil, validationError("Invalid tracking token format. Token should be a 32-character hexadecimal string.")
	}

	orgReq, err := s.repo.OrganizerRequestRepo.GetOrganizerRequestByToken(token)
	if err == nil {
		return &TrackedOrganizerRequest{Type: "organizer", OrganizerRequest: orgReq}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storageError("failed to read organizer requests", err)
	}

	venueReq, err := s.repo.VenueRequestRepo.GetActiveVenueRequestByToken(token)
	if err == nil {
		return &TrackedVenueRequest{Type: "venue", VenueRequest: venueReq}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storageError("failed to read venue requests", err)
	}

	userReq, err := s.repo.UserRequestRepo.GetUserRequestByToken(token)
	if err == nil {
		return &TrackedUserRequest{Type: "user", UserRequest: userReq}, nil
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, storageError("failed to read user requests", err)
	}

	return nil, NewServiceError("Request not found with the provided tracking token", ErrNotFound, nil)
}

func (s *OrganizerService) UpdateProfile(organizerID uint, in UpdateOrganizerProfileInput) (*OrganizerProfile, error) {
	organizer, err := s.repo.OrganizerRepo.GetActiveOrganizerByID(organizerID, false)
	if err != nil {
		return nil, lookupError("Organizer not found", err)
	}

	if in.OrganizerName != nil && strings.TrimSpace(*in.OrganizerName) != "" {
		organizer.OrganizerName = strings.TrimSpace(*in.OrganizerName)
	}
	if in.OrganizerType != nil && *in.OrganizerType != "" {
		if !contains(models.OrganizerTypes, *in.OrganizerType) {
			return nil, validationError("Invalid organizer type")
		}
		organizer.OrganizerType = *in.OrganizerType
	}
	if in.Phone != nil && *in.Phone != "" {
		organizer.Phone = *in.Phone
	}
	if in.Address != nil && *in.Address != "" {
		organizer.Address = *in.Address
	}

	if err := s.repo.OrganizerRepo.UpdateOrganizer(organizer); err != nil {
		return nil, storageError("failed to update profile", err)
	}
	return &OrganizerProfile{Organizer: organizer, Role: models.RoleOrganizer}, nil
}

func (s *OrganizerService) ListEvents(organizerID uint) ([]models.EventDetails, error) {
	events, err := s.repo.EventRepo.ListEventDetails(&repositories.EventFilters{OrganizerID: organizerID})
	if err != nil {
		return nil, storageError("failed to read events", err)
	}
	return events, nil
}

func (s *OrganizerService) GetEvent(organizerID, eventID uint) (*models.EventDetails, error) {
	event, err := s.repo.EventRepo.GetEventDetails(eventID)
	if err != nil {
		return nil, lookupError("Event not found", err)
	}
	if event.OrganizerID != organizerID {
		return nil, NewServiceError("Event not found", ErrNotFound, nil)
	}
	return event, nil
}

// CreateEvent files a new event for admin approval.
func (s *OrganizerService) CreateEvent(organizerID uint, in EventInput) (*models.Event, error) {
	if !in.complete() {
		return nil, validationError("All fields are required")
	}

	event := &models.Event{
		OrganizerID:          organizerID,
		EventName:            strings.TrimSpace(in.EventName),
		Description:          in.Description,
		RulesAndRestrictions: in.RulesAndRestrictions,
		Type:                 in.Type,
		VenueID:              in.VenueID,
		TicketsProvided:      in.TicketsProvided,
		MaxTicketsPerUser:    in.MaxTicketsPerUser,
		TicketPrice:          *in.TicketPrice,
		StartTime:            in.StartTime.UTC(),
		EndTime:              in.EndTime.UTC(),
		Status:               models.EventStatusActive,
		ApprovalStatus:       models.StatusPending,
	}

	if _, err := approvedOrganizer(s.repo, organizerID); err != nil {
		return nil, err
	}
	if err := checkEventRules(s.repo, event); err != nil {
		return nil, err
	}
	if err := s.repo.EventRepo.CreateEvent(event); err != nil {
		return nil, storageError("failed to create event", err)
	}

	logger.WithFields(logrus.Fields{"eventId": event.ID, "organizerId": organizerID}).Info("event submitted for approval")
	return event, nil
}

// UpdateEvent edits an own event while it is still awaiting approval.
func (s *OrganizerService) UpdateEvent(organizerID, eventID uint, patch EventPatch) (*models.Event, error) {
	var event *models.Event
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		if _, err := approvedOrganizer(tx, organizerID); err != nil {
			return err
		}
		var err error
		event, err = tx.EventRepo.GetActiveEventByID(eventID, true)
		if err != nil {
			return lookupError("Event not found", err)
		}
		if event.OrganizerID != organizerID {
			return NewServiceError("Event not found", ErrNotFound, nil)
		}
		if event.ApprovalStatus != models.StatusPending {
			return conflictError("Only pending events can be edited")
		}

		patch.apply(event)
		if err := checkEventRules(tx, event); err != nil {
			return err
		}
		return tx.EventRepo.UpdateEvent(event)
	})
	if err != nil {
		return nil, passThrough("failed to update event", err)
	}
	return event, nil
}

func (s *OrganizerService) ListFeedback(organizerID, eventID uint) ([]models.Feedback, error) {
	event, err := s.repo.EventRepo.GetActiveEventByID(eventID, false)
	if err != nil {
		return nil, lookupError("Event not found", err)
	}
	if event.OrganizerID != organizerID {
		return nil, NewServiceError("Event not found", ErrNotFound, nil)
	}

	feedback, err := s.repo.FeedbackRepo.ListFeedbackByEvent(eventID)
	if err != nil {
		return nil, storageError("failed to read feedback", err)
	}
	return feedback, nil
}

// BookingSummary totals seats and revenue over the organizer's live events.
func (s *OrganizerService) BookingSummary(organizerID uint) (*models.BookingSummary, error) {
	events, err := s.repo.EventRepo.ListActiveEventsByOrganizer(organizerID)
	if err != nil {
		return nil, storageError("failed to read events", err)
	}
	ids := make([]uint, 0, len(events))
	for _, e := range events {
		ids = append(ids, e.ID)
	}

	summary, err := s.repo.TicketRepo.SummarizeByEvents(ids)
	if err != nil {
		return nil, storageError("failed to read tickets", err)
	}
	return summary, nil
}

func (s *OrganizerService) SubmitVenueRequest(organizerID uint, in VenueRequestInput) (*models.VenueRequest, error) {
	if _, err := approvedOrganizer(s.repo, organizerID); err != nil {
		return nil, err
	}

	req := &models.VenueRequest{
		OrganizerID:   organizerID,
		Reason:        strings.TrimSpace(in.Reason),
		Status:        models.StatusPending,
		TrackingToken: utils.NewTrackingToken(),
	}

	switch {
	case in.Name != "" && in.Address != "" && in.Capacity != nil && in.Latitude != nil && in.Longitude != nil:
		if *in.Capacity < 1 {
			return nil, validationError("Capacity must be at least 1")
		}
		req.Name = strings.TrimSpace(in.Name)
		req.Address = in.Address
		req.Capacity = *in.Capacity
		req.Latitude = *in.Latitude
		req.Longitude = *in.Longitude
	case in.LocationName != "" && req.Reason != "":
		req.Name = strings.TrimSpace(in.LocationName)
		req.Address = req.Name
		req.Capacity = legacyVenueCapacity
	default:
		return nil, validationError("All required fields are missing. Please provide either (name, address, capacity, latitude, longitude) or (locationName, reason)")
	}

	if err := s.repo.VenueRequestRepo.CreateVenueRequest(req); err != nil {
		return nil, storageError("failed to create venue request", err)
	}

	logger.WithFields(logrus.Fields{"requestId": req.ID, "organizerId": organizerID}).Info("venue request submitted")
	return req, nil
}

func (s *OrganizerService) ListVenueRequests(organizerID uint) ([]models.VenueRequest, error) {
	reqs, err := s.repo.VenueRequestRepo.ListVenueRequestsByOrganizer(organizerID)
	if err != nil {
		return nil, storageError("failed to read venue requests", err)
	}
	return reqs, nil
}
