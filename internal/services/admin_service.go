package services

import (
	"fmt"
	"strings"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/queue"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

const (
	ReviewApprove = "approve"
	ReviewReject  = "reject"
)

type AdminService struct {
	repo *repositories.Repository
	cfg  *config.Config
	pub  queue.Publisher
}

func NewAdminService(repo *repositories.Repository, cfg *config.Config, pub queue.Publisher) *AdminService {
	return &AdminService{repo: repo, cfg: cfg, pub: pub}
}

type VenueInput struct {
	Name      string
	Address   string
	Capacity  int
	Latitude  *float64
	Longitude *float64
}

type VenuePatch struct {
	Name               *string
	Address            *string
	Capacity           *int
	Latitude           *float64
	Longitude          *float64
	AvailabilityStatus *string
}

func logDecision(kind recordKind, id uint, status string) {
	logger.WithFields(logrus.Fields{"kind": string(kind), "id": id, "status": status}).Info("approval decision recorded")
}

// Users

func (s *AdminService) ListUsers(role string, includeDeleted bool) ([]models.User, error) {
	users, err := s.repo.UserRepo.ListUsers(&repositories.UserFilters{Role: role, IncludeDeleted: includeDeleted})
	if err != nil {
		return nil, storageError("failed to read users", err)
	}
	return users, nil
}

// SetUserDeleted deactivates or reactivates a user account.
func (s *AdminService) SetUserDeleted(userID uint, deleted bool) (*models.User, error) {
	var user *models.User
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		user, err = tx.UserRepo.GetUserByID(userID, true)
		if err != nil {
			return lookupError("User not found", err)
		}
		user.Deleted = deleted
		return tx.UserRepo.UpdateUser(user)
	})
	if err != nil {
		return nil, passThrough("failed to update user", err)
	}
	logger.WithFields(logrus.Fields{"userId": userID, "deleted": deleted}).Info("user activation changed")
	return user, nil
}

func (s *AdminService) DecideUser(userID uint, to, reason string) (*models.User, error) {
	var user *models.User
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		user, err = tx.UserRepo.GetUserByID(userID, true)
		if err != nil || user.Deleted {
			return lookupError("User not found", notFoundIfNil(err))
		}
		if err := decide(kindUser, user, to, reason); err != nil {
			return err
		}
		return tx.UserRepo.UpdateUser(user)
	})
	if err != nil {
		return nil, passThrough("failed to update user", err)
	}
	logDecision(kindUser, user.ID, to)
	return user, nil
}

// Organizers

func (s *AdminService) ListOrganizers() ([]models.Organizer, error) {
	organizers, err := s.repo.OrganizerRepo.ListActiveOrganizers()
	if err != nil {
		return nil, storageError("failed to read organizers", err)
	}
	return organizers, nil
}

func (s *AdminService) DecideOrganizer(organizerID uint, to, reason string) (*models.Organizer, error) {
	var organizer *models.Organizer
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		organizer, err = tx.OrganizerRepo.GetActiveOrganizerByID(organizerID, true)
		if err != nil {
			return lookupError("Organizer not found", err)
		}
		if err := decide(kindOrganizer, organizer, to, reason); err != nil {
			return err
		}
		return tx.OrganizerRepo.UpdateOrganizer(organizer)
	})
	if err != nil {
		return nil, passThrough("failed to update organizer", err)
	}
	logDecision(kindOrganizer, organizer.ID, to)
	return organizer, nil
}

// Events

func (s *AdminService) ListEvents() ([]models.EventDetails, error) {
	events, err := s.repo.EventRepo.ListEventDetails(nil)
	if err != nil {
		return nil, storageError("failed to read events", err)
	}
	return events, nil
}

// DecideEvent approves or rejects a pending event. A rejection needs a
// comment; an approval may carry one.
func (s *AdminService) DecideEvent(eventID uint, to, comment string) (*models.Event, error) {
	if to == models.StatusRejected && strings.TrimSpace(comment) == "" {
		return nil, validationError("Rejection comment is required")
	}

	var event *models.Event
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		event, err = tx.EventRepo.GetActiveEventByID(eventID, true)
		if err != nil {
			return lookupError("Event not found", err)
		}
		if err := decide(kindEvent, event, to, comment); err != nil {
			return err
		}
		return tx.EventRepo.UpdateEvent(event)
	})
	if err != nil {
		return nil, passThrough("failed to update event", err)
	}

	logDecision(kindEvent, event.ID, to)
	publish(s.pub, queue.TypeEventReviewed, queue.EventReviewedEvent{
		EventID:     event.ID,
		OrganizerID: event.OrganizerID,
		Status:      to,
		Comment:     strings.TrimSpace(comment),
	})
	return event, nil
}

func (s *AdminService) UpdateEvent(eventID uint, patch EventPatch) (*models.Event, error) {
	var event *models.Event
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		event, err = tx.EventRepo.GetActiveEventByID(eventID, true)
		if err != nil {
			return lookupError("Event not found", err)
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

func (s *AdminService) CancelEvent(eventID uint) (*models.Event, error) {
	var event *models.Event
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		event, err = tx.EventRepo.GetActiveEventByID(eventID, true)
		if err != nil {
			return lookupError("Event not found", err)
		}
		if event.Status == models.EventStatusCancelled {
			return conflictError("Event is already cancelled")
		}
		event.Status = models.EventStatusCancelled
		return tx.EventRepo.UpdateEvent(event)
	})
	if err != nil {
		return nil, passThrough("failed to cancel event", err)
	}
	logger.WithFields(logrus.Fields{"eventId": eventID}).Info("event cancelled")
	return event, nil
}

func (s *AdminService) DeleteEvent(eventID uint) error {
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		event, err := tx.EventRepo.GetActiveEventByID(eventID, true)
		if err != nil {
			return lookupError("Event not found", err)
		}
		event.Deleted = true
		return tx.EventRepo.UpdateEvent(event)
	})
	if err != nil {
		return passThrough("failed to delete event", err)
	}
	logger.WithFields(logrus.Fields{"eventId": eventID}).Info("event deleted")
	return nil
}

// Venues

func (s *AdminService) ListVenues() ([]models.Venue, error) {
	venues, err := s.repo.VenueRepo.ListActiveVenues("")
	if err != nil {
		return nil, storageError("failed to read venues", err)
	}
	return venues, nil
}

func (s *AdminService) CreateVenue(in VenueInput) (*models.Venue, error) {
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Address) == "" || in.Capacity == 0 ||
		in.Latitude == nil || in.Longitude == nil {
		return nil, validationError("All fields are required")
	}
	if in.Capacity < 1 {
		return nil, validationError("Capacity must be at least 1")
	}

	venue := &models.Venue{
		Name:               strings.TrimSpace(in.Name),
		Address:            in.Address,
		Capacity:           in.Capacity,
		Latitude:           *in.Latitude,
		Longitude:          *in.Longitude,
		AvailabilityStatus: models.VenueAvailable,
	}
	if err := s.repo.VenueRepo.CreateVenue(venue); err != nil {
		return nil, storageError("failed to create venue", err)
	}
	return venue, nil
}

func (s *AdminService) UpdateVenue(venueID uint, patch VenuePatch) (*models.Venue, error) {
	if patch.AvailabilityStatus != nil && *patch.AvailabilityStatus != "" &&
		!contains(models.VenueAvailabilityStatuses, *patch.AvailabilityStatus) {
		return nil, validationError("Invalid availability status")
	}
	if patch.Capacity != nil && *patch.Capacity < 1 {
		return nil, validationError("Capacity must be at least 1")
	}

	var venue *models.Venue
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		venue, err = tx.VenueRepo.GetActiveVenueByID(venueID, true)
		if err != nil {
			return lookupError("Venue not found", err)
		}
		if patch.Name != nil && *patch.Name != "" {
			venue.Name = *patch.Name
		}
		if patch.Address != nil && *patch.Address != "" {
			venue.Address = *patch.Address
		}
		if patch.Capacity != nil && *patch.Capacity != venue.Capacity {
			allocated, err := tx.EventRepo.MaxTicketsProvidedByVenue(venue.ID)
			if err != nil {
				return err
			}
			if int64(*patch.Capacity) < allocated {
				return validationError(fmt.Sprintf("Capacity cannot be less than the %d tickets provided by an event at this venue", allocated))
			}
			venue.Capacity = *patch.Capacity
		}
		if patch.Latitude != nil {
			venue.Latitude = *patch.Latitude
		}
		if patch.Longitude != nil {
			venue.Longitude = *patch.Longitude
		}
		if patch.AvailabilityStatus != nil && *patch.AvailabilityStatus != "" {
			venue.AvailabilityStatus = *patch.AvailabilityStatus
		}
		return tx.VenueRepo.UpdateVenue(venue)
	})
	if err != nil {
		return nil, passThrough("failed to update venue", err)
	}
	return venue, nil
}

func (s *AdminService) DeleteVenue(venueID uint) error {
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		venue, err := tx.VenueRepo.GetActiveVenueByID(venueID, true)
		if err != nil {
			return lookupError("Venue not found", err)
		}
		venue.Deleted = true
		return tx.VenueRepo.UpdateVenue(venue)
	})
	if err != nil {
		return passThrough("failed to delete venue", err)
	}
	return nil
}

// DecideVenue makes a venue Available (approve) or Unavailable (reject).
func (s *AdminService) DecideVenue(venueID uint, action, comment string) (*models.Venue, error) {
	to := models.VenueAvailable
	if action == ReviewReject {
		to = models.VenueUnavailable
	}

	var venue *models.Venue
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		venue, err = tx.VenueRepo.GetActiveVenueByID(venueID, true)
		if err != nil {
			return lookupError("Venue not found", err)
		}
		if err := decide(kindVenue, venue, to, comment); err != nil {
			return err
		}
		return tx.VenueRepo.UpdateVenue(venue)
	})
	if err != nil {
		return nil, passThrough("failed to update venue", err)
	}
	logDecision(kindVenue, venue.ID, to)
	return venue, nil
}

// Request queues

func (s *AdminService) ListOrganizerRequests(status string) ([]models.OrganizerRequest, error) {
	if status == "" {
		status = models.StatusPending
	}
	reqs, err := s.repo.OrganizerRequestRepo.ListOrganizerRequestsByStatus(status)
	if err != nil {
		return nil, storageError("failed to read organizer requests", err)
	}
	return reqs, nil
}

func (s *AdminService) ListUserRequests(status string) ([]models.UserRequest, error) {
	if status == "" {
		status = models.StatusPending
	}
	reqs, err := s.repo.UserRequestRepo.ListUserRequestsByStatus(status)
	if err != nil {
		return nil, storageError("failed to read user requests", err)
	}
	return reqs, nil
}

func (s *AdminService) ListPendingVenueRequests() ([]models.VenueRequest, error) {
	reqs, err := s.repo.VenueRequestRepo.ListVenueRequestsByStatus(models.StatusPending)
	if err != nil {
		return nil, storageError("failed to read venue requests", err)
	}
	return reqs, nil
}

// PromoteOrganizerRequest turns a pending organizer request into an Approved
// organizer. The request and the new organizer are written in one
// transaction; the organizer's unique request ID stops a second promotion.
func (s *AdminService) PromoteOrganizerRequest(requestID uint) (*models.Organizer, error) {
	var organizer *models.Organizer
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		req, err := tx.OrganizerRequestRepo.GetOrganizerRequestByID(requestID, true)
		if err != nil {
			return lookupError("Request not found", err)
		}
		if err := decide(kindOrganizerRequest, req, models.StatusApproved, ""); err != nil {
			return err
		}
		if err := ensureOrganizerEmailFree(tx, req.Email); err != nil {
			return err
		}

		organizer = &models.Organizer{
			OrganizerType: req.OrganizerType,
			OrganizerName: req.OrganizerName,
			Email:         req.Email,
			Password:      req.Password,
			Phone:         req.Phone,
			Address:       req.Address,
			Status:        models.StatusApproved,
			RequestID:     &req.ID,
		}
		if err := tx.OrganizerRepo.CreateOrganizer(organizer); err != nil {
			return err
		}
		return tx.OrganizerRequestRepo.UpdateOrganizerRequest(req)
	})
	if err != nil {
		return nil, passThrough("failed to approve organizer request", err)
	}

	logger.WithFields(logrus.Fields{"requestId": requestID, "organizerId": organizer.ID}).Info("organizer request promoted")
	publish(s.pub, queue.TypeOrganizerPromoted, queue.OrganizerPromotedEvent{
		RequestID:     requestID,
		OrganizerID:   organizer.ID,
		OrganizerName: organizer.OrganizerName,
		Email:         organizer.Email,
	})
	return organizer, nil
}

func (s *AdminService) RejectOrganizerRequest(requestID uint, reason string) (*models.OrganizerRequest, error) {
	var req *models.OrganizerRequest
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		req, err = tx.OrganizerRequestRepo.GetOrganizerRequestByID(requestID, true)
		if err != nil {
			return lookupError("Request not found", err)
		}
		if err := decide(kindOrganizerRequest, req, models.StatusRejected, reason); err != nil {
			return err
		}
		return tx.OrganizerRequestRepo.UpdateOrganizerRequest(req)
	})
	if err != nil {
		return nil, passThrough("failed to reject organizer request", err)
	}

	logDecision(kindOrganizerRequest, req.ID, models.StatusRejected)
	publish(s.pub, queue.TypeRequestRejected, queue.RequestRejectedEvent{
		Kind:      "organizer",
		RequestID: req.ID,
		Email:     req.Email,
		Reason:    req.RejectionReason,
	})
	return req, nil
}

// PromoteUserRequest creates an Approved user from a pending user request.
func (s *AdminService) PromoteUserRequest(requestID uint) (*models.User, error) {
	var user *models.User
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		req, err := tx.UserRequestRepo.GetUserRequestByID(requestID, true)
		if err != nil {
			return lookupError("Request not found", err)
		}
		if err := decide(kindUserRequest, req, models.StatusApproved, ""); err != nil {
			return err
		}
		if err := ensureUserEmailFree(tx, req.Email); err != nil {
			return err
		}

		user = &models.User{
			Name:           req.Name,
			Email:          req.Email,
			Password:       req.Password,
			Phone:          req.Phone,
			Gender:         req.Gender,
			DOB:            req.DOB,
			ProfilePicture: req.ProfilePicture,
			Role:           models.RoleUser,
			ApprovalStatus: models.StatusApproved,
			RequestID:      &req.ID,
		}
		if err := tx.UserRepo.CreateUser(user); err != nil {
			return err
		}
		return tx.UserRequestRepo.UpdateUserRequest(req)
	})
	if err != nil {
		return nil, passThrough("failed to approve user request", err)
	}

	logger.WithFields(logrus.Fields{"requestId": requestID, "userId": user.ID}).Info("user request promoted")
	publish(s.pub, queue.TypeUserPromoted, queue.UserPromotedEvent{
		RequestID: requestID,
		UserID:    user.ID,
		Email:     user.Email,
	})
	return user, nil
}

func (s *AdminService) RejectUserRequest(requestID uint, reason string) (*models.UserRequest, error) {
	var req *models.UserRequest
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		var err error
		req, err = tx.UserRequestRepo.GetUserRequestByID(requestID, true)
		if err != nil {
			return lookupError("Request not found", err)
		}
		if err := decide(kindUserRequest, req, models.StatusRejected, reason); err != nil {
			return err
		}
		return tx.UserRequestRepo.UpdateUserRequest(req)
	})
	if err != nil {
		return nil, passThrough("failed to reject user request", err)
	}

	logDecision(kindUserRequest, req.ID, models.StatusRejected)
	publish(s.pub, queue.TypeRequestRejected, queue.RequestRejectedEvent{
		Kind:      "user",
		RequestID: req.ID,
		Email:     req.Email,
		Reason:    req.RejectionReason,
	})
	return req, nil
}

// VenueReview is the outcome of reviewing a venue request. Venue is set
// only when the request was approved.
type VenueReview struct {
	Request *models.VenueRequest `json:"request"`
	Venue   *models.Venue        `json:"venue,omitempty"`
}

// ReviewVenueRequest approves a pending venue request, creating the venue,
// or rejects it with a comment.
func (s *AdminService) ReviewVenueRequest(requestID uint, action, comment string) (*VenueReview, error) {
	if action != ReviewApprove && action != ReviewReject {
		return nil, validationError(`Action must be "approve" or "reject"`)
	}
	if action == ReviewReject && strings.TrimSpace(comment) == "" {
		return nil, validationError("Rejection comment is required")
	}

	review := &VenueReview{}
	err := s.repo.Transaction(func(tx *repositories.Repository) error {
		req, err := tx.VenueRequestRepo.GetActiveVenueRequestByID(requestID, true)
		if err != nil {
			return lookupError("Request not found", err)
		}
		review.Request = req

		if action == ReviewReject {
			if err := decide(kindVenueRequest, req, models.StatusRejected, comment); err != nil {
				return err
			}
			return tx.VenueRequestRepo.UpdateVenueRequest(req)
		}

		if err := decide(kindVenueRequest, req, models.StatusApproved, comment); err != nil {
			return err
		}
		venue := &models.Venue{
			Name:               req.Name,
			Address:            req.Address,
			Capacity:           req.Capacity,
			Latitude:           req.Latitude,
			Longitude:          req.Longitude,
			AvailabilityStatus: models.VenueAvailable,
			AdminComment:       req.AdminComment,
			RequestID:          &req.ID,
		}
		if err := tx.VenueRepo.CreateVenue(venue); err != nil {
			return err
		}
		review.Venue = venue
		return tx.VenueRequestRepo.UpdateVenueRequest(req)
	})
	if err != nil {
		return nil, passThrough("failed to review venue request", err)
	}

	event := queue.VenueReviewedEvent{
		RequestID:   review.Request.ID,
		OrganizerID: review.Request.OrganizerID,
		Status:      review.Request.Status,
		Comment:     review.Request.AdminComment,
	}
	if review.Venue != nil {
		event.VenueID = &review.Venue.ID
	}
	logDecision(kindVenueRequest, review.Request.ID, review.Request.Status)
	publish(s.pub, queue.TypeVenueReviewed, event)
	return review, nil
}

// notFoundIfNil supplies ErrNotFound for records that exist but are hidden.
func notFoundIfNil(err error) error {
	if err == nil {
		return repositories.ErrNotFound
	}
	return err
}
