package repositories

import (
	"fmt"

	"eventhub-backend/internal/models"

	"gorm.io/gorm"
)

// Organizer requests

type organizerRequestRepo struct {
	db *gorm.DB
}

func NewOrganizerRequestRepository(db *gorm.DB) OrganizerRequestRepository {
	return &organizerRequestRepo{db: db}
}

func (r *organizerRequestRepo) CreateOrganizerRequest(req *models.OrganizerRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return fmt.Errorf("failed to create organizer request: %w", err)
	}
	return nil
}

func (r *organizerRequestRepo) GetOrganizerRequestByID(id uint, lock bool) (*models.OrganizerRequest, error) {
	var req models.OrganizerRequest
	if err := forUpdate(r.db, lock).Where("id = ?", id).First(&req).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("organizer request %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get organizer request: %w", err)
	}
	return &req, nil
}

func (r *organizerRequestRepo) GetOrganizerRequestByToken(token string) (*models.OrganizerRequest, error) {
	var req models.OrganizerRequest
	if err := r.db.Where("tracking_token = ?", token).First(&req).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("organizer request with token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get organizer request: %w", err)
	}
	return &req, nil
}

func (r *organizerRequestRepo) FindPendingOrganizerRequestByEmail(email string) (*models.OrganizerRequest, error) {
	var req models.OrganizerRequest
	if err := r.db.Where("email = ? AND status = ?", email, models.StatusPending).First(&req).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("pending organizer request %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get organizer request: %w", err)
	}
	return &req, nil
}

func (r *organizerRequestRepo) ListOrganizerRequestsByStatus(status string) ([]models.OrganizerRequest, error) {
	var reqs []models.OrganizerRequest
	if err := r.db.Where("status = ?", status).Order("id ASC").Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizer requests: %w", err)
	}
	return reqs, nil
}

func (r *organizerRequestRepo) UpdateOrganizerRequest(req *models.OrganizerRequest) error {
	if err := r.db.Save(req).Error; err != nil {
		return fmt.Errorf("failed to update organizer request: %w", err)
	}
	return nil
}

// User requests

type userRequestRepo struct {
	db *gorm.DB
}

func NewUserRequestRepository(db *gorm.DB) UserRequestRepository {
	return &userRequestRepo{db: db}
}

func (r *userRequestRepo) CreateUserRequest(req *models.UserRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return fmt.Errorf("failed to create user request: %w", err)
	}
	return nil
}

func (r *userRequestRepo) GetUserRequestByID(id uint, lock bool) (*models.UserRequest, error) {
	var req models.UserRequest
	if err := forUpdate(r.db, lock).Where("id = ?", id).First(&req).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user request %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user request: %w", err)
	}
	return &req, nil
}

func (r *userRequestRepo) GetUserRequestByToken(token string) (*models.UserRequest, error) {
	var req models.UserRequest
	if err := r.db.Where("tracking_token = ?", token).First(&req).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user request with token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user request: %w", err)
	}
	return &req, nil
}

func (r *userRequestRepo) FindPendingUserRequestByEmail(email string) (*models.UserRequest, error) {
	var req models.UserRequest
	if err := r.db.Where("email = ? AND status = ?", email, models.StatusPending).First(&req).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("pending user request %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user request: %w", err)
	}
	return &req, nil
}

func (r *userRequestRepo) ListUserRequestsByStatus(status string) ([]models.UserRequest, error) {
	var reqs []models.UserRequest
	if err := r.db.Where("status = ?", status).Order("id ASC").Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list user requests: %w", err)
	}
	return reqs, nil
}

func (r *userRequestRepo) UpdateUserRequest(req *models.UserRequest) error {
	if err := r.db.Save(req).Error; err != nil {
		return fmt.Errorf("failed to update user request: %w", err)
	}
	return nil
}

// Venue requests

type venueRequestRepo struct {
	db *gorm.DB
}

func NewVenueRequestRepository(db *gorm.DB) VenueRequestRepository {
	return &venueRequestRepo{db: db}
}

func (r *venueRequestRepo) CreateVenueRequest(req *models.VenueRequest) error {
	if err := r.db.Create(req).Error; err != nil {
		return fmt.Errorf("failed to create venue request: %w", err)
	}
	return nil
}

func (r *venueRequestRepo) GetActiveVenueRequestByID(id uint, lock bool) (*models.VenueRequest, error) {
	var req models.VenueRequest
	if err := forUpdate(r.db, lock).
		Where("id = ? AND deleted = ?", id, false).
		First(&req).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("venue request %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get venue request: %w", err)
	}
	return &req, nil
}

func (r *venueRequestRepo) GetActiveVenueRequestByToken(token string) (*models.VenueRequest, error) {
	var req models.VenueRequest
	if err := r.db.Where("tracking_token = ? AND deleted = ?", token, false).First(&req).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("venue request with token: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get venue request: %w", err)
	}
	return &req, nil
}

func (r *venueRequestRepo) ListVenueRequestsByOrganizer(organizerID uint) ([]models.VenueRequest, error) {
	var reqs []models.VenueRequest
	if err := r.db.Where("organizer_id = ? AND deleted = ?", organizerID, false).
		Order("id DESC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list venue requests: %w", err)
	}
	return reqs, nil
}

func (r *venueRequestRepo) ListVenueRequestsByStatus(status string) ([]models.VenueRequest, error) {
	var reqs []models.VenueRequest
	if err := r.db.Where("status = ? AND deleted = ?", status, false).
		Order("id ASC").
		Find(&reqs).Error; err != nil {
		return nil, fmt.Errorf("failed to list venue requests: %w", err)
	}
	return reqs, nil
}

func (r *venueRequestRepo) UpdateVenueRequest(req *models.VenueRequest) error {
	if err := r.db.Save(req).Error; err != nil {
		return fmt.Errorf("failed to update venue request: %w", err)
	}
	return nil
}
