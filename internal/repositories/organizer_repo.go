package repositories

import (
	"fmt"

	"eventhub-backend/internal/models"

	"gorm.io/gorm"
)

type organizerRepo struct {
	db *gorm.DB
}

func NewOrganizerRepository(db *gorm.DB) OrganizerRepository {
	return &organizerRepo{db: db}
}

func (r *organizerRepo) CreateOrganizer(organizer *models.Organizer) error {
	if err := r.db.Create(organizer).Error; err != nil {
		return fmt.Errorf("failed to create organizer: %w", err)
	}
	return nil
}

func (r *organizerRepo) GetActiveOrganizerByID(id uint, lock bool) (*models.Organizer, error) {
	var organizer models.Organizer
	if err := forUpdate(r.db, lock).
		Where("id = ? AND deleted = ?", id, false).
		First(&organizer).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("organizer %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get organizer: %w", err)
	}
	return &organizer, nil
}

func (r *organizerRepo) GetActiveOrganizerByEmail(email string) (*models.Organizer, error) {
	var organizer models.Organizer
	if err := r.db.Where("email = ? AND deleted = ?", email, false).First(&organizer).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("organizer %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get organizer: %w", err)
	}
	return &organizer, nil
}

func (r *organizerRepo) ListActiveOrganizers() ([]models.Organizer, error) {
	var organizers []models.Organizer
	if err := r.db.Where("deleted = ?", false).Order("id ASC").Find(&organizers).Error; err != nil {
		return nil, fmt.Errorf("failed to list organizers: %w", err)
	}
	return organizers, nil
}

func (r *organizerRepo) UpdateOrganizer(organizer *models.Organizer) error {
	if err := r.db.Save(organizer).Error; err != nil {
		return fmt.Errorf("failed to update organizer: %w", err)
	}
	return nil
}
