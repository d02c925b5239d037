package repositories

import (
	"fmt"

	"eventhub-backend/internal/models"

	"gorm.io/gorm"
)

type venueRepo struct {
	db *gorm.DB
}

func NewVenueRepository(db *gorm.DB) VenueRepository {
	return &venueRepo{db: db}
}

func (r *venueRepo) CreateVenue(venue *models.Venue) error {
	if err := r.db.Create(venue).Error; err != nil {
		return fmt.Errorf("failed to create venue: %w", err)
	}
	return nil
}

func (r *venueRepo) GetActiveVenueByID(id uint, lock bool) (*models.Venue, error) {
	var venue models.Venue
	if err := forUpdate(r.db, lock).
		Where("id = ? AND deleted = ?", id, false).
		First(&venue).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("venue %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get venue: %w", err)
	}
	return &venue, nil
}

// ListActiveVenues returns non-deleted venues, optionally restricted to one
// availability status.
func (r *venueRepo) ListActiveVenues(availability string) ([]models.Venue, error) {
	query := r.db.Where("deleted = ?", false)
	if availability != "" {
		query = query.Where("availability_status = ?", availability)
	}

	var venues []models.Venue
	if err := query.Order("id ASC").Find(&venues).Error; err != nil {
		return nil, fmt.Errorf("failed to list venues: %w", err)
	}
	return venues, nil
}

func (r *venueRepo) UpdateVenue(venue *models.Venue) error {
	if err := r.db.Save(venue).Error; err != nil {
		return fmt.Errorf("failed to update venue: %w", err)
	}
	return nil
}
