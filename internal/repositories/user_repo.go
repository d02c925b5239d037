package repositories

import (
	"fmt"

	"eventhub-backend/internal/models"

	"gorm.io/gorm"
)

type UserFilters struct {
	Role           string
	IncludeDeleted bool
}

type userRepo struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(user *models.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

// GetUserByID returns the user whether or not it is deactivated; admin
// reactivation needs to see deleted rows.
func (r *userRepo) GetUserByID(id uint, lock bool) (*models.User, error) {
	var user models.User
	if err := forUpdate(r.db, lock).Where("id = ?", id).First(&user).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetActiveUserByID(id uint) (*models.User, error) {
	var user models.User
	if err := r.db.Where("id = ? AND deleted = ?", id, false).First(&user).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user %d: %w", id, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepo) GetActiveUserByEmail(email string) (*models.User, error) {
	var user models.User
	if err := r.db.Where("email = ? AND deleted = ?", email, false).First(&user).Error; err != nil {
		if notFound(err) {
			return nil, fmt.Errorf("user %s: %w", email, ErrNotFound)
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return &user, nil
}

func (r *userRepo) ListUsers(filters *UserFilters) ([]models.User, error) {
	query := r.db.Model(&models.User{})
	if filters != nil {
		if filters.Role != "" {
			query = query.Where("role = ?", filters.Role)
		}
		if !filters.IncludeDeleted {
			query = query.Where("deleted = ?", false)
		}
	} else {
		query = query.Where("deleted = ?", false)
	}

	var users []models.User
	if err := query.Order("id ASC").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

func (r *userRepo) UpdateUser(user *models.User) error {
	if err := r.db.Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}
