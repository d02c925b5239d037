package repositories

import (
	"fmt"

	"eventhub-backend/internal/models"

	"gorm.io/gorm"
)

type feedbackRepo struct {
	db *gorm.DB
}

func NewFeedbackRepository(db *gorm.DB) FeedbackRepository {
	return &feedbackRepo{db: db}
}

func (r *feedbackRepo) CreateFeedback(feedback *models.Feedback) error {
	if err := r.db.Create(feedback).Error; err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepo) ListFeedbackByEvent(eventID uint) ([]models.Feedback, error) {
	var feedback []models.Feedback
	if err := r.db.Where("event_id = ? AND deleted = ?", eventID, false).
		Order("created_at DESC").
		Find(&feedback).Error; err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return feedback, nil
}
