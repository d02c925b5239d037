package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"eventhub-backend/internal/models"
	"eventhub-backend/internal/queue"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/pkg/logger"

	"github.com/sirupsen/logrus"
)

const publishTimeout = 5 * time.Second

// publish delivers a domain event after the change has been committed. A
// broker failure is logged and does not fail the request.
func publish(pub queue.Publisher, eventType string, payload interface{}) {
	if pub == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()
	if err := pub.Publish(ctx, eventType, payload); err != nil {
		logger.WithFields(logrus.Fields{"type": eventType, "error": err}).Warn("failed to publish domain event")
	}
}

// activeUser reloads the caller so that a token issued before the account was
// deleted or suspended cannot keep changing data.
func activeUser(repo *repositories.Repository, userID uint) (*models.User, error) {
	user, err := repo.UserRepo.GetActiveUserByID(userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, forbiddenError("Your account is no longer active")
	}
	if err != nil {
		return nil, storageError("failed to read user", err)
	}
	if user.ApprovalStatus != models.StatusApproved {
		return nil, forbiddenError("Your account is " + user.ApprovalStatus + ". Please contact an administrator.")
	}
	return user, nil
}

func approvedOrganizer(repo *repositories.Repository, organizerID uint) (*models.Organizer, error) {
	organizer, err := repo.OrganizerRepo.GetActiveOrganizerByID(organizerID, false)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, forbiddenError("Your account is no longer active")
	}
	if err != nil {
		return nil, storageError("failed to read organizer", err)
	}
	if organizer.Status != models.StatusApproved {
		return nil, forbiddenError("Your organizer account is not approved yet. Please wait for admin approval.")
	}
	return organizer, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// missingField returns the name of the first blank value.
func missingField(fields map[string]string, order ...string) string {
	for _, name := range order {
		if strings.TrimSpace(fields[name]) == "" {
			return name
		}
	}
	return ""
}

func contains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
