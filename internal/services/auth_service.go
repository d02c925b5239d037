package services

import (
	"errors"
	"time"

	"eventhub-backend/internal/config"
	"eventhub-backend/internal/models"
	"eventhub-backend/internal/repositories"
	"eventhub-backend/internal/utils"
	"eventhub-backend/pkg/logger"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
)

type AuthService struct {
	repo *repositories.Repository
	cfg  *config.Config
}

func NewAuthService(repo *repositories.Repository, cfg *config.Config) *AuthService {
	return &AuthService{repo: repo, cfg: cfg}
}

type LoginResponse struct {
	Token  string `json:"token"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	UserID uint   `json:"userId"`
}

// OrganizerProfile is an organizer as returned by the profile endpoints.
type OrganizerProfile struct {
	*models.Organizer
	Role string `json:"role"`
}

var errInvalidCredentials = NewServiceError("Invalid email or password", ErrUnauthorized, nil)

// Authenticate resolves the principal by email, users first and organizers
// second, and issues a signed token carrying its role.
func (s *AuthService) Authenticate(email, password string) (*LoginResponse, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return nil, validationError("Email and password are required")
	}

	var (
		id           uint
		name, role   string
		passwordHash string
	)

	user, err := s.repo.UserRepo.GetActiveUserByEmail(email)
	switch {
	case err == nil:
		id, name, passwordHash = user.ID, user.Name, user.Password
		role = user.Role
		if role == "" {
			role = models.RoleUser
		}
	case errors.Is(err, repositories.ErrNotFound):
		organizer, oerr := s.repo.OrganizerRepo.GetActiveOrganizerByEmail(email)
		if errors.Is(oerr, repositories.ErrNotFound) {
			return nil, errInvalidCredentials
		}
		if oerr != nil {
			return nil, storageError("failed to read organizer", oerr)
		}
		if organizer.Status != models.StatusApproved {
			return nil, forbiddenError("Your organizer account is not approved yet. Please wait for admin approval.")
		}
		id, name, passwordHash = organizer.ID, organizer.OrganizerName, organizer.Password
		role = models.RoleOrganizer
	default:
		return nil, storageError("failed to read user", err)
	}

	if err := utils.CheckPassword(password, passwordHash); err != nil {
		return nil, errInvalidCredentials
	}

	if user != nil && user.ApprovalStatus != models.StatusApproved {
		return nil, forbiddenError("Your account is " + user.ApprovalStatus + ". Please contact an administrator.")
	}

	token, err := s.GenerateToken(id, email, role, name)
	if err != nil {
		return nil, NewServiceError("failed to generate token", ErrUnexpected, err)
	}

	logger.WithFields(logrus.Fields{"principal": id, "role": role}).Info("login succeeded")

	return &LoginResponse{
		Token:  token,
		Email:  email,
		Role:   role,
		Name:   name,
		UserID: id,
	}, nil
}

func (s *AuthService) GenerateToken(id uint, email, role, name string) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"userId": id,
		"email":  email,
		"role":   role,
		"name":   name,
		"exp":    now.Add(s.cfg.JWTTTL).Unix(),
		"iat":    now.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.cfg.JWTSecret))
}

// GetProfile returns the user or organizer record behind a token.
func (s *AuthService) GetProfile(id uint, role string) (interface{}, error) {
	if role == models.RoleOrganizer {
		organizer, err := s.repo.OrganizerRepo.GetActiveOrganizerByID(id, false)
		if err != nil {
			return nil, lookupError("Organizer not found", err)
		}
		return &OrganizerProfile{Organizer: organizer, Role: models.RoleOrganizer}, nil
	}

	user, err := s.repo.UserRepo.GetActiveUserByID(id)
	if err != nil {
		return nil, lookupError("User not found", err)
	}
	return user, nil
}
