package repositories

import (
	"errors"

	"eventhub-backend/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ErrNotFound is wrapped by every lookup that finds no live record.
var ErrNotFound = errors.New("record not found")

type Repository struct {
	DB                   *gorm.DB
	UserRepo             UserRepository
	OrganizerRepo        OrganizerRepository
	OrganizerRequestRepo OrganizerRequestRepository
	UserRequestRepo      UserRequestRepository
	VenueRepo            VenueRepository
	VenueRequestRepo     VenueRequestRepository
	EventRepo            EventRepository
	TicketRepo           TicketRepository
	PaymentRepo          PaymentRepository
	FeedbackRepo         FeedbackRepository
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		DB:                   db,
		UserRepo:             NewUserRepository(db),
		OrganizerRepo:        NewOrganizerRepository(db),
		OrganizerRequestRepo: NewOrganizerRequestRepository(db),
		UserRequestRepo:      NewUserRequestRepository(db),
		VenueRepo:            NewVenueRepository(db),
		VenueRequestRepo:     NewVenueRequestRepository(db),
		EventRepo:            NewEventRepository(db),
		TicketRepo:           NewTicketRepository(db),
		PaymentRepo:          NewPaymentRepository(db),
		FeedbackRepo:         NewFeedbackRepository(db),
	}
}

// Transaction runs fn against repositories bound to a single database
// transaction. Returning an error from fn rolls everything back.
func (r *Repository) Transaction(fn func(tx *Repository) error) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return fn(NewRepository(tx))
	})
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.Organizer{},
		&models.OrganizerRequest{},
		&models.UserRequest{},
		&models.Venue{},
		&models.VenueRequest{},
		&models.Event{},
		&models.Ticket{},
		&models.Payment{},
		&models.Feedback{},
	)
}

// forUpdate locks the selected rows until the surrounding transaction ends.
// Dialects without row locks (SQLite) ignore the clause.
func forUpdate(db *gorm.DB, lock bool) *gorm.DB {
	if !lock {
		return db
	}
	return db.Clauses(clause.Locking{Strength: "UPDATE"})
}

func notFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}

// Interface definitions
type UserRepository interface {
	CreateUser(user *models.User) error
	GetUserByID(id uint, lock bool) (*models.User, error)
	GetActiveUserByID(id uint) (*models.User, error)
	GetActiveUserByEmail(email string) (*models.User, error)
	ListUsers(filters *UserFilters) ([]models.User, error)
	UpdateUser(user *models.User) error
}

type OrganizerRepository interface {
	CreateOrganizer(organizer *models.Organizer) error
	GetActiveOrganizerByID(id uint, lock bool) (*models.Organizer, error)
	GetActiveOrganizerByEmail(email string) (*models.Organizer, error)
	ListActiveOrganizers() ([]models.Organizer, error)
	UpdateOrganizer(organizer *models.Organizer) error
}

type OrganizerRequestRepository interface {
	CreateOrganizerRequest(req *models.OrganizerRequest) error
	GetOrganizerRequestByID(id uint, lock bool) (*models.OrganizerRequest, error)
	GetOrganizerRequestByToken(token string) (*models.OrganizerRequest, error)
	FindPendingOrganizerRequestByEmail(email string) (*models.OrganizerRequest, error)
	ListOrganizerRequestsByStatus(status string) ([]models.OrganizerRequest, error)
	UpdateOrganizerRequest(req *models.OrganizerRequest) error
}

type UserRequestRepository interface {
	CreateUserRequest(req *models.UserRequest) error
	GetUserRequestByID(id uint, lock bool) (*models.UserRequest, error)
	GetUserRequestByToken(token string) (*models.UserRequest, error)
	FindPendingUserRequestByEmail(email string) (*models.UserRequest, error)
	ListUserRequestsByStatus(status string) ([]models.UserRequest, error)
	UpdateUserRequest(req *models.UserRequest) error
}

type VenueRepository interface {
	CreateVenue(venue *models.Venue) error
	GetActiveVenueByID(id uint, lock bool) (*models.Venue, error)
	ListActiveVenues(availability string) ([]models.Venue, error)
	UpdateVenue(venue *models.Venue) error
}

type VenueRequestRepository interface {
	CreateVenueRequest(req *models.VenueRequest) error
	GetActiveVenueRequestByID(id uint, lock bool) (*models.VenueRequest, error)
	GetActiveVenueRequestByToken(token string) (*models.VenueRequest, error)
	ListVenueRequestsByOrganizer(organizerID uint) ([]models.VenueRequest, error)
	ListVenueRequestsByStatus(status string) ([]models.VenueRequest, error)
	UpdateVenueRequest(req *models.VenueRequest) error
}

type EventRepository interface {
	CreateEvent(event *models.Event) error
	GetActiveEventByID(id uint, lock bool) (*models.Event, error)
	GetEventDetails(id uint) (*models.EventDetails, error)
	ListEventDetails(filters *EventFilters) ([]models.EventDetails, error)
	ListEventDetailsByIDs(ids []uint) ([]models.EventDetails, error)
	ListActiveEventsByOrganizer(organizerID uint) ([]models.Event, error)
	MaxTicketsProvidedByVenue(venueID uint) (int64, error)
	UpdateEvent(event *models.Event) error
}

type TicketRepository interface {
	CreateTicket(ticket *models.Ticket) error
	GetActiveTicketByID(id uint, lock bool) (*models.Ticket, error)
	GetOwnedTicket(id, userID uint, lock bool) (*models.Ticket, error)
	ListTicketsByUser(userID uint) ([]models.Ticket, error)
	SumQuantityByEvent(eventID uint) (int64, error)
	SumQuantityByEventAndUser(eventID, userID uint) (int64, error)
	MaxQuantityPerUserByEvent(eventID uint) (int64, error)
	CountTicketsByEventAndUser(eventID, userID uint) (int64, error)
	SummarizeByEvents(eventIDs []uint) (*models.BookingSummary, error)
	UpdateTicket(ticket *models.Ticket) error
}

type PaymentRepository interface {
	CreatePayment(payment *models.Payment) error
	ListPaymentsByTicket(ticketID uint) ([]models.Payment, error)
	FindPendingPaymentByTicket(ticketID uint) (*models.Payment, error)
	UpdatePayment(payment *models.Payment) error
}

type FeedbackRepository interface {
	CreateFeedback(feedback *models.Feedback) error
	ListFeedbackByEvent(eventID uint) ([]models.Feedback, error)
}
