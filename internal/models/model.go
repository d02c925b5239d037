package models

import (
	"time"
)

const (
	RoleUser      = "user"
	RoleOrganizer = "organizer"
	RoleAdmin     = "admin"
)

// Approval states shared by requests, organizers, users and events.
const (
	StatusPending  = "Pending"
	StatusApproved = "Approved"
	StatusRejected = "Rejected"
)

const (
	EventStatusActive    = "Active"
	EventStatusCancelled = "Cancelled"
)

const (
	VenueAvailable        = "Available"
	VenueUnavailable      = "Unavailable"
	VenueUnderMaintenance = "Under Maintenance"
	VenueBooked           = "Booked"
)

const (
	TicketConfirmed = "Confirmed"
	TicketPaid      = "Paid"
)

const (
	PaymentPending         = "Pending"
	PaymentCompleted       = "Completed"
	PaymentFailed          = "Failed"
	PaymentMethodBank      = "Bank Transfer"
	PaymentMethodSimulated = "Simulated"
)

const DefaultTicketType = "Regular"

var OrganizerTypes = []string{"Individual", "Company", "Non-Profit", "Educational"}

var EventTypes = []string{
	"Music Concert",
	"Dance Performance",
	"Comedy Show",
	"Theatre",
	"Workshop",
	"Conference",
	"Seminar",
	"Exhibition",
	"Sports Event",
	"Festival",
	"Food & Beverage",
	"Networking Event",
	"Charity Event",
	"Award Ceremony",
	"Product Launch",
	"Other",
}

var VenueAvailabilityStatuses = []string{VenueAvailable, VenueUnavailable, VenueUnderMaintenance, VenueBooked}

type User struct {
	ID              uint      `gorm:"primaryKey" json:"userId"`
	Name            string    `gorm:"not null" json:"name"`
	Email           string    `gorm:"index;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Phone           string    `json:"phone"`
	Gender          string    `gorm:"type:varchar(20)" json:"gender"`
	DOB             string    `gorm:"column:dob;type:varchar(10)" json:"dob"`
	ProfilePicture  string    `json:"profilePicture"`
	Role            string    `gorm:"type:varchar(20);not null;default:'user'" json:"role"` // user|admin
	ApprovalStatus  string    `gorm:"type:varchar(20);not null" json:"approvalStatus"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	RequestID       *uint     `gorm:"uniqueIndex" json:"requestId,omitempty"`
	Deleted         bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Organizer struct {
	ID              uint      `gorm:"primaryKey" json:"organizerId"`
	OrganizerType   string    `gorm:"type:varchar(20);not null" json:"organizerType"`
	OrganizerName   string    `gorm:"not null" json:"organizerName"`
	Email           string    `gorm:"index;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	Status          string    `gorm:"type:varchar(20);not null" json:"status"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	RequestID       *uint     `gorm:"uniqueIndex" json:"requestId,omitempty"`
	Deleted         bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type OrganizerRequest struct {
	ID              uint      `gorm:"primaryKey" json:"requestId"`
	OrganizerType   string    `gorm:"type:varchar(20);not null" json:"organizerType"`
	OrganizerName   string    `gorm:"not null" json:"organizerName"`
	Email           string    `gorm:"index;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Phone           string    `json:"phone"`
	Address         string    `json:"address"`
	Status          string    `gorm:"type:varchar(20);not null;index" json:"status"`
	TrackingToken   string    `gorm:"type:char(32);uniqueIndex;not null" json:"trackingToken"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// UserRequest is an account application that becomes a User once approved.
type UserRequest struct {
	ID              uint      `gorm:"primaryKey" json:"requestId"`
	Name            string    `gorm:"not null" json:"name"`
	Email           string    `gorm:"index;not null" json:"email"`
	Password        string    `gorm:"not null" json:"-"`
	Phone           string    `json:"phone"`
	Gender          string    `gorm:"type:varchar(20)" json:"gender"`
	DOB             string    `gorm:"column:dob;type:varchar(10)" json:"dob"`
	ProfilePicture  string    `json:"profilePicture"`
	Status          string    `gorm:"type:varchar(20);not null;index" json:"status"`
	TrackingToken   string    `gorm:"type:char(32);uniqueIndex;not null" json:"trackingToken"`
	RejectionReason string    `json:"rejectionReason,omitempty"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

type Venue struct {
	ID                 uint      `gorm:"primaryKey" json:"venueId"`
	Name               string    `gorm:"not null" json:"name"`
	Address            string    `gorm:"not null" json:"address"`
	Capacity           int       `gorm:"not null" json:"capacity"`
	Latitude           float64   `json:"latitude"`
	Longitude          float64   `json:"longitude"`
	AvailabilityStatus string    `gorm:"type:varchar(20);not null" json:"availabilityStatus"`
	AdminComment       string    `json:"adminComment,omitempty"`
	RequestID          *uint     `gorm:"uniqueIndex" json:"requestId,omitempty"`
	Deleted            bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

type VenueRequest struct {
	ID            uint      `gorm:"primaryKey" json:"requestId"`
	OrganizerID   uint      `gorm:"index;not null" json:"organizerId"`
	Name          string    `gorm:"not null" json:"name"`
	Address       string    `gorm:"not null" json:"address"`
	Capacity      int       `gorm:"not null" json:"capacity"`
	Latitude      float64   `json:"latitude"`
	Longitude     float64   `json:"longitude"`
	Reason        string    `json:"reason"`
	Status        string    `gorm:"type:varchar(20);not null;index" json:"status"`
	AdminComment  string    `json:"adminComment"`
	TrackingToken string    `gorm:"type:char(32);uniqueIndex;not null" json:"trackingToken"`
	Deleted       bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type Event struct {
	ID                   uint      `gorm:"primaryKey" json:"eventId"`
	OrganizerID          uint      `gorm:"index;not null" json:"organizerId"`
	EventName            string    `gorm:"not null" json:"eventName"`
	Description          string    `gorm:"type:text" json:"description"`
	RulesAndRestrictions string    `gorm:"type:text" json:"rulesAndRestrictions"`
	Type                 string    `gorm:"type:varchar(40);not null;index" json:"type"`
	VenueID              uint      `gorm:"index;not null" json:"venueId"`
	TicketsProvided      int       `gorm:"not null" json:"ticketsProvided"`
	MaxTicketsPerUser    int       `gorm:"not null" json:"maxTicketsPerUser"`
	TicketPrice          float64   `gorm:"not null;default:0" json:"ticketPrice"`
	StartTime            time.Time `json:"startTime"`
	EndTime              time.Time `json:"endTime"`
	Status               string    `gorm:"type:varchar(20);not null" json:"status"`
	ApprovalStatus       string    `gorm:"type:varchar(20);not null;index" json:"approvalStatus"`
	AdminComment         *string   `json:"adminComment"`
	Deleted              bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt            time.Time `json:"createdAt"`
	UpdatedAt            time.Time `json:"updatedAt"`
}

type Ticket struct {
	ID             uint       `gorm:"primaryKey" json:"ticketId"`
	UserID         uint       `gorm:"index;not null" json:"userId"`
	EventID        uint       `gorm:"index;not null" json:"eventId"`
	Quantity       int        `gorm:"not null" json:"quantity"`
	TicketType     string     `gorm:"type:varchar(40)" json:"ticketType"`
	TotalPrice     float64    `gorm:"not null" json:"totalPrice"`
	Status         string     `gorm:"type:varchar(20);not null" json:"status"`
	TransferredAt  *time.Time `json:"transferredAt,omitempty"`
	TransferReason string     `json:"transferReason,omitempty"`
	Deleted        bool       `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt      time.Time  `json:"createdAt"`
	UpdatedAt      time.Time  `json:"updatedAt"`
}

type Payment struct {
	ID                uint      `gorm:"primaryKey" json:"paymentId"`
	TicketID          uint      `gorm:"index;not null" json:"ticketId"`
	UserID            uint      `gorm:"index;not null" json:"userId"`
	Amount            float64   `gorm:"not null" json:"amount"`
	Status            string    `gorm:"type:varchar(20);not null" json:"status"`
	PaymentMethod     string    `gorm:"type:varchar(40)" json:"paymentMethod"`
	ExternalReference string    `json:"externalReference,omitempty"`
	CreatedAt         time.Time `json:"createdAt"`
}

type Feedback struct {
	ID        uint      `gorm:"primaryKey" json:"feedbackId"`
	EventID   uint      `gorm:"index;not null" json:"eventId"`
	UserID    uint      `gorm:"index;not null" json:"userId"`
	Comments  string    `gorm:"type:text" json:"comments"`
	Rating    int       `json:"rating,omitempty"`
	Deleted   bool      `gorm:"not null;default:false;index" json:"deleted"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName keeps the collection name singular like the rest of the API.
func (Feedback) TableName() string { return "feedback" }
