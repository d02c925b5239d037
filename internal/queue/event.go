// Package queue defines the domain events published to the message broker
// and the publishers that deliver them.
package queue

const (
	TypeOrganizerPromoted = "organizer.promoted"
	TypeUserPromoted      = "user.promoted"
	TypeRequestRejected   = "request.rejected"
	TypeVenueReviewed     = "venue.reviewed"
	TypeEventReviewed     = "event.reviewed"
	TypeTicketConfirmed   = "ticket.confirmed"
	TypeTicketTransferred = "ticket.transferred"
	TypePaymentCompleted  = "payment.completed"
)

// Envelope wraps every payload with its type so consumers can route on a
// single queue.
type Envelope struct {
	Type       string      `json:"type"`
	OccurredAt string      `json:"occurredAt"`
	Payload    interface{} `json:"payload"`
}

type OrganizerPromotedEvent struct {
	RequestID     uint   `json:"requestId"`
	OrganizerID   uint   `json:"organizerId"`
	OrganizerName string `json:"organizerName"`
	Email         string `json:"email"`
}

type UserPromotedEvent struct {
	RequestID uint   `json:"requestId"`
	UserID    uint   `json:"userId"`
	Email     string `json:"email"`
}

type RequestRejectedEvent struct {
	Kind      string `json:"kind"`
	RequestID uint   `json:"requestId"`
	Email     string `json:"email,omitempty"`
	Reason    string `json:"reason"`
}

type VenueReviewedEvent struct {
	RequestID   uint   `json:"requestId"`
	OrganizerID uint   `json:"organizerId"`
	Status      string `json:"status"`
	VenueID     *uint  `json:"venueId,omitempty"`
	Comment     string `json:"comment,omitempty"`
}

type EventReviewedEvent struct {
	EventID     uint   `json:"eventId"`
	OrganizerID uint   `json:"organizerId"`
	Status      string `json:"status"`
	Comment     string `json:"comment,omitempty"`
}

type TicketConfirmedEvent struct {
	TicketID   uint    `json:"ticketId"`
	UserID     uint    `json:"userId"`
	EventID    uint    `json:"eventId"`
	Quantity   int     `json:"quantity"`
	TotalPrice float64 `json:"totalPrice"`
}

type TicketTransferredEvent struct {
	TicketID   uint   `json:"ticketId"`
	FromUserID uint   `json:"fromUserId"`
	ToUserID   uint   `json:"toUserId"`
	Reason     string `json:"reason,omitempty"`
}

type PaymentCompletedEvent struct {
	PaymentID         uint    `json:"paymentId"`
	TicketID          uint    `json:"ticketId"`
	UserID            uint    `json:"userId"`
	Amount            float64 `json:"amount"`
	Method            string  `json:"method"`
	ExternalReference string  `json:"externalReference,omitempty"`
}
