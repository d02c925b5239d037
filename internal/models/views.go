package models

import "time"

// EventDetails is an event joined with the venue and organizer names shown
// on listing pages.
type EventDetails struct {
	Event
	VenueName      string  `json:"venueName"`
	VenueAddress   string  `json:"venueAddress"`
	VenueCapacity  int     `json:"venueCapacity"`
	VenueLatitude  float64 `json:"venueLatitude"`
	VenueLongitude float64 `json:"venueLongitude"`
	OrganizerName  string  `json:"organizerName"`
	OrganizerType  string  `json:"organizerType"`
}

type RegisteredEvent struct {
	EventDetails
	TicketQuantity int       `json:"ticketQuantity"`
	TicketID       uint      `json:"ticketId"`
	RegisteredAt   time.Time `json:"registeredAt"`
}

type TicketDetails struct {
	TicketID       uint      `json:"ticketId"`
	EventID        uint      `json:"eventId"`
	EventName      string    `json:"eventName"`
	Description    string    `json:"description"`
	Type           string    `json:"type"`
	StartTime      time.Time `json:"startTime"`
	EndTime        time.Time `json:"endTime"`
	VenueName      string    `json:"venueName"`
	VenueAddress   string    `json:"venueAddress"`
	TicketQuantity int       `json:"ticketQuantity"`
	TicketType     string    `json:"ticketType"`
	TotalPrice     float64   `json:"totalPrice"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type BookingSummary struct {
	TotalActiveTickets int64   `json:"totalActiveTickets"`
	TotalRevenue       float64 `json:"totalRevenue"`
}
