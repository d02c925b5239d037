package models

import "time"

// Approvable is implemented by every record whose status an admin decides.
// ApplyDecision records the new status and the note that goes with it
// (rejection reason or admin comment, depending on the record).
type Approvable interface {
	ApprovalState() string
	ApplyDecision(status, note string, at time.Time)
}

func (u *User) ApprovalState() string { return u.ApprovalStatus }

func (u *User) ApplyDecision(status, note string, at time.Time) {
	u.ApprovalStatus = status
	u.RejectionReason = rejectionNote(status, note)
	u.UpdatedAt = at
}

func (o *Organizer) ApprovalState() string { return o.Status }

func (o *Organizer) ApplyDecision(status, note string, at time.Time) {
	o.Status = status
	o.RejectionReason = rejectionNote(status, note)
	o.UpdatedAt = at
}

func (r *OrganizerRequest) ApprovalState() string { return r.Status }

func (r *OrganizerRequest) ApplyDecision(status, note string, at time.Time) {
	r.Status = status
	r.RejectionReason = rejectionNote(status, note)
	r.UpdatedAt = at
}

func (r *UserRequest) ApprovalState() string { return r.Status }

func (r *UserRequest) ApplyDecision(status, note string, at time.Time) {
	r.Status = status
	r.RejectionReason = rejectionNote(status, note)
	r.UpdatedAt = at
}

func (r *VenueRequest) ApprovalState() string { return r.Status }

func (r *VenueRequest) ApplyDecision(status, note string, at time.Time) {
	r.Status = status
	r.AdminComment = note
	r.UpdatedAt = at
}

func (e *Event) ApprovalState() string { return e.ApprovalStatus }

func (e *Event) ApplyDecision(status, note string, at time.Time) {
	e.ApprovalStatus = status
	if note == "" {
		e.AdminComment = nil
	} else {
		e.AdminComment = &note
	}
	e.UpdatedAt = at
}

// Venues are "approved" by making them available for booking.
func (v *Venue) ApprovalState() string { return v.AvailabilityStatus }

func (v *Venue) ApplyDecision(status, note string, at time.Time) {
	v.AvailabilityStatus = status
	v.AdminComment = note
	v.UpdatedAt = at
}

// rejectionNote drops the note unless the record is being rejected.
func rejectionNote(status, note string) string {
	if status != StatusRejected {
		return ""
	}
	return note
}
