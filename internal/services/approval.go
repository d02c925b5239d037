package services

import (
	"fmt"
	"strings"
	"time"

	"eventhub-backend/internal/models"
)

// MinReasonLength is the shortest accepted rejection reason.
const MinReasonLength = 10

type recordKind string

const (
	kindOrganizerRequest recordKind = "organizer request"
	kindUserRequest      recordKind = "user request"
	kindVenueRequest     recordKind = "venue request"
	kindOrganizer        recordKind = "organizer"
	kindUser             recordKind = "user"
	kindEvent            recordKind = "event"
	kindVenue            recordKind = "venue"
)

var pendingOnly = map[string][]string{
	models.StatusPending: {models.StatusApproved, models.StatusRejected},
}

// transitions lists, per record kind, the statuses reachable from each state.
var transitions = map[recordKind]map[string][]string{
	kindOrganizerRequest: pendingOnly,
	kindUserRequest:      pendingOnly,
	kindVenueRequest:     pendingOnly,
	kindEvent:            pendingOnly,
	kindOrganizer: {
		models.StatusApproved: {models.StatusRejected},
		models.StatusRejected: {models.StatusApproved},
	},
	kindUser: {
		models.StatusPending:  {models.StatusApproved, models.StatusRejected},
		models.StatusApproved: {models.StatusRejected},
		models.StatusRejected: {models.StatusApproved},
	},
	kindVenue: {
		models.VenueAvailable:        {models.VenueUnavailable},
		models.VenueUnavailable:      {models.VenueAvailable},
		models.VenueUnderMaintenance: {models.VenueAvailable, models.VenueUnavailable},
		models.VenueBooked:           {models.VenueAvailable, models.VenueUnavailable},
	},
}

// rejectedState is the status that demands a reason for each kind.
func rejectedState(kind recordKind) string {
	if kind == kindVenue {
		return models.VenueUnavailable
	}
	return models.StatusRejected
}

func canTransition(kind recordKind, from, to string) bool {
	for _, next := range transitions[kind][from] {
		if next == to {
			return true
		}
	}
	return false
}

// decide moves record to the target status when the transition table allows
// it. Rejections need a reason of at least MinReasonLength characters; for
// other targets the reason is kept as an admin comment where the record
// stores one.
func decide(kind recordKind, record models.Approvable, to, reason string) error {
	from := record.ApprovalState()
	if isPendingOnly(kind) && from != models.StatusPending {
		return conflictError(pendingLabel(kind) + " is not pending")
	}
	if from == to {
		return conflictError(fmt.Sprintf("%s is already %s", capitalize(string(kind)), to))
	}
	if !canTransition(kind, from, to) {
		return conflictError(fmt.Sprintf("Cannot change %s from %s to %s", kind, from, to))
	}

	reason = strings.TrimSpace(reason)
	if to == rejectedState(kind) {
		if err := validateReason(reason); err != nil {
			return err
		}
	}

	record.ApplyDecision(to, reason, time.Now().UTC())
	return nil
}

func isPendingOnly(kind recordKind) bool {
	switch kind {
	case kindOrganizerRequest, kindUserRequest, kindVenueRequest, kindEvent:
		return true
	}
	return false
}

func pendingLabel(kind recordKind) string {
	if kind == kindEvent {
		return "Event"
	}
	return "Request"
}

func validateReason(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return validationError("Rejection reason is required")
	}
	if len([]rune(reason)) < MinReasonLength {
		return validationError(fmt.Sprintf("Rejection reason must be at least %d characters", MinReasonLength))
	}
	return nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
