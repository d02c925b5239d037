package utils

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

var trackingTokenPattern = regexp.MustCompile(`^[a-f0-9]{32}$`)

// NewTrackingToken returns 32 lowercase hex characters.
func NewTrackingToken() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}

func IsValidTrackingToken(token string) bool {
	return trackingTokenPattern.MatchString(token)
}

func NewRequestID() string {
	return uuid.New().String()
}
