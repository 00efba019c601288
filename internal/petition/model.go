package petition

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var (
	// ErrNotFound is returned when no signature matches the given id.
	ErrNotFound = errors.New("signature not found")
	// ErrUnavailable is returned when the store does not answer within the
	// configured deadline. Callers may retry.
	ErrUnavailable = errors.New("signature store unavailable")
	// ErrRender is returned when a document cannot be produced, typically
	// because the template asset is missing or corrupt.
	ErrRender = errors.New("document rendering failed")
)

// ValidationError marks rejected intake input. It is surfaced to the user as
// an inline message and never treated as fatal.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func validationErr(err error) error {
	return &ValidationError{Reason: err.Error()}
}

// Signature is one petition entry. SignatureNumber is assigned by the store
// in insertion order and is never reused, even after a delete.
type Signature struct {
	ID              uuid.UUID `json:"id"`
	SignatureNumber int64     `json:"signature_number"`
	Name            string    `json:"name"`
	Phone           string    `json:"phone"`
	Email           *string   `json:"email,omitempty"`
	State           *string   `json:"state,omitempty"`
	CreatedAt       time.Time `json:"timestamp"`
}

// CreateSignatureInput carries raw intake fields before validation.
type CreateSignatureInput struct {
	Name  string
	Phone string
	Email string
	State string
}

// ListFilter narrows the admin listing.
type ListFilter struct {
	Search   string
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// ListResult is one page of signatures plus pagination totals.
type ListResult struct {
	Signatures []Signature `json:"signatures"`
	Total      int64       `json:"total"`
	Page       int         `json:"page"`
	Limit      int         `json:"limit"`
	TotalPages int64       `json:"total_pages"`
}

// RecentSignature is the public teaser shown next to the live counter.
type RecentSignature struct {
	Name      string    `json:"name"`
	Timestamp time.Time `json:"timestamp"`
	TimeAgo   string    `json:"time_ago"`
}

// PublicStats backs the polled public counter.
type PublicStats struct {
	TotalSignatures  int64             `json:"total_signatures"`
	RecentSignatures []RecentSignature `json:"recent_signatures"`
}

// AdminStats aggregates signatures against server-local date boundaries.
type AdminStats struct {
	TotalSignatures int64        `json:"total_signatures"`
	Today           int64        `json:"today"`
	ThisWeek        int64        `json:"this_week"`
	ThisMonth       int64        `json:"this_month"`
	DailyTrend      []DailyCount `json:"daily_trend"`
}

// DailyCount is one day in the 30-day trend.
type DailyCount struct {
	Date  string `json:"date"`
	Count int64  `json:"count"`
}

// TimeAgo humanizes the distance between t and now ("5 minutes ago").
func TimeAgo(t, now time.Time) string {
	diff := now.Sub(t)
	if diff < 0 {
		diff = 0
	}

	switch {
	case diff < time.Minute:
		return fmt.Sprintf("%d seconds ago", int(diff.Seconds()))
	case diff < time.Hour:
		return fmt.Sprintf("%d minutes ago", int(diff.Minutes()))
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	default:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	}
}
