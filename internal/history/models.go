package history

import "time"

// Delivery outcomes
const (
	OutcomeSent     = "sent"     // HTTP 200 received
	OutcomeRejected = "rejected" // HTTP response with any other status
	OutcomeError    = "error"    // transport-level failure, no response
)

// DeliveryRecord represents a single webhook delivery attempt in the database
type DeliveryRecord struct {
	ID           int64
	HookID       string
	SHA          string
	Ref          string
	Repository   string
	URL          string // redacted before storage
	Outcome      string // sent, rejected, error
	StatusCode   *int64 // nullable, absent on transport failure
	ErrorMessage *string
	SentAt       time.Time
}
