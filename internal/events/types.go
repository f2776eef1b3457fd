package events

import "time"

// Type identifies an event stream category.
type Type string

const (
	// TypeValidation is emitted after each URL validation.
	TypeValidation Type = "url_validation"
	// TypeRejection is emitted when sanitization rejects an input.
	TypeRejection Type = "input_rejection"
	// TypeDetection is emitted when sensitive data is masked.
	TypeDetection Type = "sensitive_detection"
	// TypeReport is emitted when a privacy report is generated.
	TypeReport Type = "privacy_report"
	// TypeConnection is emitted on client connect and disconnect.
	TypeConnection Type = "connection"
)

// Event is one message pushed to dashboard subscribers.
type Event struct {
	Type      Type      `json:"type"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"request_id,omitempty"`
	Data      any       `json:"data"`
}

// ValidationEvent reports the outcome of one URL validation.
type ValidationEvent struct {
	Platform string `json:"platform,omitempty"`
	Valid    bool   `json:"valid"`
	Reason   string `json:"reason,omitempty"`
}

// RejectionEvent reports a sanitizer rejection. Only the field name and
// reason are exposed, never the rejected value.
type RejectionEvent struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// DetectionEvent reports masked sensitive data counts per kind.
type DetectionEvent struct {
	TrackingID string         `json:"tracking_id"`
	Counts     map[string]int `json:"counts"`
	Total      int            `json:"total"`
}

// ReportEvent summarizes a generated privacy report.
type ReportEvent struct {
	TrackingID      string `json:"tracking_id"`
	Platform        string `json:"platform,omitempty"`
	OverallRisk     string `json:"overall_risk_level"`
	TotalInferences int    `json:"total_inferences"`
	SpecialCategory int    `json:"special_category_inferences"`
}

// ConnectionEvent reports subscriber lifecycle changes.
type ConnectionEvent struct {
	Action   string `json:"action"`
	ClientID string `json:"client_id"`
	Active   int    `json:"active_connections"`
}
