package audit

import (
	"context"
	"time"
)

// ValidationRecord captures one URL validation attempt. The raw input URL
// is never stored; only the cleaned form of accepted URLs is.
type ValidationRecord struct {
	ID         int64     `db:"id" json:"id"`
	RequestID  string    `db:"request_id" json:"request_id"`
	Platform   string    `db:"platform" json:"platform"`
	Valid      bool      `db:"valid" json:"valid"`
	CleanedURL string    `db:"cleaned_url" json:"cleaned_url,omitempty"`
	Reason     string    `db:"reason" json:"reason,omitempty"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// AnalysisRecord captures one completed analysis run. It stores aggregate
// counts and the tracking id, never profile content.
type AnalysisRecord struct {
	ID               int64     `db:"id" json:"id"`
	RequestID        string    `db:"request_id" json:"request_id"`
	TrackingID       string    `db:"tracking_id" json:"tracking_id"`
	Platform         string    `db:"platform" json:"platform"`
	Provider         string    `db:"provider" json:"provider"`
	OverallRiskLevel string    `db:"overall_risk_level" json:"overall_risk_level"`
	TotalInferences  int       `db:"total_inferences" json:"total_inferences"`
	SpecialCategory  int       `db:"special_category" json:"special_category"`
	CreatedAt        time.Time `db:"created_at" json:"created_at"`
}

// Store persists audit records.
type Store interface {
	RecordValidation(ctx context.Context, record *ValidationRecord) error
	RecordAnalysis(ctx context.Context, record *AnalysisRecord) error
	Close() error
}

// NoopStore discards all records. Used when audit storage is disabled.
type NoopStore struct{}

func NewNoopStore() *NoopStore { return &NoopStore{} }

func (s *NoopStore) RecordValidation(ctx context.Context, record *ValidationRecord) error {
	return nil
}

func (s *NoopStore) RecordAnalysis(ctx context.Context, record *AnalysisRecord) error {
	return nil
}

func (s *NoopStore) Close() error { return nil }
