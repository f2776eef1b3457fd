package audit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/logger"
)

const auditSchema = `
CREATE TABLE IF NOT EXISTS url_validations (
	id          BIGSERIAL PRIMARY KEY,
	request_id  TEXT NOT NULL,
	platform    TEXT NOT NULL DEFAULT '',
	valid       BOOLEAN NOT NULL,
	cleaned_url TEXT NOT NULL DEFAULT '',
	reason      TEXT NOT NULL DEFAULT '',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE TABLE IF NOT EXISTS analysis_runs (
	id                 BIGSERIAL PRIMARY KEY,
	request_id         TEXT NOT NULL,
	tracking_id        TEXT NOT NULL,
	platform           TEXT NOT NULL DEFAULT '',
	provider           TEXT NOT NULL DEFAULT '',
	overall_risk_level TEXT NOT NULL DEFAULT '',
	total_inferences   INTEGER NOT NULL DEFAULT 0,
	special_category   INTEGER NOT NULL DEFAULT 0,
	created_at         TIMESTAMPTZ NOT NULL DEFAULT now()
);

CREATE INDEX IF NOT EXISTS idx_analysis_runs_tracking_id ON analysis_runs (tracking_id);
`

// PostgresStore persists audit records in PostgreSQL.
type PostgresStore struct {
	db     *sqlx.DB
	logger *logger.Logger
}

// NewPostgresStore connects to the audit database and ensures the schema.
func NewPostgresStore(cfg config.AuditConfig, log *logger.Logger) (*PostgresStore, error) {
	db, err := sqlx.Connect("postgres", cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to audit database: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	store := &PostgresStore{db: db, logger: log}
	if err := store.initialize(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize audit store: %w", err)
	}

	if log != nil {
		log.Info("Audit store initialized",
			zap.String("database_url", maskDatabaseURL(cfg.DatabaseURL)),
			zap.Int("max_open_conns", cfg.MaxOpenConns),
		)
	}

	return store, nil
}

func (s *PostgresStore) initialize() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		return fmt.Errorf("database ping failed: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, auditSchema); err != nil {
		return fmt.Errorf("schema setup failed: %w", err)
	}
	return nil
}

// RecordValidation inserts one URL validation record.
func (s *PostgresStore) RecordValidation(ctx context.Context, record *ValidationRecord) error {
	query := `
		INSERT INTO url_validations (request_id, platform, valid, cleaned_url, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		record.RequestID,
		record.Platform,
		record.Valid,
		record.CleanedURL,
		record.Reason,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record validation: %w", err)
	}
	return nil
}

// RecordAnalysis inserts one analysis run record.
func (s *PostgresStore) RecordAnalysis(ctx context.Context, record *AnalysisRecord) error {
	query := `
		INSERT INTO analysis_runs
			(request_id, tracking_id, platform, provider, overall_risk_level, total_inferences, special_category)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at`

	err := s.db.QueryRowContext(ctx, query,
		record.RequestID,
		record.TrackingID,
		record.Platform,
		record.Provider,
		record.OverallRiskLevel,
		record.TotalInferences,
		record.SpecialCategory,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to record analysis: %w", err)
	}
	return nil
}

// Close releases the database connection pool.
func (s *PostgresStore) Close() error {
	return s.db.Close()
}

// maskDatabaseURL hides credentials in a connection URL for logging.
func maskDatabaseURL(url string) string {
	if !strings.Contains(url, "@") {
		return url
	}
	parts := strings.SplitN(url, "@", 2)
	userPart := parts[0]
	if idx := strings.LastIndex(userPart, ":"); idx > strings.Index(userPart, "//")+1 {
		userPart = userPart[:idx] + ":***"
	}
	return userPart + "@" + parts[1]
}
