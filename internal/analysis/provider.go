package analysis

import (
	"context"
	"fmt"
	"strings"

	"github.com/socialscope/socialscope/internal/config"
	"github.com/socialscope/socialscope/internal/logger"
)

// Provider produces an analysis result for a social media profile.
type Provider interface {
	// Name returns the provider name.
	Name() string

	// Analyze inspects the profile and returns detected interests and
	// structural signals. Implementations must honor ctx cancellation.
	Analyze(ctx context.Context, profile Profile) (*Result, error)

	// IsAvailable reports whether the provider is configured and reachable.
	IsAvailable(ctx context.Context) bool
}

// NewProvider builds the configured analysis provider.
func NewProvider(cfg config.AnalysisConfig, log *logger.Logger) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "openai":
		return NewOpenAIProvider(cfg, log)
	case "stub", "":
		return NewStubProvider(log), nil
	default:
		return nil, fmt.Errorf("unknown analysis provider: %s (supported: openai, stub)", cfg.Provider)
	}
}
