package analysis

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/socialscope/socialscope/internal/logger"
)

// platformInterests maps each supported platform to the deterministic
// interest set the stub reports for it.
var platformInterests = map[string][]string{
	"linkedin":  {"professional networking", "investment", "technology"},
	"twitter":   {"politics", "technology", "news"},
	"instagram": {"fitness", "travel", "photography"},
	"facebook":  {"travel", "family", "local events"},
	"tiktok":    {"fitness", "music", "entertainment"},
	"youtube":   {"technology", "education", "entertainment"},
	"reddit":    {"technology", "finance", "gaming"},
}

var defaultStubInterests = []string{"technology", "news"}

// StubProvider returns fixed analysis payloads without any external call.
// It exists for local development and for tests that exercise the full
// pipeline deterministically.
type StubProvider struct {
	logger *logger.Logger
	now    func() time.Time
}

// NewStubProvider creates the offline analysis provider.
func NewStubProvider(log *logger.Logger) *StubProvider {
	return &StubProvider{
		logger: log,
		now:    time.Now,
	}
}

// Name returns the provider name.
func (p *StubProvider) Name() string {
	return "stub"
}

// IsAvailable always succeeds; the stub has no external dependency.
func (p *StubProvider) IsAvailable(ctx context.Context) bool {
	return true
}

// Analyze returns a canned result whose interests depend only on the
// profile platform, so repeated calls are identical.
func (p *StubProvider) Analyze(ctx context.Context, profile Profile) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	interests, ok := platformInterests[profile.Platform]
	if !ok {
		interests = defaultStubInterests
	}

	confidences := make(map[string]float64, len(interests))
	for i, interest := range interests {
		// First interest strongest, descending by a fixed step.
		confidences[interest] = 0.9 - 0.15*float64(i)
	}

	result := &Result{
		Interests:   append([]string(nil), interests...),
		Confidences: confidences,
		EconomicIndicators: map[string]any{
			"professional_network": "active",
			"brand_associations":   []string{"technology", "professional_development"},
			"economic_status":      "employed_professional",
		},
		SchedulePatterns: map[string]any{
			"posting_frequency": "regular",
			"active_hours":      "business_hours",
			"engagement_style":  "professional",
		},
		Sentiment: &Sentiment{
			OverallSentiment:    "positive",
			Confidence:          0.78,
			EmotionalIndicators: []string{"professional", "optimistic"},
		},
		BehavioralSummary: map[string]any{
			"posting_frequency": "regular",
			"active_hours":      "business_hours",
		},
		Provider:   p.Name(),
		AnalyzedAt: p.now().UTC(),
	}

	if p.logger != nil {
		p.logger.Debug("Stub analysis generated",
			zap.String("platform", profile.Platform),
			zap.String("username", profile.Username),
			zap.Int("interests", len(result.Interests)),
		)
	}

	return result, nil
}
