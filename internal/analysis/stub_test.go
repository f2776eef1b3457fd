package analysis

import (
	"context"
	"reflect"
	"testing"

	"github.com/socialscope/socialscope/internal/config"
)

func TestStubProvider_Deterministic(t *testing.T) {
	provider := NewStubProvider(nil)
	profile := Profile{URL: "https://linkedin.com/in/alice", Platform: "linkedin", Username: "alice"}

	first, err := provider.Analyze(context.Background(), profile)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	second, err := provider.Analyze(context.Background(), profile)
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}

	if !reflect.DeepEqual(first.Interests, second.Interests) {
		t.Errorf("interests not deterministic: %v vs %v", first.Interests, second.Interests)
	}
	if !reflect.DeepEqual(first.Confidences, second.Confidences) {
		t.Errorf("confidences not deterministic: %v vs %v", first.Confidences, second.Confidences)
	}
}

func TestStubProvider_PlatformInterests(t *testing.T) {
	provider := NewStubProvider(nil)

	result, err := provider.Analyze(context.Background(), Profile{Platform: "instagram", Username: "bob"})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if len(result.Interests) == 0 {
		t.Fatal("expected interests")
	}
	if result.Interests[0] != "fitness" {
		t.Errorf("first interest = %q, want fitness", result.Interests[0])
	}
	if result.Provider != "stub" {
		t.Errorf("provider = %q, want stub", result.Provider)
	}
	if len(result.EconomicIndicators) == 0 || len(result.SchedulePatterns) == 0 {
		t.Error("expected structural signal maps to be populated")
	}
}

func TestStubProvider_UnknownPlatformFallback(t *testing.T) {
	provider := NewStubProvider(nil)

	result, err := provider.Analyze(context.Background(), Profile{Platform: "unknown"})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	if !reflect.DeepEqual(result.Interests, defaultStubInterests) {
		t.Errorf("interests = %v, want fallback set", result.Interests)
	}
}

func TestStubProvider_ContextCancellation(t *testing.T) {
	provider := NewStubProvider(nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := provider.Analyze(ctx, Profile{Platform: "twitter"}); err == nil {
		t.Error("expected error for cancelled context")
	}
}

func TestStubProvider_ConfidencesDescend(t *testing.T) {
	provider := NewStubProvider(nil)

	result, err := provider.Analyze(context.Background(), Profile{Platform: "reddit"})
	if err != nil {
		t.Fatalf("analyze failed: %v", err)
	}
	for i := 1; i < len(result.Interests); i++ {
		if result.Confidences[result.Interests[i]] >= result.Confidences[result.Interests[i-1]] {
			t.Errorf("confidence for %q not below %q", result.Interests[i], result.Interests[i-1])
		}
	}
}

func TestNewProvider_Selection(t *testing.T) {
	provider, err := NewProvider(config.AnalysisConfig{Provider: "stub"}, nil)
	if err != nil {
		t.Fatalf("factory failed: %v", err)
	}
	if provider.Name() != "stub" {
		t.Errorf("provider = %q, want stub", provider.Name())
	}
	if !provider.IsAvailable(context.Background()) {
		t.Error("stub must always be available")
	}

	if _, err := NewProvider(config.AnalysisConfig{Provider: "openai"}, nil); err == nil {
		t.Error("expected error for openai provider without API key")
	}

	if _, err := NewProvider(config.AnalysisConfig{Provider: "oracle"}, nil); err == nil {
		t.Error("expected error for unknown provider")
	}
}
