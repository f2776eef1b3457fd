package privacy

import (
	"strings"
	"testing"
	"time"
)

func newTestReporter() *Reporter {
	reporter := NewReporter(NewCatalog(nil), fixedScorer(time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)), nil)
	reporter.now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	return reporter
}

func TestGenerate_EmptyInput(t *testing.T) {
	reporter := newTestReporter()

	report := reporter.Generate(Input{})

	if report.OverallRiskScore != 0 {
		t.Errorf("overall score = %v, want 0", report.OverallRiskScore)
	}
	if report.OverallRiskLevel != RiskNone {
		t.Errorf("overall level = %s, want none", report.OverallRiskLevel)
	}
	if report.TotalInferences != 0 || report.SpecialCategoryInferences != 0 {
		t.Errorf("inference counts = %d/%d, want 0/0", report.TotalInferences, report.SpecialCategoryInferences)
	}
	if len(report.PrivacyRecommendations) != 0 {
		t.Errorf("expected no recommendations, got %v", report.PrivacyRecommendations)
	}
	if report.RegulatoryCompliance.ComplianceRiskLevel != "medium" {
		t.Errorf("compliance level = %s, want medium", report.RegulatoryCompliance.ComplianceRiskLevel)
	}
	if len(report.RegulatoryCompliance.ApplicableRegulations) != 0 {
		t.Errorf("expected no regulations, got %v", report.RegulatoryCompliance.ApplicableRegulations)
	}
}

func TestGenerate_SpecialCategoryInterest(t *testing.T) {
	reporter := newTestReporter()

	report := reporter.Generate(Input{Interests: []string{"lgbtq dating"}})

	if report.TotalInferences != 1 {
		t.Fatalf("total inferences = %d, want 1", report.TotalInferences)
	}
	if report.SpecialCategoryInferences != 1 {
		t.Errorf("special category inferences = %d, want 1", report.SpecialCategoryInferences)
	}

	inf := report.CategorizedInferences[0]
	if inf.Category != CategorySexualOrientation || !inf.SpecialCategory {
		t.Errorf("unexpected inference: %+v", inf)
	}

	// special(4) + default-confidence low(1) + critical harm(4) + strict(3)
	if report.OverallRiskScore != 12 {
		t.Errorf("overall score = %v, want 12", report.OverallRiskScore)
	}
	if report.OverallRiskLevel != RiskCritical {
		t.Errorf("overall level = %s, want critical", report.OverallRiskLevel)
	}

	// Urgent advice first, then enhanced protection for special category data.
	if len(report.PrivacyRecommendations) != 7 {
		t.Fatalf("recommendations = %d, want 7: %v", len(report.PrivacyRecommendations), report.PrivacyRecommendations)
	}
	if report.PrivacyRecommendations[0] != urgentRecommendations[0] {
		t.Errorf("first recommendation = %q, want urgent advice", report.PrivacyRecommendations[0])
	}
	found := false
	for _, rec := range report.PrivacyRecommendations {
		if strings.Contains(rec, "enhanced privacy protection") {
			found = true
		}
	}
	if !found {
		t.Error("expected enhanced protection recommendation for special category data")
	}

	if !containsString(report.RegulatoryCompliance.ApplicableRegulations, "GDPR Article 9") {
		t.Errorf("expected GDPR Article 9 in %v", report.RegulatoryCompliance.ApplicableRegulations)
	}
	if report.RegulatoryCompliance.ComplianceRiskLevel != "high" {
		t.Errorf("compliance level = %s, want high", report.RegulatoryCompliance.ComplianceRiskLevel)
	}
}

func TestGenerate_HealthTriggersHIPAA(t *testing.T) {
	reporter := newTestReporter()

	report := reporter.Generate(Input{Interests: []string{"health tracking"}})

	var regulations []string
	for _, req := range report.RegulatoryCompliance.ComplianceRequirements {
		regulations = append(regulations, req.Regulation)
	}
	if !containsString(regulations, "GDPR Article 9") || !containsString(regulations, "HIPAA") {
		t.Errorf("expected GDPR Article 9 and HIPAA requirements, got %v", regulations)
	}

	found := false
	for _, rec := range report.PrivacyRecommendations {
		if strings.Contains(rec, "medical privacy settings") {
			found = true
		}
	}
	if !found {
		t.Error("expected health-specific recommendation")
	}
}

func TestGenerate_StructuralSignalsOnly(t *testing.T) {
	reporter := newTestReporter()

	report := reporter.Generate(Input{
		EconomicIndicators: map[string]any{"economic_status": "employed_professional"},
		SchedulePatterns:   map[string]any{"active_hours": "business_hours"},
	})

	if report.TotalInferences != 2 {
		t.Fatalf("total inferences = %d, want 2", report.TotalInferences)
	}
	if report.SpecialCategoryInferences != 0 {
		t.Errorf("special inferences = %d, want 0", report.SpecialCategoryInferences)
	}

	// Both structural inferences score personal(2) + low(1) + moderate(2) + moderate(2) = 7.
	if report.OverallRiskScore != 7 {
		t.Errorf("overall score = %v, want 7", report.OverallRiskScore)
	}
	if report.OverallRiskLevel != RiskMedium {
		t.Errorf("overall level = %s, want medium", report.OverallRiskLevel)
	}

	if report.PrivacyRecommendations[0] == urgentRecommendations[0] {
		t.Error("medium overall risk must not emit urgent recommendations")
	}
	if report.RegulatoryCompliance.ComplianceRiskLevel != "medium" {
		t.Errorf("compliance level = %s, want medium", report.RegulatoryCompliance.ComplianceRiskLevel)
	}
}

func TestGenerate_MeanScoreRounding(t *testing.T) {
	reporter := newTestReporter()

	// One critical-band inference (12) and one medium-band (7); mean 9.5
	// rounds to 10, landing in the high band.
	report := reporter.Generate(Input{
		Interests:   []string{"lgbtq", "finance"},
		Confidences: map[string]float64{"finance": 0.3},
	})

	if report.TotalInferences != 2 {
		t.Fatalf("total inferences = %d, want 2", report.TotalInferences)
	}
	if report.OverallRiskScore != 9.5 {
		t.Errorf("overall score = %v, want 9.5", report.OverallRiskScore)
	}
	if report.OverallRiskLevel != RiskHigh {
		t.Errorf("overall level = %s, want high", report.OverallRiskLevel)
	}
}

func TestGenerate_RegulationsDeduplicated(t *testing.T) {
	reporter := newTestReporter()

	report := reporter.Generate(Input{Interests: []string{"health", "mental health"}})

	seen := make(map[string]int)
	for _, reg := range report.RegulatoryCompliance.ApplicableRegulations {
		seen[reg]++
	}
	for reg, count := range seen {
		if count > 1 {
			t.Errorf("regulation %q listed %d times", reg, count)
		}
	}
}

func containsString(list []string, want string) bool {
	for _, item := range list {
		if item == want {
			return true
		}
	}
	return false
}
