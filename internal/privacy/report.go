package privacy

import (
	"math"
	"time"

	"github.com/socialscope/socialscope/internal/logger"
	"go.uber.org/zap"
)

// Recommendation text emitted by report generation.
var urgentRecommendations = []string{
	"Immediate privacy settings review required",
	"Consider limiting data sharing across platforms",
	"Enable maximum privacy controls on all accounts",
	"Review and delete unnecessary personal information",
}

var categoryRecommendations = []struct {
	Category Category
	Message  string
}{
	{CategoryHealth, "Health-related inferences detected - review medical privacy settings"},
	{CategoryPoliticalViews, "Political preferences may be inferable - consider limiting political content engagement"},
	{CategoryFinancialStatus, "Financial information may be exposed - review spending and lifestyle sharing"},
	{CategoryLocationData, "Location patterns detected - disable location sharing where possible"},
}

var specialCategoryRecommendations = []string{
	"Special category data inferences detected - enhanced privacy protection recommended",
	"Consider using privacy-focused services and tools",
	"Review data processing consents and withdraw where possible",
}

// Reporter orchestrates the catalog and the scorer over a full analysis
// payload to produce the final privacy-risk report.
type Reporter struct {
	catalog *Catalog
	scorer  *Scorer
	logger  *logger.Logger
	now     func() time.Time
}

// NewReporter creates a report generator.
func NewReporter(catalog *Catalog, scorer *Scorer, log *logger.Logger) *Reporter {
	return &Reporter{
		catalog: catalog,
		scorer:  scorer,
		logger:  log,
		now:     time.Now,
	}
}

// Generate builds the privacy report for one analysis payload.
func (r *Reporter) Generate(input Input) *Report {
	inferences := r.catalog.Categorize(input)

	assessments := make([]ScoredInference, 0, len(inferences))
	scoreSum := 0
	for _, inf := range inferences {
		assessment := r.scorer.Score(inf)
		assessments = append(assessments, ScoredInference{
			Inference:  inf.Inference,
			Category:   inf.Category,
			Assessment: assessment,
		})
		scoreSum += assessment.TotalScore
	}

	meanScore := 0.0
	if len(assessments) > 0 {
		meanScore = float64(scoreSum) / float64(len(assessments))
	}
	overallLevel := bandFor(int(math.Round(meanScore)))

	var specialInferences []Inference
	for _, inf := range inferences {
		if inf.SpecialCategory {
			specialInferences = append(specialInferences, inf)
		}
	}

	report := &Report{
		OverallRiskLevel:          overallLevel,
		OverallRiskScore:          meanScore,
		TotalInferences:           len(inferences),
		SpecialCategoryInferences: len(specialInferences),
		CategorizedInferences:     inferences,
		RiskAssessments:           assessments,
		SpecialCategoryData:       specialInferences,
		PrivacyRecommendations:    buildRecommendations(inferences, overallLevel),
		RegulatoryCompliance:      assessCompliance(inferences),
		GeneratedAt:               r.now().UTC(),
	}

	if r.logger != nil {
		r.logger.Info("Privacy report generated",
			zap.Int("inferences", report.TotalInferences),
			zap.Int("special_category", report.SpecialCategoryInferences),
			zap.String("overall_risk_level", string(report.OverallRiskLevel)),
		)
	}

	return report
}

// buildRecommendations assembles advice in a fixed order: urgent actions
// for high overall risk first, then category-specific advice, then
// enhanced protection when special category data is present.
func buildRecommendations(inferences []Inference, overall RiskLevel) []string {
	var recommendations []string

	if overall == RiskCritical || overall == RiskHigh {
		recommendations = append(recommendations, urgentRecommendations...)
	}

	present := make(map[Category]bool)
	hasSpecial := false
	for _, inf := range inferences {
		present[inf.Category] = true
		if inf.SpecialCategory {
			hasSpecial = true
		}
	}

	for _, rec := range categoryRecommendations {
		if present[rec.Category] {
			recommendations = append(recommendations, rec.Message)
		}
	}

	if hasSpecial {
		recommendations = append(recommendations, specialCategoryRecommendations...)
	}

	return recommendations
}

// assessCompliance unions the regulatory frameworks of every matched
// template and emits a requirement entry per triggered framework.
func assessCompliance(inferences []Inference) Compliance {
	var regulations []string
	seen := make(map[string]bool)
	for _, inf := range inferences {
		if inf.Template == nil {
			continue
		}
		for _, framework := range inf.Template.RegulatoryFrameworks {
			if seen[framework] {
				continue
			}
			seen[framework] = true
			regulations = append(regulations, framework)
		}
	}

	var requirements []Requirement
	if seen["GDPR Article 9"] {
		requirements = append(requirements, Requirement{
			Regulation:  "GDPR Article 9",
			Requirement: "Special category data processing requires explicit consent or other legal basis",
			RiskLevel:   "high",
		})
	}
	if seen["HIPAA"] {
		requirements = append(requirements, Requirement{
			Regulation:  "HIPAA",
			Requirement: "Health information requires additional security safeguards",
			RiskLevel:   "high",
		})
	}

	level := "medium"
	for _, req := range requirements {
		if req.RiskLevel == "high" {
			level = "high"
			break
		}
	}

	return Compliance{
		ApplicableRegulations:  regulations,
		ComplianceRequirements: requirements,
		ComplianceRiskLevel:    level,
	}
}
