package privacy

import "time"

// RiskLevel is the ordinal risk scale used across templates, assessments
// and reports.
type RiskLevel string

const (
	RiskNone     RiskLevel = "none"
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// Rank returns the ordinal position of a risk level, for comparisons.
func (r RiskLevel) Rank() int {
	switch r {
	case RiskNone:
		return 0
	case RiskLow:
		return 1
	case RiskMedium:
		return 2
	case RiskHigh:
		return 3
	case RiskCritical:
		return 4
	default:
		return -1
	}
}

// Category is an inference taxonomy bucket describing what kind of
// sensitive attribute a piece of detected text implies.
type Category string

const (
	CategoryDemographic          Category = "demographic"
	CategoryHealth               Category = "health"
	CategoryPoliticalViews       Category = "political_views"
	CategoryReligiousBeliefs     Category = "religious_beliefs"
	CategorySexualOrientation    Category = "sexual_orientation"
	CategoryFinancialStatus      Category = "financial_status"
	CategoryBehavioralPatterns   Category = "behavioral_patterns"
	CategoryLocationData         Category = "location_data"
	CategoryEmployment           Category = "employment"
	CategorySocialRelations      Category = "social_relations"
	CategoryPreferences          Category = "preferences"
	CategoryOnlineActivity       Category = "online_activity"
	CategoryBiometricTraits      Category = "biometric_traits"
	CategoryPsychologicalProfile Category = "psychological_profile"
)

// Template describes one inference category: its risk, the regulatory
// frameworks that cover it, the harms it can cause and the controls that
// mitigate it. Templates are static catalog data, never mutated at runtime.
type Template struct {
	Category             Category  `json:"category"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	RiskLevel            RiskLevel `json:"risk_level"`
	RegulatoryFrameworks []string  `json:"regulatory_frameworks"`
	PotentialHarms       []string  `json:"potential_harms"`
	DetectionMethods     []string  `json:"detection_methods"`
	RecommendedControls  []string  `json:"recommended_controls"`
	Examples             []string  `json:"examples"`
	GDPRArticle          string    `json:"gdpr_article,omitempty"`
	SpecialCategory      bool      `json:"special_category"`
}

// Inference is one detected attribute mapped onto the taxonomy. Derived
// per analysis run; its lifecycle is a single report generation.
type Inference struct {
	Inference       string    `json:"inference"`
	Category        Category  `json:"category"`
	Template        *Template `json:"template,omitempty"`
	RiskLevel       RiskLevel `json:"risk_level"`
	SpecialCategory bool      `json:"special_category"`
	Confidence      *float64  `json:"confidence,omitempty"`
}

// Assessment is the scored risk of a single inference.
type Assessment struct {
	TotalScore          int       `json:"total_score"`
	RiskLevel           RiskLevel `json:"risk_level"`
	ContributingFactors []string  `json:"contributing_factors"`
	CalculatedAt        time.Time `json:"calculation_timestamp"`
}

// Input is the analysis payload consumed by categorization and report
// generation: free-text interests plus two payload-level structural
// signals.
type Input struct {
	Interests          []string           `json:"interests"`
	EconomicIndicators map[string]any     `json:"economic_indicators,omitempty"`
	SchedulePatterns   map[string]any     `json:"schedule_patterns,omitempty"`
	Confidences        map[string]float64 `json:"confidences,omitempty"`
}

// ScoredInference pairs an inference with its risk assessment.
type ScoredInference struct {
	Inference  string     `json:"inference"`
	Category   Category   `json:"category"`
	Assessment Assessment `json:"risk_assessment"`
}

// Requirement is one regulatory compliance obligation triggered by the
// detected inferences.
type Requirement struct {
	Regulation  string `json:"regulation"`
	Requirement string `json:"requirement"`
	RiskLevel   string `json:"risk_level"`
}

// Compliance summarizes the regulatory exposure of a report.
type Compliance struct {
	ApplicableRegulations  []string      `json:"applicable_regulations"`
	ComplianceRequirements []Requirement `json:"compliance_requirements"`
	ComplianceRiskLevel    string        `json:"compliance_risk_level"`
}

// Report is the aggregate privacy-risk report for one analysis session.
// Returned to the caller; never persisted by this package.
type Report struct {
	OverallRiskLevel          RiskLevel         `json:"overall_risk_level"`
	OverallRiskScore          float64           `json:"overall_risk_score"`
	TotalInferences           int               `json:"total_inferences"`
	SpecialCategoryInferences int               `json:"special_category_inferences"`
	CategorizedInferences     []Inference       `json:"categorized_inferences"`
	RiskAssessments           []ScoredInference `json:"risk_assessments"`
	SpecialCategoryData       []Inference       `json:"special_category_data"`
	PrivacyRecommendations    []string          `json:"privacy_recommendations"`
	RegulatoryCompliance      Compliance        `json:"regulatory_compliance"`
	GeneratedAt               time.Time         `json:"report_timestamp"`
}
