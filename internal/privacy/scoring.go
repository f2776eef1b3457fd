package privacy

import "time"

// Risk factor weights. The score bands below were tuned against exactly
// these values; changing a weight silently shifts classification outcomes.
const (
	weightSpecialCategoryData = 4
	weightPersonalData        = 2

	weightHighConfidence   = 3
	weightMediumConfidence = 2
	weightLowConfidence    = 1

	weightCriticalHarm = 4
	weightHighHarm     = 3
	weightModerateHarm = 2

	weightStrictRegulation   = 3
	weightModerateRegulation = 2
)

// defaultConfidence is assumed when an inference carries no confidence.
const defaultConfidence = 0.5

// scoreBand maps an inclusive score range to a risk level.
type scoreBand struct {
	Level RiskLevel
	Min   int
	Max   int
}

var scoreBands = []scoreBand{
	{RiskCritical, 12, 15},
	{RiskHigh, 9, 11},
	{RiskMedium, 6, 8},
	{RiskLow, 3, 5},
	{RiskNone, 0, 2},
}

// bandFor converts a numeric score to its risk level. Scores outside every
// band fall back to medium.
func bandFor(score int) RiskLevel {
	for _, band := range scoreBands {
		if score >= band.Min && score <= band.Max {
			return band.Level
		}
	}
	return RiskMedium
}

// Scorer computes weighted risk assessments for categorized inferences.
type Scorer struct {
	now func() time.Time
}

// NewScorer creates a risk scorer.
func NewScorer() *Scorer {
	return &Scorer{now: time.Now}
}

// Score sums four independent risk factors for one inference: data
// sensitivity, inference confidence, potential harm and regulatory
// coverage. Contributing factor tags record which branch fired, in factor
// order, for explainability.
func (s *Scorer) Score(inf Inference) Assessment {
	score := 0
	var factors []string

	// Data sensitivity
	if inf.SpecialCategory {
		score += weightSpecialCategoryData
		factors = append(factors, "special_category_data")
	} else {
		score += weightPersonalData
		factors = append(factors, "personal_data")
	}

	// Inference confidence
	confidence := defaultConfidence
	if inf.Confidence != nil {
		confidence = *inf.Confidence
	}
	switch {
	case confidence > 0.8:
		score += weightHighConfidence
		factors = append(factors, "high_confidence_inference")
	case confidence > 0.5:
		score += weightMediumConfidence
		factors = append(factors, "medium_confidence_inference")
	default:
		score += weightLowConfidence
		factors = append(factors, "low_confidence_inference")
	}

	// Potential harm
	switch inf.RiskLevel {
	case RiskCritical:
		score += weightCriticalHarm
		factors = append(factors, "critical_harm_potential")
	case RiskHigh:
		score += weightHighHarm
		factors = append(factors, "high_harm_potential")
	default:
		score += weightModerateHarm
		factors = append(factors, "moderate_harm_potential")
	}

	// Regulatory coverage
	if inf.SpecialCategory {
		score += weightStrictRegulation
		factors = append(factors, "strict_regulatory_coverage")
	} else {
		score += weightModerateRegulation
		factors = append(factors, "moderate_regulatory_coverage")
	}

	return Assessment{
		TotalScore:          score,
		RiskLevel:           bandFor(score),
		ContributingFactors: factors,
		CalculatedAt:        s.now().UTC(),
	}
}
