package privacy

import (
	"strings"

	"github.com/socialscope/socialscope/internal/logger"
	"go.uber.org/zap"
)

// interestKeyword maps a keyword found inside a free-text interest to one
// or more inference categories. An interest may fan out to several
// categories at once; that is intentional.
type interestKeyword struct {
	Keyword    string
	Categories []Category
}

// interestKeywords is consulted in declared order; categories are
// deduplicated per interest preserving first-seen order.
var interestKeywords = []interestKeyword{
	{"health", []Category{CategoryHealth}},
	{"fitness", []Category{CategoryHealth, CategoryBehavioralPatterns}},
	{"politics", []Category{CategoryPoliticalViews}},
	{"religion", []Category{CategoryReligiousBeliefs}},
	{"spirituality", []Category{CategoryReligiousBeliefs}},
	{"lgbtq", []Category{CategorySexualOrientation}},
	{"dating", []Category{CategorySexualOrientation}},
	{"finance", []Category{CategoryFinancialStatus}},
	{"investment", []Category{CategoryFinancialStatus}},
	{"psychology", []Category{CategoryPsychologicalProfile}},
	{"mental health", []Category{CategoryHealth, CategoryPsychologicalProfile}},
	{"location", []Category{CategoryLocationData}},
	{"travel", []Category{CategoryLocationData, CategoryFinancialStatus}},
}

// Catalog holds the immutable privacy template taxonomy and categorizes
// detected inferences against it.
type Catalog struct {
	templates map[Category]*Template
	logger    *logger.Logger
}

// NewCatalog builds the catalog from the static template data.
func NewCatalog(log *logger.Logger) *Catalog {
	return &Catalog{
		templates: defaultTemplates(),
		logger:    log,
	}
}

// Get returns the template for a category, if one exists.
func (c *Catalog) Get(category Category) (*Template, bool) {
	template, ok := c.templates[category]
	return template, ok
}

// All returns every template keyed by category.
func (c *Catalog) All() map[Category]*Template {
	return c.templates
}

// Categorize maps each detected interest onto the taxonomy via the keyword
// table, then appends one synthetic inference per non-empty structural
// signal. Interests matching no keyword produce nothing; that is expected,
// not exceptional. Output order is insertion order.
func (c *Catalog) Categorize(input Input) []Inference {
	var inferences []Inference

	for _, interest := range input.Interests {
		for _, category := range mapInterestToCategories(interest) {
			template, ok := c.Get(category)
			if !ok {
				continue
			}

			inf := Inference{
				Inference:       interest,
				Category:        category,
				Template:        template,
				RiskLevel:       template.RiskLevel,
				SpecialCategory: template.SpecialCategory,
			}
			if confidence, ok := input.Confidences[interest]; ok {
				value := confidence
				inf.Confidence = &value
			}
			inferences = append(inferences, inf)
		}
	}

	if len(input.EconomicIndicators) > 0 {
		inferences = append(inferences, c.structuralInference("financial_status_indicators", CategoryFinancialStatus))
	}

	if len(input.SchedulePatterns) > 0 {
		inferences = append(inferences, c.structuralInference("behavioral_patterns", CategoryBehavioralPatterns))
	}

	if c.logger != nil {
		c.logger.Debug("Inferences categorized",
			zap.Int("interests", len(input.Interests)),
			zap.Int("inferences", len(inferences)),
		)
	}

	return inferences
}

// structuralInference synthesizes an inference from a payload-level signal
// regardless of keyword matches.
func (c *Catalog) structuralInference(name string, category Category) Inference {
	inf := Inference{
		Inference: name,
		Category:  category,
		RiskLevel: RiskMedium,
	}
	if template, ok := c.Get(category); ok {
		inf.Template = template
		inf.RiskLevel = template.RiskLevel
	}
	return inf
}

// mapInterestToCategories returns the deduplicated categories for one
// interest string, preserving keyword-table order.
func mapInterestToCategories(interest string) []Category {
	lower := strings.ToLower(interest)

	var categories []Category
	seen := make(map[Category]bool)
	for _, entry := range interestKeywords {
		if !strings.Contains(lower, entry.Keyword) {
			continue
		}
		for _, category := range entry.Categories {
			if seen[category] {
				continue
			}
			seen[category] = true
			categories = append(categories, category)
		}
	}

	return categories
}
