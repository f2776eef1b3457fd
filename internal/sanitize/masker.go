package sanitize

import (
	"regexp"

	"github.com/socialscope/socialscope/internal/logger"
	"go.uber.org/zap"
)

// MaskRule represents a single sensitive-data masking rule
type MaskRule struct {
	Name        string
	Pattern     *regexp.Regexp
	Replacement string
}

// Finding represents one masking rule that fired on a value
type Finding struct {
	EntityType string `json:"entity_type"`
	Masked     string `json:"masked"`
	Count      int    `json:"count"`
}

// defaultMaskRules returns the built-in masking rules in application order.
func defaultMaskRules() []MaskRule {
	return []MaskRule{
		{
			Name:        "ssn",
			Pattern:     regexp.MustCompile(`\b\d{3}-?\d{2}-?\d{4}\b`),
			Replacement: "[MASKED_SSN]",
		},
		{
			Name:        "credit_card",
			Pattern:     regexp.MustCompile(`\b\d{4}[-\s]?\d{4}[-\s]?\d{4}[-\s]?\d{4}\b`),
			Replacement: "[MASKED_CREDIT_CARD]",
		},
		{
			Name:        "phone",
			Pattern:     regexp.MustCompile(`\b\d{3}[-.]?\d{3}[-.]?\d{4}\b`),
			Replacement: "[MASKED_PHONE]",
		},
		{
			Name:        "ip_address",
			Pattern:     regexp.MustCompile(`\b\d{1,3}\.\d{1,3}\.\d{1,3}\.\d{1,3}\b`),
			Replacement: "[MASKED_IP_ADDRESS]",
		},
	}
}

// Masker rewrites sensitive data patterns before any value leaves the
// boundary to an LLM or a client.
type Masker struct {
	rules  []MaskRule
	logger *logger.Logger
}

// NewMasker creates a masker with the built-in rule set.
func NewMasker(log *logger.Logger) *Masker {
	return &Masker{
		rules:  defaultMaskRules(),
		logger: log,
	}
}

// MaskString applies every rule to a single string and reports what fired.
func (m *Masker) MaskString(text string) (string, []Finding) {
	masked := text
	var findings []Finding

	for _, rule := range m.rules {
		matches := rule.Pattern.FindAllString(masked, -1)
		if len(matches) == 0 {
			continue
		}

		findings = append(findings, Finding{
			EntityType: rule.Name,
			Masked:     rule.Replacement,
			Count:      len(matches),
		})
		masked = rule.Pattern.ReplaceAllString(masked, rule.Replacement)

		if m.logger != nil {
			m.logger.Debug("Sensitive data masked",
				zap.String("entity_type", rule.Name),
				zap.Int("count", len(matches)),
			)
		}
	}

	return masked, findings
}

// MaskValue recursively masks every string inside nested mapping and
// sequence structures. Non-string leaves pass through unchanged.
func (m *Masker) MaskValue(value any) any {
	switch v := value.(type) {
	case string:
		masked, _ := m.MaskString(v)
		return masked
	case map[string]any:
		out := make(map[string]any, len(v))
		for key, item := range v {
			out[key] = m.MaskValue(item)
		}
		return out
	case map[string]string:
		out := make(map[string]string, len(v))
		for key, item := range v {
			masked, _ := m.MaskString(item)
			out[key] = masked
		}
		return out
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = m.MaskValue(item)
		}
		return out
	case []string:
		out := make([]string, len(v))
		for i, item := range v {
			masked, _ := m.MaskString(item)
			out[i] = masked
		}
		return out
	default:
		return value
	}
}
