package analysis

import "time"

// Profile identifies the social media profile under analysis. It carries
// only the already validated and cleaned URL components.
type Profile struct {
	URL      string `json:"url"`
	Platform string `json:"platform"`
	Username string `json:"username"`
}

// Sentiment summarizes the emotional tone detected across a profile.
type Sentiment struct {
	OverallSentiment    string   `json:"overall_sentiment"`
	Confidence          float64  `json:"confidence"`
	EmotionalIndicators []string `json:"emotional_indicators"`
}

// Result is the raw output of a profile analysis run, before any privacy
// classification. Interests are free-text topics; the two indicator maps
// are structural signals derived from posting activity.
type Result struct {
	Interests          []string           `json:"interests"`
	Confidences        map[string]float64 `json:"confidences,omitempty"`
	EconomicIndicators map[string]any     `json:"economic_indicators,omitempty"`
	SchedulePatterns   map[string]any     `json:"schedule_patterns,omitempty"`
	Sentiment          *Sentiment         `json:"sentiment_analysis,omitempty"`
	BehavioralSummary  map[string]any     `json:"behavioral_patterns,omitempty"`
	Provider           string             `json:"provider"`
	Model              string             `json:"model,omitempty"`
	AnalyzedAt         time.Time          `json:"analyzed_at"`
}
