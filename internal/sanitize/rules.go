package sanitize

import "regexp"

// Input length limits per field kind.
const (
	maxNameLength  = 100
	maxEmailLength = 254  // RFC 5321 limit
	maxURLLength   = 2048 // common browser limit
	maxSocialLinks = 10

	defaultMaxTextLength = 1000
	hardMaxTextLength    = 10000
)

// dangerousPatterns are stripped from every untrusted field before any
// further processing. Matches are removed, not escaped.
var dangerousPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)<script[^>]*>.*?</script>`),
	regexp.MustCompile(`(?i)javascript:`),
	regexp.MustCompile(`(?i)vbscript:`),
	regexp.MustCompile(`(?i)onload\s*=`),
	regexp.MustCompile(`(?i)onerror\s*=`),
	regexp.MustCompile(`(?i)onclick\s*=`),
	regexp.MustCompile(`(?i)eval\s*\(`),
	regexp.MustCompile(`(?i)document\.`),
	regexp.MustCompile(`(?i)window\.`),
	regexp.MustCompile(`(?i)alert\s*\(`),
	regexp.MustCompile(`(?i)confirm\s*\(`),
	regexp.MustCompile(`(?i)prompt\s*\(`),
}

// markupTag removes residual markup left after dangerous-pattern stripping,
// e.g. an orphaned closing tag.
var markupTag = regexp.MustCompile(`<[^>]*>`)

// promptInjectionPatterns guard free text that may reach an LLM prompt.
// HTML escaping alone does not help there.
var promptInjectionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)ignore\s+(all\s+)?(previous|prior)\s+instructions`),
	regexp.MustCompile(`(?i)disregard\s+(all\s+)?(previous|prior)\s+instructions`),
	regexp.MustCompile(`(?i)^\s*(system|assistant)\s*:`),
	regexp.MustCompile(`(?i)you\s+are\s+now\s+in\s+developer\s+mode`),
}

// Validation shapes.
var (
	emailPattern = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)
	urlPattern   = regexp.MustCompile(`^https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)$`)

	strictNamePattern  = regexp.MustCompile(`^[a-zA-Z\s\-.']{1,100}$`)
	lenientNamePattern = regexp.MustCompile(`^[\p{L}\p{N}_\s\-.']{1,100}$`)
)

// suspiciousEmailPatterns reject well-formed addresses that are still
// unwanted: consecutive dots, leading/trailing dot, markup characters and
// common system aliases.
var suspiciousEmailPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\.{2,}`),
	regexp.MustCompile(`^\.|\.$`),
	regexp.MustCompile(`[<>"']`),
	regexp.MustCompile(`admin|root|test|noreply`),
}

// blockedURLTargets reject link entries aimed at loopback or file targets.
var blockedURLTargets = []string{"localhost", "127.0.0.1", "0.0.0.0", "file://"}

// allowedLinkDomains is the allow-list for social link entries.
var allowedLinkDomains = map[string]bool{
	"twitter.com":   true,
	"x.com":         true,
	"linkedin.com":  true,
	"github.com":    true,
	"instagram.com": true,
	"facebook.com":  true,
	"youtube.com":   true,
	"tiktok.com":    true,
	"reddit.com":    true,
	"discord.com":   true,
	"snapchat.com":  true,
	"pinterest.com": true,
	"behance.net":   true,
	"dribbble.com":  true,
	"medium.com":    true,
	"dev.to":        true,
}

// stripDangerous removes every dangerous pattern from text.
func stripDangerous(text string) string {
	for _, pattern := range dangerousPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return text
}

// stripPromptInjection removes prompt-injection phrasing from text.
func stripPromptInjection(text string) string {
	for _, pattern := range promptInjectionPatterns {
		text = pattern.ReplaceAllString(text, "")
	}
	return text
}
