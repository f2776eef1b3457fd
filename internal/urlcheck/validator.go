package urlcheck

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/socialscope/socialscope/internal/logger"
	"go.uber.org/zap"
)

// Result is the outcome of validating one candidate profile URL. It is
// JSON-serializable and returned to the caller as-is; validation failures
// are data, not errors.
type Result struct {
	IsValid            bool     `json:"is_valid"`
	Platform           string   `json:"platform,omitempty"`
	Username           string   `json:"username,omitempty"`
	CleanedURL         string   `json:"cleaned_url,omitempty"`
	Domain             string   `json:"domain,omitempty"`
	Error              string   `json:"error,omitempty"`
	SupportedPlatforms []string `json:"supported_platforms,omitempty"`
	ExampleFormats     []string `json:"example_formats,omitempty"`
}

// Validator validates and normalizes social media profile URLs.
type Validator struct {
	logger *logger.Logger
}

// New creates a new URL validator
func New(log *logger.Logger) *Validator {
	return &Validator{logger: log}
}

// Validate checks a raw input string against the supported platform
// grammars and returns a normalized result.
func (v *Validator) Validate(raw string) Result {
	if strings.TrimSpace(raw) == "" {
		return Result{
			IsValid: false,
			Error:   "URL is required and must be a string",
		}
	}

	cleaned := cleanURL(raw)

	parsed, ok := parseStrict(cleaned)
	if !ok {
		return Result{
			IsValid: false,
			Error:   "Invalid URL format. Please enter a valid URL starting with http:// or https://",
		}
	}

	domain := normalizeHost(parsed.Host)
	if !socialDomains[domain] {
		return Result{
			IsValid:            false,
			Error:              fmt.Sprintf("URL must be from a supported social media platform. Domain %q is not supported.", domain),
			SupportedPlatforms: SupportedPlatforms(),
		}
	}

	platform, matched, lenient := matchPlatform(cleaned, domain)
	if lenient && v.logger != nil {
		v.logger.Debug("URL accepted via host fallback",
			zap.String("domain", domain),
			zap.String("platform", platform),
		)
	}
	if !matched {
		return Result{
			IsValid:            false,
			Error:              fmt.Sprintf("Invalid URL format for %s platform. Please check the URL structure.", platformOrGeneric(platform)),
			Platform:           platform,
			ExampleFormats:     ExampleFormats(platform),
			SupportedPlatforms: SupportedPlatforms(),
		}
	}

	// Username extraction failure is non-fatal; validity is unaffected.
	username := extractUsername(parsed, platform)

	return Result{
		IsValid:    true,
		Platform:   platform,
		Username:   username,
		CleanedURL: cleaned,
		Domain:     domain,
	}
}

// cleanURL trims the input, defaults the scheme to https and strips known
// tracking parameters while preserving the rest of the query.
func cleanURL(raw string) string {
	raw = strings.TrimSpace(raw)

	lower := strings.ToLower(raw)
	if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
		raw = "https://" + raw
	}

	parsed, err := url.Parse(raw)
	if err != nil || parsed.RawQuery == "" {
		return raw
	}

	params := strings.Split(parsed.RawQuery, "&")
	clean := params[:0]
	for _, param := range params {
		if !isTrackingParam(param) {
			clean = append(clean, param)
		}
	}

	if len(clean) > 0 {
		return fmt.Sprintf("%s://%s%s?%s", parsed.Scheme, parsed.Host, parsed.Path, strings.Join(clean, "&"))
	}
	return fmt.Sprintf("%s://%s%s", parsed.Scheme, parsed.Host, parsed.Path)
}

func isTrackingParam(param string) bool {
	for _, track := range trackingParams {
		if strings.HasPrefix(param, track+"=") {
			return true
		}
	}
	return false
}

// parseStrict requires a well-formed http(s) URL with a non-empty host.
func parseStrict(cleaned string) (*url.URL, bool) {
	parsed, err := url.Parse(cleaned)
	if err != nil {
		return nil, false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return nil, false
	}
	if parsed.Host == "" {
		return nil, false
	}
	return parsed, true
}

// normalizeHost lowercases the host and strips a leading www. for
// comparisons; the cleaned URL keeps the host as given.
func normalizeHost(host string) string {
	host = strings.ToLower(host)
	return strings.TrimPrefix(host, "www.")
}

// matchPlatform tries every platform's pattern list in declared order.
// A URL on a known social domain that matches no pattern is still accepted
// with the platform inferred from the host: over-rejecting valid profile
// URLs is worse than a loose accept here.
func matchPlatform(cleaned, domain string) (platform string, matched, lenient bool) {
	for _, set := range platformPatterns {
		for _, pattern := range set.Patterns {
			if pattern.MatchString(cleaned) {
				return set.Name, true, false
			}
		}
	}

	if socialDomains[domain] {
		platform, ok := domainToPlatform[domain]
		if !ok {
			platform = "unknown"
		}
		return platform, true, true
	}

	return "", false, false
}

func platformOrGeneric(platform string) string {
	if platform == "" {
		return "social media"
	}
	return platform
}

// extractUsername pulls a username from the URL path using
// platform-specific segment rules. Shape only; existence is never checked.
func extractUsername(parsed *url.URL, platform string) string {
	var parts []string
	for _, part := range strings.Split(parsed.Path, "/") {
		if part != "" {
			parts = append(parts, part)
		}
	}

	if len(parts) == 0 {
		return ""
	}

	switch platform {
	case "linkedin":
		if len(parts) >= 2 && (parts[0] == "in" || parts[0] == "pub") {
			return parts[1]
		}
	case "tiktok":
		if strings.HasPrefix(parts[0], "@") {
			return strings.TrimPrefix(parts[0], "@")
		}
	case "youtube":
		if len(parts) >= 2 && (parts[0] == "c" || parts[0] == "user") {
			return parts[1]
		}
		if strings.HasPrefix(parts[0], "@") {
			return strings.TrimPrefix(parts[0], "@")
		}
	case "reddit":
		if len(parts) >= 2 && (parts[0] == "u" || parts[0] == "user") {
			return parts[1]
		}
	}

	// Direct /username platforms and the generic fallback.
	return parts[0]
}
