package urlcheck

import "regexp"

// platformPatterns holds the anchored URL grammars for each supported
// platform. Order matters: candidates are tried in declared order and the
// first match wins.
type platformPatternSet struct {
	Name     string
	Patterns []*regexp.Regexp
}

var platformPatterns = []platformPatternSet{
	{
		Name: "linkedin",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?linkedin\.com/(in|pub)/[\w\-%.]+/?.*$`),
			regexp.MustCompile(`(?i)^https?://(www\.)?linkedin\.com/profile/view\?id=[\w\-%.]+.*$`),
		},
	},
	{
		Name: "instagram",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?instagram\.com/[\w\-.]+/?.*$`),
			regexp.MustCompile(`(?i)^https?://(www\.)?instagram\.com/p/[\w\-]+/?.*$`),
			regexp.MustCompile(`(?i)^https?://(www\.)?instagram\.com/reel/[\w\-]+/?.*$`),
		},
	},
	{
		Name: "twitter",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?(twitter\.com|x\.com)/[\w\-]+/?.*$`),
			regexp.MustCompile(`(?i)^https?://(www\.)?(twitter\.com|x\.com)/intent/user\?screen_name=[\w\-]+.*$`),
		},
	},
	{
		Name: "facebook",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?facebook\.com/[\w\-.]+/?.*$`),
			regexp.MustCompile(`(?i)^https?://(www\.)?facebook\.com/people/[\w\-%.]+/\d+/?.*$`),
			regexp.MustCompile(`(?i)^https?://(www\.)?facebook\.com/profile\.php\?id=\d+.*$`),
		},
	},
	{
		Name: "github",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?github\.com/[\w\-]+/?.*$`),
		},
	},
	{
		Name: "youtube",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?youtube\.com/(c/|channel/|user/|@)[\w\-]+/?.*$`),
			regexp.MustCompile(`(?i)^https?://(www\.)?youtube\.com/c/[\w\-]+/?.*$`),
		},
	},
	{
		Name: "tiktok",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?tiktok\.com/@[\w\-.]+/?.*$`),
		},
	},
	{
		Name: "reddit",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?reddit\.com/(u|user)/[\w\-]+/?.*$`),
		},
	},
	{
		Name: "pinterest",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?pinterest\.com/[\w\-]+/?.*$`),
		},
	},
	{
		Name: "snapchat",
		Patterns: []*regexp.Regexp{
			regexp.MustCompile(`(?i)^https?://(www\.)?snapchat\.com/add/[\w\-]+/?.*$`),
		},
	},
}

// socialDomains is the set of hosts accepted as social media platforms.
// Wider than platformPatterns: some domains are accepted leniently with
// platform inferred from the host alone.
var socialDomains = map[string]bool{
	"linkedin.com":  true,
	"instagram.com": true,
	"twitter.com":   true,
	"x.com":         true,
	"facebook.com":  true,
	"github.com":    true,
	"youtube.com":   true,
	"tiktok.com":    true,
	"reddit.com":    true,
	"pinterest.com": true,
	"snapchat.com":  true,
	"discord.com":   true,
	"medium.com":    true,
	"behance.net":   true,
	"dribbble.com":  true,
	"vimeo.com":     true,
}

// domainToPlatform maps a bare host to its platform name for the lenient
// fallback path.
var domainToPlatform = map[string]string{
	"linkedin.com":  "linkedin",
	"instagram.com": "instagram",
	"twitter.com":   "twitter",
	"x.com":         "twitter",
	"facebook.com":  "facebook",
	"github.com":    "github",
	"youtube.com":   "youtube",
	"tiktok.com":    "tiktok",
	"reddit.com":    "reddit",
	"pinterest.com": "pinterest",
	"snapchat.com":  "snapchat",
}

// exampleFormats holds example profile URLs surfaced in validation errors.
var exampleFormats = map[string][]string{
	"linkedin": {
		"https://linkedin.com/in/username",
		"https://www.linkedin.com/in/username",
	},
	"instagram": {
		"https://instagram.com/username",
		"https://www.instagram.com/username",
	},
	"twitter": {
		"https://twitter.com/username",
		"https://x.com/username",
	},
	"facebook": {
		"https://facebook.com/username",
		"https://www.facebook.com/username",
	},
	"github": {
		"https://github.com/username",
	},
	"youtube": {
		"https://youtube.com/@username",
		"https://www.youtube.com/c/username",
	},
	"tiktok": {
		"https://tiktok.com/@username",
	},
}

// trackingParams are query parameters stripped during URL normalization.
var trackingParams = []string{"utm_source", "utm_medium", "utm_campaign", "fbclid", "gclid"}

// SupportedPlatforms returns the platform names with pattern coverage, in
// declared order.
func SupportedPlatforms() []string {
	names := make([]string, 0, len(platformPatterns))
	for _, set := range platformPatterns {
		names = append(names, set.Name)
	}
	return names
}

// ExampleFormats returns example profile URL formats for a platform.
func ExampleFormats(platform string) []string {
	return exampleFormats[platform]
}
