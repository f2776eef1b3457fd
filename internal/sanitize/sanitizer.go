package sanitize

import (
	"context"
	"encoding/hex"
	"fmt"
	"html"
	"net/url"
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
	"github.com/socialscope/socialscope/internal/logger"
	"go.uber.org/zap"
)

// Request is the untrusted ingress payload before sanitization.
type Request struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	SocialLinks []string `json:"social_links"`
}

// SanitizedRequest is the cleaned copy of a Request, registered for
// TTL-based erasure under its tracking id.
type SanitizedRequest struct {
	TrackingID  string   `json:"tracking_id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	SocialLinks []string `json:"social_links"`
	Metadata    Metadata `json:"sanitization_metadata"`
}

// Metadata describes one sanitization pass.
type Metadata struct {
	Timestamp      time.Time `json:"timestamp"`
	Version        string    `json:"version"`
	OriginalFields []string  `json:"original_fields"`
}

// Sanitizer cleans untrusted input fields and registers sanitized payloads
// for later secure erasure. Safe for concurrent use; all shared state lives
// in the injected Store.
type Sanitizer struct {
	store         Store
	masker        *Masker
	logger        *logger.Logger
	maxTextLength int
}

// Options tunes sanitizer behavior.
type Options struct {
	MaxTextLength int
}

// New creates a sanitizer around the given tracking store.
func New(store Store, log *logger.Logger, opts Options) *Sanitizer {
	maxText := opts.MaxTextLength
	if maxText <= 0 {
		maxText = defaultMaxTextLength
	}
	if maxText > hardMaxTextLength {
		maxText = hardMaxTextLength
	}

	return &Sanitizer{
		store:         store,
		masker:        NewMasker(log),
		logger:        log,
		maxTextLength: maxText,
	}
}

// Masker returns the sensitive-pattern masker applied at the boundary.
func (s *Sanitizer) Masker() *Masker {
	return s.masker
}

// Store returns the tracking registry.
func (s *Sanitizer) Store() Store {
	return s.store
}

// SanitizeRequest cleans every field of an ingress request and registers
// the result under a fresh tracking id with the store's TTL.
func (s *Sanitizer) SanitizeRequest(ctx context.Context, req Request) (*SanitizedRequest, error) {
	name, err := s.SanitizeName(req.Name)
	if err != nil {
		return nil, err
	}

	email, err := s.SanitizeEmail(req.Email)
	if err != nil {
		return nil, err
	}

	links, err := s.SanitizeSocialLinks(req.SocialLinks)
	if err != nil {
		return nil, err
	}

	trackingID := newTrackingID()
	sanitized := &SanitizedRequest{
		TrackingID:  trackingID,
		Name:        name,
		Email:       email,
		SocialLinks: links,
		Metadata: Metadata{
			Timestamp:      time.Now().UTC(),
			Version:        "1.0",
			OriginalFields: []string{"name", "email", "social_links"},
		},
	}

	data := map[string]any{
		"name":         name,
		"email":        email,
		"social_links": append([]string(nil), links...),
	}
	if err := s.store.Register(ctx, trackingID, data); err != nil {
		return nil, fmt.Errorf("failed to register sanitized payload: %w", err)
	}

	if s.logger != nil {
		s.logger.WithTrackingID(trackingID).Info("Request sanitized",
			zap.Int("social_links", len(links)),
		)
	}

	return sanitized, nil
}

// SanitizeName cleans a display name. Dangerous markup is stripped before
// any other check; the final shape allows Unicode letters, spaces, hyphens,
// dots and apostrophes only.
func (s *Sanitizer) SanitizeName(name string) (string, error) {
	if len(name) > maxNameLength {
		return "", reject("name", "too long (max %d characters)", maxNameLength)
	}

	name = strings.TrimSpace(name)
	if name == "" {
		return "", reject("name", "cannot be empty")
	}

	name = stripDangerous(name)
	name = markupTag.ReplaceAllString(name, "")
	name = dropNonPrintable(name)
	name = strings.TrimSpace(name)
	if name == "" {
		return "", reject("name", "nothing left after removing unsafe content")
	}

	if !strictNamePattern.MatchString(name) && !lenientNamePattern.MatchString(name) {
		return "", reject("name", "contains invalid characters")
	}

	return html.EscapeString(name), nil
}

// SanitizeEmail cleans and validates an email address, rejecting addresses
// that match suspicious heuristics even when well-formed.
func (s *Sanitizer) SanitizeEmail(email string) (string, error) {
	if len(email) > maxEmailLength {
		return "", reject("email", "too long (max %d characters)", maxEmailLength)
	}

	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", reject("email", "cannot be empty")
	}

	email = stripDangerous(email)

	if !emailPattern.MatchString(email) {
		return "", reject("email", "invalid format")
	}

	for _, pattern := range suspiciousEmailPatterns {
		if pattern.MatchString(email) {
			return "", reject("email", "contains suspicious patterns")
		}
	}

	return email, nil
}

// SanitizeSocialLinks cleans a list of profile links. Entries failing any
// check are dropped and logged; only an oversized list fails the whole
// field.
func (s *Sanitizer) SanitizeSocialLinks(links []string) ([]string, error) {
	if len(links) > maxSocialLinks {
		return nil, reject("social_links", "too many entries (max %d)", maxSocialLinks)
	}

	sanitized := make([]string, 0, len(links))
	for _, link := range links {
		link = strings.TrimSpace(link)
		if link == "" {
			continue
		}

		if len(link) > maxURLLength {
			s.warnDropped("url too long", link)
			continue
		}

		link = stripDangerous(link)

		if !isValidLinkURL(link) {
			s.warnDropped("invalid url format", link)
			continue
		}

		if !isAllowedLinkDomain(link) {
			s.warnDropped("domain not in allow-list", link)
			continue
		}

		sanitized = append(sanitized, link)
	}

	return sanitized, nil
}

// SanitizeText cleans a free-text field bound for an LLM prompt or a
// report. Markup and prompt-injection phrasing are both stripped.
func (s *Sanitizer) SanitizeText(text string) (string, error) {
	if len(text) > s.maxTextLength {
		return "", reject("text", "too long (max %d characters)", s.maxTextLength)
	}

	text = strings.TrimSpace(text)
	text = stripDangerous(text)
	text = stripPromptInjection(text)
	text = markupTag.ReplaceAllString(text, "")
	text = dropNonPrintable(text)

	return html.EscapeString(text), nil
}

func (s *Sanitizer) warnDropped(reason, link string) {
	if s.logger == nil {
		return
	}
	preview := link
	if len(preview) > 50 {
		preview = preview[:50] + "..."
	}
	s.logger.Warn("Social link dropped",
		zap.String("reason", reason),
		zap.String("link", preview),
	)
}

// isValidLinkURL checks shape and blocks loopback and file targets.
func isValidLinkURL(link string) bool {
	if !urlPattern.MatchString(link) {
		return false
	}

	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return false
	}
	if parsed.Host == "" {
		return false
	}

	lower := strings.ToLower(link)
	for _, blocked := range blockedURLTargets {
		if strings.Contains(lower, blocked) {
			return false
		}
	}

	return true
}

func isAllowedLinkDomain(link string) bool {
	parsed, err := url.Parse(link)
	if err != nil {
		return false
	}

	domain := strings.ToLower(parsed.Host)
	domain = strings.TrimPrefix(domain, "www.")
	return allowedLinkDomains[domain]
}

func dropNonPrintable(text string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPrint(r) {
			return r
		}
		return -1
	}, text)
}

// newTrackingID generates a unique id for data lifecycle management.
func newTrackingID() string {
	id := uuid.New()
	return fmt.Sprintf("track_%s_%d", hex.EncodeToString(id[:]), time.Now().Unix())
}
