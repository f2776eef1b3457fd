package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/socialscope/socialscope/internal/analysis"
	"github.com/socialscope/socialscope/internal/audit"
	"github.com/socialscope/socialscope/internal/events"
	"github.com/socialscope/socialscope/internal/privacy"
	"github.com/socialscope/socialscope/internal/sanitize"
)

const maxRequestBody = 1 << 20 // 1 MB

type validateURLRequest struct {
	URL string `json:"url"`
}

type sanitizeRequest struct {
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	SocialLinks []string `json:"social_links"`
	Bio         string   `json:"bio,omitempty"`
}

type analyzeRequest struct {
	URL         string   `json:"url"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	SocialLinks []string `json:"social_links"`
}

// handleValidateURL validates one profile URL. Invalid URLs are a normal
// outcome and still return 200; the result carries the failure.
func (s *Server) handleValidateURL(w http.ResponseWriter, r *http.Request) {
	var req validateURLRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	requestID := getRequestID(r.Context())

	if s.cache != nil {
		if cached, found := s.cache.Get(req.URL); found {
			writeJSON(w, http.StatusOK, cached)
			return
		}
	}

	result := s.validator.Validate(req.URL)
	if s.cache != nil {
		s.cache.Set(req.URL, &result)
	}

	record := &audit.ValidationRecord{
		RequestID:  requestID,
		Platform:   result.Platform,
		Valid:      result.IsValid,
		CleanedURL: result.CleanedURL,
		Reason:     result.Error,
	}
	if err := s.audit.RecordValidation(r.Context(), record); err != nil {
		s.logger.WithRequestID(requestID).Error("Audit write failed", zap.Error(err))
	}

	s.hub.Publish(events.TypeValidation, requestID, events.ValidationEvent{
		Platform: result.Platform,
		Valid:    result.IsValid,
		Reason:   result.Error,
	})

	writeJSON(w, http.StatusOK, result)
}

// handleSanitize cleans untrusted profile fields and registers the result
// for TTL-based erasure.
func (s *Server) handleSanitize(w http.ResponseWriter, r *http.Request) {
	var req sanitizeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	requestID := getRequestID(r.Context())

	sanitized, err := s.sanitizer.SanitizeRequest(r.Context(), sanitize.Request{
		Name:        req.Name,
		Email:       req.Email,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		s.rejectOrFail(w, r, err)
		return
	}

	response := map[string]any{
		"tracking_id":           sanitized.TrackingID,
		"name":                  sanitized.Name,
		"email":                 sanitized.Email,
		"social_links":          sanitized.SocialLinks,
		"sanitization_metadata": sanitized.Metadata,
	}

	if req.Bio != "" {
		bio, err := s.sanitizer.SanitizeText(req.Bio)
		if err != nil {
			s.rejectOrFail(w, r, err)
			return
		}
		response["bio"] = bio
	}

	masked, findings := s.maskPayload(response)
	if len(findings) > 0 {
		s.publishDetection(requestID, sanitized.TrackingID, findings)
	}

	writeRawJSON(w, http.StatusOK, masked)
}

// handleAnalyze runs the full pipeline: sanitize, validate, analyze, then
// classify privacy risk. The report is masked before it leaves.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req analyzeRequest
	if !s.decodeBody(w, r, &req) {
		return
	}

	requestID := getRequestID(r.Context())
	log := s.logger.WithRequestID(requestID)

	sanitized, err := s.sanitizer.SanitizeRequest(r.Context(), sanitize.Request{
		Name:        req.Name,
		Email:       req.Email,
		SocialLinks: req.SocialLinks,
	})
	if err != nil {
		s.rejectOrFail(w, r, err)
		return
	}

	result := s.validator.Validate(req.URL)
	if !result.IsValid {
		writeJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":      "url validation failed",
			"validation": result,
		})
		return
	}

	analyzed, err := s.provider.Analyze(r.Context(), analysis.Profile{
		URL:      result.CleanedURL,
		Platform: result.Platform,
		Username: result.Username,
	})
	if err != nil {
		log.Error("Profile analysis failed", zap.Error(err))
		writeError(w, http.StatusBadGateway, "analysis provider unavailable")
		return
	}

	report := s.reporter.Generate(privacy.Input{
		Interests:          analyzed.Interests,
		EconomicIndicators: analyzed.EconomicIndicators,
		SchedulePatterns:   analyzed.SchedulePatterns,
		Confidences:        analyzed.Confidences,
	})

	response := map[string]any{
		"tracking_id":    sanitized.TrackingID,
		"platform":       result.Platform,
		"username":       result.Username,
		"provider":       analyzed.Provider,
		"privacy_report": report,
	}

	record := &audit.AnalysisRecord{
		RequestID:        requestID,
		TrackingID:       sanitized.TrackingID,
		Platform:         result.Platform,
		Provider:         analyzed.Provider,
		OverallRiskLevel: string(report.OverallRiskLevel),
		TotalInferences:  report.TotalInferences,
		SpecialCategory:  report.SpecialCategoryInferences,
	}
	if err := s.audit.RecordAnalysis(r.Context(), record); err != nil {
		log.Error("Audit write failed", zap.Error(err))
	}

	s.hub.Publish(events.TypeReport, requestID, events.ReportEvent{
		TrackingID:      sanitized.TrackingID,
		Platform:        result.Platform,
		OverallRisk:     string(report.OverallRiskLevel),
		TotalInferences: report.TotalInferences,
		SpecialCategory: report.SpecialCategoryInferences,
	})

	masked, findings := s.maskPayload(response)
	if len(findings) > 0 {
		s.publishDetection(requestID, sanitized.TrackingID, findings)
	}

	writeRawJSON(w, http.StatusOK, masked)
}

// handleDataDeletion erases tracked data by tracking id.
func (s *Server) handleDataDeletion(w http.ResponseWriter, r *http.Request) {
	trackingID := mux.Vars(r)["tracking_id"]

	deleted, err := s.sanitizer.Store().Release(r.Context(), trackingID)
	if err != nil {
		s.logger.WithRequestID(getRequestID(r.Context())).Error("Data deletion failed", zap.Error(err))
		writeError(w, http.StatusInternalServerError, "deletion failed")
		return
	}
	if !deleted {
		writeError(w, http.StatusNotFound, "unknown tracking id")
		return
	}

	s.logger.WithTrackingID(trackingID).Info("Tracked data erased on request")
	writeJSON(w, http.StatusOK, map[string]any{
		"deleted":     true,
		"tracking_id": trackingID,
	})
}

// handleSanitizeReport sweeps expired entries and reports registry state.
func (s *Server) handleSanitizeReport(w http.ResponseWriter, r *http.Request) {
	store := s.sanitizer.Store()

	removed, err := store.Sweep(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "sweep failed")
		return
	}

	stats, err := store.Stats(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "stats unavailable")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"expired_removed": removed,
		"registry":        stats,
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"healthy","timestamp":"%s"}`, time.Now().UTC().Format(time.RFC3339))
}

func (s *Server) handleInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"name":              "socialscope",
		"version":           Version,
		"analysis_provider": s.provider.Name(),
		"registry_backend":  s.config.Sanitizer.Registry.Backend,
		"audit_enabled":     s.config.Audit.Enabled,
		"auth_enabled":      s.config.Auth.Enabled,
	})
}

// decodeBody parses a JSON request body, answering 400 on malformed input.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBody)
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "malformed request body")
		return false
	}
	return true
}

// rejectOrFail maps sanitization rejections to 400 and anything else to 500.
func (s *Server) rejectOrFail(w http.ResponseWriter, r *http.Request, err error) {
	requestID := getRequestID(r.Context())

	var rejection *sanitize.RejectionError
	if errors.As(err, &rejection) {
		s.hub.Publish(events.TypeRejection, requestID, events.RejectionEvent{
			Field:  rejection.Field,
			Reason: rejection.Reason,
		})
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"error": map[string]string{
				"field":  rejection.Field,
				"reason": rejection.Reason,
			},
		})
		return
	}

	s.logger.WithRequestID(requestID).Error("Sanitization failed", zap.Error(err))
	writeError(w, http.StatusInternalServerError, "sanitization failed")
}

// maskPayload serializes a response and applies the sensitive-data rules to
// the whole document, so nothing escapes unmasked regardless of nesting.
func (s *Server) maskPayload(payload any) (json.RawMessage, []sanitize.Finding) {
	data, err := json.Marshal(payload)
	if err != nil {
		s.logger.Error("Response marshal failed", zap.Error(err))
		return json.RawMessage(`{}`), nil
	}
	masked, findings := s.sanitizer.Masker().MaskString(string(data))
	return json.RawMessage(masked), findings
}

func (s *Server) publishDetection(requestID, trackingID string, findings []sanitize.Finding) {
	counts := make(map[string]int, len(findings))
	total := 0
	for _, finding := range findings {
		counts[finding.EntityType] += finding.Count
		total += finding.Count
	}
	s.hub.Publish(events.TypeDetection, requestID, events.DetectionEvent{
		TrackingID: trackingID,
		Counts:     counts,
		Total:      total,
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeRawJSON(w http.ResponseWriter, status int, payload json.RawMessage) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
