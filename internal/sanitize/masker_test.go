package sanitize

import (
	"regexp"
	"strings"
	"testing"
)

func TestMaskString_SSN(t *testing.T) {
	m := NewMasker(nil)

	got, findings := m.MaskString("my ssn is 123-45-6789 ok")
	if !strings.Contains(got, "[MASKED_SSN]") {
		t.Errorf("expected SSN masked, got %q", got)
	}
	if regexp.MustCompile(`\b\d{3}-?\d{2}-?\d{4}\b`).MatchString(got) {
		t.Errorf("expected no SSN-shaped digits left, got %q", got)
	}
	if len(findings) != 1 || findings[0].EntityType != "ssn" {
		t.Errorf("expected one ssn finding, got %+v", findings)
	}
}

func TestMaskString_AllKinds(t *testing.T) {
	m := NewMasker(nil)

	tests := []struct {
		input string
		want  string
	}{
		{"card 4111 1111 1111 1111 here", "[MASKED_CREDIT_CARD]"},
		{"call 555-123-4567 now", "[MASKED_PHONE]"},
		{"from 192.168.1.100 today", "[MASKED_IP_ADDRESS]"},
	}

	for _, tt := range tests {
		got, _ := m.MaskString(tt.input)
		if !strings.Contains(got, tt.want) {
			t.Errorf("masking %q: expected %s, got %q", tt.input, tt.want, got)
		}
	}
}

func TestMaskString_CleanTextUntouched(t *testing.T) {
	m := NewMasker(nil)

	input := "nothing sensitive here, just a profile summary"
	got, findings := m.MaskString(input)
	if got != input {
		t.Errorf("expected clean text unchanged, got %q", got)
	}
	if len(findings) != 0 {
		t.Errorf("expected no findings, got %+v", findings)
	}
}

func TestMaskValue_Recursive(t *testing.T) {
	m := NewMasker(nil)

	value := map[string]any{
		"summary": "ssn 123-45-6789",
		"nested": map[string]any{
			"items": []any{"ip 10.0.0.1", 42, "plain"},
		},
		"tags": []string{"phone 555.123.4567"},
		"num":  3.14,
	}

	masked, ok := m.MaskValue(value).(map[string]any)
	if !ok {
		t.Fatal("expected a map back")
	}

	if !strings.Contains(masked["summary"].(string), "[MASKED_SSN]") {
		t.Errorf("expected masked summary, got %v", masked["summary"])
	}

	nested := masked["nested"].(map[string]any)
	items := nested["items"].([]any)
	if !strings.Contains(items[0].(string), "[MASKED_IP_ADDRESS]") {
		t.Errorf("expected masked nested item, got %v", items[0])
	}
	if items[1] != 42 {
		t.Errorf("expected non-string leaves untouched, got %v", items[1])
	}

	tags := masked["tags"].([]string)
	if !strings.Contains(tags[0], "[MASKED_PHONE]") {
		t.Errorf("expected masked tag, got %q", tags[0])
	}
	if masked["num"] != 3.14 {
		t.Errorf("expected numeric leaf untouched, got %v", masked["num"])
	}
}
