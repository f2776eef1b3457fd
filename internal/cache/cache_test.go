package cache

import (
	"testing"
	"time"

	"github.com/socialscope/socialscope/internal/urlcheck"
)

func TestValidationCache_SetGet(t *testing.T) {
	c := NewValidationCache(time.Minute)

	if _, found := c.Get("https://instagram.com/alice"); found {
		t.Fatal("unexpected hit on empty cache")
	}

	result := &urlcheck.Result{IsValid: true, Platform: "instagram", Username: "alice"}
	c.Set("https://instagram.com/alice", result)

	got, found := c.Get("https://instagram.com/alice")
	if !found {
		t.Fatal("expected cache hit")
	}
	if got.Platform != "instagram" || got.Username != "alice" {
		t.Errorf("unexpected cached result: %+v", got)
	}
}

func TestValidationCache_Expiry(t *testing.T) {
	c := NewValidationCache(10 * time.Millisecond)

	c.Set("https://instagram.com/alice", &urlcheck.Result{IsValid: true})
	time.Sleep(20 * time.Millisecond)

	if _, found := c.Get("https://instagram.com/alice"); found {
		t.Error("expected entry to expire")
	}
}

func TestValidationCache_Clear(t *testing.T) {
	c := NewValidationCache(time.Minute)

	c.Set("a", &urlcheck.Result{})
	c.Set("b", &urlcheck.Result{})
	if c.Len() != 2 {
		t.Fatalf("len = %d, want 2", c.Len())
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("len after clear = %d, want 0", c.Len())
	}
}
