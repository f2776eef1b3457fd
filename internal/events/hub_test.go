package events

import (
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/socialscope/socialscope/internal/config"
)

func testHubConfig() config.WebSocketConfig {
	return config.WebSocketConfig{
		Enabled:        true,
		Path:           "/ws",
		AllowedOrigins: []string{"*"},
		WriteTimeout:   time.Second,
		SendBuffer:     16,
	}
}

func dialTestHub(t *testing.T, hub *Hub) (*httptest.Server, *websocket.Conn) {
	t.Helper()

	server := httptest.NewServer(hub)
	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		server.Close()
		t.Fatalf("dial failed: %v", err)
	}
	return server, conn
}

func TestHub_PublishReachesSubscriber(t *testing.T) {
	hub := NewHub(testHubConfig(), nil)
	go hub.Run()
	defer hub.Close()

	server, conn := dialTestHub(t, hub)
	defer server.Close()
	defer conn.Close()

	// First frame is our own connection event.
	var connected Event
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&connected); err != nil {
		t.Fatalf("reading connection event: %v", err)
	}
	if connected.Type != TypeConnection {
		t.Fatalf("first event type = %s, want connection", connected.Type)
	}

	hub.Publish(TypeReport, "req-1", ReportEvent{
		TrackingID:  "track_abc_1",
		OverallRisk: "high",
	})

	var got Event
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	if err := conn.ReadJSON(&got); err != nil {
		t.Fatalf("reading report event: %v", err)
	}
	if got.Type != TypeReport {
		t.Errorf("event type = %s, want privacy_report", got.Type)
	}
	if got.RequestID != "req-1" {
		t.Errorf("request id = %s, want req-1", got.RequestID)
	}
}

func TestHub_ActiveClients(t *testing.T) {
	hub := NewHub(testHubConfig(), nil)
	go hub.Run()
	defer hub.Close()

	if hub.ActiveClients() != 0 {
		t.Fatalf("active = %d, want 0", hub.ActiveClients())
	}

	server, conn := dialTestHub(t, hub)
	defer server.Close()

	deadline := time.Now().Add(2 * time.Second)
	for hub.ActiveClients() != 1 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ActiveClients() != 1 {
		t.Errorf("active = %d, want 1", hub.ActiveClients())
	}

	conn.Close()
	deadline = time.Now().Add(2 * time.Second)
	for hub.ActiveClients() != 0 && time.Now().Before(deadline) {
		time.Sleep(10 * time.Millisecond)
	}
	if hub.ActiveClients() != 0 {
		t.Errorf("active after close = %d, want 0", hub.ActiveClients())
	}
}

func TestHub_PublishWithoutSubscribersDoesNotBlock(t *testing.T) {
	hub := NewHub(testHubConfig(), nil)
	go hub.Run()
	defer hub.Close()

	done := make(chan struct{})
	go func() {
		for i := 0; i < 1000; i++ {
			hub.Publish(TypeDetection, "", DetectionEvent{Total: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("publish blocked with no subscribers")
	}
}

func TestHub_RejectsDisallowedOrigin(t *testing.T) {
	cfg := testHubConfig()
	cfg.AllowedOrigins = []string{"https://dashboard.example.com"}
	hub := NewHub(cfg, nil)
	go hub.Run()
	defer hub.Close()

	server := httptest.NewServer(hub)
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http")
	header := map[string][]string{"Origin": {"https://evil.example.com"}}
	if _, _, err := websocket.DefaultDialer.Dial(wsURL, header); err == nil {
		t.Error("expected dial to fail for disallowed origin")
	}
}
