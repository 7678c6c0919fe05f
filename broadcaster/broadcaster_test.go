package broadcaster

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"gdqwidget/logger"

	"github.com/gorilla/websocket"
)

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func readText(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	messageType, message, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if messageType != websocket.TextMessage {
		t.Fatalf("expected text message, got %d", messageType)
	}
	return string(message)
}

func waitForClients(t *testing.T, b *Broadcaster, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients, have %d", want, b.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcasterSendsInitialAndBroadcast(t *testing.T) {
	b := NewBroadcaster(logger.NewMockLogger())
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.HandleConnections(w, r, []byte(`{"initial":true}`))
	}))
	defer srv.Close()

	first := dial(t, srv)
	defer first.Close()
	second := dial(t, srv)
	defer second.Close()

	if got := readText(t, first); got != `{"initial":true}` {
		t.Errorf("unexpected initial message %s", got)
	}
	if got := readText(t, second); got != `{"initial":true}` {
		t.Errorf("unexpected initial message %s", got)
	}
	waitForClients(t, b, 2)

	b.Broadcast([]byte(`{"tick":1}`))
	for _, conn := range []*websocket.Conn{first, second} {
		if got := readText(t, conn); got != `{"tick":1}` {
			t.Errorf("unexpected broadcast %s", got)
		}
	}
}

func TestBroadcasterRemovesDisconnectedClients(t *testing.T) {
	log := logger.NewMockLogger()
	b := NewBroadcaster(log)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.HandleConnections(w, r, nil)
	}))
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, b, 1)
	conn.Close()
	waitForClients(t, b, 0)

	found := false
	for _, line := range log.InfoCalls() {
		if strings.Contains(line, "Widget client removed") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected removal to be logged, got %v", log.InfoCalls())
	}
}

func TestBroadcasterCloseDisconnectsClients(t *testing.T) {
	b := NewBroadcaster(nil)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b.HandleConnections(w, r, nil)
	}))
	defer srv.Close()

	conn := dial(t, srv)
	defer conn.Close()
	waitForClients(t, b, 1)

	b.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, _, err := conn.ReadMessage()
	if !websocket.IsCloseError(err, websocket.CloseGoingAway) {
		t.Errorf("expected going away close, got %v", err)
	}
	waitForClients(t, b, 0)
}
