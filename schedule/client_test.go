package schedule

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync/atomic"
	"testing"

	"gdqwidget/logger"
)

func TestClientLoad(t *testing.T) {
	body, err := os.ReadFile("testdata/sgdq2024.json")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.Method != http.MethodGet {
			t.Errorf("expected GET, got %s", r.Method)
		}
		if r.URL.Path != "/api/schedule/sgdq2024" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(body)
	}))
	defer srv.Close()

	log := logger.NewMockLogger()
	client := NewClient(srv.URL+"/", srv.Client(), log)
	marathon, err := client.LoadMarathon(context.Background(), "sgdq2024")
	if err != nil {
		t.Fatalf("LoadMarathon: %v", err)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("expected exactly one request, got %d", n)
	}
	if len(marathon.Schedule) != 4 {
		t.Errorf("expected 4 runs, got %d", len(marathon.Schedule))
	}
	infos := log.InfoCalls()
	if len(infos) == 0 || !strings.Contains(infos[len(infos)-1], "sgdq2024") {
		t.Errorf("expected fetch to be logged, got %v", infos)
	}
}

func TestClientLoadStatusError(t *testing.T) {
	var requests atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		http.Error(w, "not found", http.StatusNotFound)
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), nil)
	_, err := client.Load(context.Background(), "nope")
	var statusErr *StatusError
	if !errors.As(err, &statusErr) {
		t.Fatalf("expected StatusError, got %v", err)
	}
	if statusErr.StatusCode != http.StatusNotFound {
		t.Errorf("expected 404, got %d", statusErr.StatusCode)
	}
	if n := requests.Load(); n != 1 {
		t.Errorf("expected no retry, got %d requests", n)
	}
}

func TestClientLoadParseError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{not json"))
	}))
	defer srv.Close()

	client := NewClient(srv.URL, srv.Client(), nil)
	if _, err := client.Load(context.Background(), "x"); !errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected ErrInvalidDocument, got %v", err)
	}
}

func TestClientLoadTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	client := NewClient(url, nil, nil)
	_, err := client.Load(context.Background(), "x")
	if err == nil {
		t.Fatal("expected transport error")
	}
	var statusErr *StatusError
	if errors.As(err, &statusErr) || errors.Is(err, ErrInvalidDocument) {
		t.Errorf("expected transport error, got %v", err)
	}
}

func TestScheduleURLEscapesEventID(t *testing.T) {
	client := NewClient("https://example.com/", nil, nil)
	if got := client.ScheduleURL("a b"); got != "https://example.com/api/schedule/a%20b" {
		t.Errorf("unexpected url %s", got)
	}
}
