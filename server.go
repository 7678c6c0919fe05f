package main

import (
	_ "embed"
	"encoding/json"
	"net/http"
	"time"

	"gdqwidget/broadcaster"
	"gdqwidget/logger"
	"gdqwidget/model"
	"gdqwidget/schedule"
)

//go:embed web/index.html
var indexHTML []byte

// server exposes the widget page, the view stream and the schedule calendar for
// one marathon that was fetched at startup.
type server struct {
	eventID     string
	marathon    model.Marathon
	fetchedAt   time.Time
	state       *model.WidgetState
	broadcaster *broadcaster.Broadcaster
	log         logger.Logger
}

func (s *server) routes() *http.ServeMux {
	mux := http.NewServeMux()
	mux.HandleFunc("/", s.handleIndex)
	mux.HandleFunc("/ws", s.handleBrowserConnections)
	mux.HandleFunc("/state", s.handleState)
	mux.HandleFunc("/calendar.ics", s.handleCalendar)
	return mux
}

// publish stores view as the latest state and pushes it to every widget.
func (s *server) publish(view model.View) {
	s.state.Update(view)
	message, err := s.state.GetStateAsJSON()
	if err != nil {
		s.log.Error("Error encoding view: %v", err)
		return
	}
	s.broadcaster.Broadcast(message)
}

func (s *server) handleIndex(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(indexHTML)
}

func (s *server) handleBrowserConnections(w http.ResponseWriter, r *http.Request) {
	initialState, err := s.state.GetStateAsJSON()
	if err != nil {
		s.log.Error("Error retrieving widget state for initial message %s: %v", r.RemoteAddr, err)
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}
	s.broadcaster.HandleConnections(w, r, initialState)
}

func (s *server) handleState(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if !s.state.Ready() {
		w.WriteHeader(http.StatusServiceUnavailable)
		json.NewEncoder(w).Encode(map[string]string{"message": "Schedule not yet rendered"})
		return
	}
	view, _ := s.state.View()

	if err := json.NewEncoder(w).Encode(view); err != nil {
		s.log.Error("Error encoding view JSON: %v", err)
	}
}

func (s *server) handleCalendar(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}

	w.Header().Set("Content-Type", "text/calendar; charset=utf-8")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	if err := schedule.WriteCalendar(w, s.eventID, s.marathon, s.fetchedAt); err != nil {
		s.log.Error("Error writing calendar: %v", err)
	}
}
