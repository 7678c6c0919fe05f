package model

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"
)

// RunBlock is one rendered run of the widget. Countdown is empty once the run
// has started.
type RunBlock struct {
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Start     string    `json:"start"`
	StartTime time.Time `json:"startTime"`
	Countdown string    `json:"countdown,omitempty"`
	Started   bool      `json:"started"`
}

// View is everything the widget shows at one tick.
type View struct {
	EventTitle  string     `json:"eventTitle"`
	LastUpdated string     `json:"lastUpdated"`
	GeneratedAt time.Time  `json:"generatedAt"`
	Runs        []RunBlock `json:"runs"`
}

// WidgetState keeps the latest rendered view for new clients and /state.
type WidgetState struct {
	view *View
	mu   sync.RWMutex
}

func NewEmptyWidgetState() *WidgetState {
	return &WidgetState{}
}

func (ws *WidgetState) Update(view View) {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	ws.view = &view
}

// Ready reports whether a view has been rendered yet.
func (ws *WidgetState) Ready() bool {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	return ws.view != nil
}

func (ws *WidgetState) View() (View, bool) {
	ws.mu.RLock()
	defer ws.mu.RUnlock()
	if ws.view == nil {
		return View{}, false
	}
	return *ws.view, true
}

// GetStateAsJSON returns the latest view, or nil when nothing has been rendered.
func (ws *WidgetState) GetStateAsJSON() ([]byte, error) {
	view, ok := ws.View()
	if !ok {
		return nil, nil
	}

	jsonData, err := json.Marshal(view)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state to JSON: %w", err)
	}

	return jsonData, nil
}
