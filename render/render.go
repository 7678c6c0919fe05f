// Package render turns a marathon and a reference time into the widget view.
package render

import (
	"fmt"
	"io"
	"strings"
	"time"

	"gdqwidget/countdown"
	"gdqwidget/model"
)

// StartLayout mirrors an en-US locale date string, e.g. 6/30/2024, 11:16:00 PM.
const StartLayout = "1/2/2006, 3:04:05 PM"

type Renderer struct {
	location *time.Location
}

// NewRenderer formats times in loc. A nil loc means time.Local.
func NewRenderer(loc *time.Location) *Renderer {
	if loc == nil {
		loc = time.Local
	}
	return &Renderer{location: loc}
}

func (r *Renderer) FormatTime(t time.Time) string {
	return t.In(r.location).Format(StartLayout)
}

// Render builds the view for now. fetchedAt is shown as the last update time.
func (r *Renderer) Render(marathon model.Marathon, fetchedAt, now time.Time) model.View {
	view := model.View{
		EventTitle:  marathon.EventName,
		LastUpdated: "Last Updated: " + r.FormatTime(fetchedAt),
		GeneratedAt: now,
		Runs:        []model.RunBlock{},
	}
	for _, run := range countdown.SelectWindow(marathon.Schedule, now) {
		view.Runs = append(view.Runs, r.RunBlock(run, now))
	}
	return view
}

func (r *Renderer) RunBlock(run model.Run, now time.Time) model.RunBlock {
	block := model.RunBlock{
		Title:     run.DisplayName,
		Category:  run.Category,
		Start:     r.FormatTime(run.StartTime),
		StartTime: run.StartTime,
	}
	timeToRun, ok := countdown.Format(now, run.StartTime)
	if ok {
		block.Countdown = timeToRun
	} else {
		block.Started = true
	}
	return block
}

// WriteText writes view as plain text, one block per run.
func WriteText(w io.Writer, view model.View) error {
	var b strings.Builder
	b.WriteString(view.EventTitle + "\n")
	b.WriteString(view.LastUpdated + "\n")
	for _, run := range view.Runs {
		b.WriteString("\n")
		b.WriteString(run.Title + "\n")
		if run.Category != "" {
			b.WriteString("  " + run.Category + "\n")
		}
		b.WriteString("  " + run.Start + "\n")
		if run.Countdown != "" {
			fmt.Fprintf(&b, "  Starting in %s\n", run.Countdown)
		}
	}
	_, err := io.WriteString(w, b.String())
	return err
}
