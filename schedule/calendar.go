package schedule

import (
	"fmt"
	"io"
	"time"

	"gdqwidget/model"

	ics "github.com/arran4/golang-ical"
)

// The feed carries no run lengths, so the final run gets a nominal hour.
const lastRunLength = time.Hour

// NewCalendar builds an iCalendar feed with one event per speedrun. A run ends
// when the next one starts; the last run is given lastRunLength.
func NewCalendar(eventID string, marathon model.Marathon, stamp time.Time) *ics.Calendar {
	cal := ics.NewCalendar()
	cal.SetMethod(ics.MethodPublish)
	cal.SetProductId("-//gdqwidget//schedule//EN")
	if marathon.EventName != "" {
		cal.SetXWRCalName(marathon.EventName)
	}

	for i, run := range marathon.Schedule {
		event := cal.AddEvent(runUID(eventID, run, i))
		event.SetDtStampTime(stamp)
		event.SetStartAt(run.StartTime)
		if i+1 < len(marathon.Schedule) {
			event.SetEndAt(marathon.Schedule[i+1].StartTime)
		} else {
			event.SetEndAt(run.StartTime.Add(lastRunLength))
		}
		event.SetSummary(run.DisplayName)
		if run.Category != "" {
			event.SetDescription(run.Category)
		}
	}
	return cal
}

// WriteCalendar serializes the feed for marathon to w.
func WriteCalendar(w io.Writer, eventID string, marathon model.Marathon, stamp time.Time) error {
	cal := NewCalendar(eventID, marathon, stamp)
	if err := cal.SerializeTo(w); err != nil {
		return fmt.Errorf("failed to write calendar: %w", err)
	}
	return nil
}

func runUID(eventID string, run model.Run, index int) string {
	if run.Order > 0 {
		return fmt.Sprintf("%s-%d@gdqwidget", eventID, run.Order)
	}
	return fmt.Sprintf("%s-idx%d@gdqwidget", eventID, index)
}
