package schedule

import (
	"fmt"
	"time"

	"gdqwidget/model"

	"github.com/tidwall/gjson"
)

// Document is a raw schedule response: {"event": {...}, "schedule": [...]}.
// Only event.name and the type, display_name, category, starttime and order of
// each entry are read.
type Document struct {
	raw []byte
}

func NewDocument(body []byte) (*Document, error) {
	if !gjson.ValidBytes(body) {
		return nil, fmt.Errorf("%w: body is not valid JSON", ErrInvalidDocument)
	}
	if !gjson.GetBytes(body, "schedule").IsArray() {
		return nil, fmt.Errorf("%w: missing schedule list", ErrInvalidDocument)
	}
	return &Document{raw: body}, nil
}

func (d *Document) EventName() string {
	return gjson.GetBytes(d.raw, "event.name").String()
}

// Entries returns every schedule entry, interviews included, in feed order.
func (d *Document) Entries() []gjson.Result {
	return gjson.GetBytes(d.raw, "schedule").Array()
}

// Filter keeps the speedrun entries of the document in their original order.
// Interviews are bound to a speedrun with the same order and carry little data
// of their own, so they are dropped. The feed is already sorted by order and the
// order is not checked here.
func Filter(doc *Document) (model.Marathon, error) {
	marathon := model.Marathon{
		EventName: doc.EventName(),
		Schedule:  []model.Run{},
	}
	for _, entry := range doc.Entries() {
		if entry.Get("type").String() != model.KindSpeedrun {
			continue
		}
		run, err := parseRun(entry)
		if err != nil {
			return model.Marathon{}, err
		}
		marathon.Schedule = append(marathon.Schedule, run)
	}
	return marathon, nil
}

// ParseMarathon is NewDocument followed by Filter.
func ParseMarathon(body []byte) (model.Marathon, error) {
	doc, err := NewDocument(body)
	if err != nil {
		return model.Marathon{}, err
	}
	return Filter(doc)
}

func parseRun(entry gjson.Result) (model.Run, error) {
	run := model.Run{
		DisplayName: entry.Get("display_name").String(),
		Category:    entry.Get("category").String(),
		Kind:        entry.Get("type").String(),
		Order:       int(entry.Get("order").Int()),
	}
	// starttime is like 2024-06-30T23:16:00-05:00, the offset is kept as published
	raw := entry.Get("starttime").String()
	startTime, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return model.Run{}, fmt.Errorf("%w: run %q has invalid starttime %q", ErrInvalidDocument, run.DisplayName, raw)
	}
	run.StartTime = startTime
	return run, nil
}
