package schedule

import (
	"errors"
	"os"
	"testing"
	"time"
)

func TestParseMarathonKeepsSpeedrunsInOrder(t *testing.T) {
	body, err := os.ReadFile("testdata/sgdq2024.json")
	if err != nil {
		t.Fatalf("read testdata: %v", err)
	}

	marathon, err := ParseMarathon(body)
	if err != nil {
		t.Fatalf("ParseMarathon: %v", err)
	}
	if marathon.EventName != "Summer Games Done Quick 2024" {
		t.Errorf("unexpected event name %q", marathon.EventName)
	}

	want := []string{"Tetris Effect: Connected", "Celeste", "Super Mario 64", "Hollow Knight"}
	if len(marathon.Schedule) != len(want) {
		t.Fatalf("expected %d runs, got %d", len(want), len(marathon.Schedule))
	}
	for i, run := range marathon.Schedule {
		if run.DisplayName != want[i] {
			t.Errorf("run %d: expected %q, got %q", i, want[i], run.DisplayName)
		}
		if run.Kind != "speedrun" {
			t.Errorf("run %d: unexpected kind %q", i, run.Kind)
		}
		if run.Order != i+1 {
			t.Errorf("run %d: unexpected order %d", i, run.Order)
		}
	}
	if marathon.Schedule[2].Category != "70 Star" {
		t.Errorf("unexpected category %q", marathon.Schedule[2].Category)
	}
}

func TestParseMarathonKeepsPublishedOffset(t *testing.T) {
	payload := `{"event":{"name":"X"},"schedule":[
{"type":"speedrun","display_name":"A","category":"c","order":1,"starttime":"2024-06-30T23:16:00-05:00"}]}`
	marathon, err := ParseMarathon([]byte(payload))
	if err != nil {
		t.Fatalf("ParseMarathon: %v", err)
	}
	start := marathon.Schedule[0].StartTime
	want := time.Date(2024, 7, 1, 4, 16, 0, 0, time.UTC)
	if !start.Equal(want) {
		t.Errorf("expected %v, got %v", want, start)
	}
	if _, offset := start.Zone(); offset != -5*60*60 {
		t.Errorf("expected -05:00 offset, got %d seconds", offset)
	}
}

func TestParseMarathonDoesNotSort(t *testing.T) {
	payload := `{"event":{"name":"X"},"schedule":[
{"type":"speedrun","display_name":"late","order":2,"starttime":"2024-06-30T14:00:00Z"},
{"type":"speedrun","display_name":"early","order":1,"starttime":"2024-06-30T12:00:00Z"}]}`
	marathon, err := ParseMarathon([]byte(payload))
	if err != nil {
		t.Fatalf("ParseMarathon: %v", err)
	}
	if marathon.Schedule[0].DisplayName != "late" || marathon.Schedule[1].DisplayName != "early" {
		t.Errorf("schedule was reordered: %+v", marathon.Schedule)
	}
}

func TestParseMarathonOnlyInterviews(t *testing.T) {
	payload := `{"event":{"name":"X"},"schedule":[{"type":"interview","order":1}]}`
	marathon, err := ParseMarathon([]byte(payload))
	if err != nil {
		t.Fatalf("ParseMarathon: %v", err)
	}
	if len(marathon.Schedule) != 0 {
		t.Errorf("expected no runs, got %d", len(marathon.Schedule))
	}
}

func TestParseMarathonRejectsBadDocuments(t *testing.T) {
	tests := []struct {
		name    string
		payload string
	}{
		{"not json", `<html>maintenance</html>`},
		{"truncated", `{"event":{"name":"X"},"schedule":[`},
		{"no schedule", `{"event":{"name":"X"}}`},
		{"bad starttime", `{"event":{"name":"X"},"schedule":[{"type":"speedrun","display_name":"A","starttime":"tomorrow"}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseMarathon([]byte(tt.payload))
			if !errors.Is(err, ErrInvalidDocument) {
				t.Errorf("expected ErrInvalidDocument, got %v", err)
			}
		})
	}
}
