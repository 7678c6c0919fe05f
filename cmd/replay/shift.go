package main

import (
	"encoding/json"
	"fmt"
	"time"
)

var shiftedKeys = []string{"starttime", "endtime"}

// shiftSchedule moves every entry time of a schedule document so the earliest
// start lands on firstStart, dividing the gaps by factor. Offsets are kept.
func shiftSchedule(body []byte, firstStart time.Time, factor float64) ([]byte, error) {
	if factor <= 0 {
		return nil, fmt.Errorf("time factor must be positive, got %v", factor)
	}

	var document map[string]interface{}
	if err := json.Unmarshal(body, &document); err != nil {
		return nil, fmt.Errorf("failed to parse recording: %w", err)
	}
	entries, ok := document["schedule"].([]interface{})
	if !ok {
		return nil, fmt.Errorf("recording has no schedule list")
	}

	var origin time.Time
	for _, entryInterface := range entries {
		entry, ok := entryInterface.(map[string]interface{})
		if !ok {
			continue
		}
		if t, ok := entryTime(entry, "starttime"); ok && (origin.IsZero() || t.Before(origin)) {
			origin = t
		}
	}
	if origin.IsZero() {
		return nil, fmt.Errorf("recording has no start times")
	}

	for _, entryInterface := range entries {
		entry, ok := entryInterface.(map[string]interface{})
		if !ok {
			continue
		}
		for _, key := range shiftedKeys {
			t, ok := entryTime(entry, key)
			if !ok {
				continue
			}
			offset := time.Duration(float64(t.Sub(origin)) / factor)
			entry[key] = firstStart.Add(offset).In(t.Location()).Format(timestampLayout)
		}
	}

	return json.Marshal(document)
}

func entryTime(entry map[string]interface{}, key string) (time.Time, bool) {
	raw, ok := entry[key].(string)
	if !ok {
		return time.Time{}, false
	}
	t, err := time.Parse(timestampLayout, raw)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
