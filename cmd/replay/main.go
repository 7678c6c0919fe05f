// Command replay serves a recorded schedule document as if it were the live
// schedule API, with start times moved so the marathon begins shortly after the
// replay starts. Point the widget's base url at it to watch countdowns run.
package main

import (
	"flag"
	"log"
	"net/http"
	"os"
	"strings"
	"time"
)

// RFC3339 format used by the schedule feed
const timestampLayout = time.RFC3339

var (
	listenAddr    = flag.String("listen", "localhost:8081", "address for the replay API to listen on")
	recordingPath = flag.String("recording", "schedule/testdata/sgdq2024.json", "recorded schedule document")
	lead          = flag.Duration("lead", 2*time.Minute, "delay before the first recorded run starts")
	timeFactor    = flag.Float64("factor", 1, "speed-up applied to the gaps between runs")
)

func main() {
	flag.Parse()

	recording, err := os.ReadFile(*recordingPath)
	if err != nil {
		log.Fatalf("Failed to read recording file '%s': %v", *recordingPath, err)
	}

	shifted, err := shiftSchedule(recording, time.Now().Add(*lead), *timeFactor)
	if err != nil {
		log.Fatalf("Failed to shift recording: %v", err)
	}
	log.Printf("Replaying %s on %s, first run in %s", *recordingPath, *listenAddr, *lead)

	http.HandleFunc("/api/schedule/", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet {
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
			return
		}
		log.Printf("Serving recording for event %s to %s", strings.TrimPrefix(r.URL.Path, "/api/schedule/"), r.RemoteAddr)
		w.Header().Set("Content-Type", "application/json")
		w.Write(shifted)
	})

	if err := http.ListenAndServe(*listenAddr, nil); err != nil {
		log.Fatalf("Replay HTTP server failed: %v\n", err)
	}
}
