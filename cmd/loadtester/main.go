// Command loadtester connects many widget clients to a running server and
// reports how many view frames they receive.
package main

import (
	"flag"
	"log"
	"net/url"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"
	"github.com/tidwall/gjson"
)

var (
	numClients = flag.Int("clients", 500, "number of concurrent WebSocket clients to connect")
	serverURL  = flag.String("url", "ws://localhost:8080/ws", "widget WebSocket URL")
	duration   = flag.Duration("duration", time.Minute, "how long each client stays connected")
)

func main() {
	flag.Parse()

	u, err := url.Parse(*serverURL)
	if err != nil {
		log.Fatalf("Failed to parse URL: %v", err)
	}

	log.Printf("Starting WebSocket load tester with %s clients connecting to %s", humanize.Comma(int64(*numClients)), u.String())

	var frames, connected atomic.Int64
	var wg sync.WaitGroup
	wg.Add(*numClients)

	for i := 0; i < *numClients; i++ {
		go func(clientID int) {
			defer wg.Done()

			conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
			if err != nil {
				log.Printf("Client %d: Failed to connect: %v", clientID, err)
				return
			}
			defer conn.Close()
			connected.Add(1)

			deadline := time.Now().Add(*duration)
			conn.SetReadDeadline(deadline)
			for {
				_, message, err := conn.ReadMessage()
				if err != nil {
					if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) && time.Now().Before(deadline) {
						log.Printf("Client %d: Connection closed unexpectedly: %v", clientID, err)
					}
					return
				}
				if !gjson.ValidBytes(message) {
					log.Printf("Client %d: received invalid view frame", clientID)
					continue
				}
				frames.Add(1)
				if clientID == 0 {
					view := gjson.ParseBytes(message)
					log.Printf("Client 0: %s, %d runs on display", view.Get("eventTitle").String(), view.Get("runs.#").Int())
				}
			}
		}(i)

		// Small delay between clients to avoid a thundering herd
		time.Sleep(10 * time.Millisecond)
	}

	wg.Wait()

	log.Printf("All clients finished: %s connected, %s frames received.",
		humanize.Comma(connected.Load()), humanize.Comma(frames.Load()))
}
