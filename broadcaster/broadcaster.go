package broadcaster

import (
	"net/http"
	"sync"
	"time"

	"gdqwidget/logger"

	"github.com/dustin/go-humanize"
	"github.com/gorilla/websocket"
)

const writeWait = 10 * time.Second

// Manages connected widget WebSocket clients and broadcasts rendered views.
type Broadcaster struct {
	clients map[*websocket.Conn]bool
	sync.RWMutex
	upgrader websocket.Upgrader
	log      logger.Logger
}

func NewBroadcaster(log logger.Logger) *Broadcaster {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Broadcaster{
		clients: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// the widget is embedded in arbitrary pages
				return true
			},
		},
		log: log,
	}
}

func (b *Broadcaster) HandleConnections(w http.ResponseWriter, r *http.Request, initialMessage []byte) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		b.log.Error("Failed to upgrade HTTP to WebSocket: %v", err)
		return
	}
	defer conn.Close()

	// Register under the write lock so a concurrent Broadcast cannot interleave
	// with the initial view.
	b.Lock()
	if initialMessage != nil {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, initialMessage); err != nil {
			b.Unlock()
			b.log.Warning("Error sending initial view to widget client %s: %v", conn.RemoteAddr(), err)
			return
		}
	}
	b.clients[conn] = true
	total := len(b.clients)
	b.Unlock()

	b.log.Info("Widget client connected: %s. Total clients: %s", conn.RemoteAddr(), humanize.Comma(int64(total)))

	// Widgets never send anything; ReadMessage returns once the client goes away.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	b.Lock()
	delete(b.clients, conn)
	total = len(b.clients)
	b.Unlock()
	b.log.Info("Widget client removed: %s. Total clients: %s", conn.RemoteAddr(), humanize.Comma(int64(total)))
}

// Broadcast sends message to every connected client. Clients that fail the
// write are closed and drop out through their read loop.
func (b *Broadcaster) Broadcast(message []byte) {
	b.Lock()
	defer b.Unlock()

	for client := range b.clients {
		client.SetWriteDeadline(time.Now().Add(writeWait))
		err := client.WriteMessage(websocket.TextMessage, message)
		if err != nil {
			b.log.Warning("Error sending view to widget client %s: %v", client.RemoteAddr(), err)
			client.Close()
		}
	}
}

func (b *Broadcaster) ClientCount() int {
	b.RLock()
	defer b.RUnlock()
	return len(b.clients)
}

// Close disconnects every client.
func (b *Broadcaster) Close() {
	b.Lock()
	defer b.Unlock()
	for client := range b.clients {
		client.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
			time.Now().Add(time.Second))
		client.Close()
	}
}
