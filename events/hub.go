package events

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/snackpoint/pos/models"
)

// Event types pushed to connected POS screens. Every successful write
// broadcasts the changed collection so screens re-render from live state
// instead of caching.
const (
	EventTableUpdate   = "table_update"
	EventMenuUpdate    = "menu_update"
	EventHistoryAppend = "history_append"
	EventStoreReplace  = "store_replace"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected screen.
type Hub struct {
	clients map[*websocket.Conn]struct{}
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]struct{}),
}

// RegisterClient adds a connection to the set.
func RegisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = struct{}{}
}

// UnregisterClient drops a connection and closes it.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastTableUpdate pushes the full table record after any mutation.
func BroadcastTableUpdate(table models.Table) {
	broadcast(Message{
		Event: EventTableUpdate,
		Data:  table,
	})
}

// BroadcastMenuUpdate pushes a menu change.
func BroadcastMenuUpdate(data interface{}) {
	broadcast(Message{
		Event: EventMenuUpdate,
		Data:  data,
	})
}

// BroadcastHistoryAppend pushes a freshly settled payment.
func BroadcastHistoryAppend(record models.HistoryRecord) {
	broadcast(Message{
		Event: EventHistoryAppend,
		Data:  record,
	})
}

// BroadcastStoreReplace tells screens to reload everything after a bulk
// import.
func BroadcastStoreReplace() {
	broadcast(Message{
		Event: EventStoreReplace,
		Data:  nil,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	data, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshaling message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			log.Printf("Error sending message to client: %v", err)
			continue
		}
	}
}
