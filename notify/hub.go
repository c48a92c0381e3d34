package notify

import (
	"encoding/json"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/comex-tools/comex-app/models"
)

// Event types
const (
	EventProcessUpdate = "process_update"
	EventProcessDelete = "process_delete"
	EventStatusUpdate  = "status_update"
	EventImportUpdate  = "import_update"
	EventStaffNotif    = "staff_notification"
)

type Message struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// Hub holds every connected follow-up client (admin, comex, fiscal, viewer)
// and fans broadcasts out to all of them.
type Hub struct {
	clients map[*websocket.Conn]string // conn -> role
	mutex   sync.Mutex
}

var hub = Hub{
	clients: make(map[*websocket.Conn]string),
}

// RegisterClient adds a connection to the set with its role.
func RegisterClient(conn *websocket.Conn, role string) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	hub.clients[conn] = role
}

// UnregisterClient drops and closes a connection.
func UnregisterClient(conn *websocket.Conn) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()
	delete(hub.clients, conn)
	conn.Close()
}

// BroadcastProcessUpdate pushes the refreshed process to every client.
func BroadcastProcessUpdate(proc models.Process) {
	broadcast(Message{
		Event: EventProcessUpdate,
		Data:  proc,
	})
}

// BroadcastProcessDelete tells clients to drop a process from the listing.
func BroadcastProcessDelete(processID int64) {
	broadcast(Message{
		Event: EventProcessDelete,
		Data:  map[string]int64{"process_id": processID},
	})
}

// BroadcastStatusUpdate pushes one status transition.
func BroadcastStatusUpdate(proc models.Process) {
	broadcast(Message{
		Event: EventStatusUpdate,
		Data:  proc,
	})
}

// BroadcastImportUpdate announces a freshly ingested DI.
func BroadcastImportUpdate(decl models.Declaration) {
	broadcast(Message{
		Event: EventImportUpdate,
		Data:  decl,
	})
}

// BroadcastStaffNotification sends a free-form message to every client.
func BroadcastStaffNotification(message string) {
	broadcast(Message{
		Event: EventStaffNotif,
		Data:  message,
	})
}

func broadcast(msg Message) {
	hub.mutex.Lock()
	defer hub.mutex.Unlock()

	payload, err := json.Marshal(msg)
	if err != nil {
		log.Printf("Error marshalling broadcast message: %v", err)
		return
	}

	for conn := range hub.clients {
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			log.Printf("Error broadcasting to client: %v", err)
			conn.Close()
			delete(hub.clients, conn)
		}
	}
}
