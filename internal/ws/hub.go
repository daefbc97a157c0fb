package ws

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/skyxwalker/Food-Stall-ERP-System/internal/timeutil"
)

// OrderEvent is pushed to every connected queue board when the ledger
// changes, so boards can refetch instead of polling.
type OrderEvent struct {
	Event     string    `json:"event"`
	SaleID    string    `json:"sale_id"`
	Timestamp time.Time `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub fans order events out to the connected queue boards.
type Hub struct {
	clients    map[*websocket.Conn]bool
	clientsMux sync.Mutex
	broadcast  chan OrderEvent
}

func NewHub() *Hub {
	return &Hub{
		clients:   make(map[*websocket.Conn]bool),
		broadcast: make(chan OrderEvent, 64),
	}
}

// Run drains the broadcast channel; call it once from main.
func (h *Hub) Run() {
	for event := range h.broadcast {
		h.clientsMux.Lock()
		for client := range h.clients {
			if err := client.WriteJSON(event); err != nil {
				client.Close()
				delete(h.clients, client)
			}
		}
		h.clientsMux.Unlock()
	}
}

// NotifyOrders queues an event for broadcast. If the channel is full the
// event is dropped; boards resync on their next fetch anyway.
func (h *Hub) NotifyOrders(event string, saleID string) {
	select {
	case h.broadcast <- OrderEvent{Event: event, SaleID: saleID, Timestamp: timeutil.Now()}:
	default:
		log.Printf("[WS] broadcast buffer full, dropping %s for sale %s", event, saleID)
	}
}

// HandleWebSocket upgrades the connection and parks it until the client
// goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Println("WebSocket upgrade error:", err)
		return
	}
	defer conn.Close()

	h.clientsMux.Lock()
	h.clients[conn] = true
	h.clientsMux.Unlock()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			h.clientsMux.Lock()
			delete(h.clients, conn)
			h.clientsMux.Unlock()
			break
		}
	}
}
