// Package ws streams live delivery positions to dashboard clients over
// WebSocket. Clients subscribe to one delivery and receive every position or
// status update pushed by the driver app.
package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"wms-backend/internal/models"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 50 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Browser origin checks are handled by the CORS layer in front.
	CheckOrigin: func(r *http.Request) bool { return true },
}

type client struct {
	deliveryID int
	conn       *websocket.Conn
	send       chan []byte
}

// DeliveryHub fans position updates out to subscribers grouped by delivery.
type DeliveryHub struct {
	register   chan *client
	unregister chan *client
	updates    chan *models.PositionUpdate
	clients    map[int]map[*client]bool
}

func NewDeliveryHub() *DeliveryHub {
	return &DeliveryHub{
		register:   make(chan *client),
		unregister: make(chan *client),
		updates:    make(chan *models.PositionUpdate, 64),
		clients:    make(map[int]map[*client]bool),
	}
}

// Run owns the client map; all mutations go through the channels.
func (h *DeliveryHub) Run() {
	for {
		select {
		case c := <-h.register:
			if h.clients[c.deliveryID] == nil {
				h.clients[c.deliveryID] = make(map[*client]bool)
			}
			h.clients[c.deliveryID][c] = true

		case c := <-h.unregister:
			if subs := h.clients[c.deliveryID]; subs[c] {
				delete(subs, c)
				close(c.send)
				if len(subs) == 0 {
					delete(h.clients, c.deliveryID)
				}
			}

		case u := <-h.updates:
			data, err := json.Marshal(u)
			if err != nil {
				continue
			}
			for c := range h.clients[u.DeliveryID] {
				select {
				case c.send <- data:
				default:
					// Slow consumer; drop it rather than block the hub.
					delete(h.clients[u.DeliveryID], c)
					close(c.send)
				}
			}
		}
	}
}

// Broadcast queues an update for delivery subscribers. Non-blocking; when the
// queue is full the update is dropped (the next one supersedes it anyway).
func (h *DeliveryHub) Broadcast(update *models.PositionUpdate) {
	select {
	case h.updates <- update:
	default:
	}
}

// ServeWS upgrades /ws/deliveries/{id} requests and subscribes the socket.
func (h *DeliveryHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	deliveryID, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid delivery id", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[WS] upgrade failed: %v", err)
		return
	}

	c := &client{deliveryID: deliveryID, conn: conn, send: make(chan []byte, 16)}
	h.register <- c

	go c.writePump()
	go c.readPump(h)
}

func (c *client) readPump(h *DeliveryHub) {
	defer func() {
		h.unregister <- c
		c.conn.Close()
	}()
	c.conn.SetReadLimit(512)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})
	for {
		// Subscribers only listen; any read error means the peer went away.
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()
	for {
		select {
		case data, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
