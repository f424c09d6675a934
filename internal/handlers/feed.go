package handlers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"isorail.dev/internal/models"
	"isorail.dev/internal/services"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
	sendBuffer = 64
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Renderers are served from anywhere
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Client is one websocket subscriber to the live feed
type Client struct {
	ws     *websocket.Conn
	send   chan []byte
	closed sync.Once
}

func newClient(ws *websocket.Conn) *Client {
	return &Client{ws: ws, send: make(chan []byte, sendBuffer)}
}

// enqueue queues data for writing; a client that cannot keep up is disconnected
func (c *Client) enqueue(data []byte) {
	select {
	case c.send <- data:
	default:
		c.ws.Close()
	}
}

// readPump discards incoming messages and returns when the peer goes away
func (c *Client) readPump(logger logrus.FieldLogger) {
	c.ws.SetReadLimit(512)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.WithError(err).Debug("feed client read failed")
			}
			return
		}
	}
}

// writePump sends queued messages and keepalive pings until send is closed
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// Hub fans live feed messages out to every connected client
type Hub struct {
	clients map[*Client]struct{}
	mutex   sync.RWMutex
	logger  logrus.FieldLogger
}

// NewHub creates an empty hub
func NewHub(logger logrus.FieldLogger) *Hub {
	return &Hub{
		clients: make(map[*Client]struct{}),
		logger:  logger.WithField("component", "feed"),
	}
}

func (h *Hub) add(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	h.clients[c] = struct{}{}
}

// remove drops c and closes its queue. Closing happens under the write
// lock so no Broadcast can be sending to it.
func (h *Hub) remove(c *Client) {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	if _, ok := h.clients[c]; ok {
		delete(h.clients, c)
		c.closed.Do(func() { close(c.send) })
	}
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients)
}

// Broadcast sends msg to all connected clients
func (h *Hub) Broadcast(msg models.Message) {
	data, err := json.Marshal(msg)
	if err != nil {
		h.logger.WithError(err).WithField("type", msg.Type).Error("encoding feed message")
		return
	}

	h.mutex.RLock()
	defer h.mutex.RUnlock()
	for c := range h.clients {
		c.enqueue(data)
	}
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for c := range h.clients {
		delete(h.clients, c)
		c.closed.Do(func() { close(c.send) })
	}
}

// FeedHandler upgrades requests to the live websocket feed
type FeedHandler struct {
	hub    *Hub
	worlds *services.WorldService
	logger logrus.FieldLogger
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(hub *Hub, worlds *services.WorldService, logger logrus.FieldLogger) *FeedHandler {
	return &FeedHandler{hub: hub, worlds: worlds, logger: logger}
}

// Serve handles GET /api/ws. New clients first receive the current world notice.
func (h *FeedHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.WithError(err).Warn("websocket upgrade failed")
		return
	}

	c := newClient(conn)
	if data, err := json.Marshal(models.Message{
		Type:    models.MessageTypeWorld,
		Payload: services.WorldNotice(h.worlds.Current()),
	}); err == nil {
		c.enqueue(data)
	}
	h.hub.add(c)
	h.logger.WithField("clients", h.hub.Len()).Info("feed client connected")

	go c.writePump()
	c.readPump(h.logger)
	h.hub.remove(c)
	h.logger.WithField("clients", h.hub.Len()).Info("feed client disconnected")
}
