package stream

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
)

const (
	// Maximum control message size allowed from a viewer.
	maxMessageSize = 64 * 1024

	sendBuffer = 64
)

// Client is a middleman between one websocket connection and the hub.
type Client struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

type directMessage struct {
	client *Client
	msg    []byte
}

// Hub tracks connected viewers and fans frames out to them.
type Hub struct {
	clients    map[*Client]struct{}
	register   chan *Client
	unregister chan *Client
	broadcast  chan []byte
	direct     chan directMessage
	done       chan struct{}
	count      atomic.Int32

	writeWait time.Duration
	onJoin    func()
	onControl func(*Client, Control)
	log       *slog.Logger
	upgrader  websocket.Upgrader
}

// NewHub creates a hub. onJoin runs on the hub goroutine whenever a viewer
// connects; onControl runs on the client's read goroutine.
func NewHub(writeWait time.Duration, onJoin func(), onControl func(*Client, Control), logger *slog.Logger) *Hub {
	if writeWait <= 0 {
		writeWait = 10 * time.Second
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients:    make(map[*Client]struct{}),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan []byte, 16),
		direct:     make(chan directMessage, 16),
		done:       make(chan struct{}),
		writeWait:  writeWait,
		onJoin:     onJoin,
		onControl:  onControl,
		log:        logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
	}
}

// Clients returns the number of connected viewers.
func (h *Hub) Clients() int { return int(h.count.Load()) }

// Broadcast queues msg for every viewer without blocking. It reports false
// when the queue is full and the message was dropped.
func (h *Hub) Broadcast(msg []byte) bool {
	select {
	case h.broadcast <- msg:
		return true
	default:
		return false
	}
}

// Run serves register, unregister and broadcast requests until ctx ends.
func (h *Hub) Run(ctx context.Context) error {
	defer close(h.done)
	defer func() {
		for c := range h.clients {
			close(c.send)
		}
	}()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case c := <-h.register:
			h.clients[c] = struct{}{}
			h.count.Add(1)
			h.log.Info("viewer connected", "addr", c.conn.RemoteAddr().String(), "viewers", len(h.clients))
			if h.onJoin != nil {
				h.onJoin()
			}
		case c := <-h.unregister:
			h.drop(c)
		case d := <-h.direct:
			if _, ok := h.clients[d.client]; ok {
				select {
				case d.client.send <- d.msg:
				default:
				}
			}
		case msg := <-h.broadcast:
			for c := range h.clients {
				select {
				case c.send <- msg:
				default:
					// A viewer that misses an incremental frame cannot recover.
					h.log.Warn("viewer too slow, disconnecting", "addr", c.conn.RemoteAddr().String())
					h.drop(c)
				}
			}
		}
	}
}

func (h *Hub) drop(c *Client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	h.count.Add(-1)
	close(c.send)
	h.log.Info("viewer disconnected", "viewers", len(h.clients))
}

// ServeHTTP upgrades the request and starts the client pumps.
func (h *Hub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "error", err)
		return
	}
	c := &Client{hub: h, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	}
	go c.writePump()
	go c.readPump()
}

// Send queues msg for this client only. It drops the message when the hub
// is busy or the client has gone.
func (c *Client) Send(msg []byte) {
	select {
	case c.hub.direct <- directMessage{client: c, msg: msg}:
	default:
	}
}

func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()
	c.conn.SetReadLimit(maxMessageSize)
	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warn("viewer read failed", "error", err)
			}
			return
		}
		var msg Control
		if err := json.Unmarshal(data, &msg); err != nil {
			c.hub.log.Warn("bad control message", "error", err)
			c.sendError(err)
			continue
		}
		if c.hub.onControl != nil {
			c.hub.onControl(c, msg)
		}
	}
}

func (c *Client) sendError(err error) {
	data, _ := json.Marshal(errorMessage{Type: "error", Message: err.Error()})
	c.Send(data)
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeWait))
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			c.hub.log.Warn("viewer write failed", "error", err)
			return
		}
	}
	c.conn.SetWriteDeadline(time.Now().Add(c.hub.writeWait))
	c.conn.WriteMessage(websocket.CloseMessage, []byte{})
}
