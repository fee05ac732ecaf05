package main

import (
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	readLimit     = 4096
	readDeadline  = 120 * time.Second
	writeDeadline = 5 * time.Second
	pingInterval  = 15 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin:     func(r *http.Request) bool { return true },
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

var updateMessage = []byte(`{"type":"wishlist_updated"}`)

type wsClient struct {
	conn *websocket.Conn
	mu   sync.Mutex
}

// ListHub groups live viewer connections by wishlist slug. Writes to a
// connection always go through its per-connection mutex.
type ListHub struct {
	mu       sync.RWMutex
	viewers  map[string]map[*wsClient]struct{}
	infoLog  *log.Logger
	errorLog *log.Logger
}

func NewListHub(infoLog, errorLog *log.Logger) *ListHub {
	return &ListHub{
		viewers:  make(map[string]map[*wsClient]struct{}),
		infoLog:  infoLog,
		errorLog: errorLog,
	}
}

// Run forwards change signals to the viewers of the affected list. It
// returns when the signal channel closes.
func (h *ListHub) Run(signals <-chan string) {
	for slug := range signals {
		h.Broadcast(slug)
	}
}

// Broadcast pushes the update frame to every viewer of the slug. The frame
// carries no payload; clients re-fetch the list over HTTP.
func (h *ListHub) Broadcast(slug string) {
	h.mu.RLock()
	clients := make([]*wsClient, 0, len(h.viewers[slug]))
	for c := range h.viewers[slug] {
		clients = append(clients, c)
	}
	h.mu.RUnlock()

	for _, c := range clients {
		c.mu.Lock()
		c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		err := c.conn.WriteMessage(websocket.TextMessage, updateMessage)
		c.mu.Unlock()
		if err != nil {
			h.errorLog.Printf("ws broadcast slug=%s: %v", slug, err)
			h.drop(slug, c)
		}
	}
}

func (h *ListHub) add(slug string, c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.viewers[slug] == nil {
		h.viewers[slug] = make(map[*wsClient]struct{})
	}
	h.viewers[slug][c] = struct{}{}
}

func (h *ListHub) drop(slug string, c *wsClient) {
	h.mu.Lock()
	if set, ok := h.viewers[slug]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.viewers, slug)
		}
	}
	h.mu.Unlock()
	c.conn.Close()
}

func (h *ListHub) ServeWS(w http.ResponseWriter, r *http.Request) {
	slug := r.URL.Query().Get(":slug")
	if slug == "" {
		http.Error(w, "slug required", http.StatusBadRequest)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.errorLog.Printf("ws upgrade slug=%s: %v", slug, err)
		return
	}
	c := &wsClient{conn: conn}
	h.add(slug, c)
	h.infoLog.Printf("ws viewer joined slug=%s", slug)

	go h.readLoop(slug, c)
	go h.pingLoop(c)
}

// readLoop drains incoming frames to keep pong handling alive; viewers are
// not expected to send anything meaningful.
func (h *ListHub) readLoop(slug string, c *wsClient) {
	defer h.drop(slug, c)
	c.conn.SetReadLimit(readLimit)
	c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(readDeadline))
		return nil
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *ListHub) pingLoop(c *wsClient) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for range ticker.C {
		c.mu.Lock()
		c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
		err := c.conn.WriteMessage(websocket.PingMessage, nil)
		c.mu.Unlock()
		if err != nil {
			return
		}
	}
}
