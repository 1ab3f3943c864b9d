// Package messaging keeps the open push sockets of the messaging gate and
// fans chat pushes out to them.
package messaging

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/linskybing/engagement-go/internal/domain/message"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// How long Notify waits on a full connection buffer before dropping.
	enqueueWait = 250 * time.Millisecond

	sendBuffer = 32
)

// Hub tracks every open connection per user. It implements message.Notifier.
type Hub struct {
	mu    sync.RWMutex
	conns map[uint]map[*Conn]struct{}
	log   *zap.Logger
}

func NewHub(log *zap.Logger) *Hub {
	return &Hub{
		conns: make(map[uint]map[*Conn]struct{}),
		log:   log,
	}
}

var _ message.Notifier = (*Hub)(nil)

// Conn is one websocket of one user.
type Conn struct {
	userID uint
	ws     *websocket.Conn
	send   chan []byte
	done   chan struct{}
	once   sync.Once
}

func (c *Conn) close() {
	c.once.Do(func() { close(c.done) })
}

// Notify pushes p to all of userID's connections in parallel and returns
// how many accepted it. A connection whose buffer stays full is skipped.
func (h *Hub) Notify(userID uint, p message.Push) int {
	data, err := json.Marshal(p)
	if err != nil {
		h.log.Error("marshal push", zap.Error(err))
		return 0
	}

	targets := h.connsOf(userID)
	if len(targets) == 0 {
		return 0
	}

	var delivered atomic.Int32
	var wg conc.WaitGroup
	for _, c := range targets {
		c := c
		wg.Go(func() {
			timer := time.NewTimer(enqueueWait)
			defer timer.Stop()
			select {
			case c.send <- data:
				delivered.Add(1)
			case <-c.done:
			case <-timer.C:
				h.log.Warn("push dropped, connection backed up", zap.Uint("user_id", userID))
			}
		})
	}
	wg.Wait()
	return int(delivered.Load())
}

// Connections reports how many sockets userID has open.
func (h *Hub) Connections(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[userID])
}

func (h *Hub) connsOf(userID uint) []*Conn {
	h.mu.RLock()
	defer h.mu.RUnlock()
	out := make([]*Conn, 0, len(h.conns[userID]))
	for c := range h.conns[userID] {
		out = append(out, c)
	}
	return out
}

func (h *Hub) register(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	set, ok := h.conns[c.userID]
	if !ok {
		set = make(map[*Conn]struct{})
		h.conns[c.userID] = set
	}
	set[c] = struct{}{}
}

func (h *Hub) unregister(c *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if set, ok := h.conns[c.userID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.conns, c.userID)
		}
	}
}

// Serve owns ws until the peer goes away. It blocks, so call it from the
// upgrading handler.
func (h *Hub) Serve(userID uint, ws *websocket.Conn) {
	c := &Conn{
		userID: userID,
		ws:     ws,
		send:   make(chan []byte, sendBuffer),
		done:   make(chan struct{}),
	}
	h.register(c)
	h.log.Debug("push socket opened", zap.Uint("user_id", userID))

	go h.writePump(c)
	h.readPump(c)

	h.unregister(c)
	c.close()
	h.log.Debug("push socket closed", zap.Uint("user_id", userID))
}

// readPump only watches for pongs and the close frame; clients never send
// chat over the socket.
func (h *Hub) readPump(c *Conn) {
	c.ws.SetReadLimit(4096)
	_ = c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		return c.ws.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.ws.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("push socket read error", zap.Error(err))
			}
			return
		}
	}
}

func (h *Hub) writePump(c *Conn) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.ws.Close()
	}()

	for {
		select {
		case data := <-c.send:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
				c.close()
				return
			}
		case <-ticker.C:
			_ = c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			_ = c.ws.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), time.Now().Add(writeWait))
			return
		}
	}
}
