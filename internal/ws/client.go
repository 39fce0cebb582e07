package ws

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// Wire timing knobs, mirroring the gorilla chat example defaults.
const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxFrameBytes  = 64 << 10
	sendBufferSize = 16
)

// Client is one connected socket bound to an authenticated user.
type Client struct {
	hub    *Hub
	conn   *websocket.Conn
	userID string

	// mu orders enqueue against closeSend: a broadcast that snapshotted this
	// client just before it disconnected must observe closed and drop the
	// frame instead of sending on a closed channel.
	mu     sync.Mutex
	closed bool
	send   chan Frame
}

func newClient(hub *Hub, conn *websocket.Conn, userID string) *Client {
	return &Client{
		hub:    hub,
		conn:   conn,
		userID: userID,
		send:   make(chan Frame, sendBufferSize),
	}
}

// enqueue hands a frame to the write pump without blocking. A full buffer
// drops the frame; the client is lagging and will be disconnected by ping
// timeout rather than stall the caller. Frames enqueued after closeSend are
// dropped silently.
func (c *Client) enqueue(frame Frame) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	select {
	case c.send <- frame:
	default:
		log.Warn().Str("user_id", c.userID).Str("event", frame.Event).
			Msg("ws send buffer full, dropping frame")
	}
}

// closeSend closes the send channel exactly once, stopping the write pump.
// It is the only place allowed to close the channel.
func (c *Client) closeSend() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
}

// writePump serializes all writes to the connection: queued frames plus
// keepalive pings. It exits when the send channel closes or a write fails.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case frame, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(frame); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
