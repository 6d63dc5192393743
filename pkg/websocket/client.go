package websocket

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	maxMessageSize = 512
)

type Client struct {
	ID string

	hub          *Hub
	conn         *websocket.Conn
	send         chan []byte
	rooms        map[string]bool
	initialRooms []string
	pingPeriod   time.Duration
	pongWait     time.Duration
}

func NewClient(hub *Hub, conn *websocket.Conn, rooms []string, opts Options) *Client {
	opts = opts.withDefaults()
	return &Client{
		ID:           uuid.NewString(),
		hub:          hub,
		conn:         conn,
		send:         make(chan []byte, 256),
		rooms:        make(map[string]bool),
		initialRooms: rooms,
		pingPeriod:   opts.PingInterval,
		pongWait:     opts.PongTimeout,
	}
}

func (c *Client) readPump() {
	defer func() {
		c.hub.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(c.pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Warnf("WebSocket error: %v", err)
			}
			break
		}

		c.handleMessage(message)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(c.pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages if any
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
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

// handleMessage only understands room membership; the stream is read-only.
func (c *Client) handleMessage(message []byte) {
	var msg Message
	if err := json.Unmarshal(message, &msg); err != nil {
		c.hub.log.Debugf("Error unmarshaling client message: %v", err)
		return
	}

	roomID, _ := msg.Data["room_id"].(string)
	if roomID == "" {
		return
	}

	switch msg.Type {
	case "join_room":
		c.hub.JoinRoom(c, roomID)
	case "leave_room":
		c.hub.LeaveRoom(c, roomID)
	}
}
