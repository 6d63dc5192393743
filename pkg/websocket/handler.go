package websocket

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

type Options struct {
	ReadBufferSize    int
	WriteBufferSize   int
	HandshakeTimeout  time.Duration
	PingInterval      time.Duration
	PongTimeout       time.Duration
	MaxConnections    int
	EnableCompression bool
	AllowedOrigins    []string
}

func (o Options) withDefaults() Options {
	if o.PongTimeout <= 0 {
		o.PongTimeout = 60 * time.Second
	}
	if o.PingInterval <= 0 || o.PingInterval >= o.PongTimeout {
		o.PingInterval = (o.PongTimeout * 9) / 10
	}
	return o
}

type Handler struct {
	hub      *Hub
	upgrader websocket.Upgrader
	opts     Options
}

// NewHandler starts a hub that lives until ctx is cancelled.
func NewHandler(ctx context.Context, opts Options, log logrus.FieldLogger) *Handler {
	hub := NewHub(log)
	go hub.Run(ctx)

	return &Handler{
		hub:  hub,
		opts: opts.withDefaults(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:    opts.ReadBufferSize,
			WriteBufferSize:   opts.WriteBufferSize,
			HandshakeTimeout:  opts.HandshakeTimeout,
			EnableCompression: opts.EnableCompression,
			CheckOrigin:       originChecker(opts.AllowedOrigins),
		},
	}
}

// HandleWebSocket upgrades the request and subscribes the connection to the
// rooms listed in the comma separated "rooms" query parameter.
func (h *Handler) HandleWebSocket(c *gin.Context) {
	if h.opts.MaxConnections > 0 && h.hub.ClientCount() >= h.opts.MaxConnections {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Too many connections"})
		return
	}

	var rooms []string
	for _, room := range strings.Split(c.Query("rooms"), ",") {
		if room = strings.TrimSpace(room); room != "" {
			rooms = append(rooms, room)
		}
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.hub.log.Warnf("WebSocket upgrade failed: %v", err)
		return
	}

	client := NewClient(h.hub, conn, rooms, h.opts)
	if !h.hub.Register(client) {
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

func (h *Handler) Publish(roomID, messageType string, data map[string]interface{}) {
	h.hub.Publish(roomID, messageType, data)
}

func (h *Handler) GetHub() *Hub {
	return h.hub
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, a := range allowed {
			if a == "*" || strings.EqualFold(a, origin) {
				return true
			}
		}
		return false
	}
}
