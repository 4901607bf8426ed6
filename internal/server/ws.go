package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"pingpong/internal/net"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second

	sendBuffer = 256
	// Watchers only ever send a hello.
	maxMessageSize = 1024
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Watchers may be served from anywhere
	},
}

// Connection is one watcher.
type Connection struct {
	conn      *websocket.Conn
	send      chan []byte
	hub       *Hub
	watcherID int
	logger    zerolog.Logger
}

func NewConnection(conn *websocket.Conn, hub *Hub) *Connection {
	return &Connection{
		conn:   conn,
		send:   make(chan []byte, sendBuffer),
		hub:    hub,
		logger: hub.logger,
	}
}

// queue must be called with the hub lock held.
func (c *Connection) queue(data []byte) {
	select {
	case c.send <- data:
	default:
		c.logger.Debug().Int("watcher_id", c.watcherID).Msg("send buffer full, dropping frame")
	}
}

func (c *Connection) readPump() {
	defer func() {
		c.hub.remove(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn().Err(err).Int("watcher_id", c.watcherID).Msg("websocket error")
			}
			return
		}

		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(message, &base); err != nil {
			continue
		}

		switch base.Type {
		case net.TypeHello:
			var hello net.HelloMessage
			if err := json.Unmarshal(message, &hello); err == nil {
				c.logger.Info().
					Int("watcher_id", c.watcherID).
					Str("name", hello.Name).
					Int("version", hello.Version).
					Msg("watcher said hello")
			}
		}
	}
}

func (c *Connection) writePump() {
	ticker := time.NewTicker(pingPeriod)
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
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
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

// HandleWebSocket upgrades authorized requests and registers them as watchers.
func HandleWebSocket(hub *Hub, token string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !Authorize(r, token) {
			http.Error(w, "Invalid token", http.StatusUnauthorized)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			hub.logger.Warn().Err(err).Msg("websocket upgrade failed")
			return
		}

		c := NewConnection(conn, hub)
		hub.add(c)
		go c.writePump()
		go c.readPump()
	}
}
