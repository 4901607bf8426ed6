package client

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"

	"pingpong/internal/net"
)

// NetClient follows a host's spectator feed.
type NetClient struct {
	conn     *websocket.Conn
	send     chan []byte
	snapshot chan net.SnapMessage
	welcome  chan net.WelcomeMessage
	done     chan struct{}
	mu       sync.Mutex
	closed   bool
	logger   zerolog.Logger

	WatcherID int
}

// DialSpectator connects to addr. A token, if any, is passed as a bearer header.
func DialSpectator(addr, token string, logger zerolog.Logger) (*NetClient, error) {
	header := http.Header{}
	if token != "" {
		header.Set("Authorization", "Bearer "+token)
	}
	conn, _, err := websocket.DefaultDialer.Dial(addr, header)
	if err != nil {
		return nil, eris.Wrapf(err, "failed to connect to %s", addr)
	}

	nc := &NetClient{
		conn:     conn,
		send:     make(chan []byte, 16),
		snapshot: make(chan net.SnapMessage, 120),
		welcome:  make(chan net.WelcomeMessage, 1),
		done:     make(chan struct{}),
		logger:   logger.With().Str("component", "netclient").Logger(),
	}

	go nc.readPump()
	go nc.writePump()

	nc.SendMessage(net.HelloMessage{
		Type:    net.TypeHello,
		Name:    "watcher",
		Version: net.ProtocolVersion,
	})

	return nc, nil
}

func (nc *NetClient) SendMessage(v interface{}) {
	data, err := json.Marshal(v)
	if err != nil {
		return
	}
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if nc.closed {
		return
	}
	select {
	case nc.send <- data:
	default:
	}
}

func (nc *NetClient) readPump() {
	defer func() {
		close(nc.done)
		nc.conn.Close()
	}()

	for {
		_, message, err := nc.conn.ReadMessage()
		if err != nil {
			nc.logger.Info().Err(err).Msg("feed closed")
			return
		}

		var base struct {
			Type string `json:"type"`
		}
		if err := json.Unmarshal(message, &base); err != nil {
			continue
		}

		switch base.Type {
		case net.TypeWelcome:
			var welcome net.WelcomeMessage
			if err := json.Unmarshal(message, &welcome); err == nil {
				nc.mu.Lock()
				nc.WatcherID = welcome.WatcherID
				nc.mu.Unlock()
				select {
				case nc.welcome <- welcome:
				default:
				}
			}

		case net.TypeSnap:
			var snap net.SnapMessage
			if err := json.Unmarshal(message, &snap); err == nil {
				select {
				case nc.snapshot <- snap:
				default:
					// Drop if buffer full
				}
			}
		}
	}
}

func (nc *NetClient) writePump() {
	for message := range nc.send {
		if err := nc.conn.WriteMessage(websocket.TextMessage, message); err != nil {
			return
		}
	}
	nc.conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}

// GetSnapshot returns the next queued snapshot, or nil if none is waiting.
func (nc *NetClient) GetSnapshot() *net.SnapMessage {
	select {
	case snap := <-nc.snapshot:
		return &snap
	default:
		return nil
	}
}

func (nc *NetClient) GetWelcome() *net.WelcomeMessage {
	select {
	case welcome := <-nc.welcome:
		return &welcome
	default:
		return nil
	}
}

// Done is closed once the feed stops.
func (nc *NetClient) Done() <-chan struct{} {
	return nc.done
}

func (nc *NetClient) Close() {
	nc.mu.Lock()
	defer nc.mu.Unlock()
	if nc.closed {
		return
	}
	nc.closed = true
	close(nc.send)
}
