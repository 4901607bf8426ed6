package server

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"pingpong/internal/game"
	"pingpong/internal/net"
)

// Hub fans the host's snapshots out to every connected watcher.
type Hub struct {
	connections map[int]*Connection
	nextID      int
	last        []byte
	mu          sync.Mutex

	logger zerolog.Logger
}

func NewHub(logger zerolog.Logger) *Hub {
	return &Hub{
		connections: make(map[int]*Connection),
		nextID:      1,
		logger:      logger.With().Str("component", "hub").Logger(),
	}
}

func (h *Hub) add(c *Connection) int {
	h.mu.Lock()
	defer h.mu.Unlock()

	id := h.nextID
	h.nextID++
	c.watcherID = id
	h.connections[id] = c

	welcome, _ := json.Marshal(net.WelcomeMessage{
		Type:      net.TypeWelcome,
		WatcherID: id,
		Version:   net.ProtocolVersion,
	})
	c.queue(welcome)
	h.logger.Info().Int("watcher_id", id).Int("watchers", len(h.connections)).Msg("watcher joined")
	return id
}

// remove drops a watcher and closes its send queue. Broadcast holds the same
// lock, so nothing writes to the queue after it is closed.
func (h *Hub) remove(c *Connection) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.connections[c.watcherID]; !ok {
		return
	}
	delete(h.connections, c.watcherID)
	close(c.send)
	h.logger.Info().Int("watcher_id", c.watcherID).Int("watchers", len(h.connections)).Msg("watcher left")
}

// Broadcast queues one tick for every watcher. It never blocks: a watcher
// whose queue is full misses the frame.
func (h *Hub) Broadcast(snap game.Snapshot, cues []game.Cue) {
	data, err := json.Marshal(net.NewSnapMessage(snap, cues))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to marshal snapshot")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	h.last = data
	for _, c := range h.connections {
		c.queue(data)
	}
}

// Last returns the most recent encoded SnapMessage, or nil before the first tick.
func (h *Hub) Last() []byte {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.last
}

func (h *Hub) Count() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.connections)
}

// Close disconnects every watcher.
func (h *Hub) Close() {
	h.mu.Lock()
	conns := make([]*Connection, 0, len(h.connections))
	for _, c := range h.connections {
		conns = append(conns, c)
	}
	h.mu.Unlock()

	for _, c := range conns {
		c.conn.Close()
	}
}
