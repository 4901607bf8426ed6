package net

import "pingpong/internal/game"

// Message types carried in the "type" field.
const (
	TypeHello   = "hello"
	TypeWelcome = "welcome"
	TypeSnap    = "snap"
)

// Watcher → Host messages

type HelloMessage struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Version int    `json:"version"`
}

// Host → Watcher messages

type WelcomeMessage struct {
	Type      string `json:"type"`
	WatcherID int    `json:"watcherId"`
	Version   int    `json:"version"`
}

// SnapMessage carries one tick of the host's game plus the sound cues that
// tick produced, so watchers can play them too.
type SnapMessage struct {
	Type     string        `json:"type"`
	Snapshot game.Snapshot `json:"snapshot"`
	Cues     []game.Cue    `json:"cues,omitempty"`
}

// ProtocolVersion is bumped whenever SnapMessage changes shape.
const ProtocolVersion = 1

func NewSnapMessage(snap game.Snapshot, cues []game.Cue) SnapMessage {
	return SnapMessage{Type: TypeSnap, Snapshot: snap, Cues: cues}
}
