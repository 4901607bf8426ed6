package client

import (
	"context"
	"math/rand"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pingpong/internal/game"
	"pingpong/internal/net"
	"pingpong/internal/server"
)

type fakeKeys struct {
	held map[ebiten.Key]bool
	just map[ebiten.Key]bool
}

func newFakeKeys() *fakeKeys {
	return &fakeKeys{held: map[ebiten.Key]bool{}, just: map[ebiten.Key]bool{}}
}

func (k *fakeKeys) IsKeyPressed(key ebiten.Key) bool     { return k.held[key] }
func (k *fakeKeys) IsKeyJustPressed(key ebiten.Key) bool { return k.just[key] }

type recordingPlayer struct {
	played []game.Cue
}

func (p *recordingPlayer) Play(cue game.Cue) { p.played = append(p.played, cue) }
func (p *recordingPlayer) Close()            {}

type recordingFeed struct {
	snaps []game.Snapshot
	cues  [][]game.Cue
}

func (f *recordingFeed) Broadcast(snap game.Snapshot, cues []game.Cue) {
	f.snaps = append(f.snaps, snap)
	f.cues = append(f.cues, cues)
}

// scriptedSim returns canned tick results.
type scriptedSim struct {
	results []game.TickResult
	inputs  []game.Input
	snap    game.Snapshot
}

func (s *scriptedSim) Tick(in game.Input) game.TickResult {
	s.inputs = append(s.inputs, in)
	res := s.results[0]
	if len(s.results) > 1 {
		s.results = s.results[1:]
	}
	s.snap.Tick++
	return res
}

func (s *scriptedSim) Snapshot() game.Snapshot { return s.snap }

func TestReadInput(t *testing.T) {
	tests := []struct {
		name string
		held []ebiten.Key
		just []ebiten.Key
		want game.Input
	}{
		{"nothing", nil, nil, game.Input{}},
		{"w moves up", []ebiten.Key{ebiten.KeyW}, nil, game.Input{Up: true}},
		{"arrow down", []ebiten.Key{ebiten.KeyArrowDown}, nil, game.Input{Down: true}},
		{"both", []ebiten.Key{ebiten.KeyW, ebiten.KeyS}, nil, game.Input{Up: true, Down: true}},
		{"digit 5", nil, []ebiten.Key{ebiten.KeyDigit5}, game.Input{Command: game.CommandRestartBestOf5}},
		{"numpad 7", nil, []ebiten.Key{ebiten.KeyNumpad7}, game.Input{Command: game.CommandRestartBestOf7}},
		{"escape", nil, []ebiten.Key{ebiten.KeyEscape}, game.Input{Command: game.CommandQuit}},
		{"restart wins over quit", nil, []ebiten.Key{ebiten.KeyEscape, ebiten.KeyDigit3}, game.Input{Command: game.CommandRestartBestOf3}},
		{"held digit is not a command", []ebiten.Key{ebiten.KeyDigit3}, nil, game.Input{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			keys := newFakeKeys()
			for _, k := range tt.held {
				keys.held[k] = true
			}
			for _, k := range tt.just {
				keys.just[k] = true
			}
			assert.Equal(t, tt.want, ReadInput(keys))
		})
	}
}

func TestGameUpdatePlaysCuesAndBroadcasts(t *testing.T) {
	sim := &scriptedSim{results: []game.TickResult{
		{Cues: []game.Cue{game.CueWallBounce, game.CuePaddleHit}},
		{},
	}}
	player := &recordingPlayer{}
	feed := &recordingFeed{}
	keys := newFakeKeys()
	keys.held[ebiten.KeyW] = true

	g := NewGame(sim, player, zerolog.Nop(), WithBroadcaster(feed), WithKeySource(keys))

	require.NoError(t, g.Update())
	require.NoError(t, g.Update())

	assert.Equal(t, []game.Cue{game.CueWallBounce, game.CuePaddleHit}, player.played)
	require.Len(t, feed.snaps, 2)
	assert.Equal(t, uint64(2), feed.snaps[1].Tick)
	assert.Equal(t, []game.Cue{game.CueWallBounce, game.CuePaddleHit}, feed.cues[0])
	assert.True(t, sim.inputs[0].Up)
}

func TestGameUpdateQuits(t *testing.T) {
	sim := &scriptedSim{results: []game.TickResult{{Quit: true}}}
	g := NewGame(sim, &recordingPlayer{}, zerolog.Nop(), WithKeySource(newFakeKeys()))

	assert.ErrorIs(t, g.Update(), ebiten.Termination)
}

func TestGameDrivesRealEngine(t *testing.T) {
	engine, err := game.NewEngine(game.WithRandomSource(rand.New(rand.NewSource(3))))
	require.NoError(t, err)
	keys := newFakeKeys()
	keys.held[ebiten.KeyS] = true
	g := NewGame(engine, &recordingPlayer{}, zerolog.Nop(), WithKeySource(keys))

	for i := 0; i < 100; i++ {
		require.NoError(t, g.Update())
	}

	assert.Equal(t, game.CourtHeight-game.PaddleHeight, g.snap.Human.Y)
	w, h := g.Layout(1920, 1080)
	assert.Equal(t, ScreenWidth, w)
	assert.Equal(t, ScreenHeight, h)
}

type fakeSource struct {
	queue []*net.SnapMessage
	done  chan struct{}
}

func (s *fakeSource) GetSnapshot() *net.SnapMessage {
	if len(s.queue) == 0 {
		return nil
	}
	m := s.queue[0]
	s.queue = s.queue[1:]
	return m
}

func (s *fakeSource) Done() <-chan struct{} { return s.done }

func TestWatcherDrainsFeed(t *testing.T) {
	src := &fakeSource{done: make(chan struct{})}
	player := &recordingPlayer{}
	w := NewWatcher(src, player, zerolog.Nop())
	w.keys = newFakeKeys()

	require.NoError(t, w.Update())
	assert.Nil(t, w.snap)

	first := net.NewSnapMessage(game.Snapshot{Tick: 1}, []game.Cue{game.CueScore})
	second := net.NewSnapMessage(game.Snapshot{Tick: 2}, []game.Cue{game.CueWallBounce})
	src.queue = append(src.queue, &first, &second)

	require.NoError(t, w.Update())
	require.NotNil(t, w.snap)
	assert.Equal(t, uint64(2), w.snap.Tick)
	assert.Equal(t, []game.Cue{game.CueScore, game.CueWallBounce}, player.played)

	close(src.done)
	assert.ErrorIs(t, w.Update(), ErrFeedClosed)
}

func TestWatcherEscapeLeaves(t *testing.T) {
	keys := newFakeKeys()
	keys.just[ebiten.KeyEscape] = true
	w := NewWatcher(&fakeSource{done: make(chan struct{})}, &recordingPlayer{}, zerolog.Nop())
	w.keys = keys

	assert.ErrorIs(t, w.Update(), ebiten.Termination)
}

func TestNetClientFollowsHub(t *testing.T) {
	hub := server.NewHub(zerolog.Nop())
	srv := httptest.NewServer(server.HandleWebSocket(hub, "tok"))
	defer srv.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	_, err := DialSpectator(url, "bad", zerolog.Nop())
	require.Error(t, err)

	nc, err := DialSpectator(url, "tok", zerolog.Nop())
	require.NoError(t, err)
	defer nc.Close()

	var welcome *net.WelcomeMessage
	require.Eventually(t, func() bool {
		welcome = nc.GetWelcome()
		return welcome != nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, 1, welcome.WatcherID)

	hub.Broadcast(game.Snapshot{Tick: 9, Phase: game.PhaseGameOver, Menu: game.MenuLines}, []game.Cue{game.CueScore})

	var snap *net.SnapMessage
	require.Eventually(t, func() bool {
		snap = nc.GetSnapshot()
		return snap != nil
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, uint64(9), snap.Snapshot.Tick)
	assert.Equal(t, game.MenuLines, snap.Snapshot.Menu)
	assert.Equal(t, []game.Cue{game.CueScore}, snap.Cues)
}

func TestNetClientDoneWhenHostLeaves(t *testing.T) {
	hub := server.NewHub(zerolog.Nop())
	srv := httptest.NewServer(server.HandleWebSocket(hub, ""))
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws"

	nc, err := DialSpectator(url, "", zerolog.Nop())
	require.NoError(t, err)
	defer nc.Close()
	require.Eventually(t, func() bool { return hub.Count() == 1 }, 2*time.Second, 5*time.Millisecond)

	hub.Close()
	srv.Close()

	select {
	case <-nc.Done():
	case <-time.After(2 * time.Second):
		t.Fatal("client did not notice the host leaving")
	}
}

func TestMenuLayout(t *testing.T) {
	c := game.DefaultCourt()

	assert.Equal(t, game.Point{X: 400, Y: 220}, menuLineCenter(c, 0))
	assert.Equal(t, game.Point{X: 400, Y: 380}, menuLineCenter(c, 4))

	player, ai := scorePositions(c)
	assert.Equal(t, game.Point{X: 200, Y: 20}, player)
	assert.Equal(t, game.Point{X: 600, Y: 20}, ai)

	w, _ := NewRenderer().textSize("GAME OVER!")
	assert.Equal(t, float64(10*7*textScale), w)
}

func TestUntilDoneStopsOnCancel(t *testing.T) {
	sim := &scriptedSim{results: []game.TickResult{{}}}
	ctx, cancel := context.WithCancel(context.Background())
	u := &untilDone{Game: NewGame(sim, &recordingPlayer{}, zerolog.Nop(), WithKeySource(newFakeKeys())), ctx: ctx}

	require.NoError(t, u.Update())
	cancel()
	assert.ErrorIs(t, u.Update(), ebiten.Termination)
	assert.Len(t, sim.inputs, 1)
}
