package main

import (
	"context"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"pingpong/internal/audio"
	"pingpong/internal/client"
	"pingpong/internal/config"
	"pingpong/internal/game"
	"pingpong/internal/logging"
	"pingpong/internal/server"
	"pingpong/internal/tui"
)

const (
	windowTitle     = "Ping Pong"
	shutdownTimeout = 5 * time.Second
)

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "pingpong",
		Short:         "Play ping pong against the computer",
		Long:          "Play ping pong against the computer. Settings come from PINGPONG_* environment variables.",
		Args:          cobra.NoArgs,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWindow(cmd.Context())
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "tui",
			Short: "Play in the terminal",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runTerminal(cmd.Context())
			},
		},
		&cobra.Command{
			Use:   "watch",
			Short: "Watch a match hosted with PINGPONG_SPECTATE_ADDR",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return runWatch(cmd.Context())
			},
		},
	)
	return root
}

// session holds what every subcommand sets up before it starts drawing.
type session struct {
	cfg     config.Config
	logger  zerolog.Logger
	player  audio.Player
	closers []func()
}

func newSession(terminal bool) (*session, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	s := &session{cfg: cfg}

	var out io.Writer = os.Stderr
	if terminal {
		out = io.Discard
	}
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, eris.Wrapf(err, "failed to open log file %s", cfg.LogFile)
		}
		out = f
		s.closers = append(s.closers, func() { f.Close() })
	}
	s.logger = logging.Setup(cfg.LogLevel, out)

	s.player = audio.NewPlayer(audio.Config{
		Enabled:   cfg.AudioEnabled,
		Volume:    cfg.Volume,
		AssetsDir: cfg.AssetsDir,
	}, s.logger)
	s.closers = append(s.closers, s.player.Close)
	return s, nil
}

// Close runs cleanups in reverse order.
func (s *session) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}

func (s *session) newEngine() (*game.Engine, error) {
	return game.NewEngine(
		game.WithRandomSource(game.NewRandomSource(s.cfg.Seed)),
		game.WithBestOf(s.cfg.MatchLength()),
		game.WithLogger(s.logger),
	)
}

// startFeed starts the spectator server when an address is configured. It
// returns a nil hub otherwise.
func (s *session) startFeed() (*server.Hub, error) {
	if s.cfg.SpectateAddr == "" {
		return nil, nil
	}
	hub := server.NewHub(s.logger)
	srv := server.NewServer(s.cfg.SpectateAddr, s.cfg.SpectateToken, hub, s.logger)
	if err := srv.Start(); err != nil {
		return nil, err
	}
	s.closers = append(s.closers, func() {
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("spectator server shutdown")
		}
	})
	return hub, nil
}

func runWindow(ctx context.Context) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	engine, err := s.newEngine()
	if err != nil {
		return err
	}
	hub, err := s.startFeed()
	if err != nil {
		return err
	}

	var opts []client.GameOption
	if hub != nil {
		opts = append(opts, client.WithBroadcaster(hub))
	}
	g := client.NewGame(engine, s.player, s.logger, opts...)
	if err := client.Run(ctx, g, windowTitle, s.cfg.TPS); err != nil {
		return eris.Wrap(err, "window closed with error")
	}
	return nil
}

func runTerminal(ctx context.Context) error {
	s, err := newSession(true)
	if err != nil {
		return err
	}
	defer s.Close()

	engine, err := s.newEngine()
	if err != nil {
		return err
	}
	hub, err := s.startFeed()
	if err != nil {
		return err
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return eris.Wrap(err, "failed to create terminal screen")
	}
	if err := screen.Init(); err != nil {
		return eris.Wrap(err, "failed to initialize terminal screen")
	}
	defer screen.Fini()

	opts := []tui.Option{tui.WithTPS(s.cfg.TPS)}
	if hub != nil {
		opts = append(opts, tui.WithBroadcaster(hub))
	}
	return tui.NewApp(screen, engine, s.player, s.logger, opts...).Run(ctx)
}

func runWatch(ctx context.Context) error {
	s, err := newSession(false)
	if err != nil {
		return err
	}
	defer s.Close()

	nc, err := client.DialSpectator(s.cfg.WatchURL, s.cfg.SpectateToken, s.logger)
	if err != nil {
		return err
	}
	defer nc.Close()
	s.logger.Info().Str("url", s.cfg.WatchURL).Msg("watching")

	w := client.NewWatcher(nc, s.player, s.logger)
	err = client.Run(ctx, w, windowTitle+" (watching)", s.cfg.TPS)
	if eris.Is(err, client.ErrFeedClosed) {
		s.logger.Info().Msg("host ended the match feed")
		return nil
	}
	return err
}
