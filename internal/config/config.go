package config

import (
	"os"
	"strings"

	"github.com/JeremyLoy/config"
	"github.com/rotisserie/eris"

	"pingpong/internal/game"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = eris.New("invalid config")

// FileEnv names an optional KEY=value file read before the environment.
const FileEnv = "PINGPONG_CONFIG"

type Config struct {
	LogLevel string `config:"PINGPONG_LOG_LEVEL"`
	// LogFile receives logs instead of stderr. The terminal frontend
	// discards logs when it is empty.
	LogFile string `config:"PINGPONG_LOG_FILE"`
	BestOf  int    `config:"PINGPONG_BEST_OF"`
	// Seed feeds the serve randomness; 0 seeds from the clock.
	Seed int64 `config:"PINGPONG_SEED"`
	TPS  int   `config:"PINGPONG_TPS"`

	AudioEnabled bool    `config:"PINGPONG_AUDIO"`
	Volume       float64 `config:"PINGPONG_VOLUME"`
	AssetsDir    string  `config:"PINGPONG_ASSETS_DIR"`

	SpectateAddr  string `config:"PINGPONG_SPECTATE_ADDR"`
	SpectateToken string `config:"PINGPONG_SPECTATE_TOKEN"`
	WatchURL      string `config:"PINGPONG_WATCH_URL"`
}

func Default() Config {
	return Config{
		LogLevel:     "info",
		BestOf:       int(game.DefaultBestOf),
		TPS:          60,
		AudioEnabled: true,
		Volume:       0.5,
		AssetsDir:    "assets",
		WatchURL:     "ws://localhost:8080/ws",
	}
}

// Load starts from Default, applies the file named by PINGPONG_CONFIG if set,
// then the environment, and validates the result.
func Load() (Config, error) {
	cfg := Default()

	b := config.FromEnv()
	if path := os.Getenv(FileEnv); path != "" {
		if _, err := os.Stat(path); err != nil {
			return cfg, eris.Wrapf(err, "config file %s", path)
		}
		b = config.From(path).FromEnv()
	}
	if err := b.To(&cfg); err != nil {
		return cfg, eris.Wrap(err, "failed to load config")
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	if !game.BestOf(c.BestOf).Valid() {
		return eris.Wrapf(ErrInvalidConfig, "PINGPONG_BEST_OF must be 3, 5 or 7, got %d", c.BestOf)
	}
	if c.Volume < 0 || c.Volume > 1 {
		return eris.Wrapf(ErrInvalidConfig, "PINGPONG_VOLUME must be within [0, 1], got %v", c.Volume)
	}
	if c.TPS <= 0 {
		return eris.Wrapf(ErrInvalidConfig, "PINGPONG_TPS must be positive, got %d", c.TPS)
	}
	switch strings.ToLower(c.LogLevel) {
	case "trace", "debug", "info", "warn", "error", "disabled":
	default:
		return eris.Wrapf(ErrInvalidConfig, "unknown PINGPONG_LOG_LEVEL %q", c.LogLevel)
	}
	return nil
}

// MatchLength returns the validated first-match length.
func (c Config) MatchLength() game.BestOf {
	return game.BestOf(c.BestOf)
}
