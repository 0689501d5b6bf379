package app

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"

	"gdx/internal/course"
	"gdx/internal/devtools"
)

// Config controls runtime behavior for the TUI app.
type Config struct {
	Dev          bool   `env:"GDX_DEV"`
	DevHTTP      string `env:"GDX_DEV_HTTP"`
	LogPath      string `env:"GDX_LOG"`
	DebugLayout  bool   `env:"GDX_DEBUG_LAYOUT"`
	ASCIIOnly    bool   `env:"GDX_ASCII"`
	DataDir      string `env:"GDX_DATA_DIR"`
	NoStore      bool   `env:"GDX_NO_STORE"`
	DemoScenario string `env:"GDX_DEMO"`
	FixturePath  string `env:"GDX_FIXTURE"`
	// Seed 0 draws fresh readings on every start.
	Seed         uint64   `env:"GDX_SEED"`
	ReplyDelayMS int      `env:"GDX_REPLY_DELAY_MS"`
	PrintDir     string   `env:"GDX_PRINT_DIR"`
	UI           UIConfig `envPrefix:"GDX_UI_"`
}

// UIConfig values left empty fall back to the stored preference, then to
// the first entry of ui.StyleVariants, ui.MotionLevels or ui.MouseScopes.
type UIConfig struct {
	StyleVariant string `env:"STYLE_VARIANT"`
	MotionLevel  string `env:"MOTION_LEVEL"`
	MouseScope   string `env:"MOUSE_SCOPE"`
}

func DefaultConfig() Config {
	return Config{
		DevHTTP:      "127.0.0.1:17322",
		Seed:         course.DefaultSeed,
		ReplyDelayMS: 800,
	}
}

// StatePath is the preference database inside DataDir.
func (c Config) StatePath() string {
	return filepath.Join(c.DataDir, "state.db")
}

// LoadEnv overlays GDX_* environment variables onto c.
func LoadEnv(c *Config) error {
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("read environment: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.ReplyDelayMS < 0 {
		return fmt.Errorf("invalid reply delay %dms", c.ReplyDelayMS)
	}
	if c.DemoScenario != "" && !devtools.NewManager().Known(c.DemoScenario) {
		return fmt.Errorf("unknown demo scenario %q", c.DemoScenario)
	}
	switch c.UI.StyleVariant {
	case "", "modern_arcade", "cozy_clean", "retro_terminal":
	default:
		return fmt.Errorf("invalid ui style variant %q", c.UI.StyleVariant)
	}
	switch c.UI.MotionLevel {
	case "", "off", "reduced", "full":
	default:
		return fmt.Errorf("invalid ui motion level %q", c.UI.MotionLevel)
	}
	switch c.UI.MouseScope {
	case "", "off", "scoped", "full":
	default:
		return fmt.Errorf("invalid ui mouse scope %q", c.UI.MouseScope)
	}

	if c.DataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return errors.New("cannot resolve user home directory")
		}
		c.DataDir = filepath.Join(home, ".local", "share", "gdx")
	}
	if c.PrintDir == "" {
		c.PrintDir = filepath.Join(c.DataDir, "prints")
	}
	return nil
}
