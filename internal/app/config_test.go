package app

import (
	"path/filepath"
	"strings"
	"testing"
)

func TestValidateDerivesPrintDir(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = t.TempDir()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
	if cfg.UI.MotionLevel != "" || cfg.UI.MouseScope != "" {
		t.Fatalf("unset ui settings must stay empty for the stored preference: %+v", cfg.UI)
	}
	if cfg.PrintDir != filepath.Join(cfg.DataDir, "prints") {
		t.Fatalf("unexpected print dir %q", cfg.PrintDir)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		edit func(*Config)
		want string
	}{
		{"delay", func(c *Config) { c.ReplyDelayMS = -1 }, "reply delay"},
		{"demo", func(c *Config) { c.DemoScenario = "hole19" }, "unknown demo"},
		{"style", func(c *Config) { c.UI.StyleVariant = "neon" }, "style variant"},
		{"motion", func(c *Config) { c.UI.MotionLevel = "fast" }, "motion level"},
		{"mouse", func(c *Config) { c.UI.MouseScope = "all" }, "mouse scope"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.DataDir = t.TempDir()
			tc.edit(&cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected %q error, got %v", tc.want, err)
			}
		})
	}
}

func TestLoadEnvOverlaysConfig(t *testing.T) {
	t.Setenv("GDX_SEED", "42")
	t.Setenv("GDX_NO_STORE", "true")
	t.Setenv("GDX_DEMO", "tasks")
	t.Setenv("GDX_UI_MOUSE_SCOPE", "full")

	cfg := DefaultConfig()
	if err := LoadEnv(&cfg); err != nil {
		t.Fatalf("load env: %v", err)
	}
	if cfg.Seed != 42 || !cfg.NoStore || cfg.DemoScenario != "tasks" || cfg.UI.MouseScope != "full" {
		t.Fatalf("env not applied: %+v", cfg)
	}
	if cfg.ReplyDelayMS != 800 || cfg.UI.MotionLevel != "" {
		t.Fatalf("defaults lost: %+v", cfg)
	}
}

func TestLoadEnvRejectsMalformedValues(t *testing.T) {
	t.Setenv("GDX_SEED", "many")
	cfg := DefaultConfig()
	if err := LoadEnv(&cfg); err == nil {
		t.Fatalf("expected parse error")
	}
}
