package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var cfg BreakoutConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded defaults do not parse: %v", err)
	}
	if cfg != DefaultBreakoutConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultBreakoutConfig())
	}
}

func TestDefaultsAreValid(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate() on defaults failed: %v", err)
	}
	if cfg.PaddleY() != 570 {
		t.Errorf("PaddleY() = %v, expected 570", cfg.PaddleY())
	}
	if cfg.MaxScore() != 450 {
		t.Errorf("MaxScore() = %d, expected 450", cfg.MaxScore())
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BreakoutConfig)
		want   string
	}{
		{"zero paddle width", func(c *BreakoutConfig) { c.Paddle.Width = 0 }, "paddle.width"},
		{"negative paddle width", func(c *BreakoutConfig) { c.Paddle.Width = -5 }, "paddle.width"},
		{"paddle wider than field", func(c *BreakoutConfig) { c.Paddle.Width = 900 }, "exceeds field.width"},
		{"no rows", func(c *BreakoutConfig) { c.Bricks.Rows = 0 }, "bricks.rows"},
		{"negative cols", func(c *BreakoutConfig) { c.Bricks.Cols = -1 }, "bricks.cols"},
		{"grid too wide", func(c *BreakoutConfig) { c.Bricks.Cols = 20 }, "brick grid right edge"},
		{"grid reaches paddle", func(c *BreakoutConfig) { c.Bricks.Rows = 40 }, "above the paddle"},
		{"grid touches top wall", func(c *BreakoutConfig) { c.Bricks.OffsetY = 10 }, "below the top wall"},
		{"no lives", func(c *BreakoutConfig) { c.Gameplay.Lives = 0 }, "gameplay.lives"},
		{"zero radius", func(c *BreakoutConfig) { c.Ball.Radius = 0 }, "ball.radius"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if err == nil {
				t.Fatal("Validate() should fail")
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("error should wrap ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Errorf("error %q should mention %q", err, tc.want)
			}
		})
	}
}

func TestLoadCustomYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := "gameplay:\n  lives: 7\nbricks:\n  rows: 2\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Gameplay.Lives != 7 || cfg.Bricks.Rows != 2 {
		t.Errorf("overrides not applied: lives=%d rows=%d", cfg.Gameplay.Lives, cfg.Bricks.Rows)
	}
	// Fields the file does not name keep their defaults.
	if cfg.Bricks.Cols != 9 || cfg.Paddle.Width != 100 {
		t.Errorf("defaults lost: cols=%d paddle=%v", cfg.Bricks.Cols, cfg.Paddle.Width)
	}
}

func TestLoadCustomTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	data := "[paddle]\nwidth = 120.0\n\n[gameplay]\nbrick_reward = 25\n"
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if cfg.Paddle.Width != 120 || cfg.Gameplay.BrickReward != 25 {
		t.Errorf("TOML overrides not applied: %+v", cfg)
	}
	if cfg.Field.Width != 800 {
		t.Errorf("defaults lost: field.width=%v", cfg.Field.Width)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil {
		t.Fatal("Load() of a missing custom path should fail")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error should wrap os.ErrNotExist, got %v", err)
	}
}

func TestLoadMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("field: [oops"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("Load() of malformed YAML should fail")
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	cfg := DefaultBreakoutConfig()
	ApplyPreset(&cfg, DifficultyHard)

	data, err := Encode(cfg)
	if err != nil {
		t.Fatalf("Encode() failed: %v", err)
	}
	got, err := Decode(data)
	if err != nil {
		t.Fatalf("Decode() failed: %v", err)
	}
	if got != cfg {
		t.Errorf("round trip = %+v, expected %+v", got, cfg)
	}
}

func TestPresets(t *testing.T) {
	tests := []struct {
		preset DifficultyPreset
		lives  int
		paddle float64
	}{
		{DifficultyEasy, 5, 130},
		{DifficultyNormal, 3, 100},
		{DifficultyHard, 2, 80},
		{"", 3, 100},
	}

	for _, tc := range tests {
		t.Run(string(tc.preset), func(t *testing.T) {
			cfg := DefaultBreakoutConfig()
			ApplyPreset(&cfg, tc.preset)
			if cfg.Gameplay.Lives != tc.lives || cfg.Paddle.Width != tc.paddle {
				t.Errorf("lives=%d paddle=%v, expected %d/%v", cfg.Gameplay.Lives, cfg.Paddle.Width, tc.lives, tc.paddle)
			}
			if err := cfg.Validate(); err != nil {
				t.Errorf("preset config should validate: %v", err)
			}
		})
	}
}

func TestParsePreset(t *testing.T) {
	if _, err := ParsePreset("hard"); err != nil {
		t.Errorf("ParsePreset(hard) failed: %v", err)
	}
	if _, err := ParsePreset("insane"); err == nil {
		t.Error("ParsePreset(insane) should fail")
	}
}
