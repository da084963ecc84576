// Package config provides YAML/TOML-based game configuration loading,
// validation and difficulty presets for the breakout game.
package config

import (
	"errors"
	"fmt"
)

// BreakoutConfig contains all configuration for the game.
type BreakoutConfig struct {
	Field    FieldConfig    `yaml:"field" toml:"field"`
	Paddle   PaddleConfig   `yaml:"paddle" toml:"paddle"`
	Ball     BallConfig     `yaml:"ball" toml:"ball"`
	Bricks   BricksConfig   `yaml:"bricks" toml:"bricks"`
	Gameplay GameplayConfig `yaml:"gameplay" toml:"gameplay"`
	Input    InputConfig    `yaml:"input" toml:"input"`
}

// FieldConfig defines the play area in field units.
type FieldConfig struct {
	Width  float64 `yaml:"width" toml:"width"`
	Height float64 `yaml:"height" toml:"height"`
}

// PaddleConfig defines the player's paddle.
type PaddleConfig struct {
	Width        float64 `yaml:"width" toml:"width"`
	Height       float64 `yaml:"height" toml:"height"`
	BottomOffset float64 `yaml:"bottom_offset" toml:"bottom_offset"`
	Speed        float64 `yaml:"speed" toml:"speed"`
}

// BallConfig defines the ball.
type BallConfig struct {
	Radius float64 `yaml:"radius" toml:"radius"`
	Speed  float64 `yaml:"speed" toml:"speed"`
	Spin   float64 `yaml:"spin" toml:"spin"`
}

// BricksConfig defines the brick grid layout.
type BricksConfig struct {
	Rows    int     `yaml:"rows" toml:"rows"`
	Cols    int     `yaml:"cols" toml:"cols"`
	Width   float64 `yaml:"width" toml:"width"`
	Height  float64 `yaml:"height" toml:"height"`
	Padding float64 `yaml:"padding" toml:"padding"`
	OffsetX float64 `yaml:"offset_x" toml:"offset_x"`
	OffsetY float64 `yaml:"offset_y" toml:"offset_y"`
}

// GameplayConfig defines scoring and lives.
type GameplayConfig struct {
	Lives       int `yaml:"lives" toml:"lives"`
	BrickReward int `yaml:"brick_reward" toml:"brick_reward"`
}

// InputConfig defines frontend input tuning.
type InputConfig struct {
	KeyReleaseMS int `yaml:"key_release_ms" toml:"key_release_ms"`
}

// PaddleY returns the fixed top edge of the paddle.
func (c BreakoutConfig) PaddleY() float64 {
	return c.Field.Height - c.Paddle.BottomOffset
}

// MaxScore returns the score reached when every brick is cleared.
func (c BreakoutConfig) MaxScore() int {
	return c.Bricks.Rows * c.Bricks.Cols * c.Gameplay.BrickReward
}

// ErrInvalidConfig is returned (wrapped) by Validate.
var ErrInvalidConfig = errors.New("invalid config")

// Validate checks the configuration for values the simulation cannot run with.
// All problems are reported together.
func (c BreakoutConfig) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	check(c.Field.Width > 0, "field.width must be positive, got %v", c.Field.Width)
	check(c.Field.Height > 0, "field.height must be positive, got %v", c.Field.Height)

	check(c.Paddle.Width > 0, "paddle.width must be positive, got %v", c.Paddle.Width)
	check(c.Paddle.Width <= c.Field.Width, "paddle.width %v exceeds field.width %v", c.Paddle.Width, c.Field.Width)
	check(c.Paddle.Height > 0, "paddle.height must be positive, got %v", c.Paddle.Height)
	check(c.Paddle.BottomOffset > 0 && c.Paddle.BottomOffset < c.Field.Height,
		"paddle.bottom_offset must be inside the field, got %v", c.Paddle.BottomOffset)
	check(c.Paddle.Speed >= 0, "paddle.speed must not be negative, got %v", c.Paddle.Speed)

	check(c.Ball.Radius > 0, "ball.radius must be positive, got %v", c.Ball.Radius)
	check(c.Ball.Speed > 0, "ball.speed must be positive, got %v", c.Ball.Speed)
	check(c.Ball.Spin >= 0, "ball.spin must not be negative, got %v", c.Ball.Spin)

	check(c.Bricks.Rows > 0, "bricks.rows must be positive, got %d", c.Bricks.Rows)
	check(c.Bricks.Cols > 0, "bricks.cols must be positive, got %d", c.Bricks.Cols)
	check(c.Bricks.Width > 0, "bricks.width must be positive, got %v", c.Bricks.Width)
	check(c.Bricks.Height > 0, "bricks.height must be positive, got %v", c.Bricks.Height)
	check(c.Bricks.Padding >= 0, "bricks.padding must not be negative, got %v", c.Bricks.Padding)
	check(c.Bricks.OffsetX >= 0 && c.Bricks.OffsetY >= 0,
		"bricks offsets must not be negative, got (%v, %v)", c.Bricks.OffsetX, c.Bricks.OffsetY)

	if c.Bricks.Cols > 0 && c.Bricks.Rows > 0 {
		gridW := float64(c.Bricks.Cols)*(c.Bricks.Width+c.Bricks.Padding) - c.Bricks.Padding
		gridH := float64(c.Bricks.Rows)*(c.Bricks.Height+c.Bricks.Padding) - c.Bricks.Padding
		check(c.Bricks.OffsetX+gridW <= c.Field.Width,
			"brick grid right edge %v exceeds field.width %v", c.Bricks.OffsetX+gridW, c.Field.Width)
		// A ball touching a brick can never touch the top wall or the paddle in the same tick.
		check(c.Bricks.OffsetY+gridH+2*c.Ball.Radius <= c.PaddleY(),
			"brick grid bottom edge %v leaves no room for the ball above the paddle at %v", c.Bricks.OffsetY+gridH, c.PaddleY())
		check(c.Bricks.OffsetY >= 2*c.Ball.Radius,
			"bricks.offset_y %v leaves no room for the ball below the top wall", c.Bricks.OffsetY)
	}

	check(c.Gameplay.Lives > 0, "gameplay.lives must be positive, got %d", c.Gameplay.Lives)
	check(c.Gameplay.BrickReward > 0, "gameplay.brick_reward must be positive, got %d", c.Gameplay.BrickReward)
	check(c.Input.KeyReleaseMS >= 0, "input.key_release_ms must not be negative, got %d", c.Input.KeyReleaseMS)

	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %w", ErrInvalidConfig, errors.Join(errs...))
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// ParsePreset converts a CLI value into a preset.
// The empty string means no preset.
func ParsePreset(s string) (DifficultyPreset, error) {
	switch DifficultyPreset(s) {
	case "", DifficultyEasy, DifficultyNormal, DifficultyHard:
		return DifficultyPreset(s), nil
	default:
		return "", fmt.Errorf("unknown difficulty %q (want easy, normal or hard)", s)
	}
}

// ApplyPreset modifies the config based on a difficulty preset.
// Presets are static: nothing changes during a round.
func ApplyPreset(cfg *BreakoutConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gameplay.Lives = 5
		cfg.Paddle.Width = 130
		cfg.Ball.Speed = 3
	case DifficultyHard:
		cfg.Gameplay.Lives = 2
		cfg.Paddle.Width = 80
		cfg.Ball.Speed = 5
	}
}
