package config

import (
	_ "embed"
)

//go:embed defaults/breakout.yaml
var defaultBreakoutYAML []byte

// DefaultBreakoutConfig returns the built-in configuration.
// It matches defaults/breakout.yaml and is used if the embedded file fails to parse.
func DefaultBreakoutConfig() BreakoutConfig {
	return BreakoutConfig{
		Field: FieldConfig{
			Width:  800,
			Height: 600,
		},
		Paddle: PaddleConfig{
			Width:        100,
			Height:       15,
			BottomOffset: 30,
			Speed:        8,
		},
		Ball: BallConfig{
			Radius: 8,
			Speed:  4,
			Spin:   8,
		},
		Bricks: BricksConfig{
			Rows:    5,
			Cols:    9,
			Width:   75,
			Height:  25,
			Padding: 10,
			OffsetX: 35,
			OffsetY: 60,
		},
		Gameplay: GameplayConfig{
			Lives:       3,
			BrickReward: 10,
		},
		Input: InputConfig{
			KeyReleaseMS: 500,
		},
	}
}

// DefaultYAML returns the embedded default YAML.
func DefaultYAML() []byte {
	return defaultBreakoutYAML
}
