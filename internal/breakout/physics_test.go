package breakout

import (
	"testing"
)

func testPaddle() Paddle {
	return Paddle{X: 350, Y: 570, Width: 100, Height: 15, fieldW: 800}
}

func TestPaddleMoveByClamps(t *testing.T) {
	tests := []struct {
		name  string
		start float64
		dx    float64
		want  float64
	}{
		{"inside", 350, 8, 358},
		{"left wall", 4, -8, 0},
		{"right wall", 695, 8, 700},
		{"far left", 0, -1000, 0},
		{"far right", 700, 1000, 700},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := testPaddle()
			p.X = tc.start
			p.MoveBy(tc.dx)
			if p.X != tc.want {
				t.Errorf("MoveBy(%v) from %v = %v, expected %v", tc.dx, tc.start, p.X, tc.want)
			}
		})
	}
}

func TestPaddleMoveToClamps(t *testing.T) {
	p := testPaddle()

	p.MoveTo(-50)
	if p.X != 0 {
		t.Errorf("MoveTo(-50) = %v, expected 0", p.X)
	}
	p.MoveTo(790)
	if p.X != 700 {
		t.Errorf("MoveTo(790) = %v, expected 700", p.X)
	}
	p.MoveTo(123.5)
	if p.X != 123.5 {
		t.Errorf("MoveTo(123.5) = %v, expected 123.5", p.X)
	}
}

func TestBallReflect(t *testing.T) {
	b := Ball{X: 10, Y: 20, Radius: 8, DX: 4, DY: -4}

	b.Advance()
	if b.X != 14 || b.Y != 16 {
		t.Errorf("Advance: got (%v, %v), expected (14, 16)", b.X, b.Y)
	}

	b.ReflectVertical()
	if b.DY != 4 || b.DX != 4 {
		t.Errorf("ReflectVertical: got (%v, %v), expected (4, 4)", b.DX, b.DY)
	}

	b.ReflectHorizontal()
	if b.DX != -4 || b.DY != 4 {
		t.Errorf("ReflectHorizontal: got (%v, %v), expected (-4, 4)", b.DX, b.DY)
	}
}

func TestPaddleSpin(t *testing.T) {
	tests := []struct {
		name  string
		ballX float64
		want  float64
	}{
		{"left edge", 350, -4},
		{"quarter", 375, -2},
		{"center", 400, 0},
		{"right edge", 450, 4},
		{"past right edge", 470, 4},
		{"past left edge", 330, -4},
	}

	p := testPaddle()
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := PaddleSpin(Ball{X: tc.ballX}, p, 8)
			if got != tc.want {
				t.Errorf("PaddleSpin at x=%v = %v, expected %v", tc.ballX, got, tc.want)
			}
		})
	}
}

func TestPaddleSpinZeroWidth(t *testing.T) {
	if got := PaddleSpin(Ball{X: 10}, Paddle{}, 8); got != 0 {
		t.Errorf("PaddleSpin with zero width = %v, expected 0", got)
	}
}

func TestHitsPaddleIsLoose(t *testing.T) {
	p := testPaddle()

	tests := []struct {
		name string
		ball Ball
		want bool
	}{
		{"above", Ball{X: 400, Y: 550, Radius: 8}, false},
		{"touching top", Ball{X: 400, Y: 565, Radius: 8}, true},
		// Below the paddle's bottom edge still counts.
		{"below paddle", Ball{X: 400, Y: 595, Radius: 8}, true},
		{"on left edge", Ball{X: 350, Y: 565, Radius: 8}, false},
		{"on right edge", Ball{X: 450, Y: 565, Radius: 8}, false},
		{"outside span", Ball{X: 300, Y: 565, Radius: 8}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := hitsPaddle(tc.ball, p); got != tc.want {
				t.Errorf("hitsPaddle = %v, expected %v", got, tc.want)
			}
		})
	}
}

func TestSimpleRNG(t *testing.T) {
	a, b := NewSimpleRNG(0), NewSimpleRNG(1)
	if a.Next() != b.Next() {
		t.Error("seed 0 should behave like seed 1")
	}

	r := NewSimpleRNG(12345)
	var pos, neg int
	for range 1000 {
		f := r.Float64()
		if f < 0 || f >= 1 {
			t.Fatalf("Float64() = %v, out of [0, 1)", f)
		}
		if r.Sign() > 0 {
			pos++
		} else {
			neg++
		}
	}
	if pos < 400 || neg < 400 {
		t.Errorf("Sign() is badly skewed: %d positive, %d negative", pos, neg)
	}
}
