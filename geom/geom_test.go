package geom

import (
	"math"
	"math/rand"
	"testing"
)

const eps = 1e-9

func approx(a, b float64) bool {
	return math.Abs(a-b) < eps
}

func TestVecArithmetic(t *testing.T) {
	a := Vec2{X: 3, Y: 4}
	b := Vec2{X: -1, Y: 2}

	if got := a.Add(b); got != (Vec2{X: 2, Y: 6}) {
		t.Errorf("Add = %v, want {2 6}", got)
	}
	if got := a.Sub(b); got != (Vec2{X: 4, Y: 2}) {
		t.Errorf("Sub = %v, want {4 2}", got)
	}
	if got := a.Scale(0.5); got != (Vec2{X: 1.5, Y: 2}) {
		t.Errorf("Scale = %v, want {1.5 2}", got)
	}
	if got := a.Len(); !approx(got, 5) {
		t.Errorf("Len = %v, want 5", got)
	}
	if got := a.LenSq(); got != 25 {
		t.Errorf("LenSq = %v, want 25", got)
	}
	// operations never mutate the receiver
	if a != (Vec2{X: 3, Y: 4}) {
		t.Errorf("receiver mutated: %v", a)
	}
}

func TestNormalize(t *testing.T) {
	if got := Zero.Normalize(); got != Zero {
		t.Errorf("Normalize(zero) = %v, want zero", got)
	}

	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 200; i++ {
		v := Vec2{X: (rng.Float64() - 0.5) * 1000, Y: (rng.Float64() - 0.5) * 1000}
		if v.IsZero() {
			continue
		}
		n := v.Normalize()
		if !approx(n.Len(), 1) {
			t.Fatalf("|Normalize(%v)| = %v, want 1", v, n.Len())
		}
		nn := n.Normalize()
		if !approx(nn.X, n.X) || !approx(nn.Y, n.Y) {
			t.Fatalf("Normalize not idempotent: %v -> %v", n, nn)
		}
	}
}

func TestAngle(t *testing.T) {
	tests := []struct {
		name string
		v    Vec2
		want float64
	}{
		{"east", Vec2{X: 1}, 0},
		{"north", Vec2{Y: 1}, math.Pi / 2},
		{"south", Vec2{Y: -1}, -math.Pi / 2},
		{"west", Vec2{X: -1}, math.Pi},
		{"west negative zero", Vec2{X: -1, Y: math.Copysign(0, -1)}, math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.v.Angle(); !approx(got, tt.want) {
				t.Errorf("Angle(%v) = %v, want %v", tt.v, got, tt.want)
			}
		})
	}
}

func TestFromAngle(t *testing.T) {
	v := FromAngle(math.Pi/3, 2.5)
	if !approx(v.Len(), 2.5) {
		t.Errorf("length = %v, want 2.5", v.Len())
	}
	if !approx(v.Angle(), math.Pi/3) {
		t.Errorf("angle = %v, want pi/3", v.Angle())
	}
}

func TestShortestDisplacement(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	tests := []struct {
		name     string
		from, to Vec2
		want     Vec2
	}{
		{"direct", Vec2{X: 10, Y: 10}, Vec2{X: 20, Y: 15}, Vec2{X: 10, Y: 5}},
		{"wrap x forward", Vec2{X: 95, Y: 10}, Vec2{X: 5, Y: 10}, Vec2{X: 10, Y: 0}},
		{"wrap x backward", Vec2{X: 5, Y: 10}, Vec2{X: 95, Y: 10}, Vec2{X: -10, Y: 0}},
		{"wrap y only", Vec2{X: 50, Y: 2}, Vec2{X: 52, Y: 48}, Vec2{X: 2, Y: -4}},
		{"wrap both", Vec2{X: 1, Y: 1}, Vec2{X: 99, Y: 49}, Vec2{X: -2, Y: -2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.ShortestDisplacement(tt.from, tt.to)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("ShortestDisplacement(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestDistanceSqWraps(t *testing.T) {
	b := Bounds{Width: 100, Height: 100}
	got := b.DistanceSq(Vec2{X: 1, Y: 1}, Vec2{X: 99, Y: 99})
	if got != 8 {
		t.Errorf("DistanceSq = %v, want 8", got)
	}
}

func TestDistanceSqSymmetric(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := Bounds{Width: 640, Height: 480}
	for i := 0; i < 1000; i++ {
		p := Vec2{X: rng.Float64() * b.Width, Y: rng.Float64() * b.Height}
		q := Vec2{X: rng.Float64() * b.Width, Y: rng.Float64() * b.Height}
		if d1, d2 := b.DistanceSq(p, q), b.DistanceSq(q, p); d1 != d2 {
			t.Fatalf("DistanceSq(%v,%v)=%v but reverse=%v", p, q, d1, d2)
		}
		// never longer than half the span on either axis
		d := b.ShortestDisplacement(p, q)
		if math.Abs(d.X) > b.Width/2+eps || math.Abs(d.Y) > b.Height/2+eps {
			t.Fatalf("displacement %v exceeds half span", d)
		}
	}
}

func TestWrap(t *testing.T) {
	b := Bounds{Width: 100, Height: 50}
	tests := []struct {
		name string
		p    Vec2
		want Vec2
	}{
		{"inside", Vec2{X: 10, Y: 20}, Vec2{X: 10, Y: 20}},
		{"past right", Vec2{X: 101, Y: 20}, Vec2{X: 1, Y: 20}},
		{"negative", Vec2{X: -1, Y: -2}, Vec2{X: 99, Y: 48}},
		{"exact edge", Vec2{X: 100, Y: 50}, Vec2{X: 0, Y: 0}},
		{"many spans", Vec2{X: -250, Y: 175}, Vec2{X: 50, Y: 25}},
		{"tiny negative", Vec2{X: -1e-18, Y: 0}, Vec2{X: 0, Y: 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := b.Wrap(tt.p)
			if !approx(got.X, tt.want.X) || !approx(got.Y, tt.want.Y) {
				t.Errorf("Wrap(%v) = %v, want %v", tt.p, got, tt.want)
			}
			if !b.Contains(got) {
				t.Errorf("Wrap(%v) = %v outside bounds", tt.p, got)
			}
		})
	}
}

func TestDiffAngle(t *testing.T) {
	tests := []struct {
		a, b, want float64
	}{
		{0, 1, 1},
		{1, 0, 1},
		{3, -3, 2*math.Pi - 6},
		{-3, 3, 2*math.Pi - 6},
		{0, math.Pi, math.Pi},
		{0.5, 3.0, 2.5},
		{-0.5, 3.0, 2*math.Pi - 3.5},
	}
	for _, tt := range tests {
		if got := DiffAngle(tt.a, tt.b); !approx(got, tt.want) {
			t.Errorf("DiffAngle(%v, %v) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
