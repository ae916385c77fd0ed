package math3d

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

func TestRotationMatchesArbitraryAxis(t *testing.T) {
	p := V3(1.5, -2, 0.25)
	for _, axis := range []Axis{AxisX, AxisY, AxisZ} {
		t.Run(axis.String(), func(t *testing.T) {
			got := Rotation(axis, 0.7, Zero3()).Apply(p)
			want := Rotate(axis.Unit(), 0.7).Apply(p)
			if !got.ApproxEqual(want, eps) {
				t.Errorf("Rotation(%v) = %v, want %v", axis, got, want)
			}
		})
	}
}

func TestRotationZQuarterTurn(t *testing.T) {
	got := Rotation(AxisZ, math.Pi/2, Zero3()).Apply(V3(1, 0, 0))
	if !got.ApproxEqual(V3(0, 1, 0), eps) {
		t.Errorf("x rotated a quarter turn about z = %v, want (0, 1, 0)", got)
	}
}

func TestRotationAboutPivotKeepsPivot(t *testing.T) {
	pivot := V3(3, -1, 2)
	m := Rotation(AxisY, 1.1, pivot)

	if got := m.Apply(pivot); !got.ApproxEqual(pivot, eps) {
		t.Errorf("pivot moved to %v", got)
	}

	// Distance to the pivot is preserved.
	p := V3(5, 0, -1)
	if d0, d1 := p.Distance(pivot), m.Apply(p).Distance(pivot); math.Abs(d0-d1) > eps {
		t.Errorf("distance to pivot changed: %v -> %v", d0, d1)
	}
}

func TestComposeAppliesInOrder(t *testing.T) {
	move := Translation(V3(1, 0, 0))
	turn := Rotation(AxisZ, math.Pi/2, Zero3())

	// Translate first, then rotate: (0,0,0) -> (1,0,0) -> (0,1,0).
	got := Compose(move, turn).Apply(Zero3())
	if !got.ApproxEqual(V3(0, 1, 0), eps) {
		t.Errorf("Compose(move, turn) = %v, want (0, 1, 0)", got)
	}

	// Rotate first, then translate: (0,0,0) -> (0,0,0) -> (1,0,0).
	got = Compose(turn, move).Apply(Zero3())
	if !got.ApproxEqual(V3(1, 0, 0), eps) {
		t.Errorf("Compose(turn, move) = %v, want (1, 0, 0)", got)
	}
}

func TestComposeEmptyIsIdentity(t *testing.T) {
	if Compose() != Identity() {
		t.Error("Compose() should be the identity")
	}
}

func TestApplyVectorIgnoresTranslation(t *testing.T) {
	m := Compose(Translation(V3(10, 20, 30)), Rotation(AxisZ, math.Pi, Zero3()))
	got := m.ApplyVector(V3(1, 0, 0))
	if !got.ApproxEqual(V3(-1, 0, 0), eps) {
		t.Errorf("ApplyVector = %v, want (-1, 0, 0)", got)
	}
}

func TestInvertRoundTrip(t *testing.T) {
	m := Compose(
		Translation(V3(-4, -4, -2)),
		Rotation(AxisZ, math.Pi/5, Zero3()),
		Rotation(AxisY, -math.Pi/8, Zero3()),
	)
	inv, err := m.Invert()
	if err != nil {
		t.Fatalf("Invert: %v", err)
	}

	points := []Vec3{
		Zero3(),
		V3(1, 2, 3),
		V3(-7.5, 0.25, 100),
		V3(1e3, -1e3, 0.5),
	}
	for _, p := range points {
		if got := inv.Apply(m.Apply(p)); !got.ApproxEqual(p, 1e-9*math.Max(1, p.Len())) {
			t.Errorf("point round trip %v -> %v", p, got)
		}
		if got := inv.ApplyVector(m.ApplyVector(p)); !got.ApproxEqual(p, 1e-9*math.Max(1, p.Len())) {
			t.Errorf("vector round trip %v -> %v", p, got)
		}
	}
}

func TestInvertSingular(t *testing.T) {
	var flat Mat4 // all zeros
	if _, err := flat.Invert(); !errors.Is(err, ErrNonInvertible) {
		t.Errorf("Invert(zero) error = %v, want ErrNonInvertible", err)
	}

	squash := Identity()
	squash[10] = 0 // collapse z
	if _, err := squash.Invert(); !errors.Is(err, ErrNonInvertible) {
		t.Errorf("Invert(squash) error = %v, want ErrNonInvertible", err)
	}
}

func TestCentroid(t *testing.T) {
	got := Centroid(V3(0, 0, 0), V3(3, 0, 0), V3(0, 3, 3))
	if !got.ApproxEqual(V3(1, 1, 1), eps) {
		t.Errorf("Centroid = %v, want (1, 1, 1)", got)
	}
}
