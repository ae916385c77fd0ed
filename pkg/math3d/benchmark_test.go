package math3d

import (
	"testing"
)

func BenchmarkMat4Mul(b *testing.B) {
	m1 := Translate(V3(1, 2, 3))
	m2 := RotateY(0.5)

	for b.Loop() {
		_ = m1.Mul(m2)
	}
}

func BenchmarkMat4Apply(b *testing.B) {
	m := Translate(V3(1, 2, 3)).Mul(RotateZ(0.5))
	v := V3(1, 2, 3)

	for b.Loop() {
		_ = m.Apply(v)
	}
}

func BenchmarkMat4Invert(b *testing.B) {
	m := Compose(Translation(V3(-4, -4, -2)), RotateZ(0.6), RotateY(-0.4))

	for b.Loop() {
		_, _ = m.Invert()
	}
}

func BenchmarkCompose(b *testing.B) {
	pos := V3(4, 4, 2)

	for b.Loop() {
		_ = Compose(
			Translation(pos.Negate()),
			Rotation(AxisZ, 0.6, Zero3()),
			Rotation(AxisY, -0.4, Zero3()),
		)
	}
}

func BenchmarkVec3Distance(b *testing.B) {
	v1 := V3(1, 2, 3)
	v2 := V3(4, 5, 6)

	for b.Loop() {
		_ = v1.Distance(v2)
	}
}
