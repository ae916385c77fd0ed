package math3d

// Transform maps points and free vectors from one coordinate frame into
// another. Mat4 is the only implementation shipped here; the projector and
// the camera accept anything that satisfies it.
type Transform interface {
	// Apply maps a point, translation included.
	Apply(p Vec3) Vec3
	// ApplyVector maps a direction, ignoring translation.
	ApplyVector(v Vec3) Vec3
}

// Axis names one of the three coordinate axes.
type Axis int

const (
	AxisX Axis = iota
	AxisY
	AxisZ
)

// String returns the axis letter.
func (a Axis) String() string {
	switch a {
	case AxisX:
		return "x"
	case AxisY:
		return "y"
	case AxisZ:
		return "z"
	default:
		return "?"
	}
}

// Unit returns the unit vector along the axis.
func (a Axis) Unit() Vec3 {
	switch a {
	case AxisX:
		return V3(1, 0, 0)
	case AxisY:
		return V3(0, 1, 0)
	default:
		return V3(0, 0, 1)
	}
}

// Translation returns the map p -> p + v.
func Translation(v Vec3) Mat4 {
	return Translate(v)
}

// Rotation returns a rotation by angle (radians, right-handed) about the named
// axis passing through pivot.
func Rotation(axis Axis, angle float64, pivot Vec3) Mat4 {
	var r Mat4
	switch axis {
	case AxisX:
		r = RotateX(angle)
	case AxisY:
		r = RotateY(angle)
	default:
		r = RotateZ(angle)
	}
	if pivot == (Vec3{}) {
		return r
	}
	return Translate(pivot).Mul(r).Mul(Translate(pivot.Negate()))
}

// Compose folds an ordered list of maps into one. The first element is applied
// first: Compose(a, b).Apply(p) == b.Apply(a.Apply(p)).
func Compose(steps ...Mat4) Mat4 {
	m := Identity()
	for _, s := range steps {
		m = s.Mul(m)
	}
	return m
}

// Apply maps p as a point.
func (m Mat4) Apply(p Vec3) Vec3 {
	return m.MulVec3(p)
}

// ApplyVector maps v as a direction.
func (m Mat4) ApplyVector(v Vec3) Vec3 {
	return m.MulVec3Dir(v)
}
