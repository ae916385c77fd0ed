package render

import (
	"math"

	"github.com/taigrr/trimap/pkg/math3d"
)

// Input is one frame's directional input snapshot.
type Input struct {
	TurnLeft  bool
	TurnRight bool
	LookUp    bool
	LookDown  bool
	Advance   bool
}

// Camera holds the viewer position and orientation.
// Angle turns about the vertical axis, Lower tilts the view downward.
// Neither is bounded or wrapped.
type Camera struct {
	Position math3d.Vec3
	Angle    float64
	Lower    float64

	// Cached world-to-camera transform and the state it was built from.
	transform math3d.Mat4
	builtPos  math3d.Vec3
	builtAng  float64
	builtLow  float64
	built     bool
}

// Default starting pose.
var (
	DefaultPosition = math3d.V3(4, 4, 2)
	DefaultAngle    = -math.Pi / 5
	DefaultLower    = math.Pi / 8
)

// Movement rates: radians per second per held key, and milliseconds per
// world unit of advance.
const (
	TurnRate      = math.Pi
	AdvancePeriod = 200.0
)

// NewCamera creates a camera at the default pose.
func NewCamera() *Camera {
	return &Camera{
		Position: DefaultPosition,
		Angle:    DefaultAngle,
		Lower:    DefaultLower,
	}
}

// SetPosition moves the camera.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
}

// SetRotation sets the turn and tilt angles in radians.
func (c *Camera) SetRotation(angle, lower float64) {
	c.Angle = angle
	c.Lower = lower
}

// Transform returns the world-to-camera map: translate by the negated
// position, rotate about Z by -Angle, then about Y by -Lower.
// In camera space X is depth, Y is screen-right and Z is screen-up.
func (c *Camera) Transform() math3d.Mat4 {
	if !c.built || c.builtPos != c.Position || c.builtAng != c.Angle || c.builtLow != c.Lower {
		c.transform = math3d.Compose(
			math3d.Translation(c.Position.Negate()),
			math3d.Rotation(math3d.AxisZ, -c.Angle, math3d.Zero3()),
			math3d.Rotation(math3d.AxisY, -c.Lower, math3d.Zero3()),
		)
		c.builtPos, c.builtAng, c.builtLow = c.Position, c.Angle, c.Lower
		c.built = true
	}
	return c.transform
}

// Facing returns the world direction the camera looks along.
func (c *Camera) Facing() (math3d.Vec3, error) {
	inv, err := c.Transform().Invert()
	if err != nil {
		return math3d.Vec3{}, err
	}
	return inv.ApplyVector(math3d.Forward()), nil
}

// Update advances the camera by one frame of input.
// If the transform cannot be inverted the advance step is skipped and the
// error returned; the orientation change still applies.
func (c *Camera) Update(deltaMillis float64, in Input) error {
	step := deltaMillis / 1000 * TurnRate
	c.Angle += (axis(in.TurnRight) - axis(in.TurnLeft)) * step
	c.Lower += (axis(in.LookUp) - axis(in.LookDown)) * step

	if !in.Advance {
		return nil
	}
	inv, err := c.Transform().Invert()
	if err != nil {
		return err
	}
	move := math3d.V3(deltaMillis/AdvancePeriod, 0, 0)
	c.Position = c.Position.Add(inv.ApplyVector(move))
	return nil
}

func axis(pressed bool) float64 {
	if pressed {
		return 1
	}
	return 0
}
