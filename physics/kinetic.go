package physics

import (
	"github.com/lixenwraith/motionfield/vmath"
)

// Kinetic is a point body in viewport pixel space, velocity is in pixels per frame
type Kinetic struct {
	X, Y       float64
	VelX, VelY float64
}

// Integrate advances position by one frame of velocity: p = p + v
func Integrate(k *Kinetic) {
	k.X += k.VelX
	k.Y += k.VelY
}

// ApplyImpulse adds velocity delta (momentum transfer)
func ApplyImpulse(k *Kinetic, vx, vy float64) {
	k.VelX += vx
	k.VelY += vy
}

// Damp scales velocity by factor, factor < 1 bleeds speed every frame
func Damp(k *Kinetic, factor float64) {
	k.VelX *= factor
	k.VelY *= factor
}

// WrapBounds teleports the body to the opposite edge once it leaves the
// [-margin, extent+margin] box on either axis, returns true if any axis wrapped
// Velocity is preserved
func WrapBounds(k *Kinetic, margin, width, height float64) bool {
	x := vmath.Wrap(k.X, margin, width)
	y := vmath.Wrap(k.Y, margin, height)
	wrapped := x != k.X || y != k.Y
	k.X, k.Y = x, y
	return wrapped
}

// Speed returns the velocity magnitude
func Speed(k *Kinetic) float64 {
	return vmath.Magnitude(k.VelX, k.VelY)
}
