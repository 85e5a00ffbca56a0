package interaction

import (
	"math"
	"time"

	"gonum.org/v1/gonum/spatial/r3"
)

// minDistance floors the distance from the origin when framing a node.
const minDistance = 1e-6

// CameraDriver moves the view. Implementations animate; calls must not
// block for the duration of the animation.
type CameraDriver interface {
	MoveCamera(position, lookAt r3.Vec, d time.Duration)
	ZoomToFit(d time.Duration, padding float64)
}

var (
	// DefaultPose is where ResetCamera puts the camera.
	DefaultPose = r3.Vec{X: 0, Y: 0, Z: 400}
	origin      = r3.Vec{}
)

// FramePosition returns a camera position on the ray from the origin
// through pos, standoff units beyond it. A node at the origin, or one the
// layout has not placed yet, has no ray, so the camera backs off along +Z.
// Only nonzero distances are floored at minDistance; flooring and scaling
// the zero vector would leave the camera at the origin.
func FramePosition(pos r3.Vec, standoff float64) r3.Vec {
	h := r3.Norm(pos)
	if h == 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return r3.Vec{Z: standoff}
	}
	if h < minDistance {
		h = minDistance
	}
	return r3.Scale(1+standoff/h, pos)
}
