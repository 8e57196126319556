package gamemath

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Epsilon is the tolerance used for near-zero vector and distance guards.
const Epsilon = 1e-6

// Up is the reference axis aligned to the surface normal when orienting
// entities on a sphere world.
var Up = mgl64.Vec3{0, 1, 0}

// SurfaceNormal returns the outward unit normal of the sphere at p.
// A near-zero p yields Up rather than a NaN normalization.
func SurfaceNormal(p mgl64.Vec3) mgl64.Vec3 {
	if p.Len() < Epsilon {
		return Up
	}
	return p.Normalize()
}

// SurfaceOrientation returns the rotation aligning Up to the surface normal
// at p.
func SurfaceOrientation(p mgl64.Vec3) mgl64.Quat {
	return mgl64.QuatBetweenVectors(Up, SurfaceNormal(p)).Normalize()
}

// PlaceAtHeight projects p onto the shell at the given height above the
// surface, preserving its bearing.
func PlaceAtHeight(p mgl64.Vec3, radius, height float64) mgl64.Vec3 {
	return SurfaceNormal(p).Mul(radius + height)
}

// HeightOf returns p's height above the surface shell.
func HeightOf(p mgl64.Vec3, radius float64) float64 {
	return p.Len() - radius
}

// ConstrainToSurface projects p onto the surface shell (height zero).
func ConstrainToSurface(p mgl64.Vec3, radius float64) mgl64.Vec3 {
	return SurfaceNormal(p).Mul(radius)
}

// GreatCircleAngle returns the central angle between the bearings of a and b,
// in radians. Robust for both nearly parallel and nearly antiparallel inputs.
func GreatCircleAngle(a, b mgl64.Vec3) float64 {
	an := SurfaceNormal(a)
	bn := SurfaceNormal(b)
	return math.Atan2(an.Cross(bn).Len(), an.Dot(bn))
}

// GreatCircleDistance returns the shortest surface path length between the
// bearings of a and b at the given radius.
func GreatCircleDistance(a, b mgl64.Vec3, radius float64) float64 {
	return GreatCircleAngle(a, b) * radius
}

// RotateAboutAxis rotates p about the unit axis by angle radians.
func RotateAboutAxis(p, axis mgl64.Vec3, angle float64) mgl64.Vec3 {
	return mgl64.QuatRotate(angle, axis).Rotate(p)
}

// SlerpBearing interpolates the bearing from a toward b by t in [0,1],
// preserving a's length. Degenerate axes (coincident or antipodal bearings)
// fall back to the endpoints instead of picking an arbitrary plane.
func SlerpBearing(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	axis := SurfaceNormal(a).Cross(SurfaceNormal(b))
	if axis.Len() < Epsilon {
		if t < 1 {
			return a
		}
		return SurfaceNormal(b).Mul(a.Len())
	}
	angle := GreatCircleAngle(a, b)
	return RotateAboutAxis(a, axis.Normalize(), angle*Clamp01(t))
}

// Lerp linearly interpolates from a to b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// LerpVec linearly interpolates from a to b by t, component-wise.
func LerpVec(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// Clamp01 clamps t to [0,1].
func Clamp01(t float64) float64 {
	if t < 0 {
		return 0
	}
	if t > 1 {
		return 1
	}
	return t
}

// ClampFloat clamps v to [lo, hi].
func ClampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
