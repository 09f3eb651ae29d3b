package vector

import (
	"encoding/json"
	"math"
	"strconv"

	"github.com/bytearena/box2d"

	"github.com/LazyCat420/battle-bots/common/utils/number"
)

// Vector3 is an immutable 3-component vector. The arena ground plane is X/Y
// and Z points up; the 2D simulation profile keeps Z at zero throughout.
type Vector3 struct {
	x float64
	y float64
	z float64
}

func MakeVector3(x float64, y float64, z float64) Vector3 {
	return Vector3{x, y, z}
}

// Returns a null Vector3
func MakeNullVector3() Vector3 {
	return MakeVector3(0, 0, 0)
}

// Returns a unit vector lying in the ground plane, at the given angle in
// radians, counter-clockwise from +X (same convention as body angles).
func MakePlanarVector3(radians float64) Vector3 {
	return MakeVector3(
		math.Cos(radians),
		math.Sin(radians),
		0,
	)
}

func (v Vector3) Get() (float64, float64, float64) {
	return v.x, v.y, v.z
}

func (v Vector3) GetX() float64 {
	return v.x
}

func (v Vector3) GetY() float64 {
	return v.y
}

func (v Vector3) GetZ() float64 {
	return v.z
}

var floatformat = byte('f')

func (v Vector3) MarshalJSON() ([]byte, error) {
	b := []byte{'['}
	b = strconv.AppendFloat(b, v.x, floatformat, 4, 64)
	b = append(b, byte(','))
	b = strconv.AppendFloat(b, v.y, floatformat, 4, 64)
	b = append(b, byte(','))
	b = strconv.AppendFloat(b, v.z, floatformat, 4, 64)
	return append(b, byte(']')), nil
}

func (v Vector3) MarshalJSONString() string {
	json, _ := json.Marshal(v)
	return string(json)
}

func (a Vector3) Clone() Vector3 {
	return Vector3{
		x: a.x,
		y: a.y,
		z: a.z,
	}
}

func (a Vector3) Add(b Vector3) Vector3 {
	a.x += b.x
	a.y += b.y
	a.z += b.z
	return a
}

func (a Vector3) Sub(b Vector3) Vector3 {
	a.x -= b.x
	a.y -= b.y
	a.z -= b.z
	return a
}

func (a Vector3) Scale(scale float64) Vector3 {
	a.x *= scale
	a.y *= scale
	a.z *= scale
	return a
}

func (a Vector3) DivScalar(f float64) Vector3 {
	a.x /= f
	a.y /= f
	a.z /= f
	return a
}

func (a Vector3) Mag() float64 {
	return math.Sqrt(a.MagSq())
}

func (a Vector3) MagSq() float64 {
	return (a.x*a.x + a.y*a.y + a.z*a.z)
}

func (a Vector3) SetMag(mag float64) Vector3 {
	return a.Normalize().Scale(mag)
}

func (a Vector3) Normalize() Vector3 {
	mag := a.Mag()
	if mag > 0 {
		return a.DivScalar(mag)
	}
	return a
}

func (a Vector3) Limit(max float64) Vector3 {

	mSq := a.MagSq()

	if mSq > max*max {
		return a.Normalize().Scale(max)
	}

	return a
}

// Returns a copy projected onto the ground plane (Z zeroed).
func (a Vector3) Flatten() Vector3 {
	a.z = 0
	return a
}

// PlanarAngle is the angle of the ground-plane projection in radians,
// counter-clockwise from +X. Null projections yield 0.
func (a Vector3) PlanarAngle() float64 {
	if a.x == 0 && a.y == 0 {
		return 0
	}

	return math.Atan2(a.y, a.x)
}

func (a Vector3) OrthogonalClockwise() Vector3 {
	return MakeVector3(a.y, -a.x, 0)
}

func (a Vector3) OrthogonalCounterClockwise() Vector3 {
	return MakeVector3(-a.y, a.x, 0)
}

func (a Vector3) Dot(v Vector3) float64 {
	return a.x*v.x + a.y*v.y + a.z*v.z
}

func (a Vector3) IsNull() bool {
	return isZero(a.x) && isZero(a.y) && isZero(a.z)
}

func (a Vector3) Equals(b Vector3) bool {
	return b.Sub(a).IsNull()
}

func (a Vector3) String() string {
	return "<Vector3(" + number.FloatToStr(a.x, 5) + ", " + number.FloatToStr(a.y, 5) + ", " + number.FloatToStr(a.z, 5) + ")>"
}

func (a Vector3) ToFloatArray() [3]float64 {
	return [3]float64{a.x, a.y, a.z}
}

// ToB2Vec2 drops Z; only the box2d backend, which simulates the ground
// plane, consumes it.
func (a Vector3) ToB2Vec2() box2d.B2Vec2 {
	return box2d.MakeB2Vec2(a.x, a.y)
}

func FromB2Vec2(v box2d.B2Vec2) Vector3 {
	return MakeVector3(v.X, v.Y, 0)
}

var epsilon float64 = 0.000001

func isZero(f float64) bool {
	return math.Abs(f) < epsilon
}
