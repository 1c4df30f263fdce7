package sdf

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Pose is a rigid transform as SDF writes it: translation in meters followed
// by fixed-axis roll, pitch, yaw in radians. The zero value is the identity.
type Pose struct {
	X, Y, Z          float64
	Roll, Pitch, Yaw float64
}

// NewPose returns the pose with the given translation and rotation.
func NewPose(x, y, z, roll, pitch, yaw float64) *Pose {
	return &Pose{X: x, Y: y, Z: z, Roll: roll, Pitch: pitch, Yaw: yaw}
}

// Translation returns a pose offset by x, y, z with no rotation.
func Translation(x, y, z float64) *Pose {
	return &Pose{X: x, Y: y, Z: z}
}

// IsIdentity reports whether the pose is the zero transform.
func (p Pose) IsIdentity() bool {
	return p == Pose{}
}

// IsFinite reports whether all six components are finite numbers.
func (p Pose) IsFinite() bool {
	return allFinite(p.X, p.Y, p.Z, p.Roll, p.Pitch, p.Yaw)
}

// MarshalText renders the pose as six space-separated numbers.
func (p Pose) MarshalText() ([]byte, error) {
	return formatTuple(p.X, p.Y, p.Z, p.Roll, p.Pitch, p.Yaw), nil
}

// UnmarshalText parses six whitespace-separated finite numbers. Empty text
// yields the identity pose.
func (p *Pose) UnmarshalText(text []byte) error {
	vals, err := parseTuple(string(text), 6, "pose")
	if err != nil {
		return err
	}
	if vals == nil {
		*p = Pose{}
		return nil
	}
	p.X, p.Y, p.Z = vals[0], vals[1], vals[2]
	p.Roll, p.Pitch, p.Yaw = vals[3], vals[4], vals[5]
	return nil
}

// Vec3 is a 3-component tuple used for box sizes and mesh scales.
type Vec3 struct {
	X, Y, Z float64
}

// V3 returns the vector (x, y, z).
func V3(x, y, z float64) Vec3 {
	return Vec3{X: x, Y: y, Z: z}
}

// IsFinite reports whether all components are finite numbers.
func (v Vec3) IsFinite() bool {
	return allFinite(v.X, v.Y, v.Z)
}

// Positive reports whether all components are strictly positive.
func (v Vec3) Positive() bool {
	return v.X > 0 && v.Y > 0 && v.Z > 0
}

// MarshalText renders the vector as three space-separated numbers.
func (v Vec3) MarshalText() ([]byte, error) {
	return formatTuple(v.X, v.Y, v.Z), nil
}

// UnmarshalText parses three whitespace-separated finite numbers.
func (v *Vec3) UnmarshalText(text []byte) error {
	vals, err := parseTuple(string(text), 3, "vector")
	if err != nil {
		return err
	}
	if vals == nil {
		return fmt.Errorf("vector: empty element")
	}
	v.X, v.Y, v.Z = vals[0], vals[1], vals[2]
	return nil
}

// Color is an RGBA tuple with components in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Grey returns the neutral color (v, v, v, 1).
func Grey(v float64) *Color {
	return &Color{R: v, G: v, B: v, A: 1}
}

// MarshalText renders the color as four space-separated numbers.
func (c Color) MarshalText() ([]byte, error) {
	return formatTuple(c.R, c.G, c.B, c.A), nil
}

// UnmarshalText parses four whitespace-separated finite numbers.
func (c *Color) UnmarshalText(text []byte) error {
	vals, err := parseTuple(string(text), 4, "color")
	if err != nil {
		return err
	}
	if vals == nil {
		return fmt.Errorf("color: empty element")
	}
	c.R, c.G, c.B, c.A = vals[0], vals[1], vals[2], vals[3]
	return nil
}

// parseTuple splits text on whitespace and parses exactly n finite floats.
// Returns (nil, nil) for empty text so callers can choose an empty-element
// default.
func parseTuple(text string, n int, what string) ([]float64, error) {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil, nil
	}
	if len(fields) != n {
		return nil, fmt.Errorf("%s: expected %d values, got %d in %q", what, n, len(fields), text)
	}
	vals := make([]float64, n)
	for i, f := range fields {
		v, err := strconv.ParseFloat(f, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: value %d: %w", what, i, err)
		}
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%s: value %d must be finite, got %q", what, i, f)
		}
		vals[i] = v
	}
	return vals, nil
}

// formatTuple renders values space-separated in shortest round-trip form.
// Negative zero normalizes to zero so encoded documents are stable.
func formatTuple(vals ...float64) []byte {
	var b strings.Builder
	for i, v := range vals {
		if i > 0 {
			b.WriteByte(' ')
		}
		if v == 0 {
			v = 0
		}
		b.WriteString(strconv.FormatFloat(v, 'g', -1, 64))
	}
	return []byte(b.String())
}

func allFinite(vals ...float64) bool {
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
