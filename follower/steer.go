package follower

import (
	"math"

	"github.com/line-follower-sim/line-follower-sim/vision"
)

// Vector3 is a plain 3D vector.
type Vector3 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
	Z float64 `json:"z"`
}

// Command is a velocity command in the geometry_msgs/Twist shape: linear in
// meters per second, angular in radians per second. Lost marks frames where
// no line was detected; a lost command is all zeros, meaning stop.
type Command struct {
	Linear  Vector3 `json:"linear"`
	Angular Vector3 `json:"angular"`
	Lost    bool    `json:"lost,omitempty"`
}

// Steering holds the proportional control gains.
type Steering struct {
	MaxSpeed float64 // forward speed on a centered line, m/s
	Gain     float64 // yaw rate per unit of normalized lateral error, rad/s
}

// DefaultSteering returns gains sized for a small indoor robot.
func DefaultSteering() Steering {
	return Steering{MaxSpeed: 0.4, Gain: 1.2}
}

// FrameErrors reduces one frame's segments to control errors. The lateral
// error is the mean segment midpoint against the image center, normalized
// to [-1, 1] (positive means the line sits right of center). The heading
// error is the mean deviation of segment directions from the travel axis
// (vertical in the camera frame), in radians. ok is false when there are no
// segments to measure.
func FrameErrors(segs []vision.Segment, width int) (lateral, heading float64, ok bool) {
	if len(segs) == 0 || width <= 0 {
		return 0, 0, false
	}
	var sumX, sumDev float64
	for _, s := range segs {
		mx, _ := s.Midpoint()
		sumX += mx
		dx, dy := float64(s.X2-s.X1), float64(s.Y2-s.Y1)
		if dy < 0 {
			dx, dy = -dx, -dy
		}
		sumDev += math.Atan2(dx, dy)
	}
	n := float64(len(segs))
	half := float64(width) / 2
	lateral = (sumX/n - half) / half
	if lateral > 1 {
		lateral = 1
	} else if lateral < -1 {
		lateral = -1
	}
	return lateral, sumDev / n, true
}

// Command turns a lateral error into a velocity command: forward speed
// shrinks as the error grows, and the yaw rate steers back toward the line.
// ok=false (no line) produces a stop command flagged Lost.
func (st Steering) Command(lateral float64, ok bool) Command {
	if !ok {
		return Command{Lost: true}
	}
	speed := st.MaxSpeed * (1 - math.Abs(lateral))
	if speed < 0 {
		speed = 0
	}
	return Command{
		Linear:  Vector3{X: speed},
		Angular: Vector3{Z: -st.Gain * lateral},
	}
}

// Steer is the single-frame convenience: errors, then command.
func (st Steering) Steer(segs []vision.Segment, width int) Command {
	lateral, _, ok := FrameErrors(segs, width)
	return st.Command(lateral, ok)
}
