package scene

import (
	"fmt"

	"github.com/line-follower-sim/line-follower-sim/sdf"
)

// Line strip geometry: a 5 cm wide painted band laid flat on the ground,
// thick enough to render above the plane without z-fighting.
const (
	lineWidth = 0.05
	lineThick = 0.001
	lineLift  = lineThick / 2
)

// trackSegments lays out the course as straight strips: a long western
// approach, a 45-degree dog-leg, and the eastern run under the bridge span.
var trackSegments = []struct {
	length    float64
	x, y, yaw float64
}{
	{length: 8, x: -10, y: 0, yaw: 0},
	{length: 3.4, x: -4.8, y: 1.2, yaw: 0.7853981633974483},
	{length: 3.4, x: -1.4, y: 1.2, yaw: -0.7853981633974483},
	{length: 14, x: 5, y: 0, yaw: 0},
}

// LineTrack returns the static, visual-only model carrying the painted
// course line. It has no collision geometry: the strips exist for the
// follower's camera, not for contact.
func LineTrack() *sdf.Model {
	link := sdf.Link{Name: "link"}
	for i, seg := range trackSegments {
		link.Visuals = append(link.Visuals, sdf.Visual{
			Name:     segmentName(i),
			Pose:     sdf.NewPose(seg.x, seg.y, lineLift, 0, 0, seg.yaw),
			Geometry: sdf.BoxGeometry(seg.length, lineWidth, lineThick),
			Material: sdf.ScriptMaterial(materialScriptURI, "Gazebo/Black"),
		})
	}
	return &sdf.Model{
		Name:   "Line track",
		Static: true,
		Links:  []sdf.Link{link},
	}
}

func segmentName(i int) string {
	return fmt.Sprintf("strip_%d_visual", i)
}
