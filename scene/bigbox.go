package scene

import "github.com/line-follower-sim/line-follower-sim/sdf"

const (
	bigBoxEdge = 0.8
	bigBoxMass = 5.0
)

// BigBox returns the dynamic cube obstacle. It is the only catalog model the
// simulator integrates: mass and a solid-box inertia tensor, resting with
// its base on the ground plane.
func BigBox() *sdf.Model {
	size := sdf.V3(bigBoxEdge, bigBoxEdge, bigBoxEdge)
	link := sdf.Link{
		Name:     "link",
		Inertial: sdf.BoxInertial(bigBoxMass, size),
		Collisions: []sdf.Collision{
			{Name: "collision", Geometry: sdf.Geometry{Box: &sdf.Box{Size: size}}},
		},
		Visuals: []sdf.Visual{
			{
				Name:     "visual",
				Geometry: sdf.Geometry{Box: &sdf.Box{Size: size}},
				Material: &sdf.Material{
					Script:  &sdf.Script{URIs: []string{materialScriptURI}, Name: "Gazebo/Grey"},
					Ambient: sdf.Grey(0.5),
				},
			},
		},
	}
	return &sdf.Model{
		Name:  "Big box",
		Pose:  sdf.Translation(0, 0, bigBoxEdge/2),
		Links: []sdf.Link{link},
	}
}
