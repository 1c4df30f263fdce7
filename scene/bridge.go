package scene

import "github.com/line-follower-sim/line-follower-sim/sdf"

// Bridge dimensions in meters. The deck surface sits at deckHeight; the
// ramps rise over rampRun horizontally, giving the rampPitch grade.
const (
	deckLength = 10.0
	deckWidth  = 4.0
	deckThick  = 0.1
	deckHeight = 1.0

	rampLength = 3.0
	rampPitch  = 0.34 // asin(deckHeight / rampLength), rounded
	rampCenter = 6.42 // deckLength/2 + half the ramp's horizontal span

	railHeight = 0.4
	railThick  = 0.1
)

// Bridge returns the static bridge model: one rigid link carrying the deck,
// two approach ramps, and two side rails as box collisions; the rendered
// skin is an external mesh plus box visuals for the rails.
func Bridge() *sdf.Model {
	link := sdf.Link{
		Name: "link",
		Collisions: []sdf.Collision{
			{
				Name:     "deck_collision",
				Pose:     sdf.Translation(0, 0, deckHeight-deckThick/2),
				Geometry: sdf.BoxGeometry(deckLength, deckWidth, deckThick),
			},
			{
				Name:     "ramp_east_collision",
				Pose:     sdf.NewPose(rampCenter, 0, deckHeight/2, 0, rampPitch, 0),
				Geometry: sdf.BoxGeometry(rampLength, deckWidth, deckThick),
			},
			{
				Name:     "ramp_west_collision",
				Pose:     sdf.NewPose(-rampCenter, 0, deckHeight/2, 0, -rampPitch, 0),
				Geometry: sdf.BoxGeometry(rampLength, deckWidth, deckThick),
			},
			{
				Name:     "rail_north_collision",
				Pose:     sdf.Translation(0, deckWidth/2-railThick/2, deckHeight+railHeight/2),
				Geometry: sdf.BoxGeometry(deckLength, railThick, railHeight),
			},
			{
				Name:     "rail_south_collision",
				Pose:     sdf.Translation(0, -(deckWidth/2 - railThick/2), deckHeight+railHeight/2),
				Geometry: sdf.BoxGeometry(deckLength, railThick, railHeight),
			},
		},
		Visuals: []sdf.Visual{
			{
				Name:     "visual",
				Geometry: sdf.MeshGeometry("model://bridge/meshes/bridge.dae"),
				Material: sdf.ScriptMaterial(materialScriptURI, "Gazebo/Grey"),
			},
			{
				Name:     "rail_north_visual",
				Pose:     sdf.Translation(0, deckWidth/2-railThick/2, deckHeight+railHeight/2),
				Geometry: sdf.BoxGeometry(deckLength, railThick, railHeight),
				Material: sdf.ScriptMaterial(materialScriptURI, "Gazebo/Grey"),
			},
			{
				Name:     "rail_south_visual",
				Pose:     sdf.Translation(0, -(deckWidth/2 - railThick/2), deckHeight+railHeight/2),
				Geometry: sdf.BoxGeometry(deckLength, railThick, railHeight),
				Material: sdf.ScriptMaterial(materialScriptURI, "Gazebo/Grey"),
			},
		},
	}
	return &sdf.Model{
		Name:   "Bridge",
		Static: true,
		Links:  []sdf.Link{link},
	}
}
