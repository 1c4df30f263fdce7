package scene

import "github.com/line-follower-sim/line-follower-sim/sdf"

// Placement of the catalog models inside the demo course. The bridge sits
// astride the eastern straight so the line passes under its deck; the box
// waits off the line as an obstacle the follower must report, not hit.
var (
	bridgePose = sdf.Translation(4, 0, 0)
	bigBoxPose = sdf.NewPose(9, 1.5, bigBoxEdge/2, 0, 0, 0.3)
)

// Course returns the default demo world: lit ground plane, the painted
// line track, the bridge, and the big box. Every model is pulled in by
// reference so the world file stays a thin manifest over the database.
func Course() *sdf.Root {
	world := &sdf.World{
		Name: "course",
		Includes: []sdf.Include{
			{URI: "model://sun"},
			{URI: "model://ground_plane"},
			{URI: "model://line_track", Name: "line_track"},
			{URI: "model://bridge", Name: "bridge", Pose: bridgePose},
			{URI: "model://big_box", Name: "big_box", Pose: bigBoxPose},
		},
	}
	return sdf.NewWorldRoot(sdf.Version15, world)
}
