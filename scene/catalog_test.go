package scene

import (
	"strings"
	"testing"

	"github.com/line-follower-sim/line-follower-sim/internal/testutil"
	"github.com/line-follower-sim/line-follower-sim/sdf"
)

func TestCatalog_EveryEntry_BuildsValidDocument(t *testing.T) {
	for _, name := range Names() {
		entry, ok := Lookup(name)
		if !ok {
			t.Fatalf("Lookup(%q) = false for a name returned by Names()", name)
		}
		root := entry.Root()
		if err := root.Validate(); err != nil {
			t.Errorf("%s: built document invalid: %v", name, err)
		}
		if root.Model == nil || root.Model.Name != entry.Name {
			t.Errorf("%s: model name mismatch", name)
		}
	}
}

func TestLookup_ByModelName_FindsEntry(t *testing.T) {
	entry, ok := Lookup("Big box")
	if !ok {
		t.Fatal("Lookup(\"Big box\") = false, want true")
	}
	if entry.Dir != "big_box" {
		t.Errorf("Dir = %q, want %q", entry.Dir, "big_box")
	}
}

func TestLookup_UnknownName_ReturnsFalse(t *testing.T) {
	if _, ok := Lookup("teapot"); ok {
		t.Error("Lookup(\"teapot\") = true, want false")
	}
}

func TestNames_Sorted(t *testing.T) {
	names := Names()
	if len(names) != 3 {
		t.Fatalf("len(Names()) = %d, want 3", len(names))
	}
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Errorf("Names() not sorted: %v", names)
		}
	}
}

func TestBridge_Structure(t *testing.T) {
	m := Bridge()
	if !m.Static {
		t.Error("bridge must be static")
	}
	if len(m.Links) != 1 {
		t.Fatalf("links = %d, want 1", len(m.Links))
	}
	link := m.Links[0]
	if len(link.Collisions) != 5 {
		t.Errorf("collisions = %d, want 5 (deck, two ramps, two rails)", len(link.Collisions))
	}
	if len(link.Visuals) != 3 {
		t.Errorf("visuals = %d, want 3 (mesh skin, two rails)", len(link.Visuals))
	}
	if link.Inertial != nil {
		t.Error("static bridge must not carry an inertial")
	}
	mesh := link.Visuals[0].Geometry.Mesh
	if mesh == nil || !strings.HasPrefix(mesh.URI, "model://bridge/") {
		t.Errorf("first visual should reference the bridge mesh, got %+v", link.Visuals[0].Geometry)
	}
}

func TestBridge_RampsMirrorEachOther(t *testing.T) {
	m := Bridge()
	var east, west *sdf.Pose
	for i := range m.Links[0].Collisions {
		c := &m.Links[0].Collisions[i]
		switch c.Name {
		case "ramp_east_collision":
			east = c.Pose
		case "ramp_west_collision":
			west = c.Pose
		}
	}
	if east == nil || west == nil {
		t.Fatal("missing ramp collisions")
	}
	if east.X != -west.X || east.Pitch != -west.Pitch {
		t.Errorf("ramps not mirrored: east=%+v west=%+v", east, west)
	}
	if east.Z != west.Z {
		t.Errorf("ramp heights differ: %f vs %f", east.Z, west.Z)
	}
}

func TestBigBox_InertiaMatchesSolidCube(t *testing.T) {
	m := BigBox()
	if m.Static {
		t.Error("big box must be dynamic")
	}
	inertial := m.Links[0].Inertial
	if inertial == nil {
		t.Fatal("big box link must carry an inertial")
	}
	if inertial.Mass != 5.0 {
		t.Errorf("mass = %f, want 5.0", inertial.Mass)
	}
	// Solid cube: I = m * (a^2 + a^2) / 12 on every axis.
	want := 5.0 * (0.8*0.8 + 0.8*0.8) / 12.0
	in := inertial.Inertia
	for name, got := range map[string]float64{"ixx": in.Ixx, "iyy": in.Iyy, "izz": in.Izz} {
		testutil.AssertFloat64Equal(t, name, want, got, 1e-12)
	}
	if in.Ixy != 0 || in.Ixz != 0 || in.Iyz != 0 {
		t.Errorf("cube products of inertia must be zero, got %+v", in)
	}
}

func TestBigBox_RestsOnGround(t *testing.T) {
	m := BigBox()
	if m.Pose == nil {
		t.Fatal("big box must carry a pose")
	}
	if m.Pose.Z != 0.4 {
		t.Errorf("pose z = %f, want 0.4 (half the edge)", m.Pose.Z)
	}
}

func TestLineTrack_VisualOnly(t *testing.T) {
	m := LineTrack()
	if !m.Static {
		t.Error("line track must be static")
	}
	link := m.Links[0]
	if len(link.Collisions) != 0 {
		t.Errorf("line track must have no collisions, got %d", len(link.Collisions))
	}
	if len(link.Visuals) < 2 {
		t.Fatalf("line track needs at least 2 strips, got %d", len(link.Visuals))
	}
	for _, v := range link.Visuals {
		if v.Material == nil || v.Material.Script == nil || v.Material.Script.Name != "Gazebo/Black" {
			t.Errorf("strip %s: want Gazebo/Black script material, got %+v", v.Name, v.Material)
		}
		box := v.Geometry.Box
		if box == nil {
			t.Fatalf("strip %s: not a box", v.Name)
		}
		if box.Size.Y != lineWidth || box.Size.Z != lineThick {
			t.Errorf("strip %s: cross-section = %fx%f, want %fx%f", v.Name, box.Size.Y, box.Size.Z, lineWidth, lineThick)
		}
	}
}

func TestCourse_ComposesAllModels(t *testing.T) {
	root := Course()
	if err := root.Validate(); err != nil {
		t.Fatalf("course world invalid: %v", err)
	}
	if root.Version != "1.5" {
		t.Errorf("version = %q, want 1.5", root.Version)
	}
	uris := make(map[string]bool, len(root.World.Includes))
	for _, inc := range root.World.Includes {
		uris[inc.URI] = true
	}
	for _, want := range []string{"model://sun", "model://ground_plane", "model://line_track", "model://bridge", "model://big_box"} {
		if !uris[want] {
			t.Errorf("course missing include %s", want)
		}
	}
}
