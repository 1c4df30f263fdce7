package scene

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeManifest(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scene.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadManifest_ValidYAML_LoadsCorrectly(t *testing.T) {
	path := writeManifest(t, `
version: "1"
world: obstacle_run
placements:
  - model: bridge
    pose: [4, 0, 0, 0, 0, 0]
  - model: big_box
    name: crate
    pose: [9, 1.5, 0.4, 0, 0, 0.3]
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.World != "obstacle_run" {
		t.Errorf("world = %q, want obstacle_run", m.World)
	}
	if len(m.Placements) != 2 {
		t.Fatalf("placements = %d, want 2", len(m.Placements))
	}
	if m.Placements[1].Name != "crate" {
		t.Errorf("placement name = %q, want crate", m.Placements[1].Name)
	}
	if got := m.Placements[0].Pose[0]; got != 4 {
		t.Errorf("bridge x = %f, want 4", got)
	}
}

func TestLoadManifest_Defaults_Applied(t *testing.T) {
	path := writeManifest(t, `
placements:
  - model: bridge
`)
	m, err := LoadManifest(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if m.Version != "1" {
		t.Errorf("version = %q, want 1", m.Version)
	}
	if m.World != "course" {
		t.Errorf("world = %q, want course", m.World)
	}
}

func TestLoadManifest_UnknownKey_ReturnsError(t *testing.T) {
	path := writeManifest(t, `
world: course
placments:
  - model: bridge
`)
	if _, err := LoadManifest(path); err == nil {
		t.Fatal("expected error for unknown key, got nil")
	}
}

func TestLoadManifest_MissingFile_ReturnsError(t *testing.T) {
	if _, err := LoadManifest(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatal("expected error for missing file, got nil")
	}
}

func TestManifest_Validate_EmptyPlacements_ReturnsError(t *testing.T) {
	m := &Manifest{Version: "1", World: "course"}
	if err := m.Validate(); err == nil {
		t.Fatal("expected error for empty placements")
	}
}

func TestManifest_Validate_UnknownModel_ReturnsError(t *testing.T) {
	m := &Manifest{
		Version:    "1",
		World:      "course",
		Placements: []Placement{{Model: "teapot"}},
	}
	err := m.Validate()
	if err == nil {
		t.Fatal("expected error for unknown model")
	}
	if !strings.Contains(err.Error(), "teapot") {
		t.Errorf("error should mention the unknown model: %v", err)
	}
	if !strings.Contains(err.Error(), "bridge") {
		t.Errorf("error should list valid models: %v", err)
	}
}

func TestManifest_Validate_BadPoseLength_ReturnsError(t *testing.T) {
	m := &Manifest{
		Version:    "1",
		World:      "course",
		Placements: []Placement{{Model: "bridge", Pose: []float64{1, 2, 3}}},
	}
	if err := m.Validate(); err == nil {
		t.Fatal("expected error for 3-component pose")
	}
}

func TestManifest_Validate_NaNPose_ReturnsError(t *testing.T) {
	m := &Manifest{
		Version:    "1",
		World:      "course",
		Placements: []Placement{{Model: "bridge", Pose: []float64{math.NaN(), 0, 0, 0, 0, 0}}},
	}
	if err := m.Validate(); err == nil {
		t.Fatal("expected error for NaN pose component")
	}
}

func TestManifest_Validate_DuplicateInstanceNames_ReturnsError(t *testing.T) {
	m := &Manifest{
		Version: "1",
		World:   "course",
		Placements: []Placement{
			{Model: "big_box"},
			{Model: "big_box"},
		},
	}
	err := m.Validate()
	if err == nil {
		t.Fatal("expected error for two unnamed placements of the same model")
	}
	if !strings.Contains(err.Error(), "duplicate") {
		t.Errorf("error should mention duplication: %v", err)
	}
}

func TestManifest_Validate_DistinctNames_NoError(t *testing.T) {
	m := &Manifest{
		Version: "1",
		World:   "course",
		Placements: []Placement{
			{Model: "big_box", Name: "box_a"},
			{Model: "big_box", Name: "box_b"},
		},
	}
	if err := m.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestManifest_Compose_BuildsValidWorld(t *testing.T) {
	staticOverride := true
	m := &Manifest{
		Version: "1",
		World:   "test_world",
		Placements: []Placement{
			{Model: "bridge", Pose: []float64{4, 0, 0, 0, 0, 0}},
			{Model: "big_box", Name: "crate", Pose: []float64{9, 1.5, 0.4, 0, 0, 0.3}, Static: &staticOverride},
		},
	}
	root, err := m.Compose()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if root.World == nil || root.World.Name != "test_world" {
		t.Fatalf("world name mismatch: %+v", root.World)
	}
	// sun + ground + two placements
	if len(root.World.Includes) != 4 {
		t.Fatalf("includes = %d, want 4", len(root.World.Includes))
	}
	if root.World.Includes[0].URI != "model://sun" {
		t.Errorf("first include = %q, want model://sun", root.World.Includes[0].URI)
	}
	crate := root.World.Includes[3]
	if crate.Name != "crate" || crate.URI != "model://big_box" {
		t.Errorf("crate include mismatch: %+v", crate)
	}
	if crate.Static == nil || !*crate.Static {
		t.Error("crate static override lost")
	}
	if crate.Pose == nil || crate.Pose.Yaw != 0.3 {
		t.Errorf("crate pose mismatch: %+v", crate.Pose)
	}
}

func TestManifest_Compose_GroundAndSunDisabled(t *testing.T) {
	off := false
	m := &Manifest{
		Version:    "1",
		World:      "bare",
		Ground:     &off,
		Sun:        &off,
		Placements: []Placement{{Model: "line_track"}},
	}
	root, err := m.Compose()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(root.World.Includes) != 1 {
		t.Fatalf("includes = %d, want 1", len(root.World.Includes))
	}
	if root.World.Includes[0].URI != "model://line_track" {
		t.Errorf("include = %q, want model://line_track", root.World.Includes[0].URI)
	}
}

func TestManifest_Compose_InvalidManifest_ReturnsError(t *testing.T) {
	m := &Manifest{Version: "7", World: "w", Placements: []Placement{{Model: "bridge"}}}
	if _, err := m.Compose(); err == nil {
		t.Fatal("expected error for bad version")
	}
}
