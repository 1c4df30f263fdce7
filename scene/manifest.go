package scene

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/line-follower-sim/line-follower-sim/sdf"
)

// Manifest is the top-level scene composition file.
// Loaded from YAML via LoadManifest(path).
type Manifest struct {
	Version    string      `yaml:"version"`
	World      string      `yaml:"world"`
	Ground     *bool       `yaml:"ground,omitempty"`
	Sun        *bool       `yaml:"sun,omitempty"`
	Placements []Placement `yaml:"placements"`
}

// Placement drops one catalog model into the world.
type Placement struct {
	Model  string    `yaml:"model"`
	Name   string    `yaml:"name,omitempty"`
	Pose   []float64 `yaml:"pose,omitempty"` // x y z roll pitch yaw
	Static *bool     `yaml:"static,omitempty"`
}

var validManifestVersions = map[string]bool{
	"": true, "1": true,
}

// LoadManifest reads and parses a YAML scene manifest file.
// Uses strict parsing: unrecognized keys (typos) are rejected.
func LoadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading scene manifest: %w", err)
	}
	var m Manifest
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&m); err != nil {
		return nil, fmt.Errorf("parsing scene manifest: %w", err)
	}
	if m.Version == "" {
		m.Version = "1"
	}
	if m.World == "" {
		m.World = "course"
	}
	return &m, nil
}

// Validate checks that all fields in the manifest are valid.
func (m *Manifest) Validate() error {
	if !validManifestVersions[m.Version] {
		return fmt.Errorf("unknown manifest version %q; valid: 1", m.Version)
	}
	if m.World == "" {
		return fmt.Errorf("world name must not be empty")
	}
	if len(m.Placements) == 0 {
		return fmt.Errorf("at least one placement required")
	}
	seen := make(map[string]bool, len(m.Placements))
	for i, p := range m.Placements {
		if err := validatePlacement(&p, i); err != nil {
			return err
		}
		name := p.instanceName()
		if seen[name] {
			return fmt.Errorf("placement[%d]: duplicate instance name %q; set an explicit name", i, name)
		}
		seen[name] = true
	}
	return nil
}

func validatePlacement(p *Placement, idx int) error {
	prefix := fmt.Sprintf("placement[%d]", idx)
	if p.Model == "" {
		return fmt.Errorf("%s: model must not be empty", prefix)
	}
	if _, ok := Lookup(p.Model); !ok {
		return fmt.Errorf("%s: unknown model %q; valid: %v", prefix, p.Model, Names())
	}
	if len(p.Pose) != 0 && len(p.Pose) != 6 {
		return fmt.Errorf("%s: pose must have 6 components (x y z roll pitch yaw), got %d", prefix, len(p.Pose))
	}
	if len(p.Pose) == 6 {
		pose := sdf.NewPose(p.Pose[0], p.Pose[1], p.Pose[2], p.Pose[3], p.Pose[4], p.Pose[5])
		if !pose.IsFinite() {
			return fmt.Errorf("%s: pose components must be finite numbers, got %v", prefix, p.Pose)
		}
	}
	return nil
}

func (p *Placement) instanceName() string {
	if p.Name != "" {
		return p.Name
	}
	if e, ok := Lookup(p.Model); ok {
		return e.Dir
	}
	return p.Model
}

// Compose builds the world described by the manifest. Placements become
// model:// includes resolved against the catalog, so the emitted world
// file stays a thin reference over the model database.
func (m *Manifest) Compose() (*sdf.Root, error) {
	if err := m.Validate(); err != nil {
		return nil, err
	}
	world := &sdf.World{Name: m.World}
	if m.Sun == nil || *m.Sun {
		world.Includes = append(world.Includes, sdf.Include{URI: "model://sun"})
	}
	if m.Ground == nil || *m.Ground {
		world.Includes = append(world.Includes, sdf.Include{URI: "model://ground_plane"})
	}
	for _, p := range m.Placements {
		entry, _ := Lookup(p.Model)
		inc := sdf.Include{
			URI:    entry.URI(),
			Name:   p.instanceName(),
			Static: p.Static,
		}
		if len(p.Pose) == 6 {
			inc.Pose = sdf.NewPose(p.Pose[0], p.Pose[1], p.Pose[2], p.Pose[3], p.Pose[4], p.Pose[5])
		}
		world.Includes = append(world.Includes, inc)
	}
	root := sdf.NewWorldRoot(sdf.Version15, world)
	if err := root.Validate(); err != nil {
		return nil, fmt.Errorf("composed world: %w", err)
	}
	return root, nil
}
