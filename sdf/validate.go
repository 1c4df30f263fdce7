package sdf

import "fmt"

// Validate checks the document against the invariants a simulator's loader
// enforces: a supported version, exactly one top-level model or world, and
// valid contents all the way down.
func (r *Root) Validate() error {
	if !IsSupportedVersion(r.Version) {
		return fmt.Errorf("unsupported sdf version %q; supported: 1.5, 1.6, 1.7", r.Version)
	}
	switch {
	case r.Model != nil && r.World != nil:
		return fmt.Errorf("document declares both a model and a world")
	case r.Model != nil:
		return r.Model.Validate()
	case r.World != nil:
		return r.World.Validate()
	default:
		return fmt.Errorf("document declares neither a model nor a world")
	}
}

// Validate checks model-level invariants: a non-empty name, a finite pose,
// at least one link, and link names unique within the model.
func (m *Model) Validate() error {
	if m.Name == "" {
		return fmt.Errorf("model has no name")
	}
	if m.Pose != nil && !m.Pose.IsFinite() {
		return fmt.Errorf("model %q: pose has non-finite components", m.Name)
	}
	if len(m.Links) == 0 {
		return fmt.Errorf("model %q: no links", m.Name)
	}
	seen := make(map[string]bool, len(m.Links))
	for i := range m.Links {
		l := &m.Links[i]
		if seen[l.Name] {
			return fmt.Errorf("model %q: duplicate link name %q", m.Name, l.Name)
		}
		seen[l.Name] = true
		if err := l.validate(); err != nil {
			return fmt.Errorf("model %q: %w", m.Name, err)
		}
	}
	return nil
}

func (l *Link) validate() error {
	if l.Name == "" {
		return fmt.Errorf("link has no name")
	}
	if l.Pose != nil && !l.Pose.IsFinite() {
		return fmt.Errorf("link %q: pose has non-finite components", l.Name)
	}
	if len(l.Collisions) == 0 && len(l.Visuals) == 0 {
		return fmt.Errorf("link %q has neither collision nor visual elements", l.Name)
	}
	if l.Inertial != nil {
		if err := l.Inertial.Validate(); err != nil {
			return fmt.Errorf("link %q: %w", l.Name, err)
		}
	}
	names := make(map[string]bool, len(l.Collisions))
	for i := range l.Collisions {
		c := &l.Collisions[i]
		if names[c.Name] {
			return fmt.Errorf("link %q: duplicate collision name %q", l.Name, c.Name)
		}
		names[c.Name] = true
		if err := validateNamedGeometry("collision", c.Name, c.Pose, &c.Geometry); err != nil {
			return fmt.Errorf("link %q: %w", l.Name, err)
		}
	}
	names = make(map[string]bool, len(l.Visuals))
	for i := range l.Visuals {
		v := &l.Visuals[i]
		if names[v.Name] {
			return fmt.Errorf("link %q: duplicate visual name %q", l.Name, v.Name)
		}
		names[v.Name] = true
		if err := validateNamedGeometry("visual", v.Name, v.Pose, &v.Geometry); err != nil {
			return fmt.Errorf("link %q: %w", l.Name, err)
		}
		if v.Material != nil {
			if err := v.Material.validate(); err != nil {
				return fmt.Errorf("link %q: visual %q: %w", l.Name, v.Name, err)
			}
		}
	}
	return nil
}

func validateNamedGeometry(kind, name string, pose *Pose, g *Geometry) error {
	if name == "" {
		return fmt.Errorf("%s has no name", kind)
	}
	if pose != nil && !pose.IsFinite() {
		return fmt.Errorf("%s %q: pose has non-finite components", kind, name)
	}
	if err := g.validate(); err != nil {
		return fmt.Errorf("%s %q: %w", kind, name, err)
	}
	return nil
}

func (g *Geometry) validate() error {
	switch {
	case g.Box != nil && g.Mesh != nil:
		return fmt.Errorf("geometry declares both box and mesh")
	case g.Box != nil:
		if !g.Box.Size.IsFinite() || !g.Box.Size.Positive() {
			return fmt.Errorf("box size must be positive, got %v", g.Box.Size)
		}
		return nil
	case g.Mesh != nil:
		if g.Mesh.URI == "" {
			return fmt.Errorf("mesh has no uri")
		}
		if g.Mesh.Scale != nil && (!g.Mesh.Scale.IsFinite() || !g.Mesh.Scale.Positive()) {
			return fmt.Errorf("mesh scale must be positive, got %v", *g.Mesh.Scale)
		}
		return nil
	default:
		return fmt.Errorf("geometry declares neither box nor mesh")
	}
}

func (m *Material) validate() error {
	if m.Script == nil && m.Ambient == nil && m.Diffuse == nil {
		return fmt.Errorf("material is empty")
	}
	if m.Script != nil {
		if m.Script.Name == "" {
			return fmt.Errorf("material script has no name")
		}
		if len(m.Script.URIs) == 0 {
			return fmt.Errorf("material script %q has no uri", m.Script.Name)
		}
	}
	for _, c := range []*Color{m.Ambient, m.Diffuse} {
		if c == nil {
			continue
		}
		for _, v := range []float64{c.R, c.G, c.B, c.A} {
			if v < 0 || v > 1 {
				return fmt.Errorf("material color component %g outside [0, 1]", v)
			}
		}
	}
	return nil
}

// Validate checks world-level invariants: a non-empty name, include URIs
// present, placement poses finite, and inline models valid. Instance names
// must be unique across includes and inline models.
func (w *World) Validate() error {
	if w.Name == "" {
		return fmt.Errorf("world has no name")
	}
	if len(w.Includes) == 0 && len(w.Models) == 0 {
		return fmt.Errorf("world %q is empty", w.Name)
	}
	seen := make(map[string]bool)
	for i, inc := range w.Includes {
		if inc.URI == "" {
			return fmt.Errorf("world %q: include[%d] has no uri", w.Name, i)
		}
		if inc.Pose != nil && !inc.Pose.IsFinite() {
			return fmt.Errorf("world %q: include[%d] (%s): pose has non-finite components", w.Name, i, inc.URI)
		}
		if inc.Name != "" {
			if seen[inc.Name] {
				return fmt.Errorf("world %q: duplicate instance name %q", w.Name, inc.Name)
			}
			seen[inc.Name] = true
		}
	}
	for i := range w.Models {
		m := &w.Models[i]
		if seen[m.Name] {
			return fmt.Errorf("world %q: duplicate instance name %q", w.Name, m.Name)
		}
		seen[m.Name] = true
		if err := m.Validate(); err != nil {
			return fmt.Errorf("world %q: model[%d]: %w", w.Name, i, err)
		}
	}
	return nil
}
