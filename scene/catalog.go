// Package scene holds the built-in model catalog: the bridge structure, the
// big box obstacle, and the painted line track, plus world composition from
// YAML manifests. Dimensions and poses here are fixed data; nothing is
// computed at load time beyond inertia tensors.
package scene

import (
	"sort"

	"github.com/line-follower-sim/line-follower-sim/sdf"
)

// materialScriptURI is where Gazebo-style named materials live.
const materialScriptURI = "file://media/materials/scripts/gazebo.material"

// Entry describes one catalog model: its database directory name, the name
// written into the SDF, and a builder returning a fresh copy of the model.
type Entry struct {
	Dir         string // model database directory (and model:// URI suffix)
	Name        string // model name as it appears in the SDF
	SDFVersion  string
	Description string
	Build       func() *sdf.Model
}

// Root wraps a freshly built model in an SDF document.
func (e Entry) Root() *sdf.Root {
	return sdf.NewModelRoot(e.SDFVersion, e.Build())
}

// URI returns the model database URI for the entry.
func (e Entry) URI() string {
	return "model://" + e.Dir
}

var catalog = map[string]Entry{
	"bridge": {
		Dir:         "bridge",
		Name:        "Bridge",
		SDFVersion:  sdf.Version15,
		Description: "Static box-girder bridge: deck, two approach ramps, side rails.",
		Build:       Bridge,
	},
	"big_box": {
		Dir:         "big_box",
		Name:        "Big box",
		SDFVersion:  sdf.Version17,
		Description: "Dynamic 0.8 m cube obstacle with solid-box inertia.",
		Build:       BigBox,
	},
	"line_track": {
		Dir:         "line_track",
		Name:        "Line track",
		SDFVersion:  sdf.Version15,
		Description: "Painted course line: dark ground strips for the follower camera.",
		Build:       LineTrack,
	},
}

// Lookup finds a catalog entry by directory name or by model name.
func Lookup(name string) (Entry, bool) {
	if e, ok := catalog[name]; ok {
		return e, true
	}
	for _, e := range catalog {
		if e.Name == name {
			return e, true
		}
	}
	return Entry{}, false
}

// Names returns the catalog directory names in sorted order.
func Names() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
