package sdf

import "encoding/xml"

// Supported document versions. Worlds in this repository are written as 1.5;
// standalone models may declare up to 1.7.
const (
	Version15 = "1.5"
	Version16 = "1.6"
	Version17 = "1.7"
)

// supportedVersions maps accepted values of the <sdf version> attribute.
var supportedVersions = map[string]bool{
	Version15: true,
	Version16: true,
	Version17: true,
}

// IsSupportedVersion reports whether v is a document version this package
// knows how to validate.
func IsSupportedVersion(v string) bool {
	return supportedVersions[v]
}

// Root is an <sdf> document. Exactly one of Model or World is set.
type Root struct {
	XMLName xml.Name `xml:"sdf"`
	Version string   `xml:"version,attr"`
	Model   *Model   `xml:"model,omitempty"`
	World   *World   `xml:"world,omitempty"`
}

// Model is a named container of links with a world pose and a static flag.
// Static models are fixed in place; the simulator skips their dynamics.
type Model struct {
	Name   string `xml:"name,attr"`
	Static bool   `xml:"static,omitempty"`
	Pose   *Pose  `xml:"pose,omitempty"`
	Links  []Link `xml:"link"`
}

// Link is a rigid body within a model: a local pose, optional inertial
// properties, and any number of collision and visual elements.
type Link struct {
	Name       string      `xml:"name,attr"`
	Pose       *Pose       `xml:"pose,omitempty"`
	Inertial   *Inertial   `xml:"inertial,omitempty"`
	Collisions []Collision `xml:"collision"`
	Visuals    []Visual    `xml:"visual"`
}

// Inertial holds a link's mass and rotational inertia about its center of
// mass, optionally offset by a pose.
type Inertial struct {
	Pose    *Pose   `xml:"pose,omitempty"`
	Mass    float64 `xml:"mass"`
	Inertia Inertia `xml:"inertia"`
}

// Inertia is the symmetric 3x3 inertia tensor in link frame coordinates.
type Inertia struct {
	Ixx float64 `xml:"ixx"`
	Ixy float64 `xml:"ixy"`
	Ixz float64 `xml:"ixz"`
	Iyy float64 `xml:"iyy"`
	Iyz float64 `xml:"iyz"`
	Izz float64 `xml:"izz"`
}

// Collision is named contact geometry with a local pose offset.
type Collision struct {
	Name     string   `xml:"name,attr"`
	Pose     *Pose    `xml:"pose,omitempty"`
	Geometry Geometry `xml:"geometry"`
}

// Visual is named render geometry with a local pose offset and an optional
// material.
type Visual struct {
	Name     string    `xml:"name,attr"`
	Pose     *Pose     `xml:"pose,omitempty"`
	Geometry Geometry  `xml:"geometry"`
	Material *Material `xml:"material,omitempty"`
}

// Geometry is a shape choice: exactly one of Box or Mesh is set.
type Geometry struct {
	Box  *Box  `xml:"box,omitempty"`
	Mesh *Mesh `xml:"mesh,omitempty"`
}

// BoxGeometry returns a box shape with the given dimensions.
func BoxGeometry(x, y, z float64) Geometry {
	return Geometry{Box: &Box{Size: V3(x, y, z)}}
}

// MeshGeometry returns a mesh reference shape.
func MeshGeometry(uri string) Geometry {
	return Geometry{Mesh: &Mesh{URI: uri}}
}

// Box is an axis-aligned box with positive edge lengths in meters.
type Box struct {
	Size Vec3 `xml:"size"`
}

// Mesh references an external mesh asset by URI (e.g. a model:// path to a
// .dae file). Scale defaults to (1, 1, 1) when omitted.
type Mesh struct {
	URI   string `xml:"uri"`
	Scale *Vec3  `xml:"scale,omitempty"`
}

// Material selects a visual's appearance: a named shader script, flat
// colors, or both.
type Material struct {
	Script  *Script `xml:"script,omitempty"`
	Ambient *Color  `xml:"ambient,omitempty"`
	Diffuse *Color  `xml:"diffuse,omitempty"`
}

// Script references a material defined in an external script, such as
// Gazebo/Grey from file://media/materials/scripts/gazebo.material.
type Script struct {
	URIs []string `xml:"uri"`
	Name string   `xml:"name"`
}

// ScriptMaterial returns a material referencing a named script entry.
func ScriptMaterial(scriptURI, name string) *Material {
	return &Material{Script: &Script{URIs: []string{scriptURI}, Name: name}}
}

// World is a named composition of model references and inline models.
type World struct {
	Name     string    `xml:"name,attr"`
	Includes []Include `xml:"include"`
	Models   []Model   `xml:"model"`
}

// Include places a model from the model database into a world, optionally
// renaming it and overriding its pose or static flag.
type Include struct {
	URI    string `xml:"uri"`
	Name   string `xml:"name,omitempty"`
	Pose   *Pose  `xml:"pose,omitempty"`
	Static *bool  `xml:"static,omitempty"`
}

// NewModelRoot wraps a model in a document with the given version.
func NewModelRoot(version string, m *Model) *Root {
	return &Root{Version: version, Model: m}
}

// NewWorldRoot wraps a world in a document with the given version.
func NewWorldRoot(version string, w *World) *Root {
	return &Root{Version: version, World: w}
}
