package cmd

import (
	"fmt"
	"os"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/line-follower-sim/line-follower-sim/scene"
	"github.com/line-follower-sim/line-follower-sim/sdf"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <model|file>",
	Short: "Show the links, geometry, and inertials of a model or world",
	Long: `Inspect a catalog model by name (bridge, big_box, line_track) or any
.sdf/.world file on disk.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		var root *sdf.Root
		if entry, ok := scene.Lookup(args[0]); ok {
			root = entry.Root()
		} else {
			loaded, err := sdf.LoadRoot(args[0])
			if err != nil {
				logrus.Fatalf("Failed to load %s: %v", args[0], err)
			}
			root = loaded
		}
		if err := root.Validate(); err != nil {
			logrus.Warnf("document does not validate: %v", err)
		}

		switch {
		case root.Model != nil:
			inspectModel(root.Model, root.Version)
		case root.World != nil:
			inspectWorld(root.World, root.Version)
		default:
			logrus.Fatalf("document has neither a model nor a world")
		}
	},
}

func inspectModel(m *sdf.Model, version string) {
	kind := "dynamic"
	if m.Static {
		kind = "static"
	}
	fmt.Printf("model %q (sdf %s, %s, pose %s)\n", m.Name, version, kind, poseText(m.Pose))

	links := newTable()
	links.AppendHeader(table.Row{"LINK", "POSE", "COLLISIONS", "VISUALS"})
	for _, l := range m.Links {
		links.AppendRow(table.Row{l.Name, poseText(l.Pose), len(l.Collisions), len(l.Visuals)})
	}
	links.Render()

	geom := newTable()
	geom.AppendHeader(table.Row{"LINK", "ELEMENT", "SHAPE", "DETAIL", "MATERIAL"})
	for _, l := range m.Links {
		for _, c := range l.Collisions {
			kind, detail := shapeSummary(c.Geometry)
			geom.AppendRow(table.Row{l.Name, "collision " + c.Name, kind, detail, ""})
		}
		for _, v := range l.Visuals {
			kind, detail := shapeSummary(v.Geometry)
			geom.AppendRow(table.Row{l.Name, "visual " + v.Name, kind, detail, materialSummary(v.Material)})
		}
	}
	geom.Render()

	inertials := newTable()
	inertials.AppendHeader(table.Row{"LINK", "MASS (kg)", "IXX", "IYY", "IZZ", "IXY", "IXZ", "IYZ"})
	rows := 0
	for _, l := range m.Links {
		if l.Inertial == nil {
			continue
		}
		t := l.Inertial.Inertia
		inertials.AppendRow(table.Row{l.Name, l.Inertial.Mass, t.Ixx, t.Iyy, t.Izz, t.Ixy, t.Ixz, t.Iyz})
		rows++
	}
	if rows > 0 {
		inertials.Render()
	} else {
		fmt.Println("(no inertials: all links are massless or the model is static)")
	}
}

func inspectWorld(w *sdf.World, version string) {
	fmt.Printf("world %q (sdf %s)\n", w.Name, version)

	t := newTable()
	t.AppendHeader(table.Row{"NAME", "URI", "POSE", "STATIC"})
	for _, inc := range w.Includes {
		static := ""
		if inc.Static != nil {
			static = fmt.Sprintf("%t", *inc.Static)
		}
		t.AppendRow(table.Row{inc.Name, inc.URI, poseText(inc.Pose), static})
	}
	t.Render()

	for i := range w.Models {
		fmt.Println()
		inspectModel(&w.Models[i], version)
	}
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

func poseText(p *sdf.Pose) string {
	if p == nil {
		return "-"
	}
	b, err := p.MarshalText()
	if err != nil {
		return "?"
	}
	return string(b)
}

func shapeSummary(g sdf.Geometry) (kind, detail string) {
	switch {
	case g.Box != nil:
		b, err := g.Box.Size.MarshalText()
		if err != nil {
			return "box", "?"
		}
		return "box", string(b) + " m"
	case g.Mesh != nil:
		return "mesh", g.Mesh.URI
	}
	return "none", ""
}

func materialSummary(m *sdf.Material) string {
	switch {
	case m == nil:
		return ""
	case m.Script != nil:
		return m.Script.Name
	case m.Ambient != nil:
		b, err := m.Ambient.MarshalText()
		if err != nil {
			return "?"
		}
		return "ambient " + string(b)
	}
	return ""
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}
