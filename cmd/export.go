package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/line-follower-sim/line-follower-sim/export"
	"github.com/line-follower-sim/line-follower-sim/scene"
)

var (
	exportOut      string // Output model database directory
	exportManifest string // Optional scene manifest composing a custom world
	exportForce    bool   // Overwrite files that already exist
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the model database and course world to a directory",
	Long: `Write every catalog model (model.config + model.sdf) and the course
world file in the Gazebo model database layout. With --manifest, the world is
composed from the manifest instead and only the models it places are written.`,
	Run: func(cmd *cobra.Command, args []string) {
		db := &export.Database{Dir: exportOut, Force: exportForce}

		if exportManifest == "" {
			if err := db.WriteAll(); err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
			fmt.Printf("wrote %d models and the course world to %s\n", len(scene.Names()), exportOut)
			return
		}

		m, err := scene.LoadManifest(exportManifest)
		if err != nil {
			logrus.Fatalf("Failed to load manifest: %v", err)
		}
		world, err := m.Compose()
		if err != nil {
			logrus.Fatalf("Compose failed: %v", err)
		}
		written := map[string]bool{}
		for _, p := range m.Placements {
			entry, ok := scene.Lookup(p.Model)
			if !ok || written[entry.Dir] {
				continue
			}
			if err := db.WriteModel(entry); err != nil {
				logrus.Fatalf("Export failed: %v", err)
			}
			written[entry.Dir] = true
		}
		if err := db.WriteWorld(m.World, world); err != nil {
			logrus.Fatalf("Export failed: %v", err)
		}
		fmt.Printf("wrote %d models and world %q to %s\n", len(written), m.World, exportOut)
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportOut, "out", "gazebo_models", "Output directory for the model database")
	exportCmd.Flags().StringVar(&exportManifest, "manifest", "", "Scene manifest YAML composing a custom world")
	exportCmd.Flags().BoolVar(&exportForce, "force", false, "Overwrite files that already exist")

	rootCmd.AddCommand(exportCmd)
}
