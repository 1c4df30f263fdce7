// Package export writes catalog models and composed worlds to disk in the
// model-database layout a Gazebo-style simulator consumes: one directory per
// model holding model.config and model.sdf, plus a worlds/ directory of
// .world files.
package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"github.com/line-follower-sim/line-follower-sim/scene"
	"github.com/line-follower-sim/line-follower-sim/sdf"
)

// Database is a model database rooted at Dir. Writes refuse to clobber
// existing files unless Force is set.
type Database struct {
	Dir   string
	Force bool
}

// WriteModel emits <Dir>/<entry.Dir>/model.config and model.sdf for one
// catalog entry. The document is validated before anything touches disk.
func (db *Database) WriteModel(entry scene.Entry) error {
	root := entry.Root()
	if err := root.Validate(); err != nil {
		return fmt.Errorf("model %s: %w", entry.Dir, err)
	}
	modelDir := filepath.Join(db.Dir, entry.Dir)
	if err := os.MkdirAll(modelDir, 0o755); err != nil {
		return fmt.Errorf("creating model directory: %w", err)
	}

	config := sdf.NewModelConfig(entry.Name, entry.SDFVersion, entry.Description)
	configData, err := config.Encode()
	if err != nil {
		return fmt.Errorf("model %s: %w", entry.Dir, err)
	}
	if err := db.writeFile(filepath.Join(modelDir, "model.config"), configData); err != nil {
		return err
	}

	sdfData, err := root.Encode()
	if err != nil {
		return fmt.Errorf("model %s: %w", entry.Dir, err)
	}
	return db.writeFile(filepath.Join(modelDir, "model.sdf"), sdfData)
}

// WriteWorld emits <Dir>/worlds/<name>.world.
func (db *Database) WriteWorld(name string, root *sdf.Root) error {
	if err := root.Validate(); err != nil {
		return fmt.Errorf("world %s: %w", name, err)
	}
	worldsDir := filepath.Join(db.Dir, "worlds")
	if err := os.MkdirAll(worldsDir, 0o755); err != nil {
		return fmt.Errorf("creating worlds directory: %w", err)
	}
	data, err := root.Encode()
	if err != nil {
		return fmt.Errorf("world %s: %w", name, err)
	}
	return db.writeFile(filepath.Join(worldsDir, name+".world"), data)
}

// WriteAll emits every catalog model plus the default course world.
func (db *Database) WriteAll() error {
	for _, name := range scene.Names() {
		entry, _ := scene.Lookup(name)
		if err := db.WriteModel(entry); err != nil {
			return err
		}
	}
	return db.WriteWorld("course", scene.Course())
}

func (db *Database) writeFile(path string, data []byte) error {
	if !db.Force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%s already exists (use force to overwrite)", path)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	logrus.Debugf("wrote %s (%d bytes)", path, len(data))
	return nil
}
