package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/line-follower-sim/line-follower-sim/sdf"
)

var validateCmd = &cobra.Command{
	Use:   "validate <file ...>",
	Short: "Parse and validate SDF, world, and model.config files",
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		failed := 0
		for _, path := range args {
			if err := validateFile(path); err != nil {
				fmt.Printf("FAIL  %s: %v\n", path, err)
				failed++
				continue
			}
			fmt.Printf("ok    %s\n", path)
		}
		if failed > 0 {
			logrus.Fatalf("%d of %d files invalid", failed, len(args))
		}
	},
}

func validateFile(path string) error {
	if filepath.Base(path) == "model.config" {
		mc, err := sdf.LoadModelConfig(path)
		if err != nil {
			return err
		}
		return mc.Validate()
	}
	root, err := sdf.LoadRoot(path)
	if err != nil {
		return err
	}
	return root.Validate()
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
