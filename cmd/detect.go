package cmd

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/line-follower-sim/line-follower-sim/follower"
	"github.com/line-follower-sim/line-follower-sim/vision"
)

var (
	detectConfigPath string // Tuning config JSON
	detectOut        string // Annotated output image
	detectMaskOut    string // Optional intensity mask output
	detectEdgesOut   string // Optional edge map output
	detectSeed       int64  // Seed for the segment extractor
)

var detectCmd = &cobra.Command{
	Use:   "detect <image>",
	Short: "Run the line detector over a single image",
	Long: `Run mask, edge, and segment extraction over one image and write an
annotated copy with the detected segments drawn on top.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := follower.Load(detectConfigPath, cmd.Flags())
		if err != nil {
			logrus.Fatalf("Failed to load tuning config: %v", err)
		}

		img, err := imgio.Open(args[0])
		if err != nil {
			logrus.Fatalf("Failed to read image: %v", err)
		}

		gray := vision.Grayscale(img)
		lo, hi := cfg.MaskBounds()
		mask := vision.InRange(gray, lo, hi)
		edges := vision.Canny(mask, vision.CannyLowDefault, vision.CannyHighDefault)
		segs := vision.HoughSegments(edges, cfg.HoughParams(), detectSeed)

		out := detectOut
		if out == "" {
			out = strings.TrimSuffix(args[0], filepath.Ext(args[0])) + "_lines.png"
		}
		if err := imgio.Save(out, vision.Overlay(img, segs), imgio.PNGEncoder()); err != nil {
			logrus.Fatalf("Failed to write %s: %v", out, err)
		}
		if detectMaskOut != "" {
			if err := imgio.Save(detectMaskOut, mask, imgio.PNGEncoder()); err != nil {
				logrus.Fatalf("Failed to write %s: %v", detectMaskOut, err)
			}
		}
		if detectEdgesOut != "" {
			if err := imgio.Save(detectEdgesOut, edges, imgio.PNGEncoder()); err != nil {
				logrus.Fatalf("Failed to write %s: %v", detectEdgesOut, err)
			}
		}

		fmt.Printf("%d segments -> %s\n", len(segs), out)
		if len(segs) == 0 {
			return
		}
		t := newTable()
		t.AppendHeader(table.Row{"X1", "Y1", "X2", "Y2", "LENGTH (px)", "ANGLE (deg)"})
		for _, s := range segs {
			t.AppendRow(table.Row{
				s.X1, s.Y1, s.X2, s.Y2,
				fmt.Sprintf("%.1f", s.Length()),
				fmt.Sprintf("%.1f", s.Angle()*180/math.Pi),
			})
		}
		t.Render()
	},
}

func init() {
	detectCmd.Flags().StringVar(&detectConfigPath, "config", "", "Tuning config JSON file")
	detectCmd.Flags().StringVar(&detectOut, "out", "", "Annotated image path (default <image>_lines.png)")
	detectCmd.Flags().StringVar(&detectMaskOut, "mask", "", "Also write the intensity mask here")
	detectCmd.Flags().StringVar(&detectEdgesOut, "edges", "", "Also write the edge map here")
	detectCmd.Flags().Int64Var(&detectSeed, "seed", 1, "Seed for the segment extractor")
	tuningFlags(detectCmd.Flags())

	rootCmd.AddCommand(detectCmd)
}
