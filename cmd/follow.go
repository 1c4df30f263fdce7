package cmd

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/line-follower-sim/line-follower-sim/follower"
)

var (
	followFrames    string  // Directory of frames to play back
	followSynthetic int     // Number of synthetic frames when no directory is given
	followWidth     int     // Synthetic frame width
	followHeight    int     // Synthetic frame height
	followMaxWidth  int     // Downscale playback frames wider than this
	followConfig    string  // Tuning config JSON
	followWatch     bool    // Hot-reload the tuning config on change
	followTrace     string  // Per-frame JSONL record output
	followSeed      int64   // Seed for the segment extractor and the synthetic walk
	followMaxSpeed  float64 // Forward speed on a centered line
	followGain      float64 // Yaw rate per unit lateral error
)

var followCmd = &cobra.Command{
	Use:   "follow",
	Short: "Run the line-following pipeline over a frame source",
	Long: `Play frames from a directory (or the synthetic course) through the
mask/edge/segment pipeline, steering on every frame. Tuning values layer in
order: defaults, the --config file, FOLLOWER_* environment variables, then
flags set here. Prints the run summary; --trace records every frame as a
JSON line.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := follower.Load(followConfig, cmd.Flags())
		if err != nil {
			logrus.Fatalf("Failed to load tuning config: %v", err)
		}

		var src follower.Source
		if followFrames != "" {
			src, err = follower.NewDirSource(followFrames, followMaxWidth)
			if err != nil {
				logrus.Fatalf("Failed to open frame source: %v", err)
			}
		} else {
			src = follower.NewSyntheticSource(followWidth, followHeight, followSynthetic, followSeed)
		}
		defer src.Close()

		p := follower.NewPipeline(src, cfg)
		p.Seed = followSeed
		p.Steering = follower.Steering{MaxSpeed: followMaxSpeed, Gain: followGain}

		if followTrace != "" {
			f, err := os.Create(followTrace)
			if err != nil {
				logrus.Fatalf("Failed to create trace file: %v", err)
			}
			defer f.Close()
			w := bufio.NewWriter(f)
			defer w.Flush()
			enc := json.NewEncoder(w)
			p.Sink = func(r follower.Record) {
				if err := enc.Encode(r); err != nil {
					logrus.Errorf("trace write: %v", err)
				}
			}
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if followWatch {
			if followConfig == "" {
				logrus.Fatalf("--watch requires --config")
			}
			go func() {
				if err := follower.Watch(ctx, followConfig, p.Apply); err != nil {
					logrus.Warnf("config watch stopped: %v", err)
				}
			}()
		}

		summary, err := p.Run(ctx)
		if err != nil && !errors.Is(err, context.Canceled) {
			logrus.Fatalf("Pipeline failed: %v", err)
		}
		fmt.Printf("frames=%d dropped=%d detected=%.1f%% mean|lateral|=%.3f\n",
			summary.Frames, summary.Dropped, 100*summary.DetectionRatio(), summary.MeanAbsErr)
	},
}

// tuningFlags registers the tuning overrides shared by detect and follow.
// The koanf flag layer reads them back, so only flags the user actually set
// take effect over the config file.
func tuningFlags(fs *pflag.FlagSet) {
	d := follower.DefaultConfig()
	fs.Int("min-val", d.MinVal, "Mask lower intensity bound")
	fs.Int("max-val", d.MaxVal, "Mask upper intensity bound")
	fs.Int("hough-threshold", d.HoughThreshold, "Accumulator votes required for a line")
	fs.Int("min-line-length", d.MinLineLength, "Minimum accepted segment length in pixels")
	fs.Int("max-line-gap", d.MaxLineGap, "Largest bridged gap along a line in pixels")
	fs.Float64("rho", d.Rho, "Distance resolution of the accumulator in pixels")
}

func init() {
	st := follower.DefaultSteering()

	followCmd.Flags().StringVar(&followFrames, "frames", "", "Directory of PNG/JPEG frames to play back")
	followCmd.Flags().IntVar(&followSynthetic, "synthetic", 300, "Synthetic frame count when --frames is not set")
	followCmd.Flags().IntVar(&followWidth, "width", 320, "Synthetic frame width")
	followCmd.Flags().IntVar(&followHeight, "height", 240, "Synthetic frame height")
	followCmd.Flags().IntVar(&followMaxWidth, "max-width", 640, "Downscale playback frames wider than this (0 disables)")
	followCmd.Flags().StringVar(&followConfig, "config", "", "Tuning config JSON file")
	followCmd.Flags().BoolVar(&followWatch, "watch", false, "Hot-reload the tuning config on change")
	followCmd.Flags().StringVar(&followTrace, "trace", "", "Write per-frame records as JSON lines")
	followCmd.Flags().Int64Var(&followSeed, "seed", 1, "Seed for the segment extractor and the synthetic walk")
	followCmd.Flags().Float64Var(&followMaxSpeed, "max-speed", st.MaxSpeed, "Forward speed on a centered line (m/s)")
	followCmd.Flags().Float64Var(&followGain, "gain", st.Gain, "Yaw rate per unit lateral error (rad/s)")
	tuningFlags(followCmd.Flags())

	rootCmd.AddCommand(followCmd)
}
