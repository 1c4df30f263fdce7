package cmd

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/line-follower-sim/line-follower-sim/server"
)

var serveAddr string // Listen address for the model database service

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the model database over HTTP",
	Long: `Serve the catalog as a model database: an index at /models, per-model
model.config and model.sdf documents, and the course world at /worlds/course.
Runs until interrupted.`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		fmt.Printf("serving model database on %s\n", serveAddr)
		if err := server.New(serveAddr).Serve(ctx); err != nil {
			logrus.Fatalf("Server failed: %v", err)
		}
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")

	rootCmd.AddCommand(serveCmd)
}
