package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wellpipe/internal/config"
	"wellpipe/internal/pipeline"
)

var runFlags struct {
	config string
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the full pipeline described by a config file",
	RunE:  runPipeline,
}

func init() {
	runCmd.Flags().StringVar(&runFlags.config, "config", "config.yaml", "Path to pipeline config file")
}

func runPipeline(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfig(runFlags.config)
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)

	result, err := pipeline.Run(context.Background(), cfg, logger)
	if err != nil {
		logger.Error().Err(err).Msg("pipeline failed")
		return err
	}

	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal result: %w", err)
	}
	fmt.Fprintln(os.Stdout, string(out))
	return nil
}
