// Stylist - Outfit Composition Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylist

// Command stylectl runs the outfit engine offline against a request file.
//
//	stylectl generate -f request.yaml --occasion business --weather 38
//	stylectl strategies
//	stylectl validate -f request.yaml --occasion gym
//
// A request file has the shape of the POST /api/v1/outfits/generate body,
// in YAML or JSON.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/tomtom215/stylist/internal/config"
	"github.com/tomtom215/stylist/internal/logging"
	"github.com/tomtom215/stylist/internal/outfit"
	"github.com/tomtom215/stylist/internal/outfit/analyzers"
)

var version = "dev"

// rootOptions are the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg *config.Config
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "stylectl",
		Short:         "Compose outfits from a wardrobe file",
		Long:          "stylectl runs the Stylist outfit engine locally, without the server or its databases.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.init(cmd)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "Stylist config file (engine section is used)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "console", "log format (console, json)")

	cmd.AddCommand(generateCmd(opts))
	cmd.AddCommand(strategiesCmd(opts))
	cmd.AddCommand(validateCmd(opts))
	return cmd
}

func (o *rootOptions) init(cmd *cobra.Command) error {
	if !logging.ValidLevel(o.logLevel) {
		return fmt.Errorf("invalid log level: %s", o.logLevel)
	}
	if o.logFormat != "console" && o.logFormat != "json" {
		return fmt.Errorf("invalid log format: %s", o.logFormat)
	}
	logging.Init(logging.Config{
		Level:     o.logLevel,
		Format:    o.logFormat,
		Timestamp: true,
		Output:    cmd.ErrOrStderr(),
	})

	var err error
	if o.configPath != "" {
		o.cfg, err = config.LoadFile(o.configPath)
	} else {
		o.cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	return nil
}

// newEngine builds an engine with the default analyzers and in-memory
// collaborators. A non-zero seed overrides the configured one.
func (o *rootOptions) newEngine(seed int64) (*outfit.Engine, error) {
	engineCfg, err := o.cfg.OutfitConfig()
	if err != nil {
		return nil, err
	}
	if seed != 0 {
		engineCfg.Seed = seed
	}

	logger := logging.Logger()
	engine, err := outfit.NewEngine(engineCfg, logger)
	if err != nil {
		return nil, err
	}
	for _, a := range analyzers.Defaults(engineCfg, logger) {
		engine.RegisterAnalyzer(a)
	}
	return engine, nil
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
