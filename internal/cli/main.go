// SPDX-License-Identifier: EPL-2.0

// Package cli wires the aupstream subcommands onto a cobra root.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/ik5/aupstream/internal/config"
	"github.com/ik5/aupstream/internal/logger"
	"github.com/spf13/cobra"
)

// Main runs the command line and exits non-zero on failure.
func Main() {
	if err := NewRoot(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// app is the state shared by subcommands once flags are parsed.
type app struct {
	cfg *config.Config
	log *slog.Logger
}

// NewRoot builds the command tree writing to stdout and stderr.
func NewRoot(stdout, stderr io.Writer) *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "aupstream",
		Short:         "Read audio and labels out of Audacity .aup projects",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd, stderr)
		},
	}

	root.SetOut(stdout)
	root.SetErr(stderr)

	root.PersistentFlags().String("env-file", ".env", "Path to .env file")
	root.PersistentFlags().String("log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().String("log-format", "", "Log format (json, pretty)")

	root.AddCommand(
		newExportCmd(a),
		newRegionsCmd(a),
		newJSONCmd(a),
		newInfoCmd(a),
	)

	return root
}

func (a *app) init(cmd *cobra.Command, stderr io.Writer) error {
	envFile, _ := cmd.Flags().GetString("env-file")

	cfg, err := config.Load(envFile)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	if v, _ := cmd.Flags().GetString("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if v, _ := cmd.Flags().GetString("log-format"); v != "" {
		cfg.LogFormat = v
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}

	a.cfg = cfg
	a.log = logger.New(logger.Config{
		Writer:      stderr,
		Format:      cfg.LogFormat,
		Environment: cfg.Env,
		Level:       logger.ParseLevel(cfg.LogLevel),
	})

	return nil
}
