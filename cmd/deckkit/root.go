// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"context"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/holomush/deckkit/internal/bundle"
	"github.com/holomush/deckkit/internal/config"
	"github.com/holomush/deckkit/internal/hostdir"
	"github.com/holomush/deckkit/internal/logging"
)

// BundleFunc runs the pipeline for settings.
type BundleFunc func(ctx context.Context, s *config.Settings, log *slog.Logger) (*bundle.Result, error)

// Deps holds the replaceable collaborators of the CLI.
type Deps struct {
	Bundle     BundleFunc
	PluginsDir func() (string, error)
}

func (d *Deps) withDefaults() *Deps {
	out := Deps{}
	if d != nil {
		out = *d
	}
	if out.Bundle == nil {
		out.Bundle = func(ctx context.Context, s *config.Settings, log *slog.Logger) (*bundle.Result, error) {
			return bundle.New(s, bundle.WithLogger(log)).Run(ctx)
		}
	}
	if out.PluginsDir == nil {
		out.PluginsDir = hostdir.PluginsDir
	}
	return &out
}

// NewRootCmd creates the root command for the deckkit CLI.
func NewRootCmd() *cobra.Command {
	return newRootCmdWithDeps(nil)
}

func newRootCmdWithDeps(deps *Deps) *cobra.Command {
	deps = deps.withDefaults()

	cmd := &cobra.Command{
		Use:   "deckkit",
		Short: "deckkit - build Stream Deck plugins in Go",
		Long: `deckkit compiles a Go plugin project into a Stream Deck plugin directory,
checks its images and configuration, writes the manifest and packages
release archives.`,
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	config.RegisterFlags(cmd.PersistentFlags())

	cmd.AddCommand(newBundleCmd(deps))
	cmd.AddCommand(newLinkCmd(deps))
	cmd.AddCommand(newUnlinkCmd(deps))
	cmd.AddCommand(newReleaseCmd(deps))
	cmd.AddCommand(newSchemaCmd())

	return cmd
}

// loadSettings resolves settings from the command's flags and installs
// the default logger they describe.
func loadSettings(cmd *cobra.Command) (*config.Settings, *slog.Logger, error) {
	s, err := config.LoadSettings(cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	level, err := logging.ParseLevel(s.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	logger := logging.SetDefault(logging.Options{
		Service: "deckkit",
		Version: version,
		Format:  s.LogFormat,
		Level:   level,
		Writer:  cmd.ErrOrStderr(),
	})
	return s, logger, nil
}

func runBundle(ctx context.Context, cmd *cobra.Command, deps *Deps, s *config.Settings, log *slog.Logger) (*bundle.Result, error) {
	res, err := deps.Bundle(ctx, s, log)
	if err != nil {
		return nil, err
	}
	cmd.Printf("Bundled %s into %s\n", res.PluginID, res.OutputDir)
	if res.ArchivePath != "" {
		cmd.Printf("Packaged %s\n", res.ArchivePath)
	}
	return res, nil
}
