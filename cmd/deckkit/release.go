// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/holomush/deckkit/internal/config"
)

type releaseConfig struct {
	version string
}

func newReleaseCmd(deps *Deps) *cobra.Command {
	cfg := &releaseConfig{}

	cmd := &cobra.Command{
		Use:   "release",
		Short: "Set the plugin version and build the release archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cfg.version == "" {
				return oops.Code(config.CodeInvalidConfig).Errorf("--version is required")
			}
			if _, err := config.ParseVersion(cfg.version); err != nil {
				return err
			}
			s, log, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if err := config.WriteVersion(s.SourcePath(config.DocumentFile), cfg.version); err != nil {
				return err
			}
			s.Dev = false
			res, err := runBundle(cmd.Context(), cmd, deps, s, log)
			if err != nil {
				return err
			}
			cmd.Printf("%s v%s has been released to %s\n", res.PluginID, cfg.version, res.ArchivePath)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfg.version, "version", "", "release version (X.Y.Z)")

	return cmd
}
