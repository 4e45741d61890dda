// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/deckkit/internal/bundle"
	"github.com/holomush/deckkit/internal/config"
	"github.com/holomush/deckkit/internal/hostdir"
)

type linkConfig struct {
	force bool
}

func newLinkCmd(deps *Deps) *cobra.Command {
	cfg := &linkConfig{}

	cmd := &cobra.Command{
		Use:   "link",
		Short: "Build in development mode and link the output into the host plugins directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, log, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			s.Dev = true
			res, err := runBundle(cmd.Context(), cmd, deps, s, log)
			if err != nil {
				return err
			}
			dir, err := deps.PluginsDir()
			if err != nil {
				return err
			}
			target, err := hostdir.Link(res.OutputDir, dir, cfg.force)
			if err != nil {
				return err
			}
			cmd.Printf("Linked %s\n", target)
			return nil
		},
	}

	cmd.Flags().BoolVar(&cfg.force, "force", false, "replace an existing link or directory")

	return cmd
}

func newUnlinkCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "unlink",
		Short: "Remove the development link from the host plugins directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, _, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			doc, err := config.LoadDocument(s.SourcePath(config.DocumentFile))
			if err != nil {
				return err
			}
			dir, err := deps.PluginsDir()
			if err != nil {
				return err
			}
			name := bundle.PluginDirName(doc.ID, true)
			removed, err := hostdir.Unlink(dir, name)
			if err != nil {
				return err
			}
			if removed {
				cmd.Printf("Unlinked %s\n", name)
			}
			return nil
		},
	}
}
