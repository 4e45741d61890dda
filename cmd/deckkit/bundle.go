// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"
)

func newBundleCmd(deps *Deps) *cobra.Command {
	return &cobra.Command{
		Use:   "bundle",
		Short: "Build the plugin directory and, outside --dev, the release archive",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, log, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			_, err = runBundle(cmd.Context(), cmd, deps, s, log)
			return err
		},
	}
}
