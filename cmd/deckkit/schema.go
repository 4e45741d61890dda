// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package main

import (
	"github.com/spf13/cobra"

	"github.com/holomush/deckkit/internal/config"
)

type schemaConfig struct {
	layout bool
}

func newSchemaCmd() *cobra.Command {
	cfg := &schemaConfig{}

	cmd := &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON Schema of the config document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			gen := config.GenerateDocumentSchema
			if cfg.layout {
				gen = config.GenerateLayoutSchema
			}
			data, err := gen()
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(append(data, '\n'))
			return err
		},
	}

	cmd.Flags().BoolVar(&cfg.layout, "layout", false, "print the custom layout schema instead")

	return cmd
}
