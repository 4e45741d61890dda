// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Command hello is an example Stream Deck plugin with one counter action.
//
// Build it from the repository root with:
//
//	deckkit bundle --root plugins/hello
package main

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/holomush/deckkit/pkg/streamdeck"
	"github.com/holomush/deckkit/plugins/hello/src/actions"
)

//go:embed streamdeck.json
var document []byte

func newPlugin() (*streamdeck.Plugin, error) {
	var cfg streamdeck.PluginConfig
	if err := json.Unmarshal(document, &cfg); err != nil {
		return nil, fmt.Errorf("decode streamdeck.json: %w", err)
	}
	counter, err := actions.Counter()
	if err != nil {
		return nil, err
	}
	p, err := streamdeck.NewPlugin(cfg, counter)
	if err != nil {
		return nil, err
	}
	p.On(streamdeck.EventSystemDidWakeUp, func(ctx context.Context, _ *streamdeck.Plugin, _ streamdeck.Event) error {
		slog.InfoContext(ctx, "system woke up")
		return nil
	})
	return p, nil
}

func main() {
	p, err := newPlugin()
	if err != nil {
		fmt.Fprintf(os.Stderr, "ERROR: %v\n", err)
		os.Exit(1)
	}
	streamdeck.Main(p)
}
