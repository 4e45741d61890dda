// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package streamdeck models a Stream Deck plugin as a Go object graph and
// runs it against the host.
//
// A plugin is a Plugin owning one or more Actions. Each Action is an
// instance of an ActionKind, the immutable per-type configuration holding
// states, encoder settings and the handler registry. From that graph the
// package derives the host manifest (CompileManifest) and the runtime
// that routes host events to handlers (Runtime).
//
// Handlers are registered per event name:
//
//	reg := streamdeck.NewRegistry[*streamdeck.Action]().
//		On(streamdeck.EventKeyDown, func(ctx context.Context, a *streamdeck.Action, ev streamdeck.Event) error {
//			return a.ShowOK()
//		})
//
// Events without a handler are ignored.
package streamdeck
