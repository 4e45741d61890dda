// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"github.com/samber/oops"
)

// Error codes returned by this package.
const (
	CodeNoActions          = "NO_ACTIONS"
	CodeActionOwned        = "ACTION_OWNED"
	CodeInvalidAction      = "INVALID_ACTION"
	CodeInvalidState       = "INVALID_STATE"
	CodeInvalidPlugin      = "INVALID_PLUGIN"
	CodeInvalidLayout      = "INVALID_LAYOUT"
	CodeInvalidDescription = "INVALID_DESCRIPTION"
	CodeInvalidLaunchArgs  = "INVALID_LAUNCH_ARGS"
	CodeInvalidFrame       = "INVALID_FRAME"
	CodeNotConnected       = "NOT_CONNECTED"
	CodeRuntimeState       = "RUNTIME_STATE"
)

// ErrNoActions is returned when a plugin is built without actions.
func ErrNoActions(pluginID string) error {
	return oops.Code(CodeNoActions).
		With("plugin", pluginID).
		Errorf("plugin %q must define at least 1 action", pluginID)
}

// ErrActionOwned is returned when an action is handed to a second plugin.
func ErrActionOwned(actionType, owner string) error {
	return oops.Code(CodeActionOwned).
		With("action", actionType).
		With("owner", owner).
		Errorf("action %q already belongs to plugin %q", actionType, owner)
}

// ErrNotConnected is returned by outbound commands when no channel is bound.
func ErrNotConnected(event string) error {
	return oops.Code(CodeNotConnected).
		With("event", event).
		Errorf("cannot send %q: not connected", event)
}

func invalidAction(actionType, format string, args ...any) error {
	return oops.Code(CodeInvalidAction).
		With("action", actionType).
		Errorf(format, args...)
}
