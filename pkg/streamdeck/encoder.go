// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import "strings"

// Encoder configures the dial and touch display segment of an action.
// Its presence gives the action the Encoder controller.
type Encoder struct {
	// Background is the default touch display background image.
	Background string `json:"background,omitempty"`
	// Icon is shown in the dial stack and inspector; defaults to the action icon.
	Icon string `json:"icon,omitempty"`
	// Layout is a built-in layout token ($A0, $B1, ...) or a path to a layout document.
	Layout string `json:"layout,omitempty"`
	// StackColor is the dial stack background color.
	StackColor string `json:"stackColor,omitempty"`

	OnRotate    string `json:"onRotate,omitempty"`
	OnPush      string `json:"onPush,omitempty"`
	OnTouch     string `json:"onTouch,omitempty"`
	OnLongTouch string `json:"onLongTouch,omitempty"`
}

// HasTriggerDescription reports whether any trigger description is set.
func (e *Encoder) HasTriggerDescription() bool {
	return e.OnRotate != "" || e.OnPush != "" || e.OnTouch != "" || e.OnLongTouch != ""
}

// HasCustomLayout reports whether Layout points at a layout document
// instead of a built-in token.
func (e *Encoder) HasCustomLayout() bool {
	return e.Layout != "" && !strings.HasPrefix(e.Layout, "$")
}
