// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package actions holds the actions of the hello plugin.
package actions

import (
	"context"
	"strconv"

	"github.com/holomush/deckkit/pkg/streamdeck"
)

// CounterSettings are the per-instance settings of the counter.
type CounterSettings struct {
	Count int `json:"count"`
}

// Next returns the settings after one key press. The counter wraps at
// limit when limit is positive.
func (s CounterSettings) Next(limit int) CounterSettings {
	s.Count++
	if limit > 0 && s.Count >= limit {
		s.Count = 0
	}
	return s
}

// Title is the key title for the settings.
func (s CounterSettings) Title() string {
	return strconv.Itoa(s.Count)
}

// counterLimit is where the count wraps back to zero.
const counterLimit = 100

// Counter defines the counter action: each key press increments a number
// stored in the action settings and shows it as the key title.
func Counter() (*streamdeck.Action, error) {
	handlers := streamdeck.NewRegistry[*streamdeck.Action]().
		On(streamdeck.EventWillAppear, showCount).
		On(streamdeck.EventDidReceiveSettings, showCount).
		On(streamdeck.EventKeyDown, increment)

	return streamdeck.DefineAction(streamdeck.ActionConfig{
		Type:    "Counter",
		Name:    "Counter",
		Tooltip: "Counts key presses",
		States: []streamdeck.StateConfig{
			{Image: "key", Name: "Idle", Title: "0", FontSize: 16},
			{Image: "key-active", Name: "Counting", FontSize: 16},
		},
	}, handlers)
}

func showCount(_ context.Context, a *streamdeck.Action, ev streamdeck.Event) error {
	var s CounterSettings
	if err := ev.Settings(&s); err != nil {
		return err
	}
	return a.SetTitle(s.Title())
}

func increment(_ context.Context, a *streamdeck.Action, ev streamdeck.Event) error {
	var s CounterSettings
	if err := ev.Settings(&s); err != nil {
		return err
	}
	s = s.Next(counterLimit)
	if err := a.SetSettings(s); err != nil {
		return err
	}
	state := 1
	if s.Count == 0 {
		state = 0
	}
	if err := a.SetState(state); err != nil {
		return err
	}
	return a.SetTitle(s.Title())
}
