// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package actions

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/deckkit/pkg/streamdeck"
)

func TestCounterSettings_Next(t *testing.T) {
	tests := []struct {
		name  string
		count int
		limit int
		want  int
	}{
		{name: "increments", count: 0, limit: 100, want: 1},
		{name: "wraps at limit", count: 99, limit: 100, want: 0},
		{name: "no limit", count: 1000, limit: 0, want: 1001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CounterSettings{Count: tt.count}.Next(tt.limit)
			assert.Equal(t, tt.want, got.Count)
		})
	}
}

func TestCounter_Definition(t *testing.T) {
	a, err := Counter()
	require.NoError(t, err)

	kind := a.Kind()
	assert.Equal(t, "Counter", kind.Type())
	assert.Equal(t, "actions/Counter.go", kind.SourceFile())
	require.Len(t, kind.States(), 2)
	assert.Equal(t, "images/actions/Counter/key", kind.States()[0].ImagePath())
	assert.ElementsMatch(t,
		[]string{streamdeck.EventWillAppear, streamdeck.EventDidReceiveSettings, streamdeck.EventKeyDown},
		kind.Handlers().Events())
}

func TestCounter_KeyDownNeedsConnection(t *testing.T) {
	a, err := Counter()
	require.NoError(t, err)
	_, err = streamdeck.NewPlugin(streamdeck.PluginConfig{
		ID: "com.example.hello", Name: "Hello", Author: "Example", Version: "0.1.0", Description: "x",
	}, a)
	require.NoError(t, err)

	fn, ok := a.Kind().Handlers().Lookup(streamdeck.EventKeyDown)
	require.True(t, ok)
	err = fn(t.Context(), a, streamdeck.NewEvent(streamdeck.EventKeyDown, []byte(`{"settings":{"count":4}}`)))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not connected")
}
