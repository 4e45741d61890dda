// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/holomush/deckkit/pkg/errutil"
	"github.com/holomush/deckkit/pkg/streamdeck"
)

func intPtr(v int) *int { return &v }

func TestLayout_BuildAndMarshal(t *testing.T) {
	l := streamdeck.NewLayout("volume").
		AddText(streamdeck.LayoutItem{Key: "title", Rect: streamdeck.Rect{16, 10, 136, 24}, Value: "Volume"}).
		AddBar(streamdeck.LayoutItem{Key: "level", Rect: streamdeck.Rect{16, 60, 168, 20}, Value: 40, ZOrder: intPtr(1)})
	require.NoError(t, l.Validate())
	assert.Equal(t, "layouts/volume.json", l.Path())

	data, err := l.MarshalIndent()
	require.NoError(t, err)
	assert.Equal(t, "text", gjson.GetBytes(data, "items.0.type").String())
	assert.Equal(t, "bar", gjson.GetBytes(data, "items.1.type").String())
	assert.Equal(t, int64(40), gjson.GetBytes(data, "items.1.value").Int())
	assert.False(t, gjson.GetBytes(data, "items.0.zOrder").Exists())

	parsed, err := streamdeck.ParseLayout(data)
	require.NoError(t, err)
	assert.Equal(t, "volume", parsed.ID)
	assert.Len(t, parsed.Items, 2)
}

func TestLayout_Validate(t *testing.T) {
	opacity := 1.5
	tests := []struct {
		name string
		item streamdeck.LayoutItem
		msg  string
	}{
		{
			name: "missing key",
			item: streamdeck.LayoutItem{Type: streamdeck.ItemText, Rect: streamdeck.Rect{0, 0, 10, 10}},
			msg:  "key is required",
		},
		{
			name: "unknown type",
			item: streamdeck.LayoutItem{Key: "a", Type: "slider", Rect: streamdeck.Rect{0, 0, 10, 10}},
			msg:  `unknown type "slider"`,
		},
		{
			name: "rect overflows the segment",
			item: streamdeck.LayoutItem{Key: "a", Type: streamdeck.ItemBar, Rect: streamdeck.Rect{150, 0, 100, 10}},
			msg:  "outside 200x100",
		},
		{
			name: "zero width",
			item: streamdeck.LayoutItem{Key: "a", Type: streamdeck.ItemBar, Rect: streamdeck.Rect{0, 0, 0, 10}},
			msg:  "outside 200x100",
		},
		{
			name: "z order out of range",
			item: streamdeck.LayoutItem{Key: "a", Type: streamdeck.ItemText, Rect: streamdeck.Rect{0, 0, 10, 10}, ZOrder: intPtr(701)},
			msg:  "zOrder 701",
		},
		{
			name: "opacity out of range",
			item: streamdeck.LayoutItem{Key: "a", Type: streamdeck.ItemText, Rect: streamdeck.Rect{0, 0, 10, 10}, Opacity: &opacity},
			msg:  "opacity 1.5",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := &streamdeck.Layout{ID: "x", Items: []streamdeck.LayoutItem{tt.item}}
			err := l.Validate()
			errutil.AssertErrorCode(t, err, streamdeck.CodeInvalidLayout)
			errutil.AssertErrorMessage(t, err, tt.msg)
		})
	}
}

func TestLayout_DuplicateKeys(t *testing.T) {
	l := streamdeck.NewLayout("dup").
		AddText(streamdeck.LayoutItem{Key: "a", Rect: streamdeck.Rect{0, 0, 10, 10}}).
		AddPixmap(streamdeck.LayoutItem{Key: "a", Rect: streamdeck.Rect{0, 0, 10, 10}})
	errutil.AssertErrorMessage(t, l.Validate(), `duplicate item key "a"`)
}

func TestParseLayout_InvalidJSON(t *testing.T) {
	_, err := streamdeck.ParseLayout([]byte(`{"id":`))
	errutil.AssertErrorCode(t, err, streamdeck.CodeInvalidLayout)
}
