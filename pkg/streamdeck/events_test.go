// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/deckkit/pkg/errutil"
)

func TestParseFrame_FlattensPayload(t *testing.T) {
	ev, err := parseFrame([]byte(`{"event":"keyDown","action":"com.example.test.hello","context":"c1","device":"d1","payload":{"foo":1}}`))
	require.NoError(t, err)

	assert.Equal(t, "keyDown", ev.Name)
	assert.Equal(t, "c1", ev.Context)
	assert.Equal(t, "d1", ev.Device)
	assert.Equal(t, "com.example.test.hello", ev.Action)
	assert.JSONEq(t, `{"event":"keyDown","foo":1}`, string(ev.Data()))
	assert.Equal(t, int64(1), ev.Get("foo").Int())
}

func TestParseFrame_PayloadEventWins(t *testing.T) {
	ev, err := parseFrame([]byte(`{"event":"sendToPlugin","payload":{"event":"custom","n":2}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"custom","n":2}`, string(ev.Data()))
	assert.Equal(t, "sendToPlugin", ev.Name)
}

func TestParseFrame_NoPayloadKeepsDeviceFields(t *testing.T) {
	frame := `{"event":"deviceDidConnect","device":"d1","deviceInfo":{"name":"XL","type":2,"size":{"columns":8,"rows":4}}}`
	ev, err := parseFrame([]byte(frame))
	require.NoError(t, err)
	assert.JSONEq(t, frame, string(ev.Data()))
	assert.Equal(t, "d1", ev.Device)

	var de DeviceEvent
	require.NoError(t, ev.Decode(&de))
	assert.Equal(t, "XL", de.DeviceInfo.Name)
	assert.Equal(t, 8, de.DeviceInfo.Size.Columns)
}

func TestParseFrame_NoPayloadDropsRoutingFields(t *testing.T) {
	tests := []struct {
		name  string
		frame string
		want  string
	}{
		{
			name:  "action frame without payload",
			frame: `{"event":"frobnicate","action":"com.example.test.hello","context":"c1","device":"d1"}`,
			want:  `{"event":"frobnicate","device":"d1"}`,
		},
		{
			name:  "bare event",
			frame: `{"event":"systemDidWakeUp"}`,
			want:  `{"event":"systemDidWakeUp"}`,
		},
		{
			name:  "scalar payload",
			frame: `{"event":"custom","context":"c2","payload":7}`,
			want:  `{"event":"custom"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ev, err := parseFrame([]byte(tt.frame))
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(ev.Data()))
			assert.False(t, ev.Get("context").Exists())
			assert.False(t, ev.Get("action").Exists())
		})
	}
}

func TestParseFrame_GlobalSettings(t *testing.T) {
	ev, err := parseFrame([]byte(`{"event":"didReceiveGlobalSettings","payload":{"settings":{"theme":"dark"},"ignored":true}}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"didReceiveGlobalSettings","settings":{"theme":"dark"}}`, string(ev.Data()))

	var s struct {
		Theme string `json:"theme"`
	}
	require.NoError(t, ev.Settings(&s))
	assert.Equal(t, "dark", s.Theme)
}

func TestParseFrame_GlobalSettingsWithoutSettings(t *testing.T) {
	ev, err := parseFrame([]byte(`{"event":"didReceiveGlobalSettings"}`))
	require.NoError(t, err)
	assert.JSONEq(t, `{"event":"didReceiveGlobalSettings"}`, string(ev.Data()))

	var s map[string]any
	errutil.AssertErrorCode(t, ev.Settings(&s), CodeInvalidFrame)
}

func TestParseFrame_Rejects(t *testing.T) {
	tests := []struct {
		name  string
		frame string
	}{
		{name: "not json", frame: `{"event":`},
		{name: "array", frame: `[1,2]`},
		{name: "no event", frame: `{"payload":{}}`},
		{name: "event not a string", frame: `{"event":3}`},
		{name: "empty event", frame: `{"event":""}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parseFrame([]byte(tt.frame))
			errutil.AssertErrorCode(t, err, CodeInvalidFrame)
		})
	}
}

func TestEvent_DecodeKeyEvent(t *testing.T) {
	ev, err := parseFrame([]byte(`{"event":"keyUp","context":"c","payload":{"settings":{"count":3},"coordinates":{"column":2,"row":1},"state":1,"isInMultiAction":false}}`))
	require.NoError(t, err)

	var ke KeyEvent
	require.NoError(t, ev.Decode(&ke))
	assert.Equal(t, "keyUp", ke.Event)
	assert.Equal(t, Coordinates{Column: 2, Row: 1}, ke.Coordinates)
	assert.Equal(t, 1, ke.State)
	assert.JSONEq(t, `{"count":3}`, string(ke.Settings))
}

func TestEvent_DecodeInvalid(t *testing.T) {
	ev := NewEvent("x", []byte(`{"ticks":"many"}`))
	var de DialEvent
	errutil.AssertErrorCode(t, ev.Decode(&de), CodeInvalidFrame)
}
