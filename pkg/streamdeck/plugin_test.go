// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/holomush/deckkit/pkg/errutil"
	"github.com/holomush/deckkit/pkg/streamdeck"
)

func hello(t *testing.T) *streamdeck.Action {
	t.Helper()
	a, err := streamdeck.DefineAction(streamdeck.ActionConfig{
		Type:   "MyAction",
		Name:   "My Action",
		States: []streamdeck.StateConfig{{Image: "Key"}},
	}, nil)
	require.NoError(t, err)
	return a
}

func TestNewPlugin_SetsBackReference(t *testing.T) {
	a := hello(t)
	assert.Nil(t, a.Plugin())

	p, err := streamdeck.NewPlugin(streamdeck.PluginConfig{ID: "com.vendor.plug", Mode: streamdeck.ModeProduction}, a)
	require.NoError(t, err)

	assert.Same(t, p, a.Plugin())
	assert.Equal(t, []*streamdeck.Action{a}, p.Actions())
}

func TestNewPlugin_Defaults(t *testing.T) {
	p, err := streamdeck.NewPlugin(streamdeck.PluginConfig{ID: "com.vendor.plug"}, hello(t))
	require.NoError(t, err)

	assert.Equal(t, streamdeck.DefaultSDKVersion, p.SDKVersion())
	assert.Equal(t, streamdeck.DefaultMinimumSoftwareVersion, p.MinimumSoftwareVersion())
	assert.Equal(t, streamdeck.DefaultOS(), p.OS())
	assert.Equal(t, streamdeck.CurrentBuildMode(), p.Mode())
}

func TestNewPlugin_Errors(t *testing.T) {
	t.Run("no actions", func(t *testing.T) {
		_, err := streamdeck.NewPlugin(streamdeck.PluginConfig{ID: "com.vendor.plug"})
		errutil.AssertErrorCode(t, err, streamdeck.CodeNoActions)
	})

	t.Run("no id", func(t *testing.T) {
		_, err := streamdeck.NewPlugin(streamdeck.PluginConfig{}, hello(t))
		errutil.AssertErrorCode(t, err, streamdeck.CodeInvalidPlugin)
	})

	t.Run("action owned by another plugin", func(t *testing.T) {
		a := hello(t)
		_, err := streamdeck.NewPlugin(streamdeck.PluginConfig{ID: "com.vendor.first"}, a)
		require.NoError(t, err)

		_, err = streamdeck.NewPlugin(streamdeck.PluginConfig{ID: "com.vendor.second"}, a)
		errutil.AssertErrorCode(t, err, streamdeck.CodeActionOwned)
		errutil.AssertErrorContext(t, err, "owner", "com.vendor.first")
		assert.Equal(t, "com.vendor.first", a.Plugin().ID())
	})

	t.Run("duplicate action type", func(t *testing.T) {
		_, err := streamdeck.NewPlugin(streamdeck.PluginConfig{ID: "com.vendor.plug"}, hello(t), hello(t))
		errutil.AssertErrorCode(t, err, streamdeck.CodeInvalidAction)
	})

	t.Run("nil action", func(t *testing.T) {
		_, err := streamdeck.NewPlugin(streamdeck.PluginConfig{ID: "com.vendor.plug"}, nil)
		errutil.AssertErrorCode(t, err, streamdeck.CodeInvalidAction)
	})
}

func TestDefineKind_Errors(t *testing.T) {
	tests := []struct {
		name string
		cfg  streamdeck.ActionConfig
		msg  string
	}{
		{
			name: "missing type",
			cfg:  streamdeck.ActionConfig{States: []streamdeck.StateConfig{{Image: "Key"}}},
			msg:  "type name is required",
		},
		{
			name: "type with dot",
			cfg:  streamdeck.ActionConfig{Type: "My.Action", States: []streamdeck.StateConfig{{Image: "Key"}}},
			msg:  "must not contain",
		},
		{
			name: "no states",
			cfg:  streamdeck.ActionConfig{Type: "MyAction"},
			msg:  `expected the action "MyAction" to have at least 1 state`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := streamdeck.DefineKind(tt.cfg, nil)
			errutil.AssertErrorCode(t, err, streamdeck.CodeInvalidAction)
			errutil.AssertErrorMessage(t, err, tt.msg)
		})
	}
}

func TestActionKind_Defaults(t *testing.T) {
	k, err := streamdeck.DefineKind(streamdeck.ActionConfig{
		Type:   "MyAction",
		States: []streamdeck.StateConfig{{Image: "Key"}},
	}, nil)
	require.NoError(t, err)

	assert.True(t, k.SupportedInMultiActions())
	assert.True(t, k.Keypad())
	assert.Nil(t, k.Encoder())
	assert.Equal(t, []string{"Keypad"}, k.Controllers())
	assert.Equal(t, "actions/MyAction.go", k.SourceFile())
	assert.Empty(t, k.InspectorPath())

	s := k.States()[0]
	assert.Same(t, k, s.Kind())
	assert.True(t, s.ShowTitle)
	assert.Equal(t, streamdeck.DefaultFontSize, s.FontSize)
	assert.Equal(t, "images/actions/MyAction/Key", s.ImagePath())
	assert.Empty(t, s.MultiActionImagePath())
}

func TestAction_Identifiers(t *testing.T) {
	tests := []struct {
		name     string
		mode     streamdeck.BuildMode
		style    streamdeck.UUIDStyle
		wantID   string
		wantUUID string
	}{
		{
			name:     "production lower-cased",
			mode:     streamdeck.ModeProduction,
			wantID:   "com.vendor.plug.MyAction",
			wantUUID: "com.vendor.plug.myaction",
		},
		{
			name:     "production case preserved",
			mode:     streamdeck.ModeProduction,
			style:    streamdeck.UUIDPreserveCase,
			wantID:   "com.vendor.plug.MyAction",
			wantUUID: "com.vendor.plug.MyAction",
		},
		{
			name:     "development",
			mode:     streamdeck.ModeDevelopment,
			wantID:   "dev.com.vendor.plug.MyAction",
			wantUUID: "dev.com.vendor.plug.myaction",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := hello(t)
			p, err := streamdeck.NewPlugin(streamdeck.PluginConfig{
				ID:        "com.vendor.plug",
				Mode:      tt.mode,
				UUIDStyle: tt.style,
			}, a)
			require.NoError(t, err)

			assert.Equal(t, tt.wantID, a.ID())
			assert.Equal(t, tt.wantUUID, a.UUID())
			assert.Equal(t, "com.vendor.plug", p.BaseID())

			found, ok := p.Action(tt.wantUUID)
			require.True(t, ok)
			assert.Same(t, a, found)
		})
	}
}

func TestPlugin_ActionUnknownUUID(t *testing.T) {
	p := testPlugin(t, nil)
	_, ok := p.Action("com.example.test.missing")
	assert.False(t, ok)
	_, ok = p.Action("")
	assert.False(t, ok)
}

func TestEncoder(t *testing.T) {
	e := &streamdeck.Encoder{Layout: streamdeck.LayoutValue}
	assert.False(t, e.HasCustomLayout())
	assert.False(t, e.HasTriggerDescription())

	e = &streamdeck.Encoder{Layout: "layouts/meter.json", OnLongTouch: "Reset"}
	assert.True(t, e.HasCustomLayout())
	assert.True(t, e.HasTriggerDescription())
}

func TestRegistry(t *testing.T) {
	reg := streamdeck.NewRegistry[*streamdeck.Action]()
	noop := func(_ context.Context, _ *streamdeck.Action, _ streamdeck.Event) error { return nil }
	reg.On(streamdeck.EventKeyUp, noop).On(streamdeck.EventDialRotate, noop)

	_, ok := reg.Lookup(streamdeck.EventKeyUp)
	assert.True(t, ok)
	_, ok = reg.Lookup(streamdeck.EventKeyDown)
	assert.False(t, ok)
	assert.Equal(t, []string{"dialRotate", "keyUp"}, reg.Events())

	var nilReg *streamdeck.Registry[*streamdeck.Action]
	_, ok = nilReg.Lookup(streamdeck.EventKeyUp)
	assert.False(t, ok)
	assert.Empty(t, nilReg.Events())
}

func TestHandlerName(t *testing.T) {
	assert.Equal(t, "handleKeyDown", streamdeck.HandlerName("keyDown"))
	assert.Equal(t, "handleDidReceiveGlobalSettings", streamdeck.HandlerName("didReceiveGlobalSettings"))
	assert.Equal(t, "handle", streamdeck.HandlerName(""))
}
