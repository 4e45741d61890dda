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

func testPlugin(t *testing.T, mutate func(*streamdeck.PluginConfig), actions ...streamdeck.ActionConfig) *streamdeck.Plugin {
	t.Helper()
	cfg := streamdeck.PluginConfig{
		ID:          "com.example.test",
		Name:        "Test",
		Author:      "Example",
		Version:     "1.0.0",
		Description: "A test plugin",
		Mode:        streamdeck.ModeProduction,
	}
	if mutate != nil {
		mutate(&cfg)
	}
	if len(actions) == 0 {
		actions = []streamdeck.ActionConfig{{Type: "Hello", Name: "Hello", States: []streamdeck.StateConfig{{Image: "Key"}}}}
	}
	defined := make([]*streamdeck.Action, len(actions))
	for i, ac := range actions {
		a, err := streamdeck.DefineAction(ac, nil)
		require.NoError(t, err)
		defined[i] = a
	}
	p, err := streamdeck.NewPlugin(cfg, defined...)
	require.NoError(t, err)
	return p
}

func keys(r gjson.Result) []string {
	var out []string
	r.ForEach(func(k, _ gjson.Result) bool {
		out = append(out, k.String())
		return true
	})
	return out
}

func TestMarshalManifest_MinimalPlugin(t *testing.T) {
	data, err := streamdeck.MarshalManifest(testPlugin(t, nil))
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"Author": "Example",
		"Actions": [{
			"Icon": "images/actions/Hello",
			"UUID": "com.example.test.hello",
			"Name": "Hello",
			"States": [{"Image": "images/actions/Hello/Key", "FontSize": "16"}],
			"Controllers": ["Keypad"]
		}],
		"CodePath": "plugin",
		"CodePathWin": "plugin.exe",
		"Icon": "images/plugin",
		"Name": "Test",
		"Description": "A test plugin",
		"PropertyInspectorPath": "inspector.html",
		"Version": "1.0.0",
		"SDKVersion": 2,
		"Software": {"MinimumVersion": "5.0"},
		"OS": [
			{"Platform": "windows", "MinimumVersion": "10"},
			{"Platform": "mac", "MinimumVersion": "10.11"}
		]
	}`, string(data))
}

func TestMarshalManifest_KeyOrder(t *testing.T) {
	p := testPlugin(t, func(c *streamdeck.PluginConfig) {
		c.Category = "Tools"
		c.URL = "https://example.com"
		c.Monitor = streamdeck.Monitor{Mac: []string{"com.apple.Music"}}
	})
	data, err := streamdeck.MarshalManifest(p)
	require.NoError(t, err)

	root := gjson.ParseBytes(data)
	assert.Equal(t, []string{
		"Author", "Actions", "CodePath", "CodePathWin", "Icon", "Name", "Description",
		"PropertyInspectorPath", "Version", "SDKVersion", "Software", "OS",
		"Category", "CategoryIcon", "URL", "ApplicationsToMonitor",
	}, keys(root))
	assert.Equal(t, []string{"Icon", "UUID", "Name", "States", "Controllers"}, keys(root.Get("Actions.0")))
}

func TestMarshalManifest_IsDeterministic(t *testing.T) {
	p := testPlugin(t, nil)

	first, err := streamdeck.MarshalManifest(p)
	require.NoError(t, err)
	second, err := streamdeck.MarshalManifest(p)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestCompileManifest_CategoryAddsCategoryAndIcon(t *testing.T) {
	tests := []struct {
		name     string
		category string
		want     bool
	}{
		{name: "no category", category: "", want: false},
		{name: "category set", category: "Tools", want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := testPlugin(t, func(c *streamdeck.PluginConfig) { c.Category = tt.category })
			doc, err := streamdeck.CompileManifest(p)
			require.NoError(t, err)

			_, hasCategory := doc.Get("Category")
			_, hasIcon := doc.Get("CategoryIcon")
			assert.Equal(t, tt.want, hasCategory)
			assert.Equal(t, tt.want, hasIcon)
		})
	}
}

func TestCompileManifest_ActionOptionals(t *testing.T) {
	p := testPlugin(t, nil,
		streamdeck.ActionConfig{
			Type:                    "Full",
			Name:                    "Full",
			Tooltip:                 "Does it all",
			Inspector:               "full",
			SupportedInMultiActions: streamdeck.Bool(false),
			Encoder: &streamdeck.Encoder{
				Layout:   streamdeck.LayoutIndicator,
				OnRotate: "Adjust",
				OnPush:   "Toggle",
			},
			States: []streamdeck.StateConfig{{Image: "Key"}},
		},
		streamdeck.ActionConfig{
			Type:   "Bare",
			Name:   "Bare",
			Keypad: streamdeck.Bool(false),
			States: []streamdeck.StateConfig{{Image: "Key"}},
		},
	)
	data, err := streamdeck.MarshalManifest(p)
	require.NoError(t, err)
	root := gjson.ParseBytes(data)

	full := root.Get("Actions.0")
	assert.Equal(t, []string{
		"Icon", "UUID", "Name", "States", "Controllers",
		"PropertyInspectorPath", "Tooltip", "SupportedInMultiActions", "Encoder",
	}, keys(full))
	assert.Equal(t, "inspectors/full.html", full.Get("PropertyInspectorPath").String())
	assert.False(t, full.Get("SupportedInMultiActions").Bool())
	assert.Equal(t, []string{"Keypad", "Encoder"}, values(full.Get("Controllers")))
	assert.Equal(t, []string{"layout", "TriggerDescription"}, keys(full.Get("Encoder")))
	assert.Equal(t, []string{"Rotate", "Push"}, keys(full.Get("Encoder.TriggerDescription")))

	bare := root.Get("Actions.1")
	assert.Equal(t, []string{"Icon", "UUID", "Name", "States", "Controllers"}, keys(bare))
	assert.Empty(t, bare.Get("Controllers").Array())
}

func values(r gjson.Result) []string {
	var out []string
	for _, v := range r.Array() {
		out = append(out, v.String())
	}
	return out
}

func TestCompileManifest_StateOptionals(t *testing.T) {
	p := testPlugin(t, nil, streamdeck.ActionConfig{
		Type: "Toggle",
		Name: "Toggle",
		States: []streamdeck.StateConfig{
			{
				Image:            "On",
				MultiActionImage: "OnMulti",
				Name:             "On",
				Title:            "ON",
				ShowTitle:        streamdeck.Bool(false),
				FontSize:         12,
				Underline:        true,
				FontStyle:        streamdeck.FontBold,
				Align:            streamdeck.AlignBottom,
				TitleColor:       "#ff0000",
			},
			{Image: "Off"},
		},
	})
	data, err := streamdeck.MarshalManifest(p)
	require.NoError(t, err)
	states := gjson.GetBytes(data, "Actions.0.States")

	assert.Equal(t, []string{
		"Image", "MultiActionImage", "Name", "Title", "ShowTitle", "FontSize",
		"FontUnderline", "FontStyle", "TitleAlignment", "TitleColor",
	}, keys(states.Get("0")))
	assert.Equal(t, "images/actions/Toggle/OnMulti", states.Get("0.MultiActionImage").String())
	assert.Equal(t, "12", states.Get("0.FontSize").String())
	assert.False(t, states.Get("0.ShowTitle").Bool())
	assert.Equal(t, "Bold", states.Get("0.FontStyle").String())

	assert.Equal(t, []string{"Image", "FontSize"}, keys(states.Get("1")))
	assert.Equal(t, "images/actions/Toggle/Off", states.Get("1.Image").String())
}

func TestCompileManifest_DevelopmentDecoration(t *testing.T) {
	p := testPlugin(t, func(c *streamdeck.PluginConfig) {
		c.Mode = streamdeck.ModeDevelopment
		c.Category = "Tools"
	})
	data, err := streamdeck.MarshalManifest(p)
	require.NoError(t, err)

	assert.Equal(t, "Tools (dev)", gjson.GetBytes(data, "Category").String())
	assert.Equal(t, "Hello (dev)", gjson.GetBytes(data, "Actions.0.Name").String())
	assert.Equal(t, "dev.com.example.test.hello", gjson.GetBytes(data, "Actions.0.UUID").String())
	assert.Equal(t, "Test", gjson.GetBytes(data, "Name").String())
}

func TestCompileManifest_ApplicationsToMonitor(t *testing.T) {
	p := testPlugin(t, func(c *streamdeck.PluginConfig) {
		c.Monitor = streamdeck.Monitor{Windows: []string{"spotify.exe"}}
	})
	data, err := streamdeck.MarshalManifest(p)
	require.NoError(t, err)

	assert.JSONEq(t, `{"windows":["spotify.exe"]}`, gjson.GetBytes(data, "ApplicationsToMonitor").Raw)
}

func TestCompileManifest_NilPlugin(t *testing.T) {
	_, err := streamdeck.CompileManifest(nil)
	errutil.AssertErrorCode(t, err, streamdeck.CodeInvalidPlugin)
}
