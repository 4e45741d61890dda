// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"encoding/json"

	"github.com/samber/oops"
)

// DescribeCommand is the argument that makes Main print the plugin
// description instead of connecting to the host.
const DescribeCommand = "describe"

// KindPlugin marks a description produced by a Plugin.
const KindPlugin = "plugin"

// Description is the JSON form of a plugin graph. Compiled plugin binaries
// print it when run with DescribeCommand so the bundler can inspect the
// plugin without linking it.
type Description struct {
	Kind    string         `json:"kind"`
	Plugin  PluginConfig   `json:"plugin"`
	Actions []ActionConfig `json:"actions"`
}

// Describe returns the description of p. Handlers are not part of it.
func (p *Plugin) Describe() Description {
	d := Description{
		Kind: KindPlugin,
		Plugin: PluginConfig{
			ID:                     p.id,
			Name:                   p.name,
			Author:                 p.author,
			Version:                p.version,
			Description:            p.description,
			Category:               p.category,
			URL:                    p.url,
			SDKVersion:             p.sdkVersion,
			MinimumSoftwareVersion: p.minimumSoftwareVersion,
			OS:                     p.os,
			Monitor:                p.monitor,
			Layouts:                p.layouts,
			UUIDStyle:              p.uuidStyle,
			Mode:                   p.mode,
		},
		Actions: make([]ActionConfig, len(p.actions)),
	}
	for i, a := range p.actions {
		d.Actions[i] = a.kind.config()
	}
	return d
}

// MarshalDescription encodes the description of p.
func (p *Plugin) MarshalDescription() ([]byte, error) {
	data, err := json.Marshal(p.Describe())
	if err != nil {
		return nil, oops.Code(CodeInvalidDescription).With("plugin", p.id).Wrap(err)
	}
	return data, nil
}

// FromDescription rebuilds a handler-less plugin from d.
func FromDescription(d Description) (*Plugin, error) {
	if d.Kind != KindPlugin {
		return nil, oops.Code(CodeInvalidDescription).
			With("kind", d.Kind).
			Errorf("expected a %q description, got %q", KindPlugin, d.Kind)
	}
	actions := make([]*Action, len(d.Actions))
	for i, cfg := range d.Actions {
		a, err := DefineAction(cfg, nil)
		if err != nil {
			return nil, err
		}
		actions[i] = a
	}
	return NewPlugin(d.Plugin, actions...)
}

// ParseDescription decodes data and rebuilds the plugin.
func ParseDescription(data []byte) (*Plugin, error) {
	var d Description
	if err := json.Unmarshal(data, &d); err != nil {
		return nil, oops.Code(CodeInvalidDescription).Wrap(err)
	}
	return FromDescription(d)
}
