// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"sync"

	"github.com/samber/oops"
)

// UUIDStyle selects how action type names are folded into action UUIDs.
type UUIDStyle int

// UUID styles. The host matches actions by the manifest UUID, so the same
// style is used for the manifest and for inbound frame matching.
const (
	UUIDLowerCase UUIDStyle = iota
	UUIDPreserveCase
)

// Defaults applied by NewPlugin.
const (
	DefaultSDKVersion             = 2
	DefaultMinimumSoftwareVersion = "5.0"
)

// PluginConfig declares a plugin. Field names follow the config document
// so a parsed streamdeck.json can be passed straight through.
type PluginConfig struct {
	ID                     string    `json:"id"`
	Name                   string    `json:"name"`
	Author                 string    `json:"author"`
	Version                string    `json:"version"`
	Description            string    `json:"description"`
	Category               string    `json:"category,omitempty"`
	URL                    string    `json:"url,omitempty"`
	SDKVersion             int       `json:"sdkVersion,omitempty"`
	MinimumSoftwareVersion string    `json:"minimumSoftwareVersion,omitempty"`
	OS                     []OS      `json:"os,omitempty"`
	Monitor                Monitor   `json:"monitor,omitempty"`
	Layouts                []*Layout `json:"layouts,omitempty"`
	UUIDStyle              UUIDStyle `json:"uuidStyle,omitempty"`
	// Mode overrides the compiled-in build mode when set.
	Mode BuildMode `json:"mode,omitempty"`
}

// Plugin is the root of the entity graph. It owns its actions; each action
// points back at it.
type Plugin struct {
	id                     string
	name                   string
	author                 string
	version                string
	description            string
	category               string
	url                    string
	sdkVersion             int
	minimumSoftwareVersion string
	os                     []OS
	monitor                Monitor
	layouts                []*Layout
	uuidStyle              UUIDStyle
	mode                   BuildMode
	actions                []*Action

	handlers *Registry[*Plugin]

	// Runtime channel and session uuid, bound by the runtime.
	mu   sync.RWMutex
	out  sender
	uuid string
	info []byte
}

// NewPlugin builds a plugin and adopts actions, setting their plugin
// back-reference. It fails when actions is empty or an action already
// belongs to another plugin.
func NewPlugin(cfg PluginConfig, actions ...*Action) (*Plugin, error) {
	if cfg.ID == "" {
		return nil, oops.Code(CodeInvalidPlugin).Errorf("plugin id is required")
	}
	if len(actions) == 0 {
		return nil, ErrNoActions(cfg.ID)
	}

	p := &Plugin{
		id:                     cfg.ID,
		name:                   cfg.Name,
		author:                 cfg.Author,
		version:                cfg.Version,
		description:            cfg.Description,
		category:               cfg.Category,
		url:                    cfg.URL,
		sdkVersion:             cfg.SDKVersion,
		minimumSoftwareVersion: cfg.MinimumSoftwareVersion,
		os:                     append([]OS(nil), cfg.OS...),
		monitor:                cfg.Monitor,
		layouts:                append([]*Layout(nil), cfg.Layouts...),
		uuidStyle:              cfg.UUIDStyle,
		mode:                   cfg.Mode,
		handlers:               NewRegistry[*Plugin](),
	}
	if p.sdkVersion == 0 {
		p.sdkVersion = DefaultSDKVersion
	}
	if p.minimumSoftwareVersion == "" {
		p.minimumSoftwareVersion = DefaultMinimumSoftwareVersion
	}
	if len(p.os) == 0 {
		p.os = DefaultOS()
	}
	if p.mode == "" {
		p.mode = CurrentBuildMode()
	}

	seen := make(map[string]bool, len(actions))
	for _, a := range actions {
		if a == nil || a.kind == nil {
			return nil, invalidAction("", "nil action passed to plugin %q", cfg.ID)
		}
		if a.plugin != nil {
			return nil, ErrActionOwned(a.kind.typeName, a.plugin.id)
		}
		if seen[a.kind.typeName] {
			return nil, invalidAction(a.kind.typeName, "duplicate action type %q", a.kind.typeName)
		}
		seen[a.kind.typeName] = true
	}
	for _, a := range actions {
		a.plugin = p
	}
	p.actions = append([]*Action(nil), actions...)

	return p, nil
}

// ID returns the plugin id, prefixed with "dev." in development builds.
func (p *Plugin) ID() string {
	if p.mode.IsDevelopment() {
		return devPrefix + p.id
	}
	return p.id
}

// BaseID returns the undecorated plugin id.
func (p *Plugin) BaseID() string { return p.id }

// Name returns the display name.
func (p *Plugin) Name() string { return p.name }

// Author returns the author.
func (p *Plugin) Author() string { return p.author }

// Version returns the plugin version.
func (p *Plugin) Version() string { return p.version }

// Description returns the store description.
func (p *Plugin) Description() string { return p.description }

// Category returns the undecorated category.
func (p *Plugin) Category() string { return p.category }

// URL returns the information URL.
func (p *Plugin) URL() string { return p.url }

// SDKVersion returns the host SDK version.
func (p *Plugin) SDKVersion() int { return p.sdkVersion }

// MinimumSoftwareVersion returns the minimum host software version.
func (p *Plugin) MinimumSoftwareVersion() string { return p.minimumSoftwareVersion }

// OS returns the supported platforms.
func (p *Plugin) OS() []OS { return p.os }

// Mode returns the build mode of the plugin.
func (p *Plugin) Mode() BuildMode { return p.mode }

// Actions returns the actions in definition order.
func (p *Plugin) Actions() []*Action { return p.actions }

// Layouts returns the custom layouts shipped with the plugin.
func (p *Plugin) Layouts() []*Layout { return p.layouts }

// Monitor returns the applications the host reports events for.
func (p *Plugin) Monitor() Monitor { return p.monitor }

// SetMonitor replaces the monitored applications list. The bundler uses it
// to inject the list from the config document before compiling the manifest.
func (p *Plugin) SetMonitor(m Monitor) { p.monitor = m }

// Handlers returns the plugin-level handler registry.
func (p *Plugin) Handlers() *Registry[*Plugin] { return p.handlers }

// On registers a plugin-level handler.
func (p *Plugin) On(event string, fn HandlerFunc[*Plugin]) *Plugin {
	p.handlers.On(event, fn)
	return p
}

// Action returns the action whose UUID matches uuid.
func (p *Plugin) Action(uuid string) (*Action, bool) {
	for _, a := range p.actions {
		if a.UUID() == uuid {
			return a, true
		}
	}
	return nil, false
}

// UUID returns the session uuid assigned by the host at launch.
func (p *Plugin) UUID() string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.uuid
}

// Info returns the raw launch info document supplied by the host.
func (p *Plugin) Info() []byte {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.info
}
