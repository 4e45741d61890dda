// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"path"
	"strings"
)

// ActionConfig declares an action kind.
type ActionConfig struct {
	// Type is the declared type name of the action, e.g. "MyAction". It is
	// the identity token for UUIDs, image paths and source file names.
	Type string `json:"type"`
	// Name is the human-visible action name.
	Name      string `json:"name"`
	Tooltip   string `json:"tooltip,omitempty"`
	Inspector string `json:"inspector,omitempty"`
	// SupportedInMultiActions defaults to true.
	SupportedInMultiActions *bool `json:"supportedInMultiActions,omitempty"`
	// Keypad defaults to true.
	Keypad  *bool         `json:"keypad,omitempty"`
	Encoder *Encoder      `json:"encoder,omitempty"`
	States  []StateConfig `json:"states"`
}

// ActionKind is the immutable definition shared by every instance of an
// action type. Build it once with DefineKind.
type ActionKind struct {
	typeName    string
	name        string
	tooltip     string
	inspector   string
	multiAction bool
	keypad      bool
	encoder     *Encoder
	states      []*State
	handlers    *Registry[*Action]
}

// DefineKind validates cfg and freezes it into an ActionKind.
// handlers may be nil for kinds that only react through the plugin.
func DefineKind(cfg ActionConfig, handlers *Registry[*Action]) (*ActionKind, error) {
	if cfg.Type == "" {
		return nil, invalidAction("", "action type name is required")
	}
	if strings.ContainsAny(cfg.Type, "./\\ ") {
		return nil, invalidAction(cfg.Type, "action type %q must not contain dots, slashes or spaces", cfg.Type)
	}
	if len(cfg.States) == 0 {
		return nil, invalidAction(cfg.Type, "expected the action %q to have at least 1 state", cfg.Type)
	}

	k := &ActionKind{
		typeName:    cfg.Type,
		name:        cfg.Name,
		tooltip:     cfg.Tooltip,
		inspector:   cfg.Inspector,
		multiAction: boolOr(cfg.SupportedInMultiActions, true),
		keypad:      boolOr(cfg.Keypad, true),
		handlers:    handlers,
	}
	if cfg.Encoder != nil {
		enc := *cfg.Encoder
		k.encoder = &enc
	}
	k.states = make([]*State, len(cfg.States))
	for i, sc := range cfg.States {
		k.states[i] = newState(k, sc)
	}
	return k, nil
}

// Type returns the declared type name.
func (k *ActionKind) Type() string { return k.typeName }

// Name returns the human-visible name.
func (k *ActionKind) Name() string { return k.name }

// Tooltip returns the tooltip, if any.
func (k *ActionKind) Tooltip() string { return k.tooltip }

// Inspector returns the per-action inspector document name, if any.
func (k *ActionKind) Inspector() string { return k.inspector }

// SupportedInMultiActions reports whether the action can join multi-actions.
func (k *ActionKind) SupportedInMultiActions() bool { return k.multiAction }

// Keypad reports whether the action can be placed on keys.
func (k *ActionKind) Keypad() bool { return k.keypad }

// Encoder returns the dial configuration, or nil.
func (k *ActionKind) Encoder() *Encoder { return k.encoder }

// States returns the states in declaration order.
func (k *ActionKind) States() []*State { return k.states }

// Handlers returns the handler registry.
func (k *ActionKind) Handlers() *Registry[*Action] { return k.handlers }

// ImageDir is the per-action image namespace.
func (k *ActionKind) ImageDir() string { return path.Join("images", "actions", k.typeName) }

// IconPath is the extension-less action list icon.
func (k *ActionKind) IconPath() string { return path.Join("images", "actions", k.typeName) }

// InspectorPath is the inspector document path inside the bundle, or "".
func (k *ActionKind) InspectorPath() string {
	if k.inspector == "" {
		return ""
	}
	return path.Join("inspectors", k.inspector+".html")
}

// SourceFile is the Go source file expected to define the action.
func (k *ActionKind) SourceFile() string { return path.Join("actions", k.typeName+".go") }

// Controllers lists the controller capabilities of the action.
func (k *ActionKind) Controllers() []string {
	var out []string
	if k.keypad {
		out = append(out, "Keypad")
	}
	if k.encoder != nil {
		out = append(out, "Encoder")
	}
	return out
}

func (k *ActionKind) config() ActionConfig {
	cfg := ActionConfig{
		Type:      k.typeName,
		Name:      k.name,
		Tooltip:   k.tooltip,
		Inspector: k.inspector,
		States:    make([]StateConfig, len(k.states)),
	}
	if !k.multiAction {
		cfg.SupportedInMultiActions = Bool(false)
	}
	if !k.keypad {
		cfg.Keypad = Bool(false)
	}
	if k.encoder != nil {
		enc := *k.encoder
		cfg.Encoder = &enc
	}
	for i, s := range k.states {
		cfg.States[i] = s.config()
	}
	return cfg
}

// Action is an action instance owned by a plugin. Context and Device are
// overwritten on every inbound message for the action; read them only from
// inside a handler.
type Action struct {
	kind   *ActionKind
	plugin *Plugin

	context string
	device  string
}

// NewAction creates an instance of kind.
func NewAction(kind *ActionKind) *Action {
	return &Action{kind: kind}
}

// DefineAction is DefineKind followed by NewAction.
func DefineAction(cfg ActionConfig, handlers *Registry[*Action]) (*Action, error) {
	kind, err := DefineKind(cfg, handlers)
	if err != nil {
		return nil, err
	}
	return NewAction(kind), nil
}

// Kind returns the action kind.
func (a *Action) Kind() *ActionKind { return a.kind }

// Plugin returns the owning plugin, or nil before NewPlugin adopted the action.
func (a *Action) Plugin() *Plugin { return a.plugin }

// Context returns the context of the message being handled.
func (a *Action) Context() string { return a.context }

// Device returns the device of the message being handled.
func (a *Action) Device() string { return a.device }

// ID is the case-preserved action identifier: {plugin id}.{Type}.
func (a *Action) ID() string {
	return a.plugin.ID() + "." + a.kind.typeName
}

// UUID is the action identifier registered in the manifest and matched
// against the action field of inbound frames.
func (a *Action) UUID() string {
	if a.plugin.uuidStyle == UUIDPreserveCase {
		return a.ID()
	}
	return a.plugin.ID() + "." + strings.ToLower(a.kind.typeName)
}
