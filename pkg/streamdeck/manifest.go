// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"encoding/json"
	"strconv"

	"github.com/samber/oops"
	"github.com/tidwall/pretty"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Fixed paths referenced by the manifest.
const (
	CodePath              = "plugin"
	CodePathWin           = "plugin.exe"
	PluginIconPath        = "images/plugin"
	CategoryIconPath      = "images/category"
	PropertyInspectorPath = "inspector.html"
	ManifestFile          = "manifest.json"
)

// Document is an insertion-ordered JSON object. The host parses the
// manifest by exact schema, so key order is part of the output contract.
type Document = orderedmap.OrderedMap[string, any]

func newDocument() *Document {
	return orderedmap.New[string, any]()
}

// optional is one row of an optional-field table: key is written with
// value(src) only when present(src) holds. Rows are evaluated in order.
type optional[T any] struct {
	key     string
	present func(T) bool
	value   func(T) any
}

func applyOptionals[T any](doc *Document, src T, rules []optional[T]) {
	for _, r := range rules {
		if r.present(src) {
			doc.Set(r.key, r.value(src))
		}
	}
}

var pluginOptionals = []optional[*Plugin]{
	{
		key:     "Category",
		present: func(p *Plugin) bool { return p.category != "" },
		value:   func(p *Plugin) any { return p.decorate(p.category) },
	},
	{
		key:     "CategoryIcon",
		present: func(p *Plugin) bool { return p.category != "" },
		value:   func(*Plugin) any { return CategoryIconPath },
	},
	{
		key:     "URL",
		present: func(p *Plugin) bool { return p.url != "" },
		value:   func(p *Plugin) any { return p.url },
	},
	{
		key:     "ApplicationsToMonitor",
		present: func(p *Plugin) bool { return !p.monitor.IsEmpty() },
		value:   func(p *Plugin) any { return compileMonitor(p.monitor) },
	},
}

var actionOptionals = []optional[*Action]{
	{
		key:     "PropertyInspectorPath",
		present: func(a *Action) bool { return a.kind.inspector != "" },
		value:   func(a *Action) any { return a.kind.InspectorPath() },
	},
	{
		key:     "Tooltip",
		present: func(a *Action) bool { return a.kind.tooltip != "" },
		value:   func(a *Action) any { return a.kind.tooltip },
	},
	{
		key:     "SupportedInMultiActions",
		present: func(a *Action) bool { return !a.kind.multiAction },
		value:   func(a *Action) any { return a.kind.multiAction },
	},
	{
		key:     "Encoder",
		present: func(a *Action) bool { return a.kind.encoder != nil },
		value:   func(a *Action) any { return compileEncoder(a.kind.encoder) },
	},
}

var stateOptionals = []optional[*State]{
	{
		key:     "MultiActionImage",
		present: func(s *State) bool { return s.MultiActionImage != "" },
		value:   func(s *State) any { return s.MultiActionImagePath() },
	},
	{
		key:     "Name",
		present: func(s *State) bool { return s.Name != "" },
		value:   func(s *State) any { return s.Name },
	},
	{
		key:     "Title",
		present: func(s *State) bool { return s.Title != "" },
		value:   func(s *State) any { return s.Title },
	},
	{
		key:     "ShowTitle",
		present: func(s *State) bool { return !s.ShowTitle },
		value:   func(s *State) any { return s.ShowTitle },
	},
	{
		key:     "FontSize",
		present: func(s *State) bool { return s.FontSize != 0 },
		value:   func(s *State) any { return strconv.Itoa(s.FontSize) },
	},
	{
		key:     "FontUnderline",
		present: func(s *State) bool { return s.Underline },
		value:   func(s *State) any { return s.Underline },
	},
	{
		key:     "FontStyle",
		present: func(s *State) bool { return s.FontStyle != "" },
		value:   func(s *State) any { return string(s.FontStyle) },
	},
	{
		key:     "TitleAlignment",
		present: func(s *State) bool { return s.Align != "" },
		value:   func(s *State) any { return string(s.Align) },
	},
	{
		key:     "TitleColor",
		present: func(s *State) bool { return s.TitleColor != "" },
		value:   func(s *State) any { return s.TitleColor },
	},
}

var encoderOptionals = []optional[*Encoder]{
	{
		key:     "background",
		present: func(e *Encoder) bool { return e.Background != "" },
		value:   func(e *Encoder) any { return e.Background },
	},
	{
		key:     "Icon",
		present: func(e *Encoder) bool { return e.Icon != "" },
		value:   func(e *Encoder) any { return e.Icon },
	},
	{
		key:     "layout",
		present: func(e *Encoder) bool { return e.Layout != "" },
		value:   func(e *Encoder) any { return e.Layout },
	},
	{
		key:     "StackColor",
		present: func(e *Encoder) bool { return e.StackColor != "" },
		value:   func(e *Encoder) any { return e.StackColor },
	},
	{
		key:     "TriggerDescription",
		present: (*Encoder).HasTriggerDescription,
		value:   func(e *Encoder) any { return compileTriggerDescription(e) },
	},
}

var triggerOptionals = []optional[*Encoder]{
	{
		key:     "Rotate",
		present: func(e *Encoder) bool { return e.OnRotate != "" },
		value:   func(e *Encoder) any { return e.OnRotate },
	},
	{
		key:     "Push",
		present: func(e *Encoder) bool { return e.OnPush != "" },
		value:   func(e *Encoder) any { return e.OnPush },
	},
	{
		key:     "Touch",
		present: func(e *Encoder) bool { return e.OnTouch != "" },
		value:   func(e *Encoder) any { return e.OnTouch },
	},
	{
		key:     "LongTouch",
		present: func(e *Encoder) bool { return e.OnLongTouch != "" },
		value:   func(e *Encoder) any { return e.OnLongTouch },
	},
}

// CompileManifest renders the plugin into the host manifest document.
// It has no side effects and returns the same document for the same graph.
func CompileManifest(p *Plugin) (*Document, error) {
	if p == nil {
		return nil, oops.Code(CodeInvalidPlugin).Errorf("plugin is nil")
	}
	if p.id == "" {
		return nil, oops.Code(CodeInvalidPlugin).Errorf("plugin id is required")
	}
	if len(p.actions) == 0 {
		return nil, ErrNoActions(p.id)
	}

	actions := make([]*Document, len(p.actions))
	for i, a := range p.actions {
		doc, err := compileAction(a)
		if err != nil {
			return nil, err
		}
		actions[i] = doc
	}

	osList := make([]*Document, len(p.os))
	for i, o := range p.os {
		d := newDocument()
		d.Set("Platform", string(o.Platform))
		d.Set("MinimumVersion", o.MinimumVersion)
		osList[i] = d
	}

	software := newDocument()
	software.Set("MinimumVersion", p.minimumSoftwareVersion)

	doc := newDocument()
	doc.Set("Author", p.author)
	doc.Set("Actions", actions)
	doc.Set("CodePath", CodePath)
	doc.Set("CodePathWin", CodePathWin)
	doc.Set("Icon", PluginIconPath)
	doc.Set("Name", p.name)
	doc.Set("Description", p.description)
	doc.Set("PropertyInspectorPath", PropertyInspectorPath)
	doc.Set("Version", p.version)
	doc.Set("SDKVersion", p.sdkVersion)
	doc.Set("Software", software)
	doc.Set("OS", osList)
	applyOptionals(doc, p, pluginOptionals)

	return doc, nil
}

// MarshalManifest compiles the manifest and encodes it with two-space
// indentation.
func MarshalManifest(p *Plugin) ([]byte, error) {
	doc, err := CompileManifest(p)
	if err != nil {
		return nil, err
	}
	data, err := json.Marshal(doc)
	if err != nil {
		return nil, oops.Code(CodeInvalidPlugin).With("plugin", p.id).Wrap(err)
	}
	return pretty.Pretty(data), nil
}

func compileAction(a *Action) (*Document, error) {
	if a.plugin == nil {
		return nil, invalidAction(a.kind.typeName, "action %q is not attached to a plugin", a.kind.typeName)
	}
	if len(a.kind.states) == 0 {
		return nil, invalidAction(a.kind.typeName, "expected the action %q to have at least 1 state", a.kind.typeName)
	}

	states := make([]*Document, len(a.kind.states))
	for i, s := range a.kind.states {
		states[i] = compileState(s)
	}

	doc := newDocument()
	doc.Set("Icon", a.kind.IconPath())
	doc.Set("UUID", a.UUID())
	doc.Set("Name", a.plugin.decorate(a.kind.name))
	doc.Set("States", states)
	doc.Set("Controllers", a.kind.Controllers())
	applyOptionals(doc, a, actionOptionals)
	return doc, nil
}

func compileState(s *State) *Document {
	doc := newDocument()
	doc.Set("Image", s.ImagePath())
	applyOptionals(doc, s, stateOptionals)
	return doc
}

func compileEncoder(e *Encoder) *Document {
	doc := newDocument()
	applyOptionals(doc, e, encoderOptionals)
	return doc
}

func compileTriggerDescription(e *Encoder) *Document {
	doc := newDocument()
	applyOptionals(doc, e, triggerOptionals)
	return doc
}

func compileMonitor(m Monitor) *Document {
	doc := newDocument()
	if len(m.Mac) > 0 {
		doc.Set("mac", m.Mac)
	}
	if len(m.Windows) > 0 {
		doc.Set("windows", m.Windows)
	}
	return doc
}

// decorate appends the development suffix to display strings.
func (p *Plugin) decorate(s string) string {
	if p.mode.IsDevelopment() {
		return s + devSuffix
	}
	return s
}
