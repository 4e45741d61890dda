// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"encoding/json"
	"path"

	"github.com/samber/oops"
	"github.com/tidwall/pretty"
)

// Built-in touch display layouts.
const (
	LayoutIcon              = "$X1"
	LayoutCanvas            = "$A0"
	LayoutValue             = "$A1"
	LayoutIndicator         = "$B1"
	LayoutGradientIndicator = "$B2"
	LayoutDoubleIndicator   = "$C1"
)

// Touch display segment size; item rects must fit inside it.
const (
	LayoutWidth  = 200
	LayoutHeight = 100
	maxZOrder    = 700
)

// ItemType identifies a layout item.
type ItemType string

// Layout item types.
const (
	ItemPlacard ItemType = "placard"
	ItemPixmap  ItemType = "pixmap"
	ItemBar     ItemType = "bar"
	ItemGBar    ItemType = "gbar"
	ItemText    ItemType = "text"
)

// Rect is an item rectangle: x, y, width, height.
type Rect [4]int

// Font is the font of a text item.
type Font struct {
	Size   int `json:"size,omitempty"`
	Weight int `json:"weight,omitempty"`
}

// LayoutItem is one element of a custom touch display layout.
// Fields not meaningful for Type are left empty.
type LayoutItem struct {
	Key        string   `json:"key"`
	Type       ItemType `json:"type"`
	Rect       Rect     `json:"rect"`
	ZOrder     *int     `json:"zOrder,omitempty"`
	Enabled    *bool    `json:"enabled,omitempty"`
	Opacity    *float64 `json:"opacity,omitempty"`
	Background string   `json:"background,omitempty"`

	// Value is a string for text and pixmap items and a number for bars.
	Value     any    `json:"value,omitempty"`
	Font      *Font  `json:"font,omitempty"`
	Color     string `json:"color,omitempty"`
	Alignment string `json:"alignment,omitempty"`

	SubType     *int   `json:"subtype,omitempty"`
	BorderWidth *int   `json:"border_w,omitempty"`
	BarBG       string `json:"bar_bg_c,omitempty"`
	BarBorder   string `json:"bar_border_c,omitempty"`
	BarFill     string `json:"bar_fill_c,omitempty"`
	BarHeight   *int   `json:"bar_h,omitempty"`
}

// Layout is a custom touch display layout document.
type Layout struct {
	ID    string       `json:"id"`
	Items []LayoutItem `json:"items"`
}

// NewLayout creates an empty layout.
func NewLayout(id string) *Layout {
	return &Layout{ID: id, Items: []LayoutItem{}}
}

// Path is where the layout document is written inside the plugin bundle.
func (l *Layout) Path() string {
	return path.Join("layouts", l.ID+".json")
}

// AddPlacard appends a placard item.
func (l *Layout) AddPlacard(item LayoutItem) *Layout { return l.add(ItemPlacard, item) }

// AddPixmap appends a pixmap item.
func (l *Layout) AddPixmap(item LayoutItem) *Layout { return l.add(ItemPixmap, item) }

// AddBar appends a bar item.
func (l *Layout) AddBar(item LayoutItem) *Layout { return l.add(ItemBar, item) }

// AddGBar appends a gradient bar item.
func (l *Layout) AddGBar(item LayoutItem) *Layout { return l.add(ItemGBar, item) }

// AddText appends a text item.
func (l *Layout) AddText(item LayoutItem) *Layout { return l.add(ItemText, item) }

func (l *Layout) add(t ItemType, item LayoutItem) *Layout {
	item.Type = t
	l.Items = append(l.Items, item)
	return l
}

// Validate checks item geometry, z-order and opacity.
func (l *Layout) Validate() error {
	if l.ID == "" {
		return oops.Code(CodeInvalidLayout).Errorf("layout id is required")
	}
	keys := make(map[string]bool, len(l.Items))
	for i, item := range l.Items {
		errb := oops.Code(CodeInvalidLayout).With("layout", l.ID).With("item", i)
		if item.Key == "" {
			return errb.Errorf("layout %q item %d: key is required", l.ID, i)
		}
		if keys[item.Key] {
			return errb.Errorf("layout %q: duplicate item key %q", l.ID, item.Key)
		}
		keys[item.Key] = true

		switch item.Type {
		case ItemPlacard, ItemPixmap, ItemBar, ItemGBar, ItemText:
		default:
			return errb.Errorf("layout %q item %q: unknown type %q", l.ID, item.Key, item.Type)
		}

		x, y, w, h := item.Rect[0], item.Rect[1], item.Rect[2], item.Rect[3]
		if x < 0 || y < 0 || w <= 0 || h <= 0 || x+w > LayoutWidth || y+h > LayoutHeight {
			return errb.Errorf("layout %q item %q: rect %v outside %dx%d", l.ID, item.Key, item.Rect, LayoutWidth, LayoutHeight)
		}
		if item.ZOrder != nil && (*item.ZOrder < 0 || *item.ZOrder > maxZOrder) {
			return errb.Errorf("layout %q item %q: zOrder %d outside 0..%d", l.ID, item.Key, *item.ZOrder, maxZOrder)
		}
		if item.Opacity != nil && (*item.Opacity < 0 || *item.Opacity > 1) {
			return errb.Errorf("layout %q item %q: opacity %v outside [0,1]", l.ID, item.Key, *item.Opacity)
		}
	}
	return nil
}

// MarshalIndent encodes the layout document with two-space indentation.
func (l *Layout) MarshalIndent() ([]byte, error) {
	data, err := json.Marshal(l)
	if err != nil {
		return nil, oops.Code(CodeInvalidLayout).With("layout", l.ID).Wrap(err)
	}
	return pretty.PrettyOptions(data, &pretty.Options{Indent: "  ", Width: 80}), nil
}

// ParseLayout decodes and validates a layout document.
func ParseLayout(data []byte) (*Layout, error) {
	var l Layout
	if err := json.Unmarshal(data, &l); err != nil {
		return nil, oops.Code(CodeInvalidLayout).Wrapf(err, "invalid layout JSON")
	}
	if err := l.Validate(); err != nil {
		return nil, err
	}
	return &l, nil
}
