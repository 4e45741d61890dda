// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import "path"

// DefaultFontSize is the title font size used when a state sets none.
const DefaultFontSize = 16

// MaxFontSize is the largest title font size the host renders.
const MaxFontSize = 18

// StateConfig declares one visual state of an action.
type StateConfig struct {
	// Image is the base name of the key image under images/actions/{Type}/.
	Image string `json:"image"`
	// MultiActionImage is shown when the action sits inside a multi-action.
	MultiActionImage string `json:"multiActionImage,omitempty"`
	// Name is shown in the multi-action state dropdown; empty hides the state there.
	Name       string    `json:"name,omitempty"`
	Title      string    `json:"title,omitempty"`
	ShowTitle  *bool     `json:"showTitle,omitempty"`
	FontSize   int       `json:"fontSize,omitempty"`
	Align      Alignment `json:"align,omitempty"`
	Underline  bool      `json:"underline,omitempty"`
	FontStyle  FontStyle `json:"fontStyle,omitempty"`
	TitleColor string    `json:"titleColor,omitempty"`
}

// State is a visual state owned by an action kind.
type State struct {
	kind *ActionKind

	Image            string
	MultiActionImage string
	Name             string
	Title            string
	ShowTitle        bool
	FontSize         int
	Align            Alignment
	Underline        bool
	FontStyle        FontStyle
	TitleColor       string
}

func newState(kind *ActionKind, cfg StateConfig) *State {
	size := cfg.FontSize
	if size == 0 {
		size = DefaultFontSize
	}
	return &State{
		kind:             kind,
		Image:            cfg.Image,
		MultiActionImage: cfg.MultiActionImage,
		Name:             cfg.Name,
		Title:            cfg.Title,
		ShowTitle:        boolOr(cfg.ShowTitle, true),
		FontSize:         size,
		Align:            cfg.Align,
		Underline:        cfg.Underline,
		FontStyle:        cfg.FontStyle,
		TitleColor:       cfg.TitleColor,
	}
}

// Kind returns the action kind owning the state.
func (s *State) Kind() *ActionKind {
	return s.kind
}

// ImagePath returns the extension-less key image path.
func (s *State) ImagePath() string {
	return path.Join(s.kind.ImageDir(), s.Image)
}

// MultiActionImagePath returns the extension-less multi-action image path,
// or "" when the state has none.
func (s *State) MultiActionImagePath() string {
	if s.MultiActionImage == "" {
		return ""
	}
	return path.Join(s.kind.ImageDir(), s.MultiActionImage)
}

func (s *State) config() StateConfig {
	cfg := StateConfig{
		Image:            s.Image,
		MultiActionImage: s.MultiActionImage,
		Name:             s.Name,
		Title:            s.Title,
		FontSize:         s.FontSize,
		Align:            s.Align,
		Underline:        s.Underline,
		FontStyle:        s.FontStyle,
		TitleColor:       s.TitleColor,
	}
	if !s.ShowTitle {
		cfg.ShowTitle = Bool(false)
	}
	return cfg
}
