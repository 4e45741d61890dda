// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

// Platform is an operating system the host application runs on.
type Platform string

// Supported platforms.
const (
	PlatformMac     Platform = "mac"
	PlatformWindows Platform = "windows"
)

// OS is a supported platform and the minimum version required.
type OS struct {
	Platform       Platform `json:"platform"`
	MinimumVersion string   `json:"minimumVersion"`
}

// DefaultOS is used when a plugin does not declare its OS requirements.
func DefaultOS() []OS {
	return []OS{
		{Platform: PlatformWindows, MinimumVersion: "10"},
		{Platform: PlatformMac, MinimumVersion: "10.11"},
	}
}

// Target selects which surface a title, image or alert applies to.
type Target int

// Targets understood by the host.
const (
	TargetBoth Target = iota
	TargetHardware
	TargetSoftware
)

// FontStyle is the title font style of a state.
type FontStyle string

// Font styles.
const (
	FontRegular    FontStyle = "Regular"
	FontBold       FontStyle = "Bold"
	FontItalic     FontStyle = "Italic"
	FontBoldItalic FontStyle = "Bold Italic"
)

// Alignment is the vertical title alignment of a state.
type Alignment string

// Title alignments.
const (
	AlignTop    Alignment = "top"
	AlignMiddle Alignment = "middle"
	AlignBottom Alignment = "bottom"
)

// Monitor lists applications the host should report launch/terminate events for.
type Monitor struct {
	Mac     []string `json:"mac,omitempty"`
	Windows []string `json:"windows,omitempty"`
}

// IsEmpty reports whether no application is monitored.
func (m Monitor) IsEmpty() bool {
	return len(m.Mac) == 0 && len(m.Windows) == 0
}

// Bool returns a pointer to v, for optional flags in configs.
func Bool(v bool) *bool {
	return &v
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}
