// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

// BuildMode selects production or development output.
type BuildMode string

// Build modes.
const (
	ModeProduction  BuildMode = "production"
	ModeDevelopment BuildMode = "development"
)

// buildMode is set at link time:
//
//	go build -ldflags "-X github.com/holomush/deckkit/pkg/streamdeck.buildMode=development"
var buildMode = string(ModeProduction)

// BuildModeVar is the fully qualified symbol the bundler passes to -X.
const BuildModeVar = "github.com/holomush/deckkit/pkg/streamdeck.buildMode"

// devSuffix decorates display strings of development builds.
const devSuffix = " (dev)"

// devPrefix decorates the plugin id of development builds.
const devPrefix = "dev."

// CurrentBuildMode returns the build mode compiled into the binary.
// Unknown values fall back to production.
func CurrentBuildMode() BuildMode {
	if BuildMode(buildMode) == ModeDevelopment {
		return ModeDevelopment
	}
	return ModeProduction
}

// IsDevelopment reports whether m is the development mode.
func (m BuildMode) IsDevelopment() bool {
	return m == ModeDevelopment
}
