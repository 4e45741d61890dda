// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package config loads the plugin config document (src/streamdeck.json)
// and the optional build settings (deckkit.yaml).
package config

import (
	"os"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"

	"github.com/holomush/deckkit/pkg/streamdeck"
)

// Error codes returned by this package.
const (
	CodeInvalidConfig = "INVALID_CONFIG"
	CodeSchema        = "SCHEMA"
)

// DocumentFile is the config document name inside the source directory.
const DocumentFile = "streamdeck.json"

// Monitor lists applications whose launch and termination the host
// reports to the plugin.
type Monitor struct {
	Windows []string `json:"windows,omitempty" jsonschema:"description=Windows executable names"`
	Mac     []string `json:"mac,omitempty" jsonschema:"description=macOS bundle identifiers"`
}

// Document is the plugin config document.
type Document struct {
	Schema      string  `json:"$schema,omitempty"`
	ID          string  `json:"id" jsonschema:"required,minLength=3,pattern=^[a-z0-9-]+(\\.[a-z0-9-]+)+$,description=Reverse-DNS plugin id"`
	Name        string  `json:"name" jsonschema:"required,minLength=1"`
	Version     string  `json:"version" jsonschema:"required,pattern=^[0-9]+\\.[0-9]+\\.[0-9]+"`
	Description string  `json:"description" jsonschema:"required"`
	Author      string  `json:"author" jsonschema:"required,minLength=1"`
	Category    string  `json:"category,omitempty"`
	URL         string  `json:"url,omitempty" jsonschema:"format=uri"`
	Monitor     Monitor `json:"monitor,omitempty"`
}

// StreamdeckMonitor converts the monitor lists for the manifest compiler.
func (d *Document) StreamdeckMonitor() streamdeck.Monitor {
	return streamdeck.Monitor{Mac: d.Monitor.Mac, Windows: d.Monitor.Windows}
}

// LoadDocument reads, schema-validates and decodes the document at path.
func LoadDocument(path string) (*Document, error) {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project layout
	if err != nil {
		return nil, oops.Code(CodeInvalidConfig).With("path", path).Wrapf(err, "read %s", path)
	}
	if err := ValidateDocument(data); err != nil {
		return nil, oops.With("path", path).Wrap(err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), json.Parser()); err != nil {
		return nil, oops.Code(CodeInvalidConfig).With("path", path).Wrap(err)
	}
	var doc Document
	if err := k.UnmarshalWithConf("", &doc, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, oops.Code(CodeInvalidConfig).With("path", path).Wrap(err)
	}
	return &doc, nil
}
