// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"bytes"
	"encoding/json"
	"strings"
	"sync"

	"github.com/invopop/jsonschema"
	"github.com/samber/oops"
	jschema "github.com/santhosh-tekuri/jsonschema/v6"

	"github.com/holomush/deckkit/pkg/streamdeck"
)

// Schema ids.
const (
	DocumentSchemaID = "https://deckkit.holomush.dev/schemas/streamdeck.schema.json"
	LayoutSchemaID   = "https://deckkit.holomush.dev/schemas/layout.schema.json"
)

var (
	documentSchema = lazySchema(GenerateDocumentSchema)
	layoutSchema   = lazySchema(GenerateLayoutSchema)
)

// GenerateDocumentSchema reflects the JSON Schema of the config document.
func GenerateDocumentSchema() ([]byte, error) {
	return generate(&Document{}, DocumentSchemaID,
		"Stream Deck plugin config",
		"Schema for src/streamdeck.json")
}

// GenerateLayoutSchema reflects the JSON Schema of touch display layout
// documents.
func GenerateLayoutSchema() ([]byte, error) {
	return generate(&streamdeck.Layout{}, LayoutSchemaID,
		"Stream Deck touch display layout",
		"Schema for src/layouts/*.json")
}

func generate(v any, id, title, description string) ([]byte, error) {
	r := jsonschema.Reflector{DoNotReference: true}
	schema := r.Reflect(v)
	schema.ID = jsonschema.ID(id)
	schema.Title = title
	schema.Description = description

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		return nil, oops.Code(CodeSchema).Wrapf(err, "marshal schema %s", id)
	}
	return data, nil
}

// ValidateDocument validates config document JSON against its schema.
func ValidateDocument(data []byte) error {
	return validate(documentSchema, data, "config document")
}

// ValidateLayout validates layout document JSON against its schema.
func ValidateLayout(data []byte) error {
	return validate(layoutSchema, data, "layout")
}

func validate(get func() (*jschema.Schema, error), data []byte, what string) error {
	if len(bytes.TrimSpace(data)) == 0 {
		return oops.Code(CodeInvalidConfig).Errorf("%s is empty", what)
	}
	inst, err := jschema.UnmarshalJSON(bytes.NewReader(data))
	if err != nil {
		return oops.Code(CodeInvalidConfig).Wrapf(err, "%s is not valid JSON", what)
	}
	sch, err := get()
	if err != nil {
		return err
	}
	if err := sch.Validate(inst); err != nil {
		return oops.Code(CodeInvalidConfig).Errorf("%s does not match its schema: %s", what, FormatSchemaError(err))
	}
	return nil
}

// lazySchema compiles the schema produced by gen once.
func lazySchema(gen func() ([]byte, error)) func() (*jschema.Schema, error) {
	return sync.OnceValues(func() (*jschema.Schema, error) {
		data, err := gen()
		if err != nil {
			return nil, err
		}
		doc, err := jschema.UnmarshalJSON(bytes.NewReader(data))
		if err != nil {
			return nil, oops.Code(CodeSchema).Wrap(err)
		}
		c := jschema.NewCompiler()
		if err := c.AddResource("schema.json", doc); err != nil {
			return nil, oops.Code(CodeSchema).Wrap(err)
		}
		sch, err := c.Compile("schema.json")
		if err != nil {
			return nil, oops.Code(CodeSchema).Wrap(err)
		}
		return sch, nil
	})
}

// FormatSchemaError flattens a validation error to one line.
func FormatSchemaError(err error) string {
	if err == nil {
		return ""
	}
	lines := strings.Split(strings.TrimSpace(err.Error()), "\n")
	for i := range lines {
		lines[i] = strings.TrimSpace(lines[i])
	}
	return strings.Join(lines, "; ")
}
