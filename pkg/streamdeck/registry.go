// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"context"
	"sort"
	"unicode"
	"unicode/utf8"
)

// HandlerFunc handles one inbound event for a dispatch target.
type HandlerFunc[T any] func(ctx context.Context, target T, ev Event) error

// Registry maps event names to handlers for one kind of dispatch target.
// It is populated while the plugin is defined and read-only once the
// runtime starts, so it carries no lock.
type Registry[T any] struct {
	handlers map[string]HandlerFunc[T]
}

// NewRegistry creates an empty registry.
func NewRegistry[T any]() *Registry[T] {
	return &Registry[T]{handlers: make(map[string]HandlerFunc[T])}
}

// On registers fn for event, replacing any previous handler.
func (r *Registry[T]) On(event string, fn HandlerFunc[T]) *Registry[T] {
	r.handlers[event] = fn
	return r
}

// Lookup returns the handler for event.
// A nil registry has no handlers.
func (r *Registry[T]) Lookup(event string) (HandlerFunc[T], bool) {
	if r == nil {
		return nil, false
	}
	fn, ok := r.handlers[event]
	return fn, ok
}

// Events returns the registered event names in sorted order.
func (r *Registry[T]) Events() []string {
	if r == nil {
		return []string{}
	}
	names := make([]string, 0, len(r.handlers))
	for name := range r.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HandlerName returns the conventional handler name for an event:
// "keyDown" becomes "handleKeyDown".
func HandlerName(event string) string {
	if event == "" {
		return "handle"
	}
	first, size := utf8.DecodeRuneInString(event)
	return "handle" + string(unicode.ToUpper(first)) + event[size:]
}
