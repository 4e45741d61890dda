// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"context"
	"log/slog"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/deckkit/pkg/errutil"
)

// Endpoint is a dispatch target driven by a Runtime: a *Plugin or an
// *Inspector. The method set is unexported, so no other type satisfies it.
type Endpoint interface {
	bind(out sender, params LaunchParams)
	unbind()
	connected(ctx context.Context, d *dispatcher)
	dispatch(ctx context.Context, d *dispatcher, ev Event)
}

// scopePlugin and scopeInspector label handler runs that are not tied to
// an action.
const (
	scopePlugin    = "plugin"
	scopeInspector = "inspector"
)

// dispatcher carries what handler invocation needs from the runtime.
type dispatcher struct {
	log     *slog.Logger
	metrics *Metrics
}

// invoke runs the handler registered for name, if any. Handler errors are
// logged and never stop dispatch.
func invoke[T any](ctx context.Context, d *dispatcher, scope string, reg *Registry[T], name string, target T, ev Event) {
	fn, ok := reg.Lookup(name)
	if !ok {
		d.log.DebugContext(ctx, "no handler",
			"scope", scope, "event", ev.Name, "handler", HandlerName(name))
		return
	}

	start := time.Now()
	err := fn(ctx, target, ev)
	d.metrics.observeHandler(scope, name, time.Since(start), err)
	if err != nil {
		errutil.LogErrorContext(ctx, d.log, "handler failed",
			oops.With("scope", scope).With("event", name).Wrap(err))
	}
}

func connectedEvent() Event {
	data := []byte(`{"event":"` + EventDidConnectToSocket + `"}`)
	return NewEvent(EventDidConnectToSocket, data)
}

func (p *Plugin) bind(out sender, params LaunchParams) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = out
	p.uuid = params.UUID
	p.info = params.Info
}

func (p *Plugin) unbind() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.out = nil
}

// connected issues the initial settings fetches and raises
// didConnectToSocket on the plugin.
func (p *Plugin) connected(ctx context.Context, d *dispatcher) {
	if err := p.GetGlobalSettings(); err != nil {
		errutil.LogErrorContext(ctx, d.log, "initial global settings request failed", err)
	}
	if err := p.GetSettings(); err != nil {
		errutil.LogErrorContext(ctx, d.log, "initial settings request failed", err)
	}
	invoke(ctx, d, scopePlugin, p.handlers, EventDidConnectToSocket, p, connectedEvent())
}

// dispatch routes one inbound event. Global settings go to the plugin and
// then to every action. Frames naming an owned action go to that action,
// followed by its message catch-all. Everything else goes to the plugin.
func (p *Plugin) dispatch(ctx context.Context, d *dispatcher, ev Event) {
	if ev.Name == EventDidReceiveGlobalSettings {
		invoke(ctx, d, scopePlugin, p.handlers, ev.Name, p, ev)
		for _, a := range p.actions {
			invoke(ctx, d, a.kind.typeName, a.kind.handlers, ev.Name, a, ev)
		}
		return
	}

	a, ok := p.Action(ev.Action)
	if !ok {
		if ev.Action != "" {
			d.log.DebugContext(ctx, "frame for unknown action", "action", ev.Action, "event", ev.Name)
		}
		invoke(ctx, d, scopePlugin, p.handlers, ev.Name, p, ev)
		return
	}

	a.context = ev.Context
	a.device = ev.Device
	invoke(ctx, d, a.kind.typeName, a.kind.handlers, ev.Name, a, ev)
	invoke(ctx, d, a.kind.typeName, a.kind.handlers, EventMessage, a, ev)
}
