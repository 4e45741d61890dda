// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"context"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/holomush/deckkit/pkg/errutil"
)

// Inspector is the endpoint of a property inspector session.
type Inspector struct {
	handlers *Registry[*Inspector]

	mu         sync.RWMutex
	out        sender
	uuid       string
	info       []byte
	actionInfo []byte
}

// NewInspector creates an inspector endpoint.
func NewInspector() *Inspector {
	return &Inspector{handlers: NewRegistry[*Inspector]()}
}

// On registers an inspector handler.
func (i *Inspector) On(event string, fn HandlerFunc[*Inspector]) *Inspector {
	i.handlers.On(event, fn)
	return i
}

// Handlers returns the handler registry.
func (i *Inspector) Handlers() *Registry[*Inspector] { return i.handlers }

// UUID returns the session uuid assigned by the host.
func (i *Inspector) UUID() string {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.uuid
}

// Info returns the raw host info document.
func (i *Inspector) Info() []byte {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.info
}

// ActionInfo returns the raw action info document.
func (i *Inspector) ActionInfo() []byte {
	i.mu.RLock()
	defer i.mu.RUnlock()
	return i.actionInfo
}

// Action returns the UUID of the action the inspector was opened for.
func (i *Inspector) Action() string {
	return gjson.GetBytes(i.ActionInfo(), "action").String()
}

func (i *Inspector) send(f outbound) error {
	i.mu.RLock()
	out := i.out
	i.mu.RUnlock()
	return sendVia(out, f)
}

// SetSettings persists settings of the inspected action, then requests
// them back.
func (i *Inspector) SetSettings(settings any) error {
	if err := i.send(outbound{Event: cmdSetSettings, Context: i.UUID(), Payload: settings}); err != nil {
		return err
	}
	return i.GetSettings()
}

// GetSettings requests the settings of the inspected action.
func (i *Inspector) GetSettings() error {
	return i.send(outbound{Event: cmdGetSettings, Context: i.UUID()})
}

// SetGlobalSettings persists plugin-wide settings, then requests them back.
func (i *Inspector) SetGlobalSettings(settings any) error {
	if err := i.send(outbound{Event: cmdSetGlobalSettings, Context: i.UUID(), Payload: settings}); err != nil {
		return err
	}
	return i.GetGlobalSettings()
}

// GetGlobalSettings requests the plugin-wide settings.
func (i *Inspector) GetGlobalSettings() error {
	return i.send(outbound{Event: cmdGetGlobalSettings, Context: i.UUID()})
}

// SendToPlugin sends payload to the plugin, which receives it as a
// sendToPlugin event for the inspected action.
func (i *Inspector) SendToPlugin(payload any) error {
	return i.send(outbound{
		Event:   cmdSendToPlugin,
		Action:  i.Action(),
		Context: i.UUID(),
		Payload: payload,
	})
}

// OpenURL opens url in the default browser.
func (i *Inspector) OpenURL(url string) error {
	return i.send(openURLFrame(url))
}

// LogMessage writes message to the host log file.
func (i *Inspector) LogMessage(message string) error {
	return i.send(logMessageFrame(message))
}

func (i *Inspector) bind(out sender, params LaunchParams) {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.out = out
	i.uuid = params.UUID
	i.info = params.Info
	i.actionInfo = params.ActionInfo
}

func (i *Inspector) unbind() {
	i.mu.Lock()
	defer i.mu.Unlock()
	i.out = nil
}

func (i *Inspector) connected(ctx context.Context, d *dispatcher) {
	if err := i.GetGlobalSettings(); err != nil {
		errutil.LogErrorContext(ctx, d.log, "initial global settings request failed", err)
	}
	if err := i.GetSettings(); err != nil {
		errutil.LogErrorContext(ctx, d.log, "initial settings request failed", err)
	}
	invoke(ctx, d, scopeInspector, i.handlers, EventDidConnectToSocket, i, connectedEvent())
}

func (i *Inspector) dispatch(ctx context.Context, d *dispatcher, ev Event) {
	invoke(ctx, d, scopeInspector, i.handlers, ev.Name, i, ev)
}
