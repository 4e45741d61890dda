// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

// outbound is a command frame written to the host.
type outbound struct {
	Event   string `json:"event"`
	Action  string `json:"action,omitempty"`
	Context string `json:"context,omitempty"`
	Device  string `json:"device,omitempty"`
	UUID    string `json:"uuid,omitempty"`
	Payload any    `json:"payload,omitempty"`
}

// sender writes frames to the bound channel.
type sender interface {
	send(f outbound) error
}

// displayPayload is shared by title, image and alert commands.
type displayPayload struct {
	Title  *string `json:"title,omitempty"`
	Image  *string `json:"image,omitempty"`
	Target Target  `json:"target"`
	State  *int    `json:"state,omitempty"`
}

// DisplayOption adjusts a title, image or alert command.
type DisplayOption func(*displayPayload)

// OnTarget restricts the command to the hardware or software surface.
func OnTarget(t Target) DisplayOption {
	return func(p *displayPayload) { p.Target = t }
}

// ForState applies the command to one state only instead of all states.
func ForState(state int) DisplayOption {
	return func(p *displayPayload) { p.State = &state }
}

func newDisplayPayload(opts []DisplayOption) *displayPayload {
	p := &displayPayload{Target: TargetBoth}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// sendVia writes f on s, failing when no channel is bound.
func sendVia(s sender, f outbound) error {
	if s == nil {
		return ErrNotConnected(f.Event)
	}
	return s.send(f)
}

// send writes f on the plugin's channel.
func (p *Plugin) send(f outbound) error {
	p.mu.RLock()
	out := p.out
	p.mu.RUnlock()
	return sendVia(out, f)
}

// SetSettings persists settings for the plugin session, then requests
// them back so a didReceiveSettings handler sees the stored value.
func (p *Plugin) SetSettings(settings any) error {
	if err := p.send(outbound{Event: cmdSetSettings, Context: p.UUID(), Payload: settings}); err != nil {
		return err
	}
	return p.GetSettings()
}

// GetSettings requests the plugin session settings.
func (p *Plugin) GetSettings() error {
	return p.send(outbound{Event: cmdGetSettings, Context: p.UUID()})
}

// SetGlobalSettings persists settings shared by every action, then
// requests them back.
func (p *Plugin) SetGlobalSettings(settings any) error {
	if err := p.send(outbound{Event: cmdSetGlobalSettings, Context: p.UUID(), Payload: settings}); err != nil {
		return err
	}
	return p.GetGlobalSettings()
}

// GetGlobalSettings requests the global settings.
func (p *Plugin) GetGlobalSettings() error {
	return p.send(outbound{Event: cmdGetGlobalSettings, Context: p.UUID()})
}

// OpenURL opens url in the default browser.
func (p *Plugin) OpenURL(url string) error {
	return p.send(openURLFrame(url))
}

// LogMessage writes message to the host log file.
func (p *Plugin) LogMessage(message string) error {
	return p.send(logMessageFrame(message))
}

func openURLFrame(url string) outbound {
	return outbound{Event: cmdOpenURL, Payload: map[string]string{"url": url}}
}

func logMessageFrame(message string) outbound {
	return outbound{Event: cmdLogMessage, Payload: map[string]string{"message": message}}
}

// send writes f on the owning plugin's channel.
func (a *Action) send(f outbound) error {
	if a.plugin == nil {
		return ErrNotConnected(f.Event)
	}
	return a.plugin.send(f)
}

// SetTitle sets the title of the action instance being handled.
func (a *Action) SetTitle(title string, opts ...DisplayOption) error {
	p := newDisplayPayload(opts)
	p.Title = &title
	return a.send(outbound{Event: cmdSetTitle, Context: a.context, Payload: p})
}

// SetImage sets the key image. image is a data URI or SVG string; an empty
// string restores the manifest image.
func (a *Action) SetImage(image string, opts ...DisplayOption) error {
	p := newDisplayPayload(opts)
	p.Image = &image
	return a.send(outbound{Event: cmdSetImage, Context: a.context, Payload: p})
}

// ShowAlert briefly shows the alert icon on the key.
func (a *Action) ShowAlert(opts ...DisplayOption) error {
	return a.send(outbound{Event: cmdShowAlert, Context: a.context, Payload: newDisplayPayload(opts)})
}

// ShowOK briefly shows the check mark on the key.
func (a *Action) ShowOK(opts ...DisplayOption) error {
	return a.send(outbound{Event: cmdShowOK, Context: a.context, Payload: newDisplayPayload(opts)})
}

// SetSettings persists settings for the action instance, then requests
// them back.
func (a *Action) SetSettings(settings any) error {
	if err := a.send(outbound{Event: cmdSetSettings, Context: a.context, Payload: settings}); err != nil {
		return err
	}
	return a.GetSettings()
}

// GetSettings requests the settings of the action instance.
func (a *Action) GetSettings() error {
	return a.send(outbound{Event: cmdGetSettings, Context: a.context})
}

// SetGlobalSettings persists plugin-wide settings, then requests them back.
func (a *Action) SetGlobalSettings(settings any) error {
	if a.plugin == nil {
		return ErrNotConnected(cmdSetGlobalSettings)
	}
	return a.plugin.SetGlobalSettings(settings)
}

// GetGlobalSettings requests the plugin-wide settings.
func (a *Action) GetGlobalSettings() error {
	if a.plugin == nil {
		return ErrNotConnected(cmdGetGlobalSettings)
	}
	return a.plugin.GetGlobalSettings()
}

// SendToPropertyInspector sends payload to the inspector of the action
// instance being handled.
func (a *Action) SendToPropertyInspector(payload any) error {
	if a.plugin == nil {
		return ErrNotConnected(cmdSendToPropertyInspector)
	}
	return a.send(outbound{
		Event:   cmdSendToPropertyInspector,
		Action:  a.ID(),
		Context: a.context,
		Payload: payload,
	})
}

// OpenURL opens url in the default browser.
func (a *Action) OpenURL(url string) error {
	return a.send(openURLFrame(url))
}

// LogMessage writes message to the host log file.
func (a *Action) LogMessage(message string) error {
	return a.send(logMessageFrame(message))
}

// SetState switches a multi-state action to state.
func (a *Action) SetState(state int) error {
	return a.send(outbound{Event: cmdSetState, Context: a.context, Payload: map[string]int{"state": state}})
}

// SwitchToProfile switches the current device to a profile declared in
// the manifest.
func (a *Action) SwitchToProfile(profile string) error {
	return a.send(outbound{
		Event:   cmdSwitchToProfile,
		Context: a.context,
		Device:  a.device,
		Payload: map[string]string{"profile": profile},
	})
}

// SetFeedback updates touch display layout items by key.
func (a *Action) SetFeedback(values map[string]any) error {
	return a.send(outbound{Event: cmdSetFeedback, Context: a.context, Payload: values})
}

// SetFeedbackLayout switches the touch display to a built-in layout token
// or a layout document path.
func (a *Action) SetFeedbackLayout(layout string) error {
	return a.send(outbound{Event: cmdSetFeedbackLayout, Context: a.context, Payload: map[string]string{"layout": layout}})
}
