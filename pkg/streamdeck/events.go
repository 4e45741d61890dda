// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"encoding/json"

	"github.com/samber/oops"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// Inbound event names sent by the host.
const (
	EventDidReceiveSettings            = "didReceiveSettings"
	EventDidReceiveGlobalSettings      = "didReceiveGlobalSettings"
	EventKeyDown                       = "keyDown"
	EventKeyUp                         = "keyUp"
	EventWillAppear                    = "willAppear"
	EventWillDisappear                 = "willDisappear"
	EventTitleParametersDidChange      = "titleParametersDidChange"
	EventDeviceDidConnect              = "deviceDidConnect"
	EventDeviceDidDisconnect           = "deviceDidDisconnect"
	EventApplicationDidLaunch          = "applicationDidLaunch"
	EventApplicationDidTerminate       = "applicationDidTerminate"
	EventSystemDidWakeUp               = "systemDidWakeUp"
	EventPropertyInspectorDidAppear    = "propertyInspectorDidAppear"
	EventPropertyInspectorDidDisappear = "propertyInspectorDidDisappear"
	EventSendToPlugin                  = "sendToPlugin"
	EventSendToPropertyInspector       = "sendToPropertyInspector"
	EventDialRotate                    = "dialRotate"
	EventDialDown                      = "dialDown"
	EventDialUp                        = "dialUp"
	EventTouchTap                      = "touchTap"
)

// Synthetic events raised by the runtime rather than the host.
const (
	// EventDidConnectToSocket fires once, ConnectDelay after registration.
	EventDidConnectToSocket = "didConnectToSocket"
	// EventMessage receives every frame routed to an action, after the
	// event-specific handler.
	EventMessage = "message"
)

// Outbound command names.
const (
	cmdSetTitle                = "setTitle"
	cmdSetImage                = "setImage"
	cmdShowAlert               = "showAlert"
	cmdShowOK                  = "showOk"
	cmdSetSettings             = "setSettings"
	cmdGetSettings             = "getSettings"
	cmdSetGlobalSettings       = "setGlobalSettings"
	cmdGetGlobalSettings       = "getGlobalSettings"
	cmdSendToPropertyInspector = "sendToPropertyInspector"
	cmdSendToPlugin            = "sendToPlugin"
	cmdOpenURL                 = "openUrl"
	cmdLogMessage              = "logMessage"
	cmdSetState                = "setState"
	cmdSwitchToProfile         = "switchToProfile"
	cmdSetFeedback             = "setFeedback"
	cmdSetFeedbackLayout       = "setFeedbackLayout"
)

// Event is one inbound frame as seen by a handler. Data holds the
// flattened object: the payload fields plus "event". Frames without a
// payload are passed through whole.
type Event struct {
	Name    string
	Context string
	Device  string
	Action  string

	data  []byte
	frame []byte
}

// NewEvent builds an event with an already flattened data object.
// It is meant for tests that call handlers directly.
func NewEvent(name string, data []byte) Event {
	return Event{Name: name, data: data, frame: data}
}

// Get returns the value at a gjson path of the flattened data.
func (e Event) Get(path string) gjson.Result {
	return gjson.GetBytes(e.data, path)
}

// Data returns the flattened JSON object.
func (e Event) Data() []byte { return e.data }

// Frame returns the frame exactly as received.
func (e Event) Frame() []byte { return e.frame }

// Decode unmarshals the flattened data into v.
func (e Event) Decode(v any) error {
	if err := json.Unmarshal(e.data, v); err != nil {
		return oops.Code(CodeInvalidFrame).With("event", e.Name).Wrap(err)
	}
	return nil
}

// Settings unmarshals the "settings" member of the data into v.
func (e Event) Settings(v any) error {
	raw := e.Get("settings")
	if !raw.Exists() {
		return oops.Code(CodeInvalidFrame).With("event", e.Name).Errorf("event %q carries no settings", e.Name)
	}
	if err := json.Unmarshal([]byte(raw.Raw), v); err != nil {
		return oops.Code(CodeInvalidFrame).With("event", e.Name).Wrap(err)
	}
	return nil
}

// parseFrame validates an inbound frame and flattens it.
func parseFrame(frame []byte) (Event, error) {
	if !gjson.ValidBytes(frame) {
		return Event{}, oops.Code(CodeInvalidFrame).Errorf("frame is not valid JSON")
	}
	root := gjson.ParseBytes(frame)
	if !root.IsObject() {
		return Event{}, oops.Code(CodeInvalidFrame).Errorf("frame is not a JSON object")
	}
	name := root.Get("event")
	if name.Type != gjson.String || name.Str == "" {
		return Event{}, oops.Code(CodeInvalidFrame).Errorf("frame has no event name")
	}

	ev := Event{
		Name:    name.Str,
		Context: root.Get("context").String(),
		Device:  root.Get("device").String(),
		Action:  root.Get("action").String(),
		frame:   frame,
	}

	data, err := flatten(ev.Name, root)
	if err != nil {
		return Event{}, oops.Code(CodeInvalidFrame).With("event", ev.Name).Wrap(err)
	}
	ev.data = data
	return ev, nil
}

func flatten(name string, root gjson.Result) ([]byte, error) {
	if name == EventDidReceiveGlobalSettings {
		return globalSettingsData(name, root)
	}

	payload := root.Get("payload")
	if !payload.IsObject() {
		return payloadlessData(name, root)
	}
	data := []byte(payload.Raw)
	if payload.Get("event").Exists() {
		return data, nil
	}
	return sjson.SetBytes(data, "event", name)
}

// payloadlessFields are the top-level fields kept from frames that carry
// no payload object. Routing fields such as action and context stay on
// Event.
var payloadlessFields = []string{"device", "deviceInfo", "application"}

// payloadlessData reduces a frame without a payload to {"event": ...}
// plus the known device and application fields.
func payloadlessData(name string, root gjson.Result) ([]byte, error) {
	data, err := sjson.SetBytes([]byte(`{}`), "event", name)
	if err != nil {
		return nil, err
	}
	for _, field := range payloadlessFields {
		v := root.Get(field)
		if !v.Exists() {
			continue
		}
		if data, err = sjson.SetRawBytes(data, field, []byte(v.Raw)); err != nil {
			return nil, err
		}
	}
	return data, nil
}

// globalSettingsData reduces a global settings frame to
// {"event": ..., "settings": ...}.
func globalSettingsData(name string, root gjson.Result) ([]byte, error) {
	data, err := sjson.SetBytes([]byte(`{}`), "event", name)
	if err != nil {
		return nil, err
	}
	settings := root.Get("payload.settings")
	if !settings.Exists() {
		return data, nil
	}
	return sjson.SetRawBytes(data, "settings", []byte(settings.Raw))
}

// Coordinates locate a key or dial on the device.
type Coordinates struct {
	Column int `json:"column"`
	Row    int `json:"row"`
}

// KeyEvent is the data of keyDown, keyUp, willAppear and willDisappear.
type KeyEvent struct {
	Event            string          `json:"event"`
	Settings         json.RawMessage `json:"settings"`
	Coordinates      Coordinates     `json:"coordinates"`
	Controller       string          `json:"controller,omitempty"`
	State            int             `json:"state"`
	UserDesiredState int             `json:"userDesiredState,omitempty"`
	IsInMultiAction  bool            `json:"isInMultiAction"`
}

// SettingsEvent is the data of didReceiveSettings.
type SettingsEvent struct {
	Event           string          `json:"event"`
	Settings        json.RawMessage `json:"settings"`
	Coordinates     Coordinates     `json:"coordinates"`
	IsInMultiAction bool            `json:"isInMultiAction"`
}

// GlobalSettingsEvent is the data of didReceiveGlobalSettings.
type GlobalSettingsEvent struct {
	Event    string          `json:"event"`
	Settings json.RawMessage `json:"settings"`
}

// TitleParameters describe how the host renders a title.
type TitleParameters struct {
	FontFamily     string    `json:"fontFamily"`
	FontSize       int       `json:"fontSize"`
	FontStyle      string    `json:"fontStyle"`
	FontUnderline  bool      `json:"fontUnderline"`
	ShowTitle      bool      `json:"showTitle"`
	TitleAlignment Alignment `json:"titleAlignment"`
	TitleColor     string    `json:"titleColor"`
}

// TitleParametersEvent is the data of titleParametersDidChange.
type TitleParametersEvent struct {
	Event           string          `json:"event"`
	Settings        json.RawMessage `json:"settings"`
	Coordinates     Coordinates     `json:"coordinates"`
	State           int             `json:"state"`
	Title           string          `json:"title"`
	TitleParameters TitleParameters `json:"titleParameters"`
}

// DeviceInfo describes a connected device.
type DeviceInfo struct {
	Name string `json:"name"`
	Type int    `json:"type"`
	Size struct {
		Columns int `json:"columns"`
		Rows    int `json:"rows"`
	} `json:"size"`
}

// DeviceEvent is the data of deviceDidConnect and deviceDidDisconnect.
// These frames have no payload, so the device fields are kept from the frame.
type DeviceEvent struct {
	Event      string     `json:"event"`
	Device     string     `json:"device"`
	DeviceInfo DeviceInfo `json:"deviceInfo"`
}

// ApplicationEvent is the data of applicationDidLaunch and
// applicationDidTerminate.
type ApplicationEvent struct {
	Event       string `json:"event"`
	Application string `json:"application"`
}

// DialEvent is the data of dialRotate, dialDown and dialUp.
type DialEvent struct {
	Event       string          `json:"event"`
	Settings    json.RawMessage `json:"settings"`
	Coordinates Coordinates     `json:"coordinates"`
	Controller  string          `json:"controller"`
	Ticks       int             `json:"ticks,omitempty"`
	Pressed     bool            `json:"pressed"`
}

// TouchEvent is the data of touchTap.
type TouchEvent struct {
	Event       string          `json:"event"`
	Settings    json.RawMessage `json:"settings"`
	Coordinates Coordinates     `json:"coordinates"`
	TapPos      [2]int          `json:"tapPos"`
	Hold        bool            `json:"hold"`
}
