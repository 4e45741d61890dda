// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package streamdeck

import (
	"flag"
	"io"

	"github.com/samber/oops"
	"github.com/tidwall/gjson"
)

// LaunchParams are the values the host passes when it starts a plugin or
// opens an inspector.
type LaunchParams struct {
	Port          int
	UUID          string
	RegisterEvent string
	// Info is the host, device and plugin description document.
	Info []byte
	// ActionInfo describes the action an inspector was opened for.
	ActionInfo []byte
}

// ParseLaunchArgs parses the host launch arguments:
//
//	-port 28196 -pluginUUID 5A3F... -registerEvent registerPlugin -info '{...}'
//
// Inspectors additionally receive -actionInfo.
func ParseLaunchArgs(args []string) (LaunchParams, error) {
	var (
		p          LaunchParams
		info       string
		actionInfo string
	)
	fs := flag.NewFlagSet("plugin", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.IntVar(&p.Port, "port", 0, "host websocket port")
	fs.StringVar(&p.UUID, "pluginUUID", "", "session uuid")
	fs.StringVar(&p.RegisterEvent, "registerEvent", "", "registration event name")
	fs.StringVar(&info, "info", "", "host info document")
	fs.StringVar(&actionInfo, "actionInfo", "", "inspector action info")

	if err := fs.Parse(args); err != nil {
		return LaunchParams{}, oops.Code(CodeInvalidLaunchArgs).Wrap(err)
	}
	if info != "" {
		p.Info = []byte(info)
	}
	if actionInfo != "" {
		p.ActionInfo = []byte(actionInfo)
	}
	if err := p.Validate(); err != nil {
		return LaunchParams{}, err
	}
	return p, nil
}

// Validate checks that the parameters are complete.
func (p LaunchParams) Validate() error {
	if p.Port <= 0 || p.Port > 65535 {
		return oops.Code(CodeInvalidLaunchArgs).With("port", p.Port).Errorf("invalid port %d", p.Port)
	}
	if p.UUID == "" {
		return oops.Code(CodeInvalidLaunchArgs).Errorf("missing -pluginUUID")
	}
	if p.RegisterEvent == "" {
		return oops.Code(CodeInvalidLaunchArgs).Errorf("missing -registerEvent")
	}
	if len(p.Info) > 0 && !gjson.ValidBytes(p.Info) {
		return oops.Code(CodeInvalidLaunchArgs).Errorf("-info is not valid JSON")
	}
	if len(p.ActionInfo) > 0 && !gjson.ValidBytes(p.ActionInfo) {
		return oops.Code(CodeInvalidLaunchArgs).Errorf("-actionInfo is not valid JSON")
	}
	return nil
}
