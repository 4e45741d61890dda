// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bundle

import (
	"context"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/samber/oops"
	"github.com/valyala/bytebufferpool"

	"github.com/holomush/deckkit/pkg/streamdeck"
)

// CoreBuild describes one build of the plugin binary.
type CoreBuild struct {
	// Dir is the directory the build runs in (the project root).
	Dir string
	// Package is the main package, relative to Dir ("./src").
	Package string
	Output  string
	GOOS    string
	GOARCH  string
	Dev     bool
}

// InspectorBuild describes one run of the inspector compiler.
type InspectorBuild struct {
	Dir     string
	OutDir  string
	Entries []string
	Dev     bool
}

// Compiler turns sources into host-loadable artifacts.
type Compiler interface {
	CompileCore(ctx context.Context, b CoreBuild) error
	CompileInspectors(ctx context.Context, b InspectorBuild) error
}

// Describer runs a compiled plugin binary in describe mode.
type Describer interface {
	Describe(ctx context.Context, binary string) ([]byte, error)
}

// ExecCompiler builds with the go tool and an external inspector compiler.
type ExecCompiler struct {
	// GoTool defaults to "go".
	GoTool string
	// Inspector is the inspector compiler command line with {out}, {dev}
	// and {entries} placeholders.
	Inspector []string
}

// CompileCore runs go build with the build mode linked in.
func (c *ExecCompiler) CompileCore(ctx context.Context, b CoreBuild) error {
	tool := c.GoTool
	if tool == "" {
		tool = "go"
	}
	mode := streamdeck.ModeProduction
	if b.Dev {
		mode = streamdeck.ModeDevelopment
	}
	ldflags := "-X " + streamdeck.BuildModeVar + "=" + string(mode)
	if !b.Dev {
		ldflags = "-s -w " + ldflags
	}

	cmd := exec.CommandContext(ctx, tool, "build", "-trimpath", "-ldflags", ldflags, "-o", b.Output, b.Package)
	cmd.Dir = b.Dir
	cmd.Env = append(os.Environ(), "GOOS="+b.GOOS, "GOARCH="+b.GOARCH, "CGO_ENABLED=0")
	if err := runCommand(cmd); err != nil {
		return oops.Code(CodeCompileFailed).
			With("target", b.GOOS+"/"+b.GOARCH).
			Wrapf(err, "go build for %s/%s failed", b.GOOS, b.GOARCH)
	}
	return nil
}

// CompileInspectors runs the inspector compiler once over every entry.
func (c *ExecCompiler) CompileInspectors(ctx context.Context, b InspectorBuild) error {
	args := expandInspectorArgs(c.Inspector, b)
	if len(args) == 0 {
		return oops.Code(CodeCompileFailed).Errorf("no inspector compiler configured")
	}
	cmd := exec.CommandContext(ctx, args[0], args[1:]...) //nolint:gosec // command comes from project settings
	cmd.Dir = b.Dir
	if err := runCommand(cmd); err != nil {
		return oops.Code(CodeCompileFailed).
			With("command", args[0]).
			Wrapf(err, "inspector compiler %s failed", args[0])
	}
	return nil
}

// expandInspectorArgs substitutes placeholders. A bare {entries} argument
// expands to one argument per entry.
func expandInspectorArgs(tmpl []string, b InspectorBuild) []string {
	r := strings.NewReplacer("{out}", b.OutDir, "{dev}", strconv.FormatBool(b.Dev))
	out := make([]string, 0, len(tmpl)+len(b.Entries))
	for _, arg := range tmpl {
		if arg == "{entries}" {
			out = append(out, b.Entries...)
			continue
		}
		out = append(out, r.Replace(arg))
	}
	return out
}

// ExecDescriber runs "<binary> describe".
type ExecDescriber struct{}

// Describe returns the binary's stdout.
func (ExecDescriber) Describe(ctx context.Context, binary string) ([]byte, error) {
	stdout := bytebufferpool.Get()
	defer bytebufferpool.Put(stdout)
	stderr := bytebufferpool.Get()
	defer bytebufferpool.Put(stderr)

	cmd := exec.CommandContext(ctx, binary, streamdeck.DescribeCommand) //nolint:gosec // binary was built by this pipeline
	cmd.Stdout = stdout
	cmd.Stderr = stderr
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, oops.Code(CodeDescribeFailed).Wrapf(ctx.Err(), "describe timed out")
		}
		return nil, oops.Code(CodeDescribeFailed).
			With("stderr", strings.TrimSpace(stderr.String())).
			Wrapf(err, "running the plugin in describe mode failed")
	}
	return append([]byte(nil), stdout.B...), nil
}

// runCommand runs cmd, folding its combined output into the error.
func runCommand(cmd *exec.Cmd) error {
	out := bytebufferpool.Get()
	defer bytebufferpool.Put(out)
	cmd.Stdout = out
	cmd.Stderr = out
	if err := cmd.Run(); err != nil {
		return oops.With("output", strings.TrimSpace(out.String())).Wrap(err)
	}
	return nil
}
