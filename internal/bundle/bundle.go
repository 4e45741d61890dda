// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package bundle turns a plugin project into a host-loadable plugin
// directory and, for production builds, a distributable archive.
//
// A run executes preflight, compile, validate, emit and archive in order.
// The first failing stage stops the run; the output directory is left as
// that stage left it.
package bundle

import (
	"context"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/samber/oops"

	"github.com/holomush/deckkit/internal/config"
	"github.com/holomush/deckkit/internal/logging"
	"github.com/holomush/deckkit/pkg/streamdeck"
)

// Project layout, relative to the source directory unless noted.
const (
	EntryPoint      = "main.go"
	InspectorHTML   = "inspector.html"
	InspectorScript = "inspector.ts"
	InspectorStyle  = "styles/inspector.css"
	InspectorsDir   = "inspectors"
	// Changelog lives at the project root.
	Changelog = "CHANGELOG.md"
)

const (
	stagingDir    = ".build"
	pluginDirExt  = ".sdPlugin"
	archiveExt    = ".streamDeckPlugin"
	describerName = "describe"
)

// StageTiming records how long a stage took.
type StageTiming struct {
	Stage    string
	Duration time.Duration
}

// Result describes a finished run.
type Result struct {
	BuildID  string
	PluginID string
	// OutputDir is the plugin directory, build/{id}.sdPlugin.
	OutputDir string
	// ArchivePath is empty for development builds.
	ArchivePath string
	Stages      []StageTiming
}

// Option configures a Bundler.
type Option func(*Bundler)

// WithCompiler replaces the exec-based compiler.
func WithCompiler(c Compiler) Option {
	return func(b *Bundler) { b.compiler = c }
}

// WithDescriber replaces the exec-based describer.
func WithDescriber(d Describer) Option {
	return func(b *Bundler) { b.describer = d }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(b *Bundler) { b.log = l }
}

// Bundler runs the pipeline for one project.
type Bundler struct {
	settings  *config.Settings
	compiler  Compiler
	describer Describer
	log       *slog.Logger
	now       func() time.Time
}

// New creates a bundler for settings.
func New(settings *config.Settings, opts ...Option) *Bundler {
	b := &Bundler{
		settings:  settings,
		compiler:  &ExecCompiler{Inspector: settings.Inspector},
		describer: ExecDescriber{},
		log:       slog.Default(),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// run is the state shared by the stages of one pipeline run.
type run struct {
	settings *config.Settings
	doc      *config.Document
	srcDir   string
	outDir   string
	staging  string
	host     string
	plugin   *streamdeck.Plugin
	archive  string
	images   *imageChecker
}

// Run executes every stage.
func (b *Bundler) Run(ctx context.Context) (*Result, error) {
	start := b.now()
	buildID := newBuildID(start).String()
	ctx = logging.WithBuildID(ctx, buildID)

	r := &run{
		settings: b.settings,
		srcDir:   b.settings.SourcePath(),
	}
	res := &Result{BuildID: buildID}

	stages := []struct {
		name string
		fn   func(context.Context, *run) error
	}{
		{StagePreflight, b.preflight},
		{StageCompile, b.compile},
		{StageValidate, b.validate},
		{StageEmit, b.emit},
		{StageArchive, b.archive},
	}

	b.log.InfoContext(ctx, "bundling", "root", b.settings.Root, "dev", b.settings.Dev)
	for _, st := range stages {
		stageStart := b.now()
		if err := st.fn(ctx, r); err != nil {
			return nil, oops.With("stage", st.name).With("build_id", buildID).Wrap(err)
		}
		d := b.now().Sub(stageStart)
		res.Stages = append(res.Stages, StageTiming{Stage: st.name, Duration: d})
		b.log.DebugContext(ctx, "stage complete", "stage", st.name, "duration", d)
	}

	res.PluginID = r.plugin.ID()
	res.OutputDir = r.outDir
	res.ArchivePath = r.archive
	b.log.InfoContext(ctx, "bundle complete",
		"plugin", res.PluginID,
		"output", res.OutputDir,
		"archive", res.ArchivePath,
		"duration", b.now().Sub(start))
	return res, nil
}

// PluginDirName returns the output directory name for id.
func PluginDirName(id string, dev bool) string {
	if dev {
		return "dev." + id + pluginDirExt
	}
	return id + pluginDirExt
}

// OutputDir returns the plugin directory a run for id writes.
func OutputDir(s *config.Settings, id string) string {
	return s.RootPath(s.Output, PluginDirName(id, s.Dev))
}

// ArchivePath returns where the archive for id is written.
func ArchivePath(s *config.Settings, id string) string {
	return s.RootPath(s.Release, id+archiveExt)
}

func (r *run) display(rel string) string {
	return filepath.ToSlash(filepath.Join(r.settings.Source, rel))
}
