// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bundle

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"

	"github.com/samber/oops"

	"github.com/holomush/deckkit/internal/config"
	"github.com/holomush/deckkit/pkg/errutil"
	"github.com/holomush/deckkit/pkg/streamdeck"
)

// preflight checks the required project files and the config document.
func (b *Bundler) preflight(ctx context.Context, r *run) error {
	for _, rel := range []string{config.DocumentFile, EntryPoint, InspectorHTML, InspectorScript, InspectorStyle} {
		if !fileExists(filepath.Join(r.srcDir, filepath.FromSlash(rel))) {
			return errMissingFile(r.display(rel))
		}
	}
	if !fileExists(r.settings.RootPath(Changelog)) {
		return errMissingFile(Changelog)
	}

	doc, err := config.LoadDocument(filepath.Join(r.srcDir, config.DocumentFile))
	if err != nil {
		return err
	}
	r.doc = doc
	r.outDir = OutputDir(r.settings, doc.ID)
	r.staging = filepath.Join(r.outDir, stagingDir)
	r.images = newImageChecker(r.outDir, r.settings.Source)
	b.log.DebugContext(ctx, "preflight passed", "plugin", doc.ID, "version", doc.Version)
	return nil
}

// compile builds binaries and inspector scripts into a staging directory,
// then flattens them into the output tree along with assets and locales.
func (b *Bundler) compile(ctx context.Context, r *run) error {
	if err := os.RemoveAll(r.outDir); err != nil {
		return errFilesystem(r.outDir, err)
	}
	if err := os.MkdirAll(r.staging, 0o755); err != nil { //nolint:gosec // bundle dirs are world readable
		return errFilesystem(r.staging, err)
	}

	pkg := "./" + filepath.ToSlash(r.settings.Source)
	type staged struct{ path, name string }
	binaries := make([]staged, 0, len(r.settings.Targets))
	for _, t := range r.settings.Targets {
		out := filepath.Join(r.staging, "core", t.GOOS+"_"+t.GOARCH, t.BinaryName())
		b.log.InfoContext(ctx, "compiling plugin", "target", t.String())
		err := b.compiler.CompileCore(ctx, CoreBuild{
			Dir:     r.settings.Root,
			Package: pkg,
			Output:  out,
			GOOS:    t.GOOS,
			GOARCH:  t.GOARCH,
			Dev:     r.settings.Dev,
		})
		if err != nil {
			return err
		}
		binaries = append(binaries, staged{path: out, name: t.BinaryName()})
	}

	r.host = filepath.Join(r.staging, "host", hostBinaryName())
	err := b.compiler.CompileCore(ctx, CoreBuild{
		Dir:     r.settings.Root,
		Package: pkg,
		Output:  r.host,
		GOOS:    runtime.GOOS,
		GOARCH:  runtime.GOARCH,
		Dev:     r.settings.Dev,
	})
	if err != nil {
		return err
	}

	entries, err := inspectorEntries(r)
	if err != nil {
		return err
	}
	inspectorOut := filepath.Join(r.staging, "inspector")
	b.log.InfoContext(ctx, "compiling inspectors", "entries", len(entries))
	err = b.compiler.CompileInspectors(ctx, InspectorBuild{
		Dir:     r.settings.Root,
		OutDir:  inspectorOut,
		Entries: entries,
		Dev:     r.settings.Dev,
	})
	if err != nil {
		return err
	}

	for _, bin := range binaries {
		if err := moveFile(bin.path, filepath.Join(r.outDir, bin.name)); err != nil {
			return oops.Code(CodeCompileFailed).Wrapf(err, "compiled plugin binary %s is missing", bin.name)
		}
	}
	if err := flattenInspectors(inspectorOut, r.outDir); err != nil {
		return err
	}

	assets, err := copyAssets(r.srcDir, r.outDir, r.settings.Assets)
	if err != nil {
		return err
	}
	locales, err := copyLocales(r.srcDir, r.settings.Source, r.outDir)
	if err != nil {
		return err
	}
	b.log.DebugContext(ctx, "copied static files", "assets", len(assets), "locales", len(locales))
	return nil
}

func hostBinaryName() string {
	if runtime.GOOS == "windows" {
		return describerName + ".exe"
	}
	return describerName
}

// inspectorEntries lists inspector.ts and inspectors/*.ts relative to the
// project root.
func inspectorEntries(r *run) ([]string, error) {
	rel := func(elem ...string) string {
		return "./" + filepath.ToSlash(filepath.Join(append([]string{r.settings.Source}, elem...)...))
	}
	entries := []string{rel(InspectorScript)}

	matches, err := filepath.Glob(filepath.Join(r.srcDir, InspectorsDir, "*.ts"))
	if err != nil {
		return nil, errFilesystem(filepath.Join(r.srcDir, InspectorsDir), err)
	}
	sort.Strings(matches)
	for _, m := range matches {
		entries = append(entries, rel(InspectorsDir, filepath.Base(m)))
	}
	return entries, nil
}

// flattenInspectors moves compiled inspector output into outDir. Files
// named inspector.* at the top of the compiler output land at the root;
// everything else lands in inspectors/, whatever its nesting, so a
// per-action inspector named "inspector" never replaces the main one.
func flattenInspectors(compiled, outDir string) error {
	return filepath.WalkDir(compiled, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errFilesystem(p, walkErr)
		}
		if d.IsDir() {
			return nil
		}
		name := d.Name()
		dst := filepath.Join(outDir, InspectorsDir, name)
		if filepath.Dir(p) == filepath.Clean(compiled) && strings.TrimSuffix(name, filepath.Ext(name)) == "inspector" {
			dst = filepath.Join(outDir, name)
		}
		return moveFile(p, dst)
	})
}

// validate loads the compiled plugin through describe mode and checks the
// graph against the project files.
func (b *Bundler) validate(ctx context.Context, r *run) error {
	dctx, cancel := context.WithTimeout(ctx, r.settings.DescribeTimeout)
	defer cancel()

	data, err := b.describer.Describe(dctx, r.host)
	if err != nil {
		return err
	}
	p, err := streamdeck.ParseDescription(data)
	if err != nil {
		return describeError(err)
	}
	r.plugin = p

	if err := validatePlugin(r); err != nil {
		return err
	}
	b.log.InfoContext(ctx, "plugin validated", "plugin", p.ID(), "actions", len(p.Actions()))
	return nil
}

// describeError separates an unreadable description from one that decodes
// but breaks a plugin graph rule, such as an action with no states. The
// latter is an authoring problem and is reported as a validation error.
func describeError(err error) error {
	code := errutil.Code(err)
	if code == "" || code == streamdeck.CodeInvalidDescription {
		return oops.Code(CodeDescribeFailed).Wrapf(err, "the compiled entry point did not describe a plugin")
	}
	return oops.Code(CodeValidation).With("rule", code).Errorf("%s", err.Error())
}

// emit writes the manifest and layouts and drops the staging directory.
func (b *Bundler) emit(ctx context.Context, r *run) error {
	if m := r.doc.StreamdeckMonitor(); !m.IsEmpty() {
		r.plugin.SetMonitor(m)
	}
	manifest, err := streamdeck.MarshalManifest(r.plugin)
	if err != nil {
		return oops.Code(CodeEmitFailed).Wrap(err)
	}
	path := filepath.Join(r.outDir, streamdeck.ManifestFile)
	if err := os.WriteFile(path, manifest, 0o644); err != nil { //nolint:gosec // bundle files are world readable
		return errFilesystem(path, err)
	}

	for _, l := range r.plugin.Layouts() {
		data, err := l.MarshalIndent()
		if err != nil {
			return oops.Code(CodeEmitFailed).Wrap(err)
		}
		dst := filepath.Join(r.outDir, filepath.FromSlash(l.Path()))
		if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil { //nolint:gosec // bundle dirs are world readable
			return errFilesystem(dst, err)
		}
		if err := os.WriteFile(dst, data, 0o644); err != nil { //nolint:gosec // bundle files are world readable
			return errFilesystem(dst, err)
		}
	}

	if err := os.RemoveAll(r.staging); err != nil {
		return errFilesystem(r.staging, err)
	}
	b.log.DebugContext(ctx, "manifest written", "path", path)
	return nil
}

// archive zips the output tree for production builds.
func (b *Bundler) archive(ctx context.Context, r *run) error {
	if r.settings.Dev {
		b.log.DebugContext(ctx, "skipping archive in development mode")
		return nil
	}
	dst := ArchivePath(r.settings, r.plugin.ID())
	if err := writeArchive(r.outDir, dst, PluginDirName(r.plugin.ID(), false)); err != nil {
		return err
	}
	r.archive = dst
	b.log.InfoContext(ctx, "archive written", "path", dst)
	return nil
}
