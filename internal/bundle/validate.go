// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bundle

import (
	"os"
	"path"
	"path/filepath"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"

	"github.com/holomush/deckkit/internal/config"
	"github.com/holomush/deckkit/pkg/streamdeck"
)

// validatePlugin checks the described plugin against the config document
// and the compiled output tree. Only action sources are looked up under
// the source directory. It stops at the first problem.
func validatePlugin(r *run) error {
	p := r.plugin

	if p.BaseID() != r.doc.ID {
		return errValidation("plugin id %q does not match %s id %q",
			p.BaseID(), r.display(config.DocumentFile), r.doc.ID)
	}
	if p.Version() == "" {
		return errValidation("plugin version is required")
	}
	if _, err := semver.StrictNewVersion(p.Version()); err != nil {
		return errValidation("plugin version %q is not a semantic version", p.Version())
	}
	if p.Version() != r.doc.Version {
		return errValidation("plugin version %q does not match %s version %q",
			p.Version(), r.display(config.DocumentFile), r.doc.Version)
	}
	if len(p.Actions()) == 0 {
		return errValidation("plugin must define at least 1 action")
	}
	if len(p.OS()) == 0 {
		return errValidation("plugin must support at least 1 OS")
	}

	if err := r.images.check(streamdeck.PluginIconPath, PluginIconSpec); err != nil {
		return err
	}
	if p.Category() != "" {
		if err := r.images.check(streamdeck.CategoryIconPath, CategoryIconSpec); err != nil {
			return err
		}
	}

	for _, l := range p.Layouts() {
		if err := l.Validate(); err != nil {
			return oops.Code(CodeValidation).Wrap(err)
		}
	}
	for _, a := range p.Actions() {
		if err := validateAction(r, a.Kind()); err != nil {
			return err
		}
	}
	return nil
}

func validateAction(r *run, k *streamdeck.ActionKind) error {
	if !fileExists(filepath.Join(r.srcDir, filepath.FromSlash(k.SourceFile()))) {
		return errMissingFile(r.display(k.SourceFile()))
	}
	if k.Name() == "" {
		return errValidation("action %q must have a name", k.Type())
	}
	if err := r.images.check(k.IconPath(), ActionIconSpec); err != nil {
		return err
	}

	if k.Inspector() != "" {
		// The compiled script is reported by its source name.
		for _, f := range []struct{ out, src string }{
			{k.Inspector() + ".html", k.Inspector() + ".html"},
			{k.Inspector() + ".js", k.Inspector() + ".ts"},
		} {
			if !fileExists(filepath.Join(r.outDir, InspectorsDir, f.out)) {
				return errMissingFile(r.display(path.Join(InspectorsDir, f.src)))
			}
		}
	}

	if enc := k.Encoder(); enc != nil && enc.HasCustomLayout() {
		if err := validateLayoutFile(r, enc.Layout); err != nil {
			return oops.With("action", k.Type()).Wrap(err)
		}
	}

	for i, s := range k.States() {
		if err := validateState(r, k, i, s); err != nil {
			return err
		}
	}
	return nil
}

func validateState(r *run, k *streamdeck.ActionKind, i int, s *streamdeck.State) error {
	if s.Image == "" {
		return oops.Code(CodeValidation).
			With("action", k.Type()).With("state", i).
			Errorf("state %d of action %q must have an image", i, k.Type())
	}
	if s.FontSize > streamdeck.MaxFontSize {
		return oops.Code(CodeValidation).
			With("action", k.Type()).With("state", i).
			Errorf("state %d of action %q has font size %d; the maximum is %d",
				i, k.Type(), s.FontSize, streamdeck.MaxFontSize)
	}
	if err := r.images.check(s.ImagePath(), KeyImageSpec); err != nil {
		return err
	}
	if s.MultiActionImage != "" {
		if err := r.images.check(s.MultiActionImagePath(), KeyImageSpec); err != nil {
			return err
		}
	}
	return nil
}

// validateLayoutFile checks a custom encoder layout document in the output
// tree.
func validateLayoutFile(r *run, rel string) error {
	p := filepath.Join(r.outDir, filepath.FromSlash(rel))
	data, err := os.ReadFile(p) //nolint:gosec // path is inside the project
	if err != nil {
		if os.IsNotExist(err) {
			return errMissingFile(r.display(rel))
		}
		return errFilesystem(p, err)
	}
	if err := config.ValidateLayout(data); err != nil {
		return oops.Code(CodeValidation).With("path", r.display(rel)).Wrapf(err, "layout %s", r.display(rel))
	}
	if _, err := streamdeck.ParseLayout(data); err != nil {
		return oops.Code(CodeValidation).With("path", r.display(rel)).Wrapf(err, "layout %s", r.display(rel))
	}
	return nil
}
