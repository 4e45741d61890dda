// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bundle

import (
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	"github.com/samber/oops"
	"github.com/tidwall/gjson"
)

// LocalesDir holds the locale documents inside the source directory.
const LocalesDir = "locales"

// assetMatcher matches source-relative slash paths against glob patterns.
type assetMatcher struct {
	globs []glob.Glob
}

func newAssetMatcher(patterns []string) (*assetMatcher, error) {
	m := &assetMatcher{globs: make([]glob.Glob, 0, len(patterns))}
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, oops.Code(CodeCompileFailed).With("pattern", p).Wrapf(err, "invalid asset pattern %q", p)
		}
		m.globs = append(m.globs, g)
	}
	return m, nil
}

func (m *assetMatcher) Match(rel string) bool {
	for _, g := range m.globs {
		if g.Match(rel) {
			return true
		}
	}
	return false
}

// copyAssets copies every file under srcDir matching the patterns to the
// same relative path under outDir. It returns the copied paths.
func copyAssets(srcDir, outDir string, patterns []string) ([]string, error) {
	m, err := newAssetMatcher(patterns)
	if err != nil {
		return nil, err
	}

	var copied []string
	err = filepath.WalkDir(srcDir, func(p string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return errFilesystem(p, walkErr)
		}
		if d.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(srcDir, p)
		if err != nil {
			return errFilesystem(p, err)
		}
		rel = filepath.ToSlash(rel)
		if !m.Match(rel) {
			return nil
		}
		if err := copyFile(p, filepath.Join(outDir, filepath.FromSlash(rel))); err != nil {
			return err
		}
		copied = append(copied, rel)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return copied, nil
}

// copyLocales checks each locales/*.json document and copies it to the
// root of outDir. The first malformed document stops the copy.
func copyLocales(srcDir, srcName, outDir string) ([]string, error) {
	dir := filepath.Join(srcDir, LocalesDir)
	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errFilesystem(dir, err)
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })

	var copied []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".json") {
			continue
		}
		p := filepath.Join(dir, e.Name())
		data, err := os.ReadFile(p) //nolint:gosec // path is inside the project
		if err != nil {
			return nil, errFilesystem(p, err)
		}
		if !gjson.ValidBytes(data) {
			display := path.Join(srcName, LocalesDir, e.Name())
			return nil, oops.Code(CodeInvalidLocale).
				With("path", display).
				Errorf("%s is not valid JSON", display)
		}
		if err := os.WriteFile(filepath.Join(outDir, e.Name()), data, 0o644); err != nil { //nolint:gosec // bundle files are world readable
			return nil, errFilesystem(outDir, err)
		}
		copied = append(copied, e.Name())
	}
	return copied, nil
}

// copyFile copies src to dst, creating parent directories and keeping the
// permission bits.
func copyFile(src, dst string) error {
	in, err := os.Open(src) //nolint:gosec // path is inside the project
	if err != nil {
		return errFilesystem(src, err)
	}
	defer func() { _ = in.Close() }()

	info, err := in.Stat()
	if err != nil {
		return errFilesystem(src, err)
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil { //nolint:gosec // bundle dirs are world readable
		return errFilesystem(dst, err)
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()) //nolint:gosec // destination is the output tree
	if err != nil {
		return errFilesystem(dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return errFilesystem(dst, err)
	}
	if err := out.Close(); err != nil {
		return errFilesystem(dst, err)
	}
	return nil
}

// moveFile renames src to dst, creating parent directories.
func moveFile(src, dst string) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil { //nolint:gosec // bundle dirs are world readable
		return errFilesystem(dst, err)
	}
	if err := os.Rename(src, dst); err != nil {
		return errFilesystem(src, err)
	}
	return nil
}

// fileExists reports whether p is an existing regular file.
func fileExists(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
