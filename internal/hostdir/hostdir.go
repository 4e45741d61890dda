// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

// Package hostdir locates the host application's plugin directory and
// links development builds into it.
package hostdir

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"

	"github.com/samber/oops"
)

// Error codes.
const (
	CodeUnsupportedPlatform = "UNSUPPORTED_PLATFORM"
	CodeLinkExists          = "LINK_EXISTS"
	CodeLinkFailed          = "LINK_FAILED"
)

// OverrideEnv replaces the platform default plugins directory.
const OverrideEnv = "DECKKIT_PLUGINS_DIR"

// PluginsDir returns the directory the host loads plugins from.
// OverrideEnv takes precedence over the platform default.
func PluginsDir() (string, error) {
	return pluginsDir(runtime.GOOS, os.Getenv)
}

func pluginsDir(goos string, getenv func(string) string) (string, error) {
	if dir := getenv(OverrideEnv); dir != "" {
		return dir, nil
	}
	switch goos {
	case "darwin":
		home := getenv("HOME")
		if home == "" {
			return "", oops.Code(CodeUnsupportedPlatform).Errorf("HOME is not set")
		}
		return filepath.Join(home, "Library", "Application Support", "com.elgato.StreamDeck", "Plugins"), nil
	case "windows":
		appData := getenv("APPDATA")
		if appData == "" {
			return "", oops.Code(CodeUnsupportedPlatform).Errorf("APPDATA is not set")
		}
		return filepath.Join(appData, "Elgato", "StreamDeck", "Plugins"), nil
	default:
		return "", oops.Code(CodeUnsupportedPlatform).
			With("goos", goos).
			Errorf("the host application does not run on %s; set %s to link anyway", goos, OverrideEnv)
	}
}

// Link symlinks src into pluginsDir under the same base name and returns
// the link path. An existing entry is an error unless force is set, in
// which case it is removed first.
func Link(src, pluginsDir string, force bool) (string, error) {
	target := filepath.Join(pluginsDir, filepath.Base(src))
	if _, err := os.Lstat(target); err == nil {
		if !force {
			return "", oops.Code(CodeLinkExists).
				With("path", target).
				Errorf("couldn't link the plugin because %q already exists", target)
		}
		if err := os.RemoveAll(target); err != nil {
			return "", oops.Code(CodeLinkFailed).With("path", target).Wrap(err)
		}
	}

	if err := os.MkdirAll(pluginsDir, 0o750); err != nil {
		return "", oops.Code(CodeLinkFailed).With("path", pluginsDir).Wrap(err)
	}
	abs, err := filepath.Abs(src)
	if err != nil {
		return "", oops.Code(CodeLinkFailed).With("path", src).Wrap(err)
	}
	if err := os.Symlink(abs, target); err != nil {
		return "", oops.Code(CodeLinkFailed).With("path", target).Wrap(err)
	}
	return target, nil
}

// Unlink removes the link named name from pluginsDir. A missing link is
// not an error. It reports whether anything was removed.
func Unlink(pluginsDir, name string) (bool, error) {
	target := filepath.Join(pluginsDir, name)
	if err := os.Remove(target); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return false, nil
		}
		return false, oops.Code(CodeLinkFailed).With("path", target).Wrap(err)
	}
	return true, nil
}
