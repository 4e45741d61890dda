// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/samber/oops"
	"github.com/spf13/pflag"
)

// SettingsFile is the optional build settings file at the project root.
const SettingsFile = "deckkit.yaml"

// Target is one GOOS/GOARCH pair the plugin binary is built for.
type Target struct {
	GOOS   string `koanf:"goos"`
	GOARCH string `koanf:"goarch"`
}

func (t Target) String() string { return t.GOOS + "/" + t.GOARCH }

// BinaryName is the manifest-referenced file name for the target.
func (t Target) BinaryName() string {
	if t.GOOS == "windows" {
		return "plugin.exe"
	}
	return "plugin"
}

// Settings drive one pipeline run. Values come from defaults, then
// deckkit.yaml, then command line flags.
type Settings struct {
	// Root is the project root; every other path is relative to it.
	Root    string `koanf:"root"`
	Source  string `koanf:"source"`
	Output  string `koanf:"output"`
	Release string `koanf:"release"`
	Dev     bool   `koanf:"dev"`

	Targets []Target `koanf:"targets"`
	// Inspector is the inspector compiler command line. {out}, {dev} and
	// {entries} are substituted before it runs.
	Inspector []string `koanf:"inspector"`
	// Assets are glob patterns, relative to the source dir, of files copied
	// verbatim into the output tree.
	Assets          []string      `koanf:"assets"`
	DescribeTimeout time.Duration `koanf:"describe_timeout"`

	LogFormat string `koanf:"log_format"`
	LogLevel  string `koanf:"log_level"`
}

// DefaultSettings returns the settings used when nothing overrides them.
func DefaultSettings() Settings {
	return Settings{
		Root:    ".",
		Source:  "src",
		Output:  "build",
		Release: "release",
		Targets: []Target{
			{GOOS: "darwin", GOARCH: "arm64"},
			{GOOS: "windows", GOARCH: "amd64"},
		},
		Inspector: []string{
			"esbuild", "--bundle", "--format=iife", "--outdir={out}",
			"--define:__DEV__={dev}", "{entries}",
		},
		Assets: []string{
			"images/**", "styles/**", "previews/**", "layouts/**",
			"inspector.html", "inspectors/*.html",
		},
		DescribeTimeout: 30 * time.Second,
		LogFormat:       "text",
		LogLevel:        "info",
	}
}

// RegisterFlags adds the flags LoadSettings understands to flags.
func RegisterFlags(flags *pflag.FlagSet) {
	d := DefaultSettings()
	flags.String("root", d.Root, "project root directory")
	flags.Bool("dev", false, "development build: dev-prefixed id, no archive")
	flags.String("log-format", d.LogFormat, "log format (json or text)")
	flags.String("log-level", d.LogLevel, "log level (debug, info, warn, error)")
}

// LoadSettings resolves settings for the project. flags may be nil.
func LoadSettings(flags *pflag.FlagSet) (*Settings, error) {
	s := DefaultSettings()
	k := koanf.New(".")

	if flags != nil {
		if err := k.Load(flagProvider(flags, nil), nil); err != nil {
			return nil, oops.Code(CodeInvalidConfig).Wrap(err)
		}
	}
	root := k.String("root")
	if root == "" {
		root = s.Root
	}

	path := filepath.Join(root, SettingsFile)
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, oops.Code(CodeInvalidConfig).With("path", path).Wrap(err)
		}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return nil, oops.Code(CodeInvalidConfig).With("path", path).Wrap(err)
	}

	// Explicit flags win over the file.
	if flags != nil {
		if err := k.Load(flagProvider(flags, k), nil); err != nil {
			return nil, oops.Code(CodeInvalidConfig).Wrap(err)
		}
	}

	if err := k.Unmarshal("", &s); err != nil {
		return nil, oops.Code(CodeInvalidConfig).Wrap(err)
	}
	s.Root = root
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// flagProvider maps dashed flag names to the underscored settings keys.
// With k set, flags left at their default do not replace keys k holds.
func flagProvider(flags *pflag.FlagSet, k posflag.KoanfIntf) *posflag.Posflag {
	return posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, any) {
		return strings.ReplaceAll(f.Name, "-", "_"), posflag.FlagVal(flags, f)
	})
}

// Validate checks the settings for contradictions.
func (s *Settings) Validate() error {
	if s.Source == "" || s.Output == "" || s.Release == "" {
		return oops.Code(CodeInvalidConfig).Errorf("source, output and release directories must be set")
	}
	if len(s.Targets) == 0 {
		return oops.Code(CodeInvalidConfig).Errorf("at least one build target is required")
	}
	names := make(map[string]Target, len(s.Targets))
	for _, t := range s.Targets {
		if t.GOOS == "" || t.GOARCH == "" {
			return oops.Code(CodeInvalidConfig).With("target", t.String()).Errorf("target %q needs goos and goarch", t)
		}
		if prev, ok := names[t.BinaryName()]; ok {
			return oops.Code(CodeInvalidConfig).
				With("target", t.String()).
				Errorf("targets %s and %s both produce %s", prev, t, t.BinaryName())
		}
		names[t.BinaryName()] = t
	}
	if len(s.Inspector) == 0 {
		return oops.Code(CodeInvalidConfig).Errorf("inspector compiler command is required")
	}
	if s.DescribeTimeout <= 0 {
		return oops.Code(CodeInvalidConfig).Errorf("describe_timeout must be positive")
	}
	if s.LogFormat != "json" && s.LogFormat != "text" {
		return oops.Code(CodeInvalidConfig).With("log_format", s.LogFormat).Errorf("unknown log format %q", s.LogFormat)
	}
	return nil
}

// SourcePath joins elem under the source directory.
func (s *Settings) SourcePath(elem ...string) string {
	return filepath.Join(append([]string{s.Root, s.Source}, elem...)...)
}

// RootPath joins elem under the project root.
func (s *Settings) RootPath(elem ...string) string {
	return filepath.Join(append([]string{s.Root}, elem...)...)
}
