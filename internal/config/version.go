// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package config

import (
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/samber/oops"
	"github.com/tidwall/gjson"
	"github.com/tidwall/pretty"
	"github.com/tidwall/sjson"
)

// ParseVersion parses a strict X.Y.Z semantic version.
func ParseVersion(v string) (*semver.Version, error) {
	parsed, err := semver.StrictNewVersion(v)
	if err != nil {
		return nil, oops.Code(CodeInvalidConfig).
			With("version", v).
			Errorf("%q is not a valid semantic version (expected X.Y.Z)", v)
	}
	return parsed, nil
}

// SetVersion returns data with its "version" member replaced. Key order
// and every other member are left as they are.
func SetVersion(data []byte, version string) ([]byte, error) {
	v, err := ParseVersion(version)
	if err != nil {
		return nil, err
	}
	if !gjson.ValidBytes(data) {
		return nil, oops.Code(CodeInvalidConfig).Errorf("config document is not valid JSON")
	}
	out, err := sjson.SetBytes(data, "version", v.String())
	if err != nil {
		return nil, oops.Code(CodeInvalidConfig).Wrap(err)
	}
	return pretty.PrettyOptions(out, &pretty.Options{Indent: "  ", Width: 80}), nil
}

// WriteVersion rewrites the version of the document at path.
func WriteVersion(path, version string) error {
	data, err := os.ReadFile(path) //nolint:gosec // path comes from the project layout
	if err != nil {
		return oops.Code(CodeInvalidConfig).With("path", path).Wrap(err)
	}
	out, err := SetVersion(data, version)
	if err != nil {
		return oops.With("path", path).Wrap(err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return oops.Code(CodeInvalidConfig).With("path", path).Wrap(err)
	}
	if err := os.WriteFile(path, out, info.Mode().Perm()); err != nil {
		return oops.Code(CodeInvalidConfig).With("path", path).Wrap(err)
	}
	return nil
}
