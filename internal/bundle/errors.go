// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package bundle

import (
	"github.com/samber/oops"
)

// Error codes returned by the pipeline.
const (
	CodeMissingFile    = "MISSING_FILE"
	CodeImageSize      = "IMAGE_SIZE"
	CodeInvalidImage   = "INVALID_IMAGE"
	CodeValidation     = "VALIDATION"
	CodeCompileFailed  = "COMPILE_FAILED"
	CodeInvalidLocale  = "INVALID_LOCALE"
	CodeDescribeFailed = "DESCRIBE_FAILED"
	CodeEmitFailed     = "EMIT_FAILED"
	CodeArchiveFailed  = "ARCHIVE_FAILED"
	CodeFilesystem     = "FILESYSTEM"
)

// Stage names, in execution order.
const (
	StagePreflight = "preflight"
	StageCompile   = "compile"
	StageValidate  = "validate"
	StageEmit      = "emit"
	StageArchive   = "archive"
)

func errMissingFile(display string) error {
	return oops.Code(CodeMissingFile).
		With("path", display).
		Errorf("expected %s to exist", display)
}

func errValidation(format string, args ...any) error {
	return oops.Code(CodeValidation).Errorf(format, args...)
}

func errFilesystem(path string, err error) error {
	return oops.Code(CodeFilesystem).With("path", path).Wrap(err)
}
