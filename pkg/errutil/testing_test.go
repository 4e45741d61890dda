// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 HoloMUSH Contributors

package errutil_test

import (
	"testing"

	"github.com/samber/oops"

	"github.com/holomush/deckkit/pkg/errutil"
)

func TestAssertErrorCode_MatchingCode(t *testing.T) {
	err := oops.Code("IMAGE_SIZE").Errorf("wrong size")
	errutil.AssertErrorCode(t, err, "IMAGE_SIZE")
}

func TestAssertErrorContext_MatchingKeyValue(t *testing.T) {
	err := oops.With("action", "Hello").Errorf("no states")
	errutil.AssertErrorContext(t, err, "action", "Hello")
}

func TestAssertErrorCode_DeepestCodeWins(t *testing.T) {
	inner := oops.Code("INVALID_LAYOUT").Errorf("rect outside 200x100")
	err := oops.Code("VALIDATION").With("stage", "validate").Wrap(inner)
	errutil.AssertErrorCode(t, err, "INVALID_LAYOUT")
	errutil.AssertErrorContext(t, err, "stage", "validate")
}

func TestAssertErrorMessage_AllFragments(t *testing.T) {
	err := oops.Errorf("state 0 of action %q: font size %d exceeds %d", "Hello", 20, 18)
	errutil.AssertErrorMessage(t, err, `action "Hello"`, "font size 20", "18")
}
