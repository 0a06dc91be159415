// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package validation provides input validation for user-supplied review
// requests. The scoring engine itself has no minimum-length guard; every
// caller (HTTP handler, CLI) validates here before invoking it.
package validation

import (
	"fmt"
	"regexp"
	"strings"
)

// MinDocumentLength is the smallest draft the reviewer will score, in
// bytes of trimmed text. Shorter inputs are rejected with a client error
// before any scoring work happens.
const MinDocumentLength = 50

// ErrDocumentTooShort distinguishes the "unprocessable" case from plain
// bad input so the HTTP layer can map it to a distinct status code.
type ErrDocumentTooShort struct {
	Length int
}

func (e *ErrDocumentTooShort) Error() string {
	return fmt.Sprintf("document too short to review: %d characters, need at least %d",
		e.Length, MinDocumentLength)
}

// schemePattern matches rubric scheme ids: lowercase slugs with digits
// and hyphens, e.g. "horizon-ri-2025". Keeping the alphabet tight means
// scheme ids are safe to echo into logs and file names.
var schemePattern = regexp.MustCompile(`^[a-z0-9][a-z0-9\-]{0,62}$`)

// ValidateDocument rejects empty or too-short drafts.
//
// Example:
//
//	if err := validation.ValidateDocument(req.DocumentText); err != nil {
//	    // 400 or 422 depending on the error type
//	}
func ValidateDocument(text string) error {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return fmt.Errorf("document text cannot be empty")
	}
	if len(trimmed) < MinDocumentLength {
		return &ErrDocumentTooShort{Length: len(trimmed)}
	}
	return nil
}

// ValidateSchemeID validates a rubric scheme id before it is used for
// registry lookup or logging.
func ValidateSchemeID(scheme string) error {
	if scheme == "" {
		return fmt.Errorf("scheme id cannot be empty")
	}
	if !schemePattern.MatchString(scheme) {
		return fmt.Errorf("invalid scheme id format: %q (must be a lowercase slug, max 63 chars)", scheme)
	}
	return nil
}
