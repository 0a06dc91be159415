// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package validation

import (
	"errors"
	"strings"
	"testing"
)

func TestValidateDocument(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		wantErr  bool
		tooShort bool
	}{
		{"Empty", "", true, false},
		{"WhitespaceOnly", "   \n\t  ", true, false},
		{"TooShort", "A tiny draft.", true, true},
		{"ExactMinimum", strings.Repeat("a", MinDocumentLength), false, false},
		{"PaddedShort", "   short   " + strings.Repeat(" ", 100), true, true},
		{"Normal", "This draft is comfortably longer than the fifty character minimum.", false, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateDocument(tc.text)
			if tc.wantErr && err == nil {
				t.Fatal("expected an error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			var short *ErrDocumentTooShort
			if got := errors.As(err, &short); got != tc.tooShort {
				t.Errorf("ErrDocumentTooShort = %v, want %v (err: %v)", got, tc.tooShort, err)
			}
		})
	}
}

func TestValidateSchemeID(t *testing.T) {
	valid := []string{"horizon-ri-2025", "x", "a1-b2"}
	for _, s := range valid {
		if err := ValidateSchemeID(s); err != nil {
			t.Errorf("ValidateSchemeID(%q) = %v, want nil", s, err)
		}
	}

	invalid := []string{"", "Horizon", "has space", "-leading", "semi;colon", strings.Repeat("a", 64)}
	for _, s := range invalid {
		if err := ValidateSchemeID(s); err == nil {
			t.Errorf("ValidateSchemeID(%q) = nil, want error", s)
		}
	}
}
