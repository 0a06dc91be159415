// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

/*
This file bridges the build system and the runtime rubric. It uses the Go
embed package to bake the rubric YAML files directly into the compiled
binary, so the scoring rules are immutable at runtime and travel with the
executable. "Same draft, same score" holds across hosts because there is
no rubric file on disk to drift.
*/

package enforcement

import (
	_ "embed"
)

// HorizonRubric holds the raw bytes of the 'horizon_rubric.yaml' scheme
// definition, populated at compile time via the embed directive.
//
// Usage:
//
//	// Pass these bytes directly to yaml.Unmarshal
//	err := yaml.Unmarshal(enforcement.HorizonRubric, &rubricFile)
//
//go:embed horizon_rubric.yaml
var HorizonRubric []byte

// Rubrics lists every embedded scheme definition in registration order.
// Adding a scheme means embedding its file and appending it here; the
// registry validates each one at construction.
var Rubrics = [][]byte{
	HorizonRubric,
}
