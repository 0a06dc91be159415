// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package datatypes defines the request and response shapes for the
// reviewer service API.
package datatypes

import (
	"github.com/AleutianAI/GrantPilot/services/rubric_engine"
)

// ReviewRequest is the body of POST /v1/reviews.
type ReviewRequest struct {
	// SchemeID selects the funding-scheme rubric, e.g. "horizon-ri-2025".
	SchemeID string `json:"schemeId" binding:"required"`

	// DocumentText is the full proposal draft in Markdown or plain text.
	DocumentText string `json:"documentText" binding:"required"`
}

// ReviewResponse wraps the scored report with request-scoped metadata.
type ReviewResponse struct {
	ReviewID string                        `json:"review_id"`
	Report   *rubric_engine.ReviewerReport `json:"report"`
}

// SchemeInfo describes one loaded rubric for GET /v1/schemes.
type SchemeInfo struct {
	Scheme    string  `json:"scheme"`
	Title     string  `json:"title"`
	Version   string  `json:"version"`
	MaxScore  float64 `json:"max_score"`
	Threshold float64 `json:"threshold"`
	MinTotal  float64 `json:"min_total"`
	Criteria  int     `json:"criteria"`
	Signals   int     `json:"signals"`
}

// SchemesResponse is the body of GET /v1/schemes.
type SchemesResponse struct {
	Schemes []SchemeInfo `json:"schemes"`
}
