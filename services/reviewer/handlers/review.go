// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/AleutianAI/GrantPilot/pkg/validation"
	"github.com/AleutianAI/GrantPilot/services/reviewer/datatypes"
	"github.com/AleutianAI/GrantPilot/services/reviewer/observability"
	"github.com/AleutianAI/GrantPilot/services/rubric_engine"
)

// CreateReview scores a proposal draft against the requested scheme's
// rubric and returns the full reviewer report.
//
// # Description
//
// Validates the request body, looks up the rubric, runs the scoring
// pass, and returns the report with a fresh review id. Scoring is pure
// and deterministic, so identical submissions produce identical reports
// (modulo the review id).
//
// # Inputs
//
//   - body: datatypes.ReviewRequest (scheme id + document text)
//
// # Outputs
//
//   - 200: datatypes.ReviewResponse with the scored report
//   - 400: malformed body or invalid scheme id format
//   - 404: scheme id with no loaded rubric
//   - 422: document below the minimum scoreable length
//   - 500: internal scoring failure (registry defect)
func CreateReview(registry *rubric_engine.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req datatypes.ReviewRequest
		if err := c.BindJSON(&req); err != nil {
			observability.RecordError(observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
			return
		}

		if err := validation.ValidateSchemeID(req.SchemeID); err != nil {
			observability.RecordError(observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		if err := validation.ValidateDocument(req.DocumentText); err != nil {
			var tooShort *validation.ErrDocumentTooShort
			if errors.As(err, &tooShort) {
				observability.RecordError(observability.ErrorCodeDocumentTooShort)
				c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
				return
			}
			observability.RecordError(observability.ErrorCodeValidation)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		rubric, err := registry.Rubric(req.SchemeID)
		if err != nil {
			observability.RecordError(observability.ErrorCodeUnknownScheme)
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}

		start := time.Now()
		report, err := rubric.Review(req.DocumentText)
		if err != nil {
			slog.Error("Scoring failed", "scheme", req.SchemeID, "error", err)
			observability.RecordError(observability.ErrorCodeScoring)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "scoring failed"})
			return
		}

		reviewID := uuid.NewString()
		observability.RecordReview(req.SchemeID, report.OverallPassed,
			report.OverallScore, report.DraftWordCount, time.Since(start).Seconds())
		slog.Info("Review complete",
			"review_id", reviewID,
			"scheme", req.SchemeID,
			"overall_score", report.OverallScore,
			"passed", report.OverallPassed,
			"words", report.DraftWordCount)

		c.JSON(http.StatusOK, datatypes.ReviewResponse{
			ReviewID: reviewID,
			Report:   report,
		})
	}
}

// ListSchemes returns the loaded rubrics with their pass thresholds.
func ListSchemes(registry *rubric_engine.Registry) gin.HandlerFunc {
	return func(c *gin.Context) {
		schemes := registry.Schemes()
		out := make([]datatypes.SchemeInfo, 0, len(schemes))
		for _, id := range schemes {
			rubric, err := registry.Rubric(id)
			if err != nil {
				// Cannot happen: ids come from the registry itself.
				continue
			}
			signals := 0
			for _, criterion := range rubric.Criteria {
				signals += len(criterion.Signals)
			}
			out = append(out, datatypes.SchemeInfo{
				Scheme:    rubric.Scheme,
				Title:     rubric.Title,
				Version:   rubric.Version,
				MaxScore:  rubric.MaxScore,
				Threshold: rubric.Threshold,
				MinTotal:  rubric.MinTotal,
				Criteria:  len(rubric.Criteria),
				Signals:   signals,
			})
		}
		c.JSON(http.StatusOK, datatypes.SchemesResponse{Schemes: out})
	}
}
