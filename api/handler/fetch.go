package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/use-agent/faleproxy/api/middleware"
	"github.com/use-agent/faleproxy/fetcher"
	"github.com/use-agent/faleproxy/models"
	"github.com/use-agent/faleproxy/rewriter"
)

// Fetch returns a handler for POST /fetch.
//
// Orchestration flow:
//  1. Bind the body; a missing url is a 400, a non-string url is a 500.
//  2. Fetcher.Fetch  → raw HTML             (invalid URL, transport, status, content type → 500)
//  3. Rewriter.Rewrite → substituted HTML   (parse failure → 500)
//  4. Return 200 with the rewritten document.
func Fetch(f fetcher.Fetcher, rw *rewriter.Rewriter) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		reqID := middleware.RequestID(c)

		// ── 1. Parse request ────────────────────────────────────────
		var req models.FetchRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			var verrs validator.ValidationErrors
			if errors.As(err, &verrs) || errors.Is(err, io.EOF) {
				c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: models.MsgURLRequired})
				return
			}
			// A url that is present but unusable fails like any bad URL.
			var typeErr *json.UnmarshalTypeError
			if errors.As(err, &typeErr) && typeErr.Field == "url" {
				respondError(c, reqID, "", models.NewFetchError(models.ErrCodeInvalidURL,
					"invalid URL: expected a string, got "+typeErr.Value, nil))
				return
			}
			c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request body: " + err.Error()})
			return
		}

		// ── 2. Fetch ────────────────────────────────────────────────
		result, err := f.Fetch(c.Request.Context(), req.URL)
		if err != nil {
			respondError(c, reqID, req.URL, err)
			return
		}

		// ── 3. Rewrite ──────────────────────────────────────────────
		content, err := rw.Rewrite(result.HTML)
		if err != nil {
			respondError(c, reqID, req.URL, err)
			return
		}

		slog.Info("page rewritten",
			"request_id", reqID,
			"url", req.URL,
			"final_url", result.FinalURL,
			"content_type", result.ContentType,
			"bytes", len(content),
			"duration_ms", time.Since(start).Milliseconds(),
		)

		c.JSON(http.StatusOK, models.FetchResponse{
			Success: true,
			Content: content,
		})
	}
}

// respondError logs a downstream failure and writes the 500 response.
// Every error past request validation lands here.
func respondError(c *gin.Context, reqID, url string, err error) {
	var fetchErr *models.FetchError
	if !errors.As(err, &fetchErr) {
		fetchErr = models.NewFetchError(models.ErrCodeInternal, "internal error", err)
	}

	slog.Warn("fetch failed",
		"request_id", reqID,
		"url", url,
		"code", fetchErr.Code,
		"error", err,
	)

	c.JSON(http.StatusInternalServerError, models.FetchResponse{
		Success: false,
		Error:   fetchErr.PublicMessage(),
	})
}
