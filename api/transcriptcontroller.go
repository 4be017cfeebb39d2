package api

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"studynotes/common"
)

const (
	msgInvalidURL        = "Please provide a valid YouTube URL."
	msgFetchFailedPrefix = "Failed to fetch transcript. "
)

type transcriptController struct {
	source TranscriptSource
	logger *slog.Logger
}

// RegisterTranscriptRoutes registers the transcript lookup endpoint.
func RegisterTranscriptRoutes(r *gin.Engine, source TranscriptSource, logger *slog.Logger) {
	tc := &transcriptController{source: source, logger: logger}
	r.GET("/api/transcript", tc.handleGetTranscript)
}

// handleGetTranscript returns the full caption text of the video in ?url=.
func (tc *transcriptController) handleGetTranscript(c *gin.Context) {
	locator := strings.TrimSpace(c.Query("url"))
	if locator == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgInvalidURL})
		return
	}

	doc, err := tc.source.Transcript(c.Request.Context(), locator)
	if err != nil {
		_ = c.Error(err)
		status := common.HTTPStatus(err)
		msg := msgInvalidURL
		if status != http.StatusBadRequest {
			tc.logger.Error("transcript fetch failed", slog.String("url", locator), slog.Any("error", err))
			msg = msgFetchFailedPrefix + common.Detail(err)
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, gin.H{"transcript": doc.Text()})
}
