package api

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"studynotes/common"
)

const (
	msgTranscriptRequired = "Transcript is required."
	msgAnalyzeFailed      = "Failed to analyze transcript."
)

// AnalyzeRequest is the body of POST /api/analyze-transcript.
type AnalyzeRequest struct {
	Transcript string `json:"transcript"`
}

// AnalyzeResponse is the success body of POST /api/analyze-transcript.
type AnalyzeResponse struct {
	AnalyzedTranscript string `json:"analyzedTranscript"`
}

type analysisController struct {
	analyzer Analyzer
	logger   *slog.Logger
}

// RegisterAnalysisRoutes registers the transcript analysis endpoint.
func RegisterAnalysisRoutes(r *gin.Engine, analyzer Analyzer, logger *slog.Logger) {
	ac := &analysisController{analyzer: analyzer, logger: logger}
	r.POST("/api/analyze-transcript", ac.handleAnalyze)
}

// handleAnalyze turns raw transcript text into structured study notes.
func (ac *analysisController) handleAnalyze(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Transcript == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgTranscriptRequired})
		return
	}

	res, err := ac.analyzer.Transform(c.Request.Context(), req.Transcript)
	if err != nil {
		_ = c.Error(err)
		status := common.HTTPStatus(err)
		msg := msgTranscriptRequired
		if status != http.StatusBadRequest {
			ac.logger.Error("transcript analysis failed", slog.Any("error", err))
			msg = msgAnalyzeFailed
		}
		c.JSON(status, gin.H{"error": msg})
		return
	}

	c.JSON(http.StatusOK, AnalyzeResponse{AnalyzedTranscript: res.Text})
}
