package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"studynotes/common"
	"studynotes/document"
)

const (
	msgNoContent      = "No content provided."
	msgDownloadFailed = "Failed to download PDF."
)

// DownloadRequest is the body of POST /api/download-analyzed-pdf.
type DownloadRequest struct {
	Content string `json:"content"`
}

type documentController struct {
	renderer DocumentRenderer
	logger   *slog.Logger
}

// RegisterDocumentRoutes registers the PDF download endpoint.
func RegisterDocumentRoutes(r *gin.Engine, renderer DocumentRenderer, logger *slog.Logger) {
	dc := &documentController{renderer: renderer, logger: logger}
	r.POST("/api/download-analyzed-pdf", dc.handleDownload)
}

// handleDownload renders content to a PDF and streams it as an attachment.
// The rendered file is removed by the renderer whether or not streaming
// succeeds.
func (dc *documentController) handleDownload(c *gin.Context) {
	var req DownloadRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Content == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoContent})
		return
	}

	err := dc.renderer.Render(c.Request.Context(), req.Content, func(a document.Attachment) error {
		before := len(c.Errors)
		c.DataFromReader(http.StatusOK, a.Size, a.ContentType, a.Body, map[string]string{
			"Content-Disposition": fmt.Sprintf(`attachment; filename="%s"`, a.Filename),
		})
		if len(c.Errors) > before {
			return c.Errors.Last().Err
		}
		return nil
	})
	if err == nil {
		return
	}

	if common.IsCallerError(err) {
		c.JSON(http.StatusBadRequest, gin.H{"error": msgNoContent})
		return
	}
	dc.logger.Error("pdf download failed",
		slog.Bool("response_started", c.Writer.Written()),
		slog.Any("error", err),
	)
	if c.Writer.Written() {
		return
	}
	h := c.Writer.Header()
	h.Del("Content-Disposition")
	h.Del("Content-Length")
	h.Del("Content-Type")
	c.JSON(http.StatusInternalServerError, gin.H{"error": msgDownloadFailed})
}
