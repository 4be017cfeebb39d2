package client

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"
)

// Transcript fetches the full caption text for a YouTube URL.
func (c *Client) Transcript(ctx context.Context, videoURL string) (string, error) {
	var out struct {
		Transcript string `json:"transcript"`
	}
	path := "/api/transcript?url=" + url.QueryEscape(videoURL)
	if err := c.doJSONRequest(ctx, http.MethodGet, path, nil, &out); err != nil {
		return "", err
	}
	return out.Transcript, nil
}

// Analyze turns a transcript into structured study notes.
func (c *Client) Analyze(ctx context.Context, transcript string) (string, error) {
	var out struct {
		AnalyzedTranscript string `json:"analyzedTranscript"`
	}
	payload := map[string]string{"transcript": transcript}
	if err := c.doJSONRequest(ctx, http.MethodPost, "/api/analyze-transcript", payload, &out); err != nil {
		return "", err
	}
	return out.AnalyzedTranscript, nil
}

// DownloadPDF renders content on the server and saves the attachment in dir.
// It returns the path of the saved file.
func (c *Client) DownloadPDF(ctx context.Context, content, dir string) (string, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/api/download-analyzed-pdf", map[string]string{"content": content})
	if err != nil {
		return "", err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("download failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", decodeAPIError(resp)
	}

	name := attachmentName(resp.Header.Get("Content-Disposition"))
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}
	dst := filepath.Join(dir, name)
	f, err := os.Create(dst)
	if err != nil {
		return "", err
	}
	if _, err := io.Copy(f, resp.Body); err != nil {
		f.Close()
		os.Remove(dst)
		return "", fmt.Errorf("failed to save pdf: %w", err)
	}
	if err := f.Close(); err != nil {
		return "", err
	}
	return dst, nil
}

func attachmentName(disposition string) string {
	if _, params, err := mime.ParseMediaType(disposition); err == nil {
		if name := filepath.Base(params["filename"]); name != "." && name != "/" && name != "" {
			return name
		}
	}
	return fmt.Sprintf("analyzed_transcript_%d.pdf", time.Now().UnixMilli())
}
