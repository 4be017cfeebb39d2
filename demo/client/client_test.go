package client

import (
	"context"
	"errors"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes/api"
	"studynotes/document"
	"studynotes/types"
	"studynotes/youtube"
)

type upperAnalyzer struct{}

func (upperAnalyzer) Transform(_ context.Context, transcript string) (types.AnalysisResult, error) {
	return types.AnalysisResult{Text: strings.ToUpper(transcript)}, nil
}

func newTestAPI(t *testing.T) *Client {
	t.Helper()
	gin.SetMode(gin.TestMode)

	provider := youtube.CaptionProviderFunc(func(_ context.Context, id string) ([]types.TranscriptSegment, error) {
		if id != "ABCDEFGHIJK" {
			return nil, errors.New("The video is no longer available")
		}
		return []types.TranscriptSegment{{Text: "learn"}, {Text: "go"}}, nil
	})
	store, err := document.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	srv := httptest.NewServer(api.NewRouter(api.Services{
		Transcripts: youtube.NewFetcher(provider, 0, nil),
		Analyzer:    upperAnalyzer{},
		Documents:   document.NewRenderer(store, 0, nil),
	}))
	t.Cleanup(srv.Close)
	return NewClient(srv.URL)
}

func TestClientPipeline(t *testing.T) {
	c := newTestAPI(t)
	ctx := context.Background()

	transcript, err := c.Transcript(ctx, "https://www.youtube.com/watch?v=ABCDEFGHIJK&t=42")
	require.NoError(t, err)
	assert.Equal(t, "learn go", transcript)

	notes, err := c.Analyze(ctx, transcript)
	require.NoError(t, err)
	assert.Equal(t, "LEARN GO", notes)

	dir := t.TempDir()
	path, err := c.DownloadPDF(ctx, notes, dir)
	require.NoError(t, err)
	assert.Equal(t, dir, filepath.Dir(path))
	assert.Regexp(t, `^analyzed_transcript_\d+\.pdf$`, filepath.Base(path))

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(raw), "%PDF-"))
}

func TestClientSurfacesAPIErrors(t *testing.T) {
	c := newTestAPI(t)
	ctx := context.Background()

	_, err := c.Transcript(ctx, "https://youtu.be/ZYXWVUTSRQP")
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 500, apiErr.Status)
	assert.Equal(t, "Failed to fetch transcript. The video is no longer available", apiErr.Message)

	_, err = c.Analyze(ctx, "")
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
	assert.Equal(t, "Transcript is required.", apiErr.Message)

	_, err = c.DownloadPDF(ctx, " ", t.TempDir())
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "No content provided.", apiErr.Message)
}

func TestAttachmentName(t *testing.T) {
	assert.Equal(t, "analyzed_transcript_1.pdf", attachmentName(`attachment; filename="analyzed_transcript_1.pdf"`))
	assert.Equal(t, "evil.pdf", attachmentName(`attachment; filename="../../evil.pdf"`))
	assert.True(t, strings.HasPrefix(attachmentName(""), "analyzed_transcript_"))
}
