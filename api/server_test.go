package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"sync"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"studynotes/common"
	"studynotes/document"
	"studynotes/types"
	"studynotes/youtube"
)

type fakeAnalyzer struct {
	text string
	err  error
}

func (f fakeAnalyzer) Transform(_ context.Context, transcript string) (types.AnalysisResult, error) {
	if f.err != nil {
		return types.AnalysisResult{}, f.err
	}
	return types.AnalysisResult{Text: f.text + transcript}, nil
}

type transcriptFunc func(ctx context.Context, locator string) (types.TranscriptDocument, error)

func (f transcriptFunc) Transcript(ctx context.Context, locator string) (types.TranscriptDocument, error) {
	return f(ctx, locator)
}

type testServer struct {
	router *gin.Engine
	dir    string
}

func newTestServer(t *testing.T, svc Services) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	dir := t.TempDir()
	if svc.Documents == nil {
		store, err := document.NewLocalStore(dir)
		require.NoError(t, err)
		svc.Documents = document.NewRenderer(store, 0, nil)
	}
	return &testServer{router: NewRouter(svc), dir: dir}
}

func (s *testServer) do(method, target string, body any) *httptest.ResponseRecorder {
	var rd io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			rd = strings.NewReader(b)
		default:
			raw, _ := json.Marshal(b)
			rd = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, rd)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) assertNoArtifacts(t *testing.T) {
	t.Helper()
	entries, err := os.ReadDir(s.dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]string {
	t.Helper()
	var out map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func TestHealth(t *testing.T) {
	s := newTestServer(t, Services{})
	w := s.do(http.MethodGet, "/api/health", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", decodeBody(t, w)["status"])
}

func TestGetTranscript(t *testing.T) {
	provider := youtube.CaptionProviderFunc(func(_ context.Context, id string) ([]types.TranscriptSegment, error) {
		switch id {
		case "ABCDEFGHIJK":
			return []types.TranscriptSegment{{Text: "hello"}, {Text: "world"}}, nil
		default:
			return nil, errors.New("Transcript is disabled on this video")
		}
	})
	s := newTestServer(t, Services{Transcripts: youtube.NewFetcher(provider, 0, nil)})

	tests := []struct {
		name   string
		target string
		status int
		key    string
		want   string
	}{
		{"watch url", "/api/transcript?url=https://www.youtube.com/watch?v=ABCDEFGHIJK", 200, "transcript", "hello world"},
		{"short url", "/api/transcript?url=https://youtu.be/ABCDEFGHIJK", 200, "transcript", "hello world"},
		{"missing url", "/api/transcript", 400, "error", "Please provide a valid YouTube URL."},
		{"blank url", "/api/transcript?url=%20%20", 400, "error", "Please provide a valid YouTube URL."},
		{"not a video", "/api/transcript?url=https://example.com/", 400, "error", "Please provide a valid YouTube URL."},
		{"upstream failure", "/api/transcript?url=https://youtu.be/ZZZZZZZZZZZ", 500, "error",
			"Failed to fetch transcript. Transcript is disabled on this video"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(http.MethodGet, tt.target, nil)
			assert.Equal(t, tt.status, w.Code)
			assert.Equal(t, tt.want, decodeBody(t, w)[tt.key])
		})
	}
}

func TestAnalyzeTranscript(t *testing.T) {
	s := newTestServer(t, Services{Analyzer: fakeAnalyzer{text: "notes: "}})

	w := s.do(http.MethodPost, "/api/analyze-transcript", map[string]string{"transcript": "hello world"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "notes: hello world", decodeBody(t, w)["analyzedTranscript"])

	for _, body := range []any{map[string]string{}, map[string]string{"transcript": ""}, "not json"} {
		w := s.do(http.MethodPost, "/api/analyze-transcript", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "Transcript is required.", decodeBody(t, w)["error"])
	}
}

func TestAnalyzeTranscriptAcceptsWhitespace(t *testing.T) {
	s := newTestServer(t, Services{Analyzer: fakeAnalyzer{text: "notes:"}})

	w := s.do(http.MethodPost, "/api/analyze-transcript", map[string]string{"transcript": "   "})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "notes:   ", decodeBody(t, w)["analyzedTranscript"])
}

func TestAnalyzeTranscriptUpstreamFailure(t *testing.T) {
	err := common.Wrap(common.ErrUpstreamGeneration, "analyze transcript", errors.New("quota exceeded"))
	s := newTestServer(t, Services{Analyzer: fakeAnalyzer{err: err}})

	w := s.do(http.MethodPost, "/api/analyze-transcript", map[string]string{"transcript": "text"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to analyze transcript.", decodeBody(t, w)["error"])
}

func TestDownloadPDF(t *testing.T) {
	s := newTestServer(t, Services{})

	w := s.do(http.MethodPost, "/api/download-analyzed-pdf", map[string]string{"content": "Key points"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.Regexp(t, `^attachment; filename="analyzed_transcript_\d+\.pdf"$`, w.Header().Get("Content-Disposition"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	assert.Equal(t, w.Header().Get("Content-Length"), strconv.Itoa(w.Body.Len()))
	s.assertNoArtifacts(t)
}

func TestDownloadPDFMissingContent(t *testing.T) {
	s := newTestServer(t, Services{})
	for _, body := range []any{map[string]string{}, map[string]string{"content": ""}, "{"} {
		w := s.do(http.MethodPost, "/api/download-analyzed-pdf", body)
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, "No content provided.", decodeBody(t, w)["error"])
	}
	s.assertNoArtifacts(t)
}

func TestDownloadPDFWhitespaceContentRendersTitleOnly(t *testing.T) {
	s := newTestServer(t, Services{})

	w := s.do(http.MethodPost, "/api/download-analyzed-pdf", map[string]string{"content": " \n"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/pdf", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("%PDF-")))
	s.assertNoArtifacts(t)
}

// failingWriter reports a transport error on every body write.
type failingWriter struct {
	header http.Header
	status int
}

func (f *failingWriter) Header() http.Header {
	if f.header == nil {
		f.header = make(http.Header)
	}
	return f.header
}

func (f *failingWriter) WriteHeader(status int) { f.status = status }

func (f *failingWriter) Write([]byte) (int, error) {
	return 0, errors.New("write: broken pipe")
}

func TestDownloadPDFDeliveryFailureRemovesArtifact(t *testing.T) {
	s := newTestServer(t, Services{})

	req := httptest.NewRequest(http.MethodPost, "/api/download-analyzed-pdf", strings.NewReader(`{"content":"notes"}`))
	req.Header.Set("Content-Type", "application/json")
	fw := &failingWriter{}
	s.router.ServeHTTP(fw, req)

	s.assertNoArtifacts(t)
}

// brokenBodyStore serves artifacts whose body fails on first read.
type brokenBodyStore struct {
	*document.LocalStore
}

type errReadCloser struct{}

func (errReadCloser) Read([]byte) (int, error) { return 0, errors.New("disk read error") }
func (errReadCloser) Close() error             { return nil }

func (b brokenBodyStore) Open(ctx context.Context, key string) (io.ReadCloser, int64, error) {
	rc, size, err := b.LocalStore.Open(ctx, key)
	if err != nil {
		return nil, 0, err
	}
	rc.Close()
	return errReadCloser{}, size, nil
}

func TestDownloadPDFFailureBeforeFirstByteReturnsJSON(t *testing.T) {
	dir := t.TempDir()
	local, err := document.NewLocalStore(dir)
	require.NoError(t, err)
	s := newTestServer(t, Services{Documents: document.NewRenderer(brokenBodyStore{local}, 0, nil)})

	w := s.do(http.MethodPost, "/api/download-analyzed-pdf", map[string]string{"content": "notes"})
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Failed to download PDF.", decodeBody(t, w)["error"])
	assert.Empty(t, w.Header().Get("Content-Disposition"))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestConcurrentDownloadsCleanUp(t *testing.T) {
	s := newTestServer(t, Services{})

	var wg sync.WaitGroup
	codes := make(chan int, 8)
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			codes <- s.do(http.MethodPost, "/api/download-analyzed-pdf", map[string]string{"content": "notes"}).Code
		}()
	}
	wg.Wait()
	close(codes)
	for code := range codes {
		assert.Equal(t, http.StatusOK, code)
	}
	s.assertNoArtifacts(t)
}
