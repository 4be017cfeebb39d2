package youtube

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timedTextXML = `<?xml version="1.0" encoding="utf-8" ?><transcript>` +
	`<text start="0.5" dur="1.25">hello</text>` +
	`<text start="1.75" dur="2">it&amp;#39;s a &amp;quot;test&amp;quot;</text>` +
	`<text start="3.75" dur="1">world</text>` +
	`</transcript>`

func watchPage(playerJSON string) string {
	return `<!DOCTYPE html><html><head><script>var ytcfg = {"x": 1};</script></head><body>` +
		`<script nonce="abc">var ytInitialPlayerResponse = ` + playerJSON + `;var meta = document.createElement('meta');</script>` +
		`</body></html>`
}

func newYouTubeStub(t *testing.T, player func(base string) string) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("v") == "" {
			http.Error(w, "missing v", http.StatusBadRequest)
			return
		}
		fmt.Fprint(w, watchPage(player(srv.URL)))
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Query().Get("lang") != "en" {
			http.Error(w, "wrong track", http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "text/xml")
		fmt.Fprint(w, timedTextXML)
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestScraperSegments(t *testing.T) {
	srv := newYouTubeStub(t, func(base string) string {
		return `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[` +
			`{"baseUrl":"` + base + `/api/timedtext?v=ABCDEFGHIJK&lang=de","languageCode":"de"},` +
			`{"baseUrl":"` + base + `/api/timedtext?v=ABCDEFGHIJK&lang=en&kind=asr","languageCode":"en","kind":"asr"},` +
			`{"baseUrl":"` + base + `/api/timedtext?v=ABCDEFGHIJK&lang=en","languageCode":"en","name":{"simpleText":"English {manual}"}}` +
			`]}}}`
	})

	s := NewScraper(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))
	segments, err := s.Segments(context.Background(), "ABCDEFGHIJK")
	require.NoError(t, err)
	require.Len(t, segments, 3)

	assert.Equal(t, "hello", segments[0].Text)
	assert.Equal(t, 500*time.Millisecond, segments[0].Start)
	assert.Equal(t, 1250*time.Millisecond, segments[0].Duration)
	assert.Equal(t, `it's a "test"`, segments[1].Text)
	assert.Equal(t, "world", segments[2].Text)
}

func TestScraperUpstreamMessages(t *testing.T) {
	cases := []struct {
		name   string
		player string
		want   string
	}{
		{
			name:   "captions disabled",
			player: `{"playabilityStatus":{"status":"OK"}}`,
			want:   msgTranscriptDisabled,
		},
		{
			name:   "video unavailable",
			player: `{"playabilityStatus":{"status":"ERROR","reason":"Video unavailable"}}`,
			want:   "Video unavailable",
		},
		{
			name:   "no tracks",
			player: `{"playabilityStatus":{"status":"OK"},"captions":{"playerCaptionsTracklistRenderer":{"captionTracks":[]}}}`,
			want:   msgNoTranscripts,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			srv := newYouTubeStub(t, func(string) string { return c.player })
			s := NewScraper(WithBaseURL(srv.URL), WithHTTPClient(srv.Client()))

			_, err := s.Segments(context.Background(), "ABCDEFGHIJK")
			require.Error(t, err)
			assert.Equal(t, c.want, err.Error())
		})
	}
}

func TestScraperMissingPlayerResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body><script>var x = 1;</script></body></html>`)
	}))
	defer srv.Close()

	_, err := NewScraper(WithBaseURL(srv.URL)).Segments(context.Background(), "ABCDEFGHIJK")
	require.Error(t, err)
	assert.Equal(t, msgVideoUnavailable, err.Error())
}

func TestScraperRateLimited(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	_, err := NewScraper(WithBaseURL(srv.URL)).Segments(context.Background(), "ABCDEFGHIJK")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "too many requests")
}

func TestPickTrack(t *testing.T) {
	tracks := []captionTrack{
		{LanguageCode: "fr", BaseURL: "fr"},
		{LanguageCode: "en", Kind: "asr", BaseURL: "en-asr"},
		{LanguageCode: "en-GB", BaseURL: "en-gb"},
		{LanguageCode: "de", BaseURL: "de"},
	}

	cases := []struct {
		langs []string
		want  string
	}{
		{[]string{"de"}, "de"},
		{[]string{"en"}, "en-asr"},
		{[]string{"es"}, "en-asr"},
		{[]string{"fr", "en"}, "fr"},
	}
	for _, c := range cases {
		t.Run(strings.Join(c.langs, ","), func(t *testing.T) {
			assert.Equal(t, c.want, pickTrack(tracks, c.langs).BaseURL)
		})
	}

	assert.Equal(t, "ja", pickTrack([]captionTrack{{LanguageCode: "ja", BaseURL: "ja"}}, []string{"en"}).BaseURL)
}

func TestExtractJSONObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{`{"a":1};var b = 2;`, `{"a":1}`},
		{`{"a":"}{"};x`, `{"a":"}{"}`},
		{`{"a":"quote \" }"} trailing`, `{"a":"quote \" }"}`},
		{`{"a":{"b":{}}}`, `{"a":{"b":{}}}`},
		{`no object`, ``},
		{`{"unterminated":`, ``},
	}
	for _, c := range cases {
		if got := extractJSONObject(c.in); got != c.want {
			t.Errorf("extractJSONObject(%q) = %q; want %q", c.in, got, c.want)
		}
	}
}
