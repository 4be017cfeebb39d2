package youtube

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"errors"
	"fmt"
	"html"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"studynotes/types"
)

const (
	defaultBaseURL   = "https://www.youtube.com"
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0 Safari/537.36"

	playerResponseMarker = "ytInitialPlayerResponse = "

	maxWatchPageBytes = 8 << 20
	maxTimedTextBytes = 4 << 20
)

// Upstream messages surfaced to callers.
const (
	msgTranscriptDisabled = "Transcript is disabled on this video"
	msgNoTranscripts      = "No transcripts are available for this video"
	msgVideoUnavailable   = "The video is no longer available"
)

// Scraper reads captions the way a browser would: it loads the watch page,
// pulls the caption track list out of ytInitialPlayerResponse and downloads
// the timedtext XML of the best track.
type Scraper struct {
	httpClient *http.Client
	baseURL    string
	userAgent  string
	langs      []string
	logger     *slog.Logger
}

// ScraperOption customizes a Scraper.
type ScraperOption func(*Scraper)

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) ScraperOption {
	return func(s *Scraper) {
		if client != nil {
			s.httpClient = client
		}
	}
}

// WithBaseURL points the scraper at a different host (used by tests).
func WithBaseURL(base string) ScraperOption {
	return func(s *Scraper) {
		if base = strings.TrimRight(strings.TrimSpace(base), "/"); base != "" {
			s.baseURL = base
		}
	}
}

// WithLanguages sets the preferred caption languages, most preferred first.
func WithLanguages(langs []string) ScraperOption {
	return func(s *Scraper) {
		cleaned := make([]string, 0, len(langs))
		for _, l := range langs {
			if l = strings.TrimSpace(l); l != "" {
				cleaned = append(cleaned, l)
			}
		}
		if len(cleaned) > 0 {
			s.langs = cleaned
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ScraperOption {
	return func(s *Scraper) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewScraper constructs a Scraper with sane defaults.
func NewScraper(opts ...ScraperOption) *Scraper {
	s := &Scraper{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		langs:      []string{"en"},
		logger:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// --- player response types ---

type playerResponse struct {
	Captions *struct {
		PlayerCaptionsTracklistRenderer struct {
			CaptionTracks []captionTrack `json:"captionTracks"`
		} `json:"playerCaptionsTracklistRenderer"`
	} `json:"captions"`
	PlayabilityStatus *struct {
		Status string `json:"status"`
		Reason string `json:"reason"`
	} `json:"playabilityStatus"`
}

type captionTrack struct {
	BaseURL      string `json:"baseUrl"`
	LanguageCode string `json:"languageCode"`
	Kind         string `json:"kind"` // "asr" = auto-generated
}

// --- timedtext XML types ---

type timedText struct {
	Lines []timedTextLine `xml:"text"`
}

type timedTextLine struct {
	Start string `xml:"start,attr"`
	Dur   string `xml:"dur,attr"`
	Text  string `xml:",chardata"`
}

// Segments implements CaptionProvider. Each upstream URL is requested once.
func (s *Scraper) Segments(ctx context.Context, videoID string) ([]types.TranscriptSegment, error) {
	player, err := s.loadPlayerResponse(ctx, videoID)
	if err != nil {
		return nil, err
	}

	if player.PlayabilityStatus != nil && player.PlayabilityStatus.Status != "" &&
		!strings.EqualFold(player.PlayabilityStatus.Status, "OK") && player.Captions == nil {
		if reason := strings.TrimSpace(player.PlayabilityStatus.Reason); reason != "" {
			return nil, errors.New(reason)
		}
		return nil, errors.New(msgVideoUnavailable)
	}
	if player.Captions == nil {
		return nil, errors.New(msgTranscriptDisabled)
	}

	tracks := player.Captions.PlayerCaptionsTracklistRenderer.CaptionTracks
	if len(tracks) == 0 {
		return nil, errors.New(msgNoTranscripts)
	}
	track := pickTrack(tracks, s.langs)
	s.logger.Debug("caption track selected",
		slog.String("video_id", videoID),
		slog.String("lang", track.LanguageCode),
		slog.String("kind", track.Kind),
	)

	return s.fetchTimedText(ctx, track.BaseURL)
}

func (s *Scraper) loadPlayerResponse(ctx context.Context, videoID string) (*playerResponse, error) {
	watchURL := s.baseURL + "/watch?v=" + url.QueryEscape(videoID)
	body, err := s.get(ctx, watchURL, maxWatchPageBytes)
	if err != nil {
		return nil, fmt.Errorf("watch page: %w", err)
	}
	defer body.Close()

	doc, err := goquery.NewDocumentFromReader(body)
	if err != nil {
		return nil, fmt.Errorf("parse watch page: %w", err)
	}

	var raw string
	doc.Find("script").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		text := sel.Text()
		idx := strings.Index(text, playerResponseMarker)
		if idx < 0 {
			return true
		}
		raw = extractJSONObject(text[idx+len(playerResponseMarker):])
		return raw == ""
	})
	if raw == "" {
		return nil, errors.New(msgVideoUnavailable)
	}

	var player playerResponse
	if err := json.Unmarshal([]byte(raw), &player); err != nil {
		return nil, fmt.Errorf("decode player response: %w", err)
	}
	return &player, nil
}

func (s *Scraper) fetchTimedText(ctx context.Context, trackURL string) ([]types.TranscriptSegment, error) {
	body, err := s.get(ctx, trackURL, maxTimedTextBytes)
	if err != nil {
		return nil, fmt.Errorf("timedtext: %w", err)
	}
	defer body.Close()

	var tt timedText
	if err := xml.NewDecoder(body).Decode(&tt); err != nil {
		return nil, fmt.Errorf("parse timedtext: %w", err)
	}
	if len(tt.Lines) == 0 {
		return nil, errors.New(msgNoTranscripts)
	}

	segments := make([]types.TranscriptSegment, 0, len(tt.Lines))
	for _, line := range tt.Lines {
		segments = append(segments, types.TranscriptSegment{
			Start:    parseSeconds(line.Start),
			Duration: parseSeconds(line.Dur),
			Text:     html.UnescapeString(line.Text),
		})
	}
	return segments, nil
}

// get issues a GET and returns the (size-limited) body of a 200 response.
func (s *Scraper) get(ctx context.Context, target string, limit int64) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 256))
		resp.Body.Close()
		if resp.StatusCode == http.StatusTooManyRequests {
			return nil, errors.New("YouTube is receiving too many requests from this IP")
		}
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}
	return struct {
		io.Reader
		io.Closer
	}{io.LimitReader(resp.Body, limit), resp.Body}, nil
}

// pickTrack prefers a manual track in a preferred language, then an
// auto-generated one, then any English track, then the first track.
func pickTrack(tracks []captionTrack, langs []string) captionTrack {
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang && t.Kind != "asr" {
				return t
			}
		}
	}
	for _, lang := range langs {
		for _, t := range tracks {
			if t.LanguageCode == lang {
				return t
			}
		}
	}
	for _, t := range tracks {
		if strings.HasPrefix(t.LanguageCode, "en") {
			return t
		}
	}
	return tracks[0]
}

// extractJSONObject returns the balanced JSON object at the start of s,
// honoring string literals and escapes, or "" if none is found.
func extractJSONObject(s string) string {
	start := strings.IndexByte(s, '{')
	if start < 0 {
		return ""
	}
	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1]
			}
		}
	}
	return ""
}

func parseSeconds(v string) time.Duration {
	f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
	if err != nil || f < 0 {
		return 0
	}
	return time.Duration(f * float64(time.Second))
}
