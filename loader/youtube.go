package loader

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/poiesic/summarit/extract"
	"github.com/tidwall/gjson"
)

const (
	defaultYouTubeBase = "https://www.youtube.com"
	playerResponseVar  = "ytInitialPlayerResponse"
	autoCaptionKind    = "asr"
)

// YouTube reads titles, descriptions and English subtitle tracks from YouTube
// watch pages. It implements extract.VideoSource.
type YouTube struct {
	http     httpGetter
	baseURL  string
	language string
	logger   *slog.Logger
}

// YouTubeOption configures a YouTube source.
type YouTubeOption func(*YouTube) error

// WithYouTubeHTTPClient sets the HTTP client used for requests.
func WithYouTubeHTTPClient(client *http.Client) YouTubeOption {
	return func(y *YouTube) error {
		if client == nil {
			return fmt.Errorf("%w: nil http client", ErrInvalidOption)
		}
		y.http.client = client
		return nil
	}
}

// WithYouTubeBaseURL points the source at a different host.
// Default is https://www.youtube.com.
func WithYouTubeBaseURL(base string) YouTubeOption {
	return func(y *YouTube) error {
		u, err := url.Parse(base)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("%w: base url %q", ErrInvalidOption, base)
		}
		y.baseURL = strings.TrimSuffix(base, "/")
		return nil
	}
}

// WithSubtitleLanguage sets the subtitle language code to look for.
// Default is "en".
func WithSubtitleLanguage(code string) YouTubeOption {
	return func(y *YouTube) error {
		if strings.TrimSpace(code) == "" {
			return fmt.Errorf("%w: empty language code", ErrInvalidOption)
		}
		y.language = code
		return nil
	}
}

// WithYouTubeLogger sets a custom logger.
// Default is slog.Default().
func WithYouTubeLogger(logger *slog.Logger) YouTubeOption {
	return func(y *YouTube) error {
		if logger == nil {
			logger = slog.Default()
		}
		y.logger = logger
		return nil
	}
}

// NewYouTube creates a YouTube video source.
func NewYouTube(opts ...YouTubeOption) (*YouTube, error) {
	y := &YouTube{
		http:     newHTTPGetter(),
		baseURL:  defaultYouTubeBase,
		language: "en",
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(y); err != nil {
			return nil, err
		}
	}
	y.logger = y.logger.With("component", "youtube-source")
	y.http.logger = y.logger
	return y, nil
}

// FetchVideo loads the watch page for videoURL and downloads the manual and
// automatic subtitle tracks in the configured language, when present.
func (y *YouTube) FetchVideo(ctx context.Context, videoURL string) (*extract.VideoContent, error) {
	id, err := extract.ParseVideoID(videoURL)
	if err != nil {
		return nil, err
	}

	header := http.Header{"Accept-Language": []string{y.language}}
	page, _, err := y.http.get(ctx, y.baseURL+"/watch?v="+url.QueryEscape(id), header)
	if err != nil {
		return nil, fmt.Errorf("fetch watch page: %w", err)
	}

	player, err := playerResponse(page)
	if err != nil {
		return nil, err
	}

	if status := gjson.Get(player, "playabilityStatus.status").String(); status != "" && status != "OK" {
		reason := gjson.Get(player, "playabilityStatus.reason").String()
		return nil, fmt.Errorf("%w: %s %s", ErrVideoUnavailable, status, reason)
	}

	video := &extract.VideoContent{
		Title:       gjson.Get(player, "videoDetails.title").String(),
		Description: gjson.Get(player, "videoDetails.shortDescription").String(),
	}

	manual, auto := y.captionTracks(player)
	if manual != "" {
		video.ManualSubtitles = y.download(ctx, manual)
	}
	if auto != "" && video.ManualSubtitles == "" {
		video.AutoCaptions = y.download(ctx, auto)
	}

	y.logger.Debug("fetched video",
		"videoID", id,
		"manualSubtitles", video.ManualSubtitles != "",
		"autoCaptions", video.AutoCaptions != "")
	return video, nil
}

// captionTracks returns the base URLs of the manual and automatic tracks
// matching the configured language.
func (y *YouTube) captionTracks(player string) (manual, auto string) {
	tracks := gjson.Get(player, "captions.playerCaptionsTracklistRenderer.captionTracks")
	tracks.ForEach(func(_, track gjson.Result) bool {
		code := track.Get("languageCode").String()
		if code != y.language && !strings.HasPrefix(code, y.language+"-") {
			return true
		}
		base := track.Get("baseUrl").String()
		if base == "" {
			return true
		}
		if track.Get("kind").String() == autoCaptionKind {
			if auto == "" {
				auto = base
			}
		} else if manual == "" {
			manual = base
		}
		return manual == "" || auto == ""
	})
	return manual, auto
}

// download fetches a caption track as WebVTT. Failures are logged and yield
// an empty payload so the next text source can be tried.
func (y *YouTube) download(ctx context.Context, trackURL string) string {
	u, err := url.Parse(trackURL)
	if err != nil {
		y.logger.Warn("invalid caption url", "url", trackURL, "err", err)
		return ""
	}
	if !u.IsAbs() {
		u, err = url.Parse(y.baseURL + trackURL)
		if err != nil {
			return ""
		}
	}
	q := u.Query()
	q.Set("fmt", "vtt")
	u.RawQuery = q.Encode()

	body, _, err := y.http.get(ctx, u.String(), nil)
	if err != nil {
		y.logger.Warn("failed to download captions", "url", u.String(), "err", err)
		return ""
	}
	return string(body)
}

// playerResponse finds the inline script assigning the player response and
// returns its JSON object.
func playerResponse(page []byte) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return "", fmt.Errorf("parse watch page: %w", err)
	}

	var found string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		text := s.Text()
		idx := strings.Index(text, playerResponseVar)
		if idx < 0 {
			return true
		}
		text = text[idx:]
		start := strings.Index(text, "{")
		if start < 0 {
			return true
		}
		raw := leadingObject(text[start:])
		if raw != "" && gjson.Valid(raw) {
			found = raw
			return false
		}
		return true
	})

	if found == "" {
		return "", ErrPlayerResponseMissing
	}
	return found, nil
}

// leadingObject returns the balanced JSON object at the start of s, or "" if
// the braces never close.
func leadingObject(s string) string {
	depth := 0
	inString, escaped := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case escaped:
			escaped = false
		case inString && c == '\\':
			escaped = true
		case c == '"':
			inString = !inString
		case inString:
		case c == '{':
			depth++
		case c == '}':
			depth--
			if depth == 0 {
				return s[:i+1]
			}
		}
	}
	return ""
}
