package loader

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/poiesic/summarit/extract"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const watchPageTemplate = `<!DOCTYPE html><html><head><title>Video</title></head><body>
<script>var ytcfg = {"a": 1};</script>
<script>var ytInitialPlayerResponse = %s;var meta = document.createElement('meta');</script>
</body></html>`

const manualVTT = "WEBVTT\nKind: captions\nLanguage: en\n\n00:00:00.000 --> 00:00:01.000\nmanual words\n"
const autoVTT = "WEBVTT\n\n00:00:00.000 --> 00:00:01.000\n<c>auto</c> words\n"

// requestLog records request URIs from server handlers.
type requestLog struct {
	mu   sync.Mutex
	uris []string
}

func (l *requestLog) add(uri string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.uris = append(l.uris, uri)
}

func (l *requestLog) all() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.uris...)
}

func youtubeServer(t *testing.T, player string) (*httptest.Server, *requestLog) {
	t.Helper()
	requested := &requestLog{}
	mux := http.NewServeMux()
	mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
		requested.add(r.URL.RequestURI())
		_, _ = fmt.Fprintf(w, watchPageTemplate, player)
	})
	mux.HandleFunc("/api/timedtext", func(w http.ResponseWriter, r *http.Request) {
		requested.add(r.URL.RequestURI())
		if r.URL.Query().Get("fmt") != "vtt" {
			http.Error(w, "format", http.StatusBadRequest)
			return
		}
		if r.URL.Query().Get("kind") == "asr" {
			_, _ = w.Write([]byte(autoVTT))
			return
		}
		_, _ = w.Write([]byte(manualVTT))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, requested
}

func newTestYouTube(t *testing.T, srv *httptest.Server) *YouTube {
	t.Helper()
	y, err := NewYouTube(WithYouTubeHTTPClient(srv.Client()), WithYouTubeBaseURL(srv.URL))
	require.NoError(t, err)
	return y
}

func TestYouTube_ManualSubtitles(t *testing.T) {
	player := `{
		"playabilityStatus": {"status": "OK"},
		"videoDetails": {"videoId": "abc123", "title": "Go Talk", "shortDescription": "A talk about Go; really."},
		"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
			{"baseUrl": "/api/timedtext?v=abc123&lang=de", "languageCode": "de"},
			{"baseUrl": "/api/timedtext?v=abc123&lang=en&kind=asr", "languageCode": "en", "kind": "asr"},
			{"baseUrl": "/api/timedtext?v=abc123&lang=en-GB", "languageCode": "en-GB"}
		]}}
	}`
	srv, requested := youtubeServer(t, player)
	y := newTestYouTube(t, srv)

	video, err := y.FetchVideo(context.Background(), "https://youtu.be/abc123?t=5")
	require.NoError(t, err)
	assert.Equal(t, "Go Talk", video.Title)
	assert.Equal(t, "A talk about Go; really.", video.Description)
	assert.Equal(t, manualVTT, video.ManualSubtitles)
	assert.Empty(t, video.AutoCaptions)

	uris := requested.all()
	require.Len(t, uris, 2)
	assert.Equal(t, "/watch?v=abc123", uris[0])
}

func TestYouTube_AutoCaptions(t *testing.T) {
	player := `{
		"videoDetails": {"title": "Auto", "shortDescription": ""},
		"captions": {"playerCaptionsTracklistRenderer": {"captionTracks": [
			{"baseUrl": "/api/timedtext?v=x&lang=en&kind=asr", "languageCode": "en", "kind": "asr"}
		]}}
	}`
	srv, _ := youtubeServer(t, player)
	y := newTestYouTube(t, srv)

	video, err := y.FetchVideo(context.Background(), "https://www.youtube.com/watch?v=x")
	require.NoError(t, err)
	assert.Empty(t, video.ManualSubtitles)
	assert.Equal(t, autoVTT, video.AutoCaptions)
	assert.Equal(t, "auto words", extract.CleanSubtitles(video.AutoCaptions))
}

func TestYouTube_DescriptionOnly(t *testing.T) {
	srv, requested := youtubeServer(t, `{"videoDetails": {"title": "Plain", "shortDescription": "Only a description"}}`)
	y := newTestYouTube(t, srv)

	video, err := y.FetchVideo(context.Background(), "https://youtu.be/plain")
	require.NoError(t, err)
	assert.Equal(t, "Only a description", video.Description)
	assert.Empty(t, video.ManualSubtitles)
	assert.Empty(t, video.AutoCaptions)
	assert.Len(t, requested.all(), 1)
}

func TestYouTube_Errors(t *testing.T) {
	t.Run("unplayable", func(t *testing.T) {
		srv, _ := youtubeServer(t, `{"playabilityStatus": {"status": "ERROR", "reason": "Video unavailable"}}`)
		y := newTestYouTube(t, srv)
		_, err := y.FetchVideo(context.Background(), "https://youtu.be/gone")
		assert.ErrorIs(t, err, ErrVideoUnavailable)
	})

	t.Run("no player response", func(t *testing.T) {
		mux := http.NewServeMux()
		mux.HandleFunc("/watch", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html><body>consent wall</body></html>"))
		})
		srv := httptest.NewServer(mux)
		t.Cleanup(srv.Close)

		y := newTestYouTube(t, srv)
		_, err := y.FetchVideo(context.Background(), "https://youtu.be/abc")
		assert.ErrorIs(t, err, ErrPlayerResponseMissing)
	})

	t.Run("bad url", func(t *testing.T) {
		y, err := NewYouTube()
		require.NoError(t, err)
		_, err = y.FetchVideo(context.Background(), "https://example.com")
		assert.ErrorIs(t, err, extract.ErrInvalidVideoURL)
	})

	t.Run("bad options", func(t *testing.T) {
		_, err := NewYouTube(WithYouTubeBaseURL("not a url"))
		assert.ErrorIs(t, err, ErrInvalidOption)
		_, err = NewYouTube(WithSubtitleLanguage(" "))
		assert.ErrorIs(t, err, ErrInvalidOption)
	})
}

func TestLeadingObject(t *testing.T) {
	assert.Equal(t, `{"a":"}{","b":{"c":1}}`, leadingObject(`{"a":"}{","b":{"c":1}};var x = {};`))
	assert.Equal(t, `{"q":"say \"hi\" }"}`, leadingObject(`{"q":"say \"hi\" }"} trailing`))
	assert.Empty(t, leadingObject(`{"open": true`))
}
