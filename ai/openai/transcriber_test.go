package openai

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/openai/openai-go/v3/option"
	"github.com/poiesic/summarit/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAudio(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "talk.mp3")
	require.NoError(t, os.WriteFile(path, []byte("ID3fake-audio"), 0o600))
	return path
}

func newTestTranscriber(t *testing.T, handler http.HandlerFunc) *Transcriber {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	cfg := ai.NewConfig(ai.WithTranscriptionHost(srv.URL), ai.WithAPIKey("k"))
	tr, err := newTranscriber(cfg, option.WithMaxRetries(0))
	require.NoError(t, err)
	return tr
}

func TestTranscriber_Transcribe(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/audio/transcriptions", r.URL.Path)
		assert.Equal(t, "whisper-1", r.FormValue("model"))
		assert.Equal(t, "verbose_json", r.FormValue("response_format"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"task":"transcribe","language":"english","duration":1.5,"text":" Hello there. "}`))
	})

	transcript, err := tr.Transcribe(context.Background(), writeAudio(t))
	require.NoError(t, err)
	assert.Equal(t, "Hello there.", transcript.Text)
	assert.Equal(t, "english", transcript.Language)
}

func TestTranscriber_EmptyText(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"text":""}`))
	})

	_, err := tr.Transcribe(context.Background(), writeAudio(t))
	assert.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestTranscriber_ServerError(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"error":{"message":"bad file"}}`, http.StatusBadRequest)
	})

	_, err := tr.Transcribe(context.Background(), writeAudio(t))
	assert.Error(t, err)
}

func TestTranscriber_MissingFile(t *testing.T) {
	tr := newTestTranscriber(t, func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("request should not be sent")
	})

	_, err := tr.Transcribe(context.Background(), filepath.Join(t.TempDir(), "absent.mp3"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}
