package extract

import (
	"context"
	"regexp"
	"strings"
	"unicode"

	"github.com/poiesic/summarit/core"
)

const unknownTitle = "Unknown"

// subtitleHeaders are metadata lines at the top of WebVTT payloads.
var subtitleHeaders = []string{"WEBVTT", "Kind:", "Language:"}

// inlineTag matches WebVTT cue markup such as <c>, </c> and <00:00:01.000>.
var inlineTag = regexp.MustCompile(`<[^>]*>`)

// ParseVideoID returns the YouTube video id embedded in url. Short links
// (youtu.be/<id>) are cut at the first "?", long links (...v=<id>) at the
// first "&".
func ParseVideoID(url string) (string, error) {
	var id string
	switch {
	case strings.Contains(url, "youtu.be/"):
		id = url[strings.LastIndex(url, "youtu.be/")+len("youtu.be/"):]
		id, _, _ = strings.Cut(id, "?")
	case strings.Contains(url, "v="):
		id = url[strings.LastIndex(url, "v=")+len("v="):]
		id, _, _ = strings.Cut(id, "&")
	default:
		return "", ErrInvalidVideoURL
	}

	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidVideoURL
	}
	return id, nil
}

// CleanSubtitles flattens a WebVTT or SRT payload into running text. Timing
// lines, cue numbers, blank lines and file headers are dropped, inline markup
// is removed and the remaining lines are joined with single spaces.
func CleanSubtitles(payload string) string {
	lines := strings.Split(strings.ReplaceAll(payload, "\r\n", "\n"), "\n")
	cleaned := make([]string, 0, len(lines))

	for _, line := range lines {
		if strings.Contains(line, "-->") {
			continue
		}
		line = strings.TrimSpace(line)
		if line == "" || isDigits(line) || hasHeaderPrefix(line) {
			continue
		}
		line = strings.TrimSpace(inlineTag.ReplaceAllString(line, ""))
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.Join(cleaned, " ")
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

func hasHeaderPrefix(line string) bool {
	for _, h := range subtitleHeaders {
		if strings.HasPrefix(line, h) {
			return true
		}
	}
	return false
}

// transcriptText picks manual subtitles over automatic captions and falls back
// to the description when neither is available.
func transcriptText(v *VideoContent) string {
	payload := v.ManualSubtitles
	if strings.TrimSpace(payload) == "" {
		payload = v.AutoCaptions
	}
	if strings.TrimSpace(payload) != "" {
		if text := CleanSubtitles(payload); text != "" {
			return text
		}
	}
	return strings.TrimSpace(v.Description)
}

type videoExtractor struct {
	source VideoSource
}

func (e videoExtractor) Extract(ctx context.Context, content string) (*Result, error) {
	id, err := ParseVideoID(content)
	if err != nil {
		return nil, err
	}
	if e.source == nil {
		return nil, ErrCapabilityMissing
	}

	video, err := e.source.FetchVideo(ctx, strings.TrimSpace(content))
	if err != nil {
		return nil, err
	}

	text := transcriptText(video)
	if text == "" {
		return nil, ErrNoTranscript
	}

	title := strings.TrimSpace(video.Title)
	if title == "" {
		title = unknownTitle
	}

	return &Result{
		Text: text,
		Metadata: core.NewMetadata().
			Set(core.MetaSource, "video").
			Set(core.MetaVideoID, id).
			Set(core.MetaURL, content).
			Set(core.MetaTitle, title),
	}, nil
}
