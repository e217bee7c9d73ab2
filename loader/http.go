package loader

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

const (
	defaultHTTPTimeout = 30 * time.Second
	defaultMaxBodySize = 10 << 20
	defaultUserAgent   = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) " +
		"AppleWebKit/537.36 (KHTML, like Gecko) Chrome/127.0.0.0 Safari/537.36"
)

// httpGetter performs the GET requests shared by the web and video loaders.
type httpGetter struct {
	client    *http.Client
	userAgent string
	maxBody   int64
	logger    *slog.Logger
}

func newHTTPGetter() httpGetter {
	return httpGetter{
		client:    &http.Client{Timeout: defaultHTTPTimeout},
		userAgent: defaultUserAgent,
		maxBody:   defaultMaxBodySize,
	}
}

// get fetches url and returns the body (truncated to maxBody) and the
// Content-Type header.
func (g httpGetter) get(ctx context.Context, url string, header http.Header) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", g.userAgent)
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("do request: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			g.logger.Error("failed to close response body", "url", url, "err", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("do request: %w: %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, g.maxBody))
	if err != nil {
		return nil, "", fmt.Errorf("read body: %w", err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
