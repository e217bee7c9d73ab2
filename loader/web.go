package loader

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/microcosm-cc/bluemonday"
	"github.com/mmcdole/gofeed"
)

// noiseSelector lists elements that never carry article text.
const noiseSelector = "script, style, noscript, template, iframe, svg, nav, footer, header, aside, form"

// WebLoader fetches a web page and returns its readable text as Markdown.
// RSS, Atom and JSON feeds are detected and returned as one fragment per item.
// It implements extract.DocumentFetcher.
type WebLoader struct {
	http      httpGetter
	converter *converter.Converter
	sanitizer *bluemonday.Policy
	logger    *slog.Logger
}

// WebOption configures a WebLoader.
type WebOption func(*WebLoader) error

// WithHTTPClient sets the HTTP client used for requests.
func WithHTTPClient(client *http.Client) WebOption {
	return func(l *WebLoader) error {
		if client == nil {
			return fmt.Errorf("%w: nil http client", ErrInvalidOption)
		}
		l.http.client = client
		return nil
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(userAgent string) WebOption {
	return func(l *WebLoader) error {
		l.http.userAgent = userAgent
		return nil
	}
}

// WithMaxBodySize limits how many bytes of a response body are read.
// Default is 10 MiB.
func WithMaxBodySize(n int64) WebOption {
	return func(l *WebLoader) error {
		if n < 1 {
			return fmt.Errorf("%w: max body size %d", ErrInvalidOption, n)
		}
		l.http.maxBody = n
		return nil
	}
}

// WithWebLogger sets a custom logger.
// Default is slog.Default().
func WithWebLogger(logger *slog.Logger) WebOption {
	return func(l *WebLoader) error {
		if logger == nil {
			logger = slog.Default()
		}
		l.logger = logger
		return nil
	}
}

// NewWebLoader creates a web loader.
func NewWebLoader(opts ...WebOption) (*WebLoader, error) {
	l := &WebLoader{
		http: newHTTPGetter(),
		converter: converter.NewConverter(
			converter.WithPlugins(
				base.NewBasePlugin(),
				commonmark.NewCommonmarkPlugin(),
				table.NewTablePlugin(),
			),
		),
		sanitizer: bluemonday.StrictPolicy(),
		logger:    slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(l); err != nil {
			return nil, err
		}
	}
	l.logger = l.logger.With("component", "web-loader")
	l.http.logger = l.logger
	return l, nil
}

// FetchDocument downloads url and returns its text fragments.
func (l *WebLoader) FetchDocument(ctx context.Context, url string) ([]string, error) {
	body, contentType, err := l.http.get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	if isFeed(contentType, body) {
		items, err := l.feedItems(body)
		if err == nil && len(items) > 0 {
			l.logger.Debug("loaded feed", "url", url, "items", len(items))
			return items, nil
		}
		l.logger.Debug("feed parse failed, treating as page", "url", url, "err", err)
	}

	text, err := l.pageText(body, url)
	if err != nil {
		return nil, err
	}
	l.logger.Debug("loaded page", "url", url, "length", len(text))
	return []string{text}, nil
}

// pageText strips page chrome and converts the remaining markup to Markdown.
// The plain text of the body is used when conversion yields nothing.
func (l *WebLoader) pageText(body []byte, url string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find(noiseSelector).Remove()

	title := strings.TrimSpace(doc.Find("title").First().Text())

	root := doc.Find("article").First()
	if root.Length() == 0 {
		root = doc.Find("main").First()
	}
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	var text string
	if html, err := goquery.OuterHtml(root); err == nil && html != "" {
		if md, err := l.converter.ConvertString(html, converter.WithDomain(url)); err == nil {
			text = strings.TrimSpace(md)
		}
	}
	if text == "" {
		text = strings.Join(strings.Fields(root.Text()), " ")
	}
	if text == "" {
		return "", ErrEmptyPage
	}

	if title != "" && !strings.Contains(text, title) {
		text = title + "\n\n" + text
	}
	return text, nil
}

// feedItems renders every feed entry as its title, link and sanitized body.
// gofeed parsers keep per-parse state, so each call gets its own.
func (l *WebLoader) feedItems(body []byte) ([]string, error) {
	feed, err := gofeed.NewParser().Parse(bytes.NewReader(body))
	if err != nil {
		return nil, err
	}

	items := make([]string, 0, len(feed.Items))
	for _, item := range feed.Items {
		content := item.Content
		if strings.TrimSpace(content) == "" {
			content = item.Description
		}
		content = strings.Join(strings.Fields(l.sanitizer.Sanitize(content)), " ")

		var b strings.Builder
		if t := strings.TrimSpace(item.Title); t != "" {
			b.WriteString(t)
		}
		if link := strings.TrimSpace(item.Link); link != "" {
			if b.Len() > 0 {
				b.WriteString("\n")
			}
			b.WriteString(link)
		}
		if content != "" {
			if b.Len() > 0 {
				b.WriteString("\n\n")
			}
			b.WriteString(content)
		}
		if b.Len() > 0 {
			items = append(items, b.String())
		}
	}
	return items, nil
}

// isFeed reports whether a response looks like a syndication feed.
func isFeed(contentType string, body []byte) bool {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "rss"), strings.Contains(ct, "atom"), strings.Contains(ct, "feed+json"):
		return true
	case strings.Contains(ct, "html"):
		return false
	}
	head := bytes.ToLower(bytes.TrimSpace(body[:min(len(body), 512)]))
	return bytes.Contains(head, []byte("<rss")) || bytes.Contains(head, []byte("<feed"))
}
