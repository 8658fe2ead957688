package extract

import (
	"context"
	"net/http"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"pelisplus/internal/media"
)

// sourcePatterns are tried in order against a host page with its packed
// scripts already decoded. The first group of each must be the stream URL.
var sourcePatterns = []*regexp.Regexp{
	regexp.MustCompile(`sources\s*:\s*\[\s*\{\s*file\s*:\s*["']([^"']+)["']`),
	regexp.MustCompile(`sources\s*:\s*\[\s*["']([^"']+)["']`),
	regexp.MustCompile(`file\s*:\s*["']([^"']+\.(?:m3u8|mp4)[^"']*)["']`),
	regexp.MustCompile(`["']hls\d*["']\s*:\s*["']([^"']+)["']`),
	regexp.MustCompile(`src\s*:\s*["']([^"']+\.(?:m3u8|mp4)[^"']*)["']`),
	regexp.MustCompile(`file\s*:\s*["']([^"']+)["']`),
}

// Generic handles hosts that embed a JW Player or Video.js setup, possibly
// inside a packed script, and possibly one iframe away from the URL given.
type Generic struct {
	Name    string
	Headers http.Header // sent with the first page request only

	fetch fetcher
}

// NewGeneric returns a Generic extractor labelled name.
func NewGeneric(client *http.Client, name string, headers http.Header) *Generic {
	return &Generic{Name: name, Headers: headers, fetch: fetcher{client: client}}
}

// Videos implements Extractor.
func (g *Generic) Videos(ctx context.Context, rawURL, prefix string) ([]media.Video, error) {
	body, err := g.fetch.text(ctx, rawURL, g.Headers)
	if err != nil {
		return nil, err
	}

	pageURL := rawURL
	src := findSource(body)
	if src == "" {
		iframe := firstIframe(body)
		if iframe == "" {
			return nil, nil
		}
		pageURL = absolute(iframe)
		hdr := g.Headers.Clone()
		if hdr == nil {
			hdr = http.Header{}
		}
		hdr.Set("Referer", origin(rawURL))
		if body, err = g.fetch.text(ctx, pageURL, hdr); err != nil {
			return nil, err
		}
		if src = findSource(body); src == "" {
			return nil, nil
		}
	}

	headers := refererHeader(origin(pageURL))

	if isHLS(src) {
		return g.fetch.hlsVideos(ctx, src, prefix, g.Name, headers), nil
	}
	return []media.Video{{Label: label(prefix, g.Name, ""), URL: src, Headers: headers}}, nil
}

// findSource returns the first stream URL found in body.
func findSource(body string) string {
	if IsPacked(body) {
		body = UnpackAll(body)
	}
	for _, re := range sourcePatterns {
		for _, m := range re.FindAllStringSubmatch(body, -1) {
			u := absolute(strings.TrimSpace(m[1]))
			if strings.HasPrefix(u, "http") {
				return u
			}
		}
	}
	return ""
}

func firstIframe(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	srcs := doc.Find("iframe[src]").Map(func(_ int, s *goquery.Selection) string {
		return s.AttrOr("src", "")
	})
	src, _ := lo.Find(srcs, func(s string) bool { return strings.TrimSpace(s) != "" })
	return src
}
