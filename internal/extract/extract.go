// Package extract resolves hosting-provider embed URLs into playable videos.
// The Dispatcher picks the extractor for a URL; each extractor knows how one
// family of hosts exposes its stream.
package extract

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strings"

	"pelisplus/internal/httputil"
	"pelisplus/internal/media"
)

// Extractor resolves one host URL into zero or more videos. prefix is
// prepended to every label the extractor produces. A page with no
// recoverable stream yields an empty slice; errors are for failed requests.
type Extractor interface {
	Videos(ctx context.Context, url, prefix string) ([]media.Video, error)
}

// label joins a prefix, a host name and an optional quality into a display label,
// e.g. "[LAT] Filemoon:1080p".
func label(prefix, host, quality string) string {
	l := prefix + host
	if quality != "" {
		if host != "" {
			l += ":"
		}
		l += quality
	}
	return strings.TrimSpace(l)
}

// origin returns "scheme://host/" for rawURL, used as a Referer.
func origin(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host + "/"
}

func refererHeader(ref string) http.Header {
	if ref == "" {
		return nil
	}
	h := http.Header{}
	h.Set("Referer", ref)
	return h
}

// fetcher wraps the shared client with text helpers.
type fetcher struct {
	client *http.Client
}

func (f fetcher) text(ctx context.Context, rawURL string, hdr http.Header) (string, error) {
	body, err := httputil.GetBody(ctx, f.client, rawURL, hdr)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

// textFinal is text that also reports the URL reached after redirects.
func (f fetcher) textFinal(ctx context.Context, rawURL string, hdr http.Header) (body, finalURL string, err error) {
	resp, err := httputil.Get(ctx, f.client, rawURL, hdr)
	if err != nil {
		return "", "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", "", &httputil.StatusError{URL: rawURL, StatusCode: resp.StatusCode}
	}
	data, err := io.ReadAll(io.LimitReader(resp.Body, 10*1024*1024))
	if err != nil {
		return "", "", err
	}
	finalURL = rawURL
	if resp.Request != nil && resp.Request.URL != nil {
		finalURL = resp.Request.URL.String()
	}
	return string(data), finalURL, nil
}

// substringBetween returns the text between the first start marker and the
// following end marker.
func substringBetween(s, start, end string) (string, bool) {
	_, after, ok := strings.Cut(s, start)
	if !ok {
		return "", false
	}
	before, _, ok := strings.Cut(after, end)
	if !ok {
		return "", false
	}
	return before, true
}

// absolute turns protocol-relative URLs into https ones.
func absolute(u string) string {
	if strings.HasPrefix(u, "//") {
		return "https:" + u
	}
	return u
}
