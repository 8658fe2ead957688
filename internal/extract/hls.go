package extract

import (
	"bufio"
	"context"
	"net/http"
	"strings"

	"pelisplus/internal/httputil"
	"pelisplus/internal/media"
)

// variant is one rendition listed in a master playlist.
type variant struct {
	URL     string
	Quality string
}

// parseMaster lists the renditions of an HLS master playlist. URIs are
// resolved against base. A media playlist yields no variants.
func parseMaster(base, body string) []variant {
	var out []variant
	var pending *variant
	sc := bufio.NewScanner(strings.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		switch {
		case line == "":
			continue
		case strings.HasPrefix(line, "#EXT-X-STREAM-INF:"):
			pending = &variant{Quality: streamQuality(strings.TrimPrefix(line, "#EXT-X-STREAM-INF:"))}
		case strings.HasPrefix(line, "#"):
			continue
		case pending != nil:
			pending.URL = httputil.AbsoluteURL(base, line)
			out = append(out, *pending)
			pending = nil
		}
	}
	return out
}

// streamQuality turns RESOLUTION=1280x720 into "720p", falling back to NAME.
func streamQuality(attrs string) string {
	var name string
	for _, attr := range splitAttrs(attrs) {
		key, val, ok := strings.Cut(attr, "=")
		if !ok {
			continue
		}
		val = strings.Trim(val, `"`)
		switch key {
		case "RESOLUTION":
			if _, h, ok := strings.Cut(val, "x"); ok {
				return h + "p"
			}
		case "NAME":
			name = val
		}
	}
	return name
}

// splitAttrs splits an attribute list on commas outside quotes.
func splitAttrs(s string) []string {
	var out []string
	quoted := false
	start := 0
	for i, r := range s {
		switch r {
		case '"':
			quoted = !quoted
		case ',':
			if !quoted {
				out = append(out, s[start:i])
				start = i + 1
			}
		}
	}
	return append(out, s[start:])
}

// hlsVideos expands a playlist URL into one video per rendition. When the
// playlist cannot be read or is not a master, the playlist itself is returned.
func (f fetcher) hlsVideos(ctx context.Context, playlist, prefix, host string, headers http.Header) []media.Video {
	single := []media.Video{{Label: label(prefix, host, ""), URL: playlist, Headers: headers}}

	body, err := f.text(ctx, playlist, headers)
	if err != nil {
		return single
	}
	variants := parseMaster(playlist, body)
	if len(variants) == 0 {
		return single
	}

	videos := make([]media.Video, 0, len(variants))
	for _, v := range variants {
		videos = append(videos, media.Video{
			Label:   label(prefix, host, v.Quality),
			URL:     v.URL,
			Headers: headers,
		})
	}
	return videos
}

func isHLS(u string) bool {
	return strings.Contains(strings.ToLower(u), ".m3u8")
}
