package extract

import (
	"context"
	"encoding/base64"
	"net/http"
	"regexp"
	"strings"

	"pelisplus/internal/media"
)

var (
	voeRedirect = regexp.MustCompile(`window\.location\.href\s*=\s*'([^']+)'`)
	voeHLS      = regexp.MustCompile(`['"]hls['"]\s*:\s*['"]([^'"]+)['"]`)
	voeMP4      = regexp.MustCompile(`['"]mp4['"]\s*:\s*['"]([^'"]+)['"]`)
)

// Voe resolves voe.sx and its rotating mirror domains.
type Voe struct {
	fetch fetcher
}

// NewVoe returns a Voe extractor.
func NewVoe(client *http.Client) *Voe {
	return &Voe{fetch: fetcher{client: client}}
}

// Videos implements Extractor.
func (v *Voe) Videos(ctx context.Context, rawURL, prefix string) ([]media.Video, error) {
	body, pageURL, err := v.fetch.textFinal(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	// Mirror pages bounce through a script redirect.
	if m := voeRedirect.FindStringSubmatch(body); m != nil {
		if body, pageURL, err = v.fetch.textFinal(ctx, m[1], nil); err != nil {
			return nil, err
		}
	}

	headers := refererHeader(origin(pageURL))
	if m := voeHLS.FindStringSubmatch(body); m != nil {
		return v.fetch.hlsVideos(ctx, decodeMaybeBase64(m[1]), prefix, "Voe", headers), nil
	}
	if m := voeMP4.FindStringSubmatch(body); m != nil {
		return []media.Video{{Label: label(prefix, "Voe", ""), URL: decodeMaybeBase64(m[1]), Headers: headers}}, nil
	}
	return nil, nil
}

// decodeMaybeBase64 returns s unchanged when it is already a URL.
func decodeMaybeBase64(s string) string {
	if strings.HasPrefix(s, "http") {
		return s
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil {
		return string(b)
	}
	return s
}
