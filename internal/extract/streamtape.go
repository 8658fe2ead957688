package extract

import (
	"context"
	"net/http"
	"regexp"
	"strconv"

	"pelisplus/internal/media"
)

var (
	robotlink = regexp.MustCompile(`getElementById\('robotlink'\)\.innerHTML\s*=\s*'([^']*)'\s*\+\s*\('([^']*)'\)((?:\.substring\(\d+\))*)`)
	substrN   = regexp.MustCompile(`\.substring\((\d+)\)`)
)

// StreamTape resolves streamtape embeds from the robotlink script.
type StreamTape struct {
	fetch fetcher
}

// NewStreamTape returns a StreamTape extractor.
func NewStreamTape(client *http.Client) *StreamTape {
	return &StreamTape{fetch: fetcher{client: client}}
}

// Videos implements Extractor.
func (s *StreamTape) Videos(ctx context.Context, rawURL, prefix string) ([]media.Video, error) {
	body, err := s.fetch.text(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	m := robotlink.FindStringSubmatch(body)
	if m == nil {
		return nil, nil
	}

	tail := m[2]
	for _, sub := range substrN.FindAllStringSubmatch(m[3], -1) {
		n, _ := strconv.Atoi(sub[1])
		if n > len(tail) {
			n = len(tail)
		}
		tail = tail[n:]
	}

	return []media.Video{{
		Label:   label(prefix, "StreamTape", ""),
		URL:     absolute(m[1]+tail) + "&stream=1",
		Headers: refererHeader(origin(rawURL)),
	}}, nil
}
