package extract

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pelisplus/internal/media"
)

var okruQualities = map[string]string{
	"full":   "1080p",
	"hd":     "720p",
	"sd":     "480p",
	"low":    "360p",
	"lowest": "240p",
	"mobile": "144p",
}

type okruOptions struct {
	Flashvars struct {
		Metadata string `json:"metadata"`
	} `json:"flashvars"`
}

type okruMetadata struct {
	Videos []struct {
		Name string `json:"name"`
		URL  string `json:"url"`
	} `json:"videos"`
	HLSManifestURL string `json:"hlsManifestUrl"`
}

// Okru resolves ok.ru video embeds.
type Okru struct {
	fetch fetcher
}

// NewOkru returns an Okru extractor.
func NewOkru(client *http.Client) *Okru {
	return &Okru{fetch: fetcher{client: client}}
}

// Videos implements Extractor.
func (o *Okru) Videos(ctx context.Context, rawURL, prefix string) ([]media.Video, error) {
	body, err := o.fetch.text(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}
	raw, ok := doc.Find("div[data-module=OKVideo]").First().Attr("data-options")
	if !ok {
		return nil, nil
	}

	var opts okruOptions
	if err := json.Unmarshal([]byte(raw), &opts); err != nil {
		return nil, fmt.Errorf("okru options: %w", err)
	}
	var meta okruMetadata
	if err := json.Unmarshal([]byte(opts.Flashvars.Metadata), &meta); err != nil {
		return nil, fmt.Errorf("okru metadata: %w", err)
	}

	headers := refererHeader("https://ok.ru/")
	var videos []media.Video
	for _, v := range meta.Videos {
		if v.URL == "" {
			continue
		}
		q, ok := okruQualities[v.Name]
		if !ok {
			q = v.Name
		}
		videos = append(videos, media.Video{Label: label(prefix, "Okru", q), URL: v.URL, Headers: headers})
	}
	if len(videos) == 0 && meta.HLSManifestURL != "" {
		return o.fetch.hlsVideos(ctx, meta.HLSManifestURL, prefix, "Okru", headers), nil
	}
	if len(videos) == 0 {
		return nil, nil
	}
	return videos, nil
}
