package extract

import (
	"context"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"pelisplus/internal/media"
)

// DefaultAmazonAPI is the Amazon Drive host queried for shared folders.
const DefaultAmazonAPI = "https://www.amazon.com"

const amazonChildrenQuery = "?resourceVersion=V2&ContentType=JSON&limit=200" +
	"&sort=%5B%22kind+DESC%22%2C+%22modifiedDate+DESC%22%5D&asset=ALL&tempLink=true&shareId="

// amazon resolves an Amazon Drive share page into its temporary download
// link. The API responses are sliced as text rather than decoded.
type amazon struct {
	api   string
	fetch fetcher
}

func (a *amazon) Videos(ctx context.Context, rawURL, prefix string) ([]media.Video, error) {
	body, err := a.fetch.text(ctx, rawURL, nil)
	if err != nil {
		return nil, err
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, err
	}

	var script string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := s.Text(); strings.Contains(text, "var shareId") {
			script = text
			return false
		}
		return true
	})
	if script == "" {
		return nil, nil
	}
	shareID, ok := substringBetween(script, `shareId = "`, `"`)
	if !ok || shareID == "" {
		return nil, nil
	}

	share, err := a.fetch.text(ctx, a.api+"/drive/v1/shares/"+shareID+"?resourceVersion=V2&ContentType=JSON&asset=ALL", nil)
	if err != nil {
		return nil, err
	}
	nodeID, ok := substringBetween(share, `"id":"`, `"`)
	if !ok || nodeID == "" {
		return nil, nil
	}

	children, err := a.fetch.text(ctx, a.api+"/drive/v1/nodes/"+nodeID+"/children"+amazonChildrenQuery+shareID, nil)
	if err != nil {
		return nil, err
	}
	_, folder, ok := strings.Cut(children, `"FOLDER":`)
	if !ok {
		return nil, nil
	}
	videoURL, ok := substringBetween(folder, `tempLink":"`, `"`)
	if !ok || videoURL == "" {
		return nil, nil
	}

	return []media.Video{{Label: label(prefix, "Amazon", ""), URL: videoURL}}, nil
}

func newAmazon(client *http.Client, api string) *amazon {
	if api == "" {
		api = DefaultAmazonAPI
	}
	return &amazon{api: strings.TrimSuffix(api, "/"), fetch: fetcher{client: client}}
}
