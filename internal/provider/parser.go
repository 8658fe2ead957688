package provider

import (
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"pelisplus/internal/httputil"
	"pelisplus/internal/media"
)

const movieEpisodeName = "PELÍCULA"

const (
	selCatalogItem   = "div.Posters a.Posters-link"
	selNextPage      = "a.page-link"
	selTitle         = "h1.m-b-5"
	selPoster        = "div.card-body div.row div.col-sm-3 img.img-fluid"
	selDescription   = "div.col-sm-4 div.text-large"
	selGenres        = "div.p-v-20.p-h-15.text-center a span"
	selEpisodeAnchor = "div.tab-content div a"
)

// parseCatalog extracts the entries of a listing page.
func parseCatalog(doc *goquery.Document) media.Page {
	var page media.Page

	doc.Find(selCatalogItem).Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		page.Entries = append(page.Entries, media.CatalogEntry{
			Title:        joinText(s.Find("div.listing-content p")),
			ThumbnailURL: strings.Replace(s.Find("img").AttrOr("src", ""), "/w154/", "/w200/", 1),
			URL:          httputil.RelativePath(href),
		})
	})
	page.HasNextPage = doc.Find(selNextPage).Length() > 0

	return page
}

// parseDetails reads a title page. All of title, poster and description
// must be present.
func parseDetails(doc *goquery.Document, pageURL string) (media.Details, error) {
	required := func(sel string) (*goquery.Selection, error) {
		s := doc.Find(sel).First()
		if s.Length() == 0 {
			return nil, &MissingMarkupError{Selector: sel, URL: pageURL}
		}
		return s, nil
	}

	title, err := required(selTitle)
	if err != nil {
		return media.Details{}, err
	}
	poster, err := required(selPoster)
	if err != nil {
		return media.Details{}, err
	}
	desc, err := required(selDescription)
	if err != nil {
		return media.Details{}, err
	}

	d := media.Details{
		CatalogEntry: media.CatalogEntry{
			Title:        normalizeSpace(title.Text()),
			ThumbnailURL: strings.Replace(poster.AttrOr("src", ""), "/w154/", "/w500/", 1),
		},
		Description: ownText(desc),
		Status:      media.StatusCompleted,
	}
	doc.Find(selGenres).Each(func(_ int, s *goquery.Selection) {
		d.Genres = append(d.Genres, normalizeSpace(s.Text()))
	})
	return d, nil
}

// parseEpisodes numbers episode anchors by document position and returns
// them newest first.
func parseEpisodes(doc *goquery.Document) []media.Episode {
	var episodes []media.Episode

	doc.Find(selEpisodeAnchor).Each(func(i int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		episodes = append(episodes, media.Episode{
			Number: i + 1,
			Name:   normalizeSpace(s.Text()),
			URL:    httputil.RelativePath(href),
		})
	})
	slices.Reverse(episodes)

	return episodes
}

// ownText returns the text of s's direct text children, excluding the
// text of nested elements.
func ownText(s *goquery.Selection) string {
	var b strings.Builder
	s.Contents().Each(func(_ int, c *goquery.Selection) {
		if n := c.Get(0); n != nil && n.Type == html.TextNode {
			b.WriteString(n.Data)
			b.WriteByte(' ')
		}
	})
	return normalizeSpace(b.String())
}

// joinText joins the text of every element in s with single spaces.
func joinText(s *goquery.Selection) string {
	return normalizeSpace(strings.Join(s.Map(func(_ int, e *goquery.Selection) string {
		return e.Text()
	}), " "))
}

func normalizeSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
