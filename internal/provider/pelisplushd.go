package provider

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/log"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/samber/mo"

	"pelisplus/internal/extract"
	"pelisplus/internal/httputil"
	"pelisplus/internal/logging"
	"pelisplus/internal/media"
)

// Resolver turns a host URL into videos labelled with prefix.
// *extract.Dispatcher satisfies it.
type Resolver interface {
	Resolve(ctx context.Context, url, prefix string) mo.Result[[]media.Video]
}

// Options configures New. Zero values fall back to sensible defaults.
type Options struct {
	BaseURL   string // e.g. "https://ww3.pelisplus.to"
	Client    *http.Client
	Logger    *log.Logger
	Resolver  Resolver
	Workers   int           // Concurrent option pages during resolution
	CacheSize int           // Cached listing pages; 0 disables the cache
	CacheTTL  time.Duration // 0 disables the cache
}

// PelisPlusHD implements Source for the PelisPlusHD site.
type PelisPlusHD struct {
	base     string
	client   *http.Client
	log      *log.Logger
	resolver Resolver
	workers  int
	headers  http.Header
	cache    *expirable.LRU[string, string]
}

// New creates a PelisPlusHD source.
func New(opts Options) *PelisPlusHD {
	p := &PelisPlusHD{
		base:    strings.TrimSuffix(opts.BaseURL, "/"),
		client:  opts.Client,
		log:     opts.Logger,
		workers: max(opts.Workers, 1),
	}
	if p.client == nil {
		p.client = httputil.NewClient(0)
	}
	if p.log == nil {
		p.log = logging.Discard()
	}

	p.headers = http.Header{}
	p.headers.Set("Referer", p.base+"/")

	p.resolver = opts.Resolver
	if p.resolver == nil {
		p.resolver = extract.NewDispatcher(p.client, extract.Options{
			SiteHeaders: p.headers,
			Logger:      p.log,
		})
	}
	if opts.CacheSize > 0 && opts.CacheTTL > 0 {
		p.cache = expirable.NewLRU[string, string](opts.CacheSize, nil, opts.CacheTTL)
	}
	return p
}

// BaseURL returns the site root without a trailing slash.
func (p *PelisPlusHD) BaseURL() string {
	return p.base
}

// Headers returns the request headers used for site pages.
func (p *PelisPlusHD) Headers() http.Header {
	return p.headers.Clone()
}

// Popular returns one page of the series listing.
func (p *PelisPlusHD) Popular(ctx context.Context, page int) (media.Page, error) {
	doc, err := p.fetchDocument(ctx, fmt.Sprintf("%s/series?page=%d", p.base, max(page, 1)), true)
	if err != nil {
		return media.Page{}, fmt.Errorf("getting popular: %w", err)
	}
	return parseCatalog(doc), nil
}

// Search returns one page of results for a query or, without one, for the
// selected filter.
func (p *PelisPlusHD) Search(ctx context.Context, query string, filters media.Filters, page int) (media.Page, error) {
	doc, err := p.fetchDocument(ctx, p.searchURL(query, filters, max(page, 1)), true)
	if err != nil {
		return media.Page{}, fmt.Errorf("searching for %q: %w", query, err)
	}
	return parseCatalog(doc), nil
}

// Details returns the metadata of a title page.
func (p *PelisPlusHD) Details(ctx context.Context, entryURL string) (media.Details, error) {
	u, err := p.resolve(entryURL)
	if err != nil {
		return media.Details{}, err
	}
	doc, err := p.fetchDocument(ctx, u, true)
	if err != nil {
		return media.Details{}, fmt.Errorf("getting details: %w", err)
	}

	d, err := parseDetails(doc, u)
	if err != nil {
		return media.Details{}, err
	}
	d.URL = httputil.RelativePath(u)
	return d, nil
}

// Episodes lists the episodes of a series, newest first. Movies have a
// single synthetic episode and their page is not fetched.
func (p *PelisPlusHD) Episodes(ctx context.Context, entryURL string) ([]media.Episode, error) {
	u, err := p.resolve(entryURL)
	if err != nil {
		return nil, err
	}
	if strings.Contains(u, "/pelicula/") {
		return []media.Episode{{Number: 1, Name: movieEpisodeName, URL: httputil.RelativePath(u)}}, nil
	}

	doc, err := p.fetchDocument(ctx, u, true)
	if err != nil {
		return nil, fmt.Errorf("getting episodes: %w", err)
	}
	return parseEpisodes(doc), nil
}

// resolve turns a site-relative path into an absolute URL, validating it.
func (p *PelisPlusHD) resolve(ref string) (string, error) {
	if strings.HasPrefix(ref, "http://") || strings.HasPrefix(ref, "https://") {
		if err := httputil.ValidateURL(ref); err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		return ref, nil
	}
	path, _, _ := strings.Cut(ref, "?")
	if err := httputil.ValidatePath(path); err != nil {
		return "", fmt.Errorf("invalid path: %w", err)
	}
	return p.base + ref, nil
}

// fetchDocument fetches a URL and parses it into a goquery Document.
// Listing pages go through the cache; resolution pages must not, their
// links expire.
func (p *PelisPlusHD) fetchDocument(ctx context.Context, url string, cached bool) (*goquery.Document, error) {
	body, ok := "", false
	if cached && p.cache != nil {
		body, ok = p.cache.Get(url)
	}
	if ok {
		p.log.Debug("cache hit", "url", url)
	} else {
		data, err := httputil.GetBody(ctx, p.client, url, p.headers)
		if err != nil {
			return nil, err
		}
		body = string(data)
		if cached && p.cache != nil {
			p.cache.Add(url, body)
		}
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}
	return doc, nil
}
