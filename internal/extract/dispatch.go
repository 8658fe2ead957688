package extract

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/samber/lo"
	"github.com/samber/mo"

	"pelisplus/internal/logging"
	"pelisplus/internal/media"
)

// Route maps URL substrings to the extractor that handles them.
type Route struct {
	Name     string
	Patterns []string
	// Match is an extra condition checked after a pattern hit. Optional.
	Match   func(url string) bool
	Resolve func(ctx context.Context, url, prefix string) ([]media.Video, error)
}

// Matches reports whether url contains one of the route patterns,
// ignoring case, and passes Match.
func (r Route) Matches(url string) bool {
	lower := strings.ToLower(url)
	hit := lo.ContainsBy(r.Patterns, func(p string) bool {
		return strings.Contains(lower, strings.ToLower(p))
	})
	if !hit {
		return false
	}
	return r.Match == nil || r.Match(url)
}

// Options configures NewDispatcher.
type Options struct {
	// SiteHeaders are the catalog site's request headers, forwarded to the
	// hosts that check where the embed was opened from.
	SiteHeaders http.Header
	// AmazonAPI overrides DefaultAmazonAPI.
	AmazonAPI string
	Logger    *log.Logger
}

// Dispatcher routes host URLs to extractors. The first matching route wins.
type Dispatcher struct {
	routes []Route
	log    *log.Logger
}

// NewDispatcher builds the dispatcher with the built-in host table.
func NewDispatcher(client *http.Client, opts Options) *Dispatcher {
	return NewDispatcherWithRoutes(DefaultRoutes(client, opts), opts.Logger)
}

// NewDispatcherWithRoutes builds a dispatcher over a custom route table.
func NewDispatcherWithRoutes(routes []Route, logger *log.Logger) *Dispatcher {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Dispatcher{routes: routes, log: logger}
}

// Routes returns the route table in evaluation order.
func (d *Dispatcher) Routes() []Route {
	return d.routes
}

// Match returns the first route accepting url.
func (d *Dispatcher) Match(url string) (Route, bool) {
	if url == "" {
		return Route{}, false
	}
	return lo.Find(d.routes, func(r Route) bool { return r.Matches(url) })
}

// Resolve runs the matching extractor for url. An unmatched URL is an empty
// success; an extractor panic is turned into an error.
func (d *Dispatcher) Resolve(ctx context.Context, url, prefix string) (res mo.Result[[]media.Video]) {
	route, ok := d.Match(url)
	if !ok {
		d.log.Debug("no extractor for host", "url", url)
		return mo.Ok[[]media.Video](nil)
	}

	defer func() {
		if r := recover(); r != nil {
			res = mo.Err[[]media.Video](fmt.Errorf("%s extractor panicked: %v", route.Name, r))
		}
	}()

	d.log.Debug("resolving", "host", route.Name, "url", url)
	videos, err := route.Resolve(ctx, url, prefix)
	return mo.TupleToResult(videos, err)
}

// Dispatch is Resolve with failures logged and dropped, so one broken host
// never fails the whole resolution.
func (d *Dispatcher) Dispatch(ctx context.Context, url, prefix string) []media.Video {
	res := d.Resolve(ctx, url, prefix)
	if res.IsError() {
		d.log.Warn("host extraction failed", "url", url, "err", res.Error())
		return nil
	}
	return res.OrEmpty()
}

// DefaultRoutes is the built-in host table. prefix is the language tag of the
// option, e.g. "[LAT]".
func DefaultRoutes(client *http.Client, opts Options) []Route {
	site := opts.SiteHeaders
	voe := NewVoe(client)
	okru := NewOkru(client)
	dood := NewDoodStream(client)
	tape := NewStreamTape(client)
	amz := newAmazon(client, opts.AmazonAPI)

	generic := func(name string, headers http.Header) func(context.Context, string, string) ([]media.Video, error) {
		return withPrefix(NewGeneric(client, name, headers))
	}

	return []Route{
		{Name: "Voe", Patterns: []string{"voe"}, Resolve: withPrefix(voe)},
		{Name: "Okru", Patterns: []string{"ok.ru", "okru"}, Resolve: withPrefix(okru)},
		{Name: "Filemoon", Patterns: []string{"filemoon", "moonplayer"}, Resolve: generic("Filemoon", nil)},
		{
			Name:     "Amazon",
			Patterns: []string{"amazon", "amz"},
			Match:    func(url string) bool { return !strings.Contains(url, "disable") },
			Resolve:  withPrefix(amz),
		},
		{Name: "Uqload", Patterns: []string{"uqload"}, Resolve: generic("Uqload", nil)},
		{Name: "Mp4Upload", Patterns: []string{"mp4upload"}, Resolve: generic("Mp4Upload", site)},
		{Name: "StreamWish", Patterns: []string{"wishembed", "streamwish", "strwish", "wish"}, Resolve: generic("StreamWish", site)},
		{
			Name:     "DoodStream",
			Patterns: []string{"doodstream", "dood.", "ds2play", "doods."},
			Resolve: func(ctx context.Context, url, prefix string) ([]media.Video, error) {
				return withPrefix(dood)(ctx, rewriteDood(url), prefix)
			},
		},
		{Name: "Streamlare", Patterns: []string{"streamlare"}, Resolve: generic("Streamlare", nil)},
		{Name: "YourUpload", Patterns: []string{"yourupload", "upload"}, Resolve: generic("YourUpload", site)},
		{Name: "BurstCloud", Patterns: []string{"burstcloud", "burst"}, Resolve: generic("BurstCloud", site)},
		{Name: "Fastream", Patterns: []string{"fastream"}, Resolve: generic("Fastream", nil)},
		{Name: "Upstream", Patterns: []string{"upstream"}, Resolve: generic("Upstream", nil)},
		{Name: "StreamSilk", Patterns: []string{"streamsilk"}, Resolve: generic("StreamSilk", nil)},
		{Name: "StreamTape", Patterns: []string{"streamtape", "stp", "stape"}, Resolve: withPrefix(tape)},
		{Name: "StreamHideVid", Patterns: []string{"ahvsh", "streamhide", "guccihide", "streamvid", "vidhide"}, Resolve: generic("StreamHideVid", nil)},
		{Name: "VidGuard", Patterns: []string{"vembed", "guard", "listeamed", "bembed", "vgfplay"}, Resolve: generic("VidGuard", nil)},
	}
}

// withPrefix adapts an extractor so the option's language tag and a
// separating space lead every label.
func withPrefix(e Extractor) func(context.Context, string, string) ([]media.Video, error) {
	return func(ctx context.Context, url, prefix string) ([]media.Video, error) {
		if prefix != "" {
			prefix = strings.TrimSpace(prefix) + " "
		}
		return e.Videos(ctx, url, prefix)
	}
}

// rewriteDood moves embeds off the retired doodstream.com domain.
func rewriteDood(url string) string {
	return strings.Replace(url, "https://doodstream.com/e/", "https://d0000d.com/e/", 1)
}
