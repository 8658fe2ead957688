package provider

import (
	"context"
	"encoding/base64"
	"errors"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/samber/lo"

	"pelisplus/internal/media"
)

var (
	// videoOptionPattern captures the option endpoints listed in the
	// episode page's player script.
	videoOptionPattern = regexp.MustCompile(`'(https?://[^']*)'`)
	linkPattern        = regexp.MustCompile(`https?://(www\.)?[-a-zA-Z0-9@:%._+~#=]{1,256}\.[a-zA-Z0-9()]{1,6}\b([-a-zA-Z0-9()@:%_+.~#?&/=]*)`)
)

const (
	playerScriptMarker = "video[1] = "
	selPlayerOption    = `#PlayerDisplay div[class*="OptionsLangDisp"] div[class*="ODDIV"] div[class*="OD"] li`
)

// optionEndpoints returns the option URLs from the first script holding
// the player table, or nil when there is none.
func optionEndpoints(doc *goquery.Document) []string {
	var script string
	doc.Find("script").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if text := s.Text(); strings.Contains(text, playerScriptMarker) {
			script = text
			return false
		}
		return true
	})
	if script == "" {
		return nil
	}
	return lo.Map(videoOptionPattern.FindAllStringSubmatch(script, -1), func(m []string, _ int) string {
		return m[1]
	})
}

// parsePlayerOptions reads an option page. A page embedding an iframe is a
// single untagged option; otherwise every language entry is one option.
func parsePlayerOptions(doc *goquery.Document) []media.PlayerOption {
	if iframes := doc.Find("iframe"); iframes.Length() > 0 {
		return []media.PlayerOption{{Lang: media.LangUnknown, Raw: firstAttr(iframes, "src")}}
	}

	var opts []media.PlayerOption
	doc.Find(selPlayerOption).Each(func(_ int, s *goquery.Selection) {
		opts = append(opts, media.PlayerOption{
			Lang: LangFromTag(s.AttrOr("data-lang", "")),
			Raw:  s.AttrOr("onclick", ""),
		})
	})
	return opts
}

// LangFromTag maps a data-lang attribute to a label tag.
func LangFromTag(tag string) media.Lang {
	t := strings.ToLower(tag)
	containsAny := func(subs ...string) bool {
		return lo.SomeBy(subs, func(s string) bool { return strings.Contains(t, s) })
	}
	switch {
	case containsAny("0", "lat"):
		return media.LangLatino
	case containsAny("1", "cast"):
		return media.LangCastellano
	case containsAny("2", "eng", "sub"):
		return media.LangSubtitulado
	default:
		return media.LangUnknown
	}
}

// ExtractPlayerURL strips the player call and poster parameters around the
// URL in an onclick handler or iframe src.
func ExtractPlayerURL(raw string) (string, error) {
	u := substringAfter(raw, "go_to_player('")
	u = substringAfter(u, "go_to_playerVast('")
	for _, marker := range []string{"?cover_url=", "')", "',", "?poster", "?c_poster=", "?thumb=", "#poster="} {
		u = substringBefore(u, marker)
	}
	if u == "" {
		return "", ErrEmptyPlayerURL
	}
	return u, nil
}

// NormalizeURL turns an extracted player string into a host URL. Strings
// that are not links are base64 payloads; "?data=" links are redirect pages
// whose first iframe is the host.
func (p *PelisPlusHD) NormalizeURL(ctx context.Context, u string) (string, error) {
	if !linkPattern.MatchString(u) {
		return decodeBase64(u)
	}
	if !strings.Contains(u, "?data=") {
		return u, nil
	}

	doc, err := p.fetchDocument(ctx, u, false)
	if err != nil {
		return "", err
	}
	return doc.Find("iframe").First().AttrOr("src", ""), nil
}

var base64Encodings = []*base64.Encoding{
	base64.StdEncoding,
	base64.RawStdEncoding,
	base64.URLEncoding,
	base64.RawURLEncoding,
}

// decodeBase64 accepts padded or unpadded input in either alphabet, and
// ignores embedded whitespace.
func decodeBase64(s string) (string, error) {
	s = strings.Join(strings.Fields(s), "")
	var errs []error
	for _, enc := range base64Encodings {
		in := s
		if enc == base64.RawStdEncoding || enc == base64.RawURLEncoding {
			in = strings.TrimRight(s, "=")
		}
		b, err := enc.DecodeString(in)
		if err == nil {
			return string(b), nil
		}
		errs = append(errs, err)
	}
	return "", errors.Join(errs...)
}

func firstAttr(s *goquery.Selection, name string) string {
	var out string
	s.EachWithBreak(func(_ int, e *goquery.Selection) bool {
		if v, ok := e.Attr(name); ok {
			out = v
			return false
		}
		return true
	})
	return out
}

func substringAfter(s, marker string) string {
	if _, after, ok := strings.Cut(s, marker); ok {
		return after
	}
	return s
}

func substringBefore(s, marker string) string {
	if before, _, ok := strings.Cut(s, marker); ok {
		return before
	}
	return s
}
