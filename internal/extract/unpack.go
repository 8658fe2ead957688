package extract

import (
	"errors"
	"regexp"
	"strconv"
	"strings"
)

// Dean Edwards' p.a.c.k.e.r. output:
//
//	eval(function(p,a,c,k,e,d){...}('payload',radix,count,'w0|w1|...'.split('|'),0,{}))
var (
	packedArgs = regexp.MustCompile(`\}\s*\(\s*'((?:[^'\\]|\\.)*)'\s*,\s*(\d+)\s*,\s*(\d+)\s*,\s*'((?:[^'\\]|\\.)*)'\.split\(\s*'\|'\s*\)`)
	packedWord = regexp.MustCompile(`\b\w+\b`)
)

const packedMarker = "eval(function(p,a,c,k,e,"

const base62 = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"

var errNotPacked = errors.New("script is not packed")

// IsPacked reports whether src contains a packed script.
func IsPacked(src string) bool {
	return strings.Contains(src, packedMarker)
}

// Unpack decodes the first packed script in src.
func Unpack(src string) (string, error) {
	idx := strings.Index(src, packedMarker)
	if idx < 0 {
		return "", errNotPacked
	}
	m := packedArgs.FindStringSubmatch(src[idx:])
	if m == nil {
		return "", errNotPacked
	}

	payload := unescapeJS(m[1])
	radix, err := strconv.Atoi(m[2])
	if err != nil || radix < 2 || radix > len(base62) {
		return "", errors.New("unsupported packer radix " + m[2])
	}
	words := strings.Split(unescapeJS(m[4]), "|")

	return packedWord.ReplaceAllStringFunc(payload, func(w string) string {
		n, ok := unbase(w, radix, len(words))
		if !ok || n < 0 || n >= len(words) || words[n] == "" {
			return w
		}
		return words[n]
	}), nil
}

// UnpackAll appends every packed script found in body, decoded, to body.
func UnpackAll(body string) string {
	var b strings.Builder
	b.WriteString(body)
	rest := body
	for {
		idx := strings.Index(rest, packedMarker)
		if idx < 0 {
			break
		}
		if out, err := Unpack(rest[idx:]); err == nil {
			b.WriteByte('\n')
			b.WriteString(out)
		}
		rest = rest[idx+len(packedMarker):]
	}
	return b.String()
}

// unbase decodes w in the given radix. Values at or beyond limit are
// reported as not decodable, since they cannot index the word table.
func unbase(w string, radix, limit int) (int, bool) {
	if radix <= 36 {
		n, err := strconv.ParseInt(w, radix, 64)
		if err != nil || n < 0 || n >= int64(limit) {
			return 0, false
		}
		return int(n), true
	}
	n := 0
	for _, r := range w {
		d := strings.IndexRune(base62[:radix], r)
		if d < 0 {
			return 0, false
		}
		n = n*radix + d
		if n >= limit {
			return 0, false
		}
	}
	return n, true
}

func unescapeJS(s string) string {
	return strings.NewReplacer(`\\`, `\`, `\'`, `'`, `\"`, `"`).Replace(s)
}
