// Package rank orders resolved videos by the user's server and quality
// preferences.
package rank

import (
	"regexp"
	"slices"
	"strconv"
	"strings"

	"pelisplus/internal/media"
)

var resolutionPattern = regexp.MustCompile(`(\d+)p`)

// key is the comparison tuple, most significant field first.
type key struct {
	server     bool
	quality    bool
	resolution int
}

func boolCmp(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	default:
		return -1
	}
}

func (k key) compare(o key) int {
	if c := boolCmp(k.server, o.server); c != 0 {
		return c
	}
	if c := boolCmp(k.quality, o.quality); c != 0 {
		return c
	}
	return k.resolution - o.resolution
}

// Resolution returns the number in the first "<digits>p" token of label, or 0.
func Resolution(label string) int {
	m := resolutionPattern.FindStringSubmatch(label)
	if m == nil {
		return 0
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0
	}
	return n
}

// Sort returns videos ordered so that labels naming the preferred server come
// first, then labels containing the preferred quality token, then higher
// resolutions. The input slice is not modified.
//
// The tuple is sorted ascending with a stable sort and the result reversed,
// so videos with equal keys come out in reverse encounter order.
func Sort(videos []media.Video, server, quality string) []media.Video {
	server = strings.ToLower(server)

	type keyed struct {
		video media.Video
		key   key
	}
	items := make([]keyed, len(videos))
	for i, v := range videos {
		items[i] = keyed{
			video: v,
			key: key{
				server:     strings.Contains(strings.ToLower(v.Label), server),
				quality:    strings.Contains(v.Label, quality),
				resolution: Resolution(v.Label),
			},
		}
	}

	slices.SortStableFunc(items, func(a, b keyed) int {
		return a.key.compare(b.key)
	})
	slices.Reverse(items)

	out := make([]media.Video, len(items))
	for i, it := range items {
		out[i] = it.video
	}
	return out
}
