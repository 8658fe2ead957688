package player

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"pelisplus/internal/httputil"
	"pelisplus/internal/media"
)

func video() media.Video {
	h := http.Header{}
	h.Set("Referer", "https://voe.sx/")
	h.Set("Origin", "https://voe.sx")
	h.Set("X-Token", "a,b")
	return media.Video{Label: "[LAT] Voe:1080p", URL: "https://cdn.example/master.m3u8", Headers: h}
}

func TestMPVArgs(t *testing.T) {
	args := mpvArgs(video(), "The Bear - E1")
	assert.Equal(t, []string{
		"https://cdn.example/master.m3u8",
		"--force-media-title=The Bear - E1",
		"--user-agent=" + httputil.UserAgent,
		"--referrer=https://voe.sx/",
		`--http-header-fields=Origin: https://voe.sx,X-Token: a\,b`,
	}, args)
}

func TestMPVArgsWithoutHeaders(t *testing.T) {
	args := mpvArgs(media.Video{URL: "https://cdn.example/v.mp4"}, "Dune")
	assert.Len(t, args, 3)
	assert.NotContains(t, args, "--referrer=")
}

func TestVLCArgs(t *testing.T) {
	args := vlcArgs(video(), "Dune")
	assert.Contains(t, args, "--http-referrer=https://voe.sx/")
	assert.Contains(t, args, "--play-and-exit")
	assert.Equal(t, "https://cdn.example/master.m3u8", args[0])
}

func TestNew(t *testing.T) {
	assert.Equal(t, "mpv", New("mpv").Name())
	assert.Equal(t, "vlc", New("vlc").Name())
	assert.Equal(t, "iina", New("iina").Name())
	assert.Equal(t, "mpv", New("unknown").Name())
}
