package download

import (
	"net/http"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pelisplus/internal/httputil"
	"pelisplus/internal/media"
)

func TestFFmpegArgs(t *testing.T) {
	h := http.Header{}
	h.Set("Referer", "https://filemoon.sx/")
	v := media.Video{URL: "https://cdn.example/master.m3u8", Headers: h}

	args := ffmpegArgs(v, "Dune", "/tmp/Dune.mkv")
	assert.Equal(t, []string{
		"-y", "-user_agent", httputil.UserAgent,
		"-headers", "Referer: https://filemoon.sx/\r\n",
		"-i", "https://cdn.example/master.m3u8",
		"-c:v", "copy",
		"-c:a", "copy",
		"-metadata", "title=Dune",
		"/tmp/Dune.mkv",
	}, args)
}

func TestFFmpegArgsCustomUserAgent(t *testing.T) {
	h := http.Header{}
	h.Set("User-Agent", "okhttp")
	args := ffmpegArgs(media.Video{URL: "https://cdn.example/v.mp4", Headers: h}, "x", "/tmp/x.mkv")
	assert.Equal(t, "okhttp", args[2])
	assert.NotContains(t, args, "-headers")
}

func TestOutputPath(t *testing.T) {
	dir := t.TempDir()

	got, err := OutputPath(filepath.Join(dir, "nested"), "../The Bear: T1/E1")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "nested"), filepath.Dir(got))
	assert.Equal(t, ".mkv", filepath.Ext(got))
}
