package extract

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenericFollowsIframe(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/e/abc", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><iframe src="%s/player/abc"></iframe></html>`, srv.URL)
	})
	mux.HandleFunc("/player/abc", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<script>player.setup({file:"https://cdn.example/movie.mp4"})</script>`)
	})

	g := NewGeneric(srv.Client(), "Uqload", nil)
	got, err := g.Videos(context.Background(), srv.URL+"/e/abc", "[CAST] ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "[CAST] Uqload", got[0].Label)
	assert.Equal(t, "https://cdn.example/movie.mp4", got[0].URL)
	assert.Equal(t, srv.URL+"/", got[0].Referer())
}

func TestGenericSiteHeadersStayOnPageRequest(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://site.example/", r.Header.Get("Referer"))
		fmt.Fprint(w, `sources: ["https://cdn.example/a.mp4"]`)
	}))
	defer srv.Close()

	headers := http.Header{}
	headers.Set("Referer", "https://site.example/")
	got, err := NewGeneric(srv.Client(), "YourUpload", headers).Videos(context.Background(), srv.URL, "")
	require.NoError(t, err)
	require.Len(t, got, 1)
	// Playback is referred by the host, not the catalog site.
	assert.Equal(t, srv.URL+"/", got[0].Referer())
}

func TestGenericNoSource(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html>removed</html>`)
	}))
	defer srv.Close()

	got, err := NewGeneric(srv.Client(), "Upstream", nil).Videos(context.Background(), srv.URL, "")
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestHostsWithoutStreamAreEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><body>File was deleted</body></html>`)
	}))
	defer srv.Close()

	extractors := map[string]Extractor{
		"voe":        NewVoe(srv.Client()),
		"okru":       NewOkru(srv.Client()),
		"dood":       NewDoodStream(srv.Client()),
		"streamtape": NewStreamTape(srv.Client()),
		"amazon":     newAmazon(srv.Client(), srv.URL),
	}
	for name, e := range extractors {
		t.Run(name, func(t *testing.T) {
			got, err := e.Videos(context.Background(), srv.URL+"/e/gone", "")
			require.NoError(t, err)
			assert.Empty(t, got)
		})
	}
}

func TestHostRequestFailureIsError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewGeneric(srv.Client(), "Upstream", nil).Videos(context.Background(), srv.URL, "")
	assert.Error(t, err)
}

func TestVoe(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/e/abc", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<script>window.location.href = '%s/mirror/abc';</script>`, srv.URL)
	})
	mux.HandleFunc("/mirror/abc", func(w http.ResponseWriter, r *http.Request) {
		// base64 of https://cdn.example/v.mp4
		fmt.Fprint(w, `var sources = {'mp4': 'aHR0cHM6Ly9jZG4uZXhhbXBsZS92Lm1wNA=='};`)
	})

	got, err := NewVoe(srv.Client()).Videos(context.Background(), srv.URL+"/e/abc", "[LAT] ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "[LAT] Voe", got[0].Label)
	assert.Equal(t, "https://cdn.example/v.mp4", got[0].URL)
}

func TestOkru(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		meta := `{\"videos\":[{\"name\":\"hd\",\"url\":\"https://vd.example/hd\"},{\"name\":\"full\",\"url\":\"https://vd.example/full\"}]}`
		opts := fmt.Sprintf(`{"flashvars":{"metadata":"%s"}}`, meta)
		fmt.Fprintf(w, `<div data-module="OKVideo" data-options='%s'></div>`, opts)
	}))
	defer srv.Close()

	got, err := NewOkru(srv.Client()).Videos(context.Background(), srv.URL, "[SUB] ")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "[SUB] Okru:720p", got[0].Label)
	assert.Equal(t, "[SUB] Okru:1080p", got[1].Label)
	assert.Equal(t, "https://vd.example/full", got[1].URL)
}

func TestDoodStream(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/e/abc", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<script>$.get('/pass_md5/123-abc/tok9', function(d){})</script>`)
	})
	mux.HandleFunc("/pass_md5/123-abc/tok9", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, srv.URL+"/e/abc", r.Header.Get("Referer"))
		fmt.Fprint(w, "https://cdn.example/dl/")
	})

	d := NewDoodStream(srv.Client())
	d.now = func() time.Time { return time.UnixMilli(1700000000000) }

	got, err := d.Videos(context.Background(), srv.URL+"/e/abc", "[LAT] ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "[LAT] DoodStream", got[0].Label)
	assert.True(t, strings.HasPrefix(got[0].URL, "https://cdn.example/dl/"))
	assert.True(t, strings.HasSuffix(got[0].URL, "?token=tok9&expiry=1700000000000"))
	assert.Len(t, got[0].URL, len("https://cdn.example/dl/")+10+len("?token=tok9&expiry=1700000000000"))
}

func TestStreamTape(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<script>document.getElementById('robotlink').innerHTML = '//streamtape.com/get_video?id=X&expires=1&ip=2&token=' + ('xcdTOKEN').substring(1).substring(2);</script>`)
	}))
	defer srv.Close()

	got, err := NewStreamTape(srv.Client()).Videos(context.Background(), srv.URL, "[LAT] ")
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "[LAT] StreamTape", got[0].Label)
	assert.Equal(t, "https://streamtape.com/get_video?id=X&expires=1&ip=2&token=TOKEN&stream=1", got[0].URL)
}
