package extract

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pelisplus/internal/media"
)

func stubRoute(name string, patterns ...string) Route {
	return Route{
		Name:     name,
		Patterns: patterns,
		Resolve: func(_ context.Context, url, prefix string) ([]media.Video, error) {
			return []media.Video{{Label: prefix + name, URL: url}}, nil
		},
	}
}

func TestDispatcherFirstMatchWins(t *testing.T) {
	d := NewDispatcherWithRoutes([]Route{
		stubRoute("Voe", "voe"),
		stubRoute("Any", "http"),
	}, nil)

	got := d.Dispatch(context.Background(), "http://VOE.sx/abc", "[LAT] ")
	require.Len(t, got, 1)
	assert.Equal(t, "[LAT] Voe", got[0].Label)

	got = d.Dispatch(context.Background(), "http://other.example/abc", "")
	require.Len(t, got, 1)
	assert.Equal(t, "Any", got[0].Label)
}

func TestDispatcherUnmatchedAndEmpty(t *testing.T) {
	d := NewDispatcherWithRoutes([]Route{stubRoute("Voe", "voe")}, nil)

	assert.Empty(t, d.Dispatch(context.Background(), "https://unknown.example/e/1", "[LAT]"))
	assert.Empty(t, d.Dispatch(context.Background(), "", "[LAT]"))

	res := d.Resolve(context.Background(), "https://unknown.example/e/1", "")
	assert.True(t, res.IsOk())
}

func TestDispatcherSwallowsFailures(t *testing.T) {
	d := NewDispatcherWithRoutes([]Route{
		{
			Name:     "Broken",
			Patterns: []string{"broken"},
			Resolve: func(context.Context, string, string) ([]media.Video, error) {
				return nil, errors.New("boom")
			},
		},
		{
			Name:     "Panics",
			Patterns: []string{"panics"},
			Resolve: func(context.Context, string, string) ([]media.Video, error) {
				panic("index out of range")
			},
		},
	}, nil)

	assert.Empty(t, d.Dispatch(context.Background(), "https://broken.example/e", ""))
	assert.Empty(t, d.Dispatch(context.Background(), "https://panics.example/e", ""))

	res := d.Resolve(context.Background(), "https://panics.example/e", "")
	require.True(t, res.IsError())
	assert.Contains(t, res.Error().Error(), "Panics")
}

func TestDefaultRoutesOrder(t *testing.T) {
	d := NewDispatcher(http.DefaultClient, Options{})

	tests := []struct {
		url  string
		want string
	}{
		{"https://voe.sx/e/abc", "Voe"},
		{"https://ok.ru/videoembed/123", "Okru"},
		{"https://filemoon.sx/e/abc", "Filemoon"},
		{"https://www.amazon.com/clouddrive/share/xyz", "Amazon"},
		{"https://uqload.co/embed-abc.html", "Uqload"},
		{"https://www.mp4upload.com/embed-abc.html", "Mp4Upload"},
		{"https://streamwish.to/e/abc", "StreamWish"},
		{"https://dood.la/e/abc", "DoodStream"},
		{"https://streamlare.com/e/abc", "Streamlare"},
		{"https://www.yourupload.com/embed/abc", "YourUpload"},
		{"https://www.burstcloud.co/embed/abc", "BurstCloud"},
		{"https://fastream.to/emb.html?abc", "Fastream"},
		{"https://upstream.to/embed-abc.html", "Upstream"},
		{"https://streamsilk.com/p/abc", "StreamSilk"},
		{"https://streamtape.com/e/abc", "StreamTape"},
		{"https://vidhide.com/v/abc", "StreamHideVid"},
		{"https://listeamed.net/e/abc", "VidGuard"},
		// "upload" in the path must not shadow earlier hosts.
		{"https://voe.sx/upload/abc", "Voe"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			r, ok := d.Match(tt.url)
			require.True(t, ok, tt.url)
			assert.Equal(t, tt.want, r.Name)
		})
	}

	assert.Len(t, d.Routes(), 17)
}

func TestAmazonDisabledSkipsRoute(t *testing.T) {
	d := NewDispatcher(http.DefaultClient, Options{})
	_, ok := d.Match("https://amazon.example/disable/share")
	assert.False(t, ok)
}

func TestAmazonResolution(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/amazon/share/abc", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><script>var shareId = "SHARE1"; var x = 1;</script></head></html>`)
	})
	mux.HandleFunc("/drive/v1/shares/SHARE1", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "V2", r.URL.Query().Get("resourceVersion"))
		fmt.Fprint(w, `{"nodeInfo":{"id":"NODE9","kind":"FOLDER"}}`)
	})
	mux.HandleFunc("/drive/v1/nodes/NODE9/children", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "SHARE1", r.URL.Query().Get("shareId"))
		fmt.Fprint(w, `{"count":1,"data":[{"childCounts":{"FOLDER":0,"FILE":0},"kind":"FILE","tempLink":"https://cdn.example/movie.mp4"}]}`)
	})

	d := NewDispatcher(srv.Client(), Options{AmazonAPI: srv.URL})
	got := d.Dispatch(context.Background(), srv.URL+"/amazon/share/abc", "[LAT]")

	require.Len(t, got, 1)
	assert.Equal(t, "[LAT] Amazon", got[0].Label)
	assert.Equal(t, "https://cdn.example/movie.mp4", got[0].URL)
}

func TestAmazonMissingMarkerIsEmpty(t *testing.T) {
	mux := http.NewServeMux()
	srv := httptest.NewServer(mux)
	defer srv.Close()

	mux.HandleFunc("/amazon/share/abc", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><script>var shareId = "S"</script></html>`)
	})
	mux.HandleFunc("/drive/v1/shares/S", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"id":"N"}`)
	})
	mux.HandleFunc("/drive/v1/nodes/N/children", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"data":[]}`)
	})

	d := NewDispatcher(srv.Client(), Options{AmazonAPI: srv.URL})
	res := d.Resolve(context.Background(), srv.URL+"/amazon/share/abc", "[LAT]")
	require.False(t, res.IsError(), "missing marker must not be an error")
	assert.Empty(t, res.MustGet())
	assert.Empty(t, d.Dispatch(context.Background(), srv.URL+"/amazon/share/abc", "[LAT]"))
}

func TestRewriteDood(t *testing.T) {
	assert.Equal(t, "https://d0000d.com/e/x", rewriteDood("https://doodstream.com/e/x"))
	assert.Equal(t, "https://dood.la/e/x", rewriteDood("https://dood.la/e/x"))
}
