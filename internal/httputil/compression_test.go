package httputil

import (
	"bytes"
	"compress/gzip"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const page = `<html><body><div class="Posters"></div></body></html>`

func compressed(t *testing.T, encoding string) []byte {
	t.Helper()
	var buf bytes.Buffer
	switch encoding {
	case "gzip":
		w := gzip.NewWriter(&buf)
		_, err := w.Write([]byte(page))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case "br":
		w := brotli.NewWriter(&buf)
		_, err := w.Write([]byte(page))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	case "zstd":
		w, err := zstd.NewWriter(&buf)
		require.NoError(t, err)
		_, err = w.Write([]byte(page))
		require.NoError(t, err)
		require.NoError(t, w.Close())
	default:
		buf.WriteString(page)
	}
	return buf.Bytes()
}

func TestGetBodyDecompresses(t *testing.T) {
	for _, encoding := range []string{"", "gzip", "br", "zstd"} {
		t.Run("encoding="+encoding, func(t *testing.T) {
			payload := compressed(t, encoding)
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "gzip, br, zstd", r.Header.Get("Accept-Encoding"))
				assert.Equal(t, UserAgent, r.Header.Get("User-Agent"))
				if encoding != "" {
					w.Header().Set("Content-Encoding", encoding)
				}
				_, _ = w.Write(payload)
			}))
			defer server.Close()

			body, err := GetBody(context.Background(), NewClient(5*time.Second), server.URL, nil)
			require.NoError(t, err)
			assert.Equal(t, page, string(body))
		})
	}
}

func TestGetBodyStatusError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	_, err := GetBody(context.Background(), NewClient(0), server.URL, nil)
	require.Error(t, err)

	var statusErr *StatusError
	require.ErrorAs(t, err, &statusErr)
	assert.Equal(t, http.StatusForbidden, statusErr.StatusCode)
}

func TestGetOverridesHeaders(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "https://ref.example/", r.Header.Get("Referer"))
		assert.Equal(t, "custom-agent", r.Header.Get("User-Agent"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	hdr := http.Header{}
	hdr.Set("Referer", "https://ref.example/")
	hdr.Set("User-Agent", "custom-agent")
	resp, err := Get(context.Background(), NewClient(0), server.URL, hdr)
	require.NoError(t, err)
	resp.Body.Close()
}

func TestContentEncoding(t *testing.T) {
	assert.Equal(t, "", contentEncoding(""))
	assert.Equal(t, "gzip", contentEncoding(" GZIP "))
	assert.Equal(t, "br", contentEncoding("gzip, br"))
}
