package extract

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const packedPlayer = `<script>eval(function(p,a,c,k,e,d){while(c--)if(k[c])p=p.replace(new RegExp('\\b'+c.toString(a)+'\\b','g'),k[c]);return p}('0 1={2:"3://4.5/6.7"}',8,8,'var|player|file|https|cdn|example|master|m3u8'.split('|'),0,{}))</script>`

func TestUnpack(t *testing.T) {
	require.True(t, IsPacked(packedPlayer))

	out, err := Unpack(packedPlayer)
	require.NoError(t, err)
	assert.Equal(t, `var player={file:"https://cdn.example/master.m3u8"}`, out)
}

func TestUnpackBase62(t *testing.T) {
	words := make([]string, 40)
	words[10] = "ten"
	words[36] = "upper"
	src := `eval(function(p,a,c,k,e,d){}('a A z',62,40,'` + strings.Join(words, "|") + `'.split('|'),0,{}))`

	out, err := Unpack(src)
	require.NoError(t, err)
	// Empty word slots keep the original token.
	assert.Equal(t, "ten upper z", out)
}

func TestUnpackNotPacked(t *testing.T) {
	_, err := Unpack("var x = 1;")
	assert.Error(t, err)
	assert.False(t, IsPacked("var x = 1;"))
}

func TestFindSourceInPackedScript(t *testing.T) {
	assert.Equal(t, "https://cdn.example/master.m3u8", findSource(packedPlayer))
	assert.Equal(t, "https://cdn.example/v.mp4", findSource(`jwplayer("x").setup({sources: [{file:"https://cdn.example/v.mp4"}]})`))
	assert.Equal(t, "https://cdn.example/p.m3u8", findSource(`{src: '//cdn.example/p.m3u8', type: 'hls'}`))
	assert.Empty(t, findSource(`<html>nothing here</html>`))
}

func TestUnpackLongWordsOutsideTable(t *testing.T) {
	src := `eval(function(p,a,c,k,e,d){return p}('0 ZZZZZZZZZZZZ',62,1,'file'.split('|'),0,{}))`

	var out string
	require.NotPanics(t, func() {
		var err error
		out, err = Unpack(src)
		require.NoError(t, err)
	})
	assert.Equal(t, "file ZZZZZZZZZZZZ", out)
}

func TestUnbaseLimit(t *testing.T) {
	tests := []struct {
		word  string
		radix int
		limit int
		want  int
		ok    bool
	}{
		{"Z", 62, 100, 61, true},
		{"10", 62, 100, 62, true},
		{"10", 62, 62, 0, false},
		{"ZZZZZZZZZZZZ", 62, 1000, 0, false},
		{"7", 8, 8, 7, true},
		{"10", 8, 8, 0, false},
		{"zzzzzzzzzzzzzzzz", 36, 10, 0, false},
		{"-1", 10, 10, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.word, func(t *testing.T) {
			n, ok := unbase(tt.word, tt.radix, tt.limit)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, n)
		})
	}
}
