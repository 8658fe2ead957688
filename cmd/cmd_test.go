package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pelisplus/internal/prefs"
)

func TestTitleFromURL(t *testing.T) {
	tests := map[string]string{
		"/serie/the-bear/season/1/episode/2":              "the bear season 1 episode 2",
		"https://ww3.pelisplus.to/pelicula/dune-parte-dos": "dune parte dos",
		"/peliculas":                                      "peliculas",
	}
	for in, want := range tests {
		assert.Equal(t, want, titleFromURL(in), in)
	}
}

func TestParseFilters(t *testing.T) {
	t.Cleanup(func() { flagGenre, flagYear = "", "" })

	flagGenre, flagYear = "terror", "2023"
	f, err := parseFilters()
	require.NoError(t, err)
	assert.Equal(t, "generos/terror", f.Genre)
	assert.Equal(t, "2023", f.Year)

	flagGenre = ""
	f, err = parseFilters()
	require.NoError(t, err)
	assert.Empty(t, f.Genre)

	flagGenre = "telenovela"
	_, err = parseFilters()
	assert.Error(t, err)
}

func TestPrefKeys(t *testing.T) {
	assert.Equal(t, prefs.KeyServer, prefKeys["server"])
	assert.Equal(t, prefs.KeyQuality, prefKeys["quality"])
	assert.Equal(t, prefs.KeyQuality, prefKeys[prefs.KeyQuality])
}

func TestCommandsRegistered(t *testing.T) {
	for _, name := range []string{"popular", "search", "genres", "details", "episodes", "videos", "play", "prefs", "version"} {
		c, _, err := rootCmd.Find([]string{name})
		require.NoError(t, err, name)
		assert.Equal(t, name, c.Name())
	}
}
