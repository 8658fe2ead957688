package provider

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"pelisplus/internal/httputil"
	"pelisplus/internal/media"
)

// Genre is one entry of the site's genre selector.
type Genre struct {
	Name    string `json:"name"`
	URIPart string `json:"uri_part"` // Empty for "no genre"
}

// Genres is the site's genre selector in display order.
var Genres = []Genre{
	{"<selecionar>", ""},
	{"Peliculas", "peliculas"},
	{"Series", "series"},
	{"Doramas", "generos/dorama"},
	{"Animes", "animes"},
	{"Acción", "generos/accion"},
	{"Animación", "generos/animacion"},
	{"Aventura", "generos/aventura"},
	{"Ciencia Ficción", "generos/ciencia-ficcion"},
	{"Comedia", "generos/comedia"},
	{"Crimen", "generos/crimen"},
	{"Documental", "generos/documental"},
	{"Drama", "generos/drama"},
	{"Fantasía", "generos/fantasia"},
	{"Foreign", "generos/foreign"},
	{"Guerra", "generos/guerra"},
	{"Historia", "generos/historia"},
	{"Misterio", "generos/misterio"},
	{"Pelicula de Televisión", "generos/pelicula-de-la-television"},
	{"Romance", "generos/romance"},
	{"Suspense", "generos/suspense"},
	{"Terror", "generos/terror"},
	{"Western", "generos/western"},
}

// GenreByName finds a genre by display name, URI part or the slug after
// "generos/", ignoring case.
func GenreByName(name string) (Genre, bool) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Genres[0], true
	}
	return lo.Find(Genres, func(g Genre) bool {
		return strings.EqualFold(g.Name, name) ||
			(g.URIPart != "" && (strings.EqualFold(g.URIPart, name) ||
				strings.EqualFold(strings.TrimPrefix(g.URIPart, "generos/"), name)))
	})
}

// Filters returns the genre catalogue.
func (p *PelisPlusHD) Filters() []Genre {
	return Genres
}

// searchURL picks exactly one listing: free text, then genre, then year,
// then the movie catalogue.
func (p *PelisPlusHD) searchURL(query string, f media.Filters, page int) string {
	switch {
	case strings.TrimSpace(query) != "":
		return fmt.Sprintf("%s/search?s=%s&page=%d", p.base, httputil.EncodeQuery(query), page)
	case f.Genre != "":
		return fmt.Sprintf("%s/%s?page=%d", p.base, f.Genre, page)
	case strings.TrimSpace(f.Year) != "":
		return fmt.Sprintf("%s/year/%s?page=%d", p.base, url.PathEscape(strings.TrimSpace(f.Year)), page)
	default:
		return fmt.Sprintf("%s/peliculas?page=%d", p.base, page)
	}
}
