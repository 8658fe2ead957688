// Package provider defines the interface for catalog sources and the
// PelisPlusHD implementation.
package provider

import (
	"context"

	"pelisplus/internal/media"
)

// Source is the interface that catalog sources must implement.
type Source interface {
	// Popular returns one page of the most watched titles.
	Popular(ctx context.Context, page int) (media.Page, error)

	// Search returns one page of results. A non-blank query wins over filters.
	Search(ctx context.Context, query string, filters media.Filters, page int) (media.Page, error)

	// Details returns the metadata shown on a title page.
	Details(ctx context.Context, entryURL string) (media.Details, error)

	// Episodes lists the playable units of a title, newest first.
	Episodes(ctx context.Context, entryURL string) ([]media.Episode, error)

	// Videos resolves an episode into playable streams.
	Videos(ctx context.Context, episodeURL string) ([]media.Video, error)

	// Filters returns the genre catalogue usable in Search.
	Filters() []Genre
}
