// Package media defines shared types for the pelisplus application.
package media

import "net/http"

// Status is the publication state reported for a title.
type Status int

const (
	StatusUnknown Status = iota
	StatusOngoing
	StatusCompleted
)

func (s Status) String() string {
	switch s {
	case StatusOngoing:
		return "ongoing"
	case StatusCompleted:
		return "completed"
	default:
		return "unknown"
	}
}

// CatalogEntry represents a single title from a listing page.
type CatalogEntry struct {
	Title        string `json:"title"`
	ThumbnailURL string `json:"thumbnail_url"`
	URL          string `json:"url"` // Relative to the site base, e.g. "/serie/the-bear"
}

// Details is a catalog entry enriched from the title page.
type Details struct {
	CatalogEntry
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
	Status      Status   `json:"-"`
}

// Page is one page of catalog results.
type Page struct {
	Entries     []CatalogEntry `json:"entries"`
	HasNextPage bool           `json:"has_next_page"`
}

// Filters narrows a search when no free-text query is given.
type Filters struct {
	Genre string // URI part, e.g. "generos/drama"; empty for none
	Year  string
}

// Episode represents one playable unit of a title.
type Episode struct {
	Number int    `json:"number"`
	Name   string `json:"name"`
	URL    string `json:"url"` // Relative to the site base
}

// Lang is the language tag prepended to video labels.
type Lang string

const (
	LangUnknown     Lang = ""
	LangLatino      Lang = "[LAT]"
	LangCastellano  Lang = "[CAST]"
	LangSubtitulado Lang = "[SUB]"
)

// PlayerOption pairs a language tag with the raw, still encoded player string
// found on an option page (an onclick handler or an iframe src).
type PlayerOption struct {
	Lang Lang
	Raw  string
}

// Video is a playable stream produced by a host extractor.
type Video struct {
	Label   string      `json:"label"`
	URL     string      `json:"url"`
	Headers http.Header `json:"headers,omitempty"` // Extra request headers, Referer included
}

// Referer returns the Referer header the stream must be requested with, if any.
func (v Video) Referer() string {
	if v.Headers == nil {
		return ""
	}
	return v.Headers.Get("Referer")
}
