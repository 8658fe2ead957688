package provider

import (
	"errors"
	"fmt"

	"pelisplus/internal/httputil"
)

// HTTPStatusError reports a listing or episode page that did not answer 200.
type HTTPStatusError = httputil.StatusError

// MissingMarkupError reports a required element absent from a page.
type MissingMarkupError struct {
	Selector string
	URL      string
}

func (e *MissingMarkupError) Error() string {
	return fmt.Sprintf("missing %q on %s", e.Selector, e.URL)
}

// ErrEmptyPlayerURL is returned when a player option yields no URL.
var ErrEmptyPlayerURL = errors.New("empty player URL")
