package modarchive

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/hyperifyio/trackermeta/internal/extract"
)

// ResolveSearch is a convenience wrapper around Extractor.Search.
func ResolveSearch(body []byte, opts ...Option) ([]SearchMatch, error) {
	return NewExtractor(opts...).Search(body)
}

// Search extracts the matches listed on a filename search results page, in
// page order. A results page with no matches yields an empty slice and a
// nil error; a page without the results heading yields ErrNotFound. A result
// link whose href carries no module id fails the whole call.
func (e *Extractor) Search(body []byte) ([]SearchMatch, error) {
	doc, err := extract.Parse(body)
	if err != nil {
		return nil, fmt.Errorf("parse results page: %w", err)
	}
	l := e.layout
	if !doc.Has(l.ResultsHeading) {
		return nil, ErrNotFound
	}
	links := doc.All(l.ResultLink)
	out := make([]SearchMatch, 0, len(links))
	for _, a := range links {
		href, _ := extract.Attr(a, "href")
		id, err := idFromHref(href, l.IDParam)
		if err != nil {
			return nil, err
		}
		out = append(out, SearchMatch{ID: id, Filename: extract.Text(a)})
	}
	return out, nil
}

// idFromHref returns the number following param in href, stopping at the
// next query separator.
func idFromHref(href, param string) (uint32, error) {
	_, after, ok := strings.Cut(href, param)
	if !ok {
		return 0, fieldErr("id", href, fmt.Errorf("%w: %q", errMissing, param))
	}
	if i := strings.IndexAny(after, "&#"); i >= 0 {
		after = after[:i]
	}
	n, err := strconv.ParseUint(after, 10, 32)
	if err != nil {
		return 0, fieldErr("id", href, err)
	}
	return uint32(n), nil
}

// FirstMatch picks the match whose filename equals filename exactly, or the
// first match when none does. It returns ErrNotFound for an empty list.
func FirstMatch(matches []SearchMatch, filename string) (SearchMatch, error) {
	if len(matches) == 0 {
		return SearchMatch{}, ErrNotFound
	}
	for _, m := range matches {
		if m.Filename == filename {
			return m, nil
		}
	}
	return matches[0], nil
}

// IsNotFound reports whether err means the requested entity does not exist.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsMalformed reports whether err means the page could not be read.
func IsMalformed(err error) bool { return errors.Is(err, ErrMalformed) }
