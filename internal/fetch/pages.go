package fetch

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"golang.org/x/text/unicode/norm"
)

// DefaultBaseURL is the public archive.
const DefaultBaseURL = "https://modarchive.org"

// Pages fetches the two archive pages the scrapers understand.
type Pages struct {
	Client  *Client
	BaseURL string
}

func (p *Pages) base() string {
	if p.BaseURL == "" {
		return DefaultBaseURL
	}
	return strings.TrimRight(p.BaseURL, "/")
}

// DetailURL returns the module detail page URL for id.
func (p *Pages) DetailURL(id uint32) string {
	q := url.Values{}
	q.Set("request", "view_by_moduleid")
	q.Set("query", strconv.FormatUint(uint64(id), 10))
	return p.base() + "/index.php?" + encodeOrdered(q, "request", "query")
}

// SearchURL returns the filename search URL for query. The query is NFC
// normalized so that composed and decomposed spellings hit the same rows.
func (p *Pages) SearchURL(query string) string {
	q := url.Values{}
	q.Set("request", "search")
	q.Set("query", norm.NFC.String(query))
	q.Set("submit", "Find")
	q.Set("search_type", "filename")
	return p.base() + "/index.php?" + encodeOrdered(q, "request", "query", "submit", "search_type")
}

// Detail fetches the detail page body for id.
func (p *Pages) Detail(ctx context.Context, id uint32) ([]byte, error) {
	u := p.DetailURL(id)
	log.Debug().Str("url", u).Uint32("module_id", id).Msg("fetch detail page")
	b, err := p.Client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("fetch module %d: %w", id, err)
	}
	return b, nil
}

// Search fetches the results page body for query.
func (p *Pages) Search(ctx context.Context, query string) ([]byte, error) {
	u := p.SearchURL(query)
	log.Debug().Str("url", u).Str("query", query).Msg("fetch search page")
	b, err := p.Client.Get(ctx, u)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}
	return b, nil
}

// encodeOrdered is url.Values.Encode with a caller chosen key order.
func encodeOrdered(q url.Values, keys ...string) string {
	var b strings.Builder
	for _, k := range keys {
		for _, v := range q[k] {
			if b.Len() > 0 {
				b.WriteByte('&')
			}
			b.WriteString(url.QueryEscape(k))
			b.WriteByte('=')
			b.WriteString(url.QueryEscape(v))
		}
	}
	return b.String()
}
