package modarchive

import (
	"fmt"
	"strings"
	"time"

	"github.com/andybalholm/cascadia"

	"github.com/hyperifyio/trackermeta/internal/extract"
)

// Extractor reads archive pages using a fixed Layout and clock. The zero
// value is not usable; construct one with NewExtractor.
type Extractor struct {
	layout Layout
	now    func() time.Time
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithLayout replaces DefaultLayout.
func WithLayout(l Layout) Option {
	return func(e *Extractor) { e.layout = l }
}

// WithClock sets the clock used for ScrapeTime.
func WithClock(now func() time.Time) Option {
	return func(e *Extractor) {
		if now != nil {
			e.now = now
		}
	}
}

// NewExtractor returns an Extractor using DefaultLayout and time.Now unless
// overridden.
func NewExtractor(opts ...Option) *Extractor {
	e := &Extractor{layout: DefaultLayout(), now: time.Now}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Layout returns the layout in use.
func (e *Extractor) Layout() Layout { return e.layout }

// ExtractDetail is a convenience wrapper around Extractor.Detail.
func ExtractDetail(body []byte, id uint32, opts ...Option) (ModuleRecord, error) {
	return NewExtractor(opts...).Detail(body, id)
}

// Detail extracts a ModuleRecord from a module detail page. id is copied
// into the record as given. It returns ErrNotFound when the page has no
// archive info box, and an error wrapping ErrMalformed when any field cannot
// be read; no partial record is returned in either case.
func (e *Extractor) Detail(body []byte, id uint32) (ModuleRecord, error) {
	scraped := FormatScrapeTime(e.now())

	doc, err := extract.Parse(body)
	if err != nil {
		return ModuleRecord{}, fmt.Errorf("parse detail page: %w", err)
	}
	l := e.layout
	if !doc.Has(l.ArchiveInfo) {
		return ModuleRecord{}, ErrNotFound
	}

	spotlit := doc.Has(l.Featured)
	positions := l.positions(spotlit)
	stats := doc.All(l.StatItem)
	stat := func(s Stat) (string, error) {
		i := positions[s]
		if i < 0 || i >= len(stats) {
			return "", fieldErr(s.String(), "", fmt.Errorf("%w: stats item %d of %d", errMissing, i, len(stats)))
		}
		lb := l.Labels[s]
		return stripLabel(extract.Text(stats[i]), lb.Prefix, lb.Suffix), nil
	}
	count := func(s Stat) (uint32, error) {
		v, err := stat(s)
		if err != nil {
			return 0, err
		}
		return parseCount(s.String(), v)
	}

	rec := ModuleRecord{ID: id, Spotlit: spotlit, ScrapeTime: scraped}

	sub := doc.First(l.SubHeader)
	if sub == nil {
		return ModuleRecord{}, fieldErr("filename", "", errMissing)
	}
	rec.Filename = strings.TrimSpace(strings.NewReplacer("(", "", ")", "").Replace(extract.Text(sub)))

	h1 := doc.First(l.Heading)
	if h1 == nil {
		return ModuleRecord{}, fieldErr("title", "", errMissing)
	}
	title := strings.Replace(extract.Text(h1), " ("+rec.Filename+")", "", 1)
	rec.Title = strings.TrimSpace(title)

	if rec.UploadDate, err = uploadDate(stat, l.UploadMarker); err != nil {
		return ModuleRecord{}, err
	}
	if rec.DownloadCount, err = count(StatDownloads); err != nil {
		return ModuleRecord{}, err
	}
	if rec.FavCount, err = count(StatFavourites); err != nil {
		return ModuleRecord{}, err
	}
	md5, err := stat(StatMD5)
	if err != nil {
		return ModuleRecord{}, err
	}
	rec.MD5 = strings.ToLower(md5)
	if rec.Format, err = stat(StatFormat); err != nil {
		return ModuleRecord{}, err
	}
	if rec.ChannelCount, err = count(StatChannels); err != nil {
		return ModuleRecord{}, err
	}
	if rec.Size, err = stat(StatSize); err != nil {
		return ModuleRecord{}, err
	}
	if rec.Genre, err = stat(StatGenre); err != nil {
		return ModuleRecord{}, err
	}

	if rec.InstrumentText, err = instrumentText(doc, l.PreBlock, l.InstrumentBlock); err != nil {
		return ModuleRecord{}, err
	}
	return rec, nil
}

// uploadDate reads the first stats item, which reads like
// "Downloaded 1234 times since Tue 2nd Mar 2004 :D".
func uploadDate(stat func(Stat) (string, error), marker string) (string, error) {
	v, err := stat(StatUpload)
	if err != nil {
		return "", err
	}
	_, after, ok := strings.Cut(v, marker)
	if !ok {
		return "", fieldErr(StatUpload.String(), v, fmt.Errorf("%w: %q", errMissing, marker))
	}
	return strings.TrimSpace(after), nil
}

func instrumentText(doc *extract.Document, sel cascadia.Matcher, index int) (string, error) {
	pre := doc.Nth(sel, index)
	if pre == nil {
		return "", fieldErr("instrument_text", "", fmt.Errorf("%w: preformatted block %d", errMissing, index))
	}
	return strings.TrimSpace(extract.Text(pre)), nil
}
