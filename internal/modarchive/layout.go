package modarchive

import "github.com/andybalholm/cascadia"

// Stat identifies one entry of the detail page's stats list.
type Stat int

const (
	StatUpload Stat = iota
	StatDownloads
	StatFavourites
	StatMD5
	StatFormat
	StatChannels
	StatSize
	StatGenre
	numStats
)

var statNames = [numStats]string{
	StatUpload:     "upload_date",
	StatDownloads:  "download_count",
	StatFavourites: "fav_count",
	StatMD5:        "md5",
	StatFormat:     "format",
	StatChannels:   "channel_count",
	StatSize:       "size",
	StatGenre:      "genre",
}

func (s Stat) String() string {
	if s < 0 || s >= numStats {
		return "stat"
	}
	return statNames[s]
}

// Label is the text the archive prints around a stat value.
type Label struct {
	Prefix string
	Suffix string
}

// Offsets are the three positional knobs that can be overridden from a
// persisted file when the upstream layout drifts.
type Offsets struct {
	// StatOffset is added to every stats list index.
	StatOffset int `yaml:"statOffset" json:"statOffset"`
	// SpotlitShift is added to the stats list indices at or after
	// Layout.SpotlitShiftFrom on spotlit pages only.
	SpotlitShift int `yaml:"spotlitShift" json:"spotlitShift"`
	// InstrumentBlock is the index of the <pre> block holding the
	// instrument text.
	InstrumentBlock int `yaml:"instrumentBlock" json:"instrumentBlock"`
}

// Layout describes where each field lives on the archive's pages.
type Layout struct {
	ArchiveInfo    cascadia.Matcher
	SubHeader      cascadia.Matcher
	Heading        cascadia.Matcher
	Featured       cascadia.Matcher
	StatItem       cascadia.Matcher
	PreBlock       cascadia.Matcher
	ResultsHeading cascadia.Matcher
	ResultLink     cascadia.Matcher

	// StatIndex maps each stat to its position in the stats list.
	StatIndex [numStats]int
	Labels    [numStats]Label

	// UploadMarker separates the download counter text from the upload
	// date inside the StatUpload item.
	UploadMarker string

	// IDParam is the href parameter carrying the module id in result links.
	IDParam string

	Offsets
	// SpotlitShiftFrom is the first stats list index affected by
	// SpotlitShift.
	SpotlitShiftFrom int
}

// DefaultLayout matches the archive's markup as of this writing. Its
// SpotlitShift is zero on purpose: the featured box sits outside the stats
// list, so a spotlit page only sets ModuleRecord.Spotlit.
func DefaultLayout() Layout {
	return Layout{
		ArchiveInfo:    cascadia.MustCompile(".mod-page-archive-info"),
		SubHeader:      cascadia.MustCompile(".module-sub-header"),
		Heading:        cascadia.MustCompile("h1"),
		Featured:       cascadia.MustCompile(".mod-page-featured"),
		StatItem:       cascadia.MustCompile("li.stats"),
		PreBlock:       cascadia.MustCompile("pre"),
		ResultsHeading: cascadia.MustCompile("h1.site-wide-page-head-title"),
		ResultLink:     cascadia.MustCompile("a.standard-link[title]"),
		StatIndex: [numStats]int{
			StatUpload:     0,
			StatDownloads:  2,
			StatFavourites: 3,
			StatMD5:        4,
			StatFormat:     5,
			StatChannels:   6,
			StatSize:       7,
			StatGenre:      8,
		},
		Labels: [numStats]Label{
			StatUpload:     {Suffix: " :D"},
			StatDownloads:  {Prefix: "Downloads: "},
			StatFavourites: {Prefix: "Favourited: ", Suffix: " times"},
			StatMD5:        {Prefix: "MD5: "},
			StatFormat:     {Prefix: "Format: "},
			StatChannels:   {Prefix: "Channels: "},
			StatSize:       {Prefix: "Uncompressed Size: "},
			StatGenre:      {Prefix: "Genre: "},
		},
		UploadMarker:     " times since ",
		IDParam:          "query=",
		Offsets:          Offsets{InstrumentBlock: 1},
		SpotlitShiftFrom: 1,
	}
}

// WithOffsets returns a copy of l using o.
func (l Layout) WithOffsets(o Offsets) Layout {
	l.Offsets = o
	return l
}

// positions resolves the stats list index of every stat for a page. The
// spotlit shift is applied here, once.
func (l Layout) positions(spotlit bool) (stats [numStats]int) {
	for s := Stat(0); s < numStats; s++ {
		i := l.StatIndex[s] + l.StatOffset
		if spotlit && l.StatIndex[s] >= l.SpotlitShiftFrom {
			i += l.SpotlitShift
		}
		stats[s] = i
	}
	return stats
}
