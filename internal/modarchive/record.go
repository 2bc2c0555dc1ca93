package modarchive

import "fmt"

// ModuleRecord is the metadata of one module as shown on its detail page.
type ModuleRecord struct {
	ID       uint32 `json:"id" yaml:"id"`
	// Filename is the sub-header text with parentheses removed and
	// surrounding whitespace trimmed.
	Filename string `json:"filename" yaml:"filename"`
	Title    string `json:"title" yaml:"title"`
	// Size is printed by the archive in human readable form, e.g. "94.95KB".
	Size          string `json:"size" yaml:"size"`
	MD5           string `json:"md5" yaml:"md5"`
	Format        string `json:"format" yaml:"format"`
	Spotlit       bool   `json:"spotlit" yaml:"spotlit"`
	DownloadCount uint32 `json:"download_count" yaml:"download_count"`
	FavCount      uint32 `json:"fav_count" yaml:"fav_count"`
	ChannelCount  uint32 `json:"channel_count" yaml:"channel_count"`
	Genre         string `json:"genre" yaml:"genre"`
	// UploadDate is kept as the archive prints it.
	UploadDate     string `json:"upload_date" yaml:"upload_date"`
	InstrumentText string `json:"instrument_text" yaml:"instrument_text"`
	// ScrapeTime is when the record was extracted, see FormatScrapeTime.
	ScrapeTime string `json:"scrape_time" yaml:"scrape_time"`
}

// DownloadLink returns the archive download URL for the module.
func (r ModuleRecord) DownloadLink() string {
	return DownloadLink(r.ID, r.Filename)
}

// SearchMatch is one row of a filename search.
type SearchMatch struct {
	ID       uint32 `json:"id" yaml:"id"`
	Filename string `json:"filename" yaml:"filename"`
}

// DownloadLink returns the archive download URL for the match.
func (m SearchMatch) DownloadLink() string {
	return DownloadLink(m.ID, m.Filename)
}

// DownloadLink formats the canonical download URL. The filename travels in
// the fragment so that download tools pick a sensible local name; it is not
// escaped.
func DownloadLink(id uint32, filename string) string {
	return fmt.Sprintf("https://api.modarchive.org/downloads.php?moduleid=%d#%s", id, filename)
}
