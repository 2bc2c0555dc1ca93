package app

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	yaml "gopkg.in/yaml.v3"

	"github.com/hyperifyio/trackermeta/internal/modarchive"
)

// Output formats.
const (
	FormatPretty = "pretty"
	FormatCSV    = "csv"
	FormatJSON   = "json"
	FormatYAML   = "yaml"
)

// Formats lists the accepted output formats.
var Formats = []string{FormatPretty, FormatCSV, FormatJSON, FormatYAML}

func validFormat(f string) bool {
	for _, v := range Formats {
		if f == v {
			return true
		}
	}
	return false
}

// recordColumns is the CSV column order; it follows the record's field order.
var recordColumns = []string{
	"id", "filename", "title", "size", "md5", "format", "spotlit",
	"download_count", "fav_count", "scrape_time", "channel_count", "genre",
	"upload_date", "instrument_text",
}

func recordRow(r modarchive.ModuleRecord) []string {
	return []string{
		strconv.FormatUint(uint64(r.ID), 10),
		r.Filename,
		r.Title,
		r.Size,
		r.MD5,
		r.Format,
		strconv.FormatBool(r.Spotlit),
		strconv.FormatUint(uint64(r.DownloadCount), 10),
		strconv.FormatUint(uint64(r.FavCount), 10),
		r.ScrapeTime,
		strconv.FormatUint(uint64(r.ChannelCount), 10),
		r.Genre,
		r.UploadDate,
		r.InstrumentText,
	}
}

// WriteRecord renders rec to w in format. The csv format writes a single
// row without a header, matching one line per module when appended to a file.
func WriteRecord(w io.Writer, rec modarchive.ModuleRecord, format string) error {
	switch format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(recordRow(rec)); err != nil {
			return err
		}
		cw.Flush()
		return cw.Error()
	case FormatJSON:
		return writeJSON(w, rec)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(rec)
	case FormatPretty, "":
		row := recordRow(rec)
		width := 0
		for _, c := range recordColumns {
			if len(c) > width {
				width = len(c)
			}
		}
		for i, c := range recordColumns {
			v := row[i]
			if strings.Contains(v, "\n") {
				v = "\n" + indent(v, strings.Repeat(" ", width+2))
			}
			if _, err := fmt.Fprintf(w, "%-*s  %s\n", width, c, v); err != nil {
				return err
			}
		}
		_, err := fmt.Fprintf(w, "%-*s  %s\n", width, "download", rec.DownloadLink())
		return err
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

// WriteMatches renders a search result list to w in format.
func WriteMatches(w io.Writer, matches []modarchive.SearchMatch, format string) error {
	switch format {
	case FormatCSV:
		cw := csv.NewWriter(w)
		for _, m := range matches {
			if err := cw.Write([]string{strconv.FormatUint(uint64(m.ID), 10), m.Filename, m.DownloadLink()}); err != nil {
				return err
			}
		}
		cw.Flush()
		return cw.Error()
	case FormatJSON:
		if matches == nil {
			matches = []modarchive.SearchMatch{}
		}
		return writeJSON(w, matches)
	case FormatYAML:
		return yaml.NewEncoder(w).Encode(matches)
	case FormatPretty, "":
		for _, m := range matches {
			if _, err := fmt.Fprintf(w, "%8d  %s\n", m.ID, m.Filename); err != nil {
				return err
			}
		}
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
