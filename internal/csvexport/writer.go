package csvexport

import (
	"encoding/csv"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"joblocator/internal/domain"
)

// UTF-8 BOM bytes for Excel compatibility on Windows.
var BOM = []byte{0xEF, 0xBB, 0xBF}

// columns defines the CSV header row.
var columns = []string{
	"Posting",
	"Outcome",
	"Location",
	"Granularity",
	"Confidence",
	"Explanation",
	"Is Remote",
	"Remote Indicators",
	"Highlight Start",
	"Highlight End",
	"Country",
	"Model",
	"Prompt Version",
}

// Row is one extraction result tagged with the posting it came from.
type Row struct {
	Posting string
	Result  *domain.ExtractionResult
}

// Writer wraps csv.Writer for exporting extraction results as CSV.
type Writer struct {
	csv *csv.Writer
}

// NewWriter creates a Writer that writes CSV to w.
func NewWriter(w io.Writer) *Writer {
	return &Writer{csv: csv.NewWriter(w)}
}

// WriteHeader writes the header row.
func (w *Writer) WriteHeader() error {
	return w.csv.Write(columns)
}

// WriteRows converts a batch of results to CSV rows and writes them.
func (w *Writer) WriteRows(rows []Row) error {
	for i := range rows {
		if err := w.csv.Write(resultToRow(&rows[i])); err != nil {
			return err
		}
	}
	return nil
}

// Flush flushes the underlying csv.Writer buffer.
func (w *Writer) Flush() {
	w.csv.Flush()
}

// Error returns any error from the underlying csv.Writer.
func (w *Writer) Error() error {
	return w.csv.Error()
}

// resultToRow converts a single result to a row. A missing result leaves every
// column but the posting name empty; an absent location leaves Location and the
// highlight columns empty.
func resultToRow(r *Row) []string {
	row := make([]string, len(columns))
	row[0] = r.Posting

	res := r.Result
	if res == nil {
		return row
	}

	row[1] = string(res.Outcome)
	if res.Found() {
		row[2] = res.Answer
	}
	row[3] = string(res.Granularity)
	row[4] = strconv.FormatFloat(res.Confidence, 'f', 2, 64)
	row[5] = res.Explanation
	row[6] = formatBool(res.IsRemote)
	row[7] = strings.Join(res.RemoteIndicators, "; ")
	if res.Highlight != nil {
		row[8] = strconv.Itoa(res.Highlight.Start)
		row[9] = strconv.Itoa(res.Highlight.End)
	}
	row[10] = res.Country
	row[11] = res.Model
	row[12] = res.PromptVersion

	return row
}

func formatBool(v bool) string {
	if v {
		return "Yes"
	}
	return "No"
}

// nonAlphanumeric matches characters that are not alphanumeric, hyphen, or underscore.
var nonAlphanumeric = regexp.MustCompile(`[^a-zA-Z0-9_-]+`)

// multiUnderscore matches consecutive underscores.
var multiUnderscore = regexp.MustCompile(`_{2,}`)

// SanitizeFilename cleans a batch name for use in an output file name.
// Replaces non-alphanumeric chars (except - _) with _, collapses consecutive
// underscores, and truncates to 100 chars.
func SanitizeFilename(name string) string {
	s := nonAlphanumeric.ReplaceAllString(name, "_")
	s = multiUnderscore.ReplaceAllString(s, "_")
	s = strings.Trim(s, "_")
	if len(s) > 100 {
		s = s[:100]
	}
	return s
}

// BuildFilename returns {sanitized_batch_name}_locations_{YYYY-MM-DD}.csv.
func BuildFilename(batchName string, now time.Time) string {
	return fmt.Sprintf("%s_locations_%s.csv", SanitizeFilename(batchName), now.Format("2006-01-02"))
}
