// Package report renders probe results incrementally (one line per source)
// and keeps the running counts that decide the process exit status.
package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/fatih/color"

	"github.com/hamed0406/preflight/internal/probe"
)

type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// ParseFormat maps the CLI flag value onto a Format.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case FormatText, FormatJSON, FormatCSV:
		return Format(s), nil
	}
	return "", fmt.Errorf("unknown output format %q", s)
}

var (
	okTag     = color.New(color.FgGreen, color.Bold).SprintFunc()
	failedTag = color.New(color.FgRed, color.Bold).SprintFunc()
)

// Writer emits one line per result in the configured format. Report is
// serialized internally so parallel probes never interleave partial lines.
type Writer struct {
	mu         sync.Mutex
	out        io.Writer
	format     Format
	csvOut     *csv.Writer
	headerDone bool
}

func NewWriter(out io.Writer, format Format) *Writer {
	w := &Writer{out: out, format: format}
	if format == FormatCSV {
		w.csvOut = csv.NewWriter(out)
	}
	return w
}

// jsonLine is the newline-delimited JSON shape: one object per result, not
// a JSON array.
type jsonLine struct {
	URL          string `json:"url"`
	Status       string `json:"status"`
	Code         string `json:"code"`
	ResponseTime string `json:"response_time"`
}

func (w *Writer) Report(r probe.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.format {
	case FormatJSON:
		line := jsonLine{
			URL:          r.URL,
			Status:       statusWord(r.OK),
			Code:         r.Code,
			ResponseTime: elapsedField(r.Elapsed),
		}
		b, err := json.Marshal(line)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintf(w.out, "%s\n", b)
		return err

	case FormatCSV:
		if !w.headerDone {
			if err := w.csvOut.Write([]string{"URL", "Status", "Code", "ResponseTime"}); err != nil {
				return err
			}
			w.headerDone = true
		}
		if err := w.csvOut.Write([]string{r.URL, statusWord(r.OK), r.Code, elapsedField(r.Elapsed)}); err != nil {
			return err
		}
		w.csvOut.Flush()
		return w.csvOut.Error()

	default:
		tag := okTag("OK")
		if !r.OK {
			tag = failedTag("FAILED")
		}
		_, err := fmt.Fprintf(w.out, "%-48s %s %s (%s)\n", r.URL, tag, r.Code, elapsedText(r.Elapsed))
		return err
	}
}

// Summary prints the trailing block in text mode; the machine formats omit
// it and leave aggregation to the consumer.
func (w *Writer) Summary(s *Summary) error {
	if w.format != FormatText {
		return nil
	}
	w.mu.Lock()
	defer w.mu.Unlock()

	if _, err := fmt.Fprintf(w.out, "\nProbed %d sources: %d ok, %d failed\n",
		s.Total(), s.Success(), s.Failed()); err != nil {
		return err
	}
	failed := s.FailedURLs()
	if len(failed) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w.out, "Failed:"); err != nil {
		return err
	}
	for _, u := range failed {
		if _, err := fmt.Fprintf(w.out, "  - %s\n", u); err != nil {
			return err
		}
	}
	return nil
}

func statusWord(ok bool) string {
	if ok {
		return "OK"
	}
	return "FAILED"
}

func elapsedField(e float64) string {
	if e < 0 {
		return "unavailable"
	}
	return fmt.Sprintf("%.3f", e)
}

func elapsedText(e float64) string {
	if e < 0 {
		return "unavailable"
	}
	return fmt.Sprintf("%.2fs", e)
}
