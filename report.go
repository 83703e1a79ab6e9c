package termselect

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// TimestampFormat is the ISO-8601 layout used for report timestamps.
const TimestampFormat = "2006-01-02T15:04:05.000000Z07:00"

// Report is the document written for each inspection.
// A successful report carries the line results; a failed one carries only the error.
type Report struct {
	Success    bool
	Error      string
	Timestamp  time.Time
	SessionID  string
	SimpleText string
	Lines      []LineResult
}

// NewReport builds a successful report. SimpleText joins the selected text of every line
// with newlines.
func NewReport(sessionID string, lines []LineResult, now time.Time) *Report {
	texts := make([]string, len(lines))
	for i, line := range lines {
		texts[i] = line.SelectedText
	}

	return &Report{
		Success:    true,
		Timestamp:  now,
		SessionID:  sessionID,
		SimpleText: strings.Join(texts, "\n"),
		Lines:      lines,
	}
}

// NewFailureReport builds a report for a failed inspection.
func NewFailureReport(err error, now time.Time) *Report {
	return &Report{
		Success:   false,
		Error:     err.Error(),
		Timestamp: now,
	}
}

// NumLines returns the number of line results.
func (r *Report) NumLines() int {
	return len(r.Lines)
}

type successJSON struct {
	Success    bool         `json:"success"`
	Timestamp  string       `json:"timestamp"`
	SessionID  string       `json:"session_id"`
	NumLines   int          `json:"num_lines"`
	SimpleText string       `json:"simple_text"`
	Lines      []LineResult `json:"lines"`
}

type failureJSON struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	Timestamp string `json:"timestamp"`
}

// MarshalJSON encodes the success or the failure shape depending on r.Success.
func (r *Report) MarshalJSON() ([]byte, error) {
	ts := r.Timestamp.Format(TimestampFormat)
	if !r.Success {
		return json.Marshal(failureJSON{
			Success:   false,
			Error:     r.Error,
			Timestamp: ts,
		})
	}

	lines := r.Lines
	if lines == nil {
		lines = []LineResult{}
	}
	return json.Marshal(successJSON{
		Success:    true,
		Timestamp:  ts,
		SessionID:  r.SessionID,
		NumLines:   len(lines),
		SimpleText: r.SimpleText,
		Lines:      lines,
	})
}

// Encode returns the report as JSON indented by two spaces.
func (r *Report) Encode() ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode report: %w", err)
	}
	return append(data, '\n'), nil
}

// WriteFile writes the encoded report to path, creating parent directories and
// overwriting any previous report.
func (r *Report) WriteFile(path string) error {
	data, err := r.Encode()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	return nil
}
