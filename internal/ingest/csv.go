// Package ingest parses tabular reconciliation input into typed rows.
//
// The expected format is one CSV record per row: the target amount first,
// then the candidate charges. A header record is detected and skipped when
// its first field is not numeric. Records that fail the core's input
// contract are not dropped silently; they are reported per line so the
// caller can decide whether to reject, log, or skip them.
package ingest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/chargefit/reconcile-backend/internal/domain/fitter"
)

// LineError describes a record that could not be turned into a valid row.
type LineError struct {
	Line   int
	Reason string
}

func (e LineError) String() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Reason)
}

// ReadRows parses CSV records into rows. Blank lines are skipped. The
// returned LineErrors cover malformed or contract-violating records; the
// error return is reserved for unreadable input.
func ReadRows(r io.Reader) ([]fitter.Row, []LineError, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // rows carry varying candidate counts
	reader.TrimLeadingSpace = true

	var rows []fitter.Row
	var lineErrs []LineError

	for line := 1; ; line++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read record at line %d: %w", line, err)
		}

		if isBlank(record) {
			continue
		}

		// Header: first record whose leading field is not a number.
		if line == 1 {
			if _, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64); err != nil {
				continue
			}
		}

		row, err := parseRecord(record)
		if err != nil {
			lineErrs = append(lineErrs, LineError{Line: line, Reason: err.Error()})
			continue
		}
		if !fitter.IsValidRow(row) {
			lineErrs = append(lineErrs, LineError{Line: line, Reason: describeInvalid(row)})
			continue
		}

		rows = append(rows, row)
	}

	return rows, lineErrs, nil
}

// ReadFile parses rows from a CSV file on disk.
func ReadFile(path string) ([]fitter.Row, []LineError, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer func() { _ = f.Close() }()
	return ReadRows(f)
}

func parseRecord(record []string) (fitter.Row, error) {
	target, err := strconv.ParseFloat(strings.TrimSpace(record[0]), 64)
	if err != nil {
		return fitter.Row{}, fmt.Errorf("bad target %q", record[0])
	}

	candidates := make([]float64, 0, len(record)-1)
	for _, field := range record[1:] {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return fitter.Row{}, fmt.Errorf("bad candidate %q", field)
		}
		candidates = append(candidates, v)
	}

	return fitter.Row{Target: target, Candidates: candidates}, nil
}

func describeInvalid(row fitter.Row) string {
	switch {
	case len(row.Candidates) > fitter.MaxCandidates:
		return fmt.Sprintf("%d candidates exceeds the maximum of %d",
			len(row.Candidates), fitter.MaxCandidates)
	case row.Target <= 0:
		return fmt.Sprintf("target %v is not positive", row.Target)
	default:
		return "candidate amounts must be positive"
	}
}

func isBlank(record []string) bool {
	for _, field := range record {
		if strings.TrimSpace(field) != "" {
			return false
		}
	}
	return true
}
