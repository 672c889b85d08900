package rewards

import (
	"encoding/json"
	"fmt"
	"io"
)

// EncodeMetrics writes the report as indented JSON.
func EncodeMetrics(w io.Writer, m *Metrics) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal metrics: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write metrics: %w", err)
	}
	return nil
}

// DecodeMetrics reads a report written by EncodeMetrics.
//
// The per-user interest list is not part of the report, so a decoded Metrics
// cannot be finalized again.
func DecodeMetrics(r io.Reader) (*Metrics, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	m := NewMetrics()
	if err := json.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("not a rewards report: %w", err)
	}
	return m, nil
}

// EncodeRows writes rows as a single indented JSON object mapping each
// account id to its holdings, as read from the extract.
func EncodeRows(w io.Writer, rows []Row) error {
	var table Table[Holdings]
	for _, row := range rows {
		table.Set(row.AccountID, row.Holdings)
	}
	data, err := json.MarshalIndent(table, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal rows: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}
