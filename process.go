package rewards

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// maxLineSize bounds the length of a single extract line. Accounts holding
// many coins with long balance histories make for lines of several hundred
// kilobytes.
const maxLineSize = 16 * 1024 * 1024

// ProcessOptions tunes the driving loop of Process. The zero value reads the
// whole stream.
type ProcessOptions struct {
	// MaxRows stops reading after that many account rows. Zero means no limit.
	MaxRows int
	// OnRow is called with every row after it has been applied.
	OnRow func(Row)
	// ProgressEvery logs a progress line every that many rows. Zero disables it.
	ProgressEvery int
}

// Process reads an extract from r, applies each account row to e, then
// finalizes e and returns the report.
//
// The first line is the header. Any decode or arithmetic error stops the pass
// and no report is returned.
func Process(ctx context.Context, r io.Reader, e *Engine, opts ProcessOptions) (*Metrics, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lineNo, rows := 0, 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue // Skip empty lines
		}

		row, ok, err := DecodeRow(line)
		if err != nil {
			var de *DecodeError
			if lineNo == 1 && errors.As(err, &de) {
				// a header with another column title than "id".
				e.logger.Debug("skipping header line", zap.String("line", line))
				continue
			}
			if errors.As(err, &de) {
				de.Line = lineNo
			}
			return nil, err
		}
		if !ok {
			continue
		}

		if err := e.Apply(row); err != nil {
			return nil, fmt.Errorf("line %d: %w", lineNo, err)
		}
		rows++
		if opts.OnRow != nil {
			opts.OnRow(row)
		}
		if opts.ProgressEvery > 0 && rows%opts.ProgressEvery == 0 {
			e.logger.Debug("processing extract", zap.Int("rows", rows), zap.Int("line", lineNo))
		}
		if opts.MaxRows > 0 && rows >= opts.MaxRows {
			e.logger.Info("row limit reached, stopping early", zap.Int("rows", rows))
			break
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading from input: %w", err)
	}
	return e.Finalize(ctx)
}
