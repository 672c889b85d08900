package rewards

import (
	"errors"
	"fmt"
)

var (
	// ErrDegenerateInput is returned by Finalize when no row was applied:
	// per-user averages are undefined without users.
	ErrDegenerateInput = errors.New("no account rows were processed")

	// ErrFinalized is returned when an Engine is used after Finalize.
	ErrFinalized = errors.New("engine already finalized")
)

// rawExcerpt is the number of bytes of a raw line quoted in error messages.
const rawExcerpt = 120

// DecodeError reports a line that could not be split into an account id and
// a JSON holdings object.
type DecodeError struct {
	Line int    // 1-based line number, zero when unknown.
	Raw  string // the offending line, untruncated.
	Err  error
}

func (e *DecodeError) Error() string {
	raw := e.Raw
	if len(raw) > rawExcerpt {
		raw = raw[:rawExcerpt] + "..."
	}
	if e.Line > 0 {
		return fmt.Sprintf("decode error on line %d %q: %v", e.Line, raw, e.Err)
	}
	return fmt.Sprintf("decode error in %q: %v", raw, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ArithmeticError reports a figure of a holding that is not a valid decimal.
type ArithmeticError struct {
	AccountID string
	Coin      string
	Field     string
	Value     string
	Err       error
}

func (e *ArithmeticError) Error() string {
	return fmt.Sprintf("account %s, coin %s: invalid %s %q: %v", e.AccountID, e.Coin, e.Field, e.Value, e.Err)
}

func (e *ArithmeticError) Unwrap() error { return e.Err }

// UnrecognizedTierWarning reports a row whose loyalty tier is not one of the
// known titles. It never stops processing: the row is applied, only the tier
// count is skipped.
type UnrecognizedTierWarning struct {
	AccountID string
	Tier      string
}

func (w *UnrecognizedTierWarning) Error() string {
	return fmt.Sprintf("unexpected loyalty tier title %q for account %s", w.Tier, w.AccountID)
}
