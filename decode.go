package rewards

import (
	"encoding/json"
	"errors"
	"strings"
)

// headerID is the account id column title of the extract header line.
const headerID = "id"

var errMissingPayload = errors.New("missing ',' between account id and holdings")

// Row is one account record of the extract.
type Row struct {
	AccountID string
	Holdings  Holdings
}

// DecodeRow splits a line of the extract into its account id and holdings.
//
// The holdings JSON may itself contain commas, so the line is split on its
// first comma only. The header line returns ok == false and no error. Any
// other line that cannot be decoded returns a *DecodeError.
func DecodeRow(line string) (row Row, ok bool, err error) {
	id, payload, found := strings.Cut(line, ",")
	if id == headerID {
		return Row{}, false, nil
	}
	if !found {
		return Row{}, false, &DecodeError{Raw: line, Err: errMissingPayload}
	}

	var holdings Holdings
	if err := json.Unmarshal([]byte(payload), &holdings); err != nil {
		return Row{}, false, &DecodeError{Raw: line, Err: err}
	}
	return Row{AccountID: id, Holdings: holdings}, true, nil
}
