package rewards

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/PaesslerAG/jsonpath"
)

// Query evaluates a JSONPath expression against a report, for instance
// "$.stats.totalUsers" or "$.coinDistributionsLevels.BTC.medianValue".
func Query(r io.Reader, path string) (any, error) {
	var jobj any
	if err := json.NewDecoder(r).Decode(&jobj); err != nil {
		return nil, fmt.Errorf("not a JSON report: %w", err)
	}
	jval, err := jsonpath.Get(path, jobj)
	if err != nil {
		return nil, fmt.Errorf("error evaluating %q: %w", path, err)
	}
	return jval, nil
}
