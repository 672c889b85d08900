// Package rewards turns a weekly rewards extract into a compact aggregate
// report.
//
// An extract is a line-oriented file: a header line, then one line per
// account made of an account id, a comma, and a JSON object mapping each
// coin held by the account to its reward figures for the week.
//
// The core functionalities include:
//   - Row decoding: splitting a line into an account id and its ordered
//     per-coin holdings (DecodeRow).
//   - Symbol normalization: folding legacy coin symbols onto their canonical
//     form (NormalizeSymbol).
//   - Aggregation: an Engine that applies rows one at a time to a Metrics
//     accumulator using exact decimal arithmetic, then finalizes averages,
//     rankings and top-holder distributions once the stream is exhausted.
//   - Persistence: encoding the final Metrics as the JSON report consumed by
//     the dashboard, and decoding it back for summaries and queries.
//
// This package serves as the foundational logic for the `rewards`
// command-line tool.
package rewards
