package rewards

import (
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
)

// H is a helper for tests to create a holding with a single balance entry.
func H(coin, interestCoin, balance, interestInCoin, interestInUsd string, earningInCel bool, tier string) Holding {
	return Holding{
		Coin: coin,
		CoinHolding: CoinHolding{
			InterestCoin:         interestCoin,
			TotalInterestInCoin:  Raw(interestInCoin),
			TotalInterestInUsd:   Raw(interestInUsd),
			EarningInterestInCel: earningInCel,
			LoyaltyTier:          &LoyaltyTier{Title: tier},
			DistributionData:     []BalanceChange{{NewBalance: Raw(balance)}},
		},
	}
}

// R is a helper for tests to create a row.
func R(id string, holdings ...Holding) Row {
	return Row{AccountID: id, Holdings: holdings}
}

// amt is a helper for tests to parse a decimal constant.
func amt(t *testing.T, s string) Amount {
	t.Helper()
	a, err := ParseAmount(s)
	require.NoError(t, err)
	return a
}

// holdersRows creates one row per balance, each holding only coin, with
// random account ids.
func holdersRows(coin string, balances ...int) []Row {
	rows := make([]Row, 0, len(balances))
	for _, b := range balances {
		rows = append(rows, R(uuid.NewString(), H(coin, coin, fmt.Sprint(b), "0", "0", false, "NONE")))
	}
	return rows
}

// extract joins lines into an extract with a header.
func extract(lines ...string) string {
	return strings.Join(append([]string{`id,data`}, lines...), "\n") + "\n"
}

// applyAll applies rows to a new engine.
func applyAll(t *testing.T, rows []Row, opts ...Option) *Engine {
	t.Helper()
	e := NewEngine(opts...)
	for _, row := range rows {
		require.NoError(t, e.Apply(row))
	}
	return e
}
