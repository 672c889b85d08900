package rewards

import (
	"errors"

	"go.uber.org/zap"
)

// celSymbol is the coin whose interest counts as "earning in CEL".
const celSymbol = "CEL"

var (
	errEmptyHistory = errors.New("balance history is empty")
	errEmptyField   = errors.New("missing value")
)

// resolvedHolding is a holding with normalized symbols and parsed figures.
type resolvedHolding struct {
	coin           string
	interestCoin   string
	balance        Amount
	interestInCoin Amount
	interestInUsd  Amount
	earnsInCel     bool
	tier           string
}

// resolveRow normalizes and parses every holding of row. It touches no state
// so that a row with an invalid figure is rejected as a whole.
func resolveRow(row Row) ([]resolvedHolding, error) {
	resolved := make([]resolvedHolding, 0, len(row.Holdings))
	for _, h := range row.Holdings {
		coin := NormalizeSymbol(h.Coin)
		interestCoin := h.InterestCoin
		if interestCoin == "" {
			interestCoin = h.Coin
		}
		interestCoin = NormalizeSymbol(interestCoin)

		parse := func(field string, raw RawAmount) (Amount, error) {
			if !raw.Present() {
				return Amount{}, &ArithmeticError{AccountID: row.AccountID, Coin: h.Coin, Field: field, Err: errEmptyField}
			}
			a, err := ParseAmount(raw.String())
			if err != nil {
				return Amount{}, &ArithmeticError{AccountID: row.AccountID, Coin: h.Coin, Field: field, Value: raw.String(), Err: err}
			}
			return a, nil
		}

		current, ok := h.CurrentBalance()
		if !ok {
			return nil, &ArithmeticError{AccountID: row.AccountID, Coin: h.Coin, Field: "distributionData", Err: errEmptyHistory}
		}
		balance, err := parse("newBalance", current)
		if err != nil {
			return nil, err
		}
		inCoin, err := parse("totalInterestInCoin", h.TotalInterestInCoin)
		if err != nil {
			return nil, err
		}
		inUsd, err := parse("totalInterestInUsd", h.TotalInterestInUsd)
		if err != nil {
			return nil, err
		}

		resolved = append(resolved, resolvedHolding{
			coin:           coin,
			interestCoin:   interestCoin,
			balance:        balance,
			interestInCoin: inCoin,
			interestInUsd:  inUsd,
			// Interest paid in CEL counts as earning in CEL even when the flag is off.
			earnsInCel: h.EarningInterestInCel || interestCoin == celSymbol,
			tier:       h.TierTitle(),
		})
	}
	return resolved, nil
}

// Apply updates the aggregation state with one row.
//
// Either the whole row is applied or, on error, nothing is. An unknown
// loyalty tier is not an error: it is logged, kept in Warnings, and the row
// is applied without a tier count.
func (e *Engine) Apply(row Row) error {
	if e.finalized {
		return ErrFinalized
	}
	holdings, err := resolveRow(row)
	if err != nil {
		return err
	}

	m := e.metrics
	var (
		tier            string
		isEarningInCel  bool
		interestPerUser Amount
	)

	for _, h := range holdings {
		interestPerUser = interestPerUser.Add(h.interestInUsd)

		dist := m.distribution(h.coin)
		// held and paid are the same entry when interest is paid in the held coin.
		held := m.entry(h.coin)
		paid := m.entry(h.interestCoin)

		held.Total = held.Total.Add(h.balance)
		held.NumberOfUsersHolding++
		paid.TotalInterestInCoin = paid.TotalInterestInCoin.Add(h.interestInCoin)
		paid.TotalInterestInUsd = paid.TotalInterestInUsd.Add(h.interestInUsd)

		dist.Holders = append(dist.Holders, HolderBalance{AccountID: row.AccountID, Balance: h.balance})

		if h.earnsInCel {
			held.TotalEarnInCEL++
			isEarningInCel = true
		}

		m.Stats.TotalInterestPaidInUsd = m.Stats.TotalInterestPaidInUsd.Add(h.interestInUsd)

		// The last holding of the row decides the account tier.
		tier = h.tier
	}

	m.interestEarnedPerUser = append(m.interestEarnedPerUser, interestPerUser)
	m.Stats.MaxInterestEarned = m.Stats.MaxInterestEarned.Max(interestPerUser)
	m.Stats.TotalUsers++
	size := int64(len(row.Holdings))
	m.Stats.TotalPortfolioCoinPositions += size
	m.Stats.MaximumPortfolioSize = max(m.Stats.MaximumPortfolioSize, size)
	if isEarningInCel {
		m.Stats.TotalUsersEarningInCel++
	}

	if !m.LoyaltyTierSummary.increment(tier) {
		w := &UnrecognizedTierWarning{AccountID: row.AccountID, Tier: tier}
		e.warnings = append(e.warnings, w)
		e.logger.Warn("unexpected loyalty tier title",
			zap.String("account_id", row.AccountID),
			zap.String("tier", tier),
		)
	}
	return nil
}
