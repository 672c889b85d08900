package rewards

import (
	"encoding/json"
	"fmt"
	"strings"
)

// PortfolioEntry aggregates one coin across all accounts.
//
// A coin contributes to its entry in two distinct roles: as a held coin
// (Total, TotalEarnInCEL, NumberOfUsersHolding) and as the coin interest is
// paid in (TotalInterestInCoin, TotalInterestInUsd).
type PortfolioEntry struct {
	Total                Amount `json:"total"`
	TotalEarnInCEL       int64  `json:"totalEarnInCEL,string"`
	TotalInterestInCoin  Amount `json:"totalInterestInCoin"`
	TotalInterestInUsd   Amount `json:"totalInterestInUsd"`
	NumberOfUsersHolding int64  `json:"numberOfUsersHolding,string"`
}

// HolderBalance is the balance of one account for one coin. It is persisted
// as a two-element array [accountId, balance].
type HolderBalance struct {
	AccountID string
	Balance   Amount
}

func (h HolderBalance) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]string{h.AccountID, h.Balance.String()})
}

func (h *HolderBalance) UnmarshalJSON(b []byte) error {
	var pair [2]string
	if err := json.Unmarshal(b, &pair); err != nil {
		return err
	}
	balance, err := ParseAmount(pair[1])
	if err != nil {
		return fmt.Errorf("invalid balance for %s: %w", pair[0], err)
	}
	*h = HolderBalance{AccountID: pair[0], Balance: balance}
	return nil
}

// CoinDistribution lists the balance of every holder of a coin, in row order
// while rows are applied, then the top holders by descending balance once
// finalized.
type CoinDistribution struct {
	Holders []HolderBalance
}

func (d CoinDistribution) MarshalJSON() ([]byte, error) {
	if d.Holders == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(d.Holders)
}

func (d *CoinDistribution) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &d.Holders)
}

// RankingsLevels samples a descending list at fixed ranks. Index 0 is the
// top, index 10 is reported as the top ten, and so on; ranks beyond the end
// of the list stay 0.
type RankingsLevels struct {
	TopOne         Amount `json:"topOne"`
	TopTen         Amount `json:"topTen"`
	TopHundred     Amount `json:"topHundred"`
	TopThousand    Amount `json:"topThousand"`
	TopTenThousand Amount `json:"topTenThousand"`
	MedianValue    Amount `json:"medianValue"`
}

// LoyaltyTierSummary counts accounts per loyalty tier.
type LoyaltyTierSummary struct {
	Platinum int64 `json:"platinum,string"`
	Gold     int64 `json:"gold,string"`
	Silver   int64 `json:"silver,string"`
	Bronze   int64 `json:"bronze,string"`
	None     int64 `json:"none,string"`
}

// increment counts one account in tier, matched case-insensitively.
// It returns false for an unknown tier.
func (s *LoyaltyTierSummary) increment(tier string) bool {
	switch strings.ToLower(tier) {
	case "platinum":
		s.Platinum++
	case "gold":
		s.Gold++
	case "silver":
		s.Silver++
	case "bronze":
		s.Bronze++
	case "none":
		s.None++
	default:
		return false
	}
	return true
}

// Total returns the number of accounts counted in any tier.
func (s LoyaltyTierSummary) Total() int64 {
	return s.Platinum + s.Gold + s.Silver + s.Bronze + s.None
}

// Stats are the global figures of the week.
type Stats struct {
	TotalUsers                  int64  `json:"totalUsers,string"`
	TotalUsersEarningInCel      int64  `json:"totalUsersEarningInCel,string"`
	MaximumPortfolioSize        int64  `json:"maximumPortfolioSize,string"`
	AverageNumberOfCoinsPerUser Amount `json:"averageNumberOfCoinsPerUser"`
	TotalPortfolioCoinPositions int64  `json:"totalPortfolioCoinPositions,string"`
	TotalInterestPaidInUsd      Amount `json:"totalInterestPaidInUsd"`
	MaxInterestEarned           Amount `json:"maxInterestEarned"`
	AverageInterestPerUser      Amount `json:"averageInterestPerUser"`
}

// Metrics is the aggregation state of an extract, and once finalized, the
// report. Coins appear in the order they were first seen.
type Metrics struct {
	Portfolio               Table[*PortfolioEntry]   `json:"portfolio"`
	LoyaltyTierSummary      LoyaltyTierSummary       `json:"loyaltyTierSummary"`
	CoinDistributions       Table[*CoinDistribution] `json:"coinDistributions"`
	CoinDistributionsLevels Table[RankingsLevels]    `json:"coinDistributionsLevels"`
	InterestEarnedRankings  RankingsLevels           `json:"interestEarnedRankings"`
	Stats                   Stats                    `json:"stats"`

	// interestEarnedPerUser holds the USD interest of each row, in row order.
	interestEarnedPerUser []Amount
}

// NewMetrics returns an empty aggregation state.
func NewMetrics() *Metrics { return &Metrics{} }

// entry returns the portfolio entry of coin, creating a zero one if needed.
func (m *Metrics) entry(coin string) *PortfolioEntry {
	return m.Portfolio.GetOrCreate(coin, func() *PortfolioEntry { return new(PortfolioEntry) })
}

// distribution returns the distribution of coin, creating an empty one if needed.
func (m *Metrics) distribution(coin string) *CoinDistribution {
	return m.CoinDistributions.GetOrCreate(coin, func() *CoinDistribution { return new(CoinDistribution) })
}
