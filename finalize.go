package rewards

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/alitto/pond/v2"
	"github.com/puzpuzpuz/xsync/v4"
	"go.uber.org/zap"
)

// rankOffsets are the descending ordinal indexes sampled into RankingsLevels,
// in field order: top one, top ten, top hundred, top thousand, top ten thousand.
var rankOffsets = [...]int{0, 10, 100, 1000, 10000}

// DistributionSize is the number of top holders kept per coin in the report.
const DistributionSize = 100

// sampleLevels samples a descending list of n values, read through at.
func sampleLevels(n int, at func(i int) Amount) RankingsLevels {
	var l RankingsLevels
	levels := [...]*Amount{&l.TopOne, &l.TopTen, &l.TopHundred, &l.TopThousand, &l.TopTenThousand}
	for i, offset := range rankOffsets {
		if offset < n {
			*levels[i] = at(offset)
		}
	}
	if n > 0 {
		l.MedianValue = at(n / 2)
	}
	return l
}

// descending orders amounts from the largest to the smallest.
func descending(a, b Amount) int { return b.Cmp(a) }

// rank sorts the holders by descending balance, samples their levels and
// keeps only the top DistributionSize holders. Equal balances keep their row
// order.
func (d *CoinDistribution) rank() RankingsLevels {
	slices.SortStableFunc(d.Holders, func(a, b HolderBalance) int { return descending(a.Balance, b.Balance) })
	levels := sampleLevels(len(d.Holders), func(i int) Amount { return d.Holders[i].Balance })
	if len(d.Holders) > DistributionSize {
		d.Holders = slices.Clone(d.Holders[:DistributionSize])
	}
	return levels
}

// Finalize derives averages and rankings from the applied rows and returns
// the report. It must be called once, after the last row.
//
// Finalize returns ErrDegenerateInput if no row was applied.
func (e *Engine) Finalize(ctx context.Context) (*Metrics, error) {
	if e.finalized {
		return nil, ErrFinalized
	}
	m := e.metrics
	if m.Stats.TotalUsers == 0 {
		return nil, ErrDegenerateInput
	}
	e.finalized = true
	start := time.Now()

	users := A(m.Stats.TotalUsers)
	m.Stats.AverageNumberOfCoinsPerUser = A(m.Stats.TotalPortfolioCoinPositions).Div(users)

	// Coins share nothing at this stage, they are ranked concurrently.
	levels := xsync.NewMap[string, RankingsLevels]()
	pool := pond.NewPool(e.workers)
	defer pool.StopAndWait()
	group := pool.NewGroupContext(ctx)
	for coin, dist := range m.CoinDistributions.All() {
		group.Submit(func() {
			levels.Store(coin, dist.rank())
		})
	}
	if err := group.Wait(); err != nil {
		return nil, fmt.Errorf("ranking coin distributions: %w", err)
	}
	for _, coin := range m.CoinDistributions.Keys() {
		l, _ := levels.Load(coin)
		m.CoinDistributionsLevels.Set(coin, l)
	}

	slices.SortStableFunc(m.interestEarnedPerUser, descending)
	m.InterestEarnedRankings = sampleLevels(len(m.interestEarnedPerUser), func(i int) Amount { return m.interestEarnedPerUser[i] })

	m.Stats.AverageInterestPerUser = m.Stats.TotalInterestPaidInUsd.Div(users)

	e.logger.Info("finalized rewards metrics",
		zap.Int64("users", m.Stats.TotalUsers),
		zap.Int("coins", m.Portfolio.Len()),
		zap.Int("warnings", len(e.warnings)),
		zap.Duration("elapsed", time.Since(start)),
	)
	return m, nil
}
