package renderer

import (
	"bytes"
	"cmp"
	"fmt"
	"slices"

	"github.com/Rhymond/go-money"
	rewards "github.com/etnz/celrewards"
	md "github.com/nao1215/markdown"
)

// SummaryOptions holds configuration for rendering a report summary.
type SummaryOptions struct {
	Title string // Document title, defaults to "Rewards Summary".
	Top   int    // Number of coins listed, by number of holders. Defaults to 10.
}

// SummaryMarkdown renders the headline figures of a report to markdown.
func SummaryMarkdown(m *rewards.Metrics, opts SummaryOptions) string {
	if opts.Title == "" {
		opts.Title = "Rewards Summary"
	}
	if opts.Top <= 0 {
		opts.Top = 10
	}

	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(opts.Title)
	s := m.Stats
	doc.PlainText(fmt.Sprintf("%d users earned %s of interest this week.", s.TotalUsers, usd(s.TotalInterestPaidInUsd)))

	doc.H2("Stats")
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{md.AlignLeft, md.AlignRight},
		Header:    []string{"Metric", "Value"},
		Rows: [][]string{
			{"Total users", fmt.Sprint(s.TotalUsers)},
			{"Users earning in CEL", fmt.Sprintf("%d (%s)", s.TotalUsersEarningInCel, percent(s.TotalUsersEarningInCel, s.TotalUsers))},
			{"Coin positions", fmt.Sprint(s.TotalPortfolioCoinPositions)},
			{"Average coins per user", s.AverageNumberOfCoinsPerUser.StringFixed(2)},
			{"Largest portfolio", fmt.Sprintf("%d coins", s.MaximumPortfolioSize)},
			{"Interest paid", usd(s.TotalInterestPaidInUsd)},
			{"Average interest per user", usd(s.AverageInterestPerUser)},
			{"Largest interest earned", usd(s.MaxInterestEarned)},
		},
	})

	doc.H2("Loyalty Tiers")
	t := m.LoyaltyTierSummary
	total := t.Total()
	doc.Table(md.TableSet{
		Header: []string{"Tier", "Users", "Share"},
		Rows: [][]string{
			{"Platinum", fmt.Sprint(t.Platinum), percent(t.Platinum, total)},
			{"Gold", fmt.Sprint(t.Gold), percent(t.Gold, total)},
			{"Silver", fmt.Sprint(t.Silver), percent(t.Silver, total)},
			{"Bronze", fmt.Sprint(t.Bronze), percent(t.Bronze, total)},
			{"None", fmt.Sprint(t.None), percent(t.None, total)},
		},
	})

	doc.H2(fmt.Sprintf("Top %d Coins by Holders", opts.Top))
	var rows [][]string
	for _, coin := range topCoins(m, opts.Top) {
		e, _ := m.Portfolio.Get(coin)
		levels, _ := m.CoinDistributionsLevels.Get(coin)
		rows = append(rows, []string{
			coin,
			fmt.Sprint(e.NumberOfUsersHolding),
			e.Total.StringFixed(4),
			levels.MedianValue.StringFixed(4),
			levels.TopOne.StringFixed(4),
			fmt.Sprint(e.TotalEarnInCEL),
			usd(e.TotalInterestInUsd),
		})
	}
	doc.Table(md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
			md.AlignRight,
		},
		Header: []string{"Coin", "Holders", "Total", "Median", "Largest", "Earning in CEL", "Interest paid"},
		Rows:   rows,
	})

	doc.H2("Interest Earned Rankings")
	r := m.InterestEarnedRankings
	doc.Table(md.TableSet{
		Header: []string{"Rank", "Interest"},
		Rows: [][]string{
			{"Rank 1", usd(r.TopOne)},
			{"Rank 10", usd(r.TopTen)},
			{"Rank 100", usd(r.TopHundred)},
			{"Rank 1,000", usd(r.TopThousand)},
			{"Rank 10,000", usd(r.TopTenThousand)},
			{"Median", usd(r.MedianValue)},
		},
	})

	return doc.String()
}

// topCoins returns the n held coins with the most holders, ties broken by symbol.
func topCoins(m *rewards.Metrics, n int) []string {
	var coins []string
	for coin, e := range m.Portfolio.All() {
		if e.NumberOfUsersHolding > 0 {
			coins = append(coins, coin)
		}
	}
	slices.SortFunc(coins, func(a, b string) int {
		ea, _ := m.Portfolio.Get(a)
		eb, _ := m.Portfolio.Get(b)
		if c := cmp.Compare(eb.NumberOfUsersHolding, ea.NumberOfUsersHolding); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	if len(coins) > n {
		coins = coins[:n]
	}
	return coins
}

// usd formats an amount of dollars, rounded to the cent.
func usd(a rewards.Amount) string {
	cur := money.GetCurrency(money.USD)
	cents := a.Decimal().Shift(int32(cur.Fraction)).Round(0)
	return money.New(cents.IntPart(), money.USD).Display()
}

// percent formats part/total as a percentage, "-" when total is zero.
func percent(part, total int64) string {
	if total == 0 {
		return "-"
	}
	return fmt.Sprintf("%.1f%%", float64(part)*100/float64(total))
}
