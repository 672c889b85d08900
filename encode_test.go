package rewards

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func processed(t *testing.T, lines ...string) *Metrics {
	t.Helper()
	m, err := Process(context.Background(), strings.NewReader(extract(lines...)), NewEngine(), ProcessOptions{})
	require.NoError(t, err)
	return m
}

func TestEncodeMetrics(t *testing.T) {
	m := processed(t, btcRow)
	var buf bytes.Buffer
	require.NoError(t, EncodeMetrics(&buf, m))
	got := buf.String()

	want := `{
  "portfolio": {
    "BTC": {
      "total": "2",
      "totalEarnInCEL": "1",
      "totalInterestInCoin": "0",
      "totalInterestInUsd": "0",
      "numberOfUsersHolding": "1"
    },
    "CEL": {
      "total": "0",
      "totalEarnInCEL": "0",
      "totalInterestInCoin": "0.01",
      "totalInterestInUsd": "500",
      "numberOfUsersHolding": "0"
    }
  },
  "loyaltyTierSummary": {
    "platinum": "0",
    "gold": "1",
    "silver": "0",
    "bronze": "0",
    "none": "0"
  },
  "coinDistributions": {
    "BTC": [
      [
        "u1",
        "2"
      ]
    ]
  },
  "coinDistributionsLevels": {
    "BTC": {
      "topOne": "2",
      "topTen": "0",
      "topHundred": "0",
      "topThousand": "0",
      "topTenThousand": "0",
      "medianValue": "2"
    }
  },
  "interestEarnedRankings": {
    "topOne": "500",
    "topTen": "0",
    "topHundred": "0",
    "topThousand": "0",
    "topTenThousand": "0",
    "medianValue": "500"
  },
  "stats": {
    "totalUsers": "1",
    "totalUsersEarningInCel": "1",
    "maximumPortfolioSize": "1",
    "averageNumberOfCoinsPerUser": "1",
    "totalPortfolioCoinPositions": "1",
    "totalInterestPaidInUsd": "500",
    "maxInterestEarned": "500",
    "averageInterestPerUser": "500"
  }
}
`
	assert.Equal(t, want, got)
}

func TestDecodeMetrics(t *testing.T) {
	m := processed(t, btcRow, usdRow, ethRow)
	var buf bytes.Buffer
	require.NoError(t, EncodeMetrics(&buf, m))

	decoded, err := DecodeMetrics(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	assert.Equal(t, m.Portfolio.Keys(), decoded.Portfolio.Keys())
	assert.Equal(t, m.LoyaltyTierSummary, decoded.LoyaltyTierSummary)
	assert.Equal(t, m.Stats.TotalUsers, decoded.Stats.TotalUsers)
	assert.True(t, m.Stats.AverageInterestPerUser.Equal(decoded.Stats.AverageInterestPerUser))

	dist, ok := decoded.CoinDistributions.Get("USDT")
	require.True(t, ok)
	require.Len(t, dist.Holders, 1)
	assert.Equal(t, "u2", dist.Holders[0].AccountID)
	assert.Equal(t, "1000", dist.Holders[0].Balance.String())

	t.Run("not a report", func(t *testing.T) {
		_, err := DecodeMetrics(strings.NewReader(`[1,2]`))
		assert.ErrorContains(t, err, "not a rewards report")
	})
}

func TestEncodeRows(t *testing.T) {
	var rows []Row
	for _, line := range []string{ethRow, btcRow} {
		row, ok, err := DecodeRow(line)
		require.NoError(t, err)
		require.True(t, ok)
		rows = append(rows, row)
	}
	var buf bytes.Buffer
	require.NoError(t, EncodeRows(&buf, rows))

	_, btcPayload, _ := strings.Cut(btcRow, ",")
	_, ethPayload, _ := strings.Cut(ethRow, ",")
	assert.JSONEq(t, `{"u3":`+ethPayload+`,"u1":`+btcPayload+`}`, buf.String())
	assert.Less(t, strings.Index(buf.String(), `"u3"`), strings.Index(buf.String(), `"u1"`))
}
