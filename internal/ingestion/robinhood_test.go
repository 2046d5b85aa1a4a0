package ingestion

import (
	"strings"
	"testing"
	"time"

	"washtrack/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Activity Date,Process Date,Settle Date,Instrument,Description,Trans Code,Quantity,Price,Amount
02/15/2025,02/15/2025,02/18/2025,AAPL,Apple,Buy,5,$95.00,($475.00)
02/01/2025,02/01/2025,02/03/2025,AAPL,Apple,Sell,10,$90.00,$900.00
01/01/2025,01/01/2025,01/03/2025,AAPL,Apple,Buy,10,$100.00,"($1,000.00)"
01/05/2025,01/05/2025,01/07/2025,AAPL,Apple,CDIV,,,$1.23
`

func Test_ParseActivity(t *testing.T) {
	t.Run("parses and sorts buy/sell rows", func(t *testing.T) {
		result, err := ParseActivity(strings.NewReader(sampleCSV))
		require.NoError(t, err)
		require.Empty(t, result.Warnings)
		require.Len(t, result.Transactions, 3)

		first := result.Transactions[0]
		require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), first.Date)
		require.Equal(t, "AAPL", first.Ticker)
		require.Equal(t, domain.TradeAction_Buy, first.Action)
		require.True(t, first.Quantity.Equal(decimal.NewFromInt(10)))
		require.True(t, first.Price.Equal(decimal.NewFromInt(100)))
		require.True(t, first.Amount.Equal(decimal.NewFromInt(-1000)), first.Amount.String())

		require.Equal(t, domain.TradeAction_Sell, result.Transactions[1].Action)
		require.True(t, result.Transactions[1].Amount.Equal(decimal.NewFromInt(900)))
		require.Equal(t, domain.TradeAction_Buy, result.Transactions[2].Action)
	})

	t.Run("missing required columns", func(t *testing.T) {
		_, err := ParseActivity(strings.NewReader("Activity Date,Instrument\n01/01/2025,AAPL\n"))
		require.Error(t, err)
		require.Contains(t, err.Error(), "missing required columns")
		require.Contains(t, err.Error(), "Trans Code")
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := ParseActivity(strings.NewReader(""))
		require.Error(t, err)
	})

	t.Run("rows with missing date or instrument are skipped with warning", func(t *testing.T) {
		csv := "Activity Date,Instrument,Description,Trans Code,Quantity,Price,Amount\n" +
			",AAPL,Apple,Buy,10,$100.00,($1000.00)\n" +
			"01/02/2025,AAPL,Apple,Buy,10,$100.00,($1000.00)\n"
		result, err := ParseActivity(strings.NewReader(csv))
		require.NoError(t, err)
		require.Len(t, result.Transactions, 1)
		require.Len(t, result.Warnings, 1)
	})

	t.Run("zero quantity rows are dropped", func(t *testing.T) {
		csv := "Activity Date,Instrument,Description,Trans Code,Quantity,Price,Amount\n" +
			"01/02/2025,AAPL,Apple,Buy,0,$100.00,$0.00\n"
		result, err := ParseActivity(strings.NewReader(csv))
		require.NoError(t, err)
		require.Empty(t, result.Transactions)
	})
}

func Test_parseAmount(t *testing.T) {
	cases := []struct {
		in   string
		want decimal.Decimal
	}{
		{"$10,193.66", decimal.NewFromFloat(10193.66)},
		{"($9,994.21)", decimal.NewFromFloat(-9994.21)},
		{"$31.51", decimal.NewFromFloat(31.51)},
		{"", decimal.Zero},
		{"  ", decimal.Zero},
		{"garbage", decimal.Zero},
	}

	for _, tc := range cases {
		got := parseAmount(tc.in)
		require.True(t, got.Equal(tc.want), "parseAmount(%q) = %s, want %s", tc.in, got, tc.want)
	}
}

func Test_Summarize(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		s := Summarize(nil)
		require.Equal(t, 0, s.Total)
		require.Empty(t, s.Tickers)
	})

	t.Run("counts and date range", func(t *testing.T) {
		result, err := ParseActivity(strings.NewReader(sampleCSV))
		require.NoError(t, err)

		s := Summarize(result.Transactions)
		require.Equal(t, 3, s.Total)
		require.Equal(t, 2, s.Buys)
		require.Equal(t, 1, s.Sells)
		require.Equal(t, []string{"AAPL"}, s.Tickers)
		require.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), s.DateStart)
		require.Equal(t, time.Date(2025, 2, 15, 0, 0, 0, 0, time.UTC), s.DateEnd)
	})
}
