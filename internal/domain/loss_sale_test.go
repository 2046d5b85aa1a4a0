package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func Test_WashWindow(t *testing.T) {
	ls := LossSale{
		LossSaleID: uuid.New(),
		Ticker:     "AAPL",
		SaleDate:   date(2025, 6, 15),
		Quantity:   decimal.NewFromInt(10),
		LossAmount: decimal.NewFromInt(100),
	}

	t.Run("window bounds", func(t *testing.T) {
		require.Equal(t, date(2025, 5, 16), ls.WashWindowStart())
		require.Equal(t, date(2025, 7, 15), ls.WashWindowEnd())
	})

	t.Run("window is inclusive at both edges", func(t *testing.T) {
		require.True(t, ls.InWashWindow(ls.SaleDate.AddDate(0, 0, -30)))
		require.True(t, ls.InWashWindow(ls.SaleDate.AddDate(0, 0, 30)))
		require.False(t, ls.InWashWindow(ls.SaleDate.AddDate(0, 0, -31)))
		require.False(t, ls.InWashWindow(ls.SaleDate.AddDate(0, 0, 31)))
		require.True(t, ls.InWashWindow(ls.SaleDate))
	})

	t.Run("safe to buy is the day after the window closes", func(t *testing.T) {
		require.Equal(t, ls.SaleDate.AddDate(0, 0, 31), ls.SafeToBuyDate())
	})

	t.Run("days until safe", func(t *testing.T) {
		require.Equal(t, 31, ls.DaysUntilSafe(ls.SaleDate))
		require.Equal(t, 1, ls.DaysUntilSafe(ls.SafeToBuyDate().AddDate(0, 0, -1)))
		require.Equal(t, 0, ls.DaysUntilSafe(ls.SafeToBuyDate()))
		require.Equal(t, 0, ls.DaysUntilSafe(ls.SafeToBuyDate().AddDate(0, 0, 10)))
	})
}

func Test_DisallowedLossFor(t *testing.T) {
	ls := &LossSale{
		LossSaleID: uuid.New(),
		Ticker:     "AAPL",
		SaleDate:   date(2025, 6, 15),
		Quantity:   decimal.NewFromInt(10),
		LossAmount: decimal.NewFromInt(100),
	}

	t.Run("partial repurchase disallows proportionally", func(t *testing.T) {
		got := DisallowedLossFor(ls, decimal.NewFromInt(5))
		require.True(t, got.Equal(decimal.NewFromInt(50)), got.String())
	})

	t.Run("repurchase larger than the loss caps at the full loss", func(t *testing.T) {
		got := DisallowedLossFor(ls, decimal.NewFromInt(25))
		require.True(t, got.Equal(decimal.NewFromInt(100)), got.String())
	})
}

func Test_SortTransactions(t *testing.T) {
	d := date(2025, 3, 10)
	txns := []Transaction{
		{Date: d, Ticker: "AAPL", Action: TradeAction_Sell, Quantity: decimal.NewFromInt(1)},
		{Date: d.AddDate(0, 0, -1), Ticker: "AAPL", Action: TradeAction_Sell, Quantity: decimal.NewFromInt(1)},
		{Date: d, Ticker: "AAPL", Action: TradeAction_Buy, Quantity: decimal.NewFromInt(1)},
	}

	sorted := SortTransactions(txns)
	require.Equal(t, TradeAction_Sell, sorted[0].Action)
	require.Equal(t, d.AddDate(0, 0, -1), sorted[0].Date)
	// same-day buys come before same-day sells
	require.Equal(t, TradeAction_Buy, sorted[1].Action)
	require.Equal(t, TradeAction_Sell, sorted[2].Action)

	// input slice untouched
	require.Equal(t, TradeAction_Sell, txns[0].Action)
	require.Equal(t, d, txns[0].Date)
}

func Test_TickerStatus(t *testing.T) {
	asOf := date(2025, 7, 1)

	t.Run("safe when no windows", func(t *testing.T) {
		s := TickerStatus{Ticker: "AAPL", CheckDate: asOf, IsSafe: true}
		require.True(t, s.SafeToBuyDate().IsZero())
		require.Equal(t, 0, s.DaysUntilSafe())
	})

	t.Run("latest safe date wins across windows", func(t *testing.T) {
		s := TickerStatus{
			Ticker:    "AAPL",
			CheckDate: asOf,
			IsSafe:    false,
			ActiveWindows: []LossSale{
				{SaleDate: date(2025, 6, 10), Quantity: decimal.NewFromInt(1), LossAmount: decimal.NewFromInt(1)},
				{SaleDate: date(2025, 6, 20), Quantity: decimal.NewFromInt(1), LossAmount: decimal.NewFromInt(1)},
			},
		}
		require.Equal(t, date(2025, 6, 20).AddDate(0, 0, 31), s.SafeToBuyDate())
		require.Equal(t, 20, s.DaysUntilSafe())
	})
}
