package domain

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

type TradeAction string

const (
	TradeAction_Buy  TradeAction = "Buy"
	TradeAction_Sell TradeAction = "Sell"
)

// Transaction is a single parsed brokerage activity row. Amount is signed:
// negative for buys, positive for sells.
type Transaction struct {
	Date        time.Time
	Ticker      string
	Action      TradeAction
	Quantity    decimal.Decimal
	Price       decimal.Decimal
	Amount      decimal.Decimal
	Description string
}

func (t Transaction) GetDate() time.Time { return t.Date }

func (t Transaction) String() string {
	sign := "-"
	if t.Action == TradeAction_Sell {
		sign = "+"
	}
	return fmt.Sprintf("%s %s %s %s @ $%s (%s$%s)",
		t.Date.Format("2006-01-02"), t.Action, t.Quantity.StringFixed(4),
		t.Ticker, t.Price.StringFixed(2), sign, t.Amount.Abs().StringFixed(2))
}

// SortTransactions normalizes ordering before processing: ascending by date,
// with same-day sells ordered after same-day buys so intraday buys are
// available to match intraday sells.
func SortTransactions(txns []Transaction) []Transaction {
	sorted := make([]Transaction, len(txns))
	copy(sorted, txns)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].Date.Equal(sorted[j].Date) {
			return sorted[i].Date.Before(sorted[j].Date)
		}
		return sorted[i].Action == TradeAction_Buy && sorted[j].Action == TradeAction_Sell
	})
	return sorted
}
