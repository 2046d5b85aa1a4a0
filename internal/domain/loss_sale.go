package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WashWindowDays is the regulatory half-width of the wash-sale window:
// 30 calendar days before or after a loss sale.
const WashWindowDays = 30

// LossSale is a sell that realized a loss, together with its wash window.
// Immutable once created; violations reference it by LossSaleID.
type LossSale struct {
	LossSaleID uuid.UUID
	Ticker     string
	SaleDate   time.Time
	Quantity   decimal.Decimal
	SalePrice  decimal.Decimal
	Proceeds   decimal.Decimal
	CostBasis  decimal.Decimal
	LossAmount decimal.Decimal // positive
}

func (ls LossSale) WashWindowStart() time.Time {
	return ls.SaleDate.AddDate(0, 0, -WashWindowDays)
}

func (ls LossSale) WashWindowEnd() time.Time {
	return ls.SaleDate.AddDate(0, 0, WashWindowDays)
}

// InWashWindow reports whether d falls inside the window, inclusive on
// both ends.
func (ls LossSale) InWashWindow(d time.Time) bool {
	return !d.Before(ls.WashWindowStart()) && !d.After(ls.WashWindowEnd())
}

// SafeToBuyDate is the first date a repurchase no longer disallows the loss.
func (ls LossSale) SafeToBuyDate() time.Time {
	return ls.WashWindowEnd().AddDate(0, 0, 1)
}

// DaysUntilSafe counts calendar days from asOf until SafeToBuyDate,
// floored at zero.
func (ls LossSale) DaysUntilSafe(asOf time.Time) int {
	safe := ls.SafeToBuyDate()
	if !asOf.Before(safe) {
		return 0
	}
	return daysBetween(asOf, safe)
}

func (ls LossSale) String() string {
	return fmt.Sprintf("LossSale(%s, %s, loss=$%s)",
		ls.Ticker, ls.SaleDate.Format("2006-01-02"), ls.LossAmount.StringFixed(2))
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
