package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// WashSaleViolation records a buy that landed inside the wash window of a
// loss sale. The disallowed loss is proportional to how much of the
// loss-sale quantity the buy could have replaced.
type WashSaleViolation struct {
	Ticker                string
	LossSale              *LossSale
	TriggeringBuyDate     time.Time
	TriggeringBuyQuantity decimal.Decimal
	DisallowedLoss        decimal.Decimal
}

// DisallowedLossFor computes loss × min(buyQty, lossQty) / lossQty.
func DisallowedLossFor(ls *LossSale, buyQuantity decimal.Decimal) decimal.Decimal {
	replaced := buyQuantity
	if ls.Quantity.LessThan(replaced) {
		replaced = ls.Quantity
	}
	return ls.LossAmount.Mul(replaced).Div(ls.Quantity)
}

func NewWashSaleViolation(ls *LossSale, buy Transaction) WashSaleViolation {
	return WashSaleViolation{
		Ticker:                buy.Ticker,
		LossSale:              ls,
		TriggeringBuyDate:     buy.Date,
		TriggeringBuyQuantity: buy.Quantity,
		DisallowedLoss:        DisallowedLossFor(ls, buy.Quantity),
	}
}

func (v WashSaleViolation) String() string {
	return fmt.Sprintf("WashSale: Bought %s %s on %s, within %d days of loss sale on %s (disallowed loss: $%s)",
		v.TriggeringBuyQuantity.StringFixed(4), v.Ticker,
		v.TriggeringBuyDate.Format("2006-01-02"), WashWindowDays,
		v.LossSale.SaleDate.Format("2006-01-02"), v.DisallowedLoss.StringFixed(2))
}
