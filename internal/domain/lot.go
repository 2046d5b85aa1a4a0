package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// LotEpsilon is the smallest share quantity a lot can hold before it is
// considered fully consumed. Tolerates floating-point residue in broker data.
var LotEpsilon = decimal.NewFromFloat(0.0001)

// Lot is a single buy tracked for FIFO cost-basis matching. Only the ledger
// mutates RemainingQuantity.
type Lot struct {
	LotID             uuid.UUID
	Ticker            string
	Date              time.Time
	Quantity          decimal.Decimal
	Price             decimal.Decimal
	RemainingQuantity decimal.Decimal
}

func NewLotFromTransaction(txn Transaction) *Lot {
	return &Lot{
		LotID:             uuid.New(),
		Ticker:            txn.Ticker,
		Date:              txn.Date,
		Quantity:          txn.Quantity,
		Price:             txn.Price,
		RemainingQuantity: txn.Quantity,
	}
}

// Exhausted reports whether the lot has been consumed down to residue.
func (l Lot) Exhausted() bool {
	return l.RemainingQuantity.LessThanOrEqual(LotEpsilon)
}

func (l Lot) String() string {
	return fmt.Sprintf("Lot(%s, %s/%s %s @ $%s)",
		l.Date.Format("2006-01-02"), l.RemainingQuantity.StringFixed(4),
		l.Quantity.StringFixed(4), l.Ticker, l.Price.StringFixed(2))
}

// LotMatch records how many shares a sell took from a lot.
type LotMatch struct {
	Lot      *Lot
	Quantity decimal.Decimal
}

// SellResolution is the outcome of resolving a sell against open lots.
// Proceeds are scaled down proportionally when the open position could not
// cover the full requested quantity.
type SellResolution struct {
	Ticker       string
	QuantitySold decimal.Decimal
	Proceeds     decimal.Decimal
	CostBasis    decimal.Decimal
	GainLoss     decimal.Decimal
	IsLoss       bool
	MatchedLots  []LotMatch
	Warnings     []string
}

// LossAmount returns the loss as a positive number, or zero for gains.
func (r SellResolution) LossAmount() decimal.Decimal {
	if !r.IsLoss {
		return decimal.Zero
	}
	return r.GainLoss.Abs()
}
