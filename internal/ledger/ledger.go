package ledger

import (
	"fmt"
	"sort"

	washtrack_errors "washtrack/internal"
	"washtrack/internal/domain"

	"github.com/shopspring/decimal"
)

// Ledger tracks open buy lots per ticker and resolves sells against them
// using FIFO. All state is private to the instance; independent analyses can
// run side by side without interference.
type Ledger struct {
	// ticker -> open lots, ordered by open date ascending
	lots     map[string][]*domain.Lot
	warnings []string
}

func New() *Ledger {
	return &Ledger{
		lots: map[string][]*domain.Lot{},
	}
}

// AddLot appends a buy transaction as a new open lot, keeping the ticker's
// lots ordered oldest-first.
func (l *Ledger) AddLot(txn domain.Transaction) (*domain.Lot, error) {
	if txn.Action != domain.TradeAction_Buy {
		return nil, washtrack_errors.ErrUnexpectedAction{
			Expected: string(domain.TradeAction_Buy),
			Received: string(txn.Action),
			Ticker:   txn.Ticker,
			Date:     txn.Date,
		}
	}

	lot := domain.NewLotFromTransaction(txn)
	l.lots[txn.Ticker] = append(l.lots[txn.Ticker], lot)
	sort.SliceStable(l.lots[txn.Ticker], func(i, j int) bool {
		return l.lots[txn.Ticker][i].Date.Before(l.lots[txn.Ticker][j].Date)
	})

	return lot, nil
}

// ResolveSell matches a sell transaction against open lots oldest-first.
//
// A sell with no open lots at all resolves to a zero-quantity result with a
// warning; the caller is expected to treat zero-matched as "no position
// held, skip". A sell larger than the open position consumes what exists and
// scales proceeds proportionally so the gain/loss covers only the matched
// portion.
func (l *Ledger) ResolveSell(txn domain.Transaction) (*domain.SellResolution, error) {
	if txn.Action != domain.TradeAction_Sell {
		return nil, washtrack_errors.ErrUnexpectedAction{
			Expected: string(domain.TradeAction_Sell),
			Received: string(txn.Action),
			Ticker:   txn.Ticker,
			Date:     txn.Date,
		}
	}

	ticker := txn.Ticker
	proceeds := txn.Amount // positive for sells
	warnings := []string{}

	openLots := l.lots[ticker]
	if len(openLots) == 0 {
		warning := fmt.Sprintf("no buy lots found for %s - skipping sell on %s",
			ticker, txn.Date.Format("2006-01-02"))
		warnings = append(warnings, warning)
		l.warnings = append(l.warnings, warning)
		return &domain.SellResolution{
			Ticker:       ticker,
			QuantitySold: decimal.Zero,
			Proceeds:     proceeds,
			CostBasis:    decimal.Zero,
			GainLoss:     decimal.Zero,
			IsLoss:       false,
			MatchedLots:  []domain.LotMatch{},
			Warnings:     warnings,
		}, nil
	}

	remainingToSell := txn.Quantity
	matchedLots := []domain.LotMatch{}
	totalCostBasis := decimal.Zero
	quantitySold := decimal.Zero

	for _, lot := range openLots {
		if remainingToSell.LessThanOrEqual(decimal.Zero) {
			break
		}
		if lot.RemainingQuantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		takeQuantity := remainingToSell
		if lot.RemainingQuantity.LessThan(takeQuantity) {
			takeQuantity = lot.RemainingQuantity
		}

		lot.RemainingQuantity = lot.RemainingQuantity.Sub(takeQuantity)
		matchedLots = append(matchedLots, domain.LotMatch{Lot: lot, Quantity: takeQuantity})
		totalCostBasis = totalCostBasis.Add(takeQuantity.Mul(lot.Price))
		quantitySold = quantitySold.Add(takeQuantity)
		remainingToSell = remainingToSell.Sub(takeQuantity)
	}

	if remainingToSell.GreaterThan(domain.LotEpsilon) {
		warning := fmt.Sprintf("could only match %s of %s shares for %s sell on %s - missing %s shares",
			quantitySold.StringFixed(4), txn.Quantity.StringFixed(4), ticker,
			txn.Date.Format("2006-01-02"), remainingToSell.StringFixed(4))
		warnings = append(warnings, warning)
		l.warnings = append(l.warnings, warning)
	}

	// When the position could not cover the full sell, crediting the whole
	// proceeds against a partial cost basis would overstate the gain. Scale
	// proceeds down to the matched portion instead.
	adjustedProceeds := proceeds
	if quantitySold.LessThan(txn.Quantity) && txn.Quantity.GreaterThan(decimal.Zero) {
		adjustedProceeds = proceeds.Mul(quantitySold).Div(txn.Quantity)
	}

	gainLoss := adjustedProceeds.Sub(totalCostBasis)

	l.purgeExhaustedLots(ticker)

	return &domain.SellResolution{
		Ticker:       ticker,
		QuantitySold: quantitySold,
		Proceeds:     adjustedProceeds,
		CostBasis:    totalCostBasis,
		GainLoss:     gainLoss,
		IsLoss:       gainLoss.LessThan(decimal.Zero),
		MatchedLots:  matchedLots,
		Warnings:     warnings,
	}, nil
}

func (l *Ledger) purgeExhaustedLots(ticker string) {
	active := l.lots[ticker][:0]
	for _, lot := range l.lots[ticker] {
		if !lot.Exhausted() {
			active = append(active, lot)
		}
	}
	l.lots[ticker] = active
}

// Lots returns the ticker's active lots, oldest first.
func (l *Ledger) Lots(ticker string) []*domain.Lot {
	active := []*domain.Lot{}
	for _, lot := range l.lots[ticker] {
		if !lot.Exhausted() {
			active = append(active, lot)
		}
	}
	return active
}

// Tickers returns every ticker that still has an open position.
func (l *Ledger) Tickers() []string {
	tickers := []string{}
	for ticker := range l.lots {
		if len(l.Lots(ticker)) > 0 {
			tickers = append(tickers, ticker)
		}
	}
	sort.Strings(tickers)
	return tickers
}

// Position returns total remaining shares held for a ticker.
func (l *Ledger) Position(ticker string) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.Lots(ticker) {
		total = total.Add(lot.RemainingQuantity)
	}
	return total
}

// CostBasis returns the total cost basis of the remaining shares.
func (l *Ledger) CostBasis(ticker string) decimal.Decimal {
	total := decimal.Zero
	for _, lot := range l.Lots(ticker) {
		total = total.Add(lot.RemainingQuantity.Mul(lot.Price))
	}
	return total
}

// Warnings returns the diagnostics accumulated so far. Never cleared.
func (l *Ledger) Warnings() []string {
	out := make([]string, len(l.warnings))
	copy(out, l.warnings)
	return out
}
