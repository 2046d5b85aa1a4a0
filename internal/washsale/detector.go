package washsale

import (
	"sort"
	"time"

	"washtrack/internal/domain"
	"washtrack/internal/ledger"

	"github.com/google/uuid"
)

// Detector consumes chronologically ordered transactions and tracks loss
// sales, their wash windows, and the violations triggered by buys landing
// inside a window in either temporal direction.
type Detector struct {
	ledger          *ledger.Ledger
	lossSales       []*domain.LossSale
	violations      []domain.WashSaleViolation
	allTransactions []domain.Transaction
	skippedSells    int
}

func NewDetector() *Detector {
	return &Detector{
		ledger: ledger.New(),
	}
}

// Process runs the detector over a batch of transactions. Input order is
// irrelevant: transactions are normalized to (date ascending, same-day sells
// after buys) before processing. Correctness depends on that ordering, so
// the sort is applied unconditionally.
//
// Process may be called repeatedly with later batches; windows and history
// from earlier calls remain live.
func (d *Detector) Process(txns []domain.Transaction) error {
	sorted := domain.SortTransactions(txns)

	for _, txn := range sorted {
		d.allTransactions = append(d.allTransactions, txn)

		switch txn.Action {
		case domain.TradeAction_Buy:
			if err := d.processBuy(txn); err != nil {
				return err
			}
		case domain.TradeAction_Sell:
			if err := d.processSell(txn); err != nil {
				return err
			}
		}
	}
	return nil
}

// processBuy runs the forward check (is this buy inside the window of an
// earlier loss sale?) and then opens the lot.
func (d *Detector) processBuy(txn domain.Transaction) error {
	for _, ls := range d.lossSales {
		if ls.Ticker == txn.Ticker && ls.InWashWindow(txn.Date) {
			d.violations = append(d.violations, domain.NewWashSaleViolation(ls, txn))
		}
	}

	_, err := d.ledger.AddLot(txn)
	return err
}

// processSell resolves against the ledger, registers a loss sale when the
// resolution is a loss, and runs the backward check against prior buys.
func (d *Detector) processSell(txn domain.Transaction) error {
	result, err := d.ledger.ResolveSell(txn)
	if err != nil {
		return err
	}

	if result.QuantitySold.IsZero() {
		d.skippedSells++
		return nil
	}

	if !result.IsLoss {
		return nil
	}

	lossSale := &domain.LossSale{
		LossSaleID: uuid.New(),
		Ticker:     txn.Ticker,
		SaleDate:   txn.Date,
		Quantity:   result.QuantitySold,
		SalePrice:  txn.Price,
		Proceeds:   result.Proceeds,
		CostBasis:  result.CostBasis,
		LossAmount: result.LossAmount(),
	}
	d.lossSales = append(d.lossSales, lossSale)

	d.checkPriorBuys(lossSale)
	return nil
}

// checkPriorBuys scans the transaction history for same-ticker buys strictly
// before the sale that fall inside its wash window. A (loss sale, buy date)
// pair is recorded at most once.
func (d *Detector) checkPriorBuys(ls *domain.LossSale) {
	for _, txn := range d.allTransactions {
		if txn.Action != domain.TradeAction_Buy ||
			txn.Ticker != ls.Ticker ||
			!txn.Date.Before(ls.SaleDate) ||
			!ls.InWashWindow(txn.Date) {
			continue
		}

		alreadyRecorded := false
		for _, v := range d.violations {
			if v.LossSale.LossSaleID == ls.LossSaleID && v.TriggeringBuyDate.Equal(txn.Date) {
				alreadyRecorded = true
				break
			}
		}
		if alreadyRecorded {
			continue
		}

		d.violations = append(d.violations, domain.NewWashSaleViolation(ls, txn))
	}
}

// HistoricalViolations returns every recorded violation, ordered by
// triggering buy date ascending.
func (d *Detector) HistoricalViolations() []domain.WashSaleViolation {
	out := make([]domain.WashSaleViolation, len(d.violations))
	copy(out, d.violations)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TriggeringBuyDate.Before(out[j].TriggeringBuyDate)
	})
	return out
}

// LossSales returns every loss sale seen so far, ordered by sale date.
func (d *Detector) LossSales() []domain.LossSale {
	out := make([]domain.LossSale, 0, len(d.lossSales))
	for _, ls := range d.lossSales {
		out = append(out, *ls)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].SaleDate.Before(out[j].SaleDate)
	})
	return out
}

// ActiveWindows returns loss sales whose safe-to-buy date is strictly after
// asOf, ordered by sale date. A window whose safe date equals asOf is no
// longer active.
func (d *Detector) ActiveWindows(asOf time.Time) []domain.LossSale {
	active := []domain.LossSale{}
	for _, ls := range d.lossSales {
		if ls.SafeToBuyDate().After(asOf) {
			active = append(active, *ls)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		return active[i].SaleDate.Before(active[j].SaleDate)
	})
	return active
}

// CheckTicker reports whether buying a ticker on asOf would land inside an
// active wash window.
func (d *Detector) CheckTicker(ticker string, asOf time.Time) domain.TickerStatus {
	windows := []domain.LossSale{}
	for _, ls := range d.ActiveWindows(asOf) {
		if ls.Ticker == ticker {
			windows = append(windows, ls)
		}
	}

	return domain.TickerStatus{
		Ticker:        ticker,
		CheckDate:     asOf,
		IsSafe:        len(windows) == 0,
		ActiveWindows: windows,
	}
}

// SkippedSells counts sells that matched no open lots and created no
// loss sale.
func (d *Detector) SkippedSells() int {
	return d.skippedSells
}

// LedgerWarnings surfaces the ledger's accumulated diagnostics.
func (d *Detector) LedgerWarnings() []string {
	return d.ledger.Warnings()
}
