package ingestion

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"washtrack/internal/domain"
	"washtrack/internal/util"

	"github.com/shopspring/decimal"
)

var requiredColumns = []string{
	"Activity Date",
	"Instrument",
	"Description",
	"Trans Code",
	"Quantity",
	"Price",
	"Amount",
}

func determineColumnOrder(headerRow []string) (map[string]int, error) {
	columnIndices := map[string]int{}
	for i, h := range headerRow {
		h = strings.TrimSpace(h)
		for _, rc := range requiredColumns {
			if h == rc {
				columnIndices[h] = i
			}
		}
	}

	missing := []string{}
	for _, rc := range requiredColumns {
		if _, ok := columnIndices[rc]; !ok {
			missing = append(missing, rc)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csv missing required columns: %s", strings.Join(missing, ", "))
	}

	return columnIndices, nil
}

// parseAmount handles Robinhood's money formatting: "$10,193.66" is
// positive, "($9,994.21)" is negative, empty is zero.
func parseAmount(in string) decimal.Decimal {
	s := strings.TrimSpace(in)
	if s == "" {
		return decimal.Zero
	}

	negative := strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")")
	s = strings.NewReplacer("(", "", ")", "", "$", "", ",", "").Replace(s)

	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	if negative {
		return value.Neg()
	}
	return value
}

func parseNumber(in string) decimal.Decimal {
	s := strings.TrimSpace(in)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	value, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return value
}

// ParseResult bundles the parsed transactions with per-row diagnostics so
// the caller decides how to surface them.
type ParseResult struct {
	Transactions []domain.Transaction
	Warnings     []string
}

// ParseActivityFile reads a Robinhood activity-history CSV and returns the
// Buy/Sell transactions in normalized chronological order. Rows with other
// transaction codes are ignored; malformed rows are skipped with a warning.
func ParseActivityFile(csvFileName string) (*ParseResult, error) {
	f, err := os.Open(csvFileName)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return ParseActivity(f)
}

func ParseActivity(r io.Reader) (*ParseResult, error) {
	csvFile := csv.NewReader(r)
	csvFile.FieldsPerRecord = -1
	records, err := csvFile.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv file: %w", err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("csv file appears to be empty")
	}

	ordering, err := determineColumnOrder(records[0])
	if err != nil {
		return nil, err
	}

	result := &ParseResult{}

	for rowNum, record := range records[1:] {
		field := func(name string) string {
			idx := ordering[name]
			if idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		transCode := field("Trans Code")
		if transCode != "Buy" && transCode != "Sell" {
			continue
		}

		activityDate := field("Activity Date")
		instrument := field("Instrument")
		if activityDate == "" || instrument == "" {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipping row %d - missing date or instrument", rowNum+2))
			continue
		}

		date, err := time.Parse("01/02/2006", activityDate)
		if err != nil {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("skipping row %d - bad date %q", rowNum+2, activityDate))
			continue
		}

		txn := domain.Transaction{
			Date:        date,
			Ticker:      instrument,
			Action:      domain.TradeAction(transCode),
			Quantity:    parseNumber(field("Quantity")),
			Price:       parseNumber(field("Price")),
			Amount:      parseAmount(field("Amount")),
			Description: field("Description"),
		}

		if txn.Quantity.LessThanOrEqual(decimal.Zero) {
			continue
		}

		result.Transactions = append(result.Transactions, txn)
	}

	result.Transactions = domain.SortTransactions(result.Transactions)
	return result, nil
}

// Summary holds quick stats over a parsed transaction set.
type Summary struct {
	Total     int
	Buys      int
	Sells     int
	Tickers   []string
	DateStart time.Time
	DateEnd   time.Time
}

func Summarize(txns []domain.Transaction) Summary {
	s := Summary{Total: len(txns)}
	if len(txns) == 0 {
		return s
	}

	tickers := util.NewSet()
	s.DateStart = txns[0].Date
	s.DateEnd = txns[0].Date
	for _, t := range txns {
		switch t.Action {
		case domain.TradeAction_Buy:
			s.Buys++
		case domain.TradeAction_Sell:
			s.Sells++
		}
		tickers.Add(t.Ticker)
		if t.Date.Before(s.DateStart) {
			s.DateStart = t.Date
		}
		if t.Date.After(s.DateEnd) {
			s.DateEnd = t.Date
		}
	}

	s.Tickers = tickers.List()
	return s
}
