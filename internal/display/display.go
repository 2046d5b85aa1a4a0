package display

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"washtrack/internal/domain"
	"washtrack/internal/ingestion"

	"github.com/charmbracelet/lipgloss"
	"github.com/shopspring/decimal"
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#3B82F6")).
			BorderStyle(lipgloss.NormalBorder()).
			BorderBottom(true).
			BorderForeground(lipgloss.Color("#3B82F6"))

	safeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	warnStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F59E0B")).
			Bold(true)

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))
)

func header(title string) string {
	return "\n" + headerStyle.Render(" "+title+" ") + "\n"
}

// RenderSummary describes a parsed transaction set in one or two lines.
func RenderSummary(s ingestion.Summary) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Loaded %d transactions (%s to %s)\n",
		s.Total, s.DateStart.Format("2006-01-02"), s.DateEnd.Format("2006-01-02"))
	fmt.Fprintf(&b, "  %d buys, %d sells across %d tickers\n",
		s.Buys, s.Sells, len(s.Tickers))
	return b.String()
}

// RenderViolations lists historical wash sales in buy-date order.
func RenderViolations(violations []domain.WashSaleViolation) string {
	if len(violations) == 0 {
		return safeStyle.Render("✓ No historical wash sales detected.") + "\n"
	}

	var b strings.Builder
	b.WriteString(header("Historical Wash Sales Detected"))
	for i, v := range violations {
		fmt.Fprintf(&b, "\n%d. %s: Bought %s shares on %s\n",
			i+1, v.Ticker, v.TriggeringBuyQuantity.StringFixed(4),
			v.TriggeringBuyDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "   within %d days of loss sale on %s\n",
			domain.WashWindowDays, v.LossSale.SaleDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "   original loss: $%s\n", v.LossSale.LossAmount.StringFixed(2))
		fmt.Fprintf(&b, "   disallowed loss: $%s\n", v.DisallowedLoss.StringFixed(2))
	}
	return b.String()
}

type tickerGroup struct {
	ticker   string
	total    decimal.Decimal
	safeDate time.Time
	numSales int
}

// RenderActiveWindows prints the per-ticker table of open wash windows,
// highest total loss first, with a grand-total row.
func RenderActiveWindows(active []domain.LossSale, asOf time.Time) string {
	if len(active) == 0 {
		return safeStyle.Render("✓ No active wash sale windows.") + "\n"
	}

	groups := map[string]*tickerGroup{}
	for _, ls := range active {
		g, ok := groups[ls.Ticker]
		if !ok {
			g = &tickerGroup{ticker: ls.Ticker, total: decimal.Zero}
			groups[ls.Ticker] = g
		}
		g.total = g.total.Add(ls.LossAmount)
		g.numSales++
		if safe := ls.SafeToBuyDate(); safe.After(g.safeDate) {
			g.safeDate = safe
		}
	}

	sorted := make([]*tickerGroup, 0, len(groups))
	for _, g := range groups {
		sorted = append(sorted, g)
	}
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].total.GreaterThan(sorted[j].total)
	})

	var b strings.Builder
	b.WriteString(header(fmt.Sprintf("Active Wash Sale Windows (as of %s)", asOf.Format("2006-01-02"))))
	fmt.Fprintf(&b, "\n%-8s %14s %-12s %8s %8s\n", "TICKER", "TOTAL LOSS", "SAFE AFTER", "DAYS", "# SALES")
	b.WriteString(dimStyle.Render(strings.Repeat("-", 54)) + "\n")

	grandTotal := decimal.Zero
	for _, g := range sorted {
		days := int(g.safeDate.Sub(asOf).Hours() / 24)
		if days < 0 {
			days = 0
		}
		grandTotal = grandTotal.Add(g.total)
		fmt.Fprintf(&b, "%-8s %14s %-12s %8d %8d\n",
			g.ticker, "$"+g.total.StringFixed(2), g.safeDate.Format("2006-01-02"),
			days, g.numSales)
	}
	b.WriteString(dimStyle.Render(strings.Repeat("-", 54)) + "\n")
	fmt.Fprintf(&b, "%-8s %14s\n", "TOTAL", "$"+grandTotal.StringFixed(2))
	b.WriteString("\n" + warnStyle.Render("Buying any of these tickers before the safe date disallows the loss deduction.") + "\n")
	return b.String()
}

// RenderTickerStatus prints the single-ticker safety check.
func RenderTickerStatus(status domain.TickerStatus) string {
	if status.IsSafe {
		return safeStyle.Render(fmt.Sprintf("✓ %s is clear - no wash sale restrictions.", status.Ticker)) + "\n"
	}

	var b strings.Builder
	b.WriteString(warnStyle.Render(fmt.Sprintf("⚠ WASH SALE WARNING: do not buy %s!", status.Ticker)) + "\n")
	for _, ls := range status.ActiveWindows {
		fmt.Fprintf(&b, "\n   Loss sale on %s:\n", ls.SaleDate.Format("2006-01-02"))
		fmt.Fprintf(&b, "     sold %s shares @ $%s\n", ls.Quantity.StringFixed(4), ls.SalePrice.StringFixed(2))
		fmt.Fprintf(&b, "     proceeds: $%s\n", ls.Proceeds.StringFixed(2))
		fmt.Fprintf(&b, "     cost basis: $%s\n", ls.CostBasis.StringFixed(2))
		fmt.Fprintf(&b, "     loss: $%s\n", ls.LossAmount.StringFixed(2))
	}
	fmt.Fprintf(&b, "\n   Safe to buy after: %s (%d days from now)\n",
		status.SafeToBuyDate().Format("2006-01-02"), status.DaysUntilSafe())
	return b.String()
}

// RenderWarnings prints data-quality diagnostics collected during parsing
// and ledger processing.
func RenderWarnings(warnings []string) string {
	if len(warnings) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(header("Warnings"))
	for _, w := range warnings {
		b.WriteString(dimStyle.Render("  • "+w) + "\n")
	}
	return b.String()
}
