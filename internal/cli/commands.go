package cli

import (
	"fmt"

	"washtrack/internal/config"
	"washtrack/internal/display"
	"washtrack/internal/ingestion"
	"washtrack/internal/logger"
	"washtrack/internal/washsale"

	"github.com/spf13/cobra"
)

// NewRootCmd creates the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "washtrack",
		Short: "washtrack - wash sale detection for brokerage activity history",
		Long: `washtrack analyzes a Robinhood activity-history CSV to find historical
wash-sale violations and tickers whose wash windows are still open, so a
repurchase today would disallow a realized loss.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newAnalyzeCmd())
	rootCmd.AddCommand(newVersionCmd())

	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug logging")

	return rootCmd
}

func newAnalyzeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "analyze <transactions.csv>",
		Short: "Detect wash sales in an activity-history CSV",
		Long: `Parse a Robinhood activity-history CSV, replay it through the wash-sale
detector, and report historical violations plus currently open windows.
Example: washtrack analyze transactions.csv --date 2025-12-23`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dateStr, _ := cmd.Flags().GetString("date")
			noInteractive, _ := cmd.Flags().GetBool("no-interactive")
			debug, _ := cmd.Flags().GetBool("debug")

			return runAnalyze(args[0], dateStr, noInteractive, debug)
		},
	}

	cmd.Flags().String("date", "", "Override today's date (YYYY-MM-DD) for window calculations")
	cmd.Flags().Bool("no-interactive", false, "Skip the interactive ticker-check loop")

	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("washtrack v1.0.0")
		},
	}
}

func runAnalyze(csvFile, dateStr string, noInteractive, debug bool) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(debug || cfg.Debug)

	asOf, err := cfg.ResolveAsOf(dateStr)
	if err != nil {
		return err
	}

	log.Debug().Str("file", csvFile).Time("asOf", asOf).Msg("parsing activity file")
	parsed, err := ingestion.ParseActivityFile(csvFile)
	if err != nil {
		return fmt.Errorf("failed to parse %s: %w", csvFile, err)
	}
	for _, w := range parsed.Warnings {
		log.Warn().Msg(w)
	}

	summary := ingestion.Summarize(parsed.Transactions)
	if summary.Total == 0 {
		fmt.Println("No Buy/Sell transactions found in file.")
		return nil
	}
	fmt.Print(display.RenderSummary(summary))

	detector := washsale.NewDetector()
	if err := detector.Process(parsed.Transactions); err != nil {
		return fmt.Errorf("failed to process transactions: %w", err)
	}

	if skipped := detector.SkippedSells(); skipped > 0 {
		fmt.Printf("  %d sells skipped (no matching buy lots)\n", skipped)
	}
	fmt.Print(display.RenderWarnings(detector.LedgerWarnings()))

	fmt.Print(display.RenderViolations(detector.HistoricalViolations()))
	fmt.Print(display.RenderActiveWindows(detector.ActiveWindows(asOf), asOf))

	if noInteractive || cfg.NoInteractive {
		return nil
	}
	return runInteractiveLoop(detector, asOf)
}
