package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"washtrack/internal/display"
	"washtrack/internal/washsale"

	"github.com/AlecAivazis/survey/v2"
	"github.com/AlecAivazis/survey/v2/terminal"
)

// runInteractiveLoop answers ad-hoc ticker queries against the processed
// detector state until the user quits.
func runInteractiveLoop(detector *washsale.Detector, asOf time.Time) error {
	fmt.Println()
	fmt.Println("Commands: <TICKER> to check, 'list', 'history', 'help', 'q' to quit")

	for {
		var input string
		prompt := &survey.Input{
			Message: "Enter command:",
		}
		err := survey.AskOne(prompt, &input)
		if err != nil {
			if errors.Is(err, terminal.InterruptErr) || errors.Is(err, io.EOF) {
				fmt.Println("Goodbye!")
				return nil
			}
			return err
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		switch strings.ToLower(input) {
		case "q", "quit", "exit":
			fmt.Println("Goodbye!")
			return nil
		case "list":
			fmt.Print(display.RenderActiveWindows(detector.ActiveWindows(asOf), asOf))
		case "history":
			fmt.Print(display.RenderViolations(detector.HistoricalViolations()))
		case "help":
			fmt.Println("Commands:")
			fmt.Println("  <TICKER>  - check if a ticker is safe to buy")
			fmt.Println("  list      - show all active wash sale windows")
			fmt.Println("  history   - show historical wash sales detected")
			fmt.Println("  q/quit    - exit")
		default:
			ticker := strings.ToUpper(input)
			fmt.Print(display.RenderTickerStatus(detector.CheckTicker(ticker, asOf)))
		}
	}
}
