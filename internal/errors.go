package washtrack_errors

import (
	"fmt"
	"time"
)

// ErrUnexpectedAction is returned when a transaction of the wrong kind is
// handed to a kind-specific operation, e.g. a sell passed to AddLot. This is
// a programming error in the caller, never swallowed.
type ErrUnexpectedAction struct {
	Expected string
	Received string
	Ticker   string
	Date     time.Time
}

func (e ErrUnexpectedAction) Error() string {
	return fmt.Sprintf("expected %s transaction for %s on %s, got %s",
		e.Expected, e.Ticker, e.Date.Format("2006-01-02"), e.Received)
}
