package process

import (
	"errors"
	"fmt"
)

// ErrNoData is returned by the pre-report validation gate when no valid
// users exist. It is fatal to the run.
var ErrNoData = errors.New("no data available for report")

// ProcessingError reports a failure while computing statistics for one user.
// Unlike dropped records, this aborts the run: it indicates a logic or
// data-shape bug rather than one bad record.
type ProcessingError struct {
	UserID int64
	Err    error
}

// Error implements the error interface.
func (e *ProcessingError) Error() string {
	return fmt.Sprintf("processing metrics for user %d: %v", e.UserID, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ProcessingError) Unwrap() error {
	return e.Err
}
