package service

import "fmt"

// ValidationError reports malformed or missing caller input. It is returned
// synchronously, before any state is mutated.
type ValidationError struct {
	Detail string
	Fields map[string]string
}

func (e *ValidationError) Error() string { return e.Detail }

func newValidationError(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Detail: fmt.Sprintf(format, args...)}
}

// InsufficientStockError aborts the whole sale transaction. It names the
// offending line so the caller can resolve and resubmit.
type InsufficientStockError struct {
	InventoryID string
	Requested   int
	// Available is the quantity observed when the decrement was refused;
	// -1 when the lot does not exist at all.
	Available int
}

func (e *InsufficientStockError) Error() string {
	if e.Available < 0 {
		return fmt.Sprintf("lot %s not found", e.InventoryID)
	}
	return fmt.Sprintf("insufficient stock in lot %s: requested %d, available %d",
		e.InventoryID, e.Requested, e.Available)
}

// InvalidPeriodError reports an unrecognized period keyword or an
// unparseable reference date.
type InvalidPeriodError struct {
	Period    string
	Reference string
}

func (e *InvalidPeriodError) Error() string {
	if e.Reference != "" {
		return fmt.Sprintf("invalid reference date %q for period %q", e.Reference, e.Period)
	}
	return fmt.Sprintf("invalid period %q", e.Period)
}
