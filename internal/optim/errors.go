package optim

import (
	"errors"
	"fmt"
)

// PatternError reports a block whose sparsity or row accounting broke the
// composition contract.
type PatternError struct {
	// Code identifies the violation.
	Code PatternErrorCode

	// Message is a human-readable description.
	Message string

	// Block is the ObjectName of the offending block.
	Block string

	// Offset is the block's first global row.
	Offset int

	// Row is the global row involved, or -1.
	Row int
}

// PatternErrorCode categorizes pattern violations.
type PatternErrorCode string

const (
	// ErrCodeRowCount indicates a method returned a row count other than NumCon.
	ErrCodeRowCount PatternErrorCode = "ROW_COUNT"

	// ErrCodeCSRSize indicates AddConCSR registered a different number of
	// entries than ConCSRSize announced.
	ErrCodeCSRSize PatternErrorCode = "CSR_SIZE"

	// ErrCodeColumnRange indicates a column index outside the design vector.
	ErrCodeColumnRange PatternErrorCode = "COLUMN_RANGE"

	// ErrCodeUnstable indicates two AddConCSR passes disagreed.
	ErrCodeUnstable PatternErrorCode = "PATTERN_UNSTABLE"

	// ErrCodeStructureModified indicates EvalConDVSens changed rowp or cols.
	ErrCodeStructureModified PatternErrorCode = "STRUCTURE_MODIFIED"

	// ErrCodeMissingEntry indicates a registered entry EvalConDVSens did not fill.
	ErrCodeMissingEntry PatternErrorCode = "MISSING_ENTRY"

	// ErrCodeOutOfPattern indicates EvalConDVSens wrote outside its rows.
	ErrCodeOutOfPattern PatternErrorCode = "OUT_OF_PATTERN"

	// ErrCodeLength indicates a caller slice shorter than the system.
	ErrCodeLength PatternErrorCode = "LENGTH"
)

// Error implements the error interface.
func (e *PatternError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("%s: %s (block=%s, offset=%d, row=%d)", e.Code, e.Message, e.Block, e.Offset, e.Row)
	}
	if e.Block != "" {
		return fmt.Sprintf("%s: %s (block=%s, offset=%d)", e.Code, e.Message, e.Block, e.Offset)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// IsPatternError reports whether err wraps a PatternError with code.
func IsPatternError(err error, code PatternErrorCode) bool {
	var pe *PatternError
	if errors.As(err, &pe) {
		return pe.Code == code
	}
	return false
}

func lengthError(what string, got, want int) *PatternError {
	return &PatternError{
		Code:    ErrCodeLength,
		Message: fmt.Sprintf("%s has length %d, need %d", what, got, want),
		Row:     -1,
	}
}
