package ledger

import "fmt"

// RecordError identifies the ledger record that failed validation.
// Index is the position of the record in the slice handed to the engine.
// It wraps one of the apperrors ledger validation sentinels.
type RecordError struct {
	Symbol        string
	Index         int
	TransactionID string
	Err           error
}

func (e *RecordError) Error() string {
	if e.TransactionID == "" {
		return fmt.Sprintf("%s: record %d: %v", e.Symbol, e.Index, e.Err)
	}
	return fmt.Sprintf("%s: record %d (%s): %v", e.Symbol, e.Index, e.TransactionID, e.Err)
}

func (e *RecordError) Unwrap() error {
	return e.Err
}

func newRecordError(tx indexedTransaction, err error) *RecordError {
	return &RecordError{
		Symbol:        tx.Symbol,
		Index:         tx.index,
		TransactionID: tx.ID,
		Err:           err,
	}
}
