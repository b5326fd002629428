package domain

import (
	"errors"
	"time"
)

// ErrJournalEntryNotFound indicates that the journal entry is not found.
var ErrJournalEntryNotFound = errors.New("journal entry not found")

// JournalEntry records who registered a transaction and when.
type JournalEntry struct {
	ID                     int64     `json:"id"`
	TransactionID          int64     `json:"transaction_id"`
	TransactionDescription string    `json:"transaction_description"`
	RecordedBy             string    `json:"recorded_by"`
	CreatedAt              time.Time `json:"created_at"`
}
