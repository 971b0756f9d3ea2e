package store

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Record is one fetched payload to persist.
type Record struct {
	ID        uuid.UUID
	Symbol    string
	Kind      string
	Provider  string
	Payload   any
	FetchedAt time.Time
}

// NewRecord stamps payload with a fresh ID and the current time.
func NewRecord(symbol, kind, providerName string, payload any) Record {
	return Record{
		ID:        uuid.New(),
		Symbol:    symbol,
		Kind:      kind,
		Provider:  providerName,
		Payload:   payload,
		FetchedAt: time.Now().UTC(),
	}
}

// Store writes fetched records to a named table.
type Store interface {
	Save(ctx context.Context, table string, rec Record) error
}
