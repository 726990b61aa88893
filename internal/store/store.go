// Package store provides data persistence implementations.
package store

import (
	"context"

	"gamma-guide/internal/models"
)

// Journal persists paper orders together with the risk figures they were
// placed at. The synthesis engine itself stays stateless; the journal records
// what the user did with its output.
type Journal interface {
	// SaveOrder persists one evaluated order and returns its row id.
	SaveOrder(ctx context.Context, entry *models.JournalEntry) (int64, error)
	// ListOrders returns the most recent orders, newest first.
	ListOrders(ctx context.Context, limit int) ([]models.JournalEntry, error)
	// Close releases the underlying resources.
	Close() error
}
