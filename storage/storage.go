// storage/storage.go
package storage

import (
	"context"
	"errors"

	"github.com/mihirzalavadiya/css-battle-showcase/models"
)

// ErrStorage marks a failure of the backing medium itself (unreadable file,
// unreachable remote, failed write). Wrap it with fmt.Errorf("...: %w", ...)
// so callers can test with errors.Is.
var ErrStorage = errors.New("storage error")

// RecordStore is the persistence contract shared by every backend. The whole
// collection is the unit of consistency: there is no per-record update and no
// cross-process locking, so concurrent writers race at last-write-wins
// granularity.
type RecordStore interface {
	// LoadAll returns every persisted battle in the store's natural order.
	// A store with no data yet returns an empty slice, never an error.
	LoadAll(ctx context.Context) ([]models.Battle, error)

	// SaveAll replaces the entire persisted collection.
	SaveAll(ctx context.Context, battles []models.Battle) error
}

// document is the on-disk/on-wire envelope, kept compatible with the db.json
// files written by the Node deployments.
type document struct {
	Battles []models.Battle `json:"battles"`
}
