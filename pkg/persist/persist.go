package persist

import (
	"context"
	"errors"
	"time"
)

// Snapshot keys written by the shop facade.
const (
	KeyProducts = "products"
	KeyCart     = "cart"
	KeyCoupons  = "coupons"
)

// ErrNotFound reports that no snapshot exists for the key. Callers fall back
// to their seed defaults.
var ErrNotFound = errors.New("snapshot not found")

// Store is the key-value persistence collaborator. Load is called once per key
// at startup; Save receives a JSON snapshot after each state-changing
// operation and its failures must never affect the in-memory state.
type Store interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// Snapshot is the stored row backing the SQLite driver.
type Snapshot struct {
	Key       string    `gorm:"column:key;primaryKey"`
	Value     string    `gorm:"column:value;not null"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

// TableName keeps the table in line with the goose migration.
func (Snapshot) TableName() string {
	return "snapshots"
}
