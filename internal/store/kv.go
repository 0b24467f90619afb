package store

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/Makepad-fr/tada/internal/store/jsonstore"
	"github.com/Makepad-fr/tada/internal/store/sqlitestore"
)

// KV is the persistence the local backend writes through: whole values under string keys.
type KV interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Local drivers.
const (
	DriverJSON   = "json"
	DriverSQLite = "sqlite"
)

// OpenKV opens the local key/value store for driver under dir.
func OpenKV(ctx context.Context, driver, dir string) (KV, error) {
	switch driver {
	case "", DriverJSON:
		return jsonstore.New(dir), nil
	case DriverSQLite:
		return sqlitestore.Open(ctx, filepath.Join(dir, "tada.sqlite"))
	default:
		return nil, fmt.Errorf("unknown local driver %q (want %s or %s)", driver, DriverJSON, DriverSQLite)
	}
}
