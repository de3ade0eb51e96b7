package storage

import (
	"errors"
	"fmt"
)

// RunKindFit labels fit records in run listings. Trajectories carry their
// own kind (simulate, pulse).
const RunKindFit = "fit"

var errNotInitialized = errors.New("store is not initialized")

func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return newSQLiteStore(sqlitePath)
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
