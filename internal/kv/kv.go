// Package kv provides the key-value storage that backs every storefront store.
//
// The storage mirrors a browser's local storage: string keys, opaque values,
// and no transactions spanning more than one call. Callers that need a
// read-modify-write perform a Get followed by a Set and accept that a
// concurrent writer in between wins.
package kv

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
)

// ErrKeyNotFound is returned by Get when the key holds no value.
var ErrKeyNotFound = errors.New("kv: key not found")

// Storage is a flat key-value namespace.
type Storage interface {
	// Get returns the value stored under key, or ErrKeyNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	// Keys lists every key that starts with prefix, in ascending order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	// Close releases the underlying resources.
	Close() error
}

// Driver names accepted by Open.
const (
	DriverBadger = "badger"
	DriverSQLite = "sqlite"
)

// Open opens the storage named by driver at path.
func Open(driver, path string, logger *slog.Logger) (Storage, error) {
	switch driver {
	case DriverBadger, "":
		b, err := OpenBadger(path, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	case DriverSQLite:
		s, err := OpenSQLite(path, logger)
		if err != nil {
			return nil, err
		}
		return s, nil
	default:
		return nil, fmt.Errorf("unknown storage driver %q (must be %s or %s)", driver, DriverBadger, DriverSQLite)
	}
}
