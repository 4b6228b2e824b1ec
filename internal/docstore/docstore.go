// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package docstore reads schema-less documents from a document store.
// MongoDB is the production backend; a SQLite JSON table and a YAML
// fixture file serve offline runs and tests. All backends expose the same
// forward-only cursor so callers never hold the full result set.
package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/pdiddy/scoreid-export/pkg/types"
)

var (
	// ErrUnknownDriver is returned by Open for an unsupported driver name.
	ErrUnknownDriver = errors.New("unknown store driver")

	// ErrReadOnly is returned when inserting into a backend that cannot be written.
	ErrReadOnly = errors.New("store is read-only")
)

// Filter selects documents whose value at the dotted Path equals Value.
type Filter struct {
	Path  string
	Value any
}

func (f Filter) String() string {
	return fmt.Sprintf("%s == %v", f.Path, f.Value)
}

// Source is an open connection to a document collection.
type Source interface {
	Find(ctx context.Context, f Filter) (Cursor, error)
	Close(ctx context.Context) error
}

// Cursor iterates query results in store order.
//
// Decode errors affect only the current document; callers may continue
// with Next. Err reports a failure of the iteration itself.
type Cursor interface {
	Next(ctx context.Context) bool
	Decode() (types.Document, error)
	Err() error
	Close(ctx context.Context) error
}

// Inserter is implemented by backends that accept new documents.
type Inserter interface {
	Insert(ctx context.Context, docs []types.Document) (int, error)
}

// Open connects to the backend selected by cfg.Driver.
func Open(ctx context.Context, cfg types.StoreConfig) (Source, error) {
	switch cfg.Driver {
	case types.DriverMongo, "":
		return OpenMongo(ctx, cfg)
	case types.DriverSQLite:
		return OpenSQLite(ctx, cfg.Path)
	case types.DriverYAML:
		return OpenYAML(cfg.Path)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownDriver, cfg.Driver)
	}
}
