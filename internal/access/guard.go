// Package access decides whether a caller may act on a record it does not own.
//
// Every mutable record knows its owner. A Guard loads the record first and only
// then compares owners, so a missing record is reported as not found even to a
// caller who would not be allowed to touch it.
package access

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/mrlokans/careerpath/internal/entities"
)

// Owned is implemented by every record that belongs to a single user.
type Owned interface {
	OwnerID() uuid.UUID
}

// Loader fetches a record by key. It must return an error wrapping
// entities.ErrNotFound when the record does not exist.
type Loader[K any, T Owned] func(ctx context.Context, id K) (T, error)

// Guard checks existence, then ownership.
type Guard[K any, T Owned] struct {
	load Loader[K, T]
	kind string
}

// NewGuard builds a guard for records of the given kind ("career", "course", ...).
func NewGuard[K any, T Owned](kind string, load Loader[K, T]) *Guard[K, T] {
	return &Guard[K, T]{load: load, kind: kind}
}

// Authorize returns the record when userID owns it.
func (g *Guard[K, T]) Authorize(ctx context.Context, id K, userID uuid.UUID) (T, error) {
	record, err := g.load(ctx, id)
	if err != nil {
		var zero T
		return zero, err
	}
	if !Owns(record, userID) {
		var zero T
		return zero, fmt.Errorf("%s %v belongs to another user: %w", g.kind, id, entities.ErrForbidden)
	}
	return record, nil
}

// Owns is the bare ownership check for records already in hand.
func Owns(record Owned, userID uuid.UUID) bool {
	return record.OwnerID() == userID
}
