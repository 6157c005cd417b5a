package repository

import "context"

// UnitOfWork runs a group of repository calls atomically. The active
// transaction travels in the context passed to fn, so repository calls made
// with that context take part in it. A scope opened inside another scope joins
// the outer one.
type UnitOfWork interface {
	// Do runs fn in a read-write transaction. It commits when fn returns nil
	// and ctx is still live, otherwise it rolls back. A panic in fn rolls back
	// and is re-raised.
	Do(ctx context.Context, fn func(ctx context.Context) error) error

	// View runs fn against a consistent read-only snapshot.
	View(ctx context.Context, fn func(ctx context.Context) error) error
}

// Store bundles the repositories of one storage backend.
type Store interface {
	UnitOfWork

	Activities() ActivityRepository
	Buildings() BuildingRepository
	PhoneNumbers() PhoneNumberRepository
	Organizations() OrganizationRepository

	Ping(ctx context.Context) error
	Close() error
}
