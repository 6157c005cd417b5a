// Package memory is an in-process repository.Store. State is copy-on-write:
// a published state is never mutated, so read-only scopes can hold on to it as
// a snapshot while writers build the next version.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/org-directory/internal/domain"
	"github.com/org-directory/internal/domain/repository"
	"github.com/org-directory/internal/pkg/errors"
)

type idSet map[uuid.UUID]struct{}

type state struct {
	activities    map[uuid.UUID]domain.Activity
	buildings     map[uuid.UUID]domain.Building
	phoneNumbers  map[uuid.UUID]domain.PhoneNumber
	organizations map[uuid.UUID]domain.Organization
	orgActivities map[uuid.UUID]idSet
	orgPhones     map[uuid.UUID]idSet
}

func newState() *state {
	return &state{
		activities:    make(map[uuid.UUID]domain.Activity),
		buildings:     make(map[uuid.UUID]domain.Building),
		phoneNumbers:  make(map[uuid.UUID]domain.PhoneNumber),
		organizations: make(map[uuid.UUID]domain.Organization),
		orgActivities: make(map[uuid.UUID]idSet),
		orgPhones:     make(map[uuid.UUID]idSet),
	}
}

func (st *state) clone() *state {
	cp := &state{
		activities:    make(map[uuid.UUID]domain.Activity, len(st.activities)),
		buildings:     make(map[uuid.UUID]domain.Building, len(st.buildings)),
		phoneNumbers:  make(map[uuid.UUID]domain.PhoneNumber, len(st.phoneNumbers)),
		organizations: make(map[uuid.UUID]domain.Organization, len(st.organizations)),
		orgActivities: make(map[uuid.UUID]idSet, len(st.orgActivities)),
		orgPhones:     make(map[uuid.UUID]idSet, len(st.orgPhones)),
	}
	for k, v := range st.activities {
		cp.activities[k] = v
	}
	for k, v := range st.buildings {
		cp.buildings[k] = v
	}
	for k, v := range st.phoneNumbers {
		cp.phoneNumbers[k] = v
	}
	for k, v := range st.organizations {
		cp.organizations[k] = v
	}
	for k, v := range st.orgActivities {
		cp.orgActivities[k] = v.clone()
	}
	for k, v := range st.orgPhones {
		cp.orgPhones[k] = v.clone()
	}
	return cp
}

func (s idSet) clone() idSet {
	cp := make(idSet, len(s))
	for id := range s {
		cp[id] = struct{}{}
	}
	return cp
}

// unlink removes id from every owner's set.
func unlink(links map[uuid.UUID]idSet, id uuid.UUID) {
	for _, set := range links {
		delete(set, id)
	}
}

type txKey struct{}

type tx struct {
	st       *state
	readOnly bool
}

// Store - хранилище в памяти процесса
type Store struct {
	mu      sync.RWMutex
	writeMu sync.Mutex
	current *state
	logger  *zap.Logger

	activities    *activityRepository
	buildings     *buildingRepository
	phoneNumbers  *phoneNumberRepository
	organizations *organizationRepository
}

var _ repository.Store = (*Store)(nil)

func NewStore(logger *zap.Logger, earthRadiusM float64) *Store {
	s := &Store{
		current: newState(),
		logger:  logger,
	}
	s.activities = &activityRepository{s: s}
	s.buildings = &buildingRepository{s: s}
	s.phoneNumbers = &phoneNumberRepository{s: s}
	s.organizations = &organizationRepository{s: s, earthRadiusM: earthRadiusM}
	return s
}

func (s *Store) Activities() repository.ActivityRepository        { return s.activities }
func (s *Store) Buildings() repository.BuildingRepository         { return s.buildings }
func (s *Store) PhoneNumbers() repository.PhoneNumberRepository   { return s.phoneNumbers }
func (s *Store) Organizations() repository.OrganizationRepository { return s.organizations }

func (s *Store) Ping(context.Context) error { return nil }
func (s *Store) Close() error               { return nil }

// Do runs fn against a private copy of the state and publishes it when fn
// succeeds. Writers are serialised.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*tx); ok {
		return fn(ctx)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	s.mu.RLock()
	work := s.current.clone()
	s.mu.RUnlock()

	// A panic in fn leaves work unpublished.
	if err := fn(context.WithValue(ctx, txKey{}, &tx{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	s.current = work
	s.mu.Unlock()
	return nil
}

// View runs fn against the state published at the time of the call.
func (s *Store) View(ctx context.Context, fn func(ctx context.Context) error) error {
	if _, ok := ctx.Value(txKey{}).(*tx); ok {
		return fn(ctx)
	}

	s.mu.RLock()
	snapshot := s.current
	s.mu.RUnlock()

	return fn(context.WithValue(ctx, txKey{}, &tx{st: snapshot, readOnly: true}))
}

func (s *Store) read(ctx context.Context, fn func(st *state)) {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		fn(t.st)
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	fn(s.current)
}

// write applies fn inside the active scope, or as its own single-call scope
// when there is none.
func (s *Store) write(ctx context.Context, fn func(st *state) error) error {
	if t, ok := ctx.Value(txKey{}).(*tx); ok {
		if t.readOnly {
			s.logger.Error("Write attempted in read-only scope")
			return errors.ErrDatabaseError
		}
		return fn(t.st)
	}

	return s.Do(ctx, func(ctx context.Context) error {
		return fn(ctx.Value(txKey{}).(*tx).st)
	})
}

func sortByID[T any](items []T, id func(T) uuid.UUID) {
	sort.Slice(items, func(i, j int) bool {
		return id(items[i]).String() < id(items[j]).String()
	})
}

func activityID(a domain.Activity) uuid.UUID         { return a.ID }
func buildingID(b domain.Building) uuid.UUID         { return b.ID }
func phoneNumberID(p domain.PhoneNumber) uuid.UUID   { return p.ID }
func organizationID(o domain.Organization) uuid.UUID { return o.ID }

func paginate[T any](items []T, page domain.Pagination) []T {
	start, end := page.Window(len(items))
	out := make([]T, end-start)
	copy(out, items[start:end])
	return out
}

func copyUUIDPtr(id *uuid.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	cp := *id
	return &cp
}
