package sessions

import (
	"sync"
	"time"

	errs "github.com/softzcar/ninesys-msg/internal/errors"
)

// InMemoryRepo is an in-memory implementation of the session registry.
type InMemoryRepo struct {
	mu      sync.RWMutex
	records map[string]*Record // tenantID -> record
}

// NewInMemoryRepo creates a new in-memory session registry
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		records: make(map[string]*Record),
	}
}

var _ Repo = (*InMemoryRepo)(nil)

// Get returns a copy of the tenant's record
func (r *InMemoryRepo) Get(tenantID string) (Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	rec, ok := r.records[tenantID]
	if !ok {
		return Record{}, errs.ErrSessionNotFound
	}
	return *rec, nil
}

// Upsert applies mutate to the tenant's record under the registry lock,
// creating a default record if none exists. The mutator must be fast and
// must not call into the adapter.
func (r *InMemoryRepo) Upsert(tenantID string, mutate func(*Record)) Record {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[tenantID]
	if !ok {
		rec = &Record{TenantID: tenantID}
		r.records[tenantID] = rec
	}
	if mutate != nil {
		mutate(rec)
	}
	rec.TenantID = tenantID // immutable, survives careless mutators
	rec.UpdatedAt = time.Now()
	return *rec
}

// Update applies mutate to an existing record, never creating one
func (r *InMemoryRepo) Update(tenantID string, mutate func(*Record)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rec, ok := r.records[tenantID]
	if !ok {
		return errs.ErrSessionNotFound
	}
	if mutate != nil {
		mutate(rec)
	}
	rec.TenantID = tenantID
	rec.UpdatedAt = time.Now()
	return nil
}

// Remove deletes the tenant's record
func (r *InMemoryRepo) Remove(tenantID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.records, tenantID)
}

// List returns a snapshot of all records
func (r *InMemoryRepo) List() []Record {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, *rec)
	}
	return out
}
