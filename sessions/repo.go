package sessions

// Repo is the session registry: the single source of truth for per-tenant
// lifecycle state. Implementations must be safe for concurrent use by
// command handlers and adapter event callbacks. Mutations are fast critical
// sections; no operation may block on adapter I/O.
type Repo interface {
	// Get returns a copy of the tenant's record.
	Get(tenantID string) (Record, error)
	// Upsert atomically applies mutate to the tenant's record, creating a
	// default record first if none exists, and returns the resulting copy.
	Upsert(tenantID string, mutate func(*Record)) Record
	// Update atomically applies mutate to an existing record. Unlike
	// Upsert it never creates a record, so late adapter events cannot
	// resurrect a deleted session.
	Update(tenantID string, mutate func(*Record)) error
	// Remove deletes the tenant's record. Removing an absent record is not
	// an error.
	Remove(tenantID string)
	// List returns a snapshot of all records, in no particular order.
	List() []Record
}
