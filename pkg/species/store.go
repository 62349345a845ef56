package species

import "context"

// Store keeps resolved species. Records are unique by case-insensitive
// common name and by case-insensitive scientific name. There is no delete.
type Store interface {
	// FindByCommonOrScientificName returns a record whose common or
	// scientific name equals name ignoring case. It returns nil without
	// error if there is no such record.
	FindByCommonOrScientificName(ctx context.Context, name string) (*Record, error)

	// Upsert updates a record that matches either name of rec, or inserts
	// rec if there is no match. The stored record is returned. Upserts of
	// different species are safe to run concurrently, a concurrent upsert
	// of the same species ends with the last writer's data.
	Upsert(ctx context.Context, rec Record) (Record, Action, error)

	// ListAll returns all records ordered by common name.
	ListAll(ctx context.Context) ([]Record, error)

	// Count returns the number of stored records.
	Count(ctx context.Context) (int64, error)

	// Close releases the underlying database connection.
	Close() error
}
