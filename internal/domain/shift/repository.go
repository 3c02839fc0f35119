package shift

import "context"

// RecordRepository defines data access for persisted shift rows. Rows are
// identified by fingerprint (the full column-value tuple) plus an optional
// preferred index hint captured at listing time; there is no synthetic key.
//
// Every mutation performs one fetch and at most one conditional full-file
// write. A concurrent write between the two surfaces as an error, never as a
// silent retry.
type RecordRepository interface {
	// ReadAll returns the current columns and rows. A missing remote file is
	// an empty data set, not an error.
	ReadAll(ctx context.Context) ([]string, []Row, error)

	// Append adds one row, creating the file with a header when absent.
	Append(ctx context.Context, row Row) error

	// Update replaces the row matching the fingerprint and reports whether a
	// match was found. No match means no write.
	Update(ctx context.Context, fingerprint, updated Row, preferredIndex *int) (bool, error)

	// Delete removes the row matching the fingerprint and reports whether a
	// match was found. No match means no write.
	Delete(ctx context.Context, fingerprint Row, preferredIndex *int) (bool, error)
}
