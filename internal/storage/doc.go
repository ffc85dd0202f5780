// Package storage defines the persistence interfaces for events, invitations,
// polls and the identity directory.
//
// Implementations live in subpackages: postgres (pgx) for deployments and
// memory for tests and database-less local runs.
//
// # Error Types
//
//   - ErrNotFound: the requested record is missing.
//   - ErrStale: a versioned write observed a newer version; callers reload and retry.
//   - ErrDuplicate: a uniqueness rule (user email, pending invitation) rejected the write.
package storage
