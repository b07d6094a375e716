// Package repositories implements SQLite persistence for all domain entities.
//
// Each repository handles CRUD operations with atomic sequence generation for human-readable ordering.
// All repositories support soft deletes via deleted_at timestamps and exclude deleted records from queries by default.
//
// Key Implementations:
//   - [UserRepository] : Account persistence with Spotify-identity lookups and refresh token rotation
//   - [ReviewRepository] : Album reviews with joined author display fields
//   - [ListRepository] : Album lists plus list_items membership and the bulk reorder statement
//
// Sequence numbers provide stable, human-readable ordering (e.g., user #42, list #15) independent of UUIDs and creation timestamps.
// The [NextSequence] function atomically increments per-table sequence counters in dedicated sequence tables.
package repositories
