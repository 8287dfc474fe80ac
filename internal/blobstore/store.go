// Package blobstore implements the abstract (entity, id) -> bytes store
// from spec §4.6, with a disk-backed implementation rooted at a
// directory and an in-memory implementation for tests.
package blobstore

// Store is the abstract contract spec §4.6 requires: NextID allocates
// monotonically per entity, Write/Read/Remove/List operate on the raw
// bytes of a single record.
type Store interface {
	// NextID returns max(existing ids for entity) + 1, or 0 if none
	// exist; a missing entity is treated as empty.
	NextID(entity string) (int, error)

	// Write stores data under (entity, id), creating the entity's
	// namespace if needed.
	Write(entity string, id int, data []byte) error

	// Read returns the exact bytes written for (entity, id), or
	// ok=false if absent.
	Read(entity string, id int) (data []byte, ok bool, err error)

	// Remove deletes (entity, id); returns ok=false if it did not exist.
	Remove(entity string, id int) (ok bool, err error)

	// List returns the sorted ids under entity, or ok=false if the
	// entity's namespace does not exist.
	List(entity string) (ids []int, ok bool, err error)
}
