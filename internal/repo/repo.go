// Package repo provides the per-collection repositories over the JSON
// flat files. Every mutation is a read-modify-rewrite of one file,
// serialized by a per-repository mutex.
package repo

import "errors"

// Sentinel errors mapped to HTTP statuses by the handlers.
var (
	ErrNotFound    = errors.New("not found")
	ErrEmailExists = errors.New("email already exists")
	ErrAssigned    = errors.New("equipment is assigned")
	ErrNameExists  = errors.New("name already exists")
	ErrInUse       = errors.New("still referenced")
)

// nextID returns max(ids)+1, starting at 1 for an empty collection.
func nextID(ids []int) int {
	max := 0
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	return max + 1
}
