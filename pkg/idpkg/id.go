// Package idpkg generates identifiers for persisted entities.
package idpkg

import "github.com/oklog/ulid/v2"

// New returns a new globally unique id.
//
// Ids produced by the same process sort in creation order,
// so ordering rows by id lists them in insertion order.
func New() string {
	return ulid.Make().String()
}
