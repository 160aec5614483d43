// Package errorspkg provides errors shared by every layer of the app.
package errorspkg

import "errors"

var (
	// ErrInternal hides the cause of any unexpected failure from API clients.
	ErrInternal = errors.New("internal")
	// ErrRouteNotFound is returned for unknown routes.
	ErrRouteNotFound = errors.New("not found")
)
