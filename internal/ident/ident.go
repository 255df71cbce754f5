// Package ident generates opaque identifiers for feeds and for
// articles whose source provides no GUID.
package ident

import "github.com/rs/xid"

// New returns a new opaque string identifier. IDs are process-unique
// and collision-resistant at application scale; uniqueness is
// probabilistic, which is sufficient here since remote GUIDs take
// precedence wherever they exist.
func New() string {
	return xid.New().String()
}
