// Package policy holds the row-level visibility rules as an explicit,
// independently testable predicate.
package policy

import (
	"github.com/quizdex/quizdex/internal/domain/actor"
	"github.com/quizdex/quizdex/internal/domain/catalog"
)

// Visible reports whether a test may be shown to the caller.
//
// With a creator filter, only that creator's tests qualify; the creator
// themselves and administrators see all of them, everyone else only the
// public ones. Without a filter the caller sees public tests, their own
// tests, and, when they are an administrator, everything.
func Visible(t *catalog.Test, a actor.Actor, creatorFilter string) bool {
	if creatorFilter != "" {
		if t.CreatedBy() != creatorFilter {
			return false
		}
		return a.Admin() || a.ID() == creatorFilter || t.IsPublic()
	}
	return t.IsPublic() || a.Admin() || (!a.Anonymous() && t.CreatedBy() == a.ID())
}
