// Package actor holds the caller context for authorization decisions.
package actor

// Actor identifies the requesting caller. A zero Actor is anonymous.
type Actor struct {
	id    string
	admin bool
}

// New creates an Actor.
func New(id string, admin bool) Actor {
	return Actor{id: id, admin: admin}
}

// Anonymous returns the unauthenticated caller context.
func Anonymous() Actor { return Actor{} }

// ID returns the caller identifier ("" for anonymous).
func (a Actor) ID() string { return a.id }

// Admin reports whether the caller is an administrator.
func (a Actor) Admin() bool { return a.admin }

// Anonymous reports whether the caller has no resolved identity.
func (a Actor) Anonymous() bool { return a.id == "" }

// WithAdmin returns a copy with the admin flag set.
func (a Actor) WithAdmin(admin bool) Actor {
	a.admin = admin
	return a
}
