package shared

import (
	"context"
	"strings"
)

// Role is the locally selected canvas role.
type Role string

const (
	RoleEdit    Role = "edit"
	RoleComment Role = "comment"
	RoleView    Role = "view"
)

// ParseRole maps a header or flag value onto a Role.
func ParseRole(s string) (Role, bool) {
	switch Role(strings.ToLower(strings.TrimSpace(s))) {
	case RoleEdit:
		return RoleEdit, true
	case RoleComment:
		return RoleComment, true
	case RoleView:
		return RoleView, true
	}
	return "", false
}

// Permission is what a command needs from the acting role.
type Permission int

const (
	// PermissionRead covers queries.
	PermissionRead Permission = iota
	// PermissionComment covers adding comments.
	PermissionComment
	// PermissionMutate covers every graph mutation and selection gesture.
	PermissionMutate
)

func (p Permission) String() string {
	switch p {
	case PermissionRead:
		return "read"
	case PermissionComment:
		return "comment"
	case PermissionMutate:
		return "mutate"
	}
	return "unknown"
}

// Allows reports whether the role grants the permission. View blocks every
// gesture, including reads issued as gestures; plain queries stay open.
func (r Role) Allows(p Permission) bool {
	switch p {
	case PermissionRead:
		return r == RoleEdit || r == RoleComment || r == RoleView
	case PermissionComment:
		return r == RoleEdit || r == RoleComment
	case PermissionMutate:
		return r == RoleEdit
	}
	return false
}

// Permissioned is implemented by requests that need something other than
// the default permission of their kind.
type Permissioned interface {
	Permission() Permission
}

// Identity is the acting user and role.
type Identity struct {
	UserID string
	Role   Role
}

type identityKey struct{}

// WithIdentity returns a context carrying the identity.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, id)
}

// IdentityFrom extracts the identity placed by WithIdentity.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey{}).(Identity)
	return id, ok
}
