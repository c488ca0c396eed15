package models

import (
	"strings"
)

// Role is the closed set of roles known to the menu service.
type Role int

const (
	RoleUnknown Role = iota
	RoleAdmin
	RoleOwner
	RoleEmployee
	RoleCustomer
)

// AuthorityPrefix marks a role name that has been turned into an authority.
const AuthorityPrefix = "ROLE_"

// DefaultRoleName is attached to credentials that carry no role claim.
const DefaultRoleName = "USER"

var roleNames = map[Role]string{
	RoleUnknown:  "UNKNOWN",
	RoleAdmin:    "ADMINISTRADOR",
	RoleOwner:    "PROPIETARIO",
	RoleEmployee: "EMPLEADO",
	RoleCustomer: "CLIENTE",
}

// legacyRoles maps the role names and historical numeric codes used by the
// identity service to a Role.
var legacyRoles = map[string]Role{
	"ADMINISTRADOR": RoleAdmin,
	"1":             RoleAdmin,
	"PROPIETARIO":   RoleOwner,
	"2":             RoleOwner,
	"EMPLEADO":      RoleEmployee,
	"3":             RoleEmployee,
	"CLIENTE":       RoleCustomer,
	"4":             RoleCustomer,
}

// ParseRole maps a role token to a Role. Names match case-insensitively and
// nothing else is normalized: padded or prefixed tokens yield RoleUnknown.
func ParseRole(token string) Role {
	return legacyRoles[strings.ToUpper(token)]
}

func (r Role) String() string {
	if name, ok := roleNames[r]; ok {
		return name
	}
	return roleNames[RoleUnknown]
}

func (r Role) MarshalText() ([]byte, error) {
	return []byte(r.String()), nil
}

// Identity is the caller as confirmed by the identity service.
type Identity struct {
	ID   int64
	Role Role
}

// IsOwner reports whether the identity may manage restaurants and dishes.
func (i Identity) IsOwner() bool {
	return i.Role == RoleOwner
}
