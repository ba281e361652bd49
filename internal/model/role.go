package model

// Role is the access level attached to a profile
type Role string

const (
	RoleGuest      Role = "guest"
	RoleMember     Role = "member"
	RoleStaff      Role = "staff"
	RoleAdmin      Role = "admin"
	RoleSuperAdmin Role = "superadmin"
)

// Roles lists every known role, lowest privilege first
var Roles = []Role{RoleGuest, RoleMember, RoleStaff, RoleAdmin, RoleSuperAdmin}

// Valid reports whether r is one of the known roles
func (r Role) Valid() bool {
	for _, known := range Roles {
		if r == known {
			return true
		}
	}
	return false
}

// ParseRole converts a raw value into a Role.
// An empty value yields RoleGuest, matching the profile default.
func ParseRole(s string) (Role, error) {
	if s == "" {
		return RoleGuest, nil
	}
	r := Role(s)
	if !r.Valid() {
		return "", ErrInvalidRole
	}
	return r, nil
}
