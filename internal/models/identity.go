package models

const (
	RoleStudent   = "student"
	RoleTeacher   = "teacher"
	RoleDeveloper = "developer"
	RoleAdmin     = "admin"
)

// Identity is the authenticated caller. It is passed explicitly into
// engine operations instead of being read from ambient session state.
type Identity struct {
	Role string `json:"role"`
}

func (i Identity) Is(role string) bool {
	return i.Role == role
}

// IsAny reports whether the identity carries one of the given roles.
func (i Identity) IsAny(roles ...string) bool {
	for _, r := range roles {
		if i.Role == r {
			return true
		}
	}
	return false
}
