package models

// Role classifies a user for privileged routes.
type Role string

const (
	RoleDefault Role = "default"
	RoleAdmin   Role = "admin"
)

// User holds the two fields of a stored user that access checks read.
// The rest of the profile stays an opaque Document.
type User struct {
	Email string
	Role  Role
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}
