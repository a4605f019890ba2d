package model

import "time"

// Role names accepted by the application. The role claim baked into an
// access token is immutable for the token's lifetime; changing a
// user's role here does not invalidate tokens that were already
// issued.
const (
	RoleStudent   = "student"
	RoleFaculty   = "faculty"
	RoleLibrarian = "librarian"
	RoleAdmin     = "admin"
)

// ValidRole reports whether name is a member of the known role set.
func ValidRole(name string) bool {
	switch name {
	case RoleStudent, RoleFaculty, RoleLibrarian, RoleAdmin:
		return true
	}
	return false
}

// User represents an application user record as stored in the
// `users` table. The json tags are omitted because these structs are
// used internally by the repository layer; handlers define separate
// response types with appropriate JSON tags.
//
// Fields:
//  ID                 – primary key identifier of the user.
//  RegistrationNumber – optional campus registration number (unique
//                       when present, empty for staff accounts).
//  Name               – display name.
//  Email              – unique email address.
//  PasswordHash       – bcrypt hashed password.
//  Role               – one of the Role* constants.
//  CreatedAt          – timestamp of creation.
//  UpdatedAt          – timestamp of last update.
type User struct {
	ID                 uint64    // users.id
	RegistrationNumber string    // users.registration_number
	Name               string    // users.name
	Email              string    // users.email
	PasswordHash       string    // users.password_hash
	Role               string    // users.role
	CreatedAt          time.Time // users.created_at
	UpdatedAt          time.Time // users.updated_at
}
