package model

import "time"

// Role names the access level of an account.  It is stored verbatim in
// the users.role column and carried in the access token's "role" claim.
type Role string

const (
	RoleGuest    Role = "guest"
	RoleEmployee Role = "employee"
	RoleAdmin    Role = "admin"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleGuest, RoleEmployee, RoleAdmin:
		return true
	}
	return false
}

// Account represents a row in the `users` table.  The handle (Username)
// is unique; the secret is only ever stored as a bcrypt hash.
//
// Fields:
//  ID           – primary key identifier.
//  Username     – unique login handle.
//  PasswordHash – bcrypt hash of the password.
//  FullName     – display name shown to staff.
//  Contact      – free-form contact string (phone or email).
//  Role         – guest, employee or admin.
//  CreatedAt    – timestamp of creation.
type Account struct {
	ID           uint64    `json:"id"`         // users.user_id
	Username     string    `json:"username"`   // users.username
	PasswordHash string    `json:"-"`          // users.password_hash
	FullName     string    `json:"fullname"`   // users.fullname
	Contact      string    `json:"contact"`    // users.contact
	Role         Role      `json:"role"`       // users.role
	CreatedAt    time.Time `json:"created_at"` // users.created_at
}

