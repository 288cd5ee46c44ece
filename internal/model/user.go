package model

import "time"

const (
	RoleCustomer = "customer"
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
)

// User is the client-safe view of an account. The password hash is never
// part of this type; see UserWithHash.
type User struct {
	ID        int64     `json:"user_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	Phone     *string   `json:"phone"`
	City      *string   `json:"city"`
	CreatedAt time.Time `json:"created_at"`
}

// UserWithHash is a user record together with its bcrypt hash. It only
// travels between the repository and the auth service.
type UserWithHash struct {
	User
	PasswordHash string
}

// RegisterInput is the raw registration payload
type RegisterInput struct {
	Name     string  `json:"name"`
	Email    string  `json:"email"`
	Password string  `json:"password"`
	Role     string  `json:"role"`
	Phone    *string `json:"phone"`
	City     *string `json:"city"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResult is the outcome of a credential check. User is nil whenever
// Valid is false, regardless of why the check failed.
type AuthResult struct {
	Valid bool  `json:"valid"`
	User  *User `json:"user"`
}

// Actor identifies the authenticated caller of a mutating operation
type Actor struct {
	UserID int64
	Role   string
}

// IsAdmin reports whether the actor holds the admin role.
func (a Actor) IsAdmin() bool {
	return a.Role == RoleAdmin
}
