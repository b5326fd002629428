package domain

import (
	"errors"
	"time"
)

// User roles.
const (
	RoleMember = "member"
	RoleAdmin  = "admin"
)

var (
	// ErrUsernameAlreadyExists indicates the the user with the given username already exists.
	ErrUsernameAlreadyExists = errors.New("username already exists")
	// ErrEmailALreadyExists indicates the the user with the given email already exists.
	ErrEmailALreadyExists = errors.New("email already exists")
	// ErrUserNotFound indicates the the user is not found.
	ErrUserNotFound = errors.New("user not found")
	// ErrWrongPassword indicates the wrong password for the given user.
	ErrWrongPassword = errors.New("wrong password")
	// ErrInvalidRole indicates a role other than member or admin.
	ErrInvalidRole = errors.New("invalid role")
)

// IsSupportedRole returns true if the role is member or admin.
func IsSupportedRole(role string) bool {
	return role == RoleMember || role == RoleAdmin
}

// User holds user data.
type User struct {
	Username          string    `json:"username"`
	HashedPassword    string    `json:"hashed_password"`
	FullName          string    `json:"full_name"`
	Email             string    `json:"email"`
	Role              string    `json:"role"`
	PasswordChangedAt time.Time `json:"password_changed_at,omitempty"`
	CreatedAt         time.Time `json:"created_at,omitempty"`
}

// CreateUserParams is the input data to create a user.
type CreateUserParams struct {
	Username       string `json:"username"`
	HashedPassword string `json:"hashed_password"`
	FullName       string `json:"full_name"`
	Email          string `json:"email"`
	Role           string `json:"role"`
}

// UserWihtoutPassword is User data excluding password data.
type UserWihtoutPassword struct {
	Username  string    `json:"username"`
	FullName  string    `json:"full_name"`
	Email     string    `json:"email"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}
