package domain

import "errors"

var (
	ErrUserExists         = errors.New("username already taken")
	ErrUserNotFound       = errors.New("user not found")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// User models an account. Role is not stored: it is derived from the two
// flags, with superuser taking precedence over staff.
type User struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	PasswordHash string `json:"-"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	IsStaff      bool   `json:"is_staff"`
	IsSuperuser  bool   `json:"is_superuser"`
}

// Role derives the caller role from the account flags.
func (u *User) Role() Role {
	return RoleFromFlags(u.IsStaff, u.IsSuperuser)
}
