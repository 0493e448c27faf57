package domain

import (
	"errors"
	"time"
)

// Role identifies the supply-chain actor a user represents.
type Role string

const (
	RoleManufacturer Role = "MANUFACTURER"
	RoleDistributor  Role = "DISTRIBUTOR"
	RolePharmacy     Role = "PHARMACY"
	RoleEndUser      Role = "END_USER"
	RoleAdmin        Role = "ADMIN"
)

var validRoles = map[Role]struct{}{
	RoleManufacturer: {},
	RoleDistributor:  {},
	RolePharmacy:     {},
	RoleEndUser:      {},
	RoleAdmin:        {},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := validRoles[r]
	return ok
}

// Registration errors, in check-precedence order.
var ErrUsernameTaken = errors.New("username is already taken")
var ErrEmailTaken = errors.New("email is already taken")
var ErrPasswordMismatch = errors.New("passwords do not match")
var ErrInvalidRole = errors.New("invalid role")

// Authentication errors.
var ErrUserNotFound = errors.New("user not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrAccountDeactivated = errors.New("account is deactivated")

// Token errors.
var ErrTokenInvalid = errors.New("invalid token")
var ErrTokenExpired = errors.New("token expired")

// User models one registered identity. PasswordHash is never serialized
// and must be non-empty once the user is persisted. Active is the sole
// gate on login eligibility: a deactivated account keeps its record but
// cannot log in.
type User struct {
	ID           string    `json:"id"`
	Role         Role      `json:"role"`
	Username     string    `json:"username"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	MailID       string    `json:"mailId"`
	Phone        string    `json:"phone"`
	DOB          time.Time `json:"dob"`
	PasswordHash string    `json:"-"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}
