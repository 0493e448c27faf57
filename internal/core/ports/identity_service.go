package ports

import (
	"context"
	"time"

	"github.com/medichain/identity-service/internal/core/domain"
)

// RegistrationInput carries everything a new registration needs. It is
// write-only and transient: ConfirmPassword in particular exists solely
// for the mismatch check and is never persisted.
type RegistrationInput struct {
	Role            domain.Role
	Username        string
	FirstName       string
	LastName        string
	MailID          string
	Phone           string
	DOB             time.Time
	Password        string
	ConfirmPassword string
}

// LoginInput identifies a user by username or email plus password.
type LoginInput struct {
	UsernameOrEmail string
	Password        string
}

// UserSummary is the registration result. It intentionally carries
// neither the password nor its hash.
type UserSummary struct {
	ID        string
	Username  string
	MailID    string
	FirstName string
	LastName  string
	Role      domain.Role
}

// LoginResult is returned on successful authentication.
type LoginResult struct {
	Token    string
	Username string
	Role     domain.Role
}

// ProfileView is the full profile returned to an authenticated caller,
// excluding the password hash.
type ProfileView struct {
	ID        string      `json:"id"`
	Username  string      `json:"username"`
	MailID    string      `json:"mailId"`
	FirstName string      `json:"firstName"`
	LastName  string      `json:"lastName"`
	Role      domain.Role `json:"role"`
	Phone     string      `json:"phone"`
	DOB       time.Time   `json:"dob"`
}

// IdentityService orchestrates registration, login, profile retrieval
// and deactivation.
type IdentityService interface {
	// Register validates in fixed precedence (username taken, email
	// taken, password mismatch, role validity) and short-circuits on the
	// first failure.
	Register(ctx context.Context, in RegistrationInput) (*UserSummary, error)
	// Login resolves the identifier as username first, then as email.
	// Distinguishes domain.ErrUserNotFound, domain.ErrInvalidCredentials
	// and domain.ErrAccountDeactivated.
	Login(ctx context.Context, in LoginInput) (*LoginResult, error)
	// Profile verifies the token, then resolves its subject.
	Profile(ctx context.Context, token string) (*ProfileView, error)
	// Logout is a stateless acknowledgement; tokens are not revoked
	// server-side.
	Logout() string
	// Deactivate flips the account inactive, blocking future logins.
	Deactivate(ctx context.Context, username string) error
}
