package ports

import "github.com/medichain/identity-service/internal/core/domain"

// Claims is the verified content of a session token.
type Claims struct {
	Subject string
	Role    domain.Role
}

// TokenService issues and validates stateless session tokens. There is
// deliberately no way to read claims out of an unverified token: every
// accessor checks the signature before trusting anything embedded.
type TokenService interface {
	// Issue produces a signed token for the subject with a fixed TTL.
	Issue(subject string, role domain.Role) (string, error)
	// Verify checks signature then expiry. Fails with
	// domain.ErrTokenExpired when past the embedded expiry and
	// domain.ErrTokenInvalid on any other defect.
	Verify(token string) (Claims, error)
	// Subject is a convenience for callers that only need the subject;
	// it performs the same full verification as Verify.
	Subject(token string) (string, error)
}
