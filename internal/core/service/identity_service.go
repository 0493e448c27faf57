package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/medichain/identity-service/internal/core/domain"
	"github.com/medichain/identity-service/internal/core/ports"
)

type identityService struct {
	repo   ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenService
	cache  ports.ProfileCache
	log    zerolog.Logger
}

// NewIdentityService returns an IdentityService implementation. cache
// may be nil; profile reads then always hit the repository.
func NewIdentityService(
	repo ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenService,
	cache ports.ProfileCache,
	log zerolog.Logger,
) ports.IdentityService {
	return &identityService{
		repo:   repo,
		hasher: hasher,
		tokens: tokens,
		cache:  cache,
		log:    log,
	}
}

// Register runs its checks in fixed precedence — username taken, email
// taken, password mismatch, role validity — and reports only the first
// failure. The pre-checks give friendly ordering; the repository's
// uniqueness constraints remain the authority, so a concurrent duplicate
// that slips past them still surfaces as the same taken error.
func (s *identityService) Register(ctx context.Context, in ports.RegistrationInput) (*ports.UserSummary, error) {
	if err := s.checkAvailable(ctx, in.Username, in.MailID); err != nil {
		return nil, err
	}
	if in.Password != in.ConfirmPassword {
		return nil, domain.ErrPasswordMismatch
	}
	if !in.Role.Valid() {
		return nil, domain.ErrInvalidRole
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &domain.User{
		Role:         in.Role,
		Username:     in.Username,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		MailID:       in.MailID,
		Phone:        in.Phone,
		DOB:          in.DOB,
		PasswordHash: hash,
		Active:       true,
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	s.log.Info().
		Str("username", created.Username).
		Str("role", string(created.Role)).
		Msg("user registered")

	return &ports.UserSummary{
		ID:        created.ID,
		Username:  created.Username,
		MailID:    created.MailID,
		FirstName: created.FirstName,
		LastName:  created.LastName,
		Role:      created.Role,
	}, nil
}

func (s *identityService) checkAvailable(ctx context.Context, username, mailID string) error {
	if _, err := s.repo.FindByUsername(ctx, username); err == nil {
		return domain.ErrUsernameTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("lookup username: %w", err)
	}

	if _, err := s.repo.FindByMailID(ctx, mailID); err == nil {
		return domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return fmt.Errorf("lookup email: %w", err)
	}

	return nil
}

// Login resolves the identifier as username first, then as email. The
// three failure modes stay distinguishable here; the boundary decides
// how uniformly to present them.
func (s *identityService) Login(ctx context.Context, in ports.LoginInput) (*ports.LoginResult, error) {
	user, err := s.repo.FindByUsername(ctx, in.UsernameOrEmail)
	if errors.Is(err, domain.ErrUserNotFound) {
		user, err = s.repo.FindByMailID(ctx, in.UsernameOrEmail)
	}
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, fmt.Errorf("resolve user: %w", err)
	}

	if !s.hasher.Verify(in.Password, user.PasswordHash) {
		s.log.Warn().Str("username", user.Username).Msg("login rejected: wrong password")
		return nil, domain.ErrInvalidCredentials
	}

	if !user.Active {
		s.log.Warn().Str("username", user.Username).Msg("login rejected: account deactivated")
		return nil, domain.ErrAccountDeactivated
	}

	token, err := s.tokens.Issue(user.Username, user.Role)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	s.log.Info().Str("username", user.Username).Msg("login succeeded")

	return &ports.LoginResult{
		Token:    token,
		Username: user.Username,
		Role:     user.Role,
	}, nil
}

// Profile verifies the token first — no claim is read before the
// signature check passes — then resolves the subject, which may have
// vanished since issuance.
func (s *identityService) Profile(ctx context.Context, token string) (*ports.ProfileView, error) {
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		cached, cerr := s.cache.Get(ctx, claims.Subject)
		if cerr != nil {
			s.log.Warn().Err(cerr).Str("username", claims.Subject).Msg("profile cache read failed")
		} else if cached != nil {
			return cached, nil
		}
	}

	user, err := s.repo.FindByUsername(ctx, claims.Subject)
	if err != nil {
		return nil, err
	}

	view := ports.ProfileView{
		ID:        user.ID,
		Username:  user.Username,
		MailID:    user.MailID,
		FirstName: user.FirstName,
		LastName:  user.LastName,
		Role:      user.Role,
		Phone:     user.Phone,
		DOB:       user.DOB,
	}

	if s.cache != nil {
		if cerr := s.cache.Set(ctx, view); cerr != nil {
			s.log.Warn().Err(cerr).Str("username", user.Username).Msg("profile cache write failed")
		}
	}

	return &view, nil
}

// Logout acknowledges a client-side token discard. Tokens stay valid
// until expiry.
func (s *identityService) Logout() string {
	return "Logged out"
}

func (s *identityService) Deactivate(ctx context.Context, username string) error {
	if err := s.repo.SetActive(ctx, username, false); err != nil {
		return err
	}

	if s.cache != nil {
		if cerr := s.cache.Invalidate(ctx, username); cerr != nil {
			s.log.Warn().Err(cerr).Str("username", username).Msg("profile cache invalidation failed")
		}
	}

	s.log.Info().Str("username", username).Msg("account deactivated")
	return nil
}
