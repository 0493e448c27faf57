package ports

import "context"

// ProfileCache is a read-through cache for profile views. The repository
// remains the source of truth: cache errors are advisory and callers
// fall back to a repository read.
type ProfileCache interface {
	// Get returns (nil, nil) on a cache miss.
	Get(ctx context.Context, username string) (*ProfileView, error)
	Set(ctx context.Context, view ProfileView) error
	Invalidate(ctx context.Context, username string) error
}
