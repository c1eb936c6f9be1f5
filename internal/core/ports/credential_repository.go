package ports

import (
	"context"

	"github.com/wanderlust/hotel-api/internal/core/domain"
)

// CredentialRepository is the credential store. Lookups return
// domain.ErrUserNotFound when nothing matches.
type CredentialRepository interface {
	FindByUsername(ctx context.Context, username string) (*domain.Credential, error)
	FindByToken(ctx context.Context, token string) (*domain.Credential, error)
	// Update applies a partial write keyed by username. It is a single
	// atomic document update; concurrent writers race last-writer-wins.
	Update(ctx context.Context, username string, fields domain.CredentialUpdate) error
	List(ctx context.Context) ([]*domain.Credential, error)
	Create(ctx context.Context, c *domain.Credential) (*domain.Credential, error)
	// Delete removes a non-admin credential. Admin records are never matched.
	Delete(ctx context.Context, username string) error
}
