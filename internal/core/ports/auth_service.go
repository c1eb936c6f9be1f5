package ports

import (
	"context"

	"github.com/wanderlust/hotel-api/internal/core/domain"
)

// Authenticator verifies raw credential material and derives a Principal.
// Failures are domain.AuthFailure values.
type Authenticator interface {
	Authenticate(ctx context.Context, material string) (domain.Principal, error)
}

// AuthService issues session tokens and answers role checks for login routes.
type AuthService interface {
	// IssueToken mints a fresh opaque token for p, replacing any previous one.
	IssueToken(ctx context.Context, p domain.Principal) (string, error)
	// VerifyAgency succeeds only for agency principals.
	VerifyAgency(p domain.Principal) error
}
