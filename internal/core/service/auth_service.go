package service

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

// BasicAuthenticator verifies an HTTP Basic Authorization header value
// against the credential store on every request.
type BasicAuthenticator struct {
	repo   ports.CredentialRepository
	hasher *PasswordHasher
	logger zerolog.Logger
}

func NewBasicAuthenticator(repo ports.CredentialRepository, hasher *PasswordHasher, logger zerolog.Logger) *BasicAuthenticator {
	return &BasicAuthenticator{repo: repo, hasher: hasher, logger: logger}
}

// Authenticate parses "Basic <base64(identity:secret)>" and checks the secret.
func (a *BasicAuthenticator) Authenticate(ctx context.Context, header string) (domain.Principal, error) {
	identity, secret, err := parseBasic(header)
	if err != nil {
		return domain.Principal{}, err
	}

	cred, err := a.repo.FindByUsername(ctx, identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			a.hasher.Burn(secret)
			a.logger.Debug().Str("username", identity).Msg("basic auth: unknown identity")
			return domain.Principal{}, domain.ErrUnknownIdentity
		}
		return domain.Principal{}, storageErr("basic auth lookup", err)
	}

	if !a.hasher.Matches(cred.SecretHash, secret) {
		a.logger.Debug().Str("username", identity).Msg("basic auth: secret mismatch")
		return domain.Principal{}, domain.ErrInvalidSecret
	}
	return cred.Principal(), nil
}

func parseBasic(header string) (identity, secret string, err error) {
	const prefix = "Basic "
	if !strings.HasPrefix(header, prefix) {
		return "", "", domain.ErrMalformedHeader
	}
	raw, decErr := base64.StdEncoding.DecodeString(strings.TrimSpace(header[len(prefix):]))
	if decErr != nil {
		return "", "", domain.ErrMalformedHeader
	}
	identity, secret, _ = strings.Cut(string(raw), ":")
	if identity == "" || secret == "" {
		return "", "", domain.ErrMissingFields
	}
	return identity, secret, nil
}

// TokenAuthenticator resolves an opaque session token issued by AuthService.
type TokenAuthenticator struct {
	repo   ports.CredentialRepository
	logger zerolog.Logger
}

func NewTokenAuthenticator(repo ports.CredentialRepository, logger zerolog.Logger) *TokenAuthenticator {
	return &TokenAuthenticator{repo: repo, logger: logger}
}

// Authenticate looks up the credential holding token.
func (a *TokenAuthenticator) Authenticate(ctx context.Context, token string) (domain.Principal, error) {
	if token == "" {
		return domain.Principal{}, domain.ErrMissingToken
	}
	cred, err := a.repo.FindByToken(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Principal{}, domain.ErrInvalidSession
		}
		return domain.Principal{}, storageErr("token lookup", err)
	}
	return cred.Principal(), nil
}

// AuthService issues session tokens.
type AuthService struct {
	repo     ports.CredentialRepository
	newToken func() string
	logger   zerolog.Logger
}

func NewAuthService(repo ports.CredentialRepository, logger zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, newToken: uuid.NewString, logger: logger}
}

// IssueToken overwrites the stored token of p with a fresh one. A previous
// session for the same identity stops working.
func (s *AuthService) IssueToken(ctx context.Context, p domain.Principal) (string, error) {
	token := s.newToken()
	if err := s.repo.Update(ctx, p.Identity, domain.CredentialUpdate{Token: &token}); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", err
		}
		return "", storageErr("issue token", err)
	}
	s.logger.Info().Str("username", p.Identity).Str("role", p.Role.String()).Msg("session token issued")
	return token, nil
}

// VerifyAgency applies the agency-scoped rule to a login request.
func (s *AuthService) VerifyAgency(p domain.Principal) error {
	return Authorize(p, domain.ResourceDescriptor{
		Type:         domain.ResourceUser,
		AgencyScoped: true,
	}, domain.ActionRead).Err()
}

// storageErr labels a collaborator failure as ErrStorageUnavailable while
// keeping the cause in the chain.
func storageErr(op string, err error) error {
	if errors.Is(err, domain.ErrStorageUnavailable) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorageUnavailable, err)
}
