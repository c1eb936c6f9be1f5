package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

type AccountService struct {
	repo       ports.CredentialRepository
	favourites ports.FavouriteRepository
	hasher     *PasswordHasher
	cleanup    ports.CleanupScheduler
	now        func() time.Time
	logger     zerolog.Logger
}

func NewAccountService(
	repo ports.CredentialRepository,
	favourites ports.FavouriteRepository,
	hasher *PasswordHasher,
	cleanup ports.CleanupScheduler,
	logger zerolog.Logger,
) *AccountService {
	return &AccountService{
		repo:       repo,
		favourites: favourites,
		hasher:     hasher,
		cleanup:    cleanup,
		now:        func() time.Time { return time.Now().UTC() },
		logger:     logger,
	}
}

// Register creates a member account. It needs no caller.
func (s *AccountService) Register(ctx context.Context, in ports.RegisterInput) (*domain.Credential, error) {
	in.Role = domain.RoleMember
	return s.create(ctx, in)
}

// Create lets actor create an account of any role.
func (s *AccountService) Create(ctx context.Context, actor domain.Principal, in ports.RegisterInput) (*domain.Credential, error) {
	if _, err := domain.ParseRole(int(in.Role)); err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
	}
	res := domain.ResourceDescriptor{Type: domain.ResourceUser, OwnerRole: domain.RolePtr(in.Role)}
	if err := Authorize(actor, res, domain.ActionCreate).Err(); err != nil {
		return nil, err
	}
	cred, err := s.create(ctx, in)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("actor", actor.Identity).Str("username", cred.Username).Str("role", cred.Role.String()).Msg("account created")
	return cred, nil
}

func (s *AccountService) create(ctx context.Context, in ports.RegisterInput) (*domain.Credential, error) {
	if err := validateRegister(in); err != nil {
		return nil, err
	}
	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, err
	}
	now := s.now()
	cred, err := s.repo.Create(ctx, &domain.Credential{
		Username:   in.Username,
		SecretHash: hash,
		Email:      in.Email,
		Phone:      in.Phone,
		Name:       in.Name,
		Status:     true,
		Role:       in.Role,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserExists) {
			return nil, err
		}
		return nil, storageErr("create user", err)
	}
	return cred, nil
}

func validateRegister(in ports.RegisterInput) error {
	switch {
	case in.Username == "", in.Password == "":
		return fmt.Errorf("%w: username and password are required", domain.ErrInvalidInput)
	case in.Email == "", in.Phone == "":
		return fmt.Errorf("%w: email and phone are required", domain.ErrInvalidInput)
	case in.Name.Firstname == "", in.Name.Lastname == "", in.Name.Nickname == "":
		return fmt.Errorf("%w: firstname, lastname and nickname are required", domain.ErrInvalidInput)
	}
	return nil
}

// target loads username and checks it against scope.
func (s *AccountService) target(ctx context.Context, username string, scope *domain.Role) (*domain.Credential, error) {
	cred, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, storageErr("find user", err)
	}
	if scope != nil && cred.Role != *scope {
		return nil, domain.ErrUserNotFound
	}
	return cred, nil
}

// Update applies a partial profile change to target. Status and role are
// only honoured for admin callers.
func (s *AccountService) Update(ctx context.Context, actor domain.Principal, target string, scope *domain.Role, in ports.UpdateUserInput) error {
	cred, err := s.target(ctx, target, scope)
	if err != nil {
		return err
	}
	res := domain.ResourceDescriptor{
		Type:          domain.ResourceUser,
		OwnerIdentity: cred.Username,
		OwnerRole:     domain.RolePtr(cred.Role),
	}
	if err := Authorize(actor, res, domain.ActionUpdate).Err(); err != nil {
		return err
	}

	upd := domain.CredentialUpdate{Email: in.Email, Phone: in.Phone, Name: in.Name}
	if in.Password != nil {
		if *in.Password == "" {
			return fmt.Errorf("%w: password must not be empty", domain.ErrInvalidInput)
		}
		hash, err := s.hasher.Hash(*in.Password)
		if err != nil {
			return err
		}
		upd.SecretHash = &hash
	}
	if actor.Role == domain.RoleAdmin {
		upd.Status = in.Status
		if in.Role != nil {
			if _, err := domain.ParseRole(int(*in.Role)); err != nil {
				return fmt.Errorf("%w: %w", domain.ErrInvalidInput, err)
			}
			upd.Role = in.Role
		}
	}
	if upd.IsEmpty() {
		return fmt.Errorf("%w: nothing to update", domain.ErrInvalidInput)
	}

	if err := s.repo.Update(ctx, cred.Username, upd); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return storageErr("update user", err)
	}
	s.logger.Info().Str("actor", actor.Identity).Str("username", cred.Username).Msg("account updated")
	return nil
}

// Delete removes target and schedules removal of everything it uploaded.
func (s *AccountService) Delete(ctx context.Context, actor domain.Principal, target string, scope *domain.Role) error {
	cred, err := s.target(ctx, target, scope)
	if err != nil {
		return err
	}
	res := domain.ResourceDescriptor{
		Type:          domain.ResourceUser,
		OwnerIdentity: cred.Username,
		OwnerRole:     domain.RolePtr(cred.Role),
	}
	if err := Authorize(actor, res, domain.ActionDelete).Err(); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, cred.Username); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return storageErr("delete user", err)
	}
	if s.favourites != nil {
		if err := s.favourites.DeleteByUser(ctx, cred.Username); err != nil {
			s.logger.Warn().Err(err).Str("username", cred.Username).Msg("failed to delete favourites")
		}
	}
	if s.cleanup != nil {
		s.cleanup.Enqueue(ports.AssetCleanup{Identity: cred.Username})
	}
	s.logger.Info().Str("actor", actor.Identity).Str("username", cred.Username).Msg("account deleted")
	return nil
}

// List returns every account. Only admins may call it.
func (s *AccountService) List(ctx context.Context, actor domain.Principal) ([]*domain.Credential, error) {
	if err := Authorize(actor, domain.ResourceDescriptor{Type: domain.ResourceUser}, domain.ActionRead).Err(); err != nil {
		return nil, err
	}
	return s.ListPublic(ctx)
}

// ListPublic returns every account for the public directory. Callers must
// not expose secrets or tokens.
func (s *AccountService) ListPublic(ctx context.Context) ([]*domain.Credential, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, storageErr("list users", err)
	}
	return users, nil
}
