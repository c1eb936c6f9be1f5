package service

import (
	"context"
	"errors"
	"testing"

	"golang.org/x/crypto/bcrypt"

	"github.com/wanderlust/hotel-api/internal/core/domain"
	"github.com/wanderlust/hotel-api/internal/core/ports"
)

func newTestAccountService() (*AccountService, *stubCredentialRepo, *stubFavouriteRepo, *stubScheduler) {
	creds := newStubCredentialRepo()
	creds.add("admin", "root", domain.RoleAdmin, true)
	creds.add("kachun01", "abc123", domain.RoleAgency, false)
	creds.add("alice", "pw", domain.RoleMember, true)
	favs := &stubFavouriteRepo{}
	sched := &stubScheduler{}
	return NewAccountService(creds, favs, newTestHasher(), sched, discardLogger), creds, favs, sched
}

func registerInput(username string) ports.RegisterInput {
	return ports.RegisterInput{
		Username: username,
		Password: "s3cret",
		Email:    username + "@example.com",
		Phone:    "+852",
		Name:     domain.PersonName{Firstname: "A", Lastname: "B", Nickname: "ab"},
	}
}

func TestAccountService_Register(t *testing.T) {
	svc, _, _, _ := newTestAccountService()

	in := registerInput("bob")
	in.Role = domain.RoleAdmin // ignored
	cred, err := svc.Register(context.Background(), in)
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if cred.Role != domain.RoleMember {
		t.Fatalf("expected member role, got %s", cred.Role)
	}
	if !cred.Status {
		t.Fatalf("expected new accounts to be active")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(cred.SecretHash), []byte("s3cret")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
}

func TestAccountService_Register_Validation(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	in := registerInput("bob")
	in.Name.Nickname = ""

	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAccountService_Register_Duplicate(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	if _, err := svc.Register(context.Background(), registerInput("alice")); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
}

func TestAccountService_Create_AdminOnly(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	ctx := context.Background()
	in := registerInput("newagency")
	in.Role = domain.RoleAgency

	if _, err := svc.Create(ctx, agency, in); err == nil {
		t.Fatalf("expected agency to be denied")
	}
	cred, err := svc.Create(ctx, admin, in)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if cred.Role != domain.RoleAgency {
		t.Fatalf("expected agency role, got %s", cred.Role)
	}

	bad := registerInput("weird")
	bad.Role = domain.Role(7)
	if _, err := svc.Create(ctx, admin, bad); !errors.Is(err, domain.ErrInvalidRole) {
		t.Fatalf("expected ErrInvalidRole, got %v", err)
	}
}

func TestAccountService_Update_SelfRestrictsFields(t *testing.T) {
	svc, creds, _, _ := newTestAccountService()
	email := "new@example.com"
	status := false
	role := domain.RoleAdmin

	err := svc.Update(context.Background(), member, "alice", nil, ports.UpdateUserInput{
		Email: &email, Status: &status, Role: &role,
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	got := creds.get("alice")
	if got.Email != email {
		t.Fatalf("expected email update, got %q", got.Email)
	}
	if got.Role != domain.RoleMember || !got.Status {
		t.Fatalf("member must not change own role or status: %+v", got)
	}
}

func TestAccountService_Update_AdminMayChangeRole(t *testing.T) {
	svc, creds, _, _ := newTestAccountService()
	role := domain.RoleAgency

	if err := svc.Update(context.Background(), admin, "alice", nil, ports.UpdateUserInput{Role: &role}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if creds.get("alice").Role != domain.RoleAgency {
		t.Fatalf("expected role change")
	}
}

func TestAccountService_Update_PasswordIsRehashed(t *testing.T) {
	svc, creds, _, _ := newTestAccountService()
	pw := "changed"

	if err := svc.Update(context.Background(), member, "alice", nil, ports.UpdateUserInput{Password: &pw}); err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	hash := creds.get("alice").SecretHash
	if hash == pw || bcrypt.CompareHashAndPassword([]byte(hash), []byte(pw)) != nil {
		t.Fatalf("expected bcrypt hash of new password")
	}
}

func TestAccountService_Update_OtherUserDenied(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	email := "x@example.com"

	err := svc.Update(context.Background(), member, "kachun01", nil, ports.UpdateUserInput{Email: &email})
	var authzErr *domain.AuthorizationError
	if !errors.As(err, &authzErr) {
		t.Fatalf("expected AuthorizationError, got %v", err)
	}
}

func TestAccountService_Update_Empty(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	if err := svc.Update(context.Background(), member, "alice", nil, ports.UpdateUserInput{}); !errors.Is(err, domain.ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestAccountService_Delete_SchedulesCleanup(t *testing.T) {
	svc, creds, favs, sched := newTestAccountService()
	ctx := context.Background()
	favs.favs = append(favs.favs, &domain.Favourite{UserID: "alice", HotelID: "h1"})

	if err := svc.Delete(ctx, member, "alice", domain.RolePtr(domain.RoleMember)); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if creds.get("alice") != nil {
		t.Fatalf("expected credential to be removed")
	}
	if len(sched.jobs) != 1 || sched.jobs[0].Identity != "alice" {
		t.Fatalf("expected one cleanup job for alice, got %+v", sched.jobs)
	}
	if len(favs.favs) != 0 {
		t.Fatalf("expected favourites to be removed")
	}
}

func TestAccountService_Delete_AdminProtected(t *testing.T) {
	svc, creds, _, sched := newTestAccountService()

	err := svc.Delete(context.Background(), admin, "admin", nil)
	var authzErr *domain.AuthorizationError
	if !errors.As(err, &authzErr) || authzErr.Reason != domain.DenyProtectedAccount {
		t.Fatalf("expected protected_account, got %v", err)
	}
	if creds.get("admin") == nil {
		t.Fatalf("admin must survive")
	}
	if len(sched.jobs) != 0 {
		t.Fatalf("no cleanup expected")
	}
}

func TestAccountService_Delete_ScopeMismatch(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	if err := svc.Delete(context.Background(), admin, "kachun01", domain.RolePtr(domain.RoleMember)); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestAccountService_List(t *testing.T) {
	svc, _, _, _ := newTestAccountService()
	ctx := context.Background()

	users, err := svc.List(ctx, admin)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	if len(users) != 3 {
		t.Fatalf("expected 3 users, got %d", len(users))
	}
	if _, err := svc.List(ctx, member); err == nil {
		t.Fatalf("expected member to be denied")
	}
}
