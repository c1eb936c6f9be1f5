package domain

import (
	"fmt"
	"time"
)

// Role is the closed set of principal kinds. The integer values are the ones
// persisted in the users collection.
type Role int

const (
	RoleAdmin  Role = 0
	RoleAgency Role = 1
	RoleMember Role = 2
)

// ParseRole converts a stored integer into a Role.
func ParseRole(v int) (Role, error) {
	switch Role(v) {
	case RoleAdmin, RoleAgency, RoleMember:
		return Role(v), nil
	}
	return 0, fmt.Errorf("%w: unknown role %d", ErrInvalidRole, v)
}

func (r Role) String() string {
	switch r {
	case RoleAdmin:
		return "admin"
	case RoleAgency:
		return "agency"
	case RoleMember:
		return "member"
	}
	return fmt.Sprintf("role(%d)", int(r))
}

// Principal is the authenticated caller attached to a single request.
type Principal struct {
	Identity string `json:"username"`
	Role     Role   `json:"role"`
	Status   bool   `json:"status"`
}

// PersonName mirrors the nested name document of a user.
type PersonName struct {
	Firstname  string `json:"firstname"            bson:"firstname"`
	Lastname   string `json:"lastname"             bson:"lastname"`
	Middlename string `json:"middlename,omitempty" bson:"middlename,omitempty"`
	Nickname   string `json:"nickname"             bson:"nickname"`
}

// Credential is a principal record owned by the credential store.
type Credential struct {
	ID           string     `json:"id"`
	Username     string     `json:"username"`
	SecretHash   string     `json:"-"`
	Token        string     `json:"-"`
	Email        string     `json:"email"`
	Phone        string     `json:"phone"`
	Name         PersonName `json:"name"`
	Status       bool       `json:"status"`
	Role         Role       `json:"role"`
	ProfilePhoto string     `json:"profilePhoto,omitempty"`
	CreatedAt    time.Time  `json:"createdAt"`
	UpdatedAt    time.Time  `json:"updatedAt"`
}

// Principal derives the request principal. The role is copied verbatim.
func (c *Credential) Principal() Principal {
	return Principal{Identity: c.Username, Role: c.Role, Status: c.Status}
}

// CredentialUpdate is a partial write; nil fields are left untouched.
type CredentialUpdate struct {
	SecretHash   *string
	Token        *string
	Email        *string
	Phone        *string
	Name         *PersonName
	Status       *bool
	Role         *Role
	ProfilePhoto *string
}

// IsEmpty reports whether the update carries no field at all.
func (u CredentialUpdate) IsEmpty() bool {
	return u.SecretHash == nil && u.Token == nil && u.Email == nil && u.Phone == nil &&
		u.Name == nil && u.Status == nil && u.Role == nil && u.ProfilePhoto == nil
}
