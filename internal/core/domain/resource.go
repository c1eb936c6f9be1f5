package domain

import "fmt"

// ResourceType names what a request acts upon.
type ResourceType string

const (
	ResourceUser      ResourceType = "user"
	ResourceHotel     ResourceType = "hotel"
	ResourceMessage   ResourceType = "message"
	ResourceFavourite ResourceType = "favourite"
	ResourceAsset     ResourceType = "asset"
)

// Action is the operation requested on a resource.
type Action string

const (
	ActionRead   Action = "read"
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
	ActionUpload Action = "upload"
)

// ResourceDescriptor is built by a handler and consumed by the authorizer only.
type ResourceDescriptor struct {
	Type          ResourceType
	OwnerIdentity string

	// OwnerRole is the role of the owning or targeted principal, when known.
	OwnerRole  *Role
	ResourceID string

	// Participants lists every identity that owns a shared resource (a
	// message belongs to both its sender and receiver).
	Participants []string
	AgencyScoped bool
}

// OwnedBy reports whether identity owns the resource.
func (r ResourceDescriptor) OwnedBy(identity string) bool {
	if identity == "" {
		return false
	}
	if r.OwnerIdentity == identity {
		return true
	}
	for _, p := range r.Participants {
		if p == identity {
			return true
		}
	}
	return false
}

// RolePtr is a convenience for filling OwnerRole.
func RolePtr(r Role) *Role { return &r }

// DenyReason is the reason code attached to a 403.
type DenyReason string

const (
	DenyProtectedAccount  DenyReason = "protected_account"
	DenyRoleMismatch      DenyReason = "role_mismatch"
	DenySameRoleMessaging DenyReason = "same_role_messaging"
	DenyForbidden         DenyReason = "forbidden"
)

// Decision is the authorizer outcome.
type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision { return Decision{Allowed: true} }

func Deny(reason DenyReason) Decision { return Decision{Reason: reason} }

// Err converts a deny into an *AuthorizationError, or nil when allowed.
func (d Decision) Err() error {
	if d.Allowed {
		return nil
	}
	return &AuthorizationError{Reason: d.Reason}
}

// AuthorizationError is returned when the authorizer denies a request.
type AuthorizationError struct {
	Reason DenyReason
}

func (e *AuthorizationError) Error() string {
	return fmt.Sprintf("access forbidden: %s", e.Reason)
}

// PublicMessage is the client-facing text for the deny reason.
func (e *AuthorizationError) PublicMessage() string {
	switch e.Reason {
	case DenyProtectedAccount:
		return "admin accounts cannot be deleted"
	case DenyRoleMismatch:
		return "agency access only"
	case DenySameRoleMessaging:
		return "members and agencies may only message each other"
	default:
		return "access forbidden"
	}
}
