package service

import "github.com/wanderlust/hotel-api/internal/core/domain"

// Authorize decides whether p may perform a on r. Rules are evaluated in
// order and the first match wins. It performs no I/O.
func Authorize(p domain.Principal, r domain.ResourceDescriptor, a domain.Action) domain.Decision {
	switch p.Role {
	case domain.RoleAdmin:
		if r.Type == domain.ResourceUser && a == domain.ActionDelete &&
			r.OwnerRole != nil && *r.OwnerRole == domain.RoleAdmin {
			return domain.Deny(domain.DenyProtectedAccount)
		}
		return domain.Allow()
	case domain.RoleAgency, domain.RoleMember:
	default:
		return domain.Deny(domain.DenyForbidden)
	}

	if r.OwnedBy(p.Identity) && selfActionAllowed(r.Type, a) {
		return domain.Allow()
	}

	if r.AgencyScoped {
		if p.Role == domain.RoleAgency {
			return domain.Allow()
		}
		return domain.Deny(domain.DenyRoleMismatch)
	}

	if r.Type == domain.ResourceMessage && a == domain.ActionCreate && r.OwnerRole != nil {
		switch *r.OwnerRole {
		case p.Role:
			return domain.Deny(domain.DenySameRoleMessaging)
		case domain.RoleAgency, domain.RoleMember:
			return domain.Allow()
		}
	}

	return domain.Deny(domain.DenyForbidden)
}

// selfActionAllowed lists what an owner may do to their own resource.
func selfActionAllowed(t domain.ResourceType, a domain.Action) bool {
	switch t {
	case domain.ResourceUser:
		return a == domain.ActionRead || a == domain.ActionUpdate || a == domain.ActionDelete
	case domain.ResourceAsset:
		return a == domain.ActionUpload || a == domain.ActionRead
	case domain.ResourceMessage:
		return a == domain.ActionRead || a == domain.ActionDelete
	case domain.ResourceFavourite:
		return a == domain.ActionRead || a == domain.ActionCreate || a == domain.ActionDelete
	case domain.ResourceHotel:
		return false
	}
	return false
}
