package service

import (
	"campdir/internal/domain/model"
)

// Identity is the authenticated caller as resolved from a bearer token.
type Identity struct {
	UserID string
	Role   string
}

func (id Identity) IsAdmin() bool {
	return id.Role == model.RoleAdmin
}

// CanModify is the single ownership predicate used by every mutation:
// the owner of the resource or any admin.
func CanModify(id Identity, ownerID string) bool {
	return id.IsAdmin() || id.UserID == ownerID
}
