package service

import (
	"github.com/Kayner-Cueva/Mangas-Dashboard-v1/internal/model"
	"github.com/google/uuid"
)

// Identity is the authenticated caller attached by the auth middleware.
type Identity struct {
	UserID uuid.UUID
	Role   model.Role
}

// CanDelete is the single capability check used by every router for
// ownership-gated deletes: admins may delete anything, editors only rows
// they created.
func CanDelete(id Identity, creatorID *uuid.UUID) bool {
	switch id.Role {
	case model.RoleAdmin:
		return true
	case model.RoleEditor:
		return creatorID != nil && *creatorID == id.UserID
	default:
		return false
	}
}
