package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleEditor Role = "EDITOR"
	RoleUser   Role = "USER"
)

// ValidRole reports whether s is one of the known role names.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleEditor, RoleUser:
		return true
	}
	return false
}

type User struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Email        string     `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string     `gorm:"size:255;not null" json:"-"`
	Role         Role       `gorm:"size:20;not null;default:EDITOR" json:"role"`
	IsActive     bool       `gorm:"not null;default:true" json:"isActive"`
	IsBanned     bool       `gorm:"not null;default:false" json:"isBanned"`
	BanReason    *string    `gorm:"type:text" json:"banReason,omitempty"`
	AdminNote    *string    `gorm:"type:text" json:"adminNote,omitempty"`
	LastLogin    *time.Time `json:"lastLogin,omitempty"`
	CreatedAt    time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt    time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// RefreshToken is the server-side record backing the refresh cookie. The
// token value is stable: it is never rotated on use, only revoked.
type RefreshToken struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Token     string     `gorm:"size:512;uniqueIndex;not null" json:"-"`
	UserID    uuid.UUID  `gorm:"type:uuid;not null;index" json:"userId"`
	User      User       `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	ExpiresAt time.Time  `gorm:"not null" json:"expiresAt"`
	RevokedAt *time.Time `json:"revokedAt,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
}

func (t *RefreshToken) BeforeCreate(tx *gorm.DB) error {
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	return nil
}

// Valid reports whether the token is usable at the given instant.
func (t *RefreshToken) Valid(now time.Time) bool {
	return t.RevokedAt == nil && t.ExpiresAt.After(now)
}

// UserDeletionRequest is an audit record; nothing in this codebase
// auto-processes it.
type UserDeletionRequest struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	User      User      `gorm:"constraint:OnDelete:CASCADE" json:"user,omitempty"`
	Reason    *string   `gorm:"type:text" json:"reason,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"createdAt"`
}

func (r *UserDeletionRequest) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
