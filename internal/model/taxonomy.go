package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Category struct {
	ID        uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string     `gorm:"size:100;not null" json:"name"`
	Slug      string     `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	CreatorID *uuid.UUID `gorm:"type:uuid" json:"creatorId,omitempty"`
	CreatedAt time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (c *Category) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

type Source struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string     `gorm:"size:100;uniqueIndex;not null" json:"name"`
	BaseURL     string     `gorm:"size:500;not null" json:"baseUrl"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	// No column default: every create path sets IsActive explicitly, and a
	// default would make GORM drop an explicit false from the INSERT.
	IsActive    bool       `gorm:"not null" json:"isActive"`
	CreatorID   *uuid.UUID `gorm:"type:uuid" json:"creatorId,omitempty"`
	CreatedAt   time.Time  `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time  `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (s *Source) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}
