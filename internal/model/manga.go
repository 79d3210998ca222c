package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MangaStatus string

const (
	StatusOngoing  MangaStatus = "ongoing"
	StatusFinished MangaStatus = "finished"
	StatusHiatus   MangaStatus = "hiatus"
)

// AgeRating is the canonical runtime enum. The legacy store values
// (G/13+/16+/18+) are still accepted on input, see NormalizeAgeRating.
type AgeRating string

const (
	RatingEveryone AgeRating = "EVERYONE"
	RatingTeen     AgeRating = "TEEN"
	RatingMature   AgeRating = "MATURE"
	RatingAdult    AgeRating = "ADULT"
)

var legacyRatings = map[string]AgeRating{
	"G":   RatingEveryone,
	"13+": RatingTeen,
	"16+": RatingMature,
	"18+": RatingAdult,
}

// NormalizeAgeRating maps either enum spelling to the canonical one.
// Unknown or empty values fall back to EVERYONE.
func NormalizeAgeRating(s string) AgeRating {
	switch AgeRating(s) {
	case RatingEveryone, RatingTeen, RatingMature, RatingAdult:
		return AgeRating(s)
	}
	if r, ok := legacyRatings[s]; ok {
		return r
	}
	return RatingEveryone
}

type Manga struct {
	ID          uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	Title       string      `gorm:"size:255;not null" json:"title"`
	Slug        string      `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Description *string     `gorm:"type:text" json:"description,omitempty"`
	Author      *string     `gorm:"size:150" json:"author,omitempty"`
	Status      MangaStatus `gorm:"size:20;not null;default:ongoing" json:"status"`
	AgeRating   AgeRating   `gorm:"size:20;not null;default:EVERYONE" json:"ageRating"`
	IsAdult     bool        `gorm:"not null;default:false" json:"isAdult"`
	IsModerated bool        `gorm:"not null;default:false" json:"isModerated"`
	IsHidden    bool        `gorm:"not null;default:false" json:"isHidden"`
	CoverURL    *string     `gorm:"size:500" json:"coverUrl,omitempty"`
	SourceID    *uuid.UUID  `gorm:"type:uuid" json:"sourceId,omitempty"`
	Source      *Source     `gorm:"constraint:OnDelete:SET NULL" json:"source,omitempty"`
	CreatorID   *uuid.UUID  `gorm:"type:uuid" json:"creatorId,omitempty"`
	Categories  []Category  `gorm:"many2many:manga_categories;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
	Stat        *Stat       `gorm:"foreignKey:MangaID;constraint:OnDelete:CASCADE" json:"stats,omitempty"`
	Chapters    []Chapter   `gorm:"foreignKey:MangaID;constraint:OnDelete:CASCADE" json:"chapters,omitempty"`
	CreatedAt   time.Time   `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time   `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (m *Manga) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}

// Chapter number is a float so "chapter 1.5" works.
type Chapter struct {
	ID          uuid.UUID     `gorm:"type:uuid;primaryKey" json:"id"`
	MangaID     uuid.UUID     `gorm:"type:uuid;not null;index:idx_chapters_manga_number,unique" json:"mangaId"`
	Manga       *Manga        `gorm:"constraint:OnDelete:CASCADE" json:"manga,omitempty"`
	Number      float64       `gorm:"not null;index:idx_chapters_manga_number,unique" json:"number"`
	Title       *string       `gorm:"size:255" json:"title,omitempty"`
	Synopsis    *string       `gorm:"type:text" json:"synopsis,omitempty"`
	ExternalURL *string       `gorm:"size:500" json:"externalUrl,omitempty"`
	ReleaseDate *time.Time    `json:"releaseDate,omitempty"`
	CreatorID   *uuid.UUID    `gorm:"type:uuid" json:"creatorId,omitempty"`
	Pages       []ChapterPage `gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE" json:"pages,omitempty"`
	CreatedAt   time.Time     `gorm:"autoCreateTime" json:"createdAt"`
	UpdatedAt   time.Time     `gorm:"autoUpdateTime" json:"updatedAt"`
}

func (c *Chapter) BeforeCreate(tx *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}

// ChapterPage numbers need not be contiguous; they only define display order.
type ChapterPage struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	ChapterID  uuid.UUID `gorm:"type:uuid;not null;index" json:"chapterId"`
	PageNumber int       `gorm:"not null" json:"pageNumber"`
	ImageURL   string    `gorm:"size:500;not null" json:"imageUrl"`
}

func (p *ChapterPage) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}

// Stat counters are monotonic; the API never decrements them.
type Stat struct {
	MangaID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"mangaId"`
	ViewsCount     int64     `gorm:"not null;default:0" json:"viewsCount"`
	LikesCount     int64     `gorm:"not null;default:0" json:"likesCount"`
	FavoritesCount int64     `gorm:"not null;default:0" json:"favoritesCount"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updatedAt"`
}
