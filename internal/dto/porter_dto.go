package dto

import (
	"encoding/json"
	"time"
)

// Import payload shapes. These deliberately use pointers everywhere: import
// files come from exports of older versions and from hand-edited JSON, so
// every field except the natural key is optional.

type CategoryImport struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

type SourceImport struct {
	Name        string  `json:"name"`
	BaseURL     string  `json:"baseUrl"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

// CategoryRef accepts both nested shapes seen in export files:
// the join-row wrapper {"category": {...}} and the bare {...}.
type CategoryRef struct {
	Name string `json:"name"`
	Slug string `json:"slug"`
}

func (r *CategoryRef) UnmarshalJSON(data []byte) error {
	var wrapped struct {
		Category *struct {
			Name string `json:"name"`
			Slug string `json:"slug"`
		} `json:"category"`
		Name string `json:"name"`
		Slug string `json:"slug"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return err
	}
	if wrapped.Category != nil {
		r.Name = wrapped.Category.Name
		r.Slug = wrapped.Category.Slug
		return nil
	}
	r.Name = wrapped.Name
	r.Slug = wrapped.Slug
	return nil
}

type PageImport struct {
	PageNumber int    `json:"pageNumber"`
	ImageURL   string `json:"imageUrl"`
}

type ChapterImport struct {
	Number      *float64     `json:"number"`
	Title       *string      `json:"title"`
	Synopsis    *string      `json:"synopsis"`
	ExternalURL *string      `json:"externalUrl"`
	ReleaseDate *time.Time   `json:"releaseDate"`
	Pages       []PageImport `json:"pages"`
}

type StatImport struct {
	ViewsCount     *int64 `json:"viewsCount"`
	LikesCount     *int64 `json:"likesCount"`
	FavoritesCount *int64 `json:"favoritesCount"`
}

type SourceRef struct {
	Name string `json:"name"`
}

type MangaImport struct {
	Title       string          `json:"title"`
	Slug        string          `json:"slug"`
	Description *string         `json:"description"`
	Author      *string         `json:"author"`
	Status      *string         `json:"status"`
	AgeRating   *string         `json:"ageRating"`
	IsAdult     *bool           `json:"isAdult"`
	IsModerated *bool           `json:"isModerated"`
	IsHidden    *bool           `json:"isHidden"`
	CoverURL    *string         `json:"coverUrl"`
	Source      *SourceRef      `json:"source"`
	Categories  []CategoryRef   `json:"categories"`
	Chapters    []ChapterImport `json:"chapters"`
	Stats       *StatImport     `json:"stats"`
}

// RecordOutcome reports what happened to one element of the import array.
type RecordOutcome struct {
	Key    string `json:"key"`
	Action string `json:"action"` // "created", "updated", "error"
	Error  string `json:"error,omitempty"`
}

// ImportSummary is the running tally of an import batch.
type ImportSummary struct {
	Total   int             `json:"total"`
	Created int             `json:"created"`
	Updated int             `json:"updated"`
	Errors  int             `json:"errors"`
	Results []RecordOutcome `json:"results"`
}

func (s *ImportSummary) RecordCreated(key string) {
	s.Total++
	s.Created++
	s.Results = append(s.Results, RecordOutcome{Key: key, Action: "created"})
}

func (s *ImportSummary) RecordUpdated(key string) {
	s.Total++
	s.Updated++
	s.Results = append(s.Results, RecordOutcome{Key: key, Action: "updated"})
}

func (s *ImportSummary) RecordError(key string, err error) {
	s.Total++
	s.Errors++
	s.Results = append(s.Results, RecordOutcome{Key: key, Action: "error", Error: err.Error()})
}
