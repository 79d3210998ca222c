package dto

import "time"

type PageInput struct {
	PageNumber int    `json:"pageNumber" binding:"required,gt=0"`
	ImageURL   string `json:"imageUrl" binding:"required,url"`
}

type CreateChapterRequest struct {
	Number      *float64    `json:"number" binding:"required"`
	Title       *string     `json:"title" binding:"omitempty,max=255"`
	Synopsis    *string     `json:"synopsis"`
	ExternalURL *string     `json:"externalUrl" binding:"omitempty,url"`
	ReleaseDate *time.Time  `json:"releaseDate"`
	Pages       []PageInput `json:"pages" binding:"omitempty,dive"`
}

type UpdateChapterRequest struct {
	Number      *float64     `json:"number"`
	Title       *string      `json:"title" binding:"omitempty,max=255"`
	Synopsis    *string      `json:"synopsis"`
	ExternalURL *string      `json:"externalUrl" binding:"omitempty,url"`
	ReleaseDate *time.Time   `json:"releaseDate"`
	Pages       *[]PageInput `json:"pages" binding:"omitempty,dive"`
}
