package dto

type CreateMangaRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=255"`
	Slug        string   `json:"slug" binding:"required,min=1,max=255"`
	Description *string  `json:"description"`
	Author      *string  `json:"author" binding:"omitempty,max=150"`
	Status      *string  `json:"status" binding:"omitempty,oneof=ongoing finished hiatus"`
	AgeRating   *string  `json:"ageRating"`
	IsAdult     *bool    `json:"isAdult"`
	IsModerated *bool    `json:"isModerated"`
	IsHidden    *bool    `json:"isHidden"`
	CoverURL    *string  `json:"coverUrl" binding:"omitempty,url"`
	SourceID    *string  `json:"sourceId" binding:"omitempty,uuid"`
	CategoryIDs []string `json:"categoryIds" binding:"omitempty,dive,uuid"`
}

type UpdateMangaRequest struct {
	Title       *string   `json:"title" binding:"omitempty,min=1,max=255"`
	Slug        *string   `json:"slug" binding:"omitempty,min=1,max=255"`
	Description *string   `json:"description"`
	Author      *string   `json:"author" binding:"omitempty,max=150"`
	Status      *string   `json:"status" binding:"omitempty,oneof=ongoing finished hiatus"`
	AgeRating   *string   `json:"ageRating"`
	IsAdult     *bool     `json:"isAdult"`
	IsModerated *bool     `json:"isModerated"`
	IsHidden    *bool     `json:"isHidden"`
	CoverURL    *string   `json:"coverUrl" binding:"omitempty,url"`
	SourceID    *string   `json:"sourceId" binding:"omitempty,uuid"`
	CategoryIDs *[]string `json:"categoryIds" binding:"omitempty,dive,uuid"`
}

// MangaFilter mirrors the list query parameters of the mangas router.
type MangaFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=ongoing finished hiatus"`
	Category string `form:"category" binding:"omitempty,uuid"`
	Source   string `form:"source" binding:"omitempty,uuid"`
	PageQuery
}
