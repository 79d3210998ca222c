package dto

type CreateCategoryRequest struct {
	Name string `json:"name" binding:"required,min=1,max=100"`
	Slug string `json:"slug" binding:"required,min=1,max=100"`
}

type UpdateCategoryRequest struct {
	Name *string `json:"name" binding:"omitempty,min=1,max=100"`
	Slug *string `json:"slug" binding:"omitempty,min=1,max=100"`
}

type CreateSourceRequest struct {
	Name        string  `json:"name" binding:"required,min=1,max=100"`
	BaseURL     string  `json:"baseUrl" binding:"required,url"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}

type UpdateSourceRequest struct {
	Name        *string `json:"name" binding:"omitempty,min=1,max=100"`
	BaseURL     *string `json:"baseUrl" binding:"omitempty,url"`
	Description *string `json:"description"`
	IsActive    *bool   `json:"isActive"`
}
