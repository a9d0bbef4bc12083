package dtos

type CategoryRequest struct {
	Name        string `json:"name" form:"name" binding:"required,max=100"`
	Slug        string `json:"slug" form:"slug" binding:"omitempty,max=120"`
	Description string `json:"description" form:"description"`
}
