package dtos

type CompanyRequest struct {
	UserID      uint   `form:"user_id" binding:"required"`
	Name        string `form:"name" binding:"required,max=191"`
	Email       string `form:"email" binding:"omitempty,email"`
	Website     string `form:"website" binding:"omitempty,url"`
	Industry    string `form:"industry" binding:"max=100"`
	Location    string `form:"location" binding:"max=200"`
	Description string `form:"description"`
	Verified    bool   `form:"verified"`
}
