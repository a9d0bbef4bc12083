package dtos

type UserCreateRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=8"`
	Role     string `json:"role" form:"role" binding:"required,oneof=admin employer candidate"`

	Phone    string `json:"phone" form:"phone"`
	Headline string `json:"headline" form:"headline"`
	Location string `json:"location" form:"location"`
}

type UserUpdateRequest struct {
	Name     string `json:"name" form:"name" binding:"required,max=100"`
	Email    string `json:"email" form:"email" binding:"required,email"`
	Role     string `json:"role" form:"role" binding:"required,oneof=admin employer candidate"`
	Password string `json:"password" form:"password" binding:"omitempty,min=8"`

	Phone    string `json:"phone" form:"phone"`
	Headline string `json:"headline" form:"headline"`
	Location string `json:"location" form:"location"`
	Bio      string `json:"bio" form:"bio"`
}
