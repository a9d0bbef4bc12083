package dtos

type ApplicationStatusRequest struct {
	Status string `json:"status" form:"status" binding:"required,oneof=pending reviewed shortlisted rejected hired"`
	Note   string `json:"note" form:"note" binding:"max=1000"`
}
