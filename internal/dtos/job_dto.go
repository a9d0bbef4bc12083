package dtos

import "time"

type JobExtractionRequest struct {
	RawHTML string `json:"raw_html" binding:"required"`
	URL     string `json:"url"`
}

// JobExtraction is what the LLM pulls out of a posting, with the company
// resolved against existing companies when possible.
type JobExtraction struct {
	CompanyName string   `json:"company_name"`
	CompanyID   *uint    `json:"company_id,omitempty"`
	Title       string   `json:"role_title"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	TechStack   []string `json:"tech_stack"`
	SalaryRange string   `json:"salary_range"`
}

type JobRequest struct {
	CompanyID   uint       `json:"company_id" form:"company_id" binding:"required"`
	CategoryID  uint       `json:"category_id" form:"category_id" binding:"required"`
	Title       string     `json:"title" form:"title" binding:"required,max=200"`
	Description string     `json:"description" form:"description" binding:"required"`
	Location    string     `json:"location" form:"location" binding:"max=200"`
	JobType     string     `json:"job_type" form:"job_type" binding:"required,oneof=full-time part-time contract internship remote"`
	SalaryMin   int        `json:"salary_min" form:"salary_min" binding:"gte=0"`
	SalaryMax   int        `json:"salary_max" form:"salary_max" binding:"gte=0,gtefield=SalaryMin"`
	Status      string     `json:"status" form:"status" binding:"omitempty,oneof=pending active rejected closed"`
	Featured    bool       `json:"featured" form:"featured"`
	Deadline    *time.Time `json:"deadline" form:"deadline" time_format:"2006-01-02"`
}
