package models

import (
	"time"
)

const (
	RoleAdmin     = "admin"
	RoleEmployer  = "employer"
	RoleCandidate = "candidate"

	UserActive    = "active"
	UserSuspended = "suspended"
)

const (
	JobPending  = "pending"
	JobActive   = "active"
	JobRejected = "rejected"
	JobClosed   = "closed"
)

const (
	ApplicationPending     = "pending"
	ApplicationReviewed    = "reviewed"
	ApplicationShortlisted = "shortlisted"
	ApplicationRejected    = "rejected"
	ApplicationHired       = "hired"
)

var (
	Roles               = []string{RoleAdmin, RoleEmployer, RoleCandidate}
	UserStatuses        = []string{UserActive, UserSuspended}
	JobStatuses         = []string{JobPending, JobActive, JobRejected, JobClosed}
	JobTypes            = []string{"full-time", "part-time", "contract", "internship", "remote"}
	ApplicationStatuses = []string{
		ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationRejected, ApplicationHired,
	}
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;size:191;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"size:20;default:'candidate';index" json:"role"`
	Status       string `gorm:"size:20;default:'active';index" json:"status"`
}

type UserProfile struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID     uint   `gorm:"uniqueIndex;not null" json:"user_id"`
	Phone      string `json:"phone"`
	Headline   string `json:"headline"`
	Location   string `json:"location"`
	Bio        string `gorm:"type:text" json:"bio"`
	AvatarPath string `json:"avatar_path"`
}

// SocialAccount links a user to an external OAuth identity.
type SocialAccount struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	UserID         uint   `gorm:"index;not null" json:"user_id"`
	Provider       string `gorm:"size:20;uniqueIndex:idx_provider_identity;not null" json:"provider"`
	ProviderUserID string `gorm:"size:191;uniqueIndex:idx_provider_identity;not null" json:"provider_user_id"`
	Email          string `json:"email"`
}

type Session struct {
	Token     string    `gorm:"primaryKey;size:64"`
	UserID    uint      `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index"`
	CreatedAt time.Time
}

type Company struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owner account, usually an employer.
	UserID uint `gorm:"index" json:"user_id"`

	Name        string `gorm:"uniqueIndex;size:191;not null" json:"name"`
	Email       string `json:"email"`
	Website     string `json:"website"`
	Industry    string `gorm:"index;size:100" json:"industry"`
	Location    string `json:"location"`
	Description string `gorm:"type:text" json:"description"`
	LogoPath    string `json:"logo_path"`
	Verified    bool   `gorm:"default:false" json:"verified"`
}

type Category struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name        string `gorm:"uniqueIndex;size:100;not null" json:"name"`
	Slug        string `gorm:"uniqueIndex;size:120;not null" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
}

type Job struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	CompanyID  uint `gorm:"index;not null" json:"company_id"`
	CategoryID uint `gorm:"index;not null" json:"category_id"`

	Title       string     `gorm:"not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Location    string     `json:"location"`
	JobType     string     `gorm:"size:20;index" json:"job_type"`
	SalaryMin   int        `json:"salary_min"`
	SalaryMax   int        `json:"salary_max"`
	Status      string     `gorm:"size:20;default:'pending';index" json:"status"`
	Featured    bool       `gorm:"default:false" json:"featured"`
	Deadline    *time.Time `json:"deadline,omitempty"`
}

type Application struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	JobID       uint   `gorm:"index;not null" json:"job_id"`
	UserID      uint   `gorm:"index;not null" json:"user_id"`
	CoverLetter string `gorm:"type:text" json:"cover_letter"`
	ResumePath  string `json:"resume_path"`
	Status      string `gorm:"size:20;default:'pending';index" json:"status"`
}

// ApplicationEvent records each status change of an application.
type ApplicationEvent struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CreatedAt     time.Time `json:"created_at"`
	ApplicationID uint      `gorm:"index;not null" json:"application_id"`
	EventType     string    `json:"event_type"`
	Details       string    `gorm:"type:text" json:"details"`
}

// All lists every model for AutoMigrate.
func All() []any {
	return []any{
		&User{}, &UserProfile{}, &SocialAccount{}, &Session{},
		&Company{}, &Category{}, &Job{}, &Application{}, &ApplicationEvent{},
	}
}
