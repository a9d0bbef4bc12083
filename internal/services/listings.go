package services

import (
	"time"

	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/justsurfingit/jobboard-admin/internal/models"
)

// Boolean columns are compared through a CASE so the same integer filter
// works on PostgreSQL booleans and MySQL tinyint(1).
const (
	jobFeaturedFlag     = "(CASE WHEN j.featured THEN 1 ELSE 0 END)"
	companyVerifiedFlag = "(CASE WHEN c.verified THEN 1 ELSE 0 END)"
)

// Every sort ends on the table's primary key so rows with equal sort values
// keep a stable order across pages.
var JobListSpec = listquery.Spec{
	Table: "jobs j",
	Columns: []string{
		"j.id", "j.title", "j.status", "j.job_type", "j.featured", "j.location",
		"j.deadline", "j.created_at", "j.company_id",
		"c.name AS company_name", "cat.name AS category_name",
		"(SELECT COUNT(*) FROM applications a WHERE a.job_id = j.id) AS application_count",
	},
	Joins: []string{
		"LEFT JOIN companies c ON c.id = j.company_id",
		"LEFT JOIN categories cat ON cat.id = j.category_id",
	},
	Fields: []listquery.FilterField{
		listquery.Text("search", "j.title", "j.description", "c.name"),
		listquery.Enum("status", "j.status", models.JobStatuses...),
		listquery.Enum("type", "j.job_type", models.JobTypes...),
		listquery.Number("category", "j.category_id", 0),
		listquery.Number("company", "j.company_id", 0),
		listquery.Number("featured", jobFeaturedFlag, -1),
	},
	Sorts: map[string]string{
		"newest":   "j.created_at DESC, j.id DESC",
		"oldest":   "j.created_at ASC, j.id ASC",
		"title":    "j.title ASC, j.id ASC",
		"deadline": "j.deadline ASC, j.id ASC",
	},
	DefaultSort: "newest",
}

type JobRow struct {
	ID               uint       `gorm:"column:id" json:"id"`
	Title            string     `gorm:"column:title" json:"title"`
	Status           string     `gorm:"column:status" json:"status"`
	JobType          string     `gorm:"column:job_type" json:"job_type"`
	Featured         bool       `gorm:"column:featured" json:"featured"`
	Location         string     `gorm:"column:location" json:"location"`
	Deadline         *time.Time `gorm:"column:deadline" json:"deadline,omitempty"`
	CreatedAt        time.Time  `gorm:"column:created_at" json:"created_at"`
	CompanyID        uint       `gorm:"column:company_id" json:"company_id"`
	CompanyName      string     `gorm:"column:company_name" json:"company_name"`
	CategoryName     string     `gorm:"column:category_name" json:"category_name"`
	ApplicationCount int64      `gorm:"column:application_count" json:"application_count"`
}

var CompanyListSpec = listquery.Spec{
	Table: "companies c",
	Columns: []string{
		"c.id", "c.name", "c.email", "c.industry", "c.location", "c.verified", "c.logo_path", "c.created_at",
		"COUNT(j.id) AS job_count",
	},
	Joins: []string{"LEFT JOIN jobs j ON j.company_id = c.id"},
	Fields: []listquery.FilterField{
		listquery.Text("search", "c.name", "c.email", "c.industry"),
		listquery.Number("verified", companyVerifiedFlag, -1),
		listquery.Text("industry", "c.industry"),
	},
	GroupBy: []string{"c.id"},
	Sorts: map[string]string{
		"newest": "c.created_at DESC, c.id DESC",
		"name":   "c.name ASC, c.id ASC",
		"jobs":   "job_count DESC, c.id DESC",
	},
	DefaultSort: "newest",
}

type CompanyRow struct {
	ID        uint      `gorm:"column:id" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email" json:"email"`
	Industry  string    `gorm:"column:industry" json:"industry"`
	Location  string    `gorm:"column:location" json:"location"`
	Verified  bool      `gorm:"column:verified" json:"verified"`
	LogoPath  string    `gorm:"column:logo_path" json:"logo_path"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	JobCount  int64     `gorm:"column:job_count" json:"job_count"`
}

var UserListSpec = listquery.Spec{
	Table: "users u",
	Columns: []string{
		"u.id", "u.name", "u.email", "u.role", "u.status", "u.created_at",
		"p.phone", "p.location",
	},
	Joins: []string{"LEFT JOIN user_profiles p ON p.user_id = u.id"},
	Fields: []listquery.FilterField{
		listquery.Text("search", "u.name", "u.email"),
		listquery.Enum("role", "u.role", models.Roles...),
		listquery.Enum("status", "u.status", models.UserStatuses...),
	},
	Sorts: map[string]string{
		"newest": "u.created_at DESC, u.id DESC",
		"name":   "u.name ASC, u.id ASC",
		"email":  "u.email ASC, u.id ASC",
	},
	DefaultSort: "newest",
}

type UserRow struct {
	ID        uint      `gorm:"column:id" json:"id"`
	Name      string    `gorm:"column:name" json:"name"`
	Email     string    `gorm:"column:email" json:"email"`
	Role      string    `gorm:"column:role" json:"role"`
	Status    string    `gorm:"column:status" json:"status"`
	CreatedAt time.Time `gorm:"column:created_at" json:"created_at"`
	Phone     *string   `gorm:"column:phone" json:"phone,omitempty"`
	Location  *string   `gorm:"column:location" json:"location,omitempty"`
}

var CategoryListSpec = listquery.Spec{
	Table: "categories cat",
	Columns: []string{
		"cat.id", "cat.name", "cat.slug", "cat.description", "cat.created_at",
		"COUNT(j.id) AS job_count",
	},
	Joins: []string{"LEFT JOIN jobs j ON j.category_id = cat.id"},
	Fields: []listquery.FilterField{
		listquery.Text("search", "cat.name", "cat.slug"),
	},
	GroupBy: []string{"cat.id"},
	Sorts: map[string]string{
		"name":   "cat.name ASC, cat.id ASC",
		"jobs":   "job_count DESC, cat.id DESC",
		"newest": "cat.created_at DESC, cat.id DESC",
	},
	DefaultSort: "name",
}

type CategoryRow struct {
	ID          uint      `gorm:"column:id" json:"id"`
	Name        string    `gorm:"column:name" json:"name"`
	Slug        string    `gorm:"column:slug" json:"slug"`
	Description string    `gorm:"column:description" json:"description"`
	CreatedAt   time.Time `gorm:"column:created_at" json:"created_at"`
	JobCount    int64     `gorm:"column:job_count" json:"job_count"`
}

var ApplicationListSpec = listquery.Spec{
	Table: "applications a",
	Columns: []string{
		"a.id", "a.status", "a.created_at", "a.job_id", "a.user_id",
		"j.title AS job_title", "c.name AS company_name",
		"u.name AS applicant_name", "u.email AS applicant_email",
	},
	Joins: []string{
		"LEFT JOIN jobs j ON j.id = a.job_id",
		"LEFT JOIN companies c ON c.id = j.company_id",
		"LEFT JOIN users u ON u.id = a.user_id",
	},
	Fields: []listquery.FilterField{
		listquery.Text("search", "u.name", "u.email", "j.title"),
		listquery.Enum("status", "a.status", models.ApplicationStatuses...),
		listquery.Number("job", "a.job_id", 0),
		listquery.Number("company", "j.company_id", 0),
	},
	Sorts: map[string]string{
		"newest": "a.created_at DESC, a.id DESC",
		"oldest": "a.created_at ASC, a.id ASC",
	},
	DefaultSort: "newest",
}

type ApplicationRow struct {
	ID             uint      `gorm:"column:id" json:"id"`
	Status         string    `gorm:"column:status" json:"status"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
	JobID          uint      `gorm:"column:job_id" json:"job_id"`
	UserID         uint      `gorm:"column:user_id" json:"user_id"`
	JobTitle       string    `gorm:"column:job_title" json:"job_title"`
	CompanyName    string    `gorm:"column:company_name" json:"company_name"`
	ApplicantName  string    `gorm:"column:applicant_name" json:"applicant_name"`
	ApplicantEmail string    `gorm:"column:applicant_email" json:"applicant_email"`
}
