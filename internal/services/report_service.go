package services

import (
	"context"
	"time"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"gorm.io/gorm"
)

const (
	dateLayout        = "2006-01-02"
	defaultReportDays = 180
	topCompanies      = 10
)

type ReportService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, now: time.Now}
}

type MonthCount struct {
	Month string `gorm:"column:month" json:"month"`
	Total int64  `gorm:"column:total" json:"total"`
}

type CategoryCount struct {
	CategoryID uint   `gorm:"column:category_id" json:"category_id"`
	Name       string `gorm:"column:name" json:"name"`
	Jobs       int64  `gorm:"column:jobs" json:"jobs"`
}

type CompanyCount struct {
	CompanyID    uint   `gorm:"column:company_id" json:"company_id"`
	Name         string `gorm:"column:name" json:"name"`
	Applications int64  `gorm:"column:applications" json:"applications"`
}

type Report struct {
	From                 string          `json:"from"`
	To                   string          `json:"to"`
	ApplicationsPerMonth []MonthCount    `json:"applications_per_month"`
	JobsPerCategory      []CategoryCount `json:"jobs_per_category"`
	TopCompanies         []CompanyCount  `json:"top_companies"`
}

// Range resolves the report window. Both ends are inclusive dates; missing
// ends default to the last 180 days.
func (s *ReportService) Range(req *dtos.ReportRequest) (time.Time, time.Time, error) {
	today := s.now().UTC().Truncate(24 * time.Hour)
	from, to := today.AddDate(0, 0, -defaultReportDays), today

	var problems []string
	if req.From != "" {
		t, err := time.Parse(dateLayout, req.From)
		if err != nil {
			problems = append(problems, "from must be a date in YYYY-MM-DD format")
		}
		from = t
	}
	if req.To != "" {
		t, err := time.Parse(dateLayout, req.To)
		if err != nil {
			problems = append(problems, "to must be a date in YYYY-MM-DD format")
		}
		to = t
	}
	if len(problems) == 0 && to.Before(from) {
		problems = append(problems, "from must not be after to")
	}
	if len(problems) > 0 {
		return time.Time{}, time.Time{}, apperr.Validation(problems...)
	}
	return from, to, nil
}

func (s *ReportService) Build(ctx context.Context, req *dtos.ReportRequest) (*Report, error) {
	from, to, err := s.Range(req)
	if err != nil {
		return nil, err
	}
	end := to.AddDate(0, 0, 1)
	db := s.DB.WithContext(ctx)

	r := &Report{From: from.Format(dateLayout), To: to.Format(dateLayout)}

	month := monthExpr(db, "a.created_at")
	err = db.Table("applications a").
		Select(month+" AS month, COUNT(*) AS total").
		Where("a.created_at >= ? AND a.created_at < ?", from, end).
		Group(month).
		Order("month ASC").
		Scan(&r.ApplicationsPerMonth).Error
	if err != nil {
		return nil, apperr.Database("reporting applications per month", err)
	}

	err = db.Table("categories cat").
		Select("cat.id AS category_id, cat.name AS name, COUNT(j.id) AS jobs").
		Joins("LEFT JOIN jobs j ON j.category_id = cat.id AND j.created_at >= ? AND j.created_at < ?", from, end).
		Group("cat.id, cat.name").
		Order("jobs DESC, cat.name ASC").
		Scan(&r.JobsPerCategory).Error
	if err != nil {
		return nil, apperr.Database("reporting jobs per category", err)
	}

	err = db.Table("applications a").
		Select("c.id AS company_id, c.name AS name, COUNT(a.id) AS applications").
		Joins("JOIN jobs j ON j.id = a.job_id").
		Joins("JOIN companies c ON c.id = j.company_id").
		Where("a.created_at >= ? AND a.created_at < ?", from, end).
		Group("c.id, c.name").
		Order("applications DESC, c.name ASC").
		Limit(topCompanies).
		Scan(&r.TopCompanies).Error
	if err != nil {
		return nil, apperr.Database("reporting top companies", err)
	}
	return r, nil
}

// monthExpr formats a timestamp column as YYYY-MM for the connected engine.
func monthExpr(db *gorm.DB, column string) string {
	if db.Dialector != nil && db.Dialector.Name() == "mysql" {
		return "DATE_FORMAT(" + column + ", '%Y-%m')"
	}
	return "to_char(" + column + ", 'YYYY-MM')"
}
