package services

import (
	"context"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"gorm.io/gorm"
)

const recentApplications = 5

type DashboardService struct {
	DB *gorm.DB
}

func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{DB: db}
}

type Dashboard struct {
	JobsByStatus         map[string]int64 `json:"jobs_by_status"`
	UsersByRole          map[string]int64 `json:"users_by_role"`
	ApplicationsByStatus map[string]int64 `json:"applications_by_status"`
	Companies            int64            `json:"companies"`
	VerifiedCompanies    int64            `json:"verified_companies"`
	Recent               []ApplicationRow `json:"recent_applications"`
}

type groupCount struct {
	Label string `gorm:"column:label"`
	Total int64  `gorm:"column:total"`
}

func (s *DashboardService) Summary(ctx context.Context) (*Dashboard, error) {
	db := s.DB.WithContext(ctx)
	d := &Dashboard{}
	var err error

	if d.JobsByStatus, err = countBy(db, "jobs", "status", models.JobStatuses); err != nil {
		return nil, apperr.Database("counting jobs", err)
	}
	if d.UsersByRole, err = countBy(db, "users", "role", models.Roles); err != nil {
		return nil, apperr.Database("counting users", err)
	}
	if d.ApplicationsByStatus, err = countBy(db, "applications", "status", models.ApplicationStatuses); err != nil {
		return nil, apperr.Database("counting applications", err)
	}
	if err := db.Model(&models.Company{}).Count(&d.Companies).Error; err != nil {
		return nil, apperr.Database("counting companies", err)
	}
	if err := db.Model(&models.Company{}).Where("verified = ?", true).Count(&d.VerifiedCompanies).Error; err != nil {
		return nil, apperr.Database("counting verified companies", err)
	}

	recent, err := listquery.Run[ApplicationRow](ctx, s.DB, ApplicationListSpec, listquery.Request{
		Sort:     "newest",
		Page:     1,
		PageSize: recentApplications,
	})
	if err != nil {
		return nil, listErr(err, "recent applications")
	}
	d.Recent = recent.Rows
	return d, nil
}

// countBy groups table by column and reports every key in keys, zero when
// no row has it.
func countBy(db *gorm.DB, table, column string, keys []string) (map[string]int64, error) {
	var rows []groupCount
	err := db.Table(table).
		Select(column + " AS label, COUNT(*) AS total").
		Group(column).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[string]int64, len(keys))
	for _, k := range keys {
		out[k] = 0
	}
	for _, r := range rows {
		out[r.Label] = r.Total
	}
	return out, nil
}
