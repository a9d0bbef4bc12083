package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"gorm.io/gorm"
)

type MatcherService struct {
	DB *gorm.DB
}

func NewMatcherService(db *gorm.DB) *MatcherService {
	return &MatcherService{DB: db}
}

// FindCompany resolves a free-text company name to an existing company.
// An exact case-insensitive match wins; otherwise the first company whose
// name is contained in the input, or contains it, is returned. Returns nil
// when nothing matches.
func (s *MatcherService) FindCompany(ctx context.Context, name string) (*models.Company, error) {
	needle := strings.ToLower(strings.TrimSpace(name))
	if needle == "" {
		return nil, nil
	}

	var companies []models.Company
	if err := s.DB.WithContext(ctx).Order("id ASC").Find(&companies).Error; err != nil {
		return nil, apperr.Database("matching company", err)
	}

	for i := range companies {
		if strings.ToLower(companies[i].Name) == needle {
			return &companies[i], nil
		}
	}
	for i := range companies {
		candidate := strings.ToLower(companies[i].Name)
		// Very short names like "X" would match everything.
		if len(candidate) < 3 || len(needle) < 3 {
			continue
		}
		if strings.Contains(needle, candidate) || strings.Contains(candidate, needle) {
			return &companies[i], nil
		}
	}
	return nil, nil
}
