package services

import (
	"context"
	"strings"
	"unicode"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CategoryService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewCategoryService(db *gorm.DB, log zerolog.Logger) *CategoryService {
	return &CategoryService{
		DB:  db,
		Log: log.With().Str("component", "categories").Logger(),
	}
}

func (s *CategoryService) List(ctx context.Context, req listquery.Request) (*listquery.PageResult[CategoryRow], error) {
	page, err := listquery.Run[CategoryRow](ctx, s.DB, CategoryListSpec, req)
	if err != nil {
		return nil, listErr(err, "categories")
	}
	return page, nil
}

// All returns every category by name, for select boxes.
func (s *CategoryService) All(ctx context.Context) ([]models.Category, error) {
	var categories []models.Category
	if err := s.DB.WithContext(ctx).Order("name ASC").Find(&categories).Error; err != nil {
		return nil, listErr(err, "categories")
	}
	return categories, nil
}

func (s *CategoryService) Get(ctx context.Context, id uint) (*models.Category, error) {
	var category models.Category
	if err := s.DB.WithContext(ctx).First(&category, id).Error; err != nil {
		return nil, lookupErr(err, "category", id)
	}
	return &category, nil
}

func (s *CategoryService) Create(ctx context.Context, req *dtos.CategoryRequest) (*models.Category, error) {
	category := &models.Category{}
	if err := s.apply(ctx, category, req); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Create(category).Error; err != nil {
		return nil, apperr.Database("creating category", err)
	}
	s.Log.Info().Uint("category_id", category.ID).Str("slug", category.Slug).Msg("Category created")
	return category, nil
}

func (s *CategoryService) Update(ctx context.Context, id uint, req *dtos.CategoryRequest) (*models.Category, error) {
	category, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.apply(ctx, category, req); err != nil {
		return nil, err
	}
	if err := s.DB.WithContext(ctx).Save(category).Error; err != nil {
		return nil, apperr.Database("updating category", err)
	}
	return category, nil
}

func (s *CategoryService) Delete(ctx context.Context, id uint) error {
	category, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	var jobs int64
	if err := s.DB.WithContext(ctx).Model(&models.Job{}).Where("category_id = ?", id).Count(&jobs).Error; err != nil {
		return apperr.Database("counting category jobs", err)
	}
	if jobs > 0 {
		return apperr.Conflict("category %q is used by %d job(s)", category.Name, jobs)
	}

	if err := s.DB.WithContext(ctx).Delete(&models.Category{}, id).Error; err != nil {
		return apperr.Database("deleting category", err)
	}
	s.Log.Info().Uint("category_id", id).Msg("Category deleted")
	return nil
}

func (s *CategoryService) apply(ctx context.Context, c *models.Category, req *dtos.CategoryRequest) error {
	slug := Slugify(req.Slug)
	if slug == "" {
		slug = Slugify(req.Name)
	}
	if slug == "" {
		return apperr.Validation("slug must contain at least one letter or digit")
	}

	var n int64
	err := s.DB.WithContext(ctx).Model(&models.Category{}).
		Where("(name = ? OR slug = ?) AND id <> ?", req.Name, slug, c.ID).
		Count(&n).Error
	if err != nil {
		return apperr.Database("checking category", err)
	}
	if n > 0 {
		return apperr.Conflict("a category named %q or with slug %q already exists", req.Name, slug)
	}

	c.Name = strings.TrimSpace(req.Name)
	c.Slug = slug
	c.Description = req.Description
	return nil
}

// Slugify lowercases s and joins its alphanumeric runs with single dashes.
func Slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			dash = false
			b.WriteRune(r)
		default:
			dash = true
		}
	}
	return b.String()
}
