package services

import (
	"context"
	"mime/multipart"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/justsurfingit/jobboard-admin/internal/storage"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type CompanyService struct {
	DB      *gorm.DB
	Uploads storage.Uploads
	Log     zerolog.Logger
}

func NewCompanyService(db *gorm.DB, uploads storage.Uploads, log zerolog.Logger) *CompanyService {
	return &CompanyService{
		DB:      db,
		Uploads: uploads,
		Log:     log.With().Str("component", "companies").Logger(),
	}
}

func (s *CompanyService) List(ctx context.Context, req listquery.Request) (*listquery.PageResult[CompanyRow], error) {
	page, err := listquery.Run[CompanyRow](ctx, s.DB, CompanyListSpec, req)
	if err != nil {
		return nil, listErr(err, "companies")
	}
	return page, nil
}

func (s *CompanyService) Get(ctx context.Context, id uint) (*models.Company, error) {
	var company models.Company
	if err := s.DB.WithContext(ctx).First(&company, id).Error; err != nil {
		return nil, lookupErr(err, "company", id)
	}
	return &company, nil
}

// Create stores the optional logo first; the file is removed again when the
// row cannot be written.
func (s *CompanyService) Create(ctx context.Context, req *dtos.CompanyRequest, logo *multipart.FileHeader) (*models.Company, error) {
	if err := s.validate(ctx, req, 0); err != nil {
		return nil, err
	}

	company := &models.Company{}
	applyCompanyRequest(company, req)

	if logo != nil {
		path, err := s.Uploads.Save(logo, "logos", storage.ImageTypes)
		if err != nil {
			return nil, err
		}
		company.LogoPath = path
	}

	if err := s.DB.WithContext(ctx).Create(company).Error; err != nil {
		s.discard(company.LogoPath)
		return nil, apperr.Database("creating company", err)
	}
	s.Log.Info().Uint("company_id", company.ID).Str("name", company.Name).Msg("Company created")
	return company, nil
}

func (s *CompanyService) Update(ctx context.Context, id uint, req *dtos.CompanyRequest, logo *multipart.FileHeader) (*models.Company, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.validate(ctx, req, id); err != nil {
		return nil, err
	}

	oldLogo := company.LogoPath
	applyCompanyRequest(company, req)
	if logo != nil {
		path, err := s.Uploads.Save(logo, "logos", storage.ImageTypes)
		if err != nil {
			return nil, err
		}
		company.LogoPath = path
	}

	if err := s.DB.WithContext(ctx).Save(company).Error; err != nil {
		if company.LogoPath != oldLogo {
			s.discard(company.LogoPath)
		}
		return nil, apperr.Database("updating company", err)
	}
	if company.LogoPath != oldLogo {
		s.discard(oldLogo)
	}
	return company, nil
}

func (s *CompanyService) ToggleVerified(ctx context.Context, id uint) (bool, error) {
	company, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	verified := !company.Verified
	if err := s.DB.WithContext(ctx).Model(company).Update("verified", verified).Error; err != nil {
		return false, apperr.Database("toggling verification", err)
	}
	s.Log.Info().Uint("company_id", id).Bool("verified", verified).Msg("Company verification changed")
	return verified, nil
}

// Delete is refused while the company still has jobs.
func (s *CompanyService) Delete(ctx context.Context, id uint) error {
	company, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	var jobs int64
	if err := s.DB.WithContext(ctx).Model(&models.Job{}).Where("company_id = ?", id).Count(&jobs).Error; err != nil {
		return apperr.Database("counting company jobs", err)
	}
	if jobs > 0 {
		return apperr.Conflict("company %q still has %d job(s); delete or reassign them first", company.Name, jobs)
	}

	if err := s.DB.WithContext(ctx).Delete(&models.Company{}, id).Error; err != nil {
		return apperr.Database("deleting company", err)
	}
	s.discard(company.LogoPath)
	s.Log.Info().Uint("company_id", id).Msg("Company deleted")
	return nil
}

func (s *CompanyService) validate(ctx context.Context, req *dtos.CompanyRequest, id uint) error {
	db := s.DB.WithContext(ctx)
	var problems []string

	ok, err := exists(db, &models.User{}, req.UserID)
	if err != nil {
		return apperr.Database("checking owner", err)
	}
	if !ok {
		problems = append(problems, "user_id does not reference an existing user")
	}

	var dup int64
	if err := db.Model(&models.Company{}).Where("name = ? AND id <> ?", req.Name, id).Count(&dup).Error; err != nil {
		return apperr.Database("checking company name", err)
	}
	if dup > 0 {
		problems = append(problems, "a company named "+req.Name+" already exists")
	}

	if len(problems) > 0 {
		return apperr.Validation(problems...)
	}
	return nil
}

func (s *CompanyService) discard(path string) {
	if path == "" || s.Uploads == nil {
		return
	}
	if err := s.Uploads.Remove(path); err != nil {
		s.Log.Warn().Err(err).Str("path", path).Msg("Failed to remove logo")
	}
}

func applyCompanyRequest(c *models.Company, req *dtos.CompanyRequest) {
	c.UserID = req.UserID
	c.Name = req.Name
	c.Email = req.Email
	c.Website = req.Website
	c.Industry = req.Industry
	c.Location = req.Location
	c.Description = req.Description
	c.Verified = req.Verified
}
