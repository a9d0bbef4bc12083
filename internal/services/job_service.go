package services

import (
	"context"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

type JobService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewJobService(db *gorm.DB, log zerolog.Logger) *JobService {
	return &JobService{
		DB:  db,
		Log: log.With().Str("component", "jobs").Logger(),
	}
}

func (s *JobService) List(ctx context.Context, req listquery.Request) (*listquery.PageResult[JobRow], error) {
	page, err := listquery.Run[JobRow](ctx, s.DB, JobListSpec, req)
	if err != nil {
		return nil, listErr(err, "jobs")
	}
	return page, nil
}

func (s *JobService) Get(ctx context.Context, id uint) (*models.Job, error) {
	var job models.Job
	if err := s.DB.WithContext(ctx).First(&job, id).Error; err != nil {
		return nil, lookupErr(err, "job", id)
	}
	return &job, nil
}

func (s *JobService) Create(ctx context.Context, req *dtos.JobRequest) (*models.Job, error) {
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	job := &models.Job{Status: models.JobPending}
	applyJobRequest(job, req)

	if err := s.DB.WithContext(ctx).Create(job).Error; err != nil {
		return nil, apperr.Database("creating job", err)
	}
	s.Log.Info().Uint("job_id", job.ID).Str("title", job.Title).Msg("Job created")
	return job, nil
}

func (s *JobService) Update(ctx context.Context, id uint, req *dtos.JobRequest) (*models.Job, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.checkReferences(ctx, req); err != nil {
		return nil, err
	}

	applyJobRequest(job, req)
	if err := s.DB.WithContext(ctx).Save(job).Error; err != nil {
		return nil, apperr.Database("updating job", err)
	}
	return job, nil
}

// SetStatus backs the approve / reject actions.
func (s *JobService) SetStatus(ctx context.Context, id uint, status string) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if job.Status == status {
		return nil
	}

	err = s.DB.WithContext(ctx).Model(job).Update("status", status).Error
	if err != nil {
		return apperr.Database("updating job status", err)
	}
	s.Log.Info().Uint("job_id", id).Str("status", status).Msg("Job status changed")
	return nil
}

func (s *JobService) ToggleFeatured(ctx context.Context, id uint) (bool, error) {
	job, err := s.Get(ctx, id)
	if err != nil {
		return false, err
	}

	featured := !job.Featured
	if err := s.DB.WithContext(ctx).Model(job).Update("featured", featured).Error; err != nil {
		return false, apperr.Database("toggling featured flag", err)
	}
	return featured, nil
}

// Delete refuses to orphan applications.
func (s *JobService) Delete(ctx context.Context, id uint) error {
	job, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	var applications int64
	if err := s.DB.WithContext(ctx).Model(&models.Application{}).Where("job_id = ?", id).Count(&applications).Error; err != nil {
		return apperr.Database("counting applications", err)
	}
	if applications > 0 {
		return apperr.Conflict("job %q has %d application(s); close it instead of deleting", job.Title, applications)
	}

	if err := s.DB.WithContext(ctx).Delete(&models.Job{}, id).Error; err != nil {
		return apperr.Database("deleting job", err)
	}
	s.Log.Info().Uint("job_id", id).Msg("Job deleted")
	return nil
}

func (s *JobService) checkReferences(ctx context.Context, req *dtos.JobRequest) error {
	db := s.DB.WithContext(ctx)
	var problems []string

	ok, err := exists(db, &models.Company{}, req.CompanyID)
	if err != nil {
		return apperr.Database("checking company", err)
	}
	if !ok {
		problems = append(problems, "company_id does not reference an existing company")
	}

	ok, err = exists(db, &models.Category{}, req.CategoryID)
	if err != nil {
		return apperr.Database("checking category", err)
	}
	if !ok {
		problems = append(problems, "category_id does not reference an existing category")
	}

	if len(problems) > 0 {
		return apperr.Validation(problems...)
	}
	return nil
}

func applyJobRequest(job *models.Job, req *dtos.JobRequest) {
	job.CompanyID = req.CompanyID
	job.CategoryID = req.CategoryID
	job.Title = req.Title
	job.Description = req.Description
	job.Location = req.Location
	job.JobType = req.JobType
	job.SalaryMin = req.SalaryMin
	job.SalaryMax = req.SalaryMax
	job.Featured = req.Featured
	job.Deadline = req.Deadline
	if req.Status != "" {
		job.Status = req.Status
	}
}
