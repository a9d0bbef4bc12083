package services

import (
	"context"
	"fmt"
	"html"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

const EventStatusChange = "STATUS_CHANGE"

type ApplicationService struct {
	DB     *gorm.DB
	Mailer Mailer
	Log    zerolog.Logger
}

func NewApplicationService(db *gorm.DB, mailer Mailer, log zerolog.Logger) *ApplicationService {
	return &ApplicationService{
		DB:     db,
		Mailer: mailer,
		Log:    log.With().Str("component", "applications").Logger(),
	}
}

// ApplicationDetail is one application with the names an admin needs to
// read it and its status history, oldest first.
type ApplicationDetail struct {
	ApplicationRow
	CoverLetter string                    `json:"cover_letter"`
	ResumePath  string                    `json:"resume_path"`
	Events      []models.ApplicationEvent `json:"events"`
}

func (s *ApplicationService) List(ctx context.Context, req listquery.Request) (*listquery.PageResult[ApplicationRow], error) {
	page, err := listquery.Run[ApplicationRow](ctx, s.DB, ApplicationListSpec, req)
	if err != nil {
		return nil, listErr(err, "applications")
	}
	return page, nil
}

func (s *ApplicationService) Get(ctx context.Context, id uint) (*ApplicationDetail, error) {
	db := s.DB.WithContext(ctx)

	var app models.Application
	if err := db.First(&app, id).Error; err != nil {
		return nil, lookupErr(err, "application", id)
	}

	detail := &ApplicationDetail{CoverLetter: app.CoverLetter, ResumePath: app.ResumePath}
	err := db.Table("applications a").
		Select("a.id, a.status, a.created_at, a.job_id, a.user_id, j.title AS job_title, c.name AS company_name, u.name AS applicant_name, u.email AS applicant_email").
		Joins("LEFT JOIN jobs j ON j.id = a.job_id").
		Joins("LEFT JOIN companies c ON c.id = j.company_id").
		Joins("LEFT JOIN users u ON u.id = a.user_id").
		Where("a.id = ?", id).
		Scan(&detail.ApplicationRow).Error
	if err != nil {
		return nil, apperr.Database("loading application", err)
	}

	if err := db.Where("application_id = ?", id).Order("created_at ASC, id ASC").Find(&detail.Events).Error; err != nil {
		return nil, apperr.Database("loading application events", err)
	}
	return detail, nil
}

// ChangeStatus updates the status and records the change in one
// transaction. The applicant is emailed after commit; a failed email is
// only logged.
func (s *ApplicationService) ChangeStatus(ctx context.Context, id uint, req *dtos.ApplicationStatusRequest) error {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if detail.Status == req.Status {
		return nil
	}

	details := fmt.Sprintf("Status changed from %s to %s", detail.Status, req.Status)
	if req.Note != "" {
		details += ". Note: " + req.Note
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Application{}).Where("id = ?", id).Update("status", req.Status).Error; err != nil {
			return err
		}
		return tx.Create(&models.ApplicationEvent{
			ApplicationID: id,
			EventType:     EventStatusChange,
			Details:       details,
		}).Error
	})
	if err != nil {
		return apperr.Database("changing application status", err)
	}
	s.Log.Info().Uint("application_id", id).Str("from", detail.Status).Str("to", req.Status).Msg("Application status changed")

	s.notify(ctx, detail, req)
	return nil
}

func (s *ApplicationService) notify(ctx context.Context, detail *ApplicationDetail, req *dtos.ApplicationStatusRequest) {
	if s.Mailer == nil || detail.ApplicantEmail == "" {
		return
	}

	subject := fmt.Sprintf("Update on your application for %s", detail.JobTitle)
	body := fmt.Sprintf("<p>Hello %s,</p><p>Your application for <b>%s</b> at %s is now <b>%s</b>.</p>",
		html.EscapeString(detail.ApplicantName), html.EscapeString(detail.JobTitle),
		html.EscapeString(detail.CompanyName), html.EscapeString(req.Status))
	if req.Note != "" {
		body += "<p>" + html.EscapeString(req.Note) + "</p>"
	}

	if !s.Mailer.Send(ctx, detail.ApplicantEmail, subject, body) {
		s.Log.Warn().Uint("application_id", detail.ID).Str("to", detail.ApplicantEmail).Msg("Status email failed")
	}
}

func (s *ApplicationService) Delete(ctx context.Context, id uint) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("application_id = ?", id).Delete(&models.ApplicationEvent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Application{}, id).Error
	})
	if err != nil {
		return apperr.Database("deleting application", err)
	}
	s.Log.Info().Uint("application_id", id).Msg("Application deleted")
	return nil
}
