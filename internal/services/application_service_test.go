package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sentMail struct {
	to, subject, body string
}

type stubMailer struct {
	ok   bool
	sent []sentMail
}

func (m *stubMailer) Send(_ context.Context, to, subject, body string) bool {
	m.sent = append(m.sent, sentMail{to, subject, body})
	return m.ok
}

func expectApplicationDetail(mock sqlmock.Sqlmock, status string) {
	now := time.Now()
	mock.ExpectQuery("SELECT \\* FROM `applications` WHERE `applications`.`id` = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "job_id", "user_id", "status", "cover_letter", "created_at"}).
			AddRow(12, 3, 8, status, "Hire me", now))
	mock.ExpectQuery("SELECT a.id, a.status, .* FROM applications a LEFT JOIN jobs j .* WHERE a.id = \\?").
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "status", "created_at", "job_id", "user_id", "job_title", "company_name", "applicant_name", "applicant_email",
		}).AddRow(12, status, now, 3, 8, "Go Developer", "Acme", "Lin", "lin@example.com"))
	mock.ExpectQuery("SELECT \\* FROM `application_events` WHERE application_id = \\?").
		WithArgs(12).
		WillReturnRows(sqlmock.NewRows([]string{"id", "application_id", "event_type", "details"}))
}

func TestApplicationService_ChangeStatusCommitsEvenWhenEmailFails(t *testing.T) {
	db, mock := testutil.MockDB(t)
	mailer := &stubMailer{ok: false}
	svc := NewApplicationService(db, mailer, zerolog.Nop())

	expectApplicationDetail(mock, "pending")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `applications` SET `status`=\\?").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `application_events`").WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectCommit()

	err := svc.ChangeStatus(context.Background(), 12, &dtos.ApplicationStatusRequest{Status: "shortlisted", Note: "Strong Go skills"})

	require.NoError(t, err)
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "lin@example.com", mailer.sent[0].to)
	assert.Contains(t, mailer.sent[0].subject, "Go Developer")
	assert.Contains(t, mailer.sent[0].body, "shortlisted")
	assert.Contains(t, mailer.sent[0].body, "Strong Go skills")
}

func TestApplicationService_ChangeStatusRollsBackOnEventFailure(t *testing.T) {
	db, mock := testutil.MockDB(t)
	mailer := &stubMailer{ok: true}
	svc := NewApplicationService(db, mailer, zerolog.Nop())

	expectApplicationDetail(mock, "pending")
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `applications` SET `status`=\\?").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("INSERT INTO `application_events`").WillReturnError(errors.New("deadlock"))
	mock.ExpectRollback()

	err := svc.ChangeStatus(context.Background(), 12, &dtos.ApplicationStatusRequest{Status: "hired"})

	assert.True(t, apperr.Is(err, apperr.KindDatabase))
	assert.Empty(t, mailer.sent)
}

func TestApplicationService_ChangeStatusSameStatusIsNoop(t *testing.T) {
	db, mock := testutil.MockDB(t)
	mailer := &stubMailer{ok: true}
	svc := NewApplicationService(db, mailer, zerolog.Nop())

	expectApplicationDetail(mock, "reviewed")

	err := svc.ChangeStatus(context.Background(), 12, &dtos.ApplicationStatusRequest{Status: "reviewed"})

	require.NoError(t, err)
	assert.Empty(t, mailer.sent)
}

func TestApplicationService_GetMissing(t *testing.T) {
	db, mock := testutil.MockDB(t)
	svc := NewApplicationService(db, nil, zerolog.Nop())

	mock.ExpectQuery("SELECT \\* FROM `applications`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := svc.Get(context.Background(), 404)

	assert.True(t, apperr.Is(err, apperr.KindNotFound))
}
