package services

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/justsurfingit/jobboard-admin/internal/testutil"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

var userColumns = []string{"id", "name", "email", "password_hash", "role", "status"}

func hashed(t *testing.T, password string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return string(h)
}

func TestAuthService_Login(t *testing.T) {
	hash := hashed(t, "s3cret-pass")

	tests := []struct {
		name     string
		password string
		status   string
		wantErr  string
	}{
		{name: "valid", password: "s3cret-pass", status: models.UserActive},
		{name: "wrong password", password: "guess", status: models.UserActive, wantErr: "invalid email or password"},
		{name: "suspended", password: "s3cret-pass", status: models.UserSuspended, wantErr: "account is suspended"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := testutil.MockDB(t)
			svc := NewAuthService(db, zerolog.Nop())

			mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
				WillReturnRows(sqlmock.NewRows(userColumns).
					AddRow(1, "Root", "root@example.com", hash, models.RoleAdmin, tt.status))

			user, err := svc.Login(context.Background(), "Root@Example.com", tt.password)

			if tt.wantErr != "" {
				assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, uint(1), user.ID)
		})
	}
}

func TestAuthService_LoginUnknownEmail(t *testing.T) {
	db, mock := testutil.MockDB(t)
	svc := NewAuthService(db, zerolog.Nop())

	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(sqlmock.NewRows(userColumns))

	_, err := svc.Login(context.Background(), "nobody@example.com", "whatever")

	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}

func TestAuthService_ResolveKnownAccount(t *testing.T) {
	db, mock := testutil.MockDB(t)
	svc := NewAuthService(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `social_accounts` WHERE provider = \\? AND provider_user_id = \\?").
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id", "provider", "provider_user_id"}).
			AddRow(1, 21, "google", "g-123"))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE `users`.`id` = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(21, "Lin", "lin@example.com", "x", models.RoleAdmin, models.UserActive))
	mock.ExpectCommit()

	user, err := svc.Resolve(context.Background(), Identity{Provider: "google", ProviderUserID: "g-123"})

	require.NoError(t, err)
	assert.Equal(t, uint(21), user.ID)
}

func TestAuthService_ResolveLinksExistingEmail(t *testing.T) {
	db, mock := testutil.MockDB(t)
	svc := NewAuthService(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `social_accounts`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(21, "Lin", "lin@example.com", "x", models.RoleCandidate, models.UserActive))
	mock.ExpectExec("INSERT INTO `social_accounts`").WillReturnResult(sqlmock.NewResult(4, 1))
	mock.ExpectCommit()

	user, err := svc.Resolve(context.Background(), Identity{
		Provider: "facebook", ProviderUserID: "fb-9", Email: "LIN@example.com", Name: "Lin",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(21), user.ID)
}

func TestAuthService_ResolveSuspendedEmailIsNotLinked(t *testing.T) {
	db, mock := testutil.MockDB(t)
	svc := NewAuthService(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `social_accounts`").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT \\* FROM `users` WHERE email = \\?").
		WillReturnRows(sqlmock.NewRows(userColumns).
			AddRow(22, "Sam", "sam@example.com", "x", models.RoleAdmin, models.UserSuspended))
	mock.ExpectRollback()

	user, err := svc.Resolve(context.Background(), Identity{
		Provider: "google", ProviderUserID: "g-77", Email: "sam@example.com",
	})

	assert.Nil(t, user)
	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestAuthService_ResolveCreatesCandidate(t *testing.T) {
	db, mock := testutil.MockDB(t)
	svc := NewAuthService(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `social_accounts`").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery("SELECT \\* FROM `users`").WillReturnRows(sqlmock.NewRows(userColumns))
	mock.ExpectExec("INSERT INTO `users`").WillReturnResult(sqlmock.NewResult(30, 1))
	mock.ExpectExec("INSERT INTO `user_profiles`").WillReturnResult(sqlmock.NewResult(30, 1))
	mock.ExpectExec("INSERT INTO `social_accounts`").WillReturnResult(sqlmock.NewResult(5, 1))
	mock.ExpectCommit()

	user, err := svc.Resolve(context.Background(), Identity{
		Provider: "google", ProviderUserID: "g-new", Email: "new@example.com",
	})

	require.NoError(t, err)
	assert.Equal(t, uint(30), user.ID)
	assert.Equal(t, models.RoleCandidate, user.Role)
	assert.Equal(t, "new@example.com", user.Name)
}

func TestAuthService_ResolveWithoutEmailRollsBack(t *testing.T) {
	db, mock := testutil.MockDB(t)
	svc := NewAuthService(db, zerolog.Nop())

	mock.ExpectBegin()
	mock.ExpectQuery("SELECT \\* FROM `social_accounts`").WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectRollback()

	_, err := svc.Resolve(context.Background(), Identity{Provider: "facebook", ProviderUserID: "fb-1"})

	assert.True(t, apperr.Is(err, apperr.KindUnauthorized))
}
