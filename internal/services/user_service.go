package services

import (
	"context"
	"strings"

	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/dtos"
	"github.com/justsurfingit/jobboard-admin/internal/listquery"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewUserService(db *gorm.DB, log zerolog.Logger) *UserService {
	return &UserService{
		DB:  db,
		Log: log.With().Str("component", "users").Logger(),
	}
}

// UserDetail is a user together with its profile, which may be missing for
// accounts created outside the admin.
type UserDetail struct {
	models.User
	Profile *models.UserProfile `json:"profile,omitempty"`
}

func (s *UserService) List(ctx context.Context, req listquery.Request) (*listquery.PageResult[UserRow], error) {
	page, err := listquery.Run[UserRow](ctx, s.DB, UserListSpec, req)
	if err != nil {
		return nil, listErr(err, "users")
	}
	return page, nil
}

func (s *UserService) Get(ctx context.Context, id uint) (*UserDetail, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, lookupErr(err, "user", id)
	}

	detail := &UserDetail{User: user}
	var profile models.UserProfile
	err := s.DB.WithContext(ctx).Where("user_id = ?", id).Limit(1).Find(&profile).Error
	if err != nil {
		return nil, apperr.Database("loading profile", err)
	}
	if profile.ID != 0 {
		detail.Profile = &profile
	}
	return detail, nil
}

// Create writes the user and its profile in one transaction.
func (s *UserService) Create(ctx context.Context, req *dtos.UserCreateRequest) (*models.User, error) {
	email := normalizeEmail(req.Email)
	if err := s.checkEmail(ctx, email, 0); err != nil {
		return nil, err
	}

	hash, err := HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:         req.Name,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
		Status:       models.UserActive,
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(user).Error; err != nil {
			return err
		}
		profile := &models.UserProfile{
			UserID:   user.ID,
			Phone:    req.Phone,
			Headline: req.Headline,
			Location: req.Location,
		}
		return tx.Create(profile).Error
	})
	if err != nil {
		return nil, apperr.Database("creating user", err)
	}

	s.Log.Info().Uint("user_id", user.ID).Str("role", user.Role).Msg("User created")
	return user, nil
}

func (s *UserService) Update(ctx context.Context, id uint, req *dtos.UserUpdateRequest) (*UserDetail, error) {
	detail, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	email := normalizeEmail(req.Email)
	if err := s.checkEmail(ctx, email, id); err != nil {
		return nil, err
	}

	user := detail.User
	user.Name = req.Name
	user.Email = email
	user.Role = req.Role
	if req.Password != "" {
		if user.PasswordHash, err = HashPassword(req.Password); err != nil {
			return nil, err
		}
	}

	profile := detail.Profile
	if profile == nil {
		profile = &models.UserProfile{UserID: id}
	}
	profile.Phone = req.Phone
	profile.Headline = req.Headline
	profile.Location = req.Location
	profile.Bio = req.Bio

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(&user).Error; err != nil {
			return err
		}
		return tx.Save(profile).Error
	})
	if err != nil {
		return nil, apperr.Database("updating user", err)
	}
	return &UserDetail{User: user, Profile: profile}, nil
}

// SetStatus suspends or reactivates an account. actorID is the admin doing
// it; nobody can suspend themselves.
func (s *UserService) SetStatus(ctx context.Context, actorID, id uint, status string) error {
	if status == models.UserSuspended && actorID == id {
		return apperr.Conflict("you cannot suspend your own account")
	}

	res := s.DB.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).Update("status", status)
	if res.Error != nil {
		return apperr.Database("updating user status", res.Error)
	}
	if res.RowsAffected == 0 {
		return apperr.NotFound("user", id)
	}
	s.Log.Info().Uint("user_id", id).Uint("actor_id", actorID).Str("status", status).Msg("User status changed")
	return nil
}

// Delete removes a user with its profile, sessions and social links. It is
// refused when the user still owns companies or has applications.
func (s *UserService) Delete(ctx context.Context, actorID, id uint) error {
	if actorID == id {
		return apperr.Conflict("you cannot delete your own account")
	}
	detail, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	db := s.DB.WithContext(ctx)
	var companies, applications int64
	if err := db.Model(&models.Company{}).Where("user_id = ?", id).Count(&companies).Error; err != nil {
		return apperr.Database("counting companies", err)
	}
	if err := db.Model(&models.Application{}).Where("user_id = ?", id).Count(&applications).Error; err != nil {
		return apperr.Database("counting applications", err)
	}
	if companies > 0 || applications > 0 {
		return apperr.Conflict("user %s still owns %d company(ies) and has %d application(s)",
			detail.Email, companies, applications)
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&models.UserProfile{}, &models.SocialAccount{}, &models.Session{}} {
			if err := tx.Where("user_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		return tx.Delete(&models.User{}, id).Error
	})
	if err != nil {
		return apperr.Database("deleting user", err)
	}
	s.Log.Info().Uint("user_id", id).Uint("actor_id", actorID).Msg("User deleted")
	return nil
}

func (s *UserService) checkEmail(ctx context.Context, email string, id uint) error {
	var n int64
	err := s.DB.WithContext(ctx).Model(&models.User{}).Where("email = ? AND id <> ?", email, id).Count(&n).Error
	if err != nil {
		return apperr.Database("checking email", err)
	}
	if n > 0 {
		return apperr.Conflict("email %s is already registered", email)
	}
	return nil
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", apperr.Validation("password could not be hashed")
	}
	return string(hash), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
