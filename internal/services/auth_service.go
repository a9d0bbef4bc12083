package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/justsurfingit/jobboard-admin/internal/apperr"
	"github.com/justsurfingit/jobboard-admin/internal/models"
	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Identity is what an OAuth provider tells us about the person signing in.
type Identity struct {
	Provider       string
	ProviderUserID string
	Email          string
	Name           string
}

type AuthService struct {
	DB  *gorm.DB
	Log zerolog.Logger
}

func NewAuthService(db *gorm.DB, log zerolog.Logger) *AuthService {
	return &AuthService{
		DB:  db,
		Log: log.With().Str("component", "auth").Logger(),
	}
}

var errBadCredentials = apperr.Unauthorized("invalid email or password")

// Login checks a password against the stored bcrypt hash.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, error) {
	var user models.User
	err := s.DB.WithContext(ctx).Where("email = ?", normalizeEmail(email)).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errBadCredentials
	}
	if err != nil {
		return nil, apperr.Database("loading user", err)
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		s.Log.Warn().Str("email", user.Email).Msg("Failed login")
		return nil, errBadCredentials
	}
	if user.Status == models.UserSuspended {
		return nil, apperr.Unauthorized("account is suspended")
	}
	return &user, nil
}

// Resolve maps an OAuth identity to a local user: a known social account
// wins, then a user with the same email gets the account linked, and
// otherwise a new candidate with profile and link is created in one
// transaction. Suspended users are refused and never get a new link.
func (s *AuthService) Resolve(ctx context.Context, id Identity) (*models.User, error) {
	if id.ProviderUserID == "" {
		return nil, apperr.Unauthorized("provider returned no account id")
	}

	var user models.User
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var link models.SocialAccount
		err := tx.Where("provider = ? AND provider_user_id = ?", id.Provider, id.ProviderUserID).First(&link).Error
		if err == nil {
			return tx.First(&user, link.UserID).Error
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		email := normalizeEmail(id.Email)
		if email == "" {
			return apperr.Unauthorized("provider did not share an email address")
		}

		err = tx.Where("email = ?", email).First(&user).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			if err := s.register(tx, &user, id, email); err != nil {
				return err
			}
		case err != nil:
			return err
		case user.Status == models.UserSuspended:
			return apperr.Unauthorized("account is suspended")
		}

		return tx.Create(&models.SocialAccount{
			UserID:         user.ID,
			Provider:       id.Provider,
			ProviderUserID: id.ProviderUserID,
			Email:          email,
		}).Error
	})
	if err != nil {
		return nil, passThrough(err, "resolving social login")
	}

	if user.Status == models.UserSuspended {
		return nil, apperr.Unauthorized("account is suspended")
	}
	s.Log.Info().Uint("user_id", user.ID).Str("provider", id.Provider).Msg("Social login")
	return &user, nil
}

func (s *AuthService) register(tx *gorm.DB, user *models.User, id Identity, email string) error {
	// Social accounts never log in with a password.
	hash, err := bcrypt.GenerateFromPassword([]byte(uuid.NewString()), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	name := id.Name
	if name == "" {
		name = email
	}
	*user = models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         models.RoleCandidate,
		Status:       models.UserActive,
	}
	if err := tx.Create(user).Error; err != nil {
		return err
	}
	return tx.Create(&models.UserProfile{UserID: user.ID}).Error
}

// Principal loads the user behind a session.
func (s *AuthService) Principal(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := s.DB.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, lookupErr(err, "user", id)
	}
	return &user, nil
}
