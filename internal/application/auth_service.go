package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/geoexplorer/geoexplorer-api/internal/domain/entity"
	repo "github.com/geoexplorer/geoexplorer-api/internal/domain/repository"
	"github.com/geoexplorer/geoexplorer-api/pkg/helpers"
	"github.com/geoexplorer/geoexplorer-api/pkg/mailer"
	tpl "github.com/geoexplorer/geoexplorer-api/pkg/mailer/templates"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailInUse         = errors.New("email already in use")
)

// AuthService covers account creation, credential verification and identity
// lookup. Tokens are minted here on login and verified by the middleware.
type AuthService struct {
	Repo        repo.UserRepository
	JWT         *helpers.JWTManager
	Logger      *logrus.Logger
	Pub         *helpers.RabbitPublisher
	AppName     string
	MailEnabled bool
}

func NewAuthService(r repo.UserRepository, jwt *helpers.JWTManager, logger *logrus.Logger, pub *helpers.RabbitPublisher, appName string, mailEnabled bool) *AuthService {
	return &AuthService{Repo: r, JWT: jwt, Logger: logger, Pub: pub, AppName: appName, MailEnabled: mailEnabled}
}

type RegisterInput struct {
	Name     string
	Email    string
	Phone    string
	Password string
}

// Register creates an account with a bcrypt-hashed password and an empty
// favorites list. The stored record is never returned to the caller.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) error {
	if _, err := s.Repo.GetByEmail(ctx, in.Email); err == nil {
		return ErrEmailInUse
	} else if !errors.Is(err, repo.ErrNotFound) {
		return err
	}

	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return err
	}
	u := &entity.User{
		Name:     in.Name,
		Email:    in.Email,
		Phone:    in.Phone,
		Password: hash,
	}
	if err := s.Repo.Create(ctx, u); err != nil {
		// The unique index closes the check-then-create race.
		if errors.Is(err, repo.ErrDuplicateEmail) {
			return ErrEmailInUse
		}
		return err
	}

	s.enqueueWelcomeEmail(ctx, u)
	return nil
}

func (s *AuthService) enqueueWelcomeEmail(ctx context.Context, u *entity.User) {
	if s.Pub == nil || !s.MailEnabled {
		return
	}
	job := mailer.EmailJob{
		To:       u.Email,
		Template: tpl.Welcome,
		Data: map[string]any{
			"Name":    u.Name,
			"Email":   u.Email,
			"AppName": s.AppName,
		},
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
		s.Logger.WithError(err).WithField("email", u.Email).Warn("enqueue welcome email failed")
	}
}

// Login verifies the submitted password against the stored hash and issues a
// fresh token. Unknown email and wrong password are indistinguishable to the
// caller so accounts cannot be enumerated.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, time.Time, *entity.User, error) {
	u, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return "", time.Time{}, nil, ErrInvalidCredentials
		}
		return "", time.Time{}, nil, err
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, nil, ErrInvalidCredentials
	}
	token, exp, err := s.JWT.GenerateToken(u.ID)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Error("generate token failed")
		}
		return "", time.Time{}, nil, err
	}
	return token, exp, u, nil
}

// Profile looks up the user behind an already-verified token. The account
// may have vanished between token issuance and use; tokens are never
// invalidated server-side, so that lookup miss is a legitimate outcome.
func (s *AuthService) Profile(ctx context.Context, userID string) (*entity.User, error) {
	u, err := s.Repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return u, nil
}
