package services

import (
	"context"
	"errors"

	"github.com/sbilibin2017/course-api/internal/logger"
	"github.com/sbilibin2017/course-api/internal/models"
	"github.com/sbilibin2017/course-api/internal/repositories"
)

// Error variables
var (
	ErrEmailInUse         = errors.New("email address already in use")
	ErrUserDoesNotExist   = errors.New("user does not exist")
	ErrInvalidCredentials = errors.New("invalid email address or password")
)

// UserReader defines read-only operations for users.
type UserReader interface {
	GetByEmail(ctx context.Context, email string) (*models.UserDB, error)
}

// UserWriter defines write operations for users.
type UserWriter interface {
	Save(ctx context.Context, firstName, lastName, email, passwordHash string) (int64, error)
}

// AuthService handles registration and credential checks.
type AuthService struct {
	reader UserReader
	writer UserWriter
}

// NewAuthService creates a new AuthService instance.
func NewAuthService(reader UserReader, writer UserWriter) *AuthService {
	return &AuthService{
		reader: reader,
		writer: writer,
	}
}

// Register hashes the password and stores a new user, returning its id.
// Email uniqueness is left to the database constraint.
func (svc *AuthService) Register(ctx context.Context, firstName, lastName, email, password string) (int64, error) {
	log := logger.FromContext(ctx)

	hashedPassword, err := HashPassword(password)
	if err != nil {
		log.Errorw("failed to hash password", "err", err)
		return 0, err
	}

	id, err := svc.writer.Save(ctx, firstName, lastName, email, hashedPassword)
	if err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			log.Infow("email address already in use", "email", email)
			return 0, ErrEmailInUse
		}
		log.Errorw("failed to save user", "err", err)
		return 0, err
	}

	log.Infow("user registered", "user_id", id)
	return id, nil
}

// Authenticate resolves the user owning email and checks password against the stored hash.
func (svc *AuthService) Authenticate(ctx context.Context, email, password string) (*models.UserDB, error) {
	user, err := svc.reader.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserDoesNotExist
		}
		logger.FromContext(ctx).Errorw("failed to get user", "err", err)
		return nil, err
	}

	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}
