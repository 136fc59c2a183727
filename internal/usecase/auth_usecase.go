package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"classcast/internal/entity"
	"classcast/internal/repo/persistent"
	"classcast/pkg/jwt"
	"classcast/pkg/logger"
	"classcast/pkg/session"

	"golang.org/x/crypto/bcrypt"
)

const minPasswordLength = 8

type AuthUseCase interface {
	Register(username, password string) (*entity.User, string, error)
	Login(username, password string) (*entity.User, string, error)
	Logout(ctx context.Context, tokenID string, expiresAt time.Time) error
	GetUser(userID string) (*entity.User, error)
}

type authUseCase struct {
	userRepo   persistent.UserRepository
	jwtService *jwt.Service
	sessions   *session.Store
	logger     *logger.Logger
}

func NewAuthUseCase(
	userRepo persistent.UserRepository,
	jwtService *jwt.Service,
	sessions *session.Store,
	logger *logger.Logger,
) AuthUseCase {
	return &authUseCase{
		userRepo:   userRepo,
		jwtService: jwtService,
		sessions:   sessions,
		logger:     logger,
	}
}

// Register creates a student account. Teachers are only made by promotion
// through user management.
func (uc *authUseCase) Register(username, password string) (*entity.User, string, error) {
	if len(password) < minPasswordLength {
		return nil, "", fmt.Errorf("password must be at least %d characters long", minPasswordLength)
	}

	_, err := uc.userRepo.GetByUsername(username)
	if err == nil {
		return nil, "", entity.ErrDuplicateUser
	}
	if !errors.Is(err, entity.ErrNotFound) {
		uc.logger.Error("Failed to check username %q: %v", username, err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		uc.logger.Error("Failed to hash password: %v", err)
		return nil, "", fmt.Errorf("failed to process registration")
	}

	user := &entity.User{
		Username: username,
		Password: string(hashedPassword),
		Role:     entity.RoleStudent,
		IsActive: true,
	}

	if err := uc.userRepo.Create(user); err != nil {
		// A concurrent register can slip past the username check and land
		// on the unique index instead
		if errors.Is(err, entity.ErrDuplicateUser) {
			return nil, "", entity.ErrDuplicateUser
		}
		uc.logger.Error("Failed to create user: %v", err)
		return nil, "", fmt.Errorf("failed to create user")
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

func (uc *authUseCase) Login(username, password string) (*entity.User, string, error) {
	user, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, "", entity.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, "", entity.ErrAccountDeactivated
	}

	token, err := uc.jwtService.GenerateToken(user.ID, string(user.Role))
	if err != nil {
		uc.logger.Error("Failed to generate token: %v", err)
		return nil, "", fmt.Errorf("failed to generate token")
	}

	user.Password = ""
	return user, token, nil
}

// Logout revokes the presented token until its natural expiry.
func (uc *authUseCase) Logout(ctx context.Context, tokenID string, expiresAt time.Time) error {
	ttl := time.Until(expiresAt)
	if err := uc.sessions.Revoke(ctx, tokenID, ttl); err != nil {
		uc.logger.Error("Failed to revoke session %s: %v", tokenID, err)
		return fmt.Errorf("failed to log out")
	}
	return nil
}

func (uc *authUseCase) GetUser(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	user.Password = ""
	return user, nil
}
