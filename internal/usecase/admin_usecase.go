package usecase

import (
	"fmt"

	"classcast/internal/entity"
	"classcast/internal/repo/persistent"
	"classcast/pkg/logger"
)

// AdminStats is the dashboard summary: how many accounts and videos exist.
type AdminStats struct {
	Users  int64 `json:"users"`
	Videos int64 `json:"videos"`
}

type AdminUseCase interface {
	ListUsers(requesterRole entity.UserRole, limit, offset int) ([]*entity.User, error)
	DeleteUser(requesterRole entity.UserRole, userID string) error
	ChangeUserRole(requesterRole entity.UserRole, userID string, newRole entity.UserRole) (*entity.User, error)
	Stats(requesterRole entity.UserRole) (*AdminStats, error)
}

type adminUseCase struct {
	userRepo  persistent.UserRepository
	videoRepo persistent.VideoRepository
	logger    *logger.Logger
}

func NewAdminUseCase(userRepo persistent.UserRepository, videoRepo persistent.VideoRepository, logger *logger.Logger) AdminUseCase {
	return &adminUseCase{
		userRepo:  userRepo,
		videoRepo: videoRepo,
		logger:    logger,
	}
}

func (uc *adminUseCase) ListUsers(requesterRole entity.UserRole, limit, offset int) ([]*entity.User, error) {
	if !requesterRole.Can(entity.ActionManageUsers) {
		return nil, entity.ErrForbidden
	}

	if limit <= 0 || limit > 200 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	users, err := uc.userRepo.List(limit, offset)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		u.Password = ""
	}
	return users, nil
}

func (uc *adminUseCase) DeleteUser(requesterRole entity.UserRole, userID string) error {
	if !requesterRole.Can(entity.ActionManageUsers) {
		return entity.ErrForbidden
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return err
	}

	if user.IsSuperuser {
		return entity.ErrProtectedUser
	}

	if err := uc.userRepo.Delete(userID); err != nil {
		uc.logger.Error("Failed to delete user %s: %v", userID, err)
		return fmt.Errorf("failed to delete user")
	}

	uc.logger.Info("User %s (%s) deleted", user.Username, userID)
	return nil
}

func (uc *adminUseCase) Stats(requesterRole entity.UserRole) (*AdminStats, error) {
	if !requesterRole.Can(entity.ActionManageUsers) {
		return nil, entity.ErrForbidden
	}

	users, err := uc.userRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count users: %w", err)
	}
	videos, err := uc.videoRepo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count videos: %w", err)
	}

	return &AdminStats{Users: users, Videos: videos}, nil
}

func (uc *adminUseCase) ChangeUserRole(requesterRole entity.UserRole, userID string, newRole entity.UserRole) (*entity.User, error) {
	if !requesterRole.Can(entity.ActionManageUsers) {
		return nil, entity.ErrForbidden
	}

	if !newRole.Valid() {
		return nil, fmt.Errorf("unknown role %q", newRole)
	}

	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}

	// The bootstrap account always keeps the teacher role
	if user.IsSuperuser && newRole != entity.RoleTeacher {
		return nil, entity.ErrProtectedUser
	}

	user.Role = newRole
	if err := uc.userRepo.Update(user); err != nil {
		uc.logger.Error("Failed to update role for %s: %v", userID, err)
		return nil, fmt.Errorf("failed to update user")
	}

	user.Password = ""
	return user, nil
}
