package bootstrap

import (
	"errors"
	"fmt"

	"classcast/internal/entity"
	"classcast/internal/repo/persistent"
	"classcast/pkg/config"
	"classcast/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

const completedMarker = "bootstrap_completed"

// Run creates the initial superuser teacher account exactly once. The
// persisted marker makes repeat startups a no-op even if the account was
// later renamed.
func Run(userRepo persistent.UserRepository, settingRepo persistent.SettingRepository, cfg *config.Config, log *logger.Logger) error {
	_, done, err := settingRepo.Get(completedMarker)
	if err != nil {
		return fmt.Errorf("failed to read bootstrap marker: %w", err)
	}
	if done {
		return nil
	}

	_, err = userRepo.GetByUsername(cfg.BootstrapUsername)
	if err == nil {
		// Account already exists (e.g. pre-marker deployments); just record it
		log.Info("Bootstrap account %q already exists", cfg.BootstrapUsername)
		return settingRepo.Set(completedMarker, "true")
	}
	if !errors.Is(err, entity.ErrNotFound) {
		return fmt.Errorf("failed to check bootstrap account: %w", err)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(cfg.BootstrapPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash bootstrap password: %w", err)
	}

	superuser := &entity.User{
		Username:    cfg.BootstrapUsername,
		Password:    string(hashedPassword),
		Role:        entity.RoleTeacher,
		IsSuperuser: true,
		IsActive:    true,
	}

	if err := userRepo.Create(superuser); err != nil {
		return fmt.Errorf("failed to create bootstrap account: %w", err)
	}

	if err := settingRepo.Set(completedMarker, "true"); err != nil {
		return fmt.Errorf("failed to persist bootstrap marker: %w", err)
	}

	log.Warn("Created superuser %q with the configured default password; change it immediately", cfg.BootstrapUsername)
	return nil
}
