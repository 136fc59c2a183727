package main

import (
	"fmt"

	"classcast/internal/entity"
	"classcast/internal/repo/persistent"
	"classcast/pkg/config"
	"classcast/pkg/database"
	"classcast/pkg/logger"

	"golang.org/x/crypto/bcrypt"
)

// Seeds a handful of demo accounts and catalog entries for local
// development. Media URLs point at files you are expected to drop into
// the media directory yourself.
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	log := logger.New()
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Error("Failed to connect to database: %v", err)
		panic(err)
	}

	userRepo := persistent.NewUserRepository(db)
	videoRepo := persistent.NewVideoRepository(db)

	demoUsers := []struct {
		username string
		password string
		role     entity.UserRole
	}{
		{"prof_rivera", "password123", entity.RoleTeacher},
		{"prof_chen", "password123", entity.RoleTeacher},
		{"alice", "password123", entity.RoleStudent},
		{"bob", "password123", entity.RoleStudent},
		{"charlie", "password123", entity.RoleStudent},
	}

	teacherIDs := make([]string, 0, 2)
	for _, du := range demoUsers {
		if _, err := userRepo.GetByUsername(du.username); err == nil {
			log.Info("User %s already exists, skipping", du.username)
			continue
		}

		hashed, err := bcrypt.GenerateFromPassword([]byte(du.password), bcrypt.DefaultCost)
		if err != nil {
			log.Error("Failed to hash password for %s: %v", du.username, err)
			continue
		}

		user := &entity.User{
			Username: du.username,
			Password: string(hashed),
			Role:     du.role,
			IsActive: true,
		}
		if err := userRepo.Create(user); err != nil {
			log.Error("Failed to create user %s: %v", du.username, err)
			continue
		}

		log.Info("Created %s user %s", du.role, du.username)
		if du.role == entity.RoleTeacher {
			teacherIDs = append(teacherIDs, user.ID)
		}
	}

	if len(teacherIDs) == 0 {
		log.Warn("No teacher accounts created; skipping catalog seed")
		return
	}

	demoVideos := []struct {
		title       string
		description string
		fileName    string
	}{
		{"Intro to Algebra", "Variables, expressions and first equations", "algebra-01.mp4"},
		{"Photosynthesis Explained", "How plants turn light into sugar", "bio-photosynthesis.mp4"},
		{"The French Revolution", "Causes, timeline and aftermath", "history-french-rev.mp4"},
		{"Newton's Laws of Motion", "Worked examples for all three laws", "physics-newton.mp4"},
	}

	for i, dv := range demoVideos {
		ownerID := teacherIDs[i%len(teacherIDs)]
		video := &entity.Video{
			OwnerID:     ownerID,
			Title:       dv.title,
			Description: dv.description,
			MediaURL:    "/media/videos/" + dv.fileName,
			FileName:    dv.fileName,
			ContentType: "video/mp4",
		}
		if err := videoRepo.Create(video); err != nil {
			log.Error("Failed to create video %q: %v", dv.title, err)
			continue
		}
		log.Info("Created catalog entry %q", dv.title)
	}

	log.Info("Database seeded successfully!")
}
