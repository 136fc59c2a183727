package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserModel_BeforeCreate(t *testing.T) {
	user := &UserModel{
		Username: "alice",
		Password: "hashed",
		Role:     "student",
		IsActive: true,
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, user.ID)
}

func TestUserModel_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-id-123"
	user := &UserModel{
		ID:       existingID,
		Username: "alice",
		Password: "hashed",
	}

	err := user.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, user.ID)
}

func TestVideoModel_BeforeCreate(t *testing.T) {
	video := &VideoModel{
		OwnerID:  "owner-123",
		Title:    "Intro to Algebra",
		MediaURL: "/media/videos/abc.mp4",
		FileName: "algebra.mp4",
	}

	err := video.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.NotEmpty(t, video.ID)
}

func TestVideoModel_BeforeCreate_WithID(t *testing.T) {
	existingID := "existing-video-id"
	video := &VideoModel{
		ID:       existingID,
		OwnerID:  "owner-123",
		Title:    "Intro to Algebra",
		MediaURL: "/media/videos/abc.mp4",
	}

	err := video.BeforeCreate(nil)
	assert.NoError(t, err)
	assert.Equal(t, existingID, video.ID)
}

func TestTableNames(t *testing.T) {
	assert.Equal(t, "users", UserModel{}.TableName())
	assert.Equal(t, "videos", VideoModel{}.TableName())
	assert.Equal(t, "settings", SettingModel{}.TableName())
}
