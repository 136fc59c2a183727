package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DB_HOST", "db.internal")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("STORAGE_BACKEND", "s3")
	os.Setenv("S3_BUCKET_NAME", "test-bucket")
	os.Setenv("MAX_UPLOAD_SIZE_MB", "100")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("DB_HOST")
		os.Unsetenv("DB_PORT")
		os.Unsetenv("DB_USER")
		os.Unsetenv("DB_PASSWORD")
		os.Unsetenv("DB_NAME")
		os.Unsetenv("JWT_SECRET")
		os.Unsetenv("STORAGE_BACKEND")
		os.Unsetenv("S3_BUCKET_NAME")
		os.Unsetenv("MAX_UPLOAD_SIZE_MB")
	}()

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.internal", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "s3", cfg.StorageBackend)
	assert.Equal(t, "test-bucket", cfg.S3BucketName)
	assert.Equal(t, int64(100), cfg.MaxUploadSizeMB)
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("STORAGE_BACKEND")
	os.Unsetenv("FFMPEG_PATH")
	os.Unsetenv("BOOTSTRAP_USERNAME")

	cfg, err := Load()
	assert.NoError(t, err)
	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "local", cfg.StorageBackend)
	assert.Equal(t, "ffmpeg", cfg.FFmpegPath)
	assert.Equal(t, "admin", cfg.BootstrapUsername)
	assert.Equal(t, int64(500), cfg.MaxUploadSizeMB)
	assert.Equal(t, 30, cfg.ThumbnailTimeoutSeconds)
}

func TestLoadConfig_InvalidInt(t *testing.T) {
	os.Setenv("MAX_UPLOAD_SIZE_MB", "not-a-number")
	defer os.Unsetenv("MAX_UPLOAD_SIZE_MB")

	cfg, err := Load()
	assert.NoError(t, err)
	// Falls back to the default when the value doesn't parse
	assert.Equal(t, int64(500), cfg.MaxUploadSizeMB)
}
