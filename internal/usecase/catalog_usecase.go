package usecase

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"classcast/internal/entity"
	"classcast/internal/repo/persistent"
	"classcast/pkg/logger"
	"classcast/pkg/queue"
	"classcast/pkg/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// Thumbnailer derives a representative still frame from a video file.
type Thumbnailer interface {
	Generate(ctx context.Context, videoPath, thumbPath string) error
}

var allowedExtensions = map[string]bool{
	".mp4": true,
	".avi": true,
	".mov": true,
	".wmv": true,
	".flv": true,
	".mkv": true,
}

type UploadInput struct {
	Title       string
	Description string
	FileName    string
	ContentType string
	SizeBytes   int64
	File        io.Reader
}

type CatalogUseCase interface {
	Upload(ctx context.Context, ownerID string, ownerRole entity.UserRole, in UploadInput) (*entity.Video, error)
	Search(query string, limit, offset int) ([]*entity.Video, error)
	ListByOwner(ownerID string, limit, offset int) ([]*entity.Video, error)
	Watch(videoID string) (*entity.Video, error)
	Delete(videoID string, requesterID string, requesterRole entity.UserRole) error
}

type catalogUseCase struct {
	videoRepo      persistent.VideoRepository
	store          storage.Storage
	thumbnailer    Thumbnailer
	redisClient    *redis.Client
	queueClient    *queue.Client
	maxUploadBytes int64
	logger         *logger.Logger
}

func NewCatalogUseCase(
	videoRepo persistent.VideoRepository,
	store storage.Storage,
	thumbnailer Thumbnailer,
	redisClient *redis.Client,
	queueClient *queue.Client,
	maxUploadBytes int64,
	logger *logger.Logger,
) CatalogUseCase {
	return &catalogUseCase{
		videoRepo:      videoRepo,
		store:          store,
		thumbnailer:    thumbnailer,
		redisClient:    redisClient,
		queueClient:    queueClient,
		maxUploadBytes: maxUploadBytes,
		logger:         logger,
	}
}

// Upload persists the uploaded video and a derived thumbnail. A failed
// thumbnail does not abort the upload: the video is stored with an empty
// thumbnail URL and the caller surfaces the degradation.
func (uc *catalogUseCase) Upload(ctx context.Context, ownerID string, ownerRole entity.UserRole, in UploadInput) (*entity.Video, error) {
	if !ownerRole.Can(entity.ActionUpload) {
		return nil, entity.ErrForbidden
	}

	ext := strings.ToLower(filepath.Ext(in.FileName))
	if in.FileName == "" || !allowedExtensions[ext] {
		return nil, fmt.Errorf("%w: allowed formats are mp4, avi, mov, wmv, flv, mkv", entity.ErrInvalidFile)
	}

	// Declared size rejects oversized uploads before spooling a byte
	if uc.maxUploadBytes > 0 && in.SizeBytes > uc.maxUploadBytes {
		return nil, fmt.Errorf("%w: limit is %d MB", entity.ErrFileTooLarge, uc.maxUploadBytes>>20)
	}

	// Spool to a temp file: ffmpeg needs a seekable path and the storage
	// backend reads the stream a second time.
	tmpFile, err := os.CreateTemp("", "upload-*"+ext)
	if err != nil {
		return nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer os.Remove(tmpPath)

	size, err := io.Copy(tmpFile, in.File)
	if err != nil {
		tmpFile.Close()
		return nil, fmt.Errorf("failed to spool upload: %w", err)
	}
	tmpFile.Close()

	// The declared size is client-supplied; the spooled size is authoritative
	if uc.maxUploadBytes > 0 && size > uc.maxUploadBytes {
		return nil, fmt.Errorf("%w: limit is %d MB", entity.ErrFileTooLarge, uc.maxUploadBytes>>20)
	}

	videoID := uuid.New().String()
	thumbPath := tmpPath + ".jpg"
	defer os.Remove(thumbPath)

	thumbErr := uc.thumbnailer.Generate(ctx, tmpPath, thumbPath)
	if thumbErr != nil {
		uc.logger.Warn("Thumbnail generation failed for %s: %v", in.FileName, thumbErr)
	}

	contentType := in.ContentType
	if contentType == "" {
		contentType = "video/mp4"
	}

	mediaKey := mediaKeyFor(videoID, ext)
	mediaURL, err := uc.saveFromPath(mediaKey, tmpPath, contentType)
	if err != nil {
		return nil, fmt.Errorf("failed to store video: %w", err)
	}

	thumbnailURL := ""
	if thumbErr == nil {
		thumbnailURL, err = uc.saveFromPath(thumbKeyFor(videoID), thumbPath, "image/jpeg")
		if err != nil {
			uc.logger.Warn("Failed to store thumbnail for %s: %v", in.FileName, err)
			thumbnailURL = ""
		}
	}

	video := &entity.Video{
		ID:           videoID,
		OwnerID:      ownerID,
		Title:        in.Title,
		Description:  in.Description,
		MediaURL:     mediaURL,
		ThumbnailURL: thumbnailURL,
		FileName:     in.FileName,
		ContentType:  contentType,
		SizeBytes:    size,
	}

	if err := uc.videoRepo.Create(video); err != nil {
		// Don't leave orphaned objects behind
		uc.removeStored(video)
		uc.logger.Error("Failed to persist video: %v", err)
		return nil, fmt.Errorf("failed to persist video")
	}

	uc.cacheVideo(video)

	if uc.queueClient != nil {
		go uc.publishCatalogEvent("video_uploaded", video, 5)
	}

	return video, nil
}

func (uc *catalogUseCase) Search(query string, limit, offset int) ([]*entity.Video, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.videoRepo.Search(query, limit, offset)
}

// ListByOwner returns one teacher's uploads, newest first.
func (uc *catalogUseCase) ListByOwner(ownerID string, limit, offset int) ([]*entity.Video, error) {
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	return uc.videoRepo.GetByOwnerID(ownerID, limit, offset)
}

// Watch returns the video's metadata and counts the view.
func (uc *catalogUseCase) Watch(videoID string) (*entity.Video, error) {
	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return nil, err
	}

	if err := uc.videoRepo.IncrementViews(videoID); err != nil {
		uc.logger.Warn("Failed to count view for %s: %v", videoID, err)
	} else {
		video.Views++
	}

	return video, nil
}

func (uc *catalogUseCase) Delete(videoID string, requesterID string, requesterRole entity.UserRole) error {
	if !requesterRole.Can(entity.ActionDelete) {
		return entity.ErrForbidden
	}

	video, err := uc.videoRepo.GetByID(videoID)
	if err != nil {
		return err
	}

	uc.removeStored(video)

	if err := uc.videoRepo.Delete(videoID); err != nil {
		return err
	}

	uc.evictVideo(videoID)

	if uc.queueClient != nil {
		go uc.publishCatalogEvent("video_deleted", video, 3)
	}

	uc.logger.Info("Video %s deleted by %s", videoID, requesterID)
	return nil
}

func (uc *catalogUseCase) saveFromPath(key, path, contentType string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return uc.store.Save(key, f, contentType)
}

// removeStored deletes the media objects, best effort.
func (uc *catalogUseCase) removeStored(video *entity.Video) {
	ext := strings.ToLower(filepath.Ext(video.FileName))
	if err := uc.store.Delete(mediaKeyFor(video.ID, ext)); err != nil {
		uc.logger.Warn("Failed to delete media for %s: %v", video.ID, err)
	}
	if video.ThumbnailURL != "" {
		if err := uc.store.Delete(thumbKeyFor(video.ID)); err != nil {
			uc.logger.Warn("Failed to delete thumbnail for %s: %v", video.ID, err)
		}
	}
}

func (uc *catalogUseCase) cacheVideo(video *entity.Video) {
	if uc.redisClient == nil {
		return
	}

	ctx := context.Background()
	videoKey := fmt.Sprintf("video:%s", video.ID)
	videoData := map[string]interface{}{
		"id":            video.ID,
		"owner_id":      video.OwnerID,
		"title":         video.Title,
		"description":   video.Description,
		"media_url":     video.MediaURL,
		"thumbnail_url": video.ThumbnailURL,
	}

	for k, v := range videoData {
		uc.redisClient.HSet(ctx, videoKey, k, v)
	}
	uc.redisClient.Expire(ctx, videoKey, 24*time.Hour)

	uc.redisClient.LPush(ctx, "catalog:recent", video.ID)
	uc.redisClient.LTrim(ctx, "catalog:recent", 0, 199)
}

func (uc *catalogUseCase) evictVideo(videoID string) {
	if uc.redisClient == nil {
		return
	}

	ctx := context.Background()
	uc.redisClient.Del(ctx, fmt.Sprintf("video:%s", videoID))
	uc.redisClient.LRem(ctx, "catalog:recent", 0, videoID)
}

func (uc *catalogUseCase) publishCatalogEvent(eventType string, video *entity.Video, priority int) {
	event := map[string]interface{}{
		"type":     eventType,
		"video_id": video.ID,
		"owner_id": video.OwnerID,
		"title":    video.Title,
		"priority": priority,
	}

	if err := uc.queueClient.PublishCatalogEvent(event); err != nil {
		uc.logger.Error("[CATALOG QUEUE] Failed to publish %s event for %s: %v", eventType, video.ID, err)
	}
}

func mediaKeyFor(videoID, ext string) string {
	return fmt.Sprintf("videos/%s%s", videoID, ext)
}

func thumbKeyFor(videoID string) string {
	return fmt.Sprintf("thumbnails/%s.jpg", videoID)
}
