package persistent

import (
	"errors"

	"classcast/internal/entity"
	"classcast/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type VideoRepository interface {
	Create(video *entity.Video) error
	GetByID(id string) (*entity.Video, error)
	GetByOwnerID(ownerID string, limit, offset int) ([]*entity.Video, error)
	Search(query string, limit, offset int) ([]*entity.Video, error)
	Delete(id string) error
	IncrementViews(id string) error
	Count() (int64, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(video *entity.Video) error {
	videoModel := ToVideoModel(video)
	if videoModel.ID == "" {
		videoModel.ID = uuid.New().String()
	}
	if err := r.db.Create(videoModel).Error; err != nil {
		return err
	}
	*video = *ToVideoEntity(videoModel)
	return nil
}

func (r *videoRepository) GetByID(id string) (*entity.Video, error) {
	var videoModel model.VideoModel
	if err := r.db.Where("id = ?", id).First(&videoModel).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, entity.ErrNotFound
		}
		return nil, err
	}
	return ToVideoEntity(&videoModel), nil
}

func (r *videoRepository) GetByOwnerID(ownerID string, limit, offset int) ([]*entity.Video, error) {
	var videoModels []model.VideoModel
	query := r.db.Where("owner_id = ?", ownerID).Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}
	if err := query.Find(&videoModels).Error; err != nil {
		return nil, err
	}
	return toVideoEntities(videoModels), nil
}

// Search matches the title case-insensitively as a substring, newest first.
// An empty query lists the whole catalog.
func (r *videoRepository) Search(query string, limit, offset int) ([]*entity.Video, error) {
	var videoModels []model.VideoModel
	q := r.db.Order("created_at DESC")
	if query != "" {
		q = q.Where("title ILIKE ?", "%"+query+"%")
	}
	if limit > 0 {
		q = q.Limit(limit).Offset(offset)
	}
	if err := q.Find(&videoModels).Error; err != nil {
		return nil, err
	}
	return toVideoEntities(videoModels), nil
}

func (r *videoRepository) Delete(id string) error {
	result := r.db.Delete(&model.VideoModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *videoRepository) IncrementViews(id string) error {
	return r.db.Model(&model.VideoModel{}).Where("id = ?", id).
		UpdateColumn("views", clause.Expr{SQL: "views + ?", Vars: []interface{}{1}}).Error
}

func (r *videoRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&model.VideoModel{}).Count(&count).Error
	return count, err
}

func toVideoEntities(videoModels []model.VideoModel) []*entity.Video {
	videos := make([]*entity.Video, len(videoModels))
	for i := range videoModels {
		videos[i] = ToVideoEntity(&videoModels[i])
	}
	return videos
}
