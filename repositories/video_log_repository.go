package repositories

import (
	"control-tower-api/models"

	"gorm.io/gorm"
)

type VideoLogRepository interface {
	Create(entry *models.VideoLog) error
	GetByVideoID(videoID string) ([]models.VideoLog, error)
}

type videoLogRepository struct {
	db *gorm.DB
}

func NewVideoLogRepository(db *gorm.DB) VideoLogRepository {
	return &videoLogRepository{db: db}
}

func (r *videoLogRepository) Create(entry *models.VideoLog) error {
	return r.db.Create(entry).Error
}

// GetByVideoID returns the full history, newest first.
func (r *videoLogRepository) GetByVideoID(videoID string) ([]models.VideoLog, error) {
	var logs []models.VideoLog
	err := r.db.Where("video_id = ?", videoID).
		Order("created_at desc, id desc").
		Find(&logs).Error
	return logs, err
}
