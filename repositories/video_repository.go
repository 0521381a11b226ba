package repositories

import (
	"control-tower-api/models"

	"gorm.io/gorm"
)

type VideoRepository interface {
	Create(video *models.Video, entry *models.VideoLog) error
	GetByID(id string) (*models.Video, error)
	GetList(params models.VideoListParams) ([]models.Video, int64, error)
	ApplyTransition(video *models.Video, entry *models.VideoLog) error
	CountByStatus() ([]models.PipelineMetric, error)
	StatsSnapshot() ([]models.Video, error)
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

// Create inserts the video together with its intake audit entry in one
// transaction.
func (r *videoRepository) Create(video *models.Video, entry *models.VideoLog) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(video).Error; err != nil {
			return err
		}
		if entry != nil {
			entry.VideoID = video.ID
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *videoRepository) GetByID(id string) (*models.Video, error) {
	var video models.Video
	err := r.db.First(&video, "id = ?", id).Error
	return &video, err
}

func (r *videoRepository) GetList(params models.VideoListParams) ([]models.Video, int64, error) {
	var videos []models.Video
	var total int64

	query := r.db.Model(&models.Video{})
	if params.Status != "" {
		query = query.Where("status = ?", params.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (params.Page - 1) * params.Limit
	err := query.Order("created_at desc").Offset(offset).Limit(params.Limit).Find(&videos).Error

	return videos, total, err
}

// ApplyTransition persists a compound status transition: a full-row
// update guarded by lock_version, plus the audit entry, in a single
// transaction. The caller passes the mutated copy with LockVersion
// already bumped; a concurrent writer makes the guard miss and the
// whole transition fails with ErrorConflict, leaving both tables
// untouched.
func (r *videoRepository) ApplyTransition(video *models.Video, entry *models.VideoLog) error {
	prevVersion := video.LockVersion - 1

	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Video{}).
			Where("id = ? AND lock_version = ?", video.ID, prevVersion).
			Select("*").
			Omit("id", "created_at").
			Updates(video)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return models.ErrorConflict{Message: "video was modified concurrently, reload and retry"}
		}

		if entry != nil {
			entry.VideoID = video.ID
			if err := tx.Create(entry).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *videoRepository) CountByStatus() ([]models.PipelineMetric, error) {
	var rows []models.PipelineMetric
	err := r.db.Model(&models.Video{}).
		Select("status, COUNT(*) as count, COALESCE(AVG(ai_score), 0) as avg_score").
		Group("status").
		Scan(&rows).Error
	return rows, err
}

// StatsSnapshot reads the aggregation inputs in one statement so the
// dashboard fold sees a single consistent snapshot.
func (r *videoRepository) StatsSnapshot() ([]models.Video, error) {
	var videos []models.Video
	err := r.db.Select("status", "ai_score", "ai_cost_estimate", "created_at").
		Find(&videos).Error
	return videos, err
}
