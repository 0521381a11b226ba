package services

import (
	"math"
	"time"

	"control-tower-api/models"
	"control-tower-api/repositories"
)

type MetricsService interface {
	PipelineMetrics() ([]models.PipelineMetric, error)
	DashboardStats(now time.Time) (*models.DashboardStats, error)
}

type metricsService struct {
	videoRepo repositories.VideoRepository
}

func NewMetricsService(videoRepo repositories.VideoRepository) MetricsService {
	return &metricsService{videoRepo: videoRepo}
}

// PipelineMetrics returns one row per stage in canonical order,
// including zero-count stages, so UI legends render deterministically.
func (s *metricsService) PipelineMetrics() ([]models.PipelineMetric, error) {
	rows, err := s.videoRepo.CountByStatus()
	if err != nil {
		return nil, err
	}

	byStatus := make(map[models.VideoStatus]models.PipelineMetric, len(rows))
	for _, row := range rows {
		byStatus[row.Status] = row
	}

	metrics := make([]models.PipelineMetric, 0, len(models.VideoStatusOrder))
	for _, status := range models.VideoStatusOrder {
		metric, ok := byStatus[status]
		if !ok {
			metric = models.PipelineMetric{Status: status}
		}
		metrics = append(metrics, metric)
	}

	return metrics, nil
}

// DashboardStats folds a single snapshot of the videos table. The
// average score only considers videos that actually carry a score.
func (s *metricsService) DashboardStats(now time.Time) (*models.DashboardStats, error) {
	videos, err := s.videoRepo.StatsSnapshot()
	if err != nil {
		return nil, err
	}

	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())

	stats := &models.DashboardStats{}
	scoreSum := 0
	scoreCount := 0

	for _, video := range videos {
		stats.TotalVideos++

		switch video.Status {
		case models.StatusPublished:
			stats.PublishedVideos++
		case models.StatusReview:
			stats.PendingReview++
		case models.StatusScripting, models.StatusRendering:
			stats.InProduction++
		case models.StatusError:
			stats.ErrorCount++
		}

		if video.AiScore != nil {
			scoreSum += *video.AiScore
			scoreCount++
		}

		stats.TotalCost += video.AiCostEstimate

		if !video.CreatedAt.Before(firstOfMonth) {
			stats.VideosThisMonth++
		}
	}

	if scoreCount > 0 {
		stats.AvgAiScore = int(math.Round(float64(scoreSum) / float64(scoreCount)))
	}

	return stats, nil
}
