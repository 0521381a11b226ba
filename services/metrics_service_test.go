package services

import (
	"testing"
	"time"

	"control-tower-api/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMetricsVideo(repo *fakeVideoRepo, status models.VideoStatus, score *int, cost float64, createdAt time.Time) {
	repo.Create(&models.Video{
		Status:         status,
		AiScore:        score,
		AiCostEstimate: cost,
		CreatedAt:      createdAt,
	}, nil)
}

func intPtr(n int) *int { return &n }

func TestPipelineMetricsCanonicalOrder(t *testing.T) {
	logs := &fakeVideoLogRepo{}
	repo := newFakeVideoRepo(logs)
	service := NewMetricsService(repo)

	now := time.Now()
	seedMetricsVideo(repo, models.StatusReview, intPtr(80), 0, now)
	seedMetricsVideo(repo, models.StatusReview, intPtr(90), 0, now)
	seedMetricsVideo(repo, models.StatusError, nil, 0, now)

	metrics, err := service.PipelineMetrics()
	require.NoError(t, err)

	require.Len(t, metrics, len(models.VideoStatusOrder))
	for i, status := range models.VideoStatusOrder {
		assert.Equal(t, status, metrics[i].Status)
	}

	byStatus := make(map[models.VideoStatus]models.PipelineMetric)
	for _, m := range metrics {
		byStatus[m.Status] = m
	}
	assert.Equal(t, int64(2), byStatus[models.StatusReview].Count)
	assert.InDelta(t, 85.0, byStatus[models.StatusReview].AvgScore, 0.0001)
	assert.Equal(t, int64(1), byStatus[models.StatusError].Count)
	assert.Equal(t, int64(0), byStatus[models.StatusIntake].Count)
	assert.Equal(t, int64(0), byStatus[models.StatusPublished].Count)
}

func TestPipelineMetricsCountsSumToTotal(t *testing.T) {
	logs := &fakeVideoLogRepo{}
	repo := newFakeVideoRepo(logs)
	service := NewMetricsService(repo)

	now := time.Now()
	for _, status := range []models.VideoStatus{
		models.StatusIntake, models.StatusIntake, models.StatusScripting,
		models.StatusPublished, models.StatusCancelled,
	} {
		seedMetricsVideo(repo, status, nil, 0, now)
	}

	metrics, err := service.PipelineMetrics()
	require.NoError(t, err)

	var total int64
	for _, m := range metrics {
		total += m.Count
	}
	assert.Equal(t, int64(5), total)

	stats, err := service.DashboardStats(time.Now())
	require.NoError(t, err)
	assert.Equal(t, stats.TotalVideos, total)
}

func TestDashboardStatsFold(t *testing.T) {
	logs := &fakeVideoLogRepo{}
	repo := newFakeVideoRepo(logs)
	service := NewMetricsService(repo)

	now := time.Date(2026, time.August, 20, 12, 0, 0, 0, time.UTC)
	thisMonth := time.Date(2026, time.August, 5, 0, 0, 0, 0, time.UTC)
	lastMonth := time.Date(2026, time.July, 28, 0, 0, 0, 0, time.UTC)

	seedMetricsVideo(repo, models.StatusPublished, intPtr(90), 1.5, lastMonth)
	seedMetricsVideo(repo, models.StatusReview, intPtr(71), 0.5, thisMonth)
	seedMetricsVideo(repo, models.StatusScripting, nil, 0, thisMonth)
	seedMetricsVideo(repo, models.StatusRendering, intPtr(80), 0.25, thisMonth)
	seedMetricsVideo(repo, models.StatusError, nil, 0.75, lastMonth)
	seedMetricsVideo(repo, models.StatusCancelled, nil, 0, lastMonth)

	stats, err := service.DashboardStats(now)
	require.NoError(t, err)

	assert.Equal(t, int64(6), stats.TotalVideos)
	assert.Equal(t, int64(1), stats.PublishedVideos)
	assert.Equal(t, int64(1), stats.PendingReview)
	assert.Equal(t, int64(2), stats.InProduction)
	assert.Equal(t, int64(1), stats.ErrorCount)
	// (90+71+80)/3 rounds to 80; unscored videos do not drag it down.
	assert.Equal(t, 80, stats.AvgAiScore)
	assert.InDelta(t, 3.0, stats.TotalCost, 0.0001)
	assert.Equal(t, int64(3), stats.VideosThisMonth)
}

func TestDashboardStatsMonthBoundary(t *testing.T) {
	logs := &fakeVideoLogRepo{}
	repo := newFakeVideoRepo(logs)
	service := NewMetricsService(repo)

	now := time.Date(2026, time.August, 31, 23, 0, 0, 0, time.UTC)
	firstOfMonth := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
	justBefore := firstOfMonth.Add(-time.Second)

	seedMetricsVideo(repo, models.StatusIntake, nil, 0, firstOfMonth)
	seedMetricsVideo(repo, models.StatusIntake, nil, 0, justBefore)

	stats, err := service.DashboardStats(now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), stats.VideosThisMonth)
}

func TestDashboardStatsTracksPublish(t *testing.T) {
	f := newPipelineFixture()
	service := NewMetricsService(f.videos)

	video := f.seedVideo(models.StatusReview, func(v *models.Video) {
		v.VideoURL = "https://cdn.example.com/v.mp4"
	})

	before, err := service.DashboardStats(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(1), before.PendingReview)
	assert.Equal(t, int64(0), before.PublishedVideos)

	_, err = f.service.Publish(video.ID, models.PublishVideoRequest{
		VideoTitle:       "t",
		VideoDescription: "d",
	}, 1)
	require.NoError(t, err)

	after, err := service.DashboardStats(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), after.PendingReview)
	assert.Equal(t, int64(1), after.PublishedVideos)
	assert.Equal(t, before.TotalVideos, after.TotalVideos)
}

func TestDashboardStatsEmpty(t *testing.T) {
	logs := &fakeVideoLogRepo{}
	repo := newFakeVideoRepo(logs)
	service := NewMetricsService(repo)

	stats, err := service.DashboardStats(time.Now())
	require.NoError(t, err)
	assert.Equal(t, int64(0), stats.TotalVideos)
	assert.Equal(t, 0, stats.AvgAiScore)
	assert.Equal(t, 0.0, stats.TotalCost)
}
