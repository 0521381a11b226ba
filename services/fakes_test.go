package services

import (
	"control-tower-api/models"

	"github.com/google/uuid"
	"github.com/hibiken/asynq"
	"gorm.io/gorm"
)

// In-memory stand-ins for the repositories and the task queue, shared
// by the service unit tests.

type fakeVideoLogRepo struct {
	entries []models.VideoLog
}

func (r *fakeVideoLogRepo) Create(entry *models.VideoLog) error {
	entry.ID = uint(len(r.entries) + 1)
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *fakeVideoLogRepo) GetByVideoID(videoID string) ([]models.VideoLog, error) {
	var logs []models.VideoLog
	for i := len(r.entries) - 1; i >= 0; i-- {
		if r.entries[i].VideoID == videoID {
			logs = append(logs, r.entries[i])
		}
	}
	return logs, nil
}

type fakeVideoRepo struct {
	videos map[string]models.Video
	logs   *fakeVideoLogRepo

	// forceConflict makes the next ApplyTransition fail the guard, as
	// if another writer got there first.
	forceConflict bool
}

func newFakeVideoRepo(logs *fakeVideoLogRepo) *fakeVideoRepo {
	return &fakeVideoRepo{videos: make(map[string]models.Video), logs: logs}
}

func (r *fakeVideoRepo) Create(video *models.Video, entry *models.VideoLog) error {
	if video.ID == "" {
		video.ID = uuid.NewString()
	}
	r.videos[video.ID] = *video
	if entry != nil {
		entry.VideoID = video.ID
		r.logs.Create(entry)
	}
	return nil
}

func (r *fakeVideoRepo) GetByID(id string) (*models.Video, error) {
	video, ok := r.videos[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &video, nil
}

func (r *fakeVideoRepo) GetList(params models.VideoListParams) ([]models.Video, int64, error) {
	var videos []models.Video
	for _, video := range r.videos {
		if params.Status != "" && string(video.Status) != params.Status {
			continue
		}
		videos = append(videos, video)
	}
	return videos, int64(len(videos)), nil
}

func (r *fakeVideoRepo) ApplyTransition(video *models.Video, entry *models.VideoLog) error {
	if r.forceConflict {
		r.forceConflict = false
		return models.ErrorConflict{Message: "video was modified concurrently, reload and retry"}
	}
	current, ok := r.videos[video.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if current.LockVersion != video.LockVersion-1 {
		return models.ErrorConflict{Message: "video was modified concurrently, reload and retry"}
	}
	r.videos[video.ID] = *video
	if entry != nil {
		entry.VideoID = video.ID
		r.logs.Create(entry)
	}
	return nil
}

func (r *fakeVideoRepo) CountByStatus() ([]models.PipelineMetric, error) {
	counts := make(map[models.VideoStatus]*models.PipelineMetric)
	sums := make(map[models.VideoStatus]int)
	scored := make(map[models.VideoStatus]int64)
	for _, video := range r.videos {
		metric, ok := counts[video.Status]
		if !ok {
			metric = &models.PipelineMetric{Status: video.Status}
			counts[video.Status] = metric
		}
		metric.Count++
		if video.AiScore != nil {
			sums[video.Status] += *video.AiScore
			scored[video.Status]++
		}
	}
	var metrics []models.PipelineMetric
	for status, metric := range counts {
		if scored[status] > 0 {
			metric.AvgScore = float64(sums[status]) / float64(scored[status])
		}
		metrics = append(metrics, *metric)
	}
	return metrics, nil
}

func (r *fakeVideoRepo) StatsSnapshot() ([]models.Video, error) {
	var videos []models.Video
	for _, video := range r.videos {
		videos = append(videos, video)
	}
	return videos, nil
}

type fakeArticleRepo struct {
	articles map[string]models.Article
}

func newFakeArticleRepo() *fakeArticleRepo {
	return &fakeArticleRepo{articles: make(map[string]models.Article)}
}

func (r *fakeArticleRepo) Create(article *models.Article) error {
	if article.ID == "" {
		article.ID = uuid.NewString()
	}
	r.articles[article.ID] = *article
	return nil
}

func (r *fakeArticleRepo) GetByID(id string) (*models.Article, error) {
	article, ok := r.articles[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &article, nil
}

func (r *fakeArticleRepo) GetList(page, limit int) ([]models.Article, int64, error) {
	var articles []models.Article
	for _, article := range r.articles {
		articles = append(articles, article)
	}
	return articles, int64(len(articles)), nil
}

func (r *fakeArticleRepo) GetWithoutVideo() ([]models.Article, error) {
	return nil, nil
}

type fakeEnqueuer struct {
	taskTypes []string
	err       error
}

func (f *fakeEnqueuer) Enqueue(task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.taskTypes = append(f.taskTypes, task.Type())
	return &asynq.TaskInfo{}, nil
}
