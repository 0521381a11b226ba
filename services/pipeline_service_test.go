package services

import (
	"testing"

	"control-tower-api/models"
	"control-tower-api/tasks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipelineFixture struct {
	service  PipelineService
	videos   *fakeVideoRepo
	logs     *fakeVideoLogRepo
	articles *fakeArticleRepo
	queue    *fakeEnqueuer
}

func newPipelineFixture() *pipelineFixture {
	logs := &fakeVideoLogRepo{}
	videos := newFakeVideoRepo(logs)
	articles := newFakeArticleRepo()
	queue := &fakeEnqueuer{}
	return &pipelineFixture{
		service:  NewPipelineService(videos, logs, articles, queue),
		videos:   videos,
		logs:     logs,
		articles: articles,
		queue:    queue,
	}
}

func (f *pipelineFixture) seedArticle() *models.Article {
	article := &models.Article{
		Title:   "Feira brasileira chega a Orlando",
		Slug:    "feira-brasileira-chega-a-orlando",
		Content: "A maior feira de produtos brasileiros da Florida abre as portas neste fim de semana.",
		Excerpt: "Feira abre neste fim de semana.",
	}
	f.articles.Create(article)
	return article
}

func (f *pipelineFixture) seedVideo(status models.VideoStatus, mutate func(*models.Video)) *models.Video {
	video := &models.Video{
		ID:           uuid.NewString(),
		ArticleID:    uuid.NewString(),
		ArticleTitle: "Feira brasileira chega a Orlando",
		ArticleSlug:  "feira-brasileira-chega-a-orlando",
		Status:       status,
	}
	if mutate != nil {
		mutate(video)
	}
	f.videos.Create(video, nil)
	return video
}

func (f *pipelineFixture) currentStatus(t *testing.T, id string) models.VideoStatus {
	t.Helper()
	video, err := f.videos.GetByID(id)
	require.NoError(t, err)
	return video.Status
}

func approvedSegments() models.ApproveScriptRequest {
	return models.ApproveScriptRequest{
		Hook:  "Voce sabia que Orlando tem a maior feira brasileira da Florida?",
		Intro: "Neste fim de semana a comunidade se encontra de novo.",
		Body:  "Mais de cem expositores trazem comida, musica e servicos.",
		Cta:   "Siga a gente para nao perder nenhuma novidade.",
	}
}

func TestCreateVideoSnapshotsArticle(t *testing.T) {
	f := newPipelineFixture()
	article := f.seedArticle()

	video, err := f.service.CreateVideo(article.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusIntake, video.Status)
	assert.Equal(t, article.ID, video.ArticleID)
	assert.Equal(t, article.Title, video.ArticleTitle)
	assert.Equal(t, article.Slug, video.ArticleSlug)
	assert.Equal(t, article.Content, video.ArticleContent)
	require.NotNil(t, video.AiScore)
	assert.GreaterOrEqual(t, *video.AiScore, 60)
	assert.LessOrEqual(t, *video.AiScore, 100)

	logs, err := f.service.GetLogs(video.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionCreated, logs[0].Action)

	assert.Equal(t, []string{tasks.TypeGenerateScript}, f.queue.taskTypes)
}

func TestCreateVideoUnknownArticle(t *testing.T) {
	f := newPipelineFixture()

	_, err := f.service.CreateVideo(uuid.NewString())
	require.Error(t, err)
	assert.IsType(t, models.ErrorNotFound{}, err)
	assert.Empty(t, f.queue.taskTypes)
}

func TestScriptGeneratedMovesToScripting(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusIntake, nil)

	draft := models.ScriptDraft{Hook: "h", Intro: "i", Body: "b", Cta: "c"}
	updated, err := f.service.ScriptGenerated(video.ID, draft)
	require.NoError(t, err)

	assert.Equal(t, models.StatusScripting, updated.Status)
	assert.Equal(t, "h", updated.ScriptHook)
	assert.Equal(t, "h\n\ni\n\nb\n\nc", updated.ScriptFull)
	assert.False(t, updated.ScriptApproved)
}

func TestScriptGeneratedOutsideIntake(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusReview, nil)

	_, err := f.service.ScriptGenerated(video.ID, models.ScriptDraft{Hook: "h", Intro: "i", Body: "b", Cta: "c"})
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
	assert.Equal(t, models.StatusReview, f.currentStatus(t, video.ID))
}

func TestApproveScriptMovesToRendering(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusScripting, nil)

	updated, err := f.service.ApproveScript(video.ID, approvedSegments(), 7)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRendering, updated.Status)
	assert.True(t, updated.ScriptApproved)
	require.NotNil(t, updated.ScriptApprovedAt)
	require.NotNil(t, updated.ScriptApprovedBy)
	assert.Equal(t, uint(7), *updated.ScriptApprovedBy)
	assert.NotEmpty(t, updated.ScriptFull)

	assert.Equal(t, []string{tasks.TypeRenderVideo}, f.queue.taskTypes)

	logs, err := f.service.GetLogs(video.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionScriptApproved, logs[0].Action)
	require.NotNil(t, logs[0].PreviousStatus)
	assert.Equal(t, models.StatusScripting, *logs[0].PreviousStatus)
	require.NotNil(t, logs[0].NewStatus)
	assert.Equal(t, models.StatusRendering, *logs[0].NewStatus)
}

func TestApproveScriptRequiresAllSegments(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusScripting, nil)

	req := approvedSegments()
	req.Cta = "   "
	_, err := f.service.ApproveScript(video.ID, req, 7)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
	assert.Equal(t, models.StatusScripting, f.currentStatus(t, video.ID))
	assert.Empty(t, f.queue.taskTypes)
}

func TestApproveScriptOutsideScripting(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusIntake, nil)

	_, err := f.service.ApproveScript(video.ID, approvedSegments(), 7)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
	assert.Equal(t, models.StatusIntake, f.currentStatus(t, video.ID))
}

func TestCompleteRenderMovesToReview(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusRendering, func(v *models.Video) {
		v.AiCostEstimate = 0.5
		v.ApiCallsCount = 3
	})

	artifacts := models.RenderArtifacts{
		AudioURL:              "https://cdn.example.com/a.mp3",
		VideoURL:              "https://cdn.example.com/v.mp4",
		VideoDuration:         58,
		ThumbnailURL:          "https://cdn.example.com/t.jpg",
		CostEstimate:          1.25,
		ApiCalls:              4,
		ProcessingTimeSeconds: 93,
	}
	updated, err := f.service.CompleteRender(video.ID, artifacts)
	require.NoError(t, err)

	assert.Equal(t, models.StatusReview, updated.Status)
	assert.Equal(t, artifacts.VideoURL, updated.VideoURL)
	require.NotNil(t, updated.VideoDuration)
	assert.Equal(t, 58, *updated.VideoDuration)
	assert.InDelta(t, 1.75, updated.AiCostEstimate, 0.0001)
	assert.Equal(t, 7, updated.ApiCallsCount)
	assert.Equal(t, 93, updated.ProcessingTimeSeconds)
}

func TestCompleteRenderRequiresVideoURL(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusRendering, nil)

	_, err := f.service.CompleteRender(video.ID, models.RenderArtifacts{AudioURL: "https://cdn.example.com/a.mp3"})
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
	assert.Equal(t, models.StatusRendering, f.currentStatus(t, video.ID))
}

func TestPublishStampsMetadata(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusReview, func(v *models.Video) {
		v.VideoURL = "https://cdn.example.com/v.mp4"
	})

	req := models.PublishVideoRequest{
		VideoTitle:       "Feira brasileira em Orlando",
		VideoDescription: "Tudo sobre a feira deste fim de semana.",
		VideoTags:        []string{"orlando", "feira"},
		YoutubeVideoID:   "yt-123",
	}
	updated, err := f.service.Publish(video.ID, req, 9)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPublished, updated.Status)
	require.NotNil(t, updated.PublishedAt)
	require.NotNil(t, updated.PublishedBy)
	assert.Equal(t, uint(9), *updated.PublishedBy)
	assert.Equal(t, "yt-123", updated.YoutubeVideoID)

	logs, err := f.service.GetLogs(video.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionPublished, logs[0].Action)
	assert.Equal(t, "yt-123", logs[0].Metadata["youtube_video_id"])
}

func TestPublishRequiresRenderedMedia(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusReview, nil)

	req := models.PublishVideoRequest{VideoTitle: "t", VideoDescription: "d"}
	_, err := f.service.Publish(video.ID, req, 9)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
	assert.Equal(t, models.StatusReview, f.currentStatus(t, video.ID))
}

func TestPublishRequiresTitleAndDescription(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusReview, func(v *models.Video) {
		v.VideoURL = "https://cdn.example.com/v.mp4"
	})

	_, err := f.service.Publish(video.ID, models.PublishVideoRequest{VideoTitle: "t"}, 9)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)

	video2, err := f.videos.GetByID(video.ID)
	require.NoError(t, err)
	assert.Nil(t, video2.PublishedAt)
}

func TestPublishOutsideReview(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusRendering, func(v *models.Video) {
		v.VideoURL = "https://cdn.example.com/v.mp4"
	})

	_, err := f.service.Publish(video.ID, models.PublishVideoRequest{VideoTitle: "t", VideoDescription: "d"}, 9)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
}

func TestMoveStatusTransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		from    models.VideoStatus
		to      models.VideoStatus
		allowed bool
	}{
		{"intake to scripting", models.StatusIntake, models.StatusScripting, true},
		{"intake to rendering", models.StatusIntake, models.StatusRendering, false},
		{"scripting to rendering", models.StatusScripting, models.StatusRendering, true},
		{"scripting to review", models.StatusScripting, models.StatusReview, false},
		{"rendering to review", models.StatusRendering, models.StatusReview, true},
		{"review to scripting", models.StatusReview, models.StatusScripting, true},
		{"review to rendering", models.StatusReview, models.StatusRendering, true},
		{"review to intake", models.StatusReview, models.StatusIntake, false},
		{"error to rendering", models.StatusError, models.StatusRendering, true},
		{"error to scripting", models.StatusError, models.StatusScripting, false},
		{"intake to cancelled", models.StatusIntake, models.StatusCancelled, true},
		{"review to error", models.StatusReview, models.StatusError, true},
		{"published to cancelled", models.StatusPublished, models.StatusCancelled, false},
		{"cancelled to error", models.StatusCancelled, models.StatusError, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newPipelineFixture()
			video := f.seedVideo(tc.from, func(v *models.Video) {
				v.VideoURL = "https://cdn.example.com/v.mp4"
			})

			updated, err := f.service.MoveStatus(video.ID, tc.to, "", nil)
			if tc.allowed {
				require.NoError(t, err)
				assert.Equal(t, tc.to, updated.Status)
			} else {
				require.Error(t, err)
				assert.IsType(t, models.ErrorPrecondition{}, err)
				assert.Equal(t, tc.from, f.currentStatus(t, video.ID))
			}
		})
	}
}

func TestMoveStatusRefusesPublished(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusReview, func(v *models.Video) {
		v.VideoURL = "https://cdn.example.com/v.mp4"
	})

	_, err := f.service.MoveStatus(video.ID, models.StatusPublished, "", nil)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
	assert.Equal(t, models.StatusReview, f.currentStatus(t, video.ID))
}

func TestMoveStatusRefusesUnknownStatus(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusIntake, nil)

	_, err := f.service.MoveStatus(video.ID, models.VideoStatus("archived"), "", nil)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
}

func TestMoveStatusToReviewNeedsRender(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusRendering, nil)

	_, err := f.service.MoveStatus(video.ID, models.StatusReview, "", nil)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
	assert.Equal(t, models.StatusRendering, f.currentStatus(t, video.ID))
}

func TestRetryFromError(t *testing.T) {
	f := newPipelineFixture()
	msg := "render timed out"
	video := f.seedVideo(models.StatusError, func(v *models.Video) {
		v.ErrorMessage = &msg
		v.RetryCount = 2
	})

	updated, err := f.service.Retry(video.ID)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRendering, updated.Status)
	assert.Equal(t, 3, updated.RetryCount)
	assert.Nil(t, updated.ErrorMessage)
	assert.Equal(t, []string{tasks.TypeRenderVideo}, f.queue.taskTypes)
}

func TestRetryOutsideError(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusReview, nil)

	_, err := f.service.Retry(video.ID)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
	assert.Empty(t, f.queue.taskTypes)
}

func TestRetryCountSurvivesNextFailure(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusError, nil)

	_, err := f.service.Retry(video.ID)
	require.NoError(t, err)

	_, err = f.service.MarkError(video.ID, "render failed again")
	require.NoError(t, err)

	_, err = f.service.Retry(video.ID)
	require.NoError(t, err)

	current, err := f.videos.GetByID(video.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, current.RetryCount)
}

func TestRejectBackToScripting(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusReview, func(v *models.Video) {
		v.VideoURL = "https://cdn.example.com/v.mp4"
	})

	req := models.RejectVideoRequest{Reason: "script reads like a press release", RejectTo: models.StatusScripting}
	updated, err := f.service.Reject(video.ID, req, 4)
	require.NoError(t, err)

	assert.Equal(t, models.StatusScripting, updated.Status)
	assert.Empty(t, f.queue.taskTypes)

	logs, err := f.service.GetLogs(video.ID)
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, models.ActionRejected, logs[0].Action)
	assert.Equal(t, req.Reason, logs[0].Notes)
}

func TestRejectBackToRenderingEnqueues(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusReview, func(v *models.Video) {
		v.VideoURL = "https://cdn.example.com/v.mp4"
	})

	req := models.RejectVideoRequest{Reason: "audio out of sync", RejectTo: models.StatusRendering}
	updated, err := f.service.Reject(video.ID, req, 4)
	require.NoError(t, err)

	assert.Equal(t, models.StatusRendering, updated.Status)
	assert.Equal(t, []string{tasks.TypeRenderVideo}, f.queue.taskTypes)
}

func TestRejectValidatesDestinationAndReason(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusReview, func(v *models.Video) {
		v.VideoURL = "https://cdn.example.com/v.mp4"
	})

	_, err := f.service.Reject(video.ID, models.RejectVideoRequest{Reason: "r", RejectTo: models.StatusIntake}, 4)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)

	_, err = f.service.Reject(video.ID, models.RejectVideoRequest{Reason: "  ", RejectTo: models.StatusScripting}, 4)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)

	assert.Equal(t, models.StatusReview, f.currentStatus(t, video.ID))
}

func TestRejectOutsideReview(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusScripting, nil)

	_, err := f.service.Reject(video.ID, models.RejectVideoRequest{Reason: "r", RejectTo: models.StatusScripting}, 4)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
}

func TestCancelNonTerminal(t *testing.T) {
	f := newPipelineFixture()
	uid := uint(3)
	video := f.seedVideo(models.StatusScripting, nil)

	updated, err := f.service.Cancel(video.ID, &uid)
	require.NoError(t, err)
	assert.Equal(t, models.StatusCancelled, updated.Status)
}

func TestCancelTerminalRefused(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusPublished, nil)

	_, err := f.service.Cancel(video.ID, nil)
	require.Error(t, err)
	assert.IsType(t, models.ErrorPrecondition{}, err)
	assert.Equal(t, models.StatusPublished, f.currentStatus(t, video.ID))
}

func TestMarkErrorKeepsRetryCount(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusRendering, func(v *models.Video) {
		v.RetryCount = 1
	})

	updated, err := f.service.MarkError(video.ID, "media engine returned status 500")
	require.NoError(t, err)

	assert.Equal(t, models.StatusError, updated.Status)
	require.NotNil(t, updated.ErrorMessage)
	assert.Equal(t, "media engine returned status 500", *updated.ErrorMessage)
	assert.Equal(t, 1, updated.RetryCount)
}

func TestConcurrentTransitionConflicts(t *testing.T) {
	f := newPipelineFixture()
	video := f.seedVideo(models.StatusScripting, nil)
	f.videos.forceConflict = true

	_, err := f.service.ApproveScript(video.ID, approvedSegments(), 7)
	require.Error(t, err)
	assert.IsType(t, models.ErrorConflict{}, err)
	assert.Equal(t, models.StatusScripting, f.currentStatus(t, video.ID))
}

func TestLogsNewestFirst(t *testing.T) {
	f := newPipelineFixture()
	article := f.seedArticle()

	video, err := f.service.CreateVideo(article.ID)
	require.NoError(t, err)

	_, err = f.service.ScriptGenerated(video.ID, models.ScriptDraft{Hook: "h", Intro: "i", Body: "b", Cta: "c"})
	require.NoError(t, err)

	_, err = f.service.ApproveScript(video.ID, approvedSegments(), 7)
	require.NoError(t, err)

	logs, err := f.service.GetLogs(video.ID)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, models.ActionScriptApproved, logs[0].Action)
	assert.Equal(t, models.ActionScriptGenerated, logs[1].Action)
	assert.Equal(t, models.ActionCreated, logs[2].Action)
}

func TestFullWalkToPublished(t *testing.T) {
	f := newPipelineFixture()
	article := f.seedArticle()

	video, err := f.service.CreateVideo(article.ID)
	require.NoError(t, err)

	_, err = f.service.ScriptGenerated(video.ID, models.ScriptDraft{Hook: "h", Intro: "i", Body: "b", Cta: "c"})
	require.NoError(t, err)

	_, err = f.service.ApproveScript(video.ID, approvedSegments(), 7)
	require.NoError(t, err)

	_, err = f.service.CompleteRender(video.ID, models.RenderArtifacts{
		VideoURL:     "https://cdn.example.com/v.mp4",
		CostEstimate: 2.0,
	})
	require.NoError(t, err)

	published, err := f.service.Publish(video.ID, models.PublishVideoRequest{
		VideoTitle:       "Feira brasileira em Orlando",
		VideoDescription: "Cobertura completa.",
	}, 7)
	require.NoError(t, err)

	assert.Equal(t, models.StatusPublished, published.Status)
	require.NotNil(t, published.PublishedAt)
	assert.Equal(t, []string{tasks.TypeGenerateScript, tasks.TypeRenderVideo}, f.queue.taskTypes)

	logs, err := f.service.GetLogs(video.ID)
	require.NoError(t, err)
	assert.Len(t, logs, 5)
}
