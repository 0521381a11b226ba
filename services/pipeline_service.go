package services

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"control-tower-api/models"
	"control-tower-api/repositories"
	"control-tower-api/tasks"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PipelineService interface {
	CreateVideo(articleID string) (*models.Video, error)
	GetVideo(id string) (*models.Video, error)
	GetVideos(params models.VideoListParams) ([]models.Video, int64, error)
	GetLogs(id string) ([]models.VideoLog, error)
	ApproveScript(id string, req models.ApproveScriptRequest, userID uint) (*models.Video, error)
	Publish(id string, req models.PublishVideoRequest, userID uint) (*models.Video, error)
	MoveStatus(id string, newStatus models.VideoStatus, notes string, userID *uint) (*models.Video, error)
	Retry(id string) (*models.Video, error)
	Reject(id string, req models.RejectVideoRequest, userID uint) (*models.Video, error)
	Cancel(id string, userID *uint) (*models.Video, error)
	MarkError(id string, message string) (*models.Video, error)
	ScriptGenerated(id string, draft models.ScriptDraft) (*models.Video, error)
	CompleteRender(id string, artifacts models.RenderArtifacts) (*models.Video, error)
}

type pipelineService struct {
	videoRepo   repositories.VideoRepository
	logRepo     repositories.VideoLogRepository
	articleRepo repositories.ArticleRepository
	enqueuer    tasks.TaskEnqueuer
}

func NewPipelineService(
	videoRepo repositories.VideoRepository,
	logRepo repositories.VideoLogRepository,
	articleRepo repositories.ArticleRepository,
	enqueuer tasks.TaskEnqueuer,
) PipelineService {
	return &pipelineService{
		videoRepo:   videoRepo,
		logRepo:     logRepo,
		articleRepo: articleRepo,
		enqueuer:    enqueuer,
	}
}

// allowedTransitions is the forward edge set of the pipeline. Moves to
// error and cancelled are allowed from any non-terminal stage and are
// handled in canTransition.
var allowedTransitions = map[models.VideoStatus][]models.VideoStatus{
	models.StatusIntake:    {models.StatusScripting},
	models.StatusScripting: {models.StatusRendering},
	models.StatusRendering: {models.StatusReview},
	models.StatusReview:    {models.StatusPublished, models.StatusRendering, models.StatusScripting},
	models.StatusError:     {models.StatusRendering},
}

func canTransition(from, to models.VideoStatus) bool {
	if to == models.StatusError || to == models.StatusCancelled {
		return !from.Terminal()
	}
	for _, next := range allowedTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

func (s *pipelineService) CreateVideo(articleID string) (*models.Video, error) {
	article, err := s.articleRepo.GetByID(articleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "article not found"}
		}
		return nil, err
	}

	// TODO: replace the mock score once the scoring collaborator lands.
	score := rand.Intn(41) + 60

	video := &models.Video{
		ArticleID:         article.ID,
		ArticleTitle:      article.Title,
		ArticleSlug:       article.Slug,
		ArticleContent:    article.Content,
		ArticleExcerpt:    article.Excerpt,
		ArticleCategoryID: article.CategoryID,
		Status:            models.StatusIntake,
		AiScore:           &score,
	}

	entry := &models.VideoLog{
		Action: models.ActionCreated,
		Notes:  "Video created from article: " + article.Title,
	}

	if err := s.videoRepo.Create(video, entry); err != nil {
		return nil, err
	}

	s.enqueue(tasks.NewGenerateScriptTask(video.ID))

	return video, nil
}

func (s *pipelineService) GetVideo(id string) (*models.Video, error) {
	return s.load(id)
}

func (s *pipelineService) GetVideos(params models.VideoListParams) ([]models.Video, int64, error) {
	if params.Page < 1 {
		params.Page = 1
	}
	if params.Limit < 1 {
		params.Limit = 20
	}
	return s.videoRepo.GetList(params)
}

func (s *pipelineService) GetLogs(id string) ([]models.VideoLog, error) {
	if _, err := s.load(id); err != nil {
		return nil, err
	}
	return s.logRepo.GetByVideoID(id)
}

func (s *pipelineService) ApproveScript(id string, req models.ApproveScriptRequest, userID uint) (*models.Video, error) {
	video, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if video.Status != models.StatusScripting {
		return nil, models.ErrorPrecondition{Message: "script can only be approved while the video is in scripting"}
	}
	if strings.TrimSpace(req.Hook) == "" || strings.TrimSpace(req.Intro) == "" ||
		strings.TrimSpace(req.Body) == "" || strings.TrimSpace(req.Cta) == "" {
		return nil, models.ErrorPrecondition{Message: "all four script segments are required"}
	}

	now := time.Now()
	updated := *video
	updated.ScriptHook = req.Hook
	updated.ScriptIntro = req.Intro
	updated.ScriptBody = req.Body
	updated.ScriptCta = req.Cta
	updated.ScriptFull = models.FullScript(req.Hook, req.Intro, req.Body, req.Cta)
	updated.ScriptApproved = true
	updated.ScriptApprovedAt = &now
	updated.ScriptApprovedBy = &userID
	updated.Status = models.StatusRendering

	entry := s.transitionLog(video, models.StatusRendering, models.ActionScriptApproved, "", &userID, nil)
	if err := s.commit(&updated, entry); err != nil {
		return nil, err
	}

	s.enqueue(tasks.NewRenderVideoTask(updated.ID))

	return &updated, nil
}

func (s *pipelineService) Publish(id string, req models.PublishVideoRequest, userID uint) (*models.Video, error) {
	video, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if video.Status != models.StatusReview {
		return nil, models.ErrorPrecondition{Message: "only videos in review can be published"}
	}
	if strings.TrimSpace(req.VideoTitle) == "" || strings.TrimSpace(req.VideoDescription) == "" {
		return nil, models.ErrorPrecondition{Message: "publication title and description are required"}
	}
	if video.VideoURL == "" {
		return nil, models.ErrorPrecondition{Message: "video has no rendered media"}
	}

	now := time.Now()
	updated := *video
	updated.VideoTitle = req.VideoTitle
	updated.VideoDescription = req.VideoDescription
	updated.VideoTags = req.VideoTags
	if req.YoutubeVideoID != "" {
		updated.YoutubeVideoID = req.YoutubeVideoID
	}
	updated.PublishedAt = &now
	updated.PublishedBy = &userID
	updated.Status = models.StatusPublished

	var metadata models.JSONMap
	if req.YoutubeVideoID != "" {
		metadata = models.JSONMap{"youtube_video_id": req.YoutubeVideoID}
	}

	entry := s.transitionLog(video, models.StatusPublished, models.ActionPublished, "", &userID, metadata)
	if err := s.commit(&updated, entry); err != nil {
		return nil, err
	}

	return &updated, nil
}

// MoveStatus is the low-level transition primitive. It still refuses
// moves outside the transition table, and entering published is
// reserved for Publish so publication metadata can never be skipped.
func (s *pipelineService) MoveStatus(id string, newStatus models.VideoStatus, notes string, userID *uint) (*models.Video, error) {
	if !newStatus.Valid() {
		return nil, models.ErrorPrecondition{Message: fmt.Sprintf("unknown status %q", newStatus)}
	}
	if newStatus == models.StatusPublished {
		return nil, models.ErrorPrecondition{Message: "use publish to move a video into published"}
	}

	video, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if !canTransition(video.Status, newStatus) {
		return nil, models.ErrorPrecondition{
			Message: fmt.Sprintf("cannot move video from %s to %s", video.Status, newStatus),
		}
	}
	if newStatus == models.StatusReview && video.VideoURL == "" {
		return nil, models.ErrorPrecondition{Message: "cannot enter review without a rendered video"}
	}

	updated := *video
	updated.Status = newStatus
	if newStatus == models.StatusError && notes != "" {
		msg := notes
		updated.ErrorMessage = &msg
	}

	entry := s.transitionLog(video, newStatus, models.ActionStatusChanged, notes, userID, nil)
	if err := s.commit(&updated, entry); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *pipelineService) Retry(id string) (*models.Video, error) {
	video, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if video.Status != models.StatusError {
		return nil, models.ErrorPrecondition{Message: "only videos in error can be retried"}
	}

	updated := *video
	updated.Status = models.StatusRendering
	updated.RetryCount = video.RetryCount + 1
	updated.ErrorMessage = nil

	entry := s.transitionLog(video, models.StatusRendering, models.ActionRetried, "", nil, nil)
	if err := s.commit(&updated, entry); err != nil {
		return nil, err
	}

	s.enqueue(tasks.NewRenderVideoTask(updated.ID))

	return &updated, nil
}

func (s *pipelineService) Reject(id string, req models.RejectVideoRequest, userID uint) (*models.Video, error) {
	if req.RejectTo != models.StatusRendering && req.RejectTo != models.StatusScripting {
		return nil, models.ErrorPrecondition{Message: "reject_to must be rendering or scripting"}
	}
	if strings.TrimSpace(req.Reason) == "" {
		return nil, models.ErrorPrecondition{Message: "a rejection reason is required"}
	}

	video, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if video.Status != models.StatusReview {
		return nil, models.ErrorPrecondition{Message: "only videos in review can be rejected"}
	}

	updated := *video
	updated.Status = req.RejectTo

	entry := s.transitionLog(video, req.RejectTo, models.ActionRejected, req.Reason, &userID, nil)
	if err := s.commit(&updated, entry); err != nil {
		return nil, err
	}

	if req.RejectTo == models.StatusRendering {
		s.enqueue(tasks.NewRenderVideoTask(updated.ID))
	}

	return &updated, nil
}

func (s *pipelineService) Cancel(id string, userID *uint) (*models.Video, error) {
	video, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if video.Status.Terminal() {
		return nil, models.ErrorPrecondition{Message: "video is already in a terminal stage"}
	}

	updated := *video
	updated.Status = models.StatusCancelled

	entry := s.transitionLog(video, models.StatusCancelled, models.ActionCancelled, "", userID, nil)
	if err := s.commit(&updated, entry); err != nil {
		return nil, err
	}

	return &updated, nil
}

// MarkError records a collaborator failure. The retry counter is only
// touched by Retry.
func (s *pipelineService) MarkError(id string, message string) (*models.Video, error) {
	video, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if video.Status.Terminal() {
		return nil, models.ErrorPrecondition{Message: "video is already in a terminal stage"}
	}

	updated := *video
	updated.Status = models.StatusError
	updated.ErrorMessage = &message

	entry := s.transitionLog(video, models.StatusError, models.ActionError, message, nil, nil)
	if err := s.commit(&updated, entry); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *pipelineService) ScriptGenerated(id string, draft models.ScriptDraft) (*models.Video, error) {
	video, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if video.Status != models.StatusIntake {
		return nil, models.ErrorPrecondition{Message: "script generation only applies to intake videos"}
	}

	updated := *video
	updated.ScriptHook = draft.Hook
	updated.ScriptIntro = draft.Intro
	updated.ScriptBody = draft.Body
	updated.ScriptCta = draft.Cta
	updated.ScriptFull = models.FullScript(draft.Hook, draft.Intro, draft.Body, draft.Cta)
	updated.Status = models.StatusScripting

	entry := s.transitionLog(video, models.StatusScripting, models.ActionScriptGenerated, "", nil, nil)
	if err := s.commit(&updated, entry); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *pipelineService) CompleteRender(id string, artifacts models.RenderArtifacts) (*models.Video, error) {
	video, err := s.load(id)
	if err != nil {
		return nil, err
	}

	if video.Status != models.StatusRendering {
		return nil, models.ErrorPrecondition{Message: "render completion only applies to rendering videos"}
	}
	if strings.TrimSpace(artifacts.VideoURL) == "" {
		return nil, models.ErrorPrecondition{Message: "render result has no video URL"}
	}

	updated := *video
	updated.AudioURL = artifacts.AudioURL
	updated.VideoURL = artifacts.VideoURL
	if artifacts.VideoDuration > 0 {
		duration := artifacts.VideoDuration
		updated.VideoDuration = &duration
	}
	updated.ThumbnailURL = artifacts.ThumbnailURL
	updated.AiCostEstimate = video.AiCostEstimate + artifacts.CostEstimate
	updated.ApiCallsCount = video.ApiCallsCount + artifacts.ApiCalls
	updated.ProcessingTimeSeconds = video.ProcessingTimeSeconds + artifacts.ProcessingTimeSeconds
	updated.Status = models.StatusReview

	metadata := models.JSONMap{"video_url": artifacts.VideoURL}
	if artifacts.VideoDuration > 0 {
		metadata["video_duration"] = artifacts.VideoDuration
	}

	entry := s.transitionLog(video, models.StatusReview, models.ActionRenderComplete, "", nil, metadata)
	if err := s.commit(&updated, entry); err != nil {
		return nil, err
	}

	return &updated, nil
}

func (s *pipelineService) load(id string) (*models.Video, error) {
	video, err := s.videoRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "video not found"}
		}
		return nil, err
	}
	return video, nil
}

// commit bumps the optimistic lock and hands the mutated copy plus its
// audit entry to the repository, which applies both in one transaction.
func (s *pipelineService) commit(updated *models.Video, entry *models.VideoLog) error {
	updated.LockVersion = updated.LockVersion + 1
	updated.UpdatedAt = time.Now()
	return s.videoRepo.ApplyTransition(updated, entry)
}

func (s *pipelineService) transitionLog(video *models.Video, to models.VideoStatus, action, notes string, userID *uint, metadata models.JSONMap) *models.VideoLog {
	prev := video.Status
	next := to
	return &models.VideoLog{
		VideoID:        video.ID,
		UserID:         userID,
		PreviousStatus: &prev,
		NewStatus:      &next,
		Action:         action,
		Notes:          notes,
		Metadata:       metadata,
	}
}

// enqueue accepts a task constructor result directly. Enqueue failures
// are logged, not propagated: the transition already committed, and the
// operator can recover via retry.
func (s *pipelineService) enqueue(task *asynq.Task, err error) {
	if err == nil {
		_, err = s.enqueuer.Enqueue(task)
	}
	if err != nil {
		logrus.WithError(err).Warn("failed to enqueue pipeline task")
	}
}
