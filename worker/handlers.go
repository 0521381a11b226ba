package worker

import (
	"context"
	"encoding/json"
	"fmt"

	"control-tower-api/mediaengine"
	"control-tower-api/models"
	"control-tower-api/repositories"
	"control-tower-api/tasks"

	"github.com/hibiken/asynq"
	"github.com/sirupsen/logrus"
)

// Pipeline is the slice of the pipeline service the task handlers need.
type Pipeline interface {
	CreateVideo(articleID string) (*models.Video, error)
	GetVideo(id string) (*models.Video, error)
	ScriptGenerated(id string, draft models.ScriptDraft) (*models.Video, error)
	CompleteRender(id string, artifacts models.RenderArtifacts) (*models.Video, error)
	MarkError(id string, message string) (*models.Video, error)
}

type TaskHandler struct {
	pipeline    Pipeline
	articleRepo repositories.ArticleRepository
	scripts     mediaengine.ScriptGenerator
	renderer    mediaengine.VideoRenderer
}

func NewTaskHandler(
	pipeline Pipeline,
	articleRepo repositories.ArticleRepository,
	scripts mediaengine.ScriptGenerator,
	renderer mediaengine.VideoRenderer,
) *TaskHandler {
	return &TaskHandler{
		pipeline:    pipeline,
		articleRepo: articleRepo,
		scripts:     scripts,
		renderer:    renderer,
	}
}

// HandleGenerateScriptTask asks the media engine for a script draft and
// moves the video to scripting. A collaborator failure parks the video
// in the error state and consumes the task; recovery happens through
// the operator retry endpoint, not through queue redelivery.
func (h *TaskHandler) HandleGenerateScriptTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.GenerateScriptTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	log := logrus.WithField("video_id", p.VideoID)
	log.Info("generating script")

	video, err := h.pipeline.GetVideo(p.VideoID)
	if err != nil {
		log.WithError(err).Warn("video not loadable, dropping task")
		return nil
	}
	if video.Status != models.StatusIntake {
		log.WithField("status", video.Status).Info("video left intake, skipping script generation")
		return nil
	}

	draft, err := h.scripts.GenerateScript(ctx, video)
	if err != nil {
		log.WithError(err).Error("script generation failed")
		h.markError(p.VideoID, "script generation failed: "+err.Error())
		return nil
	}

	if _, err := h.pipeline.ScriptGenerated(p.VideoID, *draft); err != nil {
		log.WithError(err).Error("failed to record generated script")
		h.markError(p.VideoID, "failed to record generated script: "+err.Error())
		return nil
	}

	log.Info("script generated")
	return nil
}

// HandleRenderVideoTask renders the approved script and moves the video
// to review. Same failure policy as script generation.
func (h *TaskHandler) HandleRenderVideoTask(ctx context.Context, t *asynq.Task) error {
	var p tasks.RenderVideoTaskPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal task payload: %w", err)
	}

	log := logrus.WithField("video_id", p.VideoID)
	log.Info("rendering video")

	video, err := h.pipeline.GetVideo(p.VideoID)
	if err != nil {
		log.WithError(err).Warn("video not loadable, dropping task")
		return nil
	}
	if video.Status != models.StatusRendering {
		log.WithField("status", video.Status).Info("video not in rendering, skipping render")
		return nil
	}

	artifacts, err := h.renderer.RenderVideo(ctx, video)
	if err != nil {
		log.WithError(err).Error("render failed")
		h.markError(p.VideoID, "render failed: "+err.Error())
		return nil
	}

	if _, err := h.pipeline.CompleteRender(p.VideoID, *artifacts); err != nil {
		log.WithError(err).Error("failed to record render artifacts")
		h.markError(p.VideoID, "failed to record render artifacts: "+err.Error())
		return nil
	}

	log.Info("render complete")
	return nil
}

// HandleScanArticlesTask creates intake videos for portal articles that
// do not have one yet.
func (h *TaskHandler) HandleScanArticlesTask(ctx context.Context, t *asynq.Task) error {
	logrus.Info("scanning articles without videos")

	articles, err := h.articleRepo.GetWithoutVideo()
	if err != nil {
		return fmt.Errorf("failed to list articles without videos: %w", err)
	}

	created := 0
	for _, article := range articles {
		if _, err := h.pipeline.CreateVideo(article.ID); err != nil {
			logrus.WithError(err).WithField("article_id", article.ID).Warn("failed to create video for article")
			continue
		}
		created++
	}

	logrus.WithFields(logrus.Fields{"scanned": len(articles), "created": created}).Info("article scan finished")
	return nil
}

func (h *TaskHandler) markError(videoID, message string) {
	if _, err := h.pipeline.MarkError(videoID, message); err != nil {
		logrus.WithError(err).WithField("video_id", videoID).Error("failed to mark video as errored")
	}
}
