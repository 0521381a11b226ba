package tasks

import (
	"encoding/json"

	"github.com/hibiken/asynq"
)

const (
	TypeGenerateScript = "video:generate_script"
	TypeRenderVideo    = "video:render"
	TypeScanArticles   = "articles:scan"
)

type GenerateScriptTaskPayload struct {
	VideoID string
}

func NewGenerateScriptTask(videoID string) (*asynq.Task, error) {
	payload, err := json.Marshal(GenerateScriptTaskPayload{VideoID: videoID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeGenerateScript, payload), nil
}

type RenderVideoTaskPayload struct {
	VideoID string
}

func NewRenderVideoTask(videoID string) (*asynq.Task, error) {
	payload, err := json.Marshal(RenderVideoTaskPayload{VideoID: videoID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeRenderVideo, payload), nil
}

func NewScanArticlesTask() (*asynq.Task, error) {
	return asynq.NewTask(TypeScanArticles, nil), nil
}
