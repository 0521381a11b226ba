// Package mediaengine is the client for the media engine service, the
// external collaborator that writes scripts and renders videos. The
// pipeline only sees its results; generation itself happens out of
// process.
package mediaengine

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"control-tower-api/models"
)

type ScriptGenerator interface {
	GenerateScript(ctx context.Context, video *models.Video) (*models.ScriptDraft, error)
}

type VideoRenderer interface {
	RenderVideo(ctx context.Context, video *models.Video) (*models.RenderArtifacts, error)
}

// Client talks JSON over HTTP to the media engine. It implements both
// ScriptGenerator and VideoRenderer.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

func NewClient(baseURL, apiKey string) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			// Rendering a short can take a while.
			Timeout: 15 * time.Minute,
		},
	}
}

type scriptRequest struct {
	VideoID  string `json:"video_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	Excerpt  string `json:"excerpt"`
	Category string `json:"category,omitempty"`
}

func (c *Client) GenerateScript(ctx context.Context, video *models.Video) (*models.ScriptDraft, error) {
	req := scriptRequest{
		VideoID: video.ID,
		Title:   video.ArticleTitle,
		Content: video.ArticleContent,
		Excerpt: video.ArticleExcerpt,
	}
	if video.ArticleCategoryID != nil {
		req.Category = *video.ArticleCategoryID
	}

	var draft models.ScriptDraft
	if err := c.post(ctx, "/api/script", req, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

type renderRequest struct {
	VideoID      string `json:"video_id"`
	ScriptFull   string `json:"script_full"`
	ArticleTitle string `json:"article_title"`
	ArticleSlug  string `json:"article_slug"`
}

func (c *Client) RenderVideo(ctx context.Context, video *models.Video) (*models.RenderArtifacts, error) {
	req := renderRequest{
		VideoID:      video.ID,
		ScriptFull:   video.ScriptFull,
		ArticleTitle: video.ArticleTitle,
		ArticleSlug:  video.ArticleSlug,
	}

	var artifacts models.RenderArtifacts
	if err := c.post(ctx, "/api/render", req, &artifacts); err != nil {
		return nil, err
	}
	return &artifacts, nil
}

func (c *Client) post(ctx context.Context, path string, body, out interface{}) error {
	payload, err := json.Marshal(body)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return models.ErrorExternalOperation{Op: "media-engine", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.ErrorExternalOperation{
			Op:      "media-engine",
			Message: fmt.Sprintf("%s returned status %d", path, resp.StatusCode),
		}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return models.ErrorExternalOperation{Op: "media-engine", Message: "invalid response: " + err.Error()}
	}

	return nil
}
