package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"control-tower-api/models"
)

// Gateway talks to the publish gateway service, which holds the
// platform OAuth tokens and performs the actual uploads. It implements
// all three platform client interfaces.
type Gateway struct {
	baseURL    string
	token      string
	httpClient *http.Client
}

func NewGateway(baseURL, token string) *Gateway {
	return &Gateway{
		baseURL: baseURL,
		token:   token,
		httpClient: &http.Client{
			Timeout: 10 * time.Minute,
		},
	}
}

type uploadRequest struct {
	VideoID      string   `json:"video_id"`
	VideoURL     string   `json:"video_url"`
	ThumbnailURL string   `json:"thumbnail_url,omitempty"`
	Title        string   `json:"title,omitempty"`
	Description  string   `json:"description,omitempty"`
	Tags         []string `json:"tags,omitempty"`
	Caption      string   `json:"caption,omitempty"`
	Hashtags     []string `json:"hashtags,omitempty"`
	Message      string   `json:"message,omitempty"`
}

type uploadResponse struct {
	ExternalID string `json:"external_id"`
}

func (g *Gateway) UploadVideo(ctx context.Context, video *models.Video) (string, error) {
	return g.post(ctx, "/publish/youtube", uploadRequest{
		VideoID:      video.ID,
		VideoURL:     video.VideoURL,
		ThumbnailURL: video.ThumbnailURL,
		Title:        video.VideoTitle,
		Description:  video.VideoDescription,
		Tags:         video.VideoTags,
	})
}

func (g *Gateway) PublishReel(ctx context.Context, video *models.Video, caption string, hashtags []string) (string, error) {
	return g.post(ctx, "/publish/instagram", uploadRequest{
		VideoID:  video.ID,
		VideoURL: video.VideoURL,
		Caption:  caption,
		Hashtags: hashtags,
	})
}

func (g *Gateway) PublishVideo(ctx context.Context, video *models.Video, message string) (string, error) {
	return g.post(ctx, "/publish/facebook", uploadRequest{
		VideoID:  video.ID,
		VideoURL: video.VideoURL,
		Message:  message,
	})
}

func (g *Gateway) post(ctx context.Context, path string, body uploadRequest) (string, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	if g.token != "" {
		req.Header.Set("Authorization", "Bearer "+g.token)
	}

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", models.ErrorExternalOperation{Op: "publisher", Message: err.Error()}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", models.ErrorExternalOperation{
			Op:      "publisher",
			Message: fmt.Sprintf("%s returned status %d", path, resp.StatusCode),
		}
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", models.ErrorExternalOperation{Op: "publisher", Message: "invalid response: " + err.Error()}
	}

	return out.ExternalID, nil
}
