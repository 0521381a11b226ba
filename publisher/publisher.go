// Package publisher defines the contract with the external platform
// publishers. Clients are constructed explicitly and injected, never
// held as package-level singletons, so tests can substitute fakes.
package publisher

import (
	"context"

	"control-tower-api/models"
)

// YouTubeClient uploads a finished video and returns the YouTube video id.
type YouTubeClient interface {
	UploadVideo(ctx context.Context, video *models.Video) (string, error)
}

// InstagramClient publishes a finished video as a Reel and returns the
// media id.
type InstagramClient interface {
	PublishReel(ctx context.Context, video *models.Video, caption string, hashtags []string) (string, error)
}

// FacebookClient publishes a finished video to the page and returns the
// post id.
type FacebookClient interface {
	PublishVideo(ctx context.Context, video *models.Video, message string) (string, error)
}
