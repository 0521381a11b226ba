package services

import (
	"context"
	"strings"

	"control-tower-api/models"
	"control-tower-api/publisher"
	"control-tower-api/repositories"

	"github.com/sirupsen/logrus"
)

// defaultTags is applied when a video carries no publication tags yet.
var defaultTags = []string{"tvfacebrasil", "comunidade", "brasileiroseua"}

type PublishService interface {
	UploadToYouTube(ctx context.Context, id string, userID uint) (*models.Video, error)
	PublishToInstagram(ctx context.Context, id string, userID uint) (*models.Video, error)
	PublishToFacebook(ctx context.Context, id string, userID uint) (*models.Video, error)
}

type publishService struct {
	pipeline  PipelineService
	logRepo   repositories.VideoLogRepository
	youtube   publisher.YouTubeClient
	instagram publisher.InstagramClient
	facebook  publisher.FacebookClient
}

func NewPublishService(
	pipeline PipelineService,
	logRepo repositories.VideoLogRepository,
	youtube publisher.YouTubeClient,
	instagram publisher.InstagramClient,
	facebook publisher.FacebookClient,
) PublishService {
	return &publishService{
		pipeline:  pipeline,
		logRepo:   logRepo,
		youtube:   youtube,
		instagram: instagram,
		facebook:  facebook,
	}
}

// UploadToYouTube is the status-gating publication path: a successful
// upload moves the video to published; a failed upload is recovered
// into the error stage and the errored video is returned, not an error.
func (s *publishService) UploadToYouTube(ctx context.Context, id string, userID uint) (*models.Video, error) {
	video, err := s.pipeline.GetVideo(id)
	if err != nil {
		return nil, err
	}

	if video.Status != models.StatusReview {
		return nil, models.ErrorPrecondition{Message: "video must be in review to upload to YouTube"}
	}
	if video.VideoURL == "" {
		return nil, models.ErrorPrecondition{Message: "video has no rendered media"}
	}

	target := *video
	applyPublicationDefaults(&target)

	youtubeID, err := s.youtube.UploadVideo(ctx, &target)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"video_id": id,
			"platform": "youtube",
		}).WithError(err).Error("upload failed")
		return s.pipeline.MarkError(id, "YouTube upload failed: "+err.Error())
	}

	published, err := s.pipeline.Publish(id, models.PublishVideoRequest{
		VideoTitle:       target.VideoTitle,
		VideoDescription: target.VideoDescription,
		VideoTags:        target.VideoTags,
		YoutubeVideoID:   youtubeID,
	}, userID)
	if err != nil {
		return nil, err
	}

	s.appendLog(id, userID, models.ActionYoutubeUpload,
		"Video uploaded to YouTube. ID: "+youtubeID,
		models.JSONMap{"youtube_video_id": youtubeID})

	return published, nil
}

// PublishToInstagram is best-effort: the result is audit-logged but the
// video's pipeline status is never changed, and a failure never reverts
// a publication already recorded by the YouTube path.
func (s *publishService) PublishToInstagram(ctx context.Context, id string, userID uint) (*models.Video, error) {
	video, err := s.sideChannelTarget(id)
	if err != nil {
		return nil, err
	}

	caption := video.VideoTitle
	if caption == "" {
		caption = video.ArticleTitle
	}
	hashtags := video.VideoTags
	if len(hashtags) == 0 {
		hashtags = defaultTags
	}

	mediaID, err := s.instagram.PublishReel(ctx, video, caption, hashtags)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"video_id": id,
			"platform": "instagram",
		}).WithError(err).Error("publish failed")
		s.appendLog(id, userID, models.ActionInstagramPublish,
			"Instagram publish failed: "+err.Error(), nil)
		return nil, models.ErrorExternalOperation{Op: "instagram", Message: err.Error()}
	}

	s.appendLog(id, userID, models.ActionInstagramPublish,
		"Reel published to Instagram. Media ID: "+mediaID,
		models.JSONMap{"instagram_media_id": mediaID})

	return video, nil
}

// PublishToFacebook mirrors the Instagram side-channel semantics.
func (s *publishService) PublishToFacebook(ctx context.Context, id string, userID uint) (*models.Video, error) {
	video, err := s.sideChannelTarget(id)
	if err != nil {
		return nil, err
	}

	message := video.VideoDescription
	if message == "" {
		message = video.ArticleExcerpt
	}

	postID, err := s.facebook.PublishVideo(ctx, video, message)
	if err != nil {
		logrus.WithFields(logrus.Fields{
			"video_id": id,
			"platform": "facebook",
		}).WithError(err).Error("publish failed")
		s.appendLog(id, userID, models.ActionFacebookPublish,
			"Facebook publish failed: "+err.Error(), nil)
		return nil, models.ErrorExternalOperation{Op: "facebook", Message: err.Error()}
	}

	s.appendLog(id, userID, models.ActionFacebookPublish,
		"Video published to Facebook page. Post ID: "+postID,
		models.JSONMap{"facebook_post_id": postID})

	return video, nil
}

func (s *publishService) sideChannelTarget(id string) (*models.Video, error) {
	video, err := s.pipeline.GetVideo(id)
	if err != nil {
		return nil, err
	}

	if video.Status != models.StatusReview && video.Status != models.StatusPublished {
		return nil, models.ErrorPrecondition{Message: "video must be in review or published to post to social platforms"}
	}
	if video.VideoURL == "" {
		return nil, models.ErrorPrecondition{Message: "video has no rendered media"}
	}

	return video, nil
}

func (s *publishService) appendLog(videoID string, userID uint, action, notes string, metadata models.JSONMap) {
	entry := &models.VideoLog{
		VideoID:  videoID,
		UserID:   &userID,
		Action:   action,
		Notes:    notes,
		Metadata: metadata,
	}
	if err := s.logRepo.Create(entry); err != nil {
		logrus.WithField("video_id", videoID).WithError(err).Warn("failed to append publish log")
	}
}

func applyPublicationDefaults(video *models.Video) {
	if strings.TrimSpace(video.VideoTitle) == "" {
		video.VideoTitle = video.ArticleTitle
	}
	if strings.TrimSpace(video.VideoDescription) == "" {
		if video.ArticleExcerpt != "" {
			video.VideoDescription = video.ArticleExcerpt
		} else {
			video.VideoDescription = video.ArticleTitle
		}
	}
	if len(video.VideoTags) == 0 {
		video.VideoTags = defaultTags
	}
}
