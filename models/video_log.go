package models

import "time"

// Audit actions recorded in video_logs. The set is closed: services only
// write these tags, dashboards key translations off them.
const (
	ActionCreated          = "created"
	ActionScriptGenerated  = "script_generated"
	ActionScriptApproved   = "script_approved"
	ActionRenderComplete   = "render_complete"
	ActionStatusChanged    = "status_changed"
	ActionPublished        = "published"
	ActionRetried          = "retried"
	ActionRejected         = "rejected"
	ActionCancelled        = "cancelled"
	ActionError            = "error"
	ActionYoutubeUpload    = "youtube_upload"
	ActionInstagramPublish = "instagram_publish"
	ActionFacebookPublish  = "facebook_publish"
)

type JSONMap map[string]interface{}

// VideoLog is append-only: rows are never updated or deleted, the full
// history of a video is its logs ordered by created_at.
type VideoLog struct {
	ID             uint         `json:"id" gorm:"primarykey"`
	VideoID        string       `json:"video_id" gorm:"type:uuid;not null;index"`
	UserID         *uint        `json:"user_id"`
	PreviousStatus *VideoStatus `json:"previous_status"`
	NewStatus      *VideoStatus `json:"new_status"`
	Action         string       `json:"action" gorm:"not null"`
	Notes          string       `json:"notes" gorm:"type:text"`
	Metadata       JSONMap      `json:"metadata" gorm:"serializer:json"`
	CreatedAt      time.Time    `json:"created_at"`
}
