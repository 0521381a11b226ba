package models

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type VideoStatus string

const (
	StatusIntake    VideoStatus = "intake"
	StatusScripting VideoStatus = "scripting"
	StatusRendering VideoStatus = "rendering"
	StatusReview    VideoStatus = "review"
	StatusPublished VideoStatus = "published"
	StatusError     VideoStatus = "error"
	StatusCancelled VideoStatus = "cancelled"
)

// VideoStatusOrder is the canonical stage order used by dashboards.
var VideoStatusOrder = []VideoStatus{
	StatusIntake,
	StatusScripting,
	StatusRendering,
	StatusReview,
	StatusPublished,
	StatusError,
	StatusCancelled,
}

func (s VideoStatus) Valid() bool {
	switch s {
	case StatusIntake, StatusScripting, StatusRendering, StatusReview,
		StatusPublished, StatusError, StatusCancelled:
		return true
	}
	return false
}

func (s VideoStatus) Terminal() bool {
	return s == StatusPublished || s == StatusCancelled
}

type StringList []string

type Video struct {
	ID        string `json:"id" gorm:"type:uuid;primarykey"`
	ArticleID string `json:"article_id" gorm:"type:uuid;not null;index"`

	// Article snapshot, copied at intake and never refreshed.
	ArticleTitle      string  `json:"article_title" gorm:"not null"`
	ArticleSlug       string  `json:"article_slug" gorm:"not null"`
	ArticleContent    string  `json:"article_content" gorm:"type:text"`
	ArticleExcerpt    string  `json:"article_excerpt" gorm:"type:text"`
	ArticleCategoryID *string `json:"article_category_id" gorm:"type:uuid"`

	Status  VideoStatus `json:"status" gorm:"default:'intake';index"`
	AiScore *int        `json:"ai_score"`

	// Script bundle
	ScriptHook       string     `json:"script_hook" gorm:"type:text"`
	ScriptIntro      string     `json:"script_intro" gorm:"type:text"`
	ScriptBody       string     `json:"script_body" gorm:"type:text"`
	ScriptCta        string     `json:"script_cta" gorm:"type:text"`
	ScriptFull       string     `json:"script_full" gorm:"type:text"`
	ScriptApproved   bool       `json:"script_approved" gorm:"default:false"`
	ScriptApprovedAt *time.Time `json:"script_approved_at"`
	ScriptApprovedBy *uint      `json:"script_approved_by"`

	// Production artifacts, written by the render collaborator.
	AudioURL      string `json:"audio_url"`
	VideoURL      string `json:"video_url"`
	VideoDuration *int   `json:"video_duration"`
	ThumbnailURL  string `json:"thumbnail_url"`

	// Publication metadata
	VideoTitle       string     `json:"video_title"`
	VideoDescription string     `json:"video_description" gorm:"type:text"`
	VideoTags        StringList `json:"video_tags" gorm:"serializer:json"`
	YoutubeVideoID   string     `json:"youtube_video_id"`
	PublishedAt      *time.Time `json:"published_at"`
	PublishedBy      *uint      `json:"published_by"`

	// Cost / processing metrics accumulated by collaborators.
	AiCostEstimate        float64 `json:"ai_cost_estimate" gorm:"default:0"`
	ApiCallsCount         int     `json:"api_calls_count" gorm:"default:0"`
	ProcessingTimeSeconds int     `json:"processing_time_seconds" gorm:"default:0"`

	// Failure bookkeeping
	ErrorMessage *string `json:"error_message"`
	RetryCount   int     `json:"retry_count" gorm:"default:0"`

	// Optimistic concurrency guard; bumped on every transition.
	LockVersion int `json:"-" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (v *Video) BeforeCreate(tx *gorm.DB) error {
	if v.ID == "" {
		v.ID = uuid.NewString()
	}
	return nil
}

// HasScript reports whether all four script segments are filled in.
func (v *Video) HasScript() bool {
	return strings.TrimSpace(v.ScriptHook) != "" &&
		strings.TrimSpace(v.ScriptIntro) != "" &&
		strings.TrimSpace(v.ScriptBody) != "" &&
		strings.TrimSpace(v.ScriptCta) != ""
}

// FullScript concatenates the segments in narration order.
func FullScript(hook, intro, body, cta string) string {
	return strings.Join([]string{hook, intro, body, cta}, "\n\n")
}
