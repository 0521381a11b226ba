package models

type RegisterRequest struct {
	Username string   `json:"username" binding:"required,min=3,max=50"`
	Email    string   `json:"email" binding:"required,email"`
	Password string   `json:"password" binding:"required,min=6"`
	Role     UserRole `json:"role,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type CreateVideoRequest struct {
	ArticleID string `json:"article_id" binding:"required,uuid"`
}

// ApproveScriptRequest carries the four narration segments. Emptiness is
// checked by the pipeline service so the caller gets a precondition
// error, not a binding error.
type ApproveScriptRequest struct {
	Hook  string `json:"hook"`
	Intro string `json:"intro"`
	Body  string `json:"body"`
	Cta   string `json:"cta"`
}

// ScriptDraft is what the script-generation collaborator hands back.
type ScriptDraft struct {
	Hook  string `json:"hook"`
	Intro string `json:"intro"`
	Body  string `json:"body"`
	Cta   string `json:"cta"`
}

// RenderArtifacts is what the render collaborator hands back.
type RenderArtifacts struct {
	AudioURL              string  `json:"audio_url"`
	VideoURL              string  `json:"video_url"`
	VideoDuration         int     `json:"video_duration"`
	ThumbnailURL          string  `json:"thumbnail_url"`
	CostEstimate          float64 `json:"cost_estimate"`
	ApiCalls              int     `json:"api_calls"`
	ProcessingTimeSeconds int     `json:"processing_time_seconds"`
}

type PublishVideoRequest struct {
	VideoTitle       string   `json:"video_title"`
	VideoDescription string   `json:"video_description"`
	VideoTags        []string `json:"video_tags"`
	YoutubeVideoID   string   `json:"youtube_video_id,omitempty"`
}

type MoveStatusRequest struct {
	Status VideoStatus `json:"status" binding:"required"`
	Notes  string      `json:"notes"`
}

type RejectVideoRequest struct {
	Reason   string      `json:"reason" binding:"required"`
	RejectTo VideoStatus `json:"reject_to" binding:"required"`
}

type VideoListParams struct {
	Status string `form:"status"`
	Page   int    `form:"page,default=1"`
	Limit  int    `form:"limit,default=20"`
}

type PipelineMetric struct {
	Status   VideoStatus `json:"status"`
	Count    int64       `json:"count"`
	AvgScore float64     `json:"avg_score"`
}

type DashboardStats struct {
	TotalVideos     int64   `json:"totalVideos"`
	PublishedVideos int64   `json:"publishedVideos"`
	PendingReview   int64   `json:"pendingReview"`
	InProduction    int64   `json:"inProduction"`
	ErrorCount      int64   `json:"errorCount"`
	AvgAiScore      int     `json:"avgAiScore"`
	TotalCost       float64 `json:"totalCost"`
	VideosThisMonth int64   `json:"videosThisMonth"`
}

type CreateAdvertiserRequest struct {
	CompanyName        string   `json:"company_name" binding:"required,min=1,max=255"`
	CompanyDescription string   `json:"company_description"`
	ContactName        string   `json:"contact_name"`
	ContactEmail       string   `json:"contact_email"`
	ContactPhone       string   `json:"contact_phone"`
	LogoURL            string   `json:"logo_url"`
	WebsiteURL         string   `json:"website_url"`
	AdType             AdType   `json:"ad_type"`
	AdVideoURL         string   `json:"ad_video_url"`
	TargetCategories   []string `json:"target_categories"`
	TargetKeywords     []string `json:"target_keywords"`
}

type UpdateAdvertiserRequest struct {
	CompanyName        *string           `json:"company_name"`
	CompanyDescription *string           `json:"company_description"`
	ContactName        *string           `json:"contact_name"`
	ContactEmail       *string           `json:"contact_email"`
	ContactPhone       *string           `json:"contact_phone"`
	LogoURL            *string           `json:"logo_url"`
	WebsiteURL         *string           `json:"website_url"`
	AdType             *AdType           `json:"ad_type"`
	AdVideoURL         *string           `json:"ad_video_url"`
	Status             *AdvertiserStatus `json:"status"`
	TargetCategories   []string          `json:"target_categories"`
	TargetKeywords     []string          `json:"target_keywords"`
}
