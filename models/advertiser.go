package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AdType string

const (
	AdTypePreRoll     AdType = "pre_roll"
	AdTypeMidRoll     AdType = "mid_roll"
	AdTypeBanner      AdType = "banner"
	AdTypeSponsorship AdType = "sponsorship"
)

type AdvertiserStatus string

const (
	AdvertiserActive   AdvertiserStatus = "active"
	AdvertiserPaused   AdvertiserStatus = "paused"
	AdvertiserInactive AdvertiserStatus = "inactive"
)

type Advertiser struct {
	ID                 string           `json:"id" gorm:"type:uuid;primarykey"`
	CompanyName        string           `json:"company_name" gorm:"not null"`
	CompanyDescription string           `json:"company_description" gorm:"type:text"`
	ContactName        string           `json:"contact_name"`
	ContactEmail       string           `json:"contact_email"`
	ContactPhone       string           `json:"contact_phone"`
	LogoURL            string           `json:"logo_url"`
	WebsiteURL         string           `json:"website_url"`
	AdType             AdType           `json:"ad_type"`
	AdVideoURL         string           `json:"ad_video_url"`
	Status             AdvertiserStatus `json:"status" gorm:"default:'active'"`
	TargetCategories   StringList       `json:"target_categories" gorm:"serializer:json"`
	TargetKeywords     StringList       `json:"target_keywords" gorm:"serializer:json"`
	TotalImpressions   int              `json:"total_impressions" gorm:"default:0"`
	TotalClicks        int              `json:"total_clicks" gorm:"default:0"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (a *Advertiser) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}
