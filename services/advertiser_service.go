package services

import (
	"errors"

	"control-tower-api/models"
	"control-tower-api/repositories"

	"gorm.io/gorm"
)

type AdvertiserService interface {
	CreateAdvertiser(req models.CreateAdvertiserRequest) (*models.Advertiser, error)
	GetAdvertisers() ([]models.Advertiser, error)
	GetAdvertiser(id string) (*models.Advertiser, error)
	UpdateAdvertiser(id string, req models.UpdateAdvertiserRequest) (*models.Advertiser, error)
	DeleteAdvertiser(id string) error
}

type advertiserService struct {
	advertiserRepo repositories.AdvertiserRepository
}

func NewAdvertiserService(advertiserRepo repositories.AdvertiserRepository) AdvertiserService {
	return &advertiserService{advertiserRepo: advertiserRepo}
}

func (s *advertiserService) CreateAdvertiser(req models.CreateAdvertiserRequest) (*models.Advertiser, error) {
	advertiser := &models.Advertiser{
		CompanyName:        req.CompanyName,
		CompanyDescription: req.CompanyDescription,
		ContactName:        req.ContactName,
		ContactEmail:       req.ContactEmail,
		ContactPhone:       req.ContactPhone,
		LogoURL:            req.LogoURL,
		WebsiteURL:         req.WebsiteURL,
		AdType:             req.AdType,
		AdVideoURL:         req.AdVideoURL,
		Status:             models.AdvertiserActive,
		TargetCategories:   models.StringList(req.TargetCategories),
		TargetKeywords:     models.StringList(req.TargetKeywords),
	}

	if err := s.advertiserRepo.Create(advertiser); err != nil {
		return nil, err
	}

	return advertiser, nil
}

func (s *advertiserService) GetAdvertisers() ([]models.Advertiser, error) {
	return s.advertiserRepo.GetAll()
}

func (s *advertiserService) GetAdvertiser(id string) (*models.Advertiser, error) {
	advertiser, err := s.advertiserRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrorNotFound{Message: "advertiser not found"}
		}
		return nil, err
	}
	return advertiser, nil
}

func (s *advertiserService) UpdateAdvertiser(id string, req models.UpdateAdvertiserRequest) (*models.Advertiser, error) {
	advertiser, err := s.GetAdvertiser(id)
	if err != nil {
		return nil, err
	}

	if req.CompanyName != nil {
		advertiser.CompanyName = *req.CompanyName
	}
	if req.CompanyDescription != nil {
		advertiser.CompanyDescription = *req.CompanyDescription
	}
	if req.ContactName != nil {
		advertiser.ContactName = *req.ContactName
	}
	if req.ContactEmail != nil {
		advertiser.ContactEmail = *req.ContactEmail
	}
	if req.ContactPhone != nil {
		advertiser.ContactPhone = *req.ContactPhone
	}
	if req.LogoURL != nil {
		advertiser.LogoURL = *req.LogoURL
	}
	if req.WebsiteURL != nil {
		advertiser.WebsiteURL = *req.WebsiteURL
	}
	if req.AdType != nil {
		advertiser.AdType = *req.AdType
	}
	if req.AdVideoURL != nil {
		advertiser.AdVideoURL = *req.AdVideoURL
	}
	if req.Status != nil {
		advertiser.Status = *req.Status
	}
	if req.TargetCategories != nil {
		advertiser.TargetCategories = models.StringList(req.TargetCategories)
	}
	if req.TargetKeywords != nil {
		advertiser.TargetKeywords = models.StringList(req.TargetKeywords)
	}

	if err := s.advertiserRepo.Update(advertiser); err != nil {
		return nil, err
	}

	return advertiser, nil
}

func (s *advertiserService) DeleteAdvertiser(id string) error {
	if _, err := s.GetAdvertiser(id); err != nil {
		return err
	}
	return s.advertiserRepo.Delete(id)
}
