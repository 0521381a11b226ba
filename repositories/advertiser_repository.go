package repositories

import (
	"control-tower-api/models"

	"gorm.io/gorm"
)

type AdvertiserRepository interface {
	Create(advertiser *models.Advertiser) error
	GetByID(id string) (*models.Advertiser, error)
	GetAll() ([]models.Advertiser, error)
	Update(advertiser *models.Advertiser) error
	Delete(id string) error
}

type advertiserRepository struct {
	db *gorm.DB
}

func NewAdvertiserRepository(db *gorm.DB) AdvertiserRepository {
	return &advertiserRepository{db: db}
}

func (r *advertiserRepository) Create(advertiser *models.Advertiser) error {
	return r.db.Create(advertiser).Error
}

func (r *advertiserRepository) GetByID(id string) (*models.Advertiser, error) {
	var advertiser models.Advertiser
	err := r.db.First(&advertiser, "id = ?", id).Error
	return &advertiser, err
}

func (r *advertiserRepository) GetAll() ([]models.Advertiser, error) {
	var advertisers []models.Advertiser
	err := r.db.Order("created_at desc").Find(&advertisers).Error
	return advertisers, err
}

func (r *advertiserRepository) Update(advertiser *models.Advertiser) error {
	return r.db.Save(advertiser).Error
}

func (r *advertiserRepository) Delete(id string) error {
	return r.db.Delete(&models.Advertiser{}, "id = ?", id).Error
}
