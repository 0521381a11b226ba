package repositories

import (
	"control-tower-api/models"

	"gorm.io/gorm"
)

type ArticleRepository interface {
	Create(article *models.Article) error
	GetByID(id string) (*models.Article, error)
	GetList(page, limit int) ([]models.Article, int64, error)
	GetWithoutVideo() ([]models.Article, error)
}

type articleRepository struct {
	db *gorm.DB
}

func NewArticleRepository(db *gorm.DB) ArticleRepository {
	return &articleRepository{db: db}
}

func (r *articleRepository) Create(article *models.Article) error {
	return r.db.Create(article).Error
}

func (r *articleRepository) GetByID(id string) (*models.Article, error) {
	var article models.Article
	err := r.db.First(&article, "id = ?", id).Error
	return &article, err
}

func (r *articleRepository) GetList(page, limit int) ([]models.Article, int64, error) {
	var articles []models.Article
	var total int64

	query := r.db.Model(&models.Article{})
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.Order("created_at desc").Offset(offset).Limit(limit).Find(&articles).Error

	return articles, total, err
}

// GetWithoutVideo lists articles that have no video yet; the article
// scan task feeds these into intake.
func (r *articleRepository) GetWithoutVideo() ([]models.Article, error) {
	var articles []models.Article
	err := r.db.
		Where("NOT EXISTS (SELECT 1 FROM videos WHERE videos.article_id = articles.id)").
		Order("created_at asc").
		Find(&articles).Error
	return articles, err
}
