package services

import (
	"context"
	"errors"

	"github.com/aurelia-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

// CatalogService is the read-only product interface consumed by the cart and
// checkout pipeline. Stock and price mutation is the stock reconciler's
// exclusive responsibility.
type CatalogService struct {
	db *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{db: db}
}

func (s *CatalogService) GetProduct(ctx context.Context, id uint) (*models.Product, error) {
	var product models.Product
	if err := s.db.WithContext(ctx).Preload("Categories").First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errProductNotFound(id)
		}
		return nil, errPersistence(err)
	}
	return &product, nil
}

func (s *CatalogService) ProductExists(ctx context.Context, id uint) (bool, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Product{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, errPersistence(err)
	}
	return count > 0, nil
}

func (s *CatalogService) ListProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := s.db.WithContext(ctx).Preload("Categories").Order("id").Find(&products).Error; err != nil {
		return nil, errPersistence(err)
	}
	return products, nil
}
