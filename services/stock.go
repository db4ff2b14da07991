package services

import (
	"context"
	"errors"

	"github.com/aurelia-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

// StockService applies confirmed stock decrements. It is the only component
// allowed to mutate product stock.
type StockService struct {
	db *gorm.DB
}

func NewStockService(db *gorm.DB) *StockService {
	return &StockService{db: db}
}

// ConfirmStock decrements stock for every trusted line item inside one
// transaction. Each decrement is a conditional UPDATE guarded by
// stock_quantity >= quantity; a zero affected-row count means the product is
// gone or the stock ran out since the checkout pre-check, and the whole batch
// rolls back. Two concurrent confirmations against the same last unit cannot
// both pass: the guard keeps stock_quantity from ever going negative.
func (s *StockService) ConfirmStock(ctx context.Context, items []TrustedLineItem) error {
	if len(items) == 0 {
		return errInvalid("no line items to confirm")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return errInvalid("quantity for product %d must be positive", item.ProductID)
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range items {
			result := tx.Model(&models.Product{}).
				Where("id = ? AND stock_quantity >= ?", item.ProductID, item.Quantity).
				UpdateColumn("stock_quantity", gorm.Expr("stock_quantity - ?", item.Quantity))
			if result.Error != nil {
				return errPersistence(result.Error)
			}
			if result.RowsAffected == 0 {
				var product models.Product
				if err := tx.First(&product, item.ProductID).Error; err != nil {
					if errors.Is(err, gorm.ErrRecordNotFound) {
						return errProductNotFound(item.ProductID)
					}
					return errPersistence(err)
				}
				return errInsufficientStock(item.ProductID, item.Quantity, product.StockQuantity)
			}
		}
		return nil
	})
	if err != nil && AsError(err) == nil {
		return errPersistence(err)
	}
	return err
}
