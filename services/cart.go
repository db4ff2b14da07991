package services

import (
	"context"
	"errors"
	"time"

	"github.com/aurelia-jewels/jewelry-api/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CartView is one displayed cart line, enriched with live product data at
// read time. It is a display shape only: checkout never trusts it.
type CartView struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImagePath string          `json:"image_path"`
	Quantity  int             `json:"quantity"`
}

// GuestLines is the slice of the guest cart the durable cart needs for
// merge-on-login.
type GuestLines interface {
	Lines(ctx context.Context, sessionID string) ([]GuestCartLine, error)
	Clear(ctx context.Context, sessionID string) error
}

// CartService owns the durable per-user cart. It presents the same
// add/remove/list contract as GuestCartService so callers do not care which
// side of authentication they are on.
type CartService struct {
	db      *gorm.DB
	catalog *CatalogService
}

func NewCartService(db *gorm.DB, catalog *CatalogService) *CartService {
	return &CartService{db: db, catalog: catalog}
}

// findOrCreateCart returns the user's cart, creating it on first use.
func (s *CartService) findOrCreateCart(tx *gorm.DB, userID string) (*models.Cart, error) {
	var cart models.Cart
	err := tx.Where("user_id = ?", userID).First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, errPersistence(err)
	}
	cart = models.Cart{UserID: userID}
	if err := tx.Create(&cart).Error; err != nil {
		return nil, errPersistence(err)
	}
	return &cart, nil
}

// AddItem adds a product to the user's cart. A repeated add for the same
// product increments the existing line's quantity instead of duplicating it.
func (s *CartService) AddItem(ctx context.Context, userID string, productID uint, quantity int) error {
	if userID == "" {
		return errInvalid("user id is required")
	}
	if quantity <= 0 {
		return errInvalid("quantity must be positive")
	}
	if _, err := s.catalog.GetProduct(ctx, productID); err != nil {
		return err
	}

	return s.transact(ctx, func(tx *gorm.DB) error {
		cart, err := s.findOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		return addLineToCart(tx, cart.CartID, productID, quantity)
	})
}

// addLineToCart performs the increment-or-insert for one (cart, product) pair.
func addLineToCart(tx *gorm.DB, cartID, productID uint, quantity int) error {
	var item models.CartItem
	err := tx.Where("cart_id = ? AND product_id = ?", cartID, productID).First(&item).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		item = models.CartItem{
			CartID:    cartID,
			ProductID: productID,
			Quantity:  quantity,
			AddedAt:   time.Now(),
		}
		if err := tx.Create(&item).Error; err != nil {
			return errPersistence(err)
		}
		return nil
	}
	if err != nil {
		return errPersistence(err)
	}
	item.Quantity += quantity
	item.AddedAt = time.Now()
	if err := tx.Save(&item).Error; err != nil {
		return errPersistence(err)
	}
	return nil
}

// RemoveItem deletes the line for a product from the user's cart.
func (s *CartService) RemoveItem(ctx context.Context, userID string, productID uint) error {
	var cart models.Cart
	if err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errNotFound("cart for user %s not found", userID)
		}
		return errPersistence(err)
	}
	result := s.db.WithContext(ctx).
		Where("cart_id = ? AND product_id = ?", cart.CartID, productID).
		Delete(&models.CartItem{})
	if result.Error != nil {
		return errPersistence(result.Error)
	}
	if result.RowsAffected == 0 {
		return errNotFound("cart item for product %d not found", productID)
	}
	return nil
}

// ListItems returns the user's cart in insertion order, enriched with live
// product data. Products deleted since they were added are skipped.
func (s *CartService) ListItems(ctx context.Context, userID string) ([]CartView, error) {
	var cart models.Cart
	err := s.db.WithContext(ctx).Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Where("user_id = ?", userID).First(&cart).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return []CartView{}, nil
		}
		return nil, errPersistence(err)
	}

	views := make([]CartView, 0, len(cart.Items))
	for _, item := range cart.Items {
		product, err := s.catalog.GetProduct(ctx, item.ProductID)
		if err != nil {
			if IsKind(err, KindNotFound) {
				continue
			}
			return nil, err
		}
		views = append(views, CartView{
			ProductID: product.ID,
			Name:      product.Name,
			Price:     product.Price,
			ImagePath: product.ImagePath,
			Quantity:  item.Quantity,
		})
	}
	return views, nil
}

// ClearCart deletes every line from the user's cart, used after checkout
// completion. Missing cart is not an error.
func (s *CartService) ClearCart(ctx context.Context, userID string) error {
	var cart models.Cart
	err := s.db.WithContext(ctx).Where("user_id = ?", userID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return errPersistence(err)
	}
	if err := s.db.WithContext(ctx).Where("cart_id = ?", cart.CartID).Delete(&models.CartItem{}).Error; err != nil {
		return errPersistence(err)
	}
	return nil
}

// MergeGuestCart folds a guest session's cart into the user's durable cart on
// login. Quantities are summed on product conflict. The guest cart is
// destroyed only after the merge commits; an absent guest cart is a no-op.
func (s *CartService) MergeGuestCart(ctx context.Context, guest GuestLines, sessionID, userID string) error {
	if sessionID == "" || userID == "" {
		return errInvalid("session id and user id are required")
	}
	lines, err := guest.Lines(ctx, sessionID)
	if err != nil {
		return err
	}
	if len(lines) == 0 {
		return nil
	}

	err = s.transact(ctx, func(tx *gorm.DB) error {
		cart, err := s.findOrCreateCart(tx, userID)
		if err != nil {
			return err
		}
		for _, line := range lines {
			if line.Quantity <= 0 {
				continue
			}
			if err := addLineToCart(tx, cart.CartID, line.ProductID, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	return guest.Clear(ctx, sessionID)
}

// transact runs fn in one transaction, mapping raw commit errors to the
// persistence kind while passing tagged errors through unchanged.
func (s *CartService) transact(ctx context.Context, fn func(tx *gorm.DB) error) error {
	err := s.db.WithContext(ctx).Transaction(fn)
	if err != nil && AsError(err) == nil {
		return errPersistence(err)
	}
	return err
}
