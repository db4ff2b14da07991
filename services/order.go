package services

import (
	"context"
	"crypto/rand"
	"errors"
	"math/big"
	"time"

	"github.com/aurelia-jewels/jewelry-api/models"
	"gorm.io/gorm"
)

// BuyerInfo identifies the buyer of an order. UserID is nil for guest
// checkout; contact fields come from the authenticated user or from
// guest-supplied form input.
type BuyerInfo struct {
	UserID          *string `json:"user_id,omitempty"`
	FirstName       string  `json:"first_name"`
	LastName        string  `json:"last_name"`
	Email           string  `json:"email"`
	Phone           string  `json:"phone"`
	ShippingAddress string  `json:"shipping_address"`
}

// OrderService persists finalized orders and reads them back.
type OrderService struct {
	db *gorm.DB
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// PlaceOrder writes the order header and one item per trusted line in a single
// transaction. PriceAtPurchase is frozen from the trusted list; any
// persistence failure rolls back header and items together.
func (s *OrderService) PlaceOrder(ctx context.Context, items []TrustedLineItem, buyer BuyerInfo) (uint, error) {
	if len(items) == 0 {
		return 0, errInvalid("no line items to place an order for")
	}
	if buyer.Email == "" || buyer.ShippingAddress == "" {
		return 0, errInvalid("buyer email and shipping address are required")
	}

	orderItems := make([]models.OrderItem, 0, len(items))
	for _, item := range items {
		orderItems = append(orderItems, models.OrderItem{
			ProductID:       item.ProductID,
			Quantity:        item.Quantity,
			PriceAtPurchase: item.UnitPrice,
		})
	}

	order := models.Order{
		UserID:          buyer.UserID,
		Email:           buyer.Email,
		FirstName:       buyer.FirstName,
		LastName:        buyer.LastName,
		ShippingAddress: buyer.ShippingAddress,
		Phone:           buyer.Phone,
		Status:          models.OrderStatusConfirmed,
		TrackingNumber:  generateTrackingNumber(),
		Items:           orderItems,
		CreatedAt:       time.Now(),
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&order).Error; err != nil {
			return errPersistence(err)
		}
		return nil
	})
	if err != nil {
		if AsError(err) == nil {
			return 0, errPersistence(err)
		}
		return 0, err
	}
	return order.ID, nil
}

// GetOrder returns the order header with its items.
func (s *OrderService) GetOrder(ctx context.Context, id uint) (*models.Order, error) {
	var order models.Order
	err := s.db.WithContext(ctx).Preload("Items").First(&order, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errNotFound("order with id %d not found", id)
		}
		return nil, errPersistence(err)
	}
	return &order, nil
}

// GetUserOrders returns a user's orders, newest first.
func (s *OrderService) GetUserOrders(ctx context.Context, userID string) ([]models.Order, error) {
	var orders []models.Order
	err := s.db.WithContext(ctx).
		Preload("Items").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&orders).Error
	if err != nil {
		return nil, errPersistence(err)
	}
	return orders, nil
}

// UpdateStatus applies a status transition. Only pending → confirmed exists in
// the order lifecycle; everything else is rejected.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	if status != models.OrderStatusConfirmed {
		return errInvalid("unsupported order status %q", status)
	}
	order, err := s.GetOrder(ctx, id)
	if err != nil {
		return err
	}
	if order.Status == models.OrderStatusConfirmed {
		return nil
	}
	if err := s.db.WithContext(ctx).Model(&models.Order{}).Where("id = ?", id).
		Update("status", status).Error; err != nil {
		return errPersistence(err)
	}
	return nil
}

// generateTrackingNumber returns a 12-digit buyer-facing tracking identifier.
// crypto/rand keeps collision probability negligible; a leading nonzero digit
// keeps the displayed length stable.
func generateTrackingNumber() string {
	const digits = "0123456789"
	buf := make([]byte, 12)
	for i := range buf {
		max := int64(10)
		min := int64(0)
		if i == 0 {
			max = 9
			min = 1
		}
		n, err := rand.Int(rand.Reader, big.NewInt(max))
		if err != nil {
			panic(err) // entropy source unavailable
		}
		buf[i] = digits[min+n.Int64()]
	}
	return string(buf)
}
