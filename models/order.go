package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"   // Payment session created, awaiting confirmation
	OrderStatusConfirmed OrderStatus = "confirmed" // Payment confirmed by the provider
)

type Order struct {
	ID              uint        `gorm:"primaryKey" json:"id"`
	UserID          *string     `gorm:"index" json:"user_id"` // nil for guest checkout
	Email           string      `gorm:"not null" json:"email"`
	FirstName       string      `gorm:"not null" json:"first_name"`
	LastName        string      `gorm:"not null" json:"last_name"`
	ShippingAddress string      `gorm:"not null" json:"shipping_address"`
	Phone           string      `gorm:"not null" json:"phone"`
	Status          OrderStatus `gorm:"type:VARCHAR(20);default:'pending'" json:"status"`
	TrackingNumber  string      `gorm:"not null;uniqueIndex" json:"tracking_number"`
	Items           []OrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt       time.Time   `json:"created_at"`
}

// OrderItem freezes the unit price at transaction time. PriceAtPurchase is
// never recomputed from the current Product price.
type OrderItem struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	OrderID         uint            `gorm:"index" json:"order_id"`
	ProductID       uint            `json:"product_id"`
	Quantity        int             `json:"quantity"`
	PriceAtPurchase decimal.Decimal `gorm:"type:decimal(12,2)" json:"price_at_purchase"`
}
