package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Product struct {
	ID            uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	SellerID      string          `gorm:"index" json:"seller_id"`
	Seller        User            `gorm:"foreignKey:SellerID" json:"-"`
	Name          string          `gorm:"size:100;not null" json:"name"`
	Description   string          `gorm:"size:15000" json:"description"`
	Price         decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	StockQuantity int             `gorm:"not null;default:0" json:"stock_quantity"`
	Material      string          `gorm:"size:100" json:"material"`
	Color         string          `gorm:"size:100" json:"color"`
	ImagePath     string          `gorm:"size:200" json:"image_path"`
	ImagePath2    string          `gorm:"size:200" json:"image_path2"`
	Categories    []Category      `gorm:"many2many:product_categories" json:"categories"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}
