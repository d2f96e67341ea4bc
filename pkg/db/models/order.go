package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Order archives an accepted order submission. The email to the shop inbox is
// the operational channel; this row is the durable record behind it.
type Order struct {
	ID            uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference     string           `gorm:"column:reference;not null;uniqueIndex"`
	CustomerName  string           `gorm:"column:customer_name;not null"`
	CustomerEmail string           `gorm:"column:customer_email;not null"`
	CustomerPhone string           `gorm:"column:customer_phone;not null"`
	Address       string           `gorm:"column:address;not null"`
	City          string           `gorm:"column:city;not null"`
	PostalCode    string           `gorm:"column:postal_code;not null"`
	Note          string           `gorm:"column:note"`
	TotalRSD      decimal.Decimal  `gorm:"column:total_rsd;type:numeric(12,2);not null"`
	TotalEUR      *decimal.Decimal `gorm:"column:total_eur;type:numeric(12,2)"`
	ItemCount     int              `gorm:"column:item_count;not null"`
	EmailSent     bool             `gorm:"column:email_sent;not null;default:false"`
	Items         []OrderItem      `gorm:"foreignKey:OrderID"`
	CreatedAt     time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt     time.Time        `gorm:"column:updated_at;autoUpdateTime"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem snapshots one cart line at submission time. Product facts are
// copied in because the catalog lives outside the database and keeps moving.
type OrderItem struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OrderID   uuid.UUID        `gorm:"column:order_id;type:uuid;not null"`
	ProductID string           `gorm:"column:product_id;not null"`
	Name      string           `gorm:"column:name;not null"`
	Slug      string           `gorm:"column:slug;not null"`
	ColorName string           `gorm:"column:color_name"`
	SizeName  string           `gorm:"column:size_name"`
	UnitRSD   *decimal.Decimal `gorm:"column:unit_rsd;type:numeric(12,2)"`
	UnitEUR   *decimal.Decimal `gorm:"column:unit_eur;type:numeric(12,2)"`
	Quantity  int              `gorm:"column:quantity;not null"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
