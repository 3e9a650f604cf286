package model

import "time"

// カートの明細。(customer_id, product_id)で一意。
// UnitPriceは最初に追加した時点の価格スナップショット（以後は同期しない）。
type CartItem struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID  int64     `gorm:"not null;uniqueIndex:idx_cart_items_product_customer" json:"product_id"`
	CustomerID int64     `gorm:"not null;uniqueIndex:idx_cart_items_product_customer" json:"customer_id"`
	Quantity   int64     `gorm:"not null" json:"quantity"`
	UnitPrice  int64     `gorm:"not null;column:unit_price" json:"unit_price"`
	TotalPrice int64     `gorm:"not null" json:"total_price"`
	CreatedAt  time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
