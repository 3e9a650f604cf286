package model

import "time"

// カート。1顧客につき1つ。
// CartItemIDsは明細IDの参照リスト（表示順を保つ）。
// TotalPriceはキャッシュで、毎回明細の合計から再計算する（差分更新はしない）。
type Cart struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	CustomerID  int64     `gorm:"not null;uniqueIndex" json:"customer_id"`
	CartItemIDs []int64   `gorm:"serializer:json;type:jsonb" json:"cart_items"`
	TotalPrice  int64     `gorm:"not null;default:0" json:"total_price"`
	CreatedAt   time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
