package model

import "time"

// 商品画像。表示用で、カートの整合性には関与しない。
type ProductMedia struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Path      string    `gorm:"type:varchar(512);not null" json:"path"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}
