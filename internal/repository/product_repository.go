package repository

import (
	"context"

	"app/internal/domain/model"
)

// 商品の取得だけを約束。カートエンジンからは読み取り専用。
type ProductRepository interface {
	FindByID(ctx context.Context, productID int64) (model.Product, error)

	//IDリストで一括取得。存在しないIDは黙って飛ばす
	FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error)
}

// 商品画像の取得（表示用）。
type ProductMediaRepository interface {
	FindByProductIDs(ctx context.Context, productIDs []int64) ([]model.ProductMedia, error)
}
