package repository

import (
	"context"

	"app/internal/domain/model"
)

// カート明細の永続化だけを約束。
type CartItemRepository interface {
	//(product, customer)で1件取得。無ければErrNotFound
	FindByProductAndCustomer(ctx context.Context, productID int64, customerID int64) (model.CartItem, error)

	//明細を新規作成
	Create(ctx context.Context, item model.CartItem) (model.CartItem, error)

	//数量・合計を更新
	Update(ctx context.Context, item model.CartItem) error

	//明細を削除。既に無い場合も成功扱い（冪等）
	DeleteByID(ctx context.Context, cartItemID int64) error

	//IDリストで一括取得。存在しないIDは黙って飛ばす
	//（カート側の参照リストが古くてもエラーにしない）
	FindManyByIDs(ctx context.Context, ids []int64) ([]model.CartItem, error)

	//IDリストで一括削除（アカウント削除のカスケード用）
	DeleteByIDs(ctx context.Context, ids []int64) error
}
