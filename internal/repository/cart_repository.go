package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
)

var ErrNotFound = errors.New("not found")

// 1顧客1カートの重複作成
var ErrDuplicateCart = errors.New("cart already exists")

// カート集約の永続化だけを約束。
type CartRepository interface {
	//顧客のカートを1件取得。無ければErrNotFound
	FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error)

	//顧客のカートを取得し、無ければ空で作成。
	//トランザクション内ではFOR UPDATEで行をロックし、
	//同一顧客の変更を直列化する
	GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Cart, error)

	//空のカートを新規作成。既にあればErrDuplicateCart
	Create(ctx context.Context, cart model.Cart) (model.Cart, error)

	//カート全体を保存（last-write-wins）
	Save(ctx context.Context, cart model.Cart) error

	//カート本体を削除
	DeleteByID(ctx context.Context, cartID int64) error
}
