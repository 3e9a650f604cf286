package repository

import (
	"context"

	"app/internal/domain/model"
)

// 顧客の保存・取得を約束
type CustomerRepository interface {
	//顧客を新規作成
	Create(ctx context.Context, customer model.Customer) (model.Customer, error)

	//user_idから顧客を1件取得。無ければErrNotFound
	FindByUserID(ctx context.Context, userID string) (model.Customer, error)

	//user_idで顧客を削除。無ければ何もしない
	DeleteByUserID(ctx context.Context, userID string) error
}
