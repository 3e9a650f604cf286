package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartGormRepository(db *gorm.DB) *CartGormRepository {
	return &CartGormRepository{db: db}
}

// 顧客のカートを取得
func (r *CartGormRepository) FindByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	var cart model.Cart

	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		First(&cart).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Cart{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// カート行のFOR UPDATEロック。Tx内で同一顧客の変更を直列化する
func cartRowLock() clause.Expression {
	return clause.Locking{Strength: "UPDATE"}
}

// 同時作成用のINSERT句。ユニーク制約違反でTxをabortさせる代わりに
// DO NOTHINGで握りつぶす（負けた側はRowsAffected=0になる）
func cartInsertOnConflict() clause.Expression {
	return clause.OnConflict{
		Columns:   []clause.Column{{Name: "customer_id"}},
		DoNothing: true,
	}
}

// 顧客のカートを取得し、無ければ作成。
// Tx内で呼ばれる前提でFOR UPDATEロックを取り、同一顧客の変更を直列化する。
func (r *CartGormRepository) GetOrCreateByCustomerID(ctx context.Context, customerID int64) (model.Cart, error) {
	var cart model.Cart
	db := r.db.WithContext(ctx)

	findErr := db.
		Clauses(cartRowLock()).
		Where("customer_id = ?", customerID).
		First(&cart).Error
	if findErr == nil {
		return cart, nil
	}
	if !errors.Is(findErr, gorm.ErrRecordNotFound) {
		return model.Cart{}, findErr
	}

	// 無ければ空で作る
	now := time.Now()
	newCart := model.Cart{
		CustomerID:  customerID,
		CartItemIDs: []int64{},
		TotalPrice:  0,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	res := db.Clauses(cartInsertOnConflict()).Create(&newCart)
	if res.Error != nil {
		return model.Cart{}, res.Error
	}
	if res.RowsAffected > 0 {
		return newCart, nil
	}

	//同時作成に負けた側。勝者の行をロックして取り直す
	//（DO NOTHINGなのでTxは生きている）
	err := db.
		Clauses(cartRowLock()).
		Where("customer_id = ?", customerID).
		First(&cart).Error
	if err != nil {
		return model.Cart{}, err
	}
	return cart, nil
}

// 空のカートを新規作成。既にあればErrDuplicateCart
func (r *CartGormRepository) Create(ctx context.Context, cart model.Cart) (model.Cart, error) {
	if cart.CartItemIDs == nil {
		cart.CartItemIDs = []int64{}
	}

	res := r.db.WithContext(ctx).Clauses(cartInsertOnConflict()).Create(&cart)
	if res.Error != nil {
		return model.Cart{}, res.Error
	}
	if res.RowsAffected == 0 {
		return model.Cart{}, repo.ErrDuplicateCart
	}
	return cart, nil
}

// カート全体を保存
func (r *CartGormRepository) Save(ctx context.Context, cart model.Cart) error {
	cart.UpdatedAt = time.Now()
	return r.db.WithContext(ctx).Save(&cart).Error
}

// カート本体を削除
func (r *CartGormRepository) DeleteByID(ctx context.Context, cartID int64) error {
	return r.db.WithContext(ctx).Delete(&model.Cart{}, cartID).Error
}
