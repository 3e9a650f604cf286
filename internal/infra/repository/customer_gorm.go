package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type CustomerGormRepository struct {
	db *gorm.DB
}

// DI
func NewCustomerGormRepository(db *gorm.DB) *CustomerGormRepository {
	return &CustomerGormRepository{db: db}
}

// 顧客を新規作成
func (r *CustomerGormRepository) Create(ctx context.Context, customer model.Customer) (model.Customer, error) {
	now := time.Now()
	customer.CreatedAt = now
	customer.UpdatedAt = now

	if err := r.db.WithContext(ctx).Create(&customer).Error; err != nil {
		return model.Customer{}, err
	}
	return customer, nil
}

// user_idから顧客を取得
func (r *CustomerGormRepository) FindByUserID(ctx context.Context, userID string) (model.Customer, error) {
	var customer model.Customer

	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		First(&customer).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Customer{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Customer{}, err
	}
	return customer, nil
}

// user_idで顧客を削除。無くても成功
func (r *CustomerGormRepository) DeleteByUserID(ctx context.Context, userID string) error {
	return r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Delete(&model.Customer{}).Error
}
