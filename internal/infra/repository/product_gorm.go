package repository

import (
	"app/internal/domain/model"
	repo "app/internal/repository"
	"context"
	"errors"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 商品を1件取得
func (r *ProductGormRepository) FindByID(ctx context.Context, productID int64) (model.Product, error) {
	var p model.Product

	err := r.db.WithContext(ctx).
		Where("id = ?", productID).
		First(&p).Error

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// IDリストで一括取得
func (r *ProductGormRepository) FindByIDs(ctx context.Context, ids []int64) ([]model.Product, error) {
	if len(ids) == 0 {
		return []model.Product{}, nil
	}

	var products []model.Product
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&products).Error; err != nil {
		return []model.Product{}, err
	}
	return products, nil
}

type ProductMediaGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductMediaGormRepository(db *gorm.DB) *ProductMediaGormRepository {
	return &ProductMediaGormRepository{db: db}
}

// 商品IDリストで画像を一括取得（表示用）
func (r *ProductMediaGormRepository) FindByProductIDs(ctx context.Context, productIDs []int64) ([]model.ProductMedia, error) {
	if len(productIDs) == 0 {
		return []model.ProductMedia{}, nil
	}

	var medias []model.ProductMedia
	if err := r.db.WithContext(ctx).
		Where("product_id IN ?", productIDs).
		Order("id asc").
		Find(&medias).Error; err != nil {
		return []model.ProductMedia{}, err
	}
	return medias, nil
}
