package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db *gorm.DB
}

// DI
func NewProductGormRepository(db *gorm.DB) *ProductGormRepository {
	return &ProductGormRepository{db: db}
}

// 画像付きで全件取得（id昇順）
func (r *ProductGormRepository) ListWithImages(ctx context.Context) ([]model.Product, error) {
	var products []model.Product

	if err := r.db.WithContext(ctx).
		Preload("Images").
		Order("id asc").
		Find(&products).Error; err != nil {
		return []model.Product{}, err
	}

	return products, nil
}

// IDで商品を取得
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// IDで商品を画像付きで取得
func (r *ProductGormRepository) FindByIDWithImages(ctx context.Context, id int64) (model.Product, error) {
	var p model.Product
	err := r.db.WithContext(ctx).
		Preload("Images").
		First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の作成
func (r *ProductGormRepository) Create(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, err
	}
	return p, nil
}

// 商品の更新
func (r *ProductGormRepository) Update(ctx context.Context, p model.Product) error {
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", p.ID).Updates(map[string]interface{}{
		"name":  p.Name,
		"price": p.Price,
	})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// 商品削除（画像行も同じトランザクションで消す）
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", id).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&model.Product{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return repo.ErrNotFound
		}
		return nil
	})
}

// 商品の画像行を一覧取得
func (r *ProductGormRepository) ListImages(ctx context.Context, productID int64) ([]model.ProductImage, error) {
	var images []model.ProductImage

	if err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id asc").
		Find(&images).Error; err != nil {
		return []model.ProductImage{}, err
	}

	return images, nil
}

// 保存済みパスから画像行を作成
func (r *ProductGormRepository) AddImages(ctx context.Context, productID int64, paths []string) ([]model.ProductImage, error) {
	if len(paths) == 0 {
		return []model.ProductImage{}, nil
	}

	images := make([]model.ProductImage, 0, len(paths))
	for _, path := range paths {
		images = append(images, model.ProductImage{
			ProductID: productID,
			ImagePath: path,
		})
	}

	if err := r.db.WithContext(ctx).Create(&images).Error; err != nil {
		return []model.ProductImage{}, err
	}

	return images, nil
}

// 既存の画像行を全削除して作り直す
// 行の削除と作成は1トランザクション。ファイル削除は呼び出し側の責任
func (r *ProductGormRepository) ReplaceImages(ctx context.Context, productID int64, paths []string) ([]model.ProductImage, error) {
	images := make([]model.ProductImage, 0, len(paths))
	for _, path := range paths {
		images = append(images, model.ProductImage{
			ProductID: productID,
			ImagePath: path,
		})
	}

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", productID).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}

		if len(images) == 0 {
			return nil
		}
		return tx.Create(&images).Error
	})
	if err != nil {
		return []model.ProductImage{}, err
	}

	return images, nil
}
