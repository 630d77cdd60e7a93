package repository

import (
	"context"
	"errors"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CartItemGormRepository struct {
	db *gorm.DB
}

// DI
func NewCartItemGormRepository(db *gorm.DB) *CartItemGormRepository {
	return &CartItemGormRepository{db: db}
}

// 同一(user, product)は数量加算
// (user_id, product_id)のユニークインデックス前提でON CONFLICTに任せる。
// SELECTしてからUPDATEする方式だと同時リクエストで加算が消えるため
func (r *CartItemGormRepository) Upsert(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartItem, error) {
	if addQty <= 0 {
		return model.CartItem{}, errors.New("invalid quantity")
	}

	item := model.CartItem{
		UserID:    userID,
		ProductID: productID,
		Quantity:  addQty,
	}

	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "user_id"}, {Name: "product_id"}},
			DoUpdates: clause.Assignments(map[string]interface{}{
				"quantity":   gorm.Expr("cart_items.quantity + EXCLUDED.quantity"),
				"updated_at": gorm.Expr("now()"),
			}),
		}).
		Create(&item).Error
	if err != nil {
		return model.CartItem{}, err
	}

	// 加算後の行を取り直す（Createは衝突時の最終値を返さない）
	var out model.CartItem
	err = r.db.WithContext(ctx).
		Where("user_id = ? AND product_id = ?", userID, productID).
		First(&out).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.CartItem{}, repo.ErrNotFound
	}
	if err != nil {
		return model.CartItem{}, err
	}

	return out, nil
}

// ユーザーのカート明細を商品・画像付きで一覧取得
func (r *CartItemGormRepository) ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error) {
	var items []model.CartItem

	if err := r.db.WithContext(ctx).
		Preload("Product.Images").
		Where("user_id = ?", userID).
		Order("id asc").
		Find(&items).Error; err != nil {
		return []model.CartItem{}, err
	}

	return items, nil
}
