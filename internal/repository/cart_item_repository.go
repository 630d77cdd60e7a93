package repository

import (
	"app/internal/domain/model"
	"context"
)

type CartItemRepository interface {
	// 同一(user, product)は数量加算。DBのON CONFLICTで原子的に行う
	Upsert(ctx context.Context, userID int64, productID int64, addQty int64) (model.CartItem, error)
	// 商品と画像もプリロードして返す
	ListByUserID(ctx context.Context, userID int64) ([]model.CartItem, error)
}
