package repository

import (
	"app/internal/domain/model"
	"context"
	"errors"
)

var ErrNotFound = errors.New("not found")

// 商品の永続化（保存・取得・削除）だけを約束。
// 画像行の入れ替えと商品削除はrepository内の1トランザクションで行う。
type ProductRepository interface {
	// 画像も一緒に全件取得（id昇順）
	ListWithImages(ctx context.Context) ([]model.Product, error)
	FindByID(ctx context.Context, id int64) (model.Product, error)
	FindByIDWithImages(ctx context.Context, id int64) (model.Product, error)

	Create(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, p model.Product) error
	// 画像行ごと削除（CASCADE）
	Delete(ctx context.Context, id int64) error

	ListImages(ctx context.Context, productID int64) ([]model.ProductImage, error)
	AddImages(ctx context.Context, productID int64, paths []string) ([]model.ProductImage, error)
	// 既存画像行を全削除して新しいパスで作り直す（1トランザクション）
	ReplaceImages(ctx context.Context, productID int64, paths []string) ([]model.ProductImage, error)
}
