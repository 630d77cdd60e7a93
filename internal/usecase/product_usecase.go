package usecase

import (
	"context"
	"mime/multipart"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"

	"github.com/labstack/gommon/log"
)

// 画像ファイルの保存先の約束。
// Saveはアップロードルート相対のパスを返す
type FileStorage interface {
	Save(file *multipart.FileHeader, dir string) (string, error)
	Exists(path string) bool
	Delete(path string) error
}

// 商品画像の保存先サブディレクトリ
const productImageDir = "products"

type ProductUsecase struct {
	productRepo repo.ProductRepository
	store       FileStorage
}

// DI
func NewProductUsecase(productRepo repo.ProductRepository, store FileStorage) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		store:       store,
	}
}

// validatorが検証済みの入力
type CreateProductInput struct {
	Name   string
	Price  float64
	Images []*multipart.FileHeader
}

// nilのフィールドは変更しない
type UpdateProductInput struct {
	Name   *string
	Price  *float64
	Images []*multipart.FileHeader
}

// 商品を作成して画像を保存する
// 作成レスポンスでは画像は返さない
func (u *ProductUsecase) Create(ctx context.Context, in CreateProductInput) (model.Product, error) {
	p, err := u.productRepo.Create(ctx, model.Product{
		Name:  in.Name,
		Price: in.Price,
	})
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}

	paths, err := u.storeImages(in.Images)
	if err != nil {
		return model.Product{}, err
	}

	if _, err := u.productRepo.AddImages(ctx, p.ID, paths); err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to create product")
	}

	return p, nil
}

// 画像付きで全件取得
func (u *ProductUsecase) List(ctx context.Context) ([]model.Product, error) {
	products, err := u.productRepo.ListWithImages(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch products")
	}
	return products, nil
}

// 画像付きで1件取得
func (u *ProductUsecase) Get(ctx context.Context, id int64) (model.Product, error) {
	p, err := u.productRepo.FindByIDWithImages(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to fetch product")
	}
	return p, nil
}

// 商品の更新。画像が来たら全入れ替え（部分差し替えはしない）
func (u *ProductUsecase) Update(ctx context.Context, id int64, in UpdateProductInput) (model.Product, error) {
	p, err := u.productRepo.FindByID(ctx, id)
	if err == repo.ErrNotFound {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}

	if in.Name != nil {
		p.Name = *in.Name
	}
	if in.Price != nil {
		p.Price = *in.Price
	}

	if err := u.productRepo.Update(ctx, p); err != nil {
		if err == repo.ErrNotFound {
			return model.Product{}, NewHTTPError(http.StatusNotFound, "Product not found")
		}
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}

	if len(in.Images) > 0 {
		// 入れ替え前の行を控えておく（後でファイルを消すため）
		old, err := u.productRepo.ListImages(ctx, p.ID)
		if err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to update product")
		}

		// 新しいファイルを先に保存してから、行の入れ替えを1トランザクションで行う
		paths, err := u.storeImages(in.Images)
		if err != nil {
			return model.Product{}, err
		}

		if _, err := u.productRepo.ReplaceImages(ctx, p.ID, paths); err != nil {
			return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to update product")
		}

		// 古いファイルの削除は失敗しても処理を止めない
		u.deleteFiles(old)
	}

	out, err := u.productRepo.FindByIDWithImages(ctx, p.ID)
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "Failed to update product")
	}
	return out, nil
}

// 商品削除。行はCASCADE、ファイルは後から削除
func (u *ProductUsecase) Delete(ctx context.Context, id int64) error {
	images, err := u.productRepo.ListImages(ctx, id)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}

	err = u.productRepo.Delete(ctx, id)
	if err == repo.ErrNotFound {
		return NewHTTPError(http.StatusNotFound, "Product not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "Failed to delete product")
	}

	u.deleteFiles(images)
	return nil
}

// アップロードされた画像を全部保存してパスを返す
func (u *ProductUsecase) storeImages(files []*multipart.FileHeader) ([]string, error) {
	paths := make([]string, 0, len(files))
	for _, f := range files {
		path, err := u.store.Save(f, productImageDir)
		if err != nil {
			return nil, NewHTTPError(http.StatusInternalServerError, "Failed to store image")
		}
		paths = append(paths, path)
	}
	return paths, nil
}

// ストレージからファイルを削除。失敗はログだけ残す
func (u *ProductUsecase) deleteFiles(images []model.ProductImage) {
	for _, img := range images {
		if !u.store.Exists(img.ImagePath) {
			continue
		}
		if err := u.store.Delete(img.ImagePath); err != nil {
			log.Warnf("delete image %s: %v", img.ImagePath, err)
		}
	}
}
