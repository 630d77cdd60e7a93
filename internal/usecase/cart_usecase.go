package usecase

import (
	"context"
	"net/http"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

type CartUsecase struct {
	cartItemRepo repo.CartItemRepository
	productRepo  repo.ProductRepository
}

// DI
func NewCartUsecase(cartItemRepo repo.CartItemRepository, productRepo repo.ProductRepository) *CartUsecase {
	return &CartUsecase{
		cartItemRepo: cartItemRepo,
		productRepo:  productRepo,
	}
}

type AddCartInput struct {
	ProductID int64
	Quantity  int64
}

// カートに追加（同一商品は数量加算）
// 加算はDB側のupsertに任せるので、同時リクエストでも行は増えない
func (u *CartUsecase) AddToCart(ctx context.Context, userID int64, in AddCartInput) (model.CartItem, error) {
	if userID <= 0 {
		return model.CartItem{}, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	// 商品の存在チェック（Laravelのexistsルール相当）
	_, err := u.productRepo.FindByID(ctx, in.ProductID)
	if err == repo.ErrNotFound {
		return model.CartItem{}, NewValidationError(map[string][]string{
			"product_id": {"product_id does not exist"},
		})
	}
	if err != nil {
		return model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "Failed to add product to cart")
	}

	item, err := u.cartItemRepo.Upsert(ctx, userID, in.ProductID, in.Quantity)
	if err != nil {
		return model.CartItem{}, NewHTTPError(http.StatusInternalServerError, "Failed to add product to cart")
	}

	return item, nil
}

// カート一覧（商品・画像付き）
func (u *CartUsecase) ViewCart(ctx context.Context, userID int64) ([]model.CartItem, error) {
	if userID <= 0 {
		return nil, NewHTTPError(http.StatusUnauthorized, "unauthorized")
	}

	items, err := u.cartItemRepo.ListByUserID(ctx, userID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "Failed to fetch cart items")
	}

	return items, nil
}
