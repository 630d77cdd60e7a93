package handler

import (
	"net/http"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

// 必須チェックのためポインタで受ける
type AddCartRequest struct {
	ProductID *int64 `json:"product_id"`
	Quantity  *int64 `json:"quantity"`
}

// /cart/add, /cart を登録。どちらも認証必須
func (h *CartHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	g := e.Group("/cart")
	g.Use(middleware.AuthJWT(cfg))

	g.POST("/add", h.addToCart)
	g.GET("", h.viewCart)
}

func (h *CartHandler) addToCart(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	var req AddCartRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	in, err := validator.ValidateAddCart(req.ProductID, req.Quantity)
	if err != nil {
		return writeError(c, err)
	}

	item, err := h.uc.AddToCart(c.Request().Context(), userID, in)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, http.StatusOK, echo.Map{
		"message":   "Product added to cart",
		"cart_item": item,
	})
}

func (h *CartHandler) viewCart(c echo.Context) error {
	userID, ok := middleware.UserIDFromContext(c)
	if !ok {
		return fail(c, http.StatusUnauthorized, "unauthorized")
	}

	items, err := h.uc.ViewCart(c.Request().Context(), userID)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, http.StatusOK, echo.Map{
		"cart_items": items,
	})
}
