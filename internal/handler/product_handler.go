package handler

import (
	"net/http"
	"strconv"

	"app/internal/usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
)

// /products のHTTP
type ProductHandler struct {
	uc *usecase.ProductUsecase
}

// DI
func NewProductHandler(uc *usecase.ProductUsecase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// 商品のルートを登録
func (h *ProductHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/products")

	g.POST("", h.create)
	g.GET("", h.list)
	g.GET("/:id", h.detail)
	// 元のAPIに合わせて更新はPOST
	g.POST("/update/:id", h.update)
	g.DELETE("/:id", h.destroy)
}

func (h *ProductHandler) create(c echo.Context) error {
	// multipartでない場合はformがnilのまま必須チェックに落ちる
	form, _ := c.MultipartForm()

	in, err := validator.ValidateCreateProduct(form)
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Create(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, http.StatusCreated, echo.Map{
		"message": "Product created successfully",
		"product": p,
	})
}

func (h *ProductHandler) list(c echo.Context) error {
	products, err := h.uc.List(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}

	return success(c, http.StatusOK, echo.Map{
		"products": products,
	})
}

func (h *ProductHandler) detail(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Get(c.Request().Context(), id)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, http.StatusOK, echo.Map{
		"product": p,
	})
}

func (h *ProductHandler) update(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return writeError(c, err)
	}

	form, _ := c.MultipartForm()

	in, err := validator.ValidateUpdateProduct(form)
	if err != nil {
		return writeError(c, err)
	}

	p, err := h.uc.Update(c.Request().Context(), id, in)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, http.StatusOK, echo.Map{
		"message": "Product updated successfully",
		"product": p,
	})
}

func (h *ProductHandler) destroy(c echo.Context) error {
	id, err := parseProductID(c)
	if err != nil {
		return writeError(c, err)
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return success(c, http.StatusOK, echo.Map{
		"message": "Product deleted successfully",
	})
}

// 数値でないIDは「存在しない商品」として扱う
func parseProductID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, usecase.NewHTTPError(http.StatusNotFound, "Product not found")
	}
	return id, nil
}
