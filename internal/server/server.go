package server

import (
	"net/http"

	"app/internal/config"
	"app/internal/handler"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

// New はechoを組み立てて返す
func New(
	cfg config.Config,
	productH *handler.ProductHandler,
	cartH *handler.CartHandler,
	authH *handler.AuthHandler,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	e.Use(echomw.Logger())
	e.Use(echomw.Recover())

	// フレームワーク起点のエラーもエンベロープで返す
	e.HTTPErrorHandler = httpErrorHandler

	RegisterRoutes(e, cfg, productH, cartH, authH)

	// アップロード画像の配信
	e.Static("/uploads", cfg.UploadDir)

	return e
}

func Start(e *echo.Echo, addr string) error {
	return e.Start(addr)
}

// ルート不一致は404「Endpoint not found」、それ以外はコード付きでそのまま返す
func httpErrorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	code := http.StatusInternalServerError
	message := err.Error()

	if he, ok := err.(*echo.HTTPError); ok {
		code = he.Code
		if m, ok := he.Message.(string); ok {
			message = m
		}
	}

	if code == http.StatusNotFound || code == http.StatusMethodNotAllowed {
		code = http.StatusNotFound
		message = "Endpoint not found"
	}

	_ = c.JSON(code, map[string]interface{}{
		"status":  "error",
		"message": message,
	})
}
