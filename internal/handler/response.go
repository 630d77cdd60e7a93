package handler

import (
	"net/http"

	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// 全エンドポイント共通の {status, ...} エンベロープ
func success(c echo.Context, code int, payload echo.Map) error {
	body := echo.Map{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	return c.JSON(code, body)
}

func fail(c echo.Context, code int, message string) error {
	return c.JSON(code, echo.Map{
		"status":  "error",
		"message": message,
	})
}

// usecaseのエラーをエンベロープに変換する
func writeError(c echo.Context, err error) error {
	if err == nil {
		return nil
	}

	if ve, ok := usecase.AsValidationError(err); ok {
		return c.JSON(http.StatusUnprocessableEntity, echo.Map{
			"status":  "error",
			"message": "Validation failed",
			"errors":  ve.Errors,
		})
	}

	if he, ok := usecase.AsHTTPError(err); ok {
		return fail(c, he.Status, he.Message)
	}

	//500
	return fail(c, http.StatusInternalServerError, err.Error())
}
