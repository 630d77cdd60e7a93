package handler

import (
	"net/http"

	"app/internal/usecase"
	"app/internal/validator"

	"github.com/labstack/echo/v4"
)

// /authのHTTP
type AuthHandler struct {
	uc *usecase.AuthUsecase
}

// DI
func NewAuthHandler(uc *usecase.AuthUsecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h *AuthHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/auth")

	g.POST("/register", h.register)
	g.POST("/login", h.login)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	in, err := validator.ValidateRegister(req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	user, err := h.uc.Register(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, http.StatusCreated, echo.Map{
		"message": "User registered successfully",
		"user":    user,
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "invalid body")
	}

	in, err := validator.ValidateLogin(req.Email, req.Password)
	if err != nil {
		return writeError(c, err)
	}

	user, token, err := h.uc.Login(c.Request().Context(), in)
	if err != nil {
		return writeError(c, err)
	}

	return success(c, http.StatusOK, echo.Map{
		"message": "Login successful",
		"user":    user,
		"token":   token,
	})
}
