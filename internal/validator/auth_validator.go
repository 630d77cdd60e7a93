package validator

import (
	"regexp"
	"strings"

	"app/internal/usecase"
)

var emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// 会員登録の入力を検証
func ValidateRegister(email string, password string) (usecase.RegisterInput, error) {
	fe := fieldErrors{}

	email = strings.TrimSpace(email)
	if email == "" {
		fe.add("email", "email is required")
	} else if !emailRe.MatchString(email) {
		fe.add("email", "email must be a valid email address")
	}

	// パスワード最低文字数（MVP: 8）
	if password == "" {
		fe.add("password", "password is required")
	} else if len(password) < 8 {
		fe.add("password", "password must be at least 8 characters")
	}

	if len(fe) > 0 {
		return usecase.RegisterInput{}, usecase.NewValidationError(fe)
	}

	return usecase.RegisterInput{Email: email, Password: password}, nil
}

// ログインの入力を検証
func ValidateLogin(email string, password string) (usecase.LoginInput, error) {
	fe := fieldErrors{}

	email = strings.TrimSpace(email)
	if email == "" {
		fe.add("email", "email is required")
	}
	if password == "" {
		fe.add("password", "password is required")
	}

	if len(fe) > 0 {
		return usecase.LoginInput{}, usecase.NewValidationError(fe)
	}

	return usecase.LoginInput{Email: email, Password: password}, nil
}
