package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
)

// JWTを発行する約束
type AccessTokenIssuer interface {
	Issue(userID int64, now time.Time) (token string, expiresAt time.Time, err error)
}

// パスワードをハッシュ化する約束
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// 入力パスワードと保存したハッシュを比べる約束
type PasswordVerifier interface {
	Verify(plain string, hashed string) bool
}

type Clock interface {
	Now() time.Time
}

type AuthUsecase struct {
	userRepo repo.UserRepository
	hasher   PasswordHasher
	verifier PasswordVerifier
	issuer   AccessTokenIssuer
	clock    Clock
}

// DI
func NewAuthUsecase(
	userRepo repo.UserRepository,
	hasher PasswordHasher,
	verifier PasswordVerifier,
	issuer AccessTokenIssuer,
	clock Clock,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo: userRepo,
		hasher:   hasher,
		verifier: verifier,
		issuer:   issuer,
		clock:    clock,
	}
}

type RegisterInput struct {
	Email    string
	Password string
}

type LoginInput struct {
	Email    string
	Password string
}

// handlerがJSONにして返す
type TokenOutput struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"`
}

// 会員登録
func (u *AuthUsecase) Register(ctx context.Context, in RegisterInput) (model.User, error) {
	email := strings.TrimSpace(in.Email)

	// email重複チェック
	existing, err := u.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "Failed to register user")
	}
	if existing != nil {
		return model.User{}, NewValidationError(map[string][]string{
			"email": {"email is already used"},
		})
	}

	hashed, err := u.hasher.Hash(in.Password)
	if err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "Failed to register user")
	}

	user := model.User{
		Email:        email,
		PasswordHash: hashed,
	}
	if err := u.userRepo.Create(ctx, &user); err != nil {
		return model.User{}, NewHTTPError(http.StatusInternalServerError, "Failed to register user")
	}

	return user, nil
}

// ログインしてアクセストークンを発行
func (u *AuthUsecase) Login(ctx context.Context, in LoginInput) (model.User, TokenOutput, error) {
	user, err := u.userRepo.FindByEmail(ctx, strings.TrimSpace(in.Email))
	if err != nil {
		return model.User{}, TokenOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to login")
	}

	// ユーザー無しもパスワード不一致も同じメッセージ
	if user == nil || !u.verifier.Verify(in.Password, user.PasswordHash) {
		return model.User{}, TokenOutput{}, NewHTTPError(http.StatusUnauthorized, "Invalid credentials")
	}

	now := u.clock.Now()
	token, expiresAt, err := u.issuer.Issue(user.ID, now)
	if err != nil {
		return model.User{}, TokenOutput{}, NewHTTPError(http.StatusInternalServerError, "Failed to login")
	}

	return *user, TokenOutput{
		AccessToken: token,
		ExpiresIn:   int(expiresAt.Sub(now).Seconds()),
	}, nil
}
