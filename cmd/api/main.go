package main

import (
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/domain/model"
	"app/internal/handler"
	"app/internal/infra/db"
	infraRepo "app/internal/infra/repository"
	"app/internal/infra/storage"
	"app/internal/server"
	"app/internal/usecase"

	"github.com/golang-jwt/jwt/v4"
	"github.com/joho/godotenv"
	"github.com/labstack/gommon/log"
)

type realClock struct{}

func (c *realClock) Now() time.Time {
	return time.Now()
}

type jwtIssuer struct {
	secret    []byte
	accessTTL time.Duration
}

//アクセストークン

func (i *jwtIssuer) Issue(userID int64, now time.Time) (string, time.Time, error) {
	expiresAt := now.Add(i.accessTTL)

	claims := jwt.MapClaims{
		"sub": strconv.FormatInt(userID, 10),
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(i.secret)
	if err != nil {
		return "", time.Time{}, err
	}

	return signed, expiresAt, nil
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warnf("no .env file: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	//DB接続
	gormDB, err := db.Connect()
	if err != nil {
		panic(err)
	}

	if err := gormDB.AutoMigrate(
		&model.User{},
		&model.Product{},
		&model.ProductImage{},
		&model.CartItem{},
	); err != nil {
		panic(err)
	}

	//Repository（GORM実装）生成
	productRepo := infraRepo.NewProductGormRepository(gormDB)
	cartItemRepo := infraRepo.NewCartItemGormRepository(gormDB)
	userRepo := infraRepo.NewUserGormRepository(gormDB)

	//画像の保存先
	store := storage.NewLocalStorage(cfg.UploadDir)

	//usecaseに渡す部品
	clock := &realClock{}
	hasher := usecase.NewBcryptPasswordHasher(12)
	verifier := usecase.NewBcryptPasswordVerifier()
	issuer := &jwtIssuer{
		secret:    []byte(cfg.JWTSecret),
		accessTTL: 15 * time.Minute,
	}

	//Usecase生成
	productUC := usecase.NewProductUsecase(productRepo, store)
	cartUC := usecase.NewCartUsecase(cartItemRepo, productRepo)
	authUC := usecase.NewAuthUsecase(userRepo, hasher, verifier, issuer, clock)

	//Handler生成
	productH := handler.NewProductHandler(productUC)
	cartH := handler.NewCartHandler(cartUC)
	authH := handler.NewAuthHandler(authUC)

	//Server起動
	e := server.New(cfg, productH, cartH, authH)

	addr := cfg.Port
	if addr[0] != ':' {
		addr = ":" + addr
	}

	if err := server.Start(e, addr); err != nil {
		panic(err)
	}
}
