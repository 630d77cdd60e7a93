package config

import (
	"fmt"
	"os"
)

// Configはアプリ全体の設定
type Config struct {
	Port      string // サーバーポート（8080）
	JWTSecret string // JWT署名シークレット
	UploadDir string // 画像の保存先ルート
	GoEnv     string // dev/prod
}

// Loadは環境変数
func Load() (Config, error) {
	cfg := Config{
		Port:      os.Getenv("PORT"),
		JWTSecret: os.Getenv("JWT_SECRET"),
		UploadDir: os.Getenv("UPLOAD_DIR"),
		GoEnv:     os.Getenv("GO_ENV"),
	}

	//必須チェック
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("JWT_SECRET is required")
	}
	if cfg.UploadDir == "" {
		cfg.UploadDir = "uploads"
	}
	if cfg.GoEnv == "" {
		cfg.GoEnv = "dev"
	}

	return cfg, nil
}
