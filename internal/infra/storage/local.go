package storage

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// ローカルディスクにファイルを保存する。
// 返すパスはroot相対（例: products/xxx.jpg）。DBにはこれを保存する
type LocalStorage struct {
	root string
}

// DI
func NewLocalStorage(root string) *LocalStorage {
	return &LocalStorage{root: root}
}

// アップロードされたファイルをdir配下に保存して相対パスを返す
func (s *LocalStorage) Save(file *multipart.FileHeader, dir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Join(s.root, dir), 0o755); err != nil {
		return "", fmt.Errorf("mkdir: %w", err)
	}

	// 元のファイル名は使わない（衝突・パス注入を避ける）
	ext := strings.ToLower(filepath.Ext(file.Filename))
	name := uuid.NewString() + ext
	rel := filepath.ToSlash(filepath.Join(dir, name))

	dst, err := os.Create(filepath.Join(s.root, dir, name))
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return "", fmt.Errorf("write file: %w", err)
	}

	return rel, nil
}

// 相対パスのファイルが存在するか
func (s *LocalStorage) Exists(path string) bool {
	_, err := os.Stat(filepath.Join(s.root, filepath.FromSlash(path)))
	return err == nil
}

// 相対パスのファイルを削除
func (s *LocalStorage) Delete(path string) error {
	return os.Remove(filepath.Join(s.root, filepath.FromSlash(path)))
}
