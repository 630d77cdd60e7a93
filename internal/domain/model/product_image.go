package model

import "time"

// image_pathはアップロードルートからの相対パス（例: products/xxx.jpg）
type ProductImage struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	ImagePath string    `gorm:"type:varchar(512);not null" json:"image_path"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}
