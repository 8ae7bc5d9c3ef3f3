package models

import (
	"time"
)

type DishPhoto struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	DishOrderID uint      `json:"dish_order_id" gorm:"not null;index"`
	FileName    string    `json:"file_name" gorm:"not null"`
	FileSize    int64     `json:"file_size" gorm:"not null"`
	MimeType    string    `json:"mime_type" gorm:"not null"`
	StorageKey  string    `json:"storage_key" gorm:"not null"`
	PublicURL   string    `json:"public_url" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}
