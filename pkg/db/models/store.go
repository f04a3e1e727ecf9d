package models

import "time"

// Store is a physical simulator location. StoreID is the external,
// case-normalized identifier operators use everywhere; it is the primary key.
type Store struct {
	StoreID   string    `gorm:"column:store_id;primaryKey"`
	StoreName string    `gorm:"column:store_name;not null"`
	BaysCount int       `gorm:"column:bays_count;not null;default:0"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}
