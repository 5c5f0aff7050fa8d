package model

import "time"

type University struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:128;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
