package model

import "time"

const (
	KindEvent = "event"
	KindTask  = "task"
)

// Opportunity 志愿活动，kind 区分 event / task，工作流共用一套
type Opportunity struct {
	ID              uint64 `gorm:"primaryKey"`
	Kind            string `gorm:"size:16;not null;index:idx_kind_start"`
	Name            string `gorm:"size:200;not null"`
	Description     string `gorm:"type:text"`
	Link            string `gorm:"size:255"` // 仅 event 使用
	Points          int64  `gorm:"not null;default:0"`
	StartTime       *time.Time `gorm:"index:idx_kind_start"`
	EndTime         *time.Time
	MaxParticipants int    `gorm:"not null;default:0"` // 0 = 不限名额
	CreatedBy       uint64 `gorm:"not null;index"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func (Opportunity) TableName() string { return "opportunities" }
