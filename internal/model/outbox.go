package model

import "time"

// ModerationOutbox 审核动作流水表，异步投递到 kafka
type ModerationOutbox struct {
	ID         uint64 `gorm:"primaryKey"`
	Action     string `gorm:"size:32;not null"` // approve_application / reject_report / ...
	ActorID    uint64 `gorm:"not null"`
	TargetKind string `gorm:"size:16;not null"` // application / report / user
	TargetID   uint64 `gorm:"not null"`
	Payload    string `gorm:"type:json;not null"`
	Status     int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry      int    `gorm:"not null;default:0"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ModerationOutbox) TableName() string { return "moderation_outbox" }
