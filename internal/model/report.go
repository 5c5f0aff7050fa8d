package model

import "time"

// 报告状态，闭集
const (
	ReportPending  = "pending"
	ReportAccepted = "accepted"
	ReportRejected = "rejected"
)

type Report struct {
	ID            uint64 `gorm:"primaryKey"`
	OpportunityID uint64 `gorm:"not null;index;uniqueIndex:uk_report_opp_user"`
	UserID        uint64 `gorm:"not null;index;uniqueIndex:uk_report_opp_user"`
	Text          string `gorm:"type:text"`
	MediaPath     string `gorm:"size:255"`
	Status        string `gorm:"size:16;not null;default:'pending';index"`
	PointsAwarded bool   `gorm:"not null;default:false"` // 加分只发生在 false -> true 翻转那一次
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
