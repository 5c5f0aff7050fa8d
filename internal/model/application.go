package model

import "time"

// 报名状态，闭集
const (
	ApplicationPending  = "pending"
	ApplicationApproved = "approved"
	ApplicationRejected = "rejected"
)

type Application struct {
	ID                  uint64 `gorm:"primaryKey"`
	OpportunityID       uint64 `gorm:"not null;index;uniqueIndex:uk_application_opp_user"`
	UserID              uint64 `gorm:"not null;index;uniqueIndex:uk_application_opp_user"`
	NeedsRelease        bool   `gorm:"not null;default:false"`
	NeedsVolunteerHours bool   `gorm:"not null;default:false"`
	Status              string `gorm:"size:16;not null;default:'pending';index"`
	CreatedAt           time.Time
	UpdatedAt           time.Time
}
