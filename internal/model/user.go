package model

import "time"

const (
	RoleAdmin     = "admin"
	RoleOrganizer = "organizer"
	RoleVolunteer = "volunteer"
)

type User struct {
	ID            uint64 `gorm:"primaryKey"`
	Username      string `gorm:"uniqueIndex;size:32;not null"`
	Password      string `gorm:"size:255;not null"`
	Email         string `gorm:"size:64"`
	Role          string `gorm:"size:16;not null;default:'volunteer'"` // admin / organizer / volunteer
	IsBlocked     bool   `gorm:"not null;default:false"`
	WarningsCount int    `gorm:"not null;default:0"`
	LastWarningAt *time.Time
	FullName      string `gorm:"size:128"`
	GroupName     string `gorm:"size:64"`
	Faculty       string `gorm:"size:128"`
	Age           *int
	UniversityID  *uint64 `gorm:"index"`
	EducationText string  `gorm:"type:text"`
	BioText       string  `gorm:"type:text"`
	Points        int64   `gorm:"not null;default:0"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Subscriber 邮件订阅开关，按用户一行
type Subscriber struct {
	UserID       uint64 `gorm:"primaryKey"`
	IsSubscribed bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (Subscriber) TableName() string { return "subscribers" }
