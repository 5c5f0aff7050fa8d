package service

import "Volunteer_Hub/internal/model"

// 存储接口按服务切分；mysql 包里的仓储是生产实现，
// 测试用内存假实现。未命中约定返回 gorm.ErrRecordNotFound，
// 唯一键冲突约定返回 gorm.ErrDuplicatedKey。

type UserStore interface {
	Create(u *model.User) error
	FindByID(id uint64) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	UpdatePassword(u *model.User, hash string) error
	UpdateVolunteerProfile(id uint64, fullName string, age *int, groupName, faculty string, universityID *uint64) error
	UpdateOrganizerProfile(id uint64, fullName string, age *int, education, bio string) error
	Search(q string, limit int) ([]model.User, error)
	AddWarning(id uint64) (*model.User, error)
	SetBlocked(id uint64, blocked bool) error
	UpdateRole(id uint64, role string) error
	CountActiveAdmins() (int64, error)
	SetSubscribed(userID uint64, on bool) error
	IsSubscribed(userID uint64) (bool, error)
}

type OpportunityStore interface {
	Create(o *model.Opportunity) error
	FindByID(id uint64) (*model.Opportunity, error)
	Update(o *model.Opportunity) error
	Delete(id uint64) error
	ListWithCounts(kind string) ([]model.OpportunityListItem, error)
	CountActiveApplications(id uint64) (int64, error)
}

type ApplicationStore interface {
	Create(a *model.Application) error
	FindByID(id uint64) (*model.Application, error)
	FindByPair(opportunityID, userID uint64) (*model.Application, error)
	CountActive(opportunityID uint64) (int64, error)
	CountApproved(opportunityID uint64) (int64, error)
	UpdateStatus(id uint64, status string) error
	ListMine(userID uint64) ([]model.ApplicationItem, error)
	ListModeration(ownerID *uint64, status string) ([]model.ApplicationItem, error)
	CountModeration(ownerID *uint64, status string) (int64, error)
}

type ReportStore interface {
	Create(r *model.Report) error
	FindByID(id uint64) (*model.Report, error)
	Award(id, userID uint64, points int64) (bool, error)
	SetStatus(id uint64, status string) error
	ClearMedia(id uint64) (string, error)
	FindMediaOwner(name string) (*model.MediaOwner, error)
	ListMine(userID uint64) ([]model.ReportItem, error)
	ListModeration(ownerID *uint64, status string) ([]model.ReportItem, error)
	CountModeration(ownerID *uint64, status string) (int64, error)
}

type UniversityStore interface {
	Create(u *model.University) error
	List() ([]model.University, error)
	Delete(id uint64) (int64, error)
}

type OutboxStore interface {
	Insert(ob *model.ModerationOutbox) error
}

type SessionStore interface {
	Save(userID uint64, token string) error
	Delete(userID uint64) error
}

// MediaRemover 文件删除是尽力而为，失败不升级为业务失败
type MediaRemover interface {
	Remove(name string) error
}

// Notifier 审核结果通知，同样尽力而为
type Notifier interface {
	ApplicationDecided(to *model.User, opp *model.Opportunity, decision string) error
}
