package mysql

import (
	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
)

type ReportRepository struct {
	DB *gorm.DB
}

func (r *ReportRepository) Create(rep *model.Report) error {
	return r.DB.Create(rep).Error
}

func (r *ReportRepository) FindByID(id uint64) (*model.Report, error) {
	var rep model.Report
	err := r.DB.First(&rep, id).Error
	return &rep, err
}

// Award 加分只跟着 points_awarded 从 0 到 1 的那次翻转走；
// 条件 UPDATE 没改到行就说明已经发过，只归一状态不再加分。
func (r *ReportRepository) Award(id, userID uint64, points int64) (bool, error) {
	var awarded bool
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Report{}).
			Where("id = ? AND points_awarded = ?", id, false).
			Updates(map[string]any{"status": model.ReportAccepted, "points_awarded": true})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 1 {
			awarded = true
			return tx.Model(&model.User{}).
				Where("id = ?", userID).
				UpdateColumn("points", gorm.Expr("points + ?", points)).Error
		}
		// 重复确认：状态归一到 accepted，已经是 accepted 的不再写
		return tx.Model(&model.Report{}).
			Where("id = ? AND status <> ?", id, model.ReportAccepted).
			Update("status", model.ReportAccepted).Error
	})
	return awarded, err
}

func (r *ReportRepository) SetStatus(id uint64, status string) error {
	return r.DB.Model(&model.Report{}).Where("id = ?", id).Update("status", status).Error
}

// ClearMedia 清掉附件引用并返回旧文件名，已无附件时返回空串
func (r *ReportRepository) ClearMedia(id uint64) (string, error) {
	var old string
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var rep model.Report
		if err := tx.Select("id", "media_path").First(&rep, id).Error; err != nil {
			return err
		}
		old = rep.MediaPath
		if old == "" {
			return nil
		}
		return tx.Model(&model.Report{}).Where("id = ?", id).Update("media_path", "").Error
	})
	return old, err
}

func (r *ReportRepository) FindMediaOwner(name string) (*model.MediaOwner, error) {
	var owner model.MediaOwner
	err := r.DB.Model(&model.Report{}).
		Select("reports.user_id AS owner_id, o.created_by AS created_by").
		Joins("JOIN opportunities o ON o.id = reports.opportunity_id").
		Where("reports.media_path = ?", name).
		Take(&owner).Error
	return &owner, err
}

func (r *ReportRepository) ListMine(userID uint64) ([]model.ReportItem, error) {
	var list []model.ReportItem
	err := r.DB.Model(&model.Report{}).
		Select("reports.*, o.name AS item_name, o.kind AS kind, u.username AS username").
		Joins("JOIN opportunities o ON o.id = reports.opportunity_id").
		Joins("JOIN users u ON u.id = reports.user_id").
		Where("reports.user_id = ?", userID).
		Order("reports.id DESC").
		Find(&list).Error
	return list, err
}

// ListModeration ownerID 为 nil 表示 admin 全量；status 为空表示全部
func (r *ReportRepository) ListModeration(ownerID *uint64, status string) ([]model.ReportItem, error) {
	var list []model.ReportItem
	q := r.DB.Model(&model.Report{}).
		Select("reports.*, o.name AS item_name, o.kind AS kind, u.username AS username").
		Joins("JOIN opportunities o ON o.id = reports.opportunity_id").
		Joins("JOIN users u ON u.id = reports.user_id")
	if ownerID != nil {
		q = q.Where("o.created_by = ?", *ownerID)
	}
	if status != "" {
		q = q.Where("reports.status = ?", status)
	}
	err := q.Order("reports.id DESC").Find(&list).Error
	return list, err
}

func (r *ReportRepository) CountModeration(ownerID *uint64, status string) (int64, error) {
	var n int64
	q := r.DB.Model(&model.Report{}).
		Joins("JOIN opportunities o ON o.id = reports.opportunity_id")
	if ownerID != nil {
		q = q.Where("o.created_by = ?", *ownerID)
	}
	if status != "" {
		q = q.Where("reports.status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}
