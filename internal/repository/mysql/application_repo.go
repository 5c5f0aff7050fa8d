package mysql

import (
	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
)

type ApplicationRepository struct {
	DB *gorm.DB
}

func (r *ApplicationRepository) Create(a *model.Application) error {
	return r.DB.Create(a).Error
}

func (r *ApplicationRepository) FindByID(id uint64) (*model.Application, error) {
	var a model.Application
	err := r.DB.First(&a, id).Error
	return &a, err
}

func (r *ApplicationRepository) FindByPair(opportunityID, userID uint64) (*model.Application, error) {
	var a model.Application
	err := r.DB.Where("opportunity_id = ? AND user_id = ?", opportunityID, userID).First(&a).Error
	return &a, err
}

// CountActive 占名额的报名数：pending + approved（rejected 释放名额）
func (r *ApplicationRepository) CountActive(opportunityID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Application{}).
		Where("opportunity_id = ? AND status IN (?, ?)", opportunityID, model.ApplicationPending, model.ApplicationApproved).
		Count(&n).Error
	return n, err
}

func (r *ApplicationRepository) CountApproved(opportunityID uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Application{}).
		Where("opportunity_id = ? AND status = ?", opportunityID, model.ApplicationApproved).
		Count(&n).Error
	return n, err
}

func (r *ApplicationRepository) UpdateStatus(id uint64, status string) error {
	return r.DB.Model(&model.Application{}).Where("id = ?", id).Update("status", status).Error
}

func (r *ApplicationRepository) ListMine(userID uint64) ([]model.ApplicationItem, error) {
	var list []model.ApplicationItem
	err := r.DB.Model(&model.Application{}).
		Select("applications.*, o.name AS item_name, o.kind AS kind, u.username AS username").
		Joins("JOIN opportunities o ON o.id = applications.opportunity_id").
		Joins("JOIN users u ON u.id = applications.user_id").
		Where("applications.user_id = ?", userID).
		Order("applications.id DESC").
		Find(&list).Error
	return list, err
}

// ListModeration ownerID 为 nil 表示 admin 全量；status 为空表示全部
func (r *ApplicationRepository) ListModeration(ownerID *uint64, status string) ([]model.ApplicationItem, error) {
	var list []model.ApplicationItem
	q := r.DB.Model(&model.Application{}).
		Select("applications.*, o.name AS item_name, o.kind AS kind, u.username AS username").
		Joins("JOIN opportunities o ON o.id = applications.opportunity_id").
		Joins("JOIN users u ON u.id = applications.user_id")
	if ownerID != nil {
		q = q.Where("o.created_by = ?", *ownerID)
	}
	if status != "" {
		q = q.Where("applications.status = ?", status)
	}
	err := q.Order("applications.id DESC").Find(&list).Error
	return list, err
}

func (r *ApplicationRepository) CountModeration(ownerID *uint64, status string) (int64, error) {
	var n int64
	q := r.DB.Model(&model.Application{}).
		Joins("JOIN opportunities o ON o.id = applications.opportunity_id")
	if ownerID != nil {
		q = q.Where("o.created_by = ?", *ownerID)
	}
	if status != "" {
		q = q.Where("applications.status = ?", status)
	}
	err := q.Count(&n).Error
	return n, err
}
