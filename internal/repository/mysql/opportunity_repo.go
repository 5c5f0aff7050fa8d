package mysql

import (
	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
)

type OpportunityRepository struct {
	DB *gorm.DB
}

func (r *OpportunityRepository) Create(o *model.Opportunity) error {
	return r.DB.Create(o).Error
}

func (r *OpportunityRepository) FindByID(id uint64) (*model.Opportunity, error) {
	var o model.Opportunity
	err := r.DB.First(&o, id).Error
	return &o, err
}

func (r *OpportunityRepository) Update(o *model.Opportunity) error {
	return r.DB.Model(&model.Opportunity{}).Where("id = ?", o.ID).Updates(map[string]any{
		"name":             o.Name,
		"description":      o.Description,
		"link":             o.Link,
		"points":           o.Points,
		"start_time":       o.StartTime,
		"end_time":         o.EndTime,
		"max_participants": o.MaxParticipants,
	}).Error
}

func (r *OpportunityRepository) Delete(id uint64) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("opportunity_id = ?", id).Delete(&model.Application{}).Error; err != nil {
			return err
		}
		if err := tx.Where("opportunity_id = ?", id).Delete(&model.Report{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Opportunity{}, id).Error
	})
}

// ListWithCounts 带实时报名数（pending+approved）的列表；kind 为空返回全部
func (r *OpportunityRepository) ListWithCounts(kind string) ([]model.OpportunityListItem, error) {
	var list []model.OpportunityListItem
	q := r.DB.Model(&model.Opportunity{}).
		Select(`opportunities.*,
			(SELECT COUNT(1) FROM applications a
			  WHERE a.opportunity_id = opportunities.id
			    AND a.status IN (?, ?)) AS applicant_count`,
			model.ApplicationPending, model.ApplicationApproved)
	if kind != "" {
		q = q.Where("kind = ?", kind)
	}
	err := q.Order("start_time IS NULL, start_time DESC, id DESC").Find(&list).Error
	return list, err
}

// CountActiveApplications 详情页用的实时计数，永远现算不缓存
func (r *OpportunityRepository) CountActiveApplications(id uint64) (int64, error) {
	var n int64
	err := r.DB.Model(&model.Application{}).
		Where("opportunity_id = ? AND status IN (?, ?)", id, model.ApplicationPending, model.ApplicationApproved).
		Count(&n).Error
	return n, err
}
