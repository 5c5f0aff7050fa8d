package mysql

import (
	"context"

	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

func (r *OutboxRepository) Insert(ob *model.ModerationOutbox) error {
	return r.DB.Create(ob).Error
}

// List 按批取待投递记录
func (r *OutboxRepository) List(ctx context.Context, batchSize int) ([]model.ModerationOutbox, error) {
	var list []model.ModerationOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

// RetryUpdate 投递失败记一次重试
func (r *OutboxRepository) RetryUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ModerationOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) SuccessUpdate(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.ModerationOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
