package mysql

import (
	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
)

type UniversityRepository struct {
	DB *gorm.DB
}

func (r *UniversityRepository) Create(u *model.University) error {
	return r.DB.Create(u).Error
}

func (r *UniversityRepository) List() ([]model.University, error) {
	var list []model.University
	err := r.DB.Order("name ASC").Find(&list).Error
	return list, err
}

// Delete 先把引用该学校的用户置空再删，一个事务内完成；返回被解绑的用户数
func (r *UniversityRepository) Delete(id uint64) (int64, error) {
	var detached int64
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		var uni model.University
		if err := tx.First(&uni, id).Error; err != nil {
			return err
		}
		res := tx.Model(&model.User{}).Where("university_id = ?", id).Update("university_id", nil)
		if res.Error != nil {
			return res.Error
		}
		detached = res.RowsAffected
		return tx.Delete(&model.University{}, id).Error
	})
	return detached, err
}
