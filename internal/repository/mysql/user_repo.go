package mysql

import (
	"time"

	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	DB *gorm.DB
}

func (r *UserRepository) Create(user *model.User) error {
	return r.DB.Create(user).Error
}

func (r *UserRepository) FindByID(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.First(&user, id).Error
	return &user, err
}

func (r *UserRepository) FindByUsername(username string) (*model.User, error) {
	var user model.User
	err := r.DB.Where("username = ?", username).First(&user).Error
	return &user, err
}

func (r *UserRepository) UpdatePassword(user *model.User, newPassword string) error {
	return r.DB.Model(user).Update("password", newPassword).Error
}

func (r *UserRepository) UpdateVolunteerProfile(id uint64, fullName string, age *int, groupName, faculty string, universityID *uint64) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Updates(map[string]any{
		"full_name":     fullName,
		"age":           age,
		"group_name":    groupName,
		"faculty":       faculty,
		"university_id": universityID,
	}).Error
}

func (r *UserRepository) UpdateOrganizerProfile(id uint64, fullName string, age *int, education, bio string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Updates(map[string]any{
		"full_name":      fullName,
		"age":            age,
		"education_text": education,
		"bio_text":       bio,
	}).Error
}

// Search 空串返回最近注册的用户
func (r *UserRepository) Search(q string, limit int) ([]model.User, error) {
	if limit <= 0 || limit > 200 {
		limit = 200
	}
	var list []model.User
	query := r.DB.Model(&model.User{})
	if q != "" {
		like := "%" + q + "%"
		query = query.Where("LOWER(username) LIKE LOWER(?) OR LOWER(COALESCE(full_name,'')) LIKE LOWER(?)", like, like)
	}
	err := query.Order("id DESC").Limit(limit).Find(&list).Error
	return list, err
}

// AddWarning 计数加一，第 3 次自动封禁
func (r *UserRepository) AddWarning(id uint64) (*model.User, error) {
	var user model.User
	err := r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&user, id).Error; err != nil {
			return err
		}
		now := time.Now()
		user.WarningsCount++
		user.LastWarningAt = &now
		if user.WarningsCount >= 3 {
			user.IsBlocked = true
		}
		return tx.Model(&model.User{}).Where("id = ?", id).Updates(map[string]any{
			"warnings_count":  user.WarningsCount,
			"last_warning_at": now,
			"is_blocked":      user.IsBlocked,
		}).Error
	})
	return &user, err
}

func (r *UserRepository) SetBlocked(id uint64, blocked bool) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("is_blocked", blocked).Error
}

func (r *UserRepository) UpdateRole(id uint64, role string) error {
	return r.DB.Model(&model.User{}).Where("id = ?", id).Update("role", role).Error
}

func (r *UserRepository) CountActiveAdmins() (int64, error) {
	var n int64
	err := r.DB.Model(&model.User{}).
		Where("role = ? AND is_blocked = ?", model.RoleAdmin, false).
		Count(&n).Error
	return n, err
}

// SetSubscribed 幂等开关：不存在则插入，存在则更新
func (r *UserRepository) SetSubscribed(userID uint64, on bool) error {
	return r.DB.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.Assignments(map[string]any{"is_subscribed": on}),
	}).Create(&model.Subscriber{UserID: userID, IsSubscribed: on}).Error
}

func (r *UserRepository) IsSubscribed(userID uint64) (bool, error) {
	var n int64
	err := r.DB.Model(&model.Subscriber{}).
		Where("user_id = ? AND is_subscribed = ?", userID, true).
		Count(&n).Error
	return n > 0, err
}
