package service

import (
	"errors"

	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
)

type AdminService struct {
	users    UserStore
	unis     UniversityStore
	sessions SessionStore
	audit    *AuditService
}

func NewAdminService(users UserStore, unis UniversityStore, sessions SessionStore, audit *AuditService) *AdminService {
	return &AdminService{
		users:    users,
		unis:     unis,
		sessions: sessions,
		audit:    audit,
	}
}

func (s *AdminService) ListUsers(q string) ([]model.User, error) {
	list, err := s.users.Search(q, 200)
	if err != nil {
		return nil, err
	}
	for i := range list {
		list[i].Password = ""
	}
	return list, nil
}

// Warn 第 3 次警告自动封禁；不能警告自己
func (s *AdminService) Warn(p Principal, targetID uint64) (*model.User, error) {
	if p.ID == targetID {
		return nil, ErrSelfModeration
	}
	if _, err := s.findUser(targetID); err != nil {
		return nil, err
	}
	user, err := s.users.AddWarning(targetID)
	if err != nil {
		return nil, err
	}
	if user.IsBlocked {
		_ = s.sessions.Delete(targetID)
	}
	s.audit.Record(p, "warn_user", "user", targetID)
	user.Password = ""
	return user, nil
}

// ToggleBlock 封禁同时踢掉会话；不能封禁自己
func (s *AdminService) ToggleBlock(p Principal, targetID uint64) (bool, error) {
	if p.ID == targetID {
		return false, ErrSelfModeration
	}
	user, err := s.findUser(targetID)
	if err != nil {
		return false, err
	}
	blocked := !user.IsBlocked
	if err := s.users.SetBlocked(targetID, blocked); err != nil {
		return false, err
	}
	if blocked {
		_ = s.sessions.Delete(targetID)
	}
	s.audit.Record(p, "toggle_block", "user", targetID)
	return blocked, nil
}

// ChangeRole 守住最后一个可用 admin：只剩一个时不允许他给自己降级
func (s *AdminService) ChangeRole(p Principal, targetID uint64, role string) error {
	if role != model.RoleAdmin && role != model.RoleOrganizer && role != model.RoleVolunteer {
		return errors.New("unknown role")
	}
	target, err := s.findUser(targetID)
	if err != nil {
		return err
	}
	if p.ID == targetID && target.Role == model.RoleAdmin && role != model.RoleAdmin {
		n, err := s.users.CountActiveAdmins()
		if err != nil {
			return err
		}
		if n <= 1 {
			return ErrLastAdmin
		}
	}
	if err := s.users.UpdateRole(targetID, role); err != nil {
		return err
	}
	s.audit.Record(p, "change_role", "user", targetID)
	return nil
}

func (s *AdminService) AddUniversity(name string) (*model.University, error) {
	if name == "" {
		return nil, errors.New("name required")
	}
	uni := &model.University{Name: name}
	if err := s.unis.Create(uni); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUniversityExists
		}
		return nil, err
	}
	return uni, nil
}

// DeleteUniversity 引用它的用户先解绑再删，返回解绑人数
func (s *AdminService) DeleteUniversity(id uint64) (int64, error) {
	detached, err := s.unis.Delete(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, ErrNotFound
		}
		return 0, err
	}
	return detached, nil
}

func (s *AdminService) ListUniversities() ([]model.University, error) {
	return s.unis.List()
}

func (s *AdminService) findUser(id uint64) (*model.User, error) {
	user, err := s.users.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
