package service

import (
	"errors"
	"fmt"
	"strings"

	"Volunteer_Hub/internal/model"
	"Volunteer_Hub/internal/pkg"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type UserService struct {
	repo     UserStore
	apps     ApplicationStore
	reports  ReportStore
	unis     UniversityStore
	sessions SessionStore
}

func NewUserService(repo UserStore, apps ApplicationStore, reports ReportStore, unis UniversityStore, sessions SessionStore) *UserService {
	return &UserService{
		repo:     repo,
		apps:     apps,
		reports:  reports,
		unis:     unis,
		sessions: sessions,
	}
}

// Register 只开放 volunteer / organizer 两种角色，admin 只能由管理员改出来
func (s *UserService) Register(username, password, email, role string) error {
	username = strings.ToLower(strings.TrimSpace(username))
	if role != model.RoleVolunteer && role != model.RoleOrganizer {
		role = model.RoleVolunteer
	}
	if len(username) < 3 || len(password) < 4 {
		return errors.New("username must be at least 3 chars and password at least 4")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &model.User{
		Username: username,
		Password: string(hash),
		Email:    strings.TrimSpace(email),
		Role:     role,
	}
	if err := s.repo.Create(user); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrUsernameTaken
		}
		return err
	}
	return nil
}

func (s *UserService) Login(username, password string) (*pkg.Pair, error) {
	user, err := s.repo.FindByUsername(strings.ToLower(strings.TrimSpace(username)))
	if err != nil {
		return nil, errors.New("invalid username or password")
	}
	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return nil, errors.New("invalid username or password")
	}
	if user.IsBlocked {
		return nil, fmt.Errorf("account blocked: %w", ErrUnauthenticated)
	}

	pair, err := pkg.GeneratePair(user.ID, user.Role)
	if err != nil {
		return nil, err
	}
	if err := s.sessions.Save(user.ID, pair.AccessToken); err != nil {
		return nil, err
	}
	return pair, nil
}

func (s *UserService) Logout(userID uint64) error {
	return s.sessions.Delete(userID)
}

func (s *UserService) Refresh(refreshToken string) (*pkg.Pair, error) {
	return pkg.Refresh(refreshToken)
}

// ChangePassword 改完即作废当前会话，需要重新登录
func (s *UserService) ChangePassword(userID uint64, oldPassword, newPassword string) error {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		return err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(oldPassword)); err != nil {
		return errors.New("old password is incorrect")
	}
	if len(newPassword) < 4 {
		return errors.New("password must be at least 4 chars")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(user, string(hash)); err != nil {
		return err
	}
	return s.Logout(userID)
}

type ProfileInput struct {
	FullName     string
	Age          *int
	GroupName    string
	Faculty      string
	UniversityID *uint64
	Education    string
	Bio          string
}

// UpdateProfile 志愿者和组织者/管理员各填各的字段
func (s *UserService) UpdateProfile(p Principal, in ProfileInput) error {
	if p.Role == model.RoleVolunteer {
		return s.repo.UpdateVolunteerProfile(p.ID, in.FullName, in.Age, in.GroupName, in.Faculty, in.UniversityID)
	}
	return s.repo.UpdateOrganizerProfile(p.ID, in.FullName, in.Age, in.Education, in.Bio)
}

type ProfileView struct {
	User         *model.User             `json:"user"`
	Applications []model.ApplicationItem `json:"applications"`
	Reports      []model.ReportItem      `json:"reports"`
	Universities []model.University      `json:"universities"`
}

func (s *UserService) Profile(userID uint64) (*ProfileView, error) {
	user, err := s.repo.FindByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	user.Password = ""

	apps, err := s.apps.ListMine(userID)
	if err != nil {
		return nil, err
	}
	reps, err := s.reports.ListMine(userID)
	if err != nil {
		return nil, err
	}
	unis, err := s.unis.List()
	if err != nil {
		return nil, err
	}
	return &ProfileView{User: user, Applications: apps, Reports: reps, Universities: unis}, nil
}

func (s *UserService) SetSubscribed(userID uint64, on bool) error {
	return s.repo.SetSubscribed(userID, on)
}
