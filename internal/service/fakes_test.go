package service

import (
	"sync"
	"time"

	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
)

// 内存假实现，约定和 mysql 仓储一致：
// 未命中返回 gorm.ErrRecordNotFound，唯一键冲突返回 gorm.ErrDuplicatedKey。

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint64
	users  map[uint64]*model.User
	subs   map[uint64]bool
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint64]*model.User{}, subs: map[uint64]bool{}}
}

func (s *fakeUserStore) Create(u *model.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.Username == u.Username {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.users[u.ID] = &cp
	return nil
}

func (s *fakeUserStore) FindByID(id uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) FindByUsername(username string) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeUserStore) UpdatePassword(u *model.User, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	stored, ok := s.users[u.ID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	stored.Password = hash
	return nil
}

func (s *fakeUserStore) UpdateVolunteerProfile(id uint64, fullName string, age *int, groupName, faculty string, universityID *uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.FullName, u.Age, u.GroupName, u.Faculty, u.UniversityID = fullName, age, groupName, faculty, universityID
	return nil
}

func (s *fakeUserStore) UpdateOrganizerProfile(id uint64, fullName string, age *int, education, bio string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.FullName, u.Age, u.EducationText, u.BioText = fullName, age, education, bio
	return nil
}

func (s *fakeUserStore) Search(q string, limit int) ([]model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.User
	for _, u := range s.users {
		out = append(out, *u)
		if len(out) >= limit {
			break
		}
	}
	return out, nil
}

func (s *fakeUserStore) AddWarning(id uint64) (*model.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	u.WarningsCount++
	now := time.Now()
	u.LastWarningAt = &now
	if u.WarningsCount >= 3 {
		u.IsBlocked = true
	}
	cp := *u
	return &cp, nil
}

func (s *fakeUserStore) SetBlocked(id uint64, blocked bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.IsBlocked = blocked
	return nil
}

func (s *fakeUserStore) UpdateRole(id uint64, role string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	u.Role = role
	return nil
}

func (s *fakeUserStore) CountActiveAdmins() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, u := range s.users {
		if u.Role == model.RoleAdmin && !u.IsBlocked {
			n++
		}
	}
	return n, nil
}

func (s *fakeUserStore) SetSubscribed(userID uint64, on bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs[userID] = on
	return nil
}

func (s *fakeUserStore) IsSubscribed(userID uint64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subs[userID], nil
}

func (s *fakeUserStore) points(id uint64) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[id].Points
}

type fakeOpportunityStore struct {
	mu     sync.Mutex
	nextID uint64
	opps   map[uint64]*model.Opportunity
	apps   *fakeApplicationStore
}

func newFakeOpportunityStore() *fakeOpportunityStore {
	return &fakeOpportunityStore{opps: map[uint64]*model.Opportunity{}}
}

func (s *fakeOpportunityStore) Create(o *model.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	o.ID = s.nextID
	cp := *o
	s.opps[o.ID] = &cp
	return nil
}

func (s *fakeOpportunityStore) FindByID(id uint64) (*model.Opportunity, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.opps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *o
	return &cp, nil
}

func (s *fakeOpportunityStore) Update(o *model.Opportunity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.opps[o.ID]; !ok {
		return gorm.ErrRecordNotFound
	}
	cp := *o
	s.opps[o.ID] = &cp
	return nil
}

func (s *fakeOpportunityStore) Delete(id uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.opps[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.opps, id)
	return nil
}

func (s *fakeOpportunityStore) ListWithCounts(kind string) ([]model.OpportunityListItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.OpportunityListItem
	for _, o := range s.opps {
		if kind != "" && o.Kind != kind {
			continue
		}
		item := model.OpportunityListItem{Opportunity: *o}
		if s.apps != nil {
			item.ApplicantCount, _ = s.apps.CountActive(o.ID)
		}
		out = append(out, item)
	}
	return out, nil
}

func (s *fakeOpportunityStore) CountActiveApplications(id uint64) (int64, error) {
	if s.apps == nil {
		return 0, nil
	}
	return s.apps.CountActive(id)
}

type fakeApplicationStore struct {
	mu     sync.Mutex
	nextID uint64
	apps   map[uint64]*model.Application
	opps   *fakeOpportunityStore
	users  *fakeUserStore
}

func newFakeApplicationStore(opps *fakeOpportunityStore, users *fakeUserStore) *fakeApplicationStore {
	s := &fakeApplicationStore{apps: map[uint64]*model.Application{}, opps: opps, users: users}
	if opps != nil {
		opps.apps = s
	}
	return s
}

func (s *fakeApplicationStore) Create(a *model.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.apps {
		if existing.OpportunityID == a.OpportunityID && existing.UserID == a.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	a.ID = s.nextID
	cp := *a
	s.apps[a.ID] = &cp
	return nil
}

func (s *fakeApplicationStore) FindByID(id uint64) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *a
	return &cp, nil
}

func (s *fakeApplicationStore) FindByPair(opportunityID, userID uint64) (*model.Application, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.apps {
		if a.OpportunityID == opportunityID && a.UserID == userID {
			cp := *a
			return &cp, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeApplicationStore) CountActive(opportunityID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.apps {
		if a.OpportunityID == opportunityID &&
			(a.Status == model.ApplicationPending || a.Status == model.ApplicationApproved) {
			n++
		}
	}
	return n, nil
}

func (s *fakeApplicationStore) CountApproved(opportunityID uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.apps {
		if a.OpportunityID == opportunityID && a.Status == model.ApplicationApproved {
			n++
		}
	}
	return n, nil
}

func (s *fakeApplicationStore) UpdateStatus(id uint64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	a, ok := s.apps[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	a.Status = status
	return nil
}

func (s *fakeApplicationStore) ListMine(userID uint64) ([]model.ApplicationItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ApplicationItem
	for _, a := range s.apps {
		if a.UserID == userID {
			out = append(out, s.item(a))
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) ListModeration(ownerID *uint64, status string) ([]model.ApplicationItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ApplicationItem
	for _, a := range s.apps {
		if s.visible(a, ownerID, status) {
			out = append(out, s.item(a))
		}
	}
	return out, nil
}

func (s *fakeApplicationStore) CountModeration(ownerID *uint64, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, a := range s.apps {
		if s.visible(a, ownerID, status) {
			n++
		}
	}
	return n, nil
}

func (s *fakeApplicationStore) visible(a *model.Application, ownerID *uint64, status string) bool {
	if status != "" && a.Status != status {
		return false
	}
	if ownerID == nil {
		return true
	}
	opp, err := s.opps.FindByID(a.OpportunityID)
	return err == nil && opp.CreatedBy == *ownerID
}

func (s *fakeApplicationStore) item(a *model.Application) model.ApplicationItem {
	item := model.ApplicationItem{Application: *a}
	if opp, err := s.opps.FindByID(a.OpportunityID); err == nil {
		item.ItemName, item.Kind = opp.Name, opp.Kind
	}
	if s.users != nil {
		if u, err := s.users.FindByID(a.UserID); err == nil {
			item.Username = u.Username
		}
	}
	return item
}

type fakeReportStore struct {
	mu      sync.Mutex
	nextID  uint64
	reports map[uint64]*model.Report
	opps    *fakeOpportunityStore
	users   *fakeUserStore
}

func newFakeReportStore(opps *fakeOpportunityStore, users *fakeUserStore) *fakeReportStore {
	return &fakeReportStore{reports: map[uint64]*model.Report{}, opps: opps, users: users}
}

func (s *fakeReportStore) Create(r *model.Report) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.reports {
		if existing.OpportunityID == r.OpportunityID && existing.UserID == r.UserID {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	r.ID = s.nextID
	cp := *r
	s.reports[r.ID] = &cp
	return nil
}

func (s *fakeReportStore) FindByID(id uint64) (*model.Report, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *r
	return &cp, nil
}

// Award 和生产实现同语义：加分最多一次，重复调用只归一状态
func (s *fakeReportStore) Award(id, userID uint64, points int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return false, gorm.ErrRecordNotFound
	}
	if r.PointsAwarded {
		r.Status = model.ReportAccepted
		return false, nil
	}
	r.PointsAwarded = true
	r.Status = model.ReportAccepted
	if s.users != nil {
		s.users.mu.Lock()
		if u, ok := s.users.users[userID]; ok {
			u.Points += points
		}
		s.users.mu.Unlock()
	}
	return true, nil
}

func (s *fakeReportStore) SetStatus(id uint64, status string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	r.Status = status
	return nil
}

func (s *fakeReportStore) ClearMedia(id uint64) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.reports[id]
	if !ok {
		return "", gorm.ErrRecordNotFound
	}
	name := r.MediaPath
	r.MediaPath = ""
	return name, nil
}

func (s *fakeReportStore) FindMediaOwner(name string) (*model.MediaOwner, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range s.reports {
		if r.MediaPath == name && name != "" {
			owner := &model.MediaOwner{OwnerID: r.UserID}
			if opp, err := s.opps.FindByID(r.OpportunityID); err == nil {
				owner.CreatedBy = opp.CreatedBy
			}
			return owner, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *fakeReportStore) ListMine(userID uint64) ([]model.ReportItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ReportItem
	for _, r := range s.reports {
		if r.UserID == userID {
			out = append(out, model.ReportItem{Report: *r})
		}
	}
	return out, nil
}

func (s *fakeReportStore) ListModeration(ownerID *uint64, status string) ([]model.ReportItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.ReportItem
	for _, r := range s.reports {
		if s.visible(r, ownerID, status) {
			out = append(out, model.ReportItem{Report: *r})
		}
	}
	return out, nil
}

func (s *fakeReportStore) CountModeration(ownerID *uint64, status string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var n int64
	for _, r := range s.reports {
		if s.visible(r, ownerID, status) {
			n++
		}
	}
	return n, nil
}

func (s *fakeReportStore) visible(r *model.Report, ownerID *uint64, status string) bool {
	if status != "" && r.Status != status {
		return false
	}
	if ownerID == nil {
		return true
	}
	opp, err := s.opps.FindByID(r.OpportunityID)
	return err == nil && opp.CreatedBy == *ownerID
}

type fakeUniversityStore struct {
	mu     sync.Mutex
	nextID uint64
	unis   map[uint64]*model.University
}

func newFakeUniversityStore() *fakeUniversityStore {
	return &fakeUniversityStore{unis: map[uint64]*model.University{}}
}

func (s *fakeUniversityStore) Create(u *model.University) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.unis {
		if existing.Name == u.Name {
			return gorm.ErrDuplicatedKey
		}
	}
	s.nextID++
	u.ID = s.nextID
	cp := *u
	s.unis[u.ID] = &cp
	return nil
}

func (s *fakeUniversityStore) List() ([]model.University, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []model.University
	for _, u := range s.unis {
		out = append(out, *u)
	}
	return out, nil
}

func (s *fakeUniversityStore) Delete(id uint64) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.unis[id]; !ok {
		return 0, gorm.ErrRecordNotFound
	}
	delete(s.unis, id)
	return 0, nil
}

type fakeOutboxStore struct {
	mu      sync.Mutex
	entries []model.ModerationOutbox
}

func (s *fakeOutboxStore) Insert(ob *model.ModerationOutbox) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	ob.ID = uint64(len(s.entries) + 1)
	s.entries = append(s.entries, *ob)
	return nil
}

func (s *fakeOutboxStore) actions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for _, e := range s.entries {
		out = append(out, e.Action)
	}
	return out
}

type fakeSessionStore struct {
	mu      sync.Mutex
	tokens  map[uint64]string
	deleted []uint64
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{tokens: map[uint64]string{}}
}

func (s *fakeSessionStore) Save(userID uint64, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[userID] = token
	return nil
}

func (s *fakeSessionStore) Delete(userID uint64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, userID)
	s.deleted = append(s.deleted, userID)
	return nil
}

type fakeMediaRemover struct {
	mu      sync.Mutex
	removed []string
}

func (s *fakeMediaRemover) Remove(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removed = append(s.removed, name)
	return nil
}
