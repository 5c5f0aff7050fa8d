package service

import (
	"errors"
	"log"

	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
)

type ApplicationService struct {
	apps   ApplicationStore
	opps   OpportunityStore
	users  UserStore
	notify Notifier
	audit  *AuditService
}

func NewApplicationService(apps ApplicationStore, opps OpportunityStore, users UserStore, notify Notifier, audit *AuditService) *ApplicationService {
	return &ApplicationService{
		apps:   apps,
		opps:   opps,
		users:  users,
		notify: notify,
		audit:  audit,
	}
}

// Submit 报名。名额按 pending+approved 现算；重复报名靠唯一键兜底，
// 冲突翻译成业务错误暴露出去而不是吞掉。
func (s *ApplicationService) Submit(opportunityID uint64, p Principal, needsRelease, needsHours bool) (*model.Application, error) {
	opp, err := s.opps.FindByID(opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if opp.MaxParticipants > 0 {
		n, err := s.apps.CountActive(opportunityID)
		if err != nil {
			return nil, err
		}
		if n >= int64(opp.MaxParticipants) {
			return nil, ErrCapacityExceeded
		}
	}

	app := &model.Application{
		OpportunityID: opportunityID,
		UserID:        p.ID,
		Status:        model.ApplicationPending,
	}
	// 附加需求只对 event 有意义
	if opp.Kind == model.KindEvent {
		app.NeedsRelease = needsRelease
		app.NeedsVolunteerHours = needsHours
	}

	if err := s.apps.Create(app); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateApplication
		}
		return nil, err
	}
	return app, nil
}

// Approve 审批时名额只数 approved，和报名时的检查相互独立：
// 多个 pending 竞争剩余名额时谁先批到谁占坑。
func (s *ApplicationService) Approve(applicationID uint64, p Principal) error {
	app, opp, err := s.load(applicationID)
	if err != nil {
		return err
	}
	if !Manages(p, opp) {
		return ErrForbidden
	}
	if app.Status != model.ApplicationPending {
		return ErrAlreadyProcessed
	}
	if opp.MaxParticipants > 0 {
		n, err := s.apps.CountApproved(opp.ID)
		if err != nil {
			return err
		}
		if n >= int64(opp.MaxParticipants) {
			return ErrCapacityExceeded
		}
	}
	if err := s.apps.UpdateStatus(app.ID, model.ApplicationApproved); err != nil {
		return err
	}
	s.audit.Record(p, "approve_application", "application", app.ID)
	s.notifyDecision(app, opp, model.ApplicationApproved)
	return nil
}

// Reject 不检查先前状态：已通过的报名也可以被拒（拒绝会释放名额）
func (s *ApplicationService) Reject(applicationID uint64, p Principal) error {
	app, opp, err := s.load(applicationID)
	if err != nil {
		return err
	}
	if !Manages(p, opp) {
		return ErrForbidden
	}
	if err := s.apps.UpdateStatus(app.ID, model.ApplicationRejected); err != nil {
		return err
	}
	s.audit.Record(p, "reject_application", "application", app.ID)
	s.notifyDecision(app, opp, model.ApplicationRejected)
	return nil
}

type ApplicationModeration struct {
	Items  []model.ApplicationItem `json:"items"`
	Counts model.StatusCounts      `json:"counts"`
}

// Moderation 审核列表，admin 全量、organizer 只看自己创建的；
// 列表和计数每次现查，和并发审核动作保持一致。
func (s *ApplicationService) Moderation(p Principal, status string) (*ApplicationModeration, error) {
	var owner *uint64
	if !p.IsAdmin() {
		owner = &p.ID
	}

	items, err := s.apps.ListModeration(owner, applicationStatusFilter(status))
	if err != nil {
		return nil, err
	}

	var counts model.StatusCounts
	if counts.Pending, err = s.apps.CountModeration(owner, model.ApplicationPending); err != nil {
		return nil, err
	}
	if counts.Approved, err = s.apps.CountModeration(owner, model.ApplicationApproved); err != nil {
		return nil, err
	}
	if counts.Rejected, err = s.apps.CountModeration(owner, model.ApplicationRejected); err != nil {
		return nil, err
	}
	if counts.All, err = s.apps.CountModeration(owner, ""); err != nil {
		return nil, err
	}

	return &ApplicationModeration{Items: items, Counts: counts}, nil
}

func (s *ApplicationService) load(applicationID uint64) (*model.Application, *model.Opportunity, error) {
	app, err := s.apps.FindByID(applicationID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	opp, err := s.opps.FindByID(app.OpportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return app, opp, nil
}

// 未知的过滤值按 pending 处理，"all" 代表不过滤
func applicationStatusFilter(status string) string {
	switch status {
	case "approved":
		return model.ApplicationApproved
	case "rejected":
		return model.ApplicationRejected
	case "all":
		return ""
	default:
		return model.ApplicationPending
	}
}

// 通知只发给订阅了邮件的用户，任何失败都不影响审核结果
func (s *ApplicationService) notifyDecision(app *model.Application, opp *model.Opportunity, decision string) {
	if s.notify == nil {
		return
	}
	sub, err := s.users.IsSubscribed(app.UserID)
	if err != nil || !sub {
		return
	}
	user, err := s.users.FindByID(app.UserID)
	if err != nil || user.Email == "" {
		return
	}
	if err := s.notify.ApplicationDecided(user, opp, decision); err != nil {
		log.Printf("decision email err: %v", err)
	}
}
