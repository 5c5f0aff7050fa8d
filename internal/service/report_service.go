package service

import (
	"errors"
	"log"

	"Volunteer_Hub/internal/model"
	"Volunteer_Hub/internal/pkg"

	"gorm.io/gorm"
)

type ReportService struct {
	reports ReportStore
	apps    ApplicationStore
	opps    OpportunityStore
	media   MediaRemover
	audit   *AuditService
}

func NewReportService(reports ReportStore, apps ApplicationStore, opps OpportunityStore, media MediaRemover, audit *AuditService) *ReportService {
	return &ReportService{
		reports: reports,
		apps:    apps,
		opps:    opps,
		media:   media,
		audit:   audit,
	}
}

// Submit 提交报告。前置条件：本人对该活动持有已通过的报名。
// originalName 非空时生成规范化的附件文件名，真正落盘由 handler 完成。
func (s *ReportService) Submit(opportunityID uint64, p Principal, text, originalName string) (*model.Report, error) {
	app, err := s.apps.FindByPair(opportunityID, p.ID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNoApplication
		}
		return nil, err
	}
	if app.Status != model.ApplicationApproved {
		return nil, ErrApplicationNotApproved
	}

	opp, err := s.opps.FindByID(opportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	rep := &model.Report{
		OpportunityID: opportunityID,
		UserID:        p.ID,
		Text:          text,
		Status:        model.ReportPending,
	}
	if originalName != "" {
		name, err := pkg.MediaFileName(opp.Kind, opportunityID, p.ID, originalName)
		if err != nil {
			return nil, err
		}
		rep.MediaPath = name
	}

	if err := s.reports.Create(rep); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrDuplicateReport
		}
		return nil, err
	}
	return rep, nil
}

// Approve 接受报告并加分。加分最多发生一次，重复审批只归一状态；
// 返回值说明这一次有没有真的加分，调用方只拿它决定提示文案。
func (s *ReportService) Approve(reportID uint64, p Principal) (bool, error) {
	rep, opp, err := s.load(reportID)
	if err != nil {
		return false, err
	}
	if !Manages(p, opp) {
		return false, ErrForbidden
	}
	awarded, err := s.reports.Award(rep.ID, rep.UserID, opp.Points)
	if err != nil {
		return false, err
	}
	s.audit.Record(p, "approve_report", "report", rep.ID)
	return awarded, nil
}

// Reject 无条件置为 rejected。之前已接受并加过分的不回收积分。
func (s *ReportService) Reject(reportID uint64, p Principal) error {
	rep, opp, err := s.load(reportID)
	if err != nil {
		return err
	}
	if !Manages(p, opp) {
		return ErrForbidden
	}
	if err := s.reports.SetStatus(rep.ID, model.ReportRejected); err != nil {
		return err
	}
	s.audit.Record(p, "reject_report", "report", rep.ID)
	return nil
}

// DiscardMedia 附件落盘失败时的回滚：清掉引用，免得 media_path
// 指向一个从未写成的文件。只允许报告本人调用。
func (s *ReportService) DiscardMedia(reportID uint64, p Principal) error {
	rep, err := s.reports.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		return err
	}
	if rep.UserID != p.ID {
		return ErrForbidden
	}
	_, err = s.reports.ClearMedia(rep.ID)
	return err
}

// DeleteMedia 清引用并尽力删文件；没有附件时也算成功（幂等）
func (s *ReportService) DeleteMedia(reportID uint64, p Principal) error {
	rep, opp, err := s.load(reportID)
	if err != nil {
		return err
	}
	if !Manages(p, opp) {
		return ErrForbidden
	}
	name, err := s.reports.ClearMedia(rep.ID)
	if err != nil {
		return err
	}
	if name != "" && s.media != nil {
		if err := s.media.Remove(name); err != nil {
			log.Printf("media remove err: %v", err)
		}
	}
	s.audit.Record(p, "delete_report_media", "report", rep.ID)
	return nil
}

// CanDownload admin、报告本人、活动创建者三类人可以取附件
func (s *ReportService) CanDownload(name string, p Principal) (bool, error) {
	safe, err := pkg.SafeBaseName(name)
	if err != nil {
		return false, ErrNotFound
	}
	owner, err := s.reports.FindMediaOwner(safe)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, ErrNotFound
		}
		return false, err
	}
	if p.Role == model.RoleAdmin {
		return true, nil
	}
	if p.ID == owner.OwnerID {
		return true, nil
	}
	return p.Role == model.RoleOrganizer && p.ID == owner.CreatedBy, nil
}

type ReportModeration struct {
	Items  []model.ReportItem `json:"items"`
	Counts model.StatusCounts `json:"counts"`
}

func (s *ReportService) Moderation(p Principal, status string) (*ReportModeration, error) {
	var owner *uint64
	if !p.IsAdmin() {
		owner = &p.ID
	}

	items, err := s.reports.ListModeration(owner, reportStatusFilter(status))
	if err != nil {
		return nil, err
	}

	var counts model.StatusCounts
	if counts.Pending, err = s.reports.CountModeration(owner, model.ReportPending); err != nil {
		return nil, err
	}
	if counts.Approved, err = s.reports.CountModeration(owner, model.ReportAccepted); err != nil {
		return nil, err
	}
	if counts.Rejected, err = s.reports.CountModeration(owner, model.ReportRejected); err != nil {
		return nil, err
	}
	if counts.All, err = s.reports.CountModeration(owner, ""); err != nil {
		return nil, err
	}

	return &ReportModeration{Items: items, Counts: counts}, nil
}

func (s *ReportService) load(reportID uint64) (*model.Report, *model.Opportunity, error) {
	rep, err := s.reports.FindByID(reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	opp, err := s.opps.FindByID(rep.OpportunityID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil, ErrNotFound
		}
		return nil, nil, err
	}
	return rep, opp, nil
}

func reportStatusFilter(status string) string {
	switch status {
	case "approved", "accepted":
		return model.ReportAccepted
	case "rejected":
		return model.ReportRejected
	case "all":
		return ""
	default:
		return model.ReportPending
	}
}
