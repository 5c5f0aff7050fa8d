package service

import (
	"errors"
	"time"

	"Volunteer_Hub/internal/model"

	"gorm.io/gorm"
)

type OpportunityService struct {
	opps OpportunityStore
}

func NewOpportunityService(opps OpportunityStore) *OpportunityService {
	return &OpportunityService{opps: opps}
}

type OpportunityInput struct {
	Name            string
	Description     string
	Link            string
	Points          int64
	StartTime       *time.Time
	EndTime         *time.Time
	MaxParticipants int
}

func (s *OpportunityService) Create(p Principal, kind string, in OpportunityInput) (*model.Opportunity, error) {
	if kind != model.KindEvent && kind != model.KindTask {
		return nil, errors.New("unknown opportunity kind")
	}
	if in.Name == "" {
		return nil, errors.New("name required")
	}
	opp := &model.Opportunity{
		Kind:            kind,
		Name:            in.Name,
		Description:     in.Description,
		Points:          in.Points,
		StartTime:       in.StartTime,
		EndTime:         in.EndTime,
		MaxParticipants: in.MaxParticipants,
		CreatedBy:       p.ID,
	}
	if kind == model.KindEvent {
		opp.Link = in.Link
	}
	if err := s.opps.Create(opp); err != nil {
		return nil, err
	}
	return opp, nil
}

func (s *OpportunityService) Update(p Principal, id uint64, in OpportunityInput) (*model.Opportunity, error) {
	opp, err := s.get(id)
	if err != nil {
		return nil, err
	}
	if !Manages(p, opp) {
		return nil, ErrForbidden
	}
	if in.Name == "" {
		return nil, errors.New("name required")
	}
	opp.Name = in.Name
	opp.Description = in.Description
	opp.Points = in.Points
	opp.StartTime = in.StartTime
	opp.EndTime = in.EndTime
	opp.MaxParticipants = in.MaxParticipants
	if opp.Kind == model.KindEvent {
		opp.Link = in.Link
	}
	if err := s.opps.Update(opp); err != nil {
		return nil, err
	}
	return opp, nil
}

func (s *OpportunityService) Delete(p Principal, id uint64) error {
	opp, err := s.get(id)
	if err != nil {
		return err
	}
	if !Manages(p, opp) {
		return ErrForbidden
	}
	return s.opps.Delete(id)
}

// List kind 为空给全部，带实时报名数
func (s *OpportunityService) List(kind string) ([]model.OpportunityListItem, error) {
	if kind != "" && kind != model.KindEvent && kind != model.KindTask {
		return nil, errors.New("unknown opportunity kind")
	}
	return s.opps.ListWithCounts(kind)
}

func (s *OpportunityService) Detail(id uint64) (*model.Opportunity, int64, error) {
	opp, err := s.get(id)
	if err != nil {
		return nil, 0, err
	}
	n, err := s.opps.CountActiveApplications(id)
	if err != nil {
		return nil, 0, err
	}
	return opp, n, nil
}

func (s *OpportunityService) get(id uint64) (*model.Opportunity, error) {
	opp, err := s.opps.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return opp, nil
}
