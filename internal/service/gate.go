package service

import "Volunteer_Hub/internal/model"

// Principal 请求主体：中间件解析一次，往下全程显式传参，不走全局状态
type Principal struct {
	ID   uint64
	Role string
}

func (p Principal) IsAdmin() bool { return p.Role == model.RoleAdmin }

// Manages admin 管全部；organizer 只管自己创建的
func Manages(p Principal, opp *model.Opportunity) bool {
	if p.Role == model.RoleAdmin {
		return true
	}
	return p.Role == model.RoleOrganizer && p.ID == opp.CreatedBy
}
