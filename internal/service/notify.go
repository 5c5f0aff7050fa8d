package service

import (
	"Volunteer_Hub/internal/model"
	"Volunteer_Hub/internal/pkg"
)

// EmailNotifier 审核结果邮件通知
type EmailNotifier struct {
	cfg pkg.SMTPConfig
}

func NewEmailNotifier(cfg pkg.SMTPConfig) *EmailNotifier {
	return &EmailNotifier{cfg: cfg}
}

func (n *EmailNotifier) ApplicationDecided(to *model.User, opp *model.Opportunity, decision string) error {
	html := pkg.DecisionHTML(opp.Name, decision)
	return pkg.SendEmail(n.cfg, to.Email, "报名审核结果", html)
}
