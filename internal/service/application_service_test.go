package service

import (
	"testing"

	"Volunteer_Hub/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type appFixture struct {
	svc   *ApplicationService
	users *fakeUserStore
	opps  *fakeOpportunityStore
	apps  *fakeApplicationStore
	audit *fakeOutboxStore
}

func newAppFixture(t *testing.T) *appFixture {
	t.Helper()
	users := newFakeUserStore()
	opps := newFakeOpportunityStore()
	apps := newFakeApplicationStore(opps, users)
	outbox := &fakeOutboxStore{}
	return &appFixture{
		svc:   NewApplicationService(apps, opps, users, nil, NewAuditService(outbox)),
		users: users,
		opps:  opps,
		apps:  apps,
		audit: outbox,
	}
}

func (f *appFixture) addUser(t *testing.T, username, role string) Principal {
	t.Helper()
	u := &model.User{Username: username, Role: role}
	require.NoError(t, f.users.Create(u))
	return Principal{ID: u.ID, Role: role}
}

func (f *appFixture) addOpportunity(t *testing.T, kind string, createdBy uint64, maxParticipants int) *model.Opportunity {
	t.Helper()
	opp := &model.Opportunity{Kind: kind, Name: "beach cleanup", Points: 10, MaxParticipants: maxParticipants, CreatedBy: createdBy}
	require.NoError(t, f.opps.Create(opp))
	return opp
}

func TestApplicationSubmit(t *testing.T) {
	f := newAppFixture(t)
	org := f.addUser(t, "org", model.RoleOrganizer)
	vol := f.addUser(t, "vol", model.RoleVolunteer)
	opp := f.addOpportunity(t, model.KindEvent, org.ID, 0)

	app, err := f.svc.Submit(opp.ID, vol, true, false)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationPending, app.Status)
	assert.True(t, app.NeedsRelease)
	assert.False(t, app.NeedsVolunteerHours)

	_, err = f.svc.Submit(opp.ID, vol, false, false)
	assert.ErrorIs(t, err, ErrDuplicateApplication)

	_, err = f.svc.Submit(999, vol, false, false)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestApplicationSubmitTaskIgnoresEventFlags(t *testing.T) {
	f := newAppFixture(t)
	org := f.addUser(t, "org", model.RoleOrganizer)
	vol := f.addUser(t, "vol", model.RoleVolunteer)
	task := f.addOpportunity(t, model.KindTask, org.ID, 0)

	app, err := f.svc.Submit(task.ID, vol, true, true)
	require.NoError(t, err)
	assert.False(t, app.NeedsRelease)
	assert.False(t, app.NeedsVolunteerHours)
}

func TestApplicationCapacityOnSubmit(t *testing.T) {
	f := newAppFixture(t)
	org := f.addUser(t, "org", model.RoleOrganizer)
	a := f.addUser(t, "vol-a", model.RoleVolunteer)
	b := f.addUser(t, "vol-b", model.RoleVolunteer)
	opp := f.addOpportunity(t, model.KindEvent, org.ID, 1)

	_, err := f.svc.Submit(opp.ID, a, false, false)
	require.NoError(t, err)

	// pending 也占坑
	_, err = f.svc.Submit(opp.ID, b, false, false)
	assert.ErrorIs(t, err, ErrCapacityExceeded)
}

func TestApplicationApproveRejectFlow(t *testing.T) {
	f := newAppFixture(t)
	org := f.addUser(t, "org", model.RoleOrganizer)
	a := f.addUser(t, "vol-a", model.RoleVolunteer)
	b := f.addUser(t, "vol-b", model.RoleVolunteer)
	opp := f.addOpportunity(t, model.KindEvent, org.ID, 1)

	appA, err := f.svc.Submit(opp.ID, a, false, false)
	require.NoError(t, err)
	// 拒绝 A 释放名额后 B 才能报上
	require.NoError(t, f.svc.Approve(appA.ID, org))
	require.NoError(t, f.svc.Reject(appA.ID, org))

	appB, err := f.svc.Submit(opp.ID, b, false, false)
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(appB.ID, org))

	got, err := f.apps.FindByID(appB.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationApproved, got.Status)
	assert.Equal(t, []string{"approve_application", "reject_application", "approve_application"}, f.audit.actions())
}

func TestApplicationApproveCapacity(t *testing.T) {
	f := newAppFixture(t)
	org := f.addUser(t, "org", model.RoleOrganizer)
	a := f.addUser(t, "vol-a", model.RoleVolunteer)
	opp2 := f.addOpportunity(t, model.KindEvent, org.ID, 2)

	b := f.addUser(t, "vol-b", model.RoleVolunteer)
	c := f.addUser(t, "vol-c", model.RoleVolunteer)

	appA, err := f.svc.Submit(opp2.ID, a, false, false)
	require.NoError(t, err)
	appB, err := f.svc.Submit(opp2.ID, b, false, false)
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(appA.ID, org))
	require.NoError(t, f.svc.Approve(appB.ID, org))

	// 名额满后把 B 拒掉，C 才能进来
	require.NoError(t, f.svc.Reject(appB.ID, org))
	appC, err := f.svc.Submit(opp2.ID, c, false, false)
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(appC.ID, org))
}

func TestApplicationApproveCapacityExceeded(t *testing.T) {
	f := newAppFixture(t)
	org := f.addUser(t, "org", model.RoleOrganizer)
	a := f.addUser(t, "vol-a", model.RoleVolunteer)
	b := f.addUser(t, "vol-b", model.RoleVolunteer)
	opp := f.addOpportunity(t, model.KindEvent, org.ID, 0)

	appA, err := f.svc.Submit(opp.ID, a, false, false)
	require.NoError(t, err)
	appB, err := f.svc.Submit(opp.ID, b, false, false)
	require.NoError(t, err)

	// 收到两份报名后把名额收紧到 1：审批时重查 approved 数才会兜住
	opp.MaxParticipants = 1
	require.NoError(t, f.opps.Update(opp))

	require.NoError(t, f.svc.Approve(appA.ID, org))
	assert.ErrorIs(t, f.svc.Approve(appB.ID, org), ErrCapacityExceeded)

	// 名额没批出去，B 还是 pending
	got, err := f.apps.FindByID(appB.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ApplicationPending, got.Status)

	// 拒掉 A 释放名额后 B 能批
	require.NoError(t, f.svc.Reject(appA.ID, org))
	require.NoError(t, f.svc.Approve(appB.ID, org))
}

func TestApplicationApproveGuards(t *testing.T) {
	f := newAppFixture(t)
	org := f.addUser(t, "org", model.RoleOrganizer)
	other := f.addUser(t, "other-org", model.RoleOrganizer)
	admin := f.addUser(t, "root", model.RoleAdmin)
	vol := f.addUser(t, "vol", model.RoleVolunteer)
	opp := f.addOpportunity(t, model.KindEvent, org.ID, 0)

	app, err := f.svc.Submit(opp.ID, vol, false, false)
	require.NoError(t, err)

	// 别人创建的活动 organizer 无权审，admin 可以
	assert.ErrorIs(t, f.svc.Approve(app.ID, other), ErrForbidden)
	require.NoError(t, f.svc.Approve(app.ID, admin))

	// 已处理的不能再批
	assert.ErrorIs(t, f.svc.Approve(app.ID, org), ErrAlreadyProcessed)

	assert.ErrorIs(t, f.svc.Approve(999, org), ErrNotFound)
}

func TestApplicationModeration(t *testing.T) {
	f := newAppFixture(t)
	org := f.addUser(t, "org", model.RoleOrganizer)
	other := f.addUser(t, "other-org", model.RoleOrganizer)
	admin := f.addUser(t, "root", model.RoleAdmin)
	vol := f.addUser(t, "vol", model.RoleVolunteer)

	mine := f.addOpportunity(t, model.KindEvent, org.ID, 0)
	theirs := f.addOpportunity(t, model.KindTask, other.ID, 0)

	appMine, err := f.svc.Submit(mine.ID, vol, false, false)
	require.NoError(t, err)
	_, err = f.svc.Submit(theirs.ID, vol, false, false)
	require.NoError(t, err)
	require.NoError(t, f.svc.Approve(appMine.ID, org))

	// organizer 只看到自己创建的
	view, err := f.svc.Moderation(org, "all")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, int64(1), view.Counts.Approved)
	assert.Equal(t, int64(0), view.Counts.Pending)
	assert.Equal(t, int64(1), view.Counts.All)

	// admin 全量
	view, err = f.svc.Moderation(admin, "all")
	require.NoError(t, err)
	assert.Len(t, view.Items, 2)
	assert.Equal(t, int64(2), view.Counts.All)

	// 默认只看 pending
	view, err = f.svc.Moderation(admin, "")
	require.NoError(t, err)
	assert.Len(t, view.Items, 1)
	assert.Equal(t, model.ApplicationPending, view.Items[0].Status)
}
