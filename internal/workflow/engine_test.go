package workflow

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugar258596/experiment-server-sub001/internal/auth"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
)

// fakeStore 内存实现,行为与数据库条件更新一致
type fakeStore struct {
	mu      sync.Mutex
	seq     uint
	records map[Kind]map[uint]*Record
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[Kind]map[uint]*Record)}
}

func (s *fakeStore) FindByID(ctx context.Context, kind Kind, id uint) (*Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[kind][id]
	if !ok {
		return nil, NotFound("记录不存在")
	}
	cp := *rec
	return &cp, nil
}

func (s *fakeStore) CreatePending(ctx context.Context, kind Kind, payload interface{}) (*Record, error) {
	tpl, ok := payload.(*Record)
	if !ok {
		return nil, Invalid("记录类型不匹配")
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq++

	status := StatusPending
	if kind == KindRepairTicket {
		status = StatusReported
	}
	rec := &Record{
		ID:          s.seq,
		RequesterID: tpl.RequesterID,
		SubjectID:   tpl.SubjectID,
		Status:      status,
	}
	if s.records[kind] == nil {
		s.records[kind] = make(map[uint]*Record)
	}
	s.records[kind][rec.ID] = rec
	cp := *rec
	return &cp, nil
}

func (s *fakeStore) ConditionalUpdate(ctx context.Context, kind Kind, id uint, expected []Status, fields map[string]interface{}) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.records[kind][id]
	if !ok || !statusIn(rec.Status, expected) {
		return false, nil
	}

	if v, ok := fields["status"]; ok {
		rec.Status = Status(v.(string))
	}
	if v, ok := fields["reviewer_id"]; ok {
		reviewerID := v.(uint)
		rec.ReviewerID = &reviewerID
	}
	if v, ok := fields["reject_reason"]; ok {
		rec.RejectReason = v.(string)
	}
	return true, nil
}

// get 直接读取内部状态,绕过拷贝
func (s *fakeStore) get(kind Kind, id uint) *Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.records[kind][id]
}

// emitted 一次通知调用的快照
type emitted struct {
	UserID    uint
	Type      string
	Title     string
	Content   string
	RelatedID uint
}

type fakeNotifier struct {
	mu    sync.Mutex
	calls []emitted
	fail  bool
}

func (n *fakeNotifier) Emit(ctx context.Context, userID uint, notificationType string, title, content string, relatedID uint) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.fail {
		return errors.New("notification backend down")
	}
	n.calls = append(n.calls, emitted{
		UserID:    userID,
		Type:      notificationType,
		Title:     title,
		Content:   content,
		RelatedID: relatedID,
	})
	return nil
}

func (n *fakeNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.calls)
}

var (
	student    = auth.Caller{UserID: 1, Role: model.RoleStudent}
	otherOne   = auth.Caller{UserID: 2, Role: model.RoleStudent}
	teacher    = auth.Caller{UserID: 10, Role: model.RoleTeacher}
	admin      = auth.Caller{UserID: 20, Role: model.RoleAdmin}
	superAdmin = auth.Caller{UserID: 30, Role: model.RoleSuperAdmin}
)

func newTestEngine() (*Engine, *fakeStore, *fakeNotifier) {
	store := newFakeStore()
	notifier := &fakeNotifier{}
	return NewEngine(store, notifier, nil), store, notifier
}

func submitOne(t *testing.T, e *Engine, d Descriptor, caller auth.Caller) *Record {
	t.Helper()
	rec, err := e.Submit(context.Background(), d, caller, &Record{RequesterID: caller.UserID, SubjectID: 100})
	require.NoError(t, err)
	return rec
}

func TestSubmitCreatesPendingRecord(t *testing.T) {
	e, _, notifier := newTestEngine()

	rec := submitOne(t, e, AppointmentFlow, student)

	assert.Equal(t, StatusPending, rec.Status)
	assert.Nil(t, rec.ReviewerID)
	assert.Nil(t, rec.ReviewTime)
	assert.Empty(t, rec.RejectReason)
	// 提交不产生通知
	assert.Zero(t, notifier.count())
}

func TestSubmitRepairStartsReported(t *testing.T) {
	e, _, _ := newTestEngine()

	rec := submitOne(t, e, RepairFlow, student)

	assert.Equal(t, StatusReported, rec.Status)
}

func TestReviewApprove(t *testing.T) {
	e, store, notifier := newTestEngine()
	rec := submitOne(t, e, AppointmentFlow, student)

	out, err := e.Review(context.Background(), AppointmentFlow, rec.ID, teacher, Decision{Approve: true})
	require.NoError(t, err)

	assert.Equal(t, StatusApproved, out.Status)
	require.NotNil(t, out.ReviewerID)
	assert.Equal(t, teacher.UserID, *out.ReviewerID)
	// 审核人和审核时间总是一起写入
	require.NotNil(t, out.ReviewTime)
	assert.Equal(t, StatusApproved, store.get(KindAppointment, rec.ID).Status)

	// 恰好一条通知,发给申请人,关联到该记录
	require.Equal(t, 1, notifier.count())
	n := notifier.calls[0]
	assert.Equal(t, student.UserID, n.UserID)
	assert.Equal(t, rec.ID, n.RelatedID)
	assert.Equal(t, model.NotificationTypeReviewResult, n.Type)
}

func TestReviewRejectRequiresReason(t *testing.T) {
	e, store, notifier := newTestEngine()
	rec := submitOne(t, e, AppointmentFlow, student)

	_, err := e.Review(context.Background(), AppointmentFlow, rec.ID, teacher, Decision{Approve: false})
	assert.True(t, IsValidation(err))

	// 空白原因同样拒绝
	_, err = e.Review(context.Background(), AppointmentFlow, rec.ID, teacher, Decision{Approve: false, Reason: "   "})
	assert.True(t, IsValidation(err))

	// 记录保持待审核,没有通知
	assert.Equal(t, StatusPending, store.get(KindAppointment, rec.ID).Status)
	assert.Zero(t, notifier.count())
}

func TestReviewRejectStoresReason(t *testing.T) {
	e, store, notifier := newTestEngine()
	rec := submitOne(t, e, AppointmentFlow, student)

	out, err := e.Review(context.Background(), AppointmentFlow, rec.ID, admin, Decision{Approve: false, Reason: "时间冲突"})
	require.NoError(t, err)

	assert.Equal(t, StatusRejected, out.Status)
	assert.Equal(t, "时间冲突", out.RejectReason)
	assert.Equal(t, "时间冲突", store.get(KindAppointment, rec.ID).RejectReason)

	require.Equal(t, 1, notifier.count())
	assert.Contains(t, notifier.calls[0].Content, "时间冲突")
}

func TestReviewRoleGateBeforeLookup(t *testing.T) {
	e, _, _ := newTestEngine()
	rec := submitOne(t, e, AppointmentFlow, student)

	// 学生无论目标状态如何都拿到 403
	_, err := e.Review(context.Background(), AppointmentFlow, rec.ID, student, Decision{Approve: true})
	assert.True(t, IsForbidden(err))

	// 记录不存在时角色门槛仍然先生效
	_, err = e.Review(context.Background(), AppointmentFlow, 9999, student, Decision{Approve: true})
	assert.True(t, IsForbidden(err))

	// 审核人对不存在的记录拿到 404
	_, err = e.Review(context.Background(), AppointmentFlow, 9999, teacher, Decision{Approve: true})
	assert.True(t, IsNotFound(err))
}

func TestReviewTerminalStateConflict(t *testing.T) {
	e, store, notifier := newTestEngine()
	rec := submitOne(t, e, AppointmentFlow, student)

	_, err := e.Review(context.Background(), AppointmentFlow, rec.ID, teacher, Decision{Approve: true})
	require.NoError(t, err)

	// 第二次审核落到 409,记录不变
	_, err = e.Review(context.Background(), AppointmentFlow, rec.ID, admin, Decision{Approve: false, Reason: "不给过"})
	assert.True(t, IsConflict(err))
	got := store.get(KindAppointment, rec.ID)
	assert.Equal(t, StatusApproved, got.Status)
	assert.Equal(t, teacher.UserID, *got.ReviewerID)
	assert.Empty(t, got.RejectReason)

	// 通知只有第一次审核那一条
	assert.Equal(t, 1, notifier.count())
}

func TestCancelOwnershipBeforeStatus(t *testing.T) {
	e, _, notifier := newTestEngine()
	rec := submitOne(t, e, AppointmentFlow, student)

	// 非申请人取消,无论状态一律 403
	_, err := e.Cancel(context.Background(), AppointmentFlow, rec.ID, otherOne)
	assert.True(t, IsForbidden(err))

	// 审核通过后本人取消,归属通过但状态已完结,409
	_, err = e.Review(context.Background(), AppointmentFlow, rec.ID, teacher, Decision{Approve: true})
	require.NoError(t, err)
	_, err = e.Cancel(context.Background(), AppointmentFlow, rec.ID, student)
	assert.True(t, IsConflict(err))

	// 已完结记录上非申请人仍然是 403 而不是 409
	_, err = e.Cancel(context.Background(), AppointmentFlow, rec.ID, otherOne)
	assert.True(t, IsForbidden(err))

	assert.Equal(t, 1, notifier.count())
}

func TestCancelEmitsNoNotification(t *testing.T) {
	e, store, notifier := newTestEngine()
	rec := submitOne(t, e, AppointmentFlow, student)

	out, err := e.Cancel(context.Background(), AppointmentFlow, rec.ID, student)
	require.NoError(t, err)

	assert.Equal(t, StatusCancelled, out.Status)
	assert.Equal(t, StatusCancelled, store.get(KindAppointment, rec.ID).Status)
	assert.Zero(t, notifier.count())
}

func TestConcurrentReviewLoserGetsConflict(t *testing.T) {
	e, store, notifier := newTestEngine()
	rec := submitOne(t, e, AppointmentFlow, student)

	// 模拟两个审核人同时读到 pending: 第一个提交后,
	// 第二个的条件更新落空
	_, err := e.Review(context.Background(), AppointmentFlow, rec.ID, teacher, Decision{Approve: true})
	require.NoError(t, err)

	// 直接回放落败方的条件更新,确认一行都不会命中
	updated, err := store.ConditionalUpdate(context.Background(), KindAppointment, rec.ID,
		AppointmentFlow.ReviewableFrom, map[string]interface{}{"status": string(StatusRejected)})
	require.NoError(t, err)
	assert.False(t, updated)

	// 落败方留下的记录与通知都不变
	assert.Equal(t, StatusApproved, store.get(KindAppointment, rec.ID).Status)
	assert.Equal(t, 1, notifier.count())
}

func TestNotifierFailureDoesNotFailReview(t *testing.T) {
	e, store, notifier := newTestEngine()
	notifier.fail = true
	rec := submitOne(t, e, AppointmentFlow, student)

	out, err := e.Review(context.Background(), AppointmentFlow, rec.ID, teacher, Decision{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, StatusApproved, out.Status)
	assert.Equal(t, StatusApproved, store.get(KindAppointment, rec.ID).Status)
}

func TestAdvanceRepairTicket(t *testing.T) {
	e, store, notifier := newTestEngine()
	rec := submitOne(t, e, RepairFlow, student)

	out, err := e.Advance(context.Background(), RepairFlow, rec.ID, admin)
	require.NoError(t, err)
	assert.Equal(t, StatusInProgress, out.Status)
	assert.Equal(t, admin.UserID, *out.ReviewerID)

	// 接单产生进度通知
	require.Equal(t, 1, notifier.count())
	assert.Equal(t, model.NotificationTypeRepairProgress, notifier.calls[0].Type)

	// 重复接单 409
	_, err = e.Advance(context.Background(), RepairFlow, rec.ID, superAdmin)
	assert.True(t, IsConflict(err))
	assert.Equal(t, admin.UserID, *store.get(KindRepairTicket, rec.ID).ReviewerID)
}

func TestAdvanceRequiresAdminRole(t *testing.T) {
	e, _, _ := newTestEngine()
	rec := submitOne(t, e, RepairFlow, student)

	// 教师可以审核预约,但处理工单需要管理员
	_, err := e.Advance(context.Background(), RepairFlow, rec.ID, teacher)
	assert.True(t, IsForbidden(err))
}

func TestAdvanceUnsupportedFlow(t *testing.T) {
	e, _, _ := newTestEngine()
	rec := submitOne(t, e, AppointmentFlow, student)

	_, err := e.Advance(context.Background(), AppointmentFlow, rec.ID, admin)
	assert.True(t, IsValidation(err))
}

func TestRepairRejectMapsToCancelled(t *testing.T) {
	e, store, _ := newTestEngine()
	rec := submitOne(t, e, RepairFlow, student)

	out, err := e.Review(context.Background(), RepairFlow, rec.ID, admin, Decision{Approve: false, Reason: "重复报修"})
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, out.Status)
	assert.Equal(t, "重复报修", store.get(KindRepairTicket, rec.ID).RejectReason)
}

func TestRepairResolveFromInProgress(t *testing.T) {
	e, _, notifier := newTestEngine()
	rec := submitOne(t, e, RepairFlow, student)

	_, err := e.Advance(context.Background(), RepairFlow, rec.ID, admin)
	require.NoError(t, err)

	out, err := e.Review(context.Background(), RepairFlow, rec.ID, admin, Decision{Approve: true})
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, out.Status)

	// 接单 + 完结各一条通知
	assert.Equal(t, 2, notifier.count())
}

func TestFullLifecycleScenario(t *testing.T) {
	e, store, notifier := newTestEngine()

	// A 提交,B 审核通过,C 再驳回得到 409,A 取消得到 409
	rec := submitOne(t, e, InstrumentApplicationFlow, student)

	_, err := e.Review(context.Background(), InstrumentApplicationFlow, rec.ID, teacher, Decision{Approve: true})
	require.NoError(t, err)

	_, err = e.Review(context.Background(), InstrumentApplicationFlow, rec.ID, admin, Decision{Approve: false, Reason: "设备检修"})
	assert.True(t, IsConflict(err))

	_, err = e.Cancel(context.Background(), InstrumentApplicationFlow, rec.ID, student)
	assert.True(t, IsConflict(err))

	got := store.get(KindInstrumentApplication, rec.ID)
	assert.Equal(t, StatusApproved, got.Status)
	assert.Equal(t, teacher.UserID, *got.ReviewerID)
	assert.Equal(t, 1, notifier.count())
	assert.Equal(t, student.UserID, notifier.calls[0].UserID)
}
