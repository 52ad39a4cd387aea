package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugar258596/experiment-server-sub001/internal/model"
	"github.com/sugar258596/experiment-server-sub001/internal/workflow"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Lab{},
		&model.Instrument{},
		&model.Appointment{},
		&model.InstrumentApplication{},
		&model.RepairTicket{},
		&model.Notification{},
		&model.News{},
		&model.Favorite{},
	))
	return db
}

func newAppointment(userID uint) *model.Appointment {
	return &model.Appointment{
		UserID:    userID,
		LabID:     1,
		StartTime: time.Now().Add(time.Hour),
		EndTime:   time.Now().Add(2 * time.Hour),
		Attendees: 3,
	}
}

func TestCreatePendingForcesInitialState(t *testing.T) {
	store := NewWorkflowStore(newTestDB(t))
	ctx := context.Background()

	// 调用方伪造的审核字段在创建时全部复位
	reviewerID := uint(99)
	now := time.Now()
	m := newAppointment(1)
	m.Status = "approved"
	m.ReviewerID = &reviewerID
	m.ReviewTime = &now
	m.RejectReason = "预填的原因"

	rec, err := store.CreatePending(ctx, workflow.KindAppointment, m)
	require.NoError(t, err)

	assert.Equal(t, workflow.StatusPending, rec.Status)
	assert.Nil(t, rec.ReviewerID)
	assert.Nil(t, rec.ReviewTime)
	assert.Empty(t, rec.RejectReason)
}

func TestCreatePendingValidates(t *testing.T) {
	store := NewWorkflowStore(newTestDB(t))

	m := newAppointment(1)
	m.LabID = 0
	_, err := store.CreatePending(context.Background(), workflow.KindAppointment, m)
	assert.True(t, workflow.IsValidation(err))

	// 类型不匹配同样拒绝
	_, err = store.CreatePending(context.Background(), workflow.KindAppointment, &model.RepairTicket{})
	assert.True(t, workflow.IsValidation(err))
}

func TestCreatePendingRepairStartsReported(t *testing.T) {
	store := NewWorkflowStore(newTestDB(t))

	rec, err := store.CreatePending(context.Background(), workflow.KindRepairTicket, &model.RepairTicket{
		UserID:       1,
		InstrumentID: 2,
		Title:        "离心机异响",
	})
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusReported, rec.Status)
}

func TestFindByIDNotFound(t *testing.T) {
	store := NewWorkflowStore(newTestDB(t))

	_, err := store.FindByID(context.Background(), workflow.KindAppointment, 42)
	assert.True(t, workflow.IsNotFound(err))
}

func TestConditionalUpdateCommitsTransition(t *testing.T) {
	db := newTestDB(t)
	store := NewWorkflowStore(db)
	ctx := context.Background()

	rec, err := store.CreatePending(ctx, workflow.KindAppointment, newAppointment(1))
	require.NoError(t, err)

	now := time.Now()
	updated, err := store.ConditionalUpdate(ctx, workflow.KindAppointment, rec.ID,
		[]workflow.Status{workflow.StatusPending},
		map[string]interface{}{
			"status":      "approved",
			"reviewer_id": uint(10),
			"review_time": now,
		})
	require.NoError(t, err)
	assert.True(t, updated)

	got, err := store.FindByID(ctx, workflow.KindAppointment, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, got.Status)
	require.NotNil(t, got.ReviewerID)
	assert.Equal(t, uint(10), *got.ReviewerID)
	require.NotNil(t, got.ReviewTime)
}

func TestConditionalUpdateMissesTerminalRow(t *testing.T) {
	db := newTestDB(t)
	store := NewWorkflowStore(db)
	ctx := context.Background()

	rec, err := store.CreatePending(ctx, workflow.KindAppointment, newAppointment(1))
	require.NoError(t, err)

	updated, err := store.ConditionalUpdate(ctx, workflow.KindAppointment, rec.ID,
		[]workflow.Status{workflow.StatusPending},
		map[string]interface{}{"status": "approved", "reviewer_id": uint(10), "review_time": time.Now()})
	require.NoError(t, err)
	require.True(t, updated)

	// 已完结的行不再命中,审核信息保持第一次的结果
	updated, err = store.ConditionalUpdate(ctx, workflow.KindAppointment, rec.ID,
		[]workflow.Status{workflow.StatusPending},
		map[string]interface{}{"status": "rejected", "reviewer_id": uint(11), "reject_reason": "晚到"})
	require.NoError(t, err)
	assert.False(t, updated)

	got, err := store.FindByID(ctx, workflow.KindAppointment, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, workflow.StatusApproved, got.Status)
	assert.Equal(t, uint(10), *got.ReviewerID)
	assert.Empty(t, got.RejectReason)
}

func TestConditionalUpdateMissesUnknownRow(t *testing.T) {
	store := NewWorkflowStore(newTestDB(t))

	updated, err := store.ConditionalUpdate(context.Background(), workflow.KindAppointment, 404,
		[]workflow.Status{workflow.StatusPending},
		map[string]interface{}{"status": "approved"})
	require.NoError(t, err)
	assert.False(t, updated)
}
