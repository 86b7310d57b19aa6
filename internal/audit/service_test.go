package audit

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	auditRepo "github.com/mrlokans/careerpath/internal/database/audit"
	"github.com/mrlokans/careerpath/internal/database/dbtest"
	"github.com/mrlokans/careerpath/internal/entities"
)

const userID = "7a1c3f0e-8d5b-4c4e-9f0a-2b6d8e1f3a5c"

func setupTestService(t *testing.T) (*Service, *gorm.DB) {
	db := dbtest.Open(t)
	return NewService(auditRepo.NewRepository(db)), db
}

func TestService_Log(t *testing.T) {
	svc, db := setupTestService(t)

	event := &entities.AuditEvent{
		UserID:      userID,
		EventType:   entities.AuditEventAccount,
		Action:      "signup",
		Description: "Account created",
		Status:      entities.AuditStatusSuccess,
	}

	require.NoError(t, svc.Log(context.Background(), event))

	var saved entities.AuditEvent
	require.NoError(t, db.First(&saved, event.ID).Error)
	assert.Equal(t, "signup", saved.Action)
}

func TestService_LogAuth(t *testing.T) {
	svc, db := setupTestService(t)

	t.Run("successful login", func(t *testing.T) {
		svc.LogAuth(userID, "login", "127.0.0.1", "Mozilla/5.0", nil)
		svc.Wait()

		var event entities.AuditEvent
		require.NoError(t, db.Where("action = ? AND status = ?", "login", entities.AuditStatusSuccess).First(&event).Error)
		assert.Equal(t, userID, event.UserID)
		assert.Equal(t, entities.AuditEventAuth, event.EventType)
		assert.Equal(t, "127.0.0.1", event.IPAddress)
	})

	t.Run("failed login without user", func(t *testing.T) {
		svc.LogAuth("", "login", "10.0.0.1", "curl", errors.New("invalid credentials"))
		svc.Wait()

		var event entities.AuditEvent
		require.NoError(t, db.Where("action = ? AND status = ?", "login", entities.AuditStatusFailed).First(&event).Error)
		assert.Empty(t, event.UserID)
		assert.Equal(t, "invalid credentials", event.ErrorMsg)
	})
}

func TestService_LogChangeAndDelete(t *testing.T) {
	svc, db := setupTestService(t)

	svc.LogChange(userID, entities.AuditEventCreate, "career", "4", "Created career: Data Scientist")
	svc.LogDelete(userID, "career", "4", "Data Scientist")
	svc.Wait()

	var events []entities.AuditEvent
	require.NoError(t, db.Order("id ASC").Find(&events).Error)
	require.Len(t, events, 2)

	actions := []string{events[0].Action, events[1].Action}
	assert.ElementsMatch(t, []string{"career_create", "career_delete"}, actions)
	for _, e := range events {
		assert.Equal(t, "career", e.EntityType)
		assert.Equal(t, "4", e.EntityID)
	}
}

func TestService_NilIsNoop(t *testing.T) {
	var svc *Service

	assert.NotPanics(t, func() {
		svc.LogAuth(userID, "login", "", "", nil)
		svc.LogDelete(userID, "course", "1", "Go")
		svc.Wait()
		assert.NoError(t, svc.Log(context.Background(), &entities.AuditEvent{}))
	})
}

func TestService_GetEvents(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: userID, EventType: entities.AuditEventAuth, Action: "login"}))
	}
	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: "someone-else", EventType: entities.AuditEventAuth, Action: "login"}))

	events, total, err := svc.GetEvents(ctx, userID, 2, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, events, 2)
}

func TestService_GetEventsByType(t *testing.T) {
	svc, _ := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: userID, EventType: entities.AuditEventAuth, Action: "login"}))
	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: userID, EventType: entities.AuditEventCreate, Action: "career_create"}))
	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{UserID: "someone-else", EventType: entities.AuditEventCreate, Action: "career_create"}))

	events, total, err := svc.GetEventsByType(ctx, entities.AuditEventCreate, userID, 10, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, events, 1)
	assert.Equal(t, "career_create", events[0].Action)

	var nilSvc *Service
	events, total, err = nilSvc.GetEventsByType(ctx, entities.AuditEventCreate, userID, 10, 0)
	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, events)
}

func TestService_DeleteOldEvents(t *testing.T) {
	svc, db := setupTestService(t)
	ctx := context.Background()

	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{Action: "old", CreatedAt: time.Now().Add(-48 * time.Hour)}))
	require.NoError(t, svc.Log(ctx, &entities.AuditEvent{Action: "new"}))

	deleted, err := svc.DeleteOldEvents(ctx, 24*time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	var remaining []entities.AuditEvent
	db.Find(&remaining)
	assert.Len(t, remaining, 1)
	assert.Equal(t, "new", remaining[0].Action)
}

func TestTruncate(t *testing.T) {
	tests := []struct {
		input    string
		maxLen   int
		expected string
	}{
		{"short", 10, "short"},
		{"exactly10c", 10, "exactly10c"},
		{"this is a very long string", 10, "this is..."},
		{"", 5, ""},
		{"日本語のテキスト", 10, "日本..."},
		{"héllo wörld", 8, "héll..."},
	}

	for _, tc := range tests {
		result := truncate(tc.input, tc.maxLen)
		assert.Equal(t, tc.expected, result)
	}
}

func TestTruncate_KeepsValidUTF8(t *testing.T) {
	input := strings.Repeat("ü€😀", 200)
	for maxLen := 3; maxLen <= 40; maxLen++ {
		result := truncate(input, maxLen)
		assert.True(t, utf8.ValidString(result), "maxLen %d: %q", maxLen, result)
		assert.LessOrEqual(t, len(result), maxLen)
	}
}
