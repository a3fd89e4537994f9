package audit

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/studypartner-auth/internal/logger"
	"github.com/dtroode/studypartner-auth/internal/mocks"
	"github.com/dtroode/studypartner-auth/internal/model"
	"github.com/dtroode/studypartner-auth/internal/testutil"
)

func TestNewID_Monotonic(t *testing.T) {
	now := time.Now()
	a := NewID(now)
	b := NewID(now)

	_, err := ulid.Parse(a)
	require.NoError(t, err)
	assert.Less(t, a, b)
}

func TestLogSink_Record(t *testing.T) {
	var buf bytes.Buffer
	sink := NewLogSink(logger.NewWithWriter(&buf, 0, "json"))

	userID := uuid.New()
	err := sink.Record(context.Background(), model.AuditEvent{
		Type:      model.AuditRefreshReuseDetected,
		UserID:    userID,
		IPAddress: "10.0.0.1",
		Details:   map[string]string{"reason": "reuse"},
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"type":"refresh_reuse_detected"`)
	assert.Contains(t, out, userID.String())
	assert.Contains(t, out, `"ip_address":"10.0.0.1"`)
	assert.Contains(t, out, `"reason":"reuse"`)
	assert.NotContains(t, out, "actor_id")
}

type recordingSink struct {
	events []model.AuditEvent
	err    error
}

func (r *recordingSink) Record(_ context.Context, e model.AuditEvent) error {
	r.events = append(r.events, e)
	return r.err
}

func TestMulti_SameIDAndJoinedErrors(t *testing.T) {
	a := &recordingSink{}
	b := &recordingSink{err: errors.New("b down")}

	err := Multi{a, b}.Record(context.Background(), model.AuditEvent{Type: model.AuditLogoutAll})
	require.ErrorContains(t, err, "b down")

	require.Len(t, a.events, 1)
	require.Len(t, b.events, 1)
	assert.NotEmpty(t, a.events[0].ID)
	assert.Equal(t, a.events[0].ID, b.events[0].ID)
	assert.False(t, a.events[0].OccurredAt.IsZero())
}

func TestObjectKey(t *testing.T) {
	e := model.AuditEvent{ID: "01HX", OccurredAt: time.Date(2025, 3, 7, 23, 0, 0, 0, time.UTC)}
	assert.Equal(t, "audit/2025/03/07/01HX.json", ObjectKey(e))
}

func TestArchiveSink_UploadsAndDrains(t *testing.T) {
	storage := mocks.NewStorage(t)
	uploaded := make(chan string, 2)
	storage.On("Upload", mock.Anything, mock.MatchedBy(func(key string) bool {
		return strings.HasPrefix(key, "audit/") && strings.HasSuffix(key, ".json")
	}), mock.Anything, mock.AnythingOfType("int64"), "application/json").
		Run(func(args mock.Arguments) {
			body, _ := io.ReadAll(args.Get(2).(io.Reader))
			uploaded <- string(body)
		}).
		Return(nil).Twice()

	sink := NewArchiveSink(storage, 4, testutil.MakeNoopLogger())
	require.NoError(t, sink.Record(context.Background(), model.AuditEvent{Type: model.AuditRoleCreated}))
	require.NoError(t, sink.Record(context.Background(), model.AuditEvent{Type: model.AuditRoleDeleted}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sink.Run(ctx)
		close(done)
	}()

	first := <-uploaded
	cancel()
	<-done

	second := <-uploaded
	assert.Contains(t, first+second, `"type":"role_created"`)
	assert.Contains(t, first+second, `"type":"role_deleted"`)
}

func TestArchiveSink_DropsWhenFull(t *testing.T) {
	sink := NewArchiveSink(mocks.NewStorage(t), 1, testutil.MakeNoopLogger())

	require.NoError(t, sink.Record(context.Background(), model.AuditEvent{Type: model.AuditLogoutAll}))
	err := sink.Record(context.Background(), model.AuditEvent{Type: model.AuditLogoutAll})
	assert.ErrorIs(t, err, ErrBufferFull)
}

func TestArchiveSink_UploadFailureIsLogged(t *testing.T) {
	storage := mocks.NewStorage(t)
	called := make(chan struct{})
	storage.On("Upload", mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything).
		Run(func(mock.Arguments) { close(called) }).
		Return(errors.New("minio down")).Once()

	sink := NewArchiveSink(storage, 1, testutil.MakeNoopLogger())
	require.NoError(t, sink.Record(context.Background(), model.AuditEvent{Type: model.AuditLogoutAll}))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		sink.Run(ctx)
		close(done)
	}()
	<-called
	cancel()
	<-done
}
