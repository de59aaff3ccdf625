package session_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"fitness-scheduler/internal/events"
	"fitness-scheduler/internal/session"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubRepository struct {
	session.Repository
	updateErr error
}

func (s *stubRepository) Create(_ context.Context, sess *session.Session) (*session.Session, error) {
	sess.ID = 21
	return sess, nil
}

func (s *stubRepository) Update(context.Context, *session.Session) error {
	return s.updateErr
}

func (s *stubRepository) Delete(context.Context, int64) error {
	return nil
}

func TestServicePublishesSessionEvents(t *testing.T) {
	recorder := events.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	notifier := events.NewNotifier(recorder, logger).WithClock(func() time.Time { return now })

	repo := &stubRepository{}
	svc := session.NewService(repo, notifier)
	ctx := context.Background()
	in := session.Input{MemberID: 999, Date: now, WorkoutType: "spin"}

	created, err := svc.ScheduleSession(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(999), created.MemberID)

	require.NoError(t, svc.UpdateSession(ctx, 21, in))
	require.NoError(t, svc.DeleteSession(ctx, 21))

	repo.updateErr = session.ErrSessionNotFound
	assert.ErrorIs(t, svc.UpdateSession(ctx, 22, in), session.ErrSessionNotFound)

	var types []string
	for _, e := range recorder.Events() {
		assert.Equal(t, events.ResourceSession, e.Resource)
		assert.Equal(t, int64(21), e.ID)
		types = append(types, e.Type)
	}
	assert.Equal(t, []string{events.SessionScheduled, events.SessionUpdated, events.SessionDeleted}, types)
}

func TestServiceRejectsNonPositiveSessionIDs(t *testing.T) {
	svc := session.NewService(&stubRepository{}, nil)

	_, err := svc.GetSessionByID(context.Background(), 0)
	assert.ErrorIs(t, err, session.ErrInvalidInput)
	assert.ErrorIs(t, svc.DeleteSession(context.Background(), -2), session.ErrInvalidInput)
}
