package session

import (
	"context"
	"errors"

	"fitness-scheduler/internal/events"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrInvalidInput    = errors.New("invalid input")
)

type Service interface {
	ScheduleSession(ctx context.Context, in Input) (*Session, error)
	GetAllSessions(ctx context.Context) ([]WithMemberName, error)
	GetSessionByID(ctx context.Context, id int64) (*WithMemberName, error)
	UpdateSession(ctx context.Context, id int64, in Input) error
	DeleteSession(ctx context.Context, id int64) error
}

type service struct {
	repo     Repository
	notifier *events.Notifier
}

func NewService(repo Repository, notifier *events.Notifier) Service {
	return &service{
		repo:     repo,
		notifier: notifier,
	}
}

// ScheduleSession stores the session as given; the member is not looked up.
func (s *service) ScheduleSession(ctx context.Context, in Input) (*Session, error) {
	created, err := s.repo.Create(ctx, in.toSession(0))
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, events.SessionScheduled, events.ResourceSession, created.ID)
	return created, nil
}

func (s *service) GetAllSessions(ctx context.Context) ([]WithMemberName, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetSessionByID(ctx context.Context, id int64) (*WithMemberName, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateSession(ctx context.Context, id int64, in Input) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := s.repo.Update(ctx, in.toSession(id)); err != nil {
		return err
	}
	s.notifier.Notify(ctx, events.SessionUpdated, events.ResourceSession, id)
	return nil
}

func (s *service) DeleteSession(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ctx, events.SessionDeleted, events.ResourceSession, id)
	return nil
}
