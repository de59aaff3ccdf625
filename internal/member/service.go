package member

import (
	"context"
	"errors"

	"fitness-scheduler/internal/events"
)

var (
	ErrMemberNotFound = errors.New("member not found")
	ErrInvalidInput   = errors.New("invalid input")
)

type Service interface {
	CreateMember(ctx context.Context, in Input) (*Member, error)
	GetAllMembers(ctx context.Context) ([]Member, error)
	GetMemberByID(ctx context.Context, id int64) (*Member, error)
	UpdateMember(ctx context.Context, id int64, in Input) error
	DeleteMember(ctx context.Context, id int64) error
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

func (s *service) CreateMember(ctx context.Context, in Input) (*Member, error) {
	created, err := s.repo.Create(ctx, in.toMember(0))
	if err != nil {
		return nil, err
	}
	s.notifier.Notify(ctx, events.MemberCreated, events.ResourceMember, created.ID)
	return created, nil
}

func (s *service) GetAllMembers(ctx context.Context) ([]Member, error) {
	return s.repo.GetAll(ctx)
}

func (s *service) GetMemberByID(ctx context.Context, id int64) (*Member, error) {
	if id <= 0 {
		return nil, ErrInvalidInput
	}
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateMember(ctx context.Context, id int64, in Input) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := s.repo.Update(ctx, in.toMember(id)); err != nil {
		return err
	}
	s.notifier.Notify(ctx, events.MemberUpdated, events.ResourceMember, id)
	return nil
}

// DeleteMember leaves the member's workout sessions in place.
func (s *service) DeleteMember(ctx context.Context, id int64) error {
	if id <= 0 {
		return ErrInvalidInput
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.notifier.Notify(ctx, events.MemberDeleted, events.ResourceMember, id)
	return nil
}
