package member

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitness-scheduler/internal/db"

	"github.com/uptrace/bun"
)

const table = "members"

type Repository interface {
	Create(ctx context.Context, member *Member) (*Member, error)
	GetAll(ctx context.Context) ([]Member, error)
	GetByID(ctx context.Context, id int64) (*Member, error)
	Update(ctx context.Context, member *Member) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	gw *db.Gateway
}

func NewRepository(gw *db.Gateway) Repository {
	return &repository{gw: gw}
}

func (r *repository) Create(ctx context.Context, member *Member) (*Member, error) {
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		return r.gw.Observe(ctx, "insert", table, func() error {
			_, err := conn.NewInsert().Model(member).Returning("*").Exec(ctx)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("insert member: %w", err)
	}
	return member, nil
}

func (r *repository) GetAll(ctx context.Context) ([]Member, error) {
	members := []Member{}
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		return r.gw.Observe(ctx, "select", table, func() error {
			return conn.NewSelect().Model(&members).Order("m.member_id").Scan(ctx)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list members: %w", err)
	}
	return members, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*Member, error) {
	member := new(Member)
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		return r.gw.Observe(ctx, "select", table, func() error {
			return conn.NewSelect().Model(member).Where("m.member_id = ?", id).Scan(ctx)
		})
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMemberNotFound
		}
		return nil, fmt.Errorf("get member %d: %w", id, err)
	}
	return member, nil
}

func (r *repository) Update(ctx context.Context, member *Member) error {
	var rowsAffected int64
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		return r.gw.Observe(ctx, "update", table, func() error {
			result, err := conn.NewUpdate().
				Model(member).
				Column("member_name", "email", "phone", "membership_type").
				WherePK().
				Exec(ctx)
			if err != nil {
				return err
			}
			rowsAffected, err = result.RowsAffected()
			return err
		})
	})
	if err != nil {
		return fmt.Errorf("update member %d: %w", member.ID, err)
	}
	if rowsAffected == 0 {
		return ErrMemberNotFound
	}
	return nil
}

// Delete checks for the row and removes it on the same connection. The two
// statements do not share a transaction.
func (r *repository) Delete(ctx context.Context, id int64) error {
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		var exists bool
		err := r.gw.Observe(ctx, "exists", table, func() error {
			var err error
			exists, err = conn.NewSelect().Model((*Member)(nil)).Where("m.member_id = ?", id).Exists(ctx)
			return err
		})
		if err != nil {
			return err
		}
		if !exists {
			return ErrMemberNotFound
		}

		return r.gw.Observe(ctx, "delete", table, func() error {
			_, err := conn.NewDelete().Model((*Member)(nil)).Where("member_id = ?", id).Exec(ctx)
			return err
		})
	})
	if err != nil {
		if errors.Is(err, ErrMemberNotFound) {
			return err
		}
		return fmt.Errorf("delete member %d: %w", id, err)
	}
	return nil
}
