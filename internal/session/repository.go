package session

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"fitness-scheduler/internal/db"

	"github.com/uptrace/bun"
)

const table = "workout_sessions"

type Repository interface {
	Create(ctx context.Context, session *Session) (*Session, error)
	GetAll(ctx context.Context) ([]WithMemberName, error)
	GetByID(ctx context.Context, id int64) (*WithMemberName, error)
	Update(ctx context.Context, session *Session) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	gw *db.Gateway
}

func NewRepository(gw *db.Gateway) Repository {
	return &repository{gw: gw}
}

// joined selects sessions that still have a member; orphans drop out of the
// inner join.
func joined(conn bun.Conn) *bun.SelectQuery {
	return conn.NewSelect().
		TableExpr("workout_sessions AS ws").
		ColumnExpr("ws.session_id, m.member_name, ws.session_date, ws.workout_type").
		Join("JOIN members AS m ON m.member_id = ws.member_id")
}

func (r *repository) Create(ctx context.Context, session *Session) (*Session, error) {
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		return r.gw.Observe(ctx, "insert", table, func() error {
			_, err := conn.NewInsert().Model(session).Returning("*").Exec(ctx)
			return err
		})
	})
	if err != nil {
		return nil, fmt.Errorf("insert session: %w", err)
	}
	return session, nil
}

func (r *repository) GetAll(ctx context.Context) ([]WithMemberName, error) {
	sessions := []WithMemberName{}
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		return r.gw.Observe(ctx, "select", table, func() error {
			return joined(conn).OrderExpr("ws.session_id").Scan(ctx, &sessions)
		})
	})
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	return sessions, nil
}

func (r *repository) GetByID(ctx context.Context, id int64) (*WithMemberName, error) {
	session := new(WithMemberName)
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		return r.gw.Observe(ctx, "select", table, func() error {
			return joined(conn).Where("ws.session_id = ?", id).Scan(ctx, session)
		})
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session %d: %w", id, err)
	}
	return session, nil
}

func (r *repository) Update(ctx context.Context, session *Session) error {
	var rowsAffected int64
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		return r.gw.Observe(ctx, "update", table, func() error {
			result, err := conn.NewUpdate().
				Model(session).
				Column("member_id", "session_date", "workout_type").
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
		return fmt.Errorf("update session %d: %w", session.ID, err)
	}
	if rowsAffected == 0 {
		return ErrSessionNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	err := r.gw.WithConn(ctx, func(ctx context.Context, conn bun.Conn) error {
		var exists bool
		err := r.gw.Observe(ctx, "exists", table, func() error {
			var err error
			exists, err = conn.NewSelect().Model((*Session)(nil)).Where("ws.session_id = ?", id).Exists(ctx)
			return err
		})
		if err != nil {
			return err
		}
		if !exists {
			return ErrSessionNotFound
		}

		return r.gw.Observe(ctx, "delete", table, func() error {
			_, err := conn.NewDelete().Model((*Session)(nil)).Where("session_id = ?", id).Exec(ctx)
			return err
		})
	})
	if err != nil {
		if errors.Is(err, ErrSessionNotFound) {
			return err
		}
		return fmt.Errorf("delete session %d: %w", id, err)
	}
	return nil
}
