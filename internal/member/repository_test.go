package member_test

import (
	"context"
	"errors"
	"testing"

	"fitness-scheduler/common/metrics"
	"fitness-scheduler/internal/db"
	"fitness-scheduler/internal/member"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
)

var memberColumns = []string{"member_id", "member_name", "email", "phone", "membership_type"}

func newMockRepository(t *testing.T) (member.Repository, *bun.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	bunDB := bun.NewDB(sqlDB, pgdialect.New())
	t.Cleanup(func() { _ = bunDB.Close() })

	return member.NewRepository(db.NewGateway(bunDB, metrics.NewMock())), bunDB, mock
}

func TestRepositoryCreateReturnsAssignedID(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectQuery(`INSERT INTO "members"`).
		WillReturnRows(sqlmock.NewRows(memberColumns).AddRow(5, "Ana", "a@x.com", "555", "gold"))

	created, err := repo.Create(context.Background(), &member.Member{Name: "Ana", Email: "a@x.com", Phone: "555", MembershipType: "gold"})

	require.NoError(t, err)
	assert.Equal(t, int64(5), created.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetAllOrdersByID(t *testing.T) {
	repo, bunDB, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .* FROM "members" AS "m" ORDER BY "m"."member_id"`).
		WillReturnRows(sqlmock.NewRows(memberColumns).
			AddRow(1, "Ana", "a@x.com", "555", "gold").
			AddRow(2, "Bo", "b@x.com", "556", "basic"))

	members, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	require.Len(t, members, 2)
	assert.Equal(t, "Bo", members[1].Name)
	assert.Equal(t, 0, bunDB.Stats().InUse)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryGetAllEmpty(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM "members"`).WillReturnRows(sqlmock.NewRows(memberColumns))

	members, err := repo.GetAll(context.Background())

	require.NoError(t, err)
	assert.NotNil(t, members)
	assert.Empty(t, members)
}

func TestRepositoryGetByIDNotFound(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectQuery(`FROM "members" AS "m" WHERE`).WillReturnRows(sqlmock.NewRows(memberColumns))

	_, err := repo.GetByID(context.Background(), 9)

	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryUpdateZeroRowsIsNotFound(t *testing.T) {
	repo, _, mock := newMockRepository(t)

	mock.ExpectExec(`UPDATE "members"`).WillReturnResult(sqlmock.NewResult(0, 0))

	err := repo.Update(context.Background(), &member.Member{ID: 9, Name: "Ana", Email: "a", Phone: "1", MembershipType: "gold"})

	assert.ErrorIs(t, err, member.ErrMemberNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepositoryDeleteChecksExistence(t *testing.T) {
	t.Run("Present", func(t *testing.T) {
		repo, bunDB, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
		mock.ExpectExec(`DELETE FROM "members"`).WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.Delete(context.Background(), 3))
		assert.Equal(t, 0, bunDB.Stats().InUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Absent", func(t *testing.T) {
		repo, bunDB, mock := newMockRepository(t)

		mock.ExpectQuery(`SELECT EXISTS`).WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))

		err := repo.Delete(context.Background(), 3)

		assert.ErrorIs(t, err, member.ErrMemberNotFound)
		assert.Equal(t, 0, bunDB.Stats().InUse)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestRepositoryStatementFailure(t *testing.T) {
	repo, bunDB, mock := newMockRepository(t)

	boom := errors.New("relation does not exist")
	mock.ExpectQuery(`FROM "members"`).WillReturnError(boom)

	_, err := repo.GetAll(context.Background())

	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, db.ErrConnectionFailed)
	assert.Equal(t, 0, bunDB.Stats().InUse)
}

func TestRepositoryConnectionFailure(t *testing.T) {
	repo, bunDB, mock := newMockRepository(t)

	mock.ExpectClose()
	require.NoError(t, bunDB.Close())

	_, err := repo.GetAll(context.Background())

	assert.ErrorIs(t, err, db.ErrConnectionFailed)
}
