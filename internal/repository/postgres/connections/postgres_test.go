package connections

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	connectionsdomain "family-connect-go/internal/domain/connections"
)

const (
	aliceID = "00000000-0000-4000-8000-00000000000a"
	bobID   = "00000000-0000-4000-8000-00000000000b"
)

func newMockRepo(t *testing.T) (*PostgresRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		TranslateError:         true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)

	return NewPostgres(gormDB), mock
}

func TestCreateMapsUniqueViolation(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectExec(`INSERT INTO "connections"`).
		WillReturnError(&pgconn.PgError{Code: "23505"})

	err := repo.Create(context.Background(), &connectionsdomain.Connection{
		ID:           "00000000-0000-4000-8000-000000000001",
		UserID:       aliceID,
		TargetUserID: bobID,
		PairLow:      aliceID,
		PairHigh:     bobID,
		Status:       connectionsdomain.StatusPending,
	})
	assert.ErrorIs(t, err, connectionsdomain.ErrConnectionExists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetByPairNotFound(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`SELECT \* FROM "connections" WHERE pair_low = \$1 AND pair_high = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, err := repo.GetByPair(context.Background(), aliceID, bobID)
	assert.ErrorIs(t, err, connectionsdomain.ErrConnectionNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUpdateStatusIsConditional(t *testing.T) {
	repo, mock := newMockRepo(t)
	ctx := context.Background()
	id := "00000000-0000-4000-8000-000000000001"

	mock.ExpectExec(`UPDATE "connections" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`UPDATE "connections" SET .* WHERE id = \$\d+ AND status = \$\d+`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := repo.UpdateStatus(ctx, id, connectionsdomain.StatusPending, connectionsdomain.StatusConnected)
	require.NoError(t, err)
	assert.True(t, updated)

	updated, err = repo.UpdateStatus(ctx, id, connectionsdomain.StatusPending, connectionsdomain.StatusRejected)
	require.NoError(t, err)
	assert.False(t, updated)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListForUserMatchesEitherSide(t *testing.T) {
	repo, mock := newMockRepo(t)
	now := time.Now().UTC()

	rows := sqlmock.NewRows([]string{"id", "user_id", "target_user_id", "pair_low", "pair_high", "status", "created_at", "updated_at"}).
		AddRow("00000000-0000-4000-8000-000000000002", bobID, aliceID, aliceID, bobID, "pending", now, now).
		AddRow("00000000-0000-4000-8000-000000000001", aliceID, bobID, aliceID, bobID, "connected", now.Add(-time.Hour), now)
	mock.ExpectQuery(`SELECT \* FROM "connections" WHERE user_id = \$1 OR target_user_id = \$2 ORDER BY created_at desc`).
		WithArgs(aliceID, aliceID).
		WillReturnRows(rows)

	connections, err := repo.ListForUser(context.Background(), aliceID)
	require.NoError(t, err)
	require.Len(t, connections, 2)
	assert.Equal(t, bobID, connections[0].UserID)
	assert.Equal(t, "connected", connections[1].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
