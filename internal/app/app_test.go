package app

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	kafkago "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	notifykafka "family-connect-go/internal/notify/kafka"
	"family-connect-go/pkg/logger"
)

type closingWriter struct {
	closed int
}

func (w *closingWriter) WriteMessages(context.Context, ...kafkago.Message) error { return nil }

func (w *closingWriter) Close() error {
	w.closed++
	return nil
}

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 gormlogger.Discard,
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestAbortReleasesOpenedResources(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mock.ExpectClose()

	writer := &closingWriter{}
	a := &App{
		db:       gormDB,
		notifier: notifykafka.NewNotifier(writer, logger.Nop(), nil),
		log:      logger.Nop(),
	}

	initErr := errors.New("apply migrations: dirty database")
	err := a.abort(initErr)

	assert.ErrorIs(t, err, initErr)
	assert.Equal(t, 1, writer.closed)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCloseWithoutKafka(t *testing.T) {
	gormDB, mock := newMockDB(t)
	mock.ExpectClose()

	a := &App{db: gormDB, log: logger.Nop()}

	require.NoError(t, a.Close())
	assert.NoError(t, mock.ExpectationsWereMet())
}
