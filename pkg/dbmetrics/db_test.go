package dbmetrics

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-BeautyBooking/pkg/metrics"
)

func TestOperation(t *testing.T) {
	assert.Equal(t, "select", operation("SELECT id FROM providers"))
	assert.Equal(t, "insert", operation("  INSERT INTO bookings (id) VALUES ($1)"))
	assert.Equal(t, "unknown", operation(""))
}

func TestGetExecutor(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db := Wrap(sqlDB, nil)
	ctx := context.Background()

	assert.False(t, IsInTransaction(ctx))
	assert.Same(t, db, GetExecutor(ctx, db))

	mock.ExpectBegin()
	tx, err := db.BeginTx(ctx, nil)
	require.NoError(t, err)

	txCtx := WithTx(ctx, tx)
	assert.True(t, IsInTransaction(txCtx))
	assert.Same(t, tx, GetExecutor(txCtx, db))

	mock.ExpectRollback()
	require.NoError(t, tx.Rollback())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDB_ObservesQueries(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	m := metrics.NewWithRegisterer(prometheus.NewRegistry(), "test")
	db := Wrap(sqlDB, m)

	mock.ExpectExec("UPDATE bookings").WillReturnResult(sqlmock.NewResult(0, 1))
	_, err = db.ExecContext(context.Background(), "UPDATE bookings SET status = $1", "cancelled")
	require.NoError(t, err)

	assert.Equal(t, 1, testutil.CollectAndCount(m.DBQueryDuration, "db_query_duration_seconds"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
