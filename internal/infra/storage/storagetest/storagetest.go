// Package storagetest opens a migrated Postgres database for repository integration tests.
package storagetest

import (
	"context"
	"database/sql"
	"os"
	"testing"

	_ "github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/KingsBarber-BookingService/migrations"
	"github.com/m04kA/KingsBarber-BookingService/pkg/logger"
)

// EnvDSN переменная окружения со строкой подключения к тестовой БД
const EnvDSN = "BARBER_TEST_DATABASE_DSN"

// Open подключается к тестовой БД, применяет миграции и очищает таблицы
// Тест пропускается, если EnvDSN не задана
func Open(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv(EnvDSN)
	if dsn == "" {
		t.Skipf("%s is not set", EnvDSN)
	}

	db, err := sql.Open("postgres", dsn)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	ctx := context.Background()
	require.NoError(t, db.PingContext(ctx))

	_, err = migrations.Apply(ctx, db, logger.Nop())
	require.NoError(t, err)

	_, err = db.ExecContext(ctx, "TRUNCATE appointments, away_days RESTART IDENTITY")
	require.NoError(t, err)

	return db
}
