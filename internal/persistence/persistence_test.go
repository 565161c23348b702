package persistence

import (
	"context"
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/config"
)

func TestNewPostgresWithoutDSN(t *testing.T) {
	pg, err := NewPostgres(context.Background(), config.PostgresConfig{}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, pg.Enabled())
	assert.Nil(t, pg.PoolHandle())
	assert.Error(t, pg.Ping(context.Background()))
	pg.Close()
}

func TestRunMigrationsWithoutPool(t *testing.T) {
	assert.NoError(t, RunMigrations(context.Background(), nil, zap.NewNop()))
}

func TestEmbeddedMigrations(t *testing.T) {
	names, err := fs.Glob(migrationsFS, migrationsDir+"/*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, names)

	content, err := fs.ReadFile(migrationsFS, names[0])
	require.NoError(t, err)
	sql := string(content)
	assert.True(t, strings.HasPrefix(sql, "-- +goose Up"))
	assert.Contains(t, sql, "email         TEXT        NOT NULL UNIQUE")
	assert.Contains(t, sql, "sku         TEXT             NOT NULL UNIQUE")
	assert.Contains(t, sql, "-- +goose Down")
}

func TestRedisDisabled(t *testing.T) {
	r := NewRedis(config.RedisConfig{}, zap.NewNop())

	assert.False(t, r.Enabled())
	assert.Error(t, r.Ping(context.Background()))
	assert.Error(t, r.Publish(context.Background(), "catalog.events", []byte("{}")))
	r.Close()
}
