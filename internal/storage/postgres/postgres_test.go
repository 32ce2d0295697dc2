package postgres_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cory-johannsen/checkup/internal/config"
	"github.com/cory-johannsen/checkup/internal/storage/postgres"
	"github.com/cory-johannsen/checkup/internal/testutil"
)

func closedPortConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Enabled:         true,
		Host:            "127.0.0.1",
		Port:            1,
		User:            "checkup",
		Password:        "checkup",
		Name:            "checkup",
		SSLMode:         "disable",
		MaxConns:        1,
		MaxConnLifetime: time.Minute,
	}
}

func TestNewPool_Unreachable(t *testing.T) {
	_, err := postgres.NewPool(context.Background(), closedPortConfig())
	require.Error(t, err)
	assert.ErrorIs(t, err, postgres.ErrUnreachable)
	assert.Contains(t, err.Error(), "127.0.0.1:1/checkup")
}

func TestPool_HealthAndReports(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping postgres integration test in short mode")
	}
	pc := testutil.NewPostgresContainer(t)
	pc.ApplyMigrations(t)

	require.NoError(t, pc.Pool.Health(context.Background(), time.Second))

	_, err := pc.Pool.Reports().Save(context.Background(), postgres.Summary{Farmer: "Ann", Farm: "Hill"})
	require.NoError(t, err)
	latest, err := pc.Pool.Reports().Latest(context.Background(), "Ann", "Hill")
	require.NoError(t, err)
	assert.Equal(t, "Ann", latest.Farmer)
}
