package iodb_test

import (
	"context"
	"os"
	"testing"

	"github.com/gnames/gnfish/internal/iodb"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a running PostgreSQL. They run only when GNFISH_TEST_PG=1
// and use the GNFISH_STORE_DATABASE_* credentials or defaults.
func testConfig(t *testing.T) *config.DatabaseConfig {
	t.Helper()
	if testing.Short() || os.Getenv("GNFISH_TEST_PG") != "1" {
		t.Skip("Skipping PostgreSQL test")
	}
	cfg := config.New().Store.Database
	if v := os.Getenv("GNFISH_STORE_DATABASE_USER"); v != "" {
		cfg.User = v
	}
	if v := os.Getenv("GNFISH_STORE_DATABASE_PASSWORD"); v != "" {
		cfg.Password = v
	}
	cfg.Database = "gnfish_test"
	return &cfg
}

func TestConnect(t *testing.T) {
	cfg := testConfig(t)
	op := iodb.NewPgxOperator()
	ctx := context.Background()

	err := op.Connect(ctx, cfg)
	require.NoError(t, err)
	defer op.Close()
	assert.NotNil(t, op.Pool())

	exists, err := op.TableExists(ctx, "nonexistent_table")
	assert.NoError(t, err)
	assert.False(t, exists)

	_, err = op.HasTables(ctx)
	assert.NoError(t, err)
}

func TestConnectInvalidHost(t *testing.T) {
	cfg := testConfig(t)
	cfg.Host = "nonexistent.invalid"
	op := iodb.NewPgxOperator()
	err := op.Connect(context.Background(), cfg)
	assert.Error(t, err)
}

func TestNotConnected(t *testing.T) {
	op := iodb.NewPgxOperator()
	ctx := context.Background()
	assert.Nil(t, op.Pool())

	_, err := op.TableExists(ctx, "species")
	assert.Error(t, err)

	_, err = op.HasTables(ctx)
	assert.Error(t, err)

	assert.NoError(t, op.Close())
}
