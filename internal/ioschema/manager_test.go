package ioschema_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/gnames/gnfish/internal/ioschema"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/gnames/gnfish/pkg/errcode"
	"github.com/gnames/gnfish/pkg/schema"
	"github.com/gnames/gnfish/pkg/species"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	cfg := config.New()
	cfg.Store.SQLitePath = filepath.Join(t.TempDir(), "sub", "species.db")

	db, err := ioschema.Open(context.Background(), cfg)
	require.NoError(err)
	assert.Equal(ioschema.DriverSQLite, db.Driver)
	assert.True(db.Gorm.Migrator().HasTable(&schema.Species{}))
	assert.True(db.Gorm.Migrator().HasIndex(&schema.Species{}, "CommonKey"))
	assert.True(db.Gorm.Migrator().HasIndex(&schema.Species{}, "ScientificKey"))
	require.NoError(db.Close())

	// reopening runs migration on an existing schema
	db, err = ioschema.Open(context.Background(), cfg)
	require.NoError(err)
	assert.NoError(db.Close())
}

func TestOpenUnknownDriver(t *testing.T) {
	cfg := config.New()
	cfg.Store.Driver = "oracle"
	_, err := ioschema.Open(context.Background(), cfg)
	assert.True(t, species.IsCode(err, errcode.StoreUnknownDriverError))
}
