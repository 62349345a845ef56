// Package ioschema opens the species database with GORM and keeps its
// schema current with AutoMigrate. SQLite and PostgreSQL are supported.
package ioschema

import (
	"context"
	"database/sql"
	"log/slog"
	"path/filepath"

	"github.com/gnames/gnfish/internal/iodb"
	"github.com/gnames/gnfish/pkg/config"
	"github.com/gnames/gnfish/pkg/db"
	"github.com/gnames/gnfish/pkg/schema"
	"github.com/gnames/gnsys"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	// pure Go SQLite driver registered as "sqlite"
	_ "modernc.org/sqlite"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// DB is an open species database with a migrated schema.
type DB struct {
	// Gorm is the GORM handle for queries.
	Gorm *gorm.DB

	// Driver is either "sqlite" or "postgres".
	Driver string

	sqlDB    *sql.DB
	operator db.Operator
}

// Open connects to the database configured in cfg.Store and migrates the
// schema.
func Open(ctx context.Context, cfg *config.Config) (*DB, error) {
	var res *DB
	var err error

	switch cfg.Store.Driver {
	case DriverSQLite, "":
		res, err = openSQLite(cfg.SQLitePath())
	case DriverPostgres:
		res, err = openPostgres(ctx, &cfg.Store.Database)
	default:
		return nil, UnknownDriverError(cfg.Store.Driver)
	}
	if err != nil {
		return nil, err
	}

	if err = schema.Migrate(res.Gorm.WithContext(ctx)); err != nil {
		_ = res.Close()
		return nil, MigrateSchemaError(err)
	}
	return res, nil
}

func gormConfig() *gorm.Config {
	return &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	}
}

func openSQLite(path string) (*DB, error) {
	dir := filepath.Dir(path)
	if err := gnsys.MakeDir(dir); err != nil {
		return nil, OpenError(DriverSQLite, path, err)
	}

	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)"
	gormDB, err := gorm.Open(
		sqlite.New(sqlite.Config{DriverName: "sqlite", DSN: dsn}),
		gormConfig(),
	)
	if err != nil {
		return nil, OpenError(DriverSQLite, path, err)
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return nil, OpenError(DriverSQLite, path, err)
	}
	// SQLite allows one writer, transactions are serialized
	sqlDB.SetMaxOpenConns(1)

	slog.Debug("Opened SQLite species store", "path", path)
	return &DB{Gorm: gormDB, Driver: DriverSQLite, sqlDB: sqlDB}, nil
}

func openPostgres(ctx context.Context, cfg *config.DatabaseConfig) (*DB, error) {
	op := iodb.NewPgxOperator()
	if err := op.Connect(ctx, cfg); err != nil {
		return nil, err
	}

	exists, err := op.TableExists(ctx, schema.Species{}.TableName())
	if err != nil {
		_ = op.Close()
		return nil, err
	}
	if !exists {
		slog.Info("Creating species table", "database", cfg.Database)
	}

	sqlDB := stdlib.OpenDBFromPool(op.Pool())
	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		gormConfig(),
	)
	if err != nil {
		_ = sqlDB.Close()
		_ = op.Close()
		return nil, OpenError(DriverPostgres, cfg.Database, err)
	}

	slog.Debug("Opened PostgreSQL species store",
		"host", cfg.Host, "database", cfg.Database)
	return &DB{
		Gorm:     gormDB,
		Driver:   DriverPostgres,
		sqlDB:    sqlDB,
		operator: op,
	}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	var err error
	if d.sqlDB != nil {
		err = d.sqlDB.Close()
		d.sqlDB = nil
	}
	if d.operator != nil {
		_ = d.operator.Close()
		d.operator = nil
	}
	return err
}
