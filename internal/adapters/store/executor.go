// Package store runs read-only SQL against the tennis database and
// materializes the rows as typed tabular results.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"slices"
	"time"

	"github.com/go-sql-driver/mysql"
	_ "github.com/mattn/go-sqlite3"

	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/config"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/internal/domain/table"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/logger"
	"github.com/mmakshaya/Game-Analytics-Unlocking-Tennis-Data-with-SportRadar-API/pkg/metrics"
)

// Query outcomes reported to metrics.
const (
	outcomeOK         = "ok"
	outcomeConnection = "connection_error"
	outcomeQuery      = "query_error"
)

// Executor runs one statement and returns every row it produced.
type Executor interface {
	Execute(ctx context.Context, query string) (*table.Result, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, query string) (*table.Result, error)

// Execute calls f.
func (f ExecutorFunc) Execute(ctx context.Context, query string) (*table.Result, error) {
	return f(ctx, query)
}

// SQLExecutor opens a fresh connection for every call and closes it before
// returning, on success and failure alike.
type SQLExecutor struct {
	driver string
	dsn    string
	log    logger.Logger
}

// NewSQLExecutor builds an executor for a registered database/sql driver.
func NewSQLExecutor(driver, dsn string, opts ...Option) (*SQLExecutor, error) {
	if !slices.Contains(sql.Drivers(), driver) {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, driver)
	}
	o := buildOptions(opts)
	return &SQLExecutor{
		driver: driver,
		dsn:    dsn,
		log:    o.log.With(logger.String("driver", driver)),
	}, nil
}

// FromConfig builds the executor described by cfg.
func FromConfig(cfg *config.Config, opts ...Option) (*SQLExecutor, error) {
	return NewSQLExecutor(cfg.DBDriver, DSN(cfg), opts...)
}

// DSN renders the connection string for cfg. SQLite files are opened read-only
// so a missing file surfaces as a connection failure instead of being created.
func DSN(cfg *config.Config) string {
	if cfg.DBDriver == config.DriverSQLite {
		return fmt.Sprintf("file:%s?mode=ro", cfg.DBName)
	}
	mc := mysql.NewConfig()
	mc.User = cfg.DBUser
	mc.Passwd = cfg.DBPassword
	mc.Net = "tcp"
	mc.Addr = cfg.DBAddr()
	mc.DBName = cfg.DBName
	return mc.FormatDSN()
}

// Driver returns the database/sql driver name.
func (e *SQLExecutor) Driver() string { return e.driver }

// Execute runs query on a new connection.
func (e *SQLExecutor) Execute(ctx context.Context, query string) (res *table.Result, err error) {
	start := time.Now()
	outcome := outcomeOK
	defer func() {
		elapsed := time.Since(start)
		metrics.RecordQuery(e.driver, outcome, float64(elapsed.Microseconds())/1000, res.Len())
		if err != nil {
			e.log.Error(ctx, "query failed",
				logger.String("outcome", outcome),
				logger.Duration("elapsed", elapsed),
				logger.Error(err),
			)
			return
		}
		e.log.Debug(ctx, "query executed",
			logger.Int("rows", res.Len()),
			logger.Duration("elapsed", elapsed),
		)
	}()

	db, err := sql.Open(e.driver, e.dsn)
	if err != nil {
		outcome = outcomeConnection
		return nil, wrap("open", ErrConnection, err)
	}
	defer db.Close()
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(0)

	if err := db.PingContext(ctx); err != nil {
		outcome = outcomeConnection
		return nil, wrap("connect", ErrConnection, err)
	}

	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		outcome = outcomeQuery
		return nil, wrap("query", ErrQuery, err)
	}
	defer rows.Close()

	res, err = materialize(rows)
	if err != nil {
		outcome = outcomeQuery
		return nil, wrap("scan", ErrQuery, err)
	}
	return res, nil
}
