package db

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"
)

type nopDriver struct{}

func (d nopDriver) Open(name string) (driver.Conn, error) {
	return nopConn{}, nil
}

type nopConn struct{}

func (nopConn) Prepare(query string) (driver.Stmt, error) { return nopStmt{}, nil }
func (nopConn) Close() error                              { return nil }
func (nopConn) Begin() (driver.Tx, error)                 { return nopTx{}, nil }
func (nopConn) Ping(ctx context.Context) error            { return nil }

type nopStmt struct{}

func (nopStmt) Close() error                                    { return nil }
func (nopStmt) NumInput() int                                   { return -1 }
func (nopStmt) Exec(args []driver.Value) (driver.Result, error) { return nopResult{}, nil }
func (nopStmt) Query(args []driver.Value) (driver.Rows, error)  { return nopRows{}, nil }

type nopTx struct{}

func (nopTx) Commit() error   { return nil }
func (nopTx) Rollback() error { return nil }

type nopResult struct{}

func (nopResult) LastInsertId() (int64, error) { return 0, nil }
func (nopResult) RowsAffected() (int64, error) { return 0, nil }

type nopRows struct{}

func (nopRows) Columns() []string              { return []string{} }
func (nopRows) Close() error                   { return nil }
func (nopRows) Next(dest []driver.Value) error { return driver.ErrBadConn }

var registerTestDriverOnce sync.Once

func ensureTestDriverRegistered() {
	registerTestDriverOnce.Do(func() {
		sql.Register("dbtest", nopDriver{})
	})
}

func withTestDriver(t *testing.T) (*string, func()) {
	t.Helper()
	ensureTestDriverRegistered()
	prev := openDB
	var gotDriver string
	openDB = func(name, dsn string) (*sql.DB, error) {
		gotDriver = name
		return sql.Open("dbtest", dsn)
	}
	return &gotDriver, func() {
		openDB = prev
	}
}

func TestSQLiteDSNPragmas(t *testing.T) {
	file := sqliteDSN("/tmp/entitlements.db")
	for _, want := range []string{"busy_timeout%285000%29", "foreign_keys%281%29", "journal_mode%28WAL%29"} {
		if !strings.Contains(file, want) {
			t.Fatalf("expected %q in %q", want, file)
		}
	}
	if mem := sqliteDSN(":memory:"); strings.Contains(mem, "journal_mode") {
		t.Fatalf("in-memory dsn should skip WAL: %q", mem)
	}
}

func TestConnectUsesPgxDriver(t *testing.T) {
	gotDriver, restore := withTestDriver(t)
	defer restore()

	db, err := Connect(context.Background(), "postgres://ignored", DefaultServerOptions())
	if err != nil {
		t.Fatalf("Connect: %v", err)
	}
	defer db.Close()

	if *gotDriver != DriverPostgres {
		t.Fatalf("expected driver %q, got %q", DriverPostgres, *gotDriver)
	}
	if got := db.Stats().MaxOpenConnections; got != 10 {
		t.Fatalf("expected max open 10, got %d", got)
	}
}

func TestConnectRejectsEmptyURL(t *testing.T) {
	if _, err := Connect(context.Background(), "  ", DefaultServerOptions()); err == nil {
		t.Fatalf("expected error for empty DATABASE_URL")
	}
}

func TestOptionsFromEnvOverrides(t *testing.T) {
	t.Setenv("DB_MAX_OPEN_CONNS", "3")
	t.Setenv("DB_PING_TIMEOUT", "750ms")
	t.Setenv("DB_MAX_IDLE_CONNS", "not-a-number")

	opts := OptionsFromEnv(DefaultServerOptions())
	if opts.MaxOpenConns != 3 {
		t.Fatalf("expected MaxOpenConns 3, got %d", opts.MaxOpenConns)
	}
	if opts.PingTimeout != 750*time.Millisecond {
		t.Fatalf("expected PingTimeout 750ms, got %s", opts.PingTimeout)
	}
	if opts.MaxIdleConns != DefaultServerOptions().MaxIdleConns {
		t.Fatalf("expected invalid int to keep default, got %d", opts.MaxIdleConns)
	}
}

func TestRunMigrationsSQLite(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "stack.db")

	sqlDB, err := OpenSQLite(ctx, path, SQLiteOptions())
	if err != nil {
		t.Fatalf("OpenSQLite: %v", err)
	}
	defer sqlDB.Close()

	if err := RunMigrations(ctx, sqlDB, DriverSQLite); err != nil {
		t.Fatalf("RunMigrations: %v", err)
	}

	var name string
	err = sqlDB.QueryRowContext(ctx, `SELECT name FROM sqlite_master WHERE type = 'table' AND name = 'entitlements'`).Scan(&name)
	if err != nil {
		t.Fatalf("expected entitlements table: %v", err)
	}
}

func TestRunMigrationsNilDatabase(t *testing.T) {
	if err := RunMigrations(context.Background(), nil, DriverPostgres); err != nil {
		t.Fatalf("expected nil database to be a no-op, got %v", err)
	}
}

func TestRunMigrationsUnknownDriver(t *testing.T) {
	ensureTestDriverRegistered()
	sqlDB, err := sql.Open("dbtest", "")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer sqlDB.Close()
	if err := RunMigrations(context.Background(), sqlDB, "mysql"); err == nil {
		t.Fatalf("expected error for unknown driver")
	}
}
