package store

import (
	"errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/sqlite3"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/matheus3301/cmdc/internal/store/migrations"
)

// historyTables are the tables the page and run history read and write.
var historyTables = []string{"page_history", "action_runs"}

// ErrDirtySchema is returned when a previous migration stopped halfway.
var ErrDirtySchema = errors.New("history schema is dirty")

// MigrateResult reports the history schema version after migrating.
type MigrateResult struct {
	Version uint
	Dirty   bool
	Changed bool
}

// Migrate brings the history schema up to date and checks that the
// page_history and action_runs tables exist.
func (db *DB) Migrate() (*MigrateResult, error) {
	source, err := iofs.New(migrations.FS, ".")
	if err != nil {
		return nil, fmt.Errorf("history migrations: %w", err)
	}
	driver, err := sqlite3.WithInstance(db.DB, &sqlite3.Config{})
	if err != nil {
		return nil, fmt.Errorf("history migration driver: %w", err)
	}
	m, err := migrate.NewWithInstance("iofs", source, "sqlite3", driver)
	if err != nil {
		return nil, fmt.Errorf("history migration: %w", err)
	}

	res := &MigrateResult{Changed: true}
	var dirty migrate.ErrDirty
	if err := m.Up(); errors.Is(err, migrate.ErrNoChange) {
		res.Changed = false
	} else if errors.As(err, &dirty) {
		return &MigrateResult{Version: uint(dirty.Version), Dirty: true}, fmt.Errorf("%w at version %d", ErrDirtySchema, dirty.Version)
	} else if err != nil {
		return nil, fmt.Errorf("migrate history schema: %w", err)
	}

	res.Version, res.Dirty, err = m.Version()
	if err != nil && !errors.Is(err, migrate.ErrNilVersion) {
		return nil, fmt.Errorf("history schema version: %w", err)
	}
	if res.Dirty {
		return res, fmt.Errorf("%w at version %d", ErrDirtySchema, res.Version)
	}
	if err := db.checkTables(); err != nil {
		return res, err
	}
	return res, nil
}

func (db *DB) checkTables() error {
	for _, name := range historyTables {
		var n int
		err := db.QueryRow(`SELECT COUNT(*) FROM sqlite_master WHERE type = 'table' AND name = ?`, name).Scan(&n)
		if err != nil {
			return fmt.Errorf("check table %s: %w", name, err)
		}
		if n == 0 {
			return fmt.Errorf("history table %s missing after migration", name)
		}
	}
	return nil
}
