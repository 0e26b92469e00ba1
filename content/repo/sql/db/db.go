package db

import (
	"database/sql"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/urandom/feedkeeper/content"
	"github.com/urandom/feedkeeper/log"
)

type DB struct {
	*sqlx.DB
	log log.Log

	suspended atomic.Bool
}

var (
	dbVersion = 1

	helpers = make(map[string]Helper)
)

// MaxBatch bounds the number of bound parameters in a single IN clause.
const MaxBatch = 500

func New(log log.Log) *DB {
	return &DB{log: log}
}

func (db *DB) Open(driver, connect string) (err error) {
	if dir := fileDir(connect); dir != "" {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrapf(err, "creating db directory %s", dir)
		}
	}
	db.DB, err = sqlx.Connect(driver, connect)

	if err == nil {
		err = db.init()
	}

	return err
}

func fileDir(connect string) string {
	u, err := url.Parse(connect)
	if err != nil || u.Scheme != "file" {
		return ""
	}

	path := u.Opaque
	if path == "" {
		path = u.Path
	}

	if path == "" || strings.HasPrefix(path, ":memory:") {
		return ""
	}

	if dir := filepath.Dir(path); dir != "." {
		return dir
	}

	return ""
}

// Suspend causes Check to fail with content.ErrSuspended.
func (db *DB) Suspend() {
	if db.suspended.CompareAndSwap(false, true) {
		db.log.Infoln("Suspending database access")
	}
}

func (db *DB) Resume() {
	if db.suspended.CompareAndSwap(true, false) {
		db.log.Infoln("Resuming database access")
	}
}

// Check returns content.ErrSuspended while the database is suspended.
func (db *DB) Check() error {
	if db.suspended.Load() {
		return content.ErrSuspended
	}

	return nil
}

func (db *DB) WithNamedStmt(query string, tx *sqlx.Tx, cb func(*sqlx.NamedStmt) error) error {
	if err := db.Check(); err != nil {
		return err
	}

	var stmt *sqlx.NamedStmt
	var err error

	if tx == nil {
		stmt, err = db.PrepareNamed(query)
	} else {
		stmt, err = tx.PrepareNamed(query)
	}
	if err != nil {
		return errors.WithMessage(err, "preparing named statement")
	}
	defer stmt.Close()

	return cb(stmt)
}

func (db *DB) WithStmt(query string, tx *sqlx.Tx, cb func(*sqlx.Stmt) error) error {
	if err := db.Check(); err != nil {
		return err
	}

	var stmt *sqlx.Stmt
	var err error

	if tx == nil {
		stmt, err = db.Preparex(query)
	} else {
		stmt, err = tx.Preparex(query)
	}
	if err != nil {
		return errors.WithMessage(err, "preparing statement")
	}
	defer stmt.Close()

	return cb(stmt)
}

func (db *DB) WithTx(cb func(*sqlx.Tx) error) error {
	if err := db.Check(); err != nil {
		return err
	}

	tx, err := db.Beginx()
	if err != nil {
		return errors.WithMessage(err, "creating transaction")
	}
	defer tx.Rollback()

	if err := cb(tx); err != nil {
		return errors.WithMessage(err, "executing transaction")
	}

	if err := tx.Commit(); err != nil {
		return errors.WithMessage(err, "committing transaction")
	}

	return nil
}

func (db *DB) WithNamedTx(query string, cb func(*sqlx.NamedStmt) error) error {
	return db.WithTx(func(tx *sqlx.Tx) error {
		stmt, err := tx.PrepareNamed(query)
		if err != nil {
			return errors.WithMessage(err, "preparing named statement")
		}
		defer stmt.Close()

		return cb(stmt)
	})
}

// In expands the ? placeholders of query for the given args, including
// slices, and rebinds it for the current driver.
func (db *DB) In(query string, args ...interface{}) (string, []interface{}, error) {
	query, args, err := sqlx.In(query, args...)
	if err != nil {
		return "", nil, errors.Wrap(err, "expanding query arguments")
	}

	return db.Rebind(query), args, nil
}

func (db *DB) init() error {
	helper := helpers[db.DriverName()]

	if helper == nil {
		return errors.Errorf("no helper provided for driver '%s'", db.DriverName())
	}

	for _, sql := range helper.InitSQL() {
		_, err := db.Exec(sql)
		if err != nil {
			return errors.Wrapf(err, "executing '%s'", sql)
		}
	}

	var version int
	if err := db.Get(&version, "SELECT db_version FROM feedkeeper"); err != nil {
		if err == sql.ErrNoRows {
			version = dbVersion
		} else {
			return errors.Wrap(err, "getting the current db_version")
		}
	}

	if version > dbVersion {
		panic(fmt.Sprintf("The db version '%d' is newer than the expected '%d'", version, dbVersion))
	}

	if version < dbVersion {
		db.log.Infof("Database version mismatch: current is %d, expected %d\n", version, dbVersion)
		db.log.Infof("Running upgrade function for %s driver\n", db.DriverName())
		if err := helper.Upgrade(db, version, dbVersion); err != nil {
			return errors.Wrapf(err, "Error running upgrade function for %s driver", db.DriverName())
		}
	}

	_, err := db.Exec(`DELETE FROM feedkeeper`)
	if err == nil {
		_, err = db.Exec(db.Rebind(`INSERT INTO feedkeeper(db_version) VALUES(?)`), dbVersion)
	}
	if err != nil {
		return errors.Wrap(err, "initializing feedkeeper utility table")
	}

	return nil
}
