package mysql

import (
	"database/sql"
	"errors"

	"blogapi/config"
	db2 "blogapi/db"

	"github.com/golang-migrate/migrate/v4"
	migratemysql "github.com/golang-migrate/migrate/v4/database/mysql"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	"github.com/upper/db/v4"
	upmysql "github.com/upper/db/v4/adapter/mysql"
)

type MySQLDB struct {
	*UserDB
	*PostDB
	sess  db.Session
	sqlDB *sql.DB
}

func GetDatabase(cfg *config.DBConfig) (db2.Database, error) {
	sqlDB, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.MaxConns)
	sqlDB.SetMaxOpenConns(cfg.MaxConns)
	sqlDB.SetConnMaxIdleTime(0)

	if cfg.MigrationsPath != "" {
		if err := runMigrations(sqlDB, cfg.MigrationsPath); err != nil {
			return nil, err
		}
	}

	sess, err := upmysql.New(sqlDB)
	if err != nil {
		return nil, err
	}

	return &MySQLDB{
		UserDB: getUserDB(sess),
		PostDB: getPostDB(sess),
		sess:   sess,
		sqlDB:  sqlDB,
	}, nil
}

func runMigrations(sqlDB *sql.DB, path string) error {
	driver, err := migratemysql.WithInstance(sqlDB, &migratemysql.Config{})
	if err != nil {
		return err
	}
	m, err := migrate.NewWithDatabaseInstance("file://"+path, "mysql", driver)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	return nil
}

func (mdb *MySQLDB) Close() error {
	return mdb.sess.Close()
}
