package models

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/Daskott/rolodex/server/logger"
	"github.com/Daskott/rolodex/shared"
	"github.com/Daskott/rolodex/utils"
	sqliteEncrypt "github.com/Daskott/gorm-sqlite-cipher"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

const DB_NAME = "rolodex.db"

var logg = logger.NewLogger()

// OpenDB connects to the database described by config. Sqlite databases are
// stored as DB_NAME under '<config.Dir>/db'.
func OpenDB(config shared.DatabaseConfig, devMode bool) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch config.Driver {
	case shared.SQLITE_DRIVER:
		dsn, err := sqliteDSN(config.Sqlite.PassPhrase, config.Dir)
		if err != nil {
			return nil, fmt.Errorf("failed to set sqlite DSN: %v", err)
		}
		dialector = sqliteEncrypt.Open(dsn)
	case shared.POSTGRES_DRIVER:
		if config.Postgres.DSN == "" {
			return nil, fmt.Errorf("'database.postgres.dsn' is required for the postgres driver")
		}
		dialector = postgres.Open(config.Postgres.DSN)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", config.Driver)
	}

	logLevel := gormLogger.Silent
	if devMode {
		logLevel = gormLogger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				LogLevel:                  logLevel,
				IgnoreRecordNotFoundError: true,
				Colorful:                  devMode,
			},
		),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %v", err)
	}

	return db, nil
}

// AutoMigrate auto-migrates the db schema
func AutoMigrate(db *gorm.DB) error {
	logg.Info("Migrating database schema")
	return db.AutoMigrate(&User{}, &Address{})
}

// DbFilePath returns the path of the sqlite database file under dbRootDir
func DbFilePath(dbRootDir string) (string, error) {
	dbDir, err := DbDirectory(dbRootDir)
	if err != nil {
		return "", err
	}

	return filepath.Join(dbDir, DB_NAME), nil
}

func DbDirectory(dbRootDir string) (string, error) {
	dbDir := filepath.Join(dbRootDir, "db")

	err := utils.CreateDirIfNotExist(dbDir)
	if err != nil {
		return "", err
	}

	return dbDir, nil
}

// ---------------------------------------------------------------------------------//
// Helper functions
// --------------------------------------------------------------------------------//

func sqliteDSN(passPhrase string, dbRootDir string) (string, error) {
	dbFilePath, err := DbFilePath(dbRootDir)
	if err != nil {
		return "", err
	}

	dsn := fmt.Sprintf("file:%v?_foreign_keys=1&_journal_mode=WAL", dbFilePath)
	if passPhrase != "" {
		dsn = fmt.Sprintf("%v&_pragma_key=%s&_pragma_cipher_page_size=4096", dsn, passPhrase)
	}

	return dsn, nil
}
