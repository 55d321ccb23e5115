package server

import (
	"context"
	"path"

	"github.com/Daskott/rolodex/server/gstorage"
	"github.com/Daskott/rolodex/server/models"
	"github.com/Daskott/rolodex/shared"
	"github.com/Daskott/rolodex/utils"
	"github.com/go-co-op/gocron"
	"github.com/pkg/errors"
	"gorm.io/gorm"
)

const BACKUP_JOB_TAG = "backupSqliteDb"

type objectStorage interface {
	UploadFile(ctx context.Context, bucket, object, filePath string) error
	DownloadFile(ctx context.Context, bucket, object, destFilePath string) error
}

// sqliteBackup keeps a copy of the sqlite database file in a google storage bucket
type sqliteBackup struct {
	storage    objectStorage
	bucket     string
	object     string
	dbFilePath string

	// set once the database is open, used to flush the WAL before uploads
	db *gorm.DB
}

// newSqliteBackup returns nil when backups are disabled or the db isn't sqlite
func newSqliteBackup(config shared.ServerConfig) (*sqliteBackup, error) {
	storageConfig := config.Google.Storage
	if !storageConfig.EnableSqliteBackupAndSync || config.Database.Driver != shared.SQLITE_DRIVER {
		return nil, nil
	}

	dbFilePath, err := models.DbFilePath(config.Database.Dir)
	if err != nil {
		return nil, err
	}

	gStorage, err := gstorage.NewGStorage(config.Google.ApplicationCredentials)
	if err != nil {
		return nil, err
	}

	return &sqliteBackup{
		storage:    gStorage,
		bucket:     storageConfig.Bucket,
		object:     path.Join(storageConfig.Prefix, models.DB_NAME),
		dbFilePath: dbFilePath,
	}, nil
}

// restore downloads the last backup, unless a local database already exists
func (b *sqliteBackup) restore(ctx context.Context) error {
	exists, err := utils.FileExist(b.dbFilePath)
	if err != nil {
		return err
	}

	if exists {
		logg.Infof("Using local database %v", b.dbFilePath)
		return nil
	}

	err = b.storage.DownloadFile(ctx, b.bucket, b.object, b.dbFilePath)
	if errors.Is(err, gstorage.ErrObjectNotExist) {
		logg.Infof("No backup found at gs://%v/%v, starting with an empty database", b.bucket, b.object)
		return nil
	}

	if err != nil {
		return errors.Wrap(err, "restore")
	}

	logg.Infof("Database restored from gs://%v/%v", b.bucket, b.object)
	return nil
}

func (b *sqliteBackup) upload(ctx context.Context) error {
	if b.db != nil {
		if err := b.db.Exec("PRAGMA wal_checkpoint(TRUNCATE)").Error; err != nil {
			return errors.Wrap(err, "wal checkpoint")
		}
	}

	err := b.storage.UploadFile(ctx, b.bucket, b.object, b.dbFilePath)
	if err != nil {
		return errors.Wrap(err, "upload")
	}

	logg.Infof("Database backed up to gs://%v/%v", b.bucket, b.object)
	return nil
}

// schedule uploads the database periodically, based on cronExpression
func (b *sqliteBackup) schedule(scheduler *gocron.Scheduler, cronExpression string) error {
	_, err := scheduler.Cron(cronExpression).Tag(BACKUP_JOB_TAG).Do(func() {
		if err := b.upload(context.Background()); err != nil {
			logg.Error(err)
		}
	})

	return err
}
