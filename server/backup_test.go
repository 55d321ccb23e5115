package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/Daskott/rolodex/server/cron"
	"github.com/Daskott/rolodex/server/gstorage"
	"github.com/Daskott/rolodex/shared"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type objectStorageStub struct {
	downloadErr   error
	uploadErr     error
	downloadCalls int
	uploaded      []string
	content       []byte
}

func (s *objectStorageStub) UploadFile(ctx context.Context, bucket, object, filePath string) error {
	s.uploaded = append(s.uploaded, bucket+"/"+object)
	return s.uploadErr
}

func (s *objectStorageStub) DownloadFile(ctx context.Context, bucket, object, destFilePath string) error {
	s.downloadCalls++
	if s.downloadErr != nil {
		return s.downloadErr
	}
	return os.WriteFile(destFilePath, s.content, 0600)
}

func newTestBackup(t *testing.T, storage *objectStorageStub) *sqliteBackup {
	return &sqliteBackup{
		storage:    storage,
		bucket:     "rolodex",
		object:     "rolodex-test/rolodex.db",
		dbFilePath: filepath.Join(t.TempDir(), "rolodex.db"),
	}
}

func TestNewSqliteBackupDisabled(t *testing.T) {
	backup, err := newSqliteBackup(shared.ServerConfig{
		Database: shared.DatabaseConfig{Driver: shared.SQLITE_DRIVER},
	})
	assert.Nil(t, err)
	assert.Nil(t, backup)

	backup, err = newSqliteBackup(shared.ServerConfig{
		Database: shared.DatabaseConfig{Driver: shared.POSTGRES_DRIVER},
		Google:   shared.GoogleConfig{Storage: shared.StorageConfig{EnableSqliteBackupAndSync: true}},
	})
	assert.Nil(t, err)
	assert.Nil(t, backup, "Backups only apply to sqlite databases")
}

func TestRestore(t *testing.T) {
	t.Run("Should download the backup when there's no local database", func(t *testing.T) {
		storage := &objectStorageStub{content: []byte("db")}
		backup := newTestBackup(t, storage)

		require.Nil(t, backup.restore(context.Background()))

		content, err := os.ReadFile(backup.dbFilePath)
		require.Nil(t, err)
		assert.Equal(t, "db", string(content))
	})

	t.Run("Should keep an existing local database", func(t *testing.T) {
		storage := &objectStorageStub{}
		backup := newTestBackup(t, storage)
		require.Nil(t, os.WriteFile(backup.dbFilePath, []byte("local"), 0600))

		require.Nil(t, backup.restore(context.Background()))
		assert.Equal(t, 0, storage.downloadCalls)
	})

	t.Run("Should start empty when there's no backup", func(t *testing.T) {
		storage := &objectStorageStub{downloadErr: gstorage.ErrObjectNotExist}
		backup := newTestBackup(t, storage)

		assert.Nil(t, backup.restore(context.Background()))
	})
}

func TestUploadAndSchedule(t *testing.T) {
	storage := &objectStorageStub{}
	backup := newTestBackup(t, storage)

	require.Nil(t, backup.upload(context.Background()))
	assert.Equal(t, []string{"rolodex/rolodex-test/rolodex.db"}, storage.uploaded)

	scheduler := cron.NewCronScheduler("UTC")
	require.Nil(t, backup.schedule(scheduler, "*/30 * * * *"))
	assert.Len(t, scheduler.Jobs(), 1)

	assert.NotNil(t, backup.schedule(scheduler, "not a cron expression"))
}
