package backup

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/library-catalog/internal/database"
	"github.com/mrlokans/library-catalog/internal/entities"
)

func setupBackupTest(t *testing.T) (*Scheduler, string, func()) {
	t.Helper()

	dbPath := "./test_backup_" + strings.ReplaceAll(t.Name(), "/", "_") + ".db"
	db, err := database.NewDatabase(dbPath)
	require.NoError(t, err)

	require.NoError(t, db.DB.Create(&entities.Author{Name: "Jane Doe"}).Error)

	dir := t.TempDir()
	scheduler := NewScheduler(db.DB, dir, 2)

	cleanup := func() {
		db.Close()
		os.Remove(dbPath)
	}
	return scheduler, dir, cleanup
}

func listBackups(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	var names []string
	for _, entry := range entries {
		names = append(names, entry.Name())
	}
	return names
}

func TestScheduler_Run_WritesConsistentSnapshot(t *testing.T) {
	scheduler, dir, cleanup := setupBackupTest(t)
	defer cleanup()

	require.NoError(t, scheduler.Run())

	backups := listBackups(t, dir)
	require.Len(t, backups, 1)
	assert.True(t, strings.HasPrefix(backups[0], "library-"))
	assert.True(t, strings.HasSuffix(backups[0], ".sqlite"))

	// The snapshot is a valid database containing the seeded rows
	snapshot, err := database.NewDatabase(filepath.Join(dir, backups[0]))
	require.NoError(t, err)
	defer snapshot.Close()

	var count int64
	require.NoError(t, snapshot.DB.Model(&entities.Author{}).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestScheduler_Run_PrunesOldSnapshots(t *testing.T) {
	scheduler, dir, cleanup := setupBackupTest(t)
	defer cleanup()

	require.NoError(t, scheduler.Run())
	require.NoError(t, scheduler.Run())
	require.NoError(t, scheduler.Run())

	backups := listBackups(t, dir)
	assert.Len(t, backups, 2)
}

func TestScheduler_Start_RejectsInvalidSchedule(t *testing.T) {
	scheduler, _, cleanup := setupBackupTest(t)
	defer cleanup()

	err := scheduler.Start("not a schedule")
	assert.Error(t, err)
}
