package migrations

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

func TestLoadSQLAndRun(t *testing.T) {
	db := openTestDB(t)
	fsys := fstest.MapFS{
		"sql/0002_seed.sql":   {Data: []byte("INSERT INTO things (name) VALUES ('first');")},
		"sql/0001_create.sql": {Data: []byte("CREATE TABLE things (name TEXT NOT NULL);")},
		"sql/README.md":       {Data: []byte("ignored")},
	}

	m := NewMigrator()
	require.NoError(t, m.LoadSQL(fsys, "sql"))
	assert.Len(t, m.migrations, 2)

	require.NoError(t, m.Run(db))

	var count int64
	require.NoError(t, db.Table("things").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	var records []MigrationRecord
	require.NoError(t, db.Order("id").Find(&records).Error)
	require.Len(t, records, 2)
	assert.Equal(t, "0001_create", records[0].ID)
	assert.Equal(t, "0002_seed", records[1].ID)

	// a second run applies nothing
	require.NoError(t, m.Run(db))
	require.NoError(t, db.Table("things").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestRunStopsOnFailure(t *testing.T) {
	db := openTestDB(t)

	m := NewMigrator()
	m.Register("0001_bad", func(tx *gorm.DB) error {
		return tx.Exec("CREATE TABLE broken (").Error
	}, nil)

	err := m.Run(db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "0001_bad")

	var count int64
	require.NoError(t, db.Model(&MigrationRecord{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoadSQLMissingDir(t *testing.T) {
	m := NewMigrator()
	assert.Error(t, m.LoadSQL(fstest.MapFS{}, "sql"))
}

func TestEmbeddedMigrationsLoad(t *testing.T) {
	m := NewMigrator()
	require.NoError(t, m.LoadSQL(SQLFiles, "sql"))
	assert.NotEmpty(t, m.migrations)
}
