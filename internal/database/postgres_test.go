package database

import (
	"testing"

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

func TestMigrateCreatesSchema(t *testing.T) {
	db := openTestDB(t)

	require.NoError(t, Migrate(db))

	for _, table := range []string{"users", "drink_logs", "goals", "consultations"} {
		assert.True(t, db.Migrator().HasTable(table), table)
	}
	assert.True(t, db.Migrator().HasIndex(&DrinkLog{}, "idx_drink_logs_user_date_type"))
	assert.True(t, db.Migrator().HasIndex(&Goal{}, "idx_goals_one_active_per_type"))
}

func TestOneActiveGoalPerType(t *testing.T) {
	db := openTestDB(t)
	require.NoError(t, Migrate(db))

	first := Goal{UserID: "u1", Type: "weekly_limit", TargetValue: 3, StartDate: "2026-10-11", IsActive: true}
	require.NoError(t, db.Create(&first).Error)

	second := Goal{UserID: "u1", Type: "weekly_limit", TargetValue: 2, StartDate: "2026-10-12", IsActive: true}
	assert.Error(t, db.Create(&second).Error)

	inactive := Goal{UserID: "u1", Type: "weekly_limit", TargetValue: 2, StartDate: "2026-10-12"}
	assert.NoError(t, db.Create(&inactive).Error)
}
