package database

import (
	"testing"

	"inkwell/internal/config"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestConfigurePool(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	cfg := &config.Config{
		DBMaxOpenConns:           10,
		DBMaxIdleConns:           5,
		DBConnMaxLifetimeMinutes: 15,
	}

	err = configurePool(db, cfg)
	assert.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.NotNil(t, sqlDB.Stats())
}

func TestConfigurePool_DefaultsForZeroValues(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = configurePool(db, &config.Config{})
	assert.NoError(t, err)
}

func TestAutoMigrateModels(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	err = db.AutoMigrate(&models.User{}, &models.Post{}, &models.Comment{})
	require.NoError(t, err)

	for _, table := range []string{"users", "posts", "comments"} {
		assert.True(t, db.Migrator().HasTable(table), "expected table %s", table)
	}
	assert.True(t, db.Migrator().HasColumn(&models.Post{}, "user_id"))
	assert.True(t, db.Migrator().HasColumn(&models.Comment{}, "post_id"))
}
