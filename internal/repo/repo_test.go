package repo

import (
	"testing"

	"bitfolio/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	require.NoError(t, db.AutoMigrate(&models.Setting{}))
	return db
}

func TestNew_NilDatabase(t *testing.T) {
	_, err := New(nil)
	require.ErrorIs(t, err, ErrNilDatabase)
}

func TestRepository_Migrate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	defer sqlDB.Close()

	repository, err := New(db)
	require.NoError(t, err)
	require.NoError(t, repository.Migrate())
	require.True(t, db.Migrator().HasTable(&models.Setting{}))
}
