package service

import (
	"testing"

	"hangulhub/internal/model"
	"hangulhub/internal/repository"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB opens an isolated in-memory database with the full schema.
// MaxOpenConns is pinned to 1 so every session sees the same memory store.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err, "failed to open test database")

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	require.NoError(t, repository.AutoMigrate(db), "failed to migrate test database")
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string, points int) *model.User {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)

	user := &model.User{
		Name:     "Test User",
		Email:    email,
		Username: email,
		Password: string(hash),
		Level:    model.DefaultUserLevel,
		Points:   points,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}
