// Package dbtest opens a migrated, file-backed SQLite database for tests.
package dbtest

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/google/uuid"

	"github.com/mrlokans/careerpath/internal/database"
	"github.com/mrlokans/careerpath/internal/entities"
)

// Open returns a fresh database in t.TempDir that is closed when the test ends.
func Open(t *testing.T) *gorm.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "test.db")
	db, err := database.Open(sqlite.Open(database.SQLiteDSN(path)), logger.Silent)
	require.NoError(t, err)

	t.Cleanup(func() {
		_ = db.Close()
	})
	return db.DB
}

// CreateUser inserts a user with a placeholder password hash.
func CreateUser(t *testing.T, db *gorm.DB, username string) *entities.User {
	t.Helper()

	user := &entities.User{
		ID:           uuid.New(),
		FullName:     username + " Tester",
		Username:     username,
		Email:        username + "@example.com",
		PasswordHash: "$2a$04$placeholderplaceholderplaceholderplaceholderpl",
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreateCareer(t *testing.T, db *gorm.DB, owner *entities.User, title string) *entities.Career {
	t.Helper()

	career := &entities.Career{UserID: owner.ID, Title: title, Description: title + " description"}
	require.NoError(t, db.Create(career).Error)
	return career
}

func CreateCourse(t *testing.T, db *gorm.DB, owner *entities.User, career *entities.Career, title string) *entities.Course {
	t.Helper()

	course := &entities.Course{UserID: owner.ID, CareerID: career.ID, Title: title, Description: title + " description"}
	require.NoError(t, db.Create(course).Error)
	return course
}
