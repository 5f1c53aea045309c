// Package testutil holds fixtures shared by package tests: an in-memory
// SQLite database with the production schema and a miniredis server.
package testutil

import (
	"testing"
	"time"

	"math_edu_backend/internal/model"
	"math_edu_backend/pkg/database"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/go-redis/redis/v8"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func NewDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("NewDB() failed: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("NewDB() failed: %v", err)
	}
	// every connection to :memory: is a separate database
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := database.Migrate(db); err != nil {
		t.Fatalf("NewDB() migrate failed: %v", err)
	}
	return db
}

func NewRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return rdb, mr
}

func CreateUser(t *testing.T, db *gorm.DB, email, password string, role model.UserRole, fullName string) (*model.User, *model.Profile) {
	t.Helper()
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	user := &model.User{Email: email, Password: string(hashed)}
	if err := db.Create(user).Error; err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	profile := &model.Profile{Role: role, FullName: fullName, GradeLevel: 9}
	profile.ID = user.ID
	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("CreateUser() failed: %v", err)
	}
	return user, profile
}

func CreateLesson(t *testing.T, db *gorm.DB, title string, order int, animationType string, cfg map[string]interface{}) *model.Lesson {
	t.Helper()
	lesson := &model.Lesson{
		Title:           title,
		Content:         "# " + title + "\n\nLesson body for **" + title + "**.",
		AnimationType:   animationType,
		AnimationConfig: datatypes.JSONMap(cfg),
		LessonOrder:     order,
	}
	if err := db.Create(lesson).Error; err != nil {
		t.Fatalf("CreateLesson() failed: %v", err)
	}
	return lesson
}

func CreateHomework(t *testing.T, db *gorm.DB, lessonID, title string, due time.Time) *model.Homework {
	t.Helper()
	hw := &model.Homework{LessonID: lessonID, Title: title, Description: "Solve the exercises.", DueDate: due}
	if err := db.Create(hw).Error; err != nil {
		t.Fatalf("CreateHomework() failed: %v", err)
	}
	return hw
}
