package services

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/logger"
	"github.com/xuanhoatrieu/ai-teaching-assistant/internal/types"
)

var (
	logOnce sync.Once
	logg    *logger.Logger
	logErr  error
)

func testLogger(tb testing.TB) *logger.Logger {
	tb.Helper()
	logOnce.Do(func() {
		logg, logErr = logger.New("test")
	})
	if logErr != nil {
		tb.Fatalf("failed to init logger: %v", logErr)
	}
	return logg
}

// testDB opens a per-test in-memory sqlite database with the full schema
// migrated. The named DSN keeps the database alive across pooled
// connections within one test and isolated between tests.
func testDB(tb testing.TB) *gorm.DB {
	tb.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		tb.Fatalf("failed to open test db: %v", err)
	}
	if err := db.AutoMigrate(
		&types.User{},
		&types.UserToken{},
		&types.Subject{},
		&types.Lesson{},
		&types.Slide{},
		&types.PromptTemplate{},
		&types.ApiKey{},
		&types.SystemConfig{},
		&types.Question{},
	); err != nil {
		tb.Fatalf("failed to migrate test db: %v", err)
	}
	return db
}

func seedUser(tb testing.TB, db *gorm.DB, email string) *types.User {
	tb.Helper()
	u := &types.User{Email: email, Password: "x", FullName: "Test User"}
	if err := db.Create(u).Error; err != nil {
		tb.Fatalf("seed user: %v", err)
	}
	return u
}

func seedSubject(tb testing.TB, db *gorm.DB, userID uuid.UUID) *types.Subject {
	tb.Helper()
	s := &types.Subject{
		UserID:     userID,
		Name:       "Operating Systems",
		CourseName: "CS 301",
	}
	if err := db.Create(s).Error; err != nil {
		tb.Fatalf("seed subject: %v", err)
	}
	return s
}

func seedLesson(tb testing.TB, db *gorm.DB, subjectID, userID uuid.UUID) *types.Lesson {
	tb.Helper()
	l := &types.Lesson{
		SubjectID: subjectID,
		UserID:    userID,
		Title:     "Process Scheduling",
		Status:    types.LessonStatusDraft,
	}
	if err := db.Create(l).Error; err != nil {
		tb.Fatalf("seed lesson: %v", err)
	}
	return l
}
