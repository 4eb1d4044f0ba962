package services

import (
	"testing"

	"cosmobits-leads-api/config"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newMockDB swaps config.DB for a sqlmock-backed gorm handle.
// SkipDefaultTransaction keeps expectations for standalone writes free of
// BEGIN/COMMIT noise; explicit Transaction calls still produce them.
func newMockDB(t *testing.T) sqlmock.Sqlmock {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("failed to open sqlmock: %v", err)
	}

	gormDB, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open gorm: %v", err)
	}

	prev := config.DB
	config.DB = gormDB
	t.Cleanup(func() {
		config.DB = prev
		_ = sqlDB.Close()
	})

	return mock
}
