package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"transferregistry/internal/appcontext"
	"transferregistry/internal/entity"
)

func newTestContext(t *testing.T) *appcontext.Context {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "registry_test.db")
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.Exec("PRAGMA foreign_keys = ON").Error)
	require.NoError(t, db.AutoMigrate(&entity.Company{}, &entity.DataEntry{}))

	return &appcontext.Context{DB: db, Logger: zap.NewNop()}
}

func strptr(s string) *string {
	return &s
}
