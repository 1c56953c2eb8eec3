package logic

import (
	"fmt"
	"strings"
	"testing"

	"github.com/blues/afs/internal/config"
	"github.com/blues/afs/internal/database"
	"github.com/blues/afs/internal/model"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// newTestDB 每个测试一个独立的内存库
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	return db
}

func newTestAuthLogic(db *gorm.DB) *AuthLogic {
	return NewAuthLogic(db, config.AuthConfig{TokenTTLMinutes: 60})
}

// registerUser 注册测试用户
func registerUser(t *testing.T, auth *AuthLogic, name, email, role string) (*model.User, string) {
	t.Helper()

	user, token, err := auth.Register(RegisterInput{
		Name:     name,
		Email:    email,
		Password: "password123",
		Phone:    "0700000000",
		Role:     role,
	})
	require.NoError(t, err)
	return user, token
}
