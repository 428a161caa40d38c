package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"github.com/uofr/moodle-block-export-quiz/internal/config"
)

func TestNewHostDB_SQLite(t *testing.T) {
	db, err := NewHostDB(config.DatabaseConfig{
		Driver:      config.DriverSQLite,
		Path:        filepath.Join(t.TempDir(), "host.db"),
		TablePrefix: "mdl_",
		LogLevel:    "silent",
	})
	require.NoError(t, err)

	sqlDB, err := GetSQLDB(db)
	require.NoError(t, err)
	defer sqlDB.Close()
	require.NoError(t, sqlDB.Ping())

	assert.Equal(t, "mdl_quiz_slots", db.NamingStrategy.TableName("quiz_slots"))
	assert.Equal(t, "mdl_question", db.NamingStrategy.TableName("question"))
}

func TestNewHostDB_UnknownDriver(t *testing.T) {
	_, err := NewHostDB(config.DatabaseConfig{Driver: "oracle"})
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, parseLogLevel("silent"))
	assert.Equal(t, logger.Info, parseLogLevel("info"))
	assert.Equal(t, logger.Warn, parseLogLevel(""))
}

func TestNewRedisClient_Disabled(t *testing.T) {
	client, err := NewRedisClient(config.RedisConfig{})
	require.NoError(t, err)
	assert.Nil(t, client)
}
