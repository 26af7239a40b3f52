package config

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// ConnectDB opens the postgres connection used by the persistent key-value
// store and the backup sync tables. A missing DB_URL is not fatal: the app
// falls back to the in-memory store and keeps full local functionality.
func ConnectDB(url string) (*gorm.DB, error) {
	if url == "" {
		return nil, nil
	}
	return gorm.Open(postgres.Open(url), &gorm.Config{})
}
