package db

import (
	"fmt"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

type Config struct {
	Driver   string
	Path     string // sqlite database file
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
}

// Connect opens the relay database. sqlite is the standalone default,
// mysql for shared deployments.
func Connect(cfg Config) (*gorm.DB, error) {
	switch cfg.Driver {
	case "", "sqlite":
		return gorm.Open(sqlite.Open(cfg.Path), &gorm.Config{})
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	default:
		return nil, fmt.Errorf("unsupported db driver: %s", cfg.Driver)
	}
}
