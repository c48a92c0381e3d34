package config

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const (
	defaultComexDBPath   = "comex.db"
	defaultCatalogDBPath = "catalog.db"
)

// InitDB opens the main database (processes, items, history, declarations,
// users, change log). SQLite by default; set DB_DRIVER=mysql and DB_DSN for
// a shared server deployment.
func InitDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "mysql" {
		return gorm.Open(mysql.Open(os.Getenv("DB_DSN")), &gorm.Config{})
	}

	path := os.Getenv("COMEX_DB_PATH")
	if path == "" {
		path = defaultComexDBPath
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}

// InitCatalogDB opens the catalog database (products and NCM rates). Kept as
// a separate store: the cadastro is maintained independently of the
// follow-up and shared between tools.
func InitCatalogDB() (*gorm.DB, error) {
	if os.Getenv("DB_DRIVER") == "mysql" {
		dsn := os.Getenv("CATALOG_DB_DSN")
		if dsn == "" {
			dsn = os.Getenv("DB_DSN")
		}
		return gorm.Open(mysql.Open(dsn), &gorm.Config{})
	}

	path := os.Getenv("CATALOG_DB_PATH")
	if path == "" {
		path = defaultCatalogDBPath
	}
	return gorm.Open(sqlite.Open(path), &gorm.Config{})
}
