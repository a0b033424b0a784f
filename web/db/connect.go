package db

import (
	"os"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Connect opens the order log database when the DB env var is set. The
// service runs without one: the store helpers are nil-safe.
func Connect() {
	dsn := os.Getenv("DB")
	if dsn == "" {
		return
	}

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		panic(err)
	}
}

func Sync() {
	if DB == nil {
		return
	}
	if err := DB.AutoMigrate(&Order{}); err != nil {
		panic(err)
	}
}
