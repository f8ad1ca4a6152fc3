package checkers

import (
	"context"

	"gorm.io/gorm"
)

// SQLiteChecker pings the database behind a gorm handle.
type SQLiteChecker struct {
	db *gorm.DB
}

func NewSQLiteChecker(db *gorm.DB) *SQLiteChecker {
	return &SQLiteChecker{db: db}
}

func (c *SQLiteChecker) Name() string { return "sqlite" }

func (c *SQLiteChecker) Check(ctx context.Context) error {
	sqlDB, err := c.db.DB()
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	return sqlDB.PingContext(ctx)
}
