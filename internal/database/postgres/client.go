package postgres

import (
	"database/sql"
	"fmt"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// OpenGorm оборачивает уже открытый пул соединений в GORM.
// Миграции применяет database/client через golang-migrate, AutoMigrate не используется.
func OpenGorm(db *sql.DB) (*gorm.DB, error) {
	return openDialector(postgres.New(postgres.Config{Conn: db}))
}

func openDialector(dialector gorm.Dialector) (*gorm.DB, error) {
	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormlogger.Discard,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("ошибка инициализации GORM: %w", err)
	}
	return gdb, nil
}
