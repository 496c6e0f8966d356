package app

import (
	"fmt"
	"path/filepath"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/openharvest/bargain/config"
	"github.com/openharvest/bargain/internal/catalog"
	"github.com/openharvest/bargain/internal/domain"
)

// getDatabase opens the configured database. Postgres is the production
// backend; sqlite keeps development and CI self-contained.
func getDatabase(cfg config.DBConfig, workdir string) *gorm.DB {
	logLevel := gormlogger.Silent
	if cfg.Debug {
		logLevel = gormlogger.Info
	}
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	}

	var db *gorm.DB
	var err error
	switch cfg.Type {
	case "sqlite":
		dbfile := filepath.Join(workdir, "data", "bargain.db")
		db, err = gorm.Open(sqlite.Open(dbfile), gormCfg)
	default:
		dsn := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=Asia/Seoul",
			cfg.Host, cfg.Port, cfg.User, cfg.Passwd, cfg.Name)
		db, err = gorm.Open(postgres.Open(dsn), gormCfg)
	}
	if err != nil {
		zap.S().Fatalf("failed to connect database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		zap.S().Fatalf("failed to access database pool: %v", err)
	}
	if cfg.MaxConn > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxConn)
	}
	if cfg.IdleConn > 0 {
		sqlDB.SetMaxIdleConns(cfg.IdleConn)
	}
	sqlDB.SetConnMaxLifetime(time.Hour)
	return db
}

// checkCategories ensures the three canonical category rows exist. The
// category set is fixed by design; nothing else ever creates categories.
func (a *Application) checkCategories() {
	for _, name := range catalog.CategoryNames {
		var category domain.Category
		err := a.gormDB.Where("name = ?", name).First(&category).Error
		if err != nil {
			if err := a.gormDB.Create(&domain.Category{Name: name}).Error; err != nil {
				zap.L().Error("failed to seed category", zap.String("name", name), zap.Error(err))
				continue
			}
			zap.L().Info("seeded category", zap.String("name", name))
		}
	}
}
