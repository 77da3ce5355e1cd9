package models

import (
	"fmt"

	gomysql "github.com/go-sql-driver/mysql"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Supported database drivers
const (
	DriverSqlite   = "sqlite"
	DriverMysql    = "mysql"
	DriverPostgres = "postgres"
)

// dialector Pick the gorm dialector for the configured driver
func dialector(driver string, dsn string) (gorm.Dialector, error) {
	switch driver {
	case "", DriverSqlite:
		return sqlite.Open(dsn), nil
	case DriverMysql:
		dsnConfig, err := gomysql.ParseDSN(dsn)
		if err != nil {
			return nil, fmt.Errorf("parse mysql dsn: %w", err)
		}
		// Scanning DATETIME columns needs parseTime
		dsnConfig.ParseTime = true
		return mysql.New(mysql.Config{DSN: dsnConfig.FormatDSN(), DSNConfig: dsnConfig}), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", driver)
}

// ConnectDataBase Open the database and migrate the schema
func ConnectDataBase(driver string, dsn string, debug bool) (*gorm.DB, error) {
	d, err := dialector(driver, dsn)
	if err != nil {
		return nil, err
	}

	gormLogger := logger.Default.LogMode(logger.Silent)
	if debug {
		gormLogger = logger.Default.LogMode(logger.Info)
	}

	db, err := gorm.Open(d, &gorm.Config{Logger: gormLogger})
	if err != nil {
		return nil, fmt.Errorf("cannot connect %s database: %w", d.Name(), err)
	}
	log.Info(fmt.Sprintf("Connected %s database", d.Name()))

	if err := db.AutoMigrate(&Project{}, &Image{}, &Annotation{}); err != nil {
		return nil, fmt.Errorf("auto migrate: %w", err)
	}
	return db, nil
}
