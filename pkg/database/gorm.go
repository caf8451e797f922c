package database

import (
	"fmt"
	"time"

	"event_management_service/pkg/logger"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// NewGormConnection open a GORM handle over postgreSQL, used by the
// catalog-style repositories (events, vendors)
func NewGormConnection(d Connection) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < d.RetryCount; i++ {
		db, err = gorm.Open(postgres.Open(d.ConnectStr), &gorm.Config{})
		if err == nil {
			break
		}
		logger.Log.Warn(
			"Failed to open gorm connection, retrying...",
			zap.Int("attempt", i+1),
			zap.String("address", fmt.Sprintf("[%s]", d.ConnectStr)),
			zap.Error(err),
		)
		time.Sleep(d.RetryInterval)
	}

	return db, err
}
