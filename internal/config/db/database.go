package db

import (
	"fmt"

	"github.com/linskybing/engagement-go/internal/config"
	"github.com/linskybing/engagement-go/internal/domain/agreement"
	"github.com/linskybing/engagement-go/internal/domain/audit"
	"github.com/linskybing/engagement-go/internal/domain/campaign"
	"github.com/linskybing/engagement-go/internal/domain/message"
	"github.com/linskybing/engagement-go/internal/domain/offer"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var DB *gorm.DB

// Init connects to PostgreSQL and sets DB. Driver errors are translated so
// that unique violations surface as gorm.ErrDuplicatedKey.
func Init(log *zap.Logger) error {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		config.DbHost,
		config.DbPort,
		config.DbUser,
		config.DbPassword,
		config.DbName,
	)

	gdb, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		return fmt.Errorf("connect to %s:%s/%s: %w", config.DbHost, config.DbPort, config.DbName, err)
	}
	DB = gdb

	log.Info("database connected",
		zap.String("host", config.DbHost),
		zap.String("port", config.DbPort),
		zap.String("name", config.DbName))
	return nil
}

// MigrateEngagement creates the authority's tables.
func MigrateEngagement(db *gorm.DB) error {
	return db.AutoMigrate(
		&campaign.Campaign{},
		&offer.Application{},
		&offer.Invitation{},
		&agreement.Agreement{},
		&audit.AuditLog{},
	)
}

// MigrateMessaging creates the messaging gate's tables.
func MigrateMessaging(db *gorm.DB) error {
	return db.AutoMigrate(&message.Message{})
}
