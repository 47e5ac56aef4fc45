package mock

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"ecobite/internal/catalog"
	"ecobite/internal/db"
	applog "ecobite/internal/log"
	"ecobite/models"
)

// DemoPassword is the password of the seeded demo account.
const DemoPassword = "ecobite"

// New returns an in-memory sqlite database seeded with the default catalog and a demo user.
func New(ctx context.Context) (*gorm.DB, error) {
	return Open(ctx, "ecobite-mock", true)
}

// Open creates a named in-memory sqlite database and migrates the schema.
// Distinct names give tests isolated databases. When seeded is true the
// default catalog and a demo user are inserted.
func Open(ctx context.Context, name string, seeded bool) (*gorm.DB, error) {
	applog.Debug(ctx, "initialising mock database", "name", name, "seeded", seeded)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_busy_timeout=5000", name)
	database, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		PrepareStmt:                              true,
		SkipDefaultTransaction:                   true,
		DisableForeignKeyConstraintWhenMigrating: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := database.DB()
	if err != nil {
		return nil, err
	}
	// A shared-cache memory database serialises writers; one connection avoids
	// "database table is locked" errors under concurrent requests.
	sqlDB.SetMaxOpenConns(1)

	if err := db.AutoMigrate(database); err != nil {
		return nil, err
	}

	if seeded {
		if err := seed(ctx, database); err != nil {
			return nil, err
		}
	}

	applog.Debug(ctx, "mock database ready", "name", name)
	return database, nil
}

func seed(ctx context.Context, database *gorm.DB) error {
	applog.Debug(ctx, "seeding mock database")

	var existing int64
	if err := database.WithContext(ctx).Model(&models.Ingredient{}).Count(&existing).Error; err != nil {
		return err
	}
	if existing > 0 {
		applog.Debug(ctx, "mock database already seeded", "ingredients", existing)
		return nil
	}

	password, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	user := &models.User{
		Name:         "Avery Green",
		Email:        "avery@ecobite.app",
		PasswordHash: string(password),
	}
	if err := database.WithContext(ctx).Create(user).Error; err != nil {
		return err
	}

	ingredients, err := catalog.Default()
	if err != nil {
		return err
	}
	if err := database.WithContext(ctx).Create(&ingredients).Error; err != nil {
		return err
	}

	applog.Debug(ctx, "mock database seeded", "ingredients", len(ingredients))
	return nil
}
