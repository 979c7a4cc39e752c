package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/vladimiradmaev/drink-helper/internal/config"
	"github.com/vladimiradmaev/drink-helper/internal/database/migrations"
	"github.com/vladimiradmaev/drink-helper/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// User is keyed by the id handed out by the identity provider.
type User struct {
	ID        string `gorm:"primaryKey"`
	Name      *string
	WeightKg  *float64 `gorm:"column:weight"`
	HeightCm  *float64 `gorm:"column:height"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// DrinkLog holds one row per (user, date, drink type). The unique index backs
// the accumulate-on-conflict insert.
type DrinkLog struct {
	ID        string  `gorm:"primaryKey"`
	UserID    string  `gorm:"not null;uniqueIndex:idx_drink_logs_user_date_type,priority:1"`
	Date      string  `gorm:"type:varchar(10);not null;uniqueIndex:idx_drink_logs_user_date_type,priority:2"`
	DrinkType string  `gorm:"type:varchar(20);not null;uniqueIndex:idx_drink_logs_user_date_type,priority:3"`
	Amount    float64 `gorm:"not null"`
	VolumeMl  float64 `gorm:"not null"`
	Memo      *string
	CreatedAt time.Time
}

func (l *DrinkLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}

// Goal rows are never deleted, only deactivated. The one-active-goal-per-type
// rule is a partial unique index created by the SQL migrations.
type Goal struct {
	ID          string  `gorm:"primaryKey"`
	UserID      string  `gorm:"not null;index"`
	Type        string  `gorm:"type:varchar(20);not null"`
	TargetValue int     `gorm:"not null"`
	StartDate   string  `gorm:"type:varchar(10);not null"`
	EndDate     *string `gorm:"type:varchar(10)"`
	IsActive    bool    `gorm:"not null"`
	CreatedAt   time.Time
}

func (g *Goal) BeforeCreate(tx *gorm.DB) error {
	if g.ID == "" {
		g.ID = uuid.NewString()
	}
	return nil
}

type Consultation struct {
	ID        string `gorm:"primaryKey"`
	UserID    string `gorm:"not null;index"`
	Question  string `gorm:"type:text;not null"`
	Response  string `gorm:"type:text;not null"`
	AdWatched bool   `gorm:"not null"`
	CreatedAt time.Time
}

func (c *Consultation) BeforeCreate(tx *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func NewPostgresDB(cfg config.DBConfig) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(db); err != nil {
		return nil, err
	}

	logger.Info("Database connection established and migrations completed",
		"host", cfg.Host, "database", cfg.DBName)
	return db, nil
}

// Migrate creates the tables and then applies the embedded SQL migrations
// that gorm tags cannot express.
func Migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(&User{}, &DrinkLog{}, &Goal{}, &Consultation{}); err != nil {
		return fmt.Errorf("failed to auto-migrate database: %w", err)
	}

	m := migrations.NewMigrator()
	if err := m.LoadSQL(migrations.SQLFiles, "sql"); err != nil {
		return fmt.Errorf("failed to load migrations: %w", err)
	}
	if err := m.Run(db); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}
