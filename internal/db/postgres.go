package db

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"user_details/internal/config"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/sirupsen/logrus"
)

const maxRetries = 5

// DSN builds a libpq-style connection string for the pgx stdlib driver.
func DSN(cfg *config.DBConfig) string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name, cfg.SSLMode)
}

// Init opens a read pool for the user details tables, retrying with a linear
// backoff while the database comes up.
func Init(ctx context.Context, cfg *config.DBConfig) (*sql.DB, error) {
	var db *sql.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = sql.Open("pgx", DSN(cfg))
		if err != nil {
			logrus.WithError(err).Warnf("Failed to open database connection (attempt %d/%d)", i+1, maxRetries)
			time.Sleep(time.Duration(i+1) * time.Second)
			continue
		}

		if err = db.PingContext(ctx); err != nil {
			logrus.WithError(err).Warnf("Failed to ping database (attempt %d/%d)", i+1, maxRetries)
			if err := db.Close(); err != nil {
				logrus.WithError(err).Warn("Failed to close database connection")
			}
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(time.Duration(i+1) * time.Second):
			}
			continue
		}

		break
	}

	if err != nil {
		return nil, fmt.Errorf("connect to database after %d attempts: %w", maxRetries, err)
	}

	db.SetMaxOpenConns(50)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(30 * time.Minute)
	db.SetConnMaxIdleTime(5 * time.Minute)

	logrus.Info("Database connection established successfully")
	return db, nil
}
