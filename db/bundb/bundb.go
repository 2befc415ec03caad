// db/bundb/bundb.go
package bundb

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/driver/pgdriver"

	attendancedb "github.com/stonecove-rowing/crewbot/app/modules/attendance/infrastructure/repositories"
	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
	lineupdb "github.com/stonecove-rowing/crewbot/app/modules/lineup/infrastructure/repositories"
	regattadb "github.com/stonecove-rowing/crewbot/app/modules/regatta/infrastructure/repositories"
	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
	"github.com/stonecove-rowing/crewbot/config"
)

// DBService wraps the shared bun connection pool.
type DBService struct {
	db *bun.DB
}

// GetDB returns the underlying database connection pool.
func (dbService *DBService) GetDB() *bun.DB {
	return dbService.db
}

// Close closes the connection pool.
func (dbService *DBService) Close() error {
	return dbService.db.Close()
}

// NewBunDBService initializes a new DBService with the provided Postgres configuration.
func NewBunDBService(ctx context.Context, cfg config.PostgresConfig, logger *slog.Logger) (*DBService, error) {
	if logger == nil {
		logger = slog.Default()
	}

	sqldb, err := pgConn(ctx, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	db := bunDB(sqldb)

	db.RegisterModel(&rosterdb.Athlete{})
	db.RegisterModel(&rosterdb.Boat{})
	db.RegisterModel(&lineupdb.Lineup{})
	db.RegisterModel(&lineupdb.LineupSeat{})
	db.RegisterModel(&gauntletdb.Gauntlet{})
	db.RegisterModel(&gauntletdb.Position{})
	db.RegisterModel(&gauntletdb.Match{})
	db.RegisterModel(&gauntletdb.Progression{})
	db.RegisterModel(&attendancedb.Practice{})
	db.RegisterModel(&attendancedb.Mark{})
	db.RegisterModel(&regattadb.Regatta{})
	db.RegisterModel(&regattadb.RaceResult{})

	logger.InfoContext(ctx, "Database connection established")
	return &DBService{db: db}, nil
}

// bunDB returns a new bun.DB for given sql.DB connection pool.
func bunDB(sqldb *sql.DB) *bun.DB {
	return bun.NewDB(sqldb, pgdialect.New())
}

func pgConn(ctx context.Context, dsn string) (*sql.DB, error) {
	sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(dsn)))

	if err := sqldb.PingContext(ctx); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return sqldb, nil
}
