package lineupmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	lineupdb "github.com/stonecove-rowing/crewbot/app/modules/lineup/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating lineup tables...")

		if _, err := db.NewCreateTable().Model((*lineupdb.Lineup)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*lineupdb.LineupSeat)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// One athlete per seat per lineup.
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS uq_lineup_seats_lineup_seat ON lineup_seats (lineup_id, seat)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_lineup_seats_lineup ON lineup_seats (lineup_id)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Lineup tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping lineup tables...")

		if _, err := db.NewDropTable().Model((*lineupdb.LineupSeat)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*lineupdb.Lineup)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Lineup tables dropped successfully!")
		return nil
	})
}
