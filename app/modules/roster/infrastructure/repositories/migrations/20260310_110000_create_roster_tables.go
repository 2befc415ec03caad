package rostermigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	rosterdb "github.com/stonecove-rowing/crewbot/app/modules/roster/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating roster tables...")

		if _, err := db.NewCreateTable().Model((*rosterdb.Athlete)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*rosterdb.Boat)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS uq_athletes_name ON athletes (name)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS uq_boats_name ON boats (name)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Roster tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping roster tables...")

		if _, err := db.NewDropTable().Model((*rosterdb.Boat)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*rosterdb.Athlete)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Roster tables dropped successfully!")
		return nil
	})
}
