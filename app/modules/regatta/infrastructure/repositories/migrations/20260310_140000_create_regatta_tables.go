package regattamigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	regattadb "github.com/stonecove-rowing/crewbot/app/modules/regatta/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating regatta tables...")

		if _, err := db.NewCreateTable().Model((*regattadb.Regatta)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*regattadb.RaceResult)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_race_results_regatta ON race_results (regatta_id)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Regatta tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping regatta tables...")

		if _, err := db.NewDropTable().Model((*regattadb.RaceResult)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*regattadb.Regatta)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Regatta tables dropped successfully!")
		return nil
	})
}
