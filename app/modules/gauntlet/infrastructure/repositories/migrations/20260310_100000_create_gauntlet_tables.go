package gauntletmigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	gauntletdb "github.com/stonecove-rowing/crewbot/app/modules/gauntlet/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating gauntlet tables...")

		if _, err := db.NewCreateTable().Model((*gauntletdb.Gauntlet)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().Model((*gauntletdb.Position)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().Model((*gauntletdb.Match)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		if _, err := db.NewCreateTable().Model((*gauntletdb.Progression)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// One position per lineup per gauntlet; bootstrap relies on this.
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS uq_gauntlet_positions_gauntlet_lineup ON gauntlet_positions (gauntlet_id, lineup_id)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_gauntlet_positions_gauntlet_rank ON gauntlet_positions (gauntlet_id, rank)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_gauntlet_matches_gauntlet ON gauntlet_matches (gauntlet_id, match_date DESC)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_gauntlet_progressions_gauntlet ON gauntlet_progressions (gauntlet_id, occurred_at)").Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_gauntlet_progressions_lineup ON gauntlet_progressions (gauntlet_id, lineup_id, occurred_at)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Gauntlet tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping gauntlet tables...")

		if _, err := db.NewDropTable().Model((*gauntletdb.Progression)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*gauntletdb.Match)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*gauntletdb.Position)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*gauntletdb.Gauntlet)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Gauntlet tables dropped successfully!")
		return nil
	})
}
