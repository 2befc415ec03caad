package attendancemigrations

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	attendancedb "github.com/stonecove-rowing/crewbot/app/modules/attendance/infrastructure/repositories"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating attendance tables...")

		if _, err := db.NewCreateTable().Model((*attendancedb.Practice)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*attendancedb.Mark)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Upserts key on this pair.
		if _, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS uq_attendance_marks_practice_athlete ON attendance_marks (practice_id, athlete_id)").Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Attendance tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping attendance tables...")

		if _, err := db.NewDropTable().Model((*attendancedb.Mark)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*attendancedb.Practice)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Attendance tables dropped successfully!")
		return nil
	})
}
