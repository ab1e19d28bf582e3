package workcalendar

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	List(ctx context.Context) ([]Day, error)
	ReplaceAll(ctx context.Context, days []Day) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context) ([]Day, error) {
	rows, err := r.db.Query(ctx, `SELECT day, remaining FROM calendar_day ORDER BY day`)
	if err != nil {
		err := fmt.Errorf("could not query calendar: %w", err)
		log.Error(err)
		return nil, err
	}
	days, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Day, error) {
		var d Day
		err := row.Scan(&d.Date, &d.Remaining)
		d.Date = dateOnly(d.Date)
		return d, err
	})
	if err != nil {
		err := fmt.Errorf("error scanning calendar rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return days, nil
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, days []Day) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM calendar_day`); err != nil {
		err := fmt.Errorf("could not clear calendar: %w", err)
		log.Error(err)
		return err
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"calendar_day"}, []string{"day", "remaining"},
		pgx.CopyFromSlice(len(days), func(i int) ([]any, error) {
			return []any{days[i].Date, days[i].Remaining}, nil
		}))
	if err != nil {
		err := fmt.Errorf("could not copy calendar days: %w", err)
		log.Error(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	log.Debugf("Stored %d calendar days", len(days))
	return nil
}

