package timeentry

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	// ReplaceAll swaps the whole time entry table for entries, like re-importing the daily report.
	ReplaceAll(ctx context.Context, entries []Entry) error
	ListAll(ctx context.Context) ([]Entry, error)
	ListByUser(ctx context.Context, userName string) ([]Entry, error)
	// ListUsers returns the roster together with everyone who has logged time, sorted by name.
	ListUsers(ctx context.Context) ([]string, error)
	ReplaceRoster(ctx context.Context, userNames []string) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, entries []Entry) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM time_entry`); err != nil {
		err := fmt.Errorf("could not clear time entries: %w", err)
		log.Error(err)
		return err
	}

	copied, err := tx.CopyFrom(ctx,
		pgx.Identifier{"time_entry"},
		[]string{"import_batch", "user_name", "entry_date", "activity_name", "hours_worked"},
		pgx.CopyFromSlice(len(entries), func(i int) ([]any, error) {
			e := entries[i]
			return []any{e.ImportBatch, e.UserName, e.EntryDate, e.ActivityName, e.HoursWorked}, nil
		}),
	)
	if err != nil {
		err := fmt.Errorf("could not copy time entries: %w", err)
		log.Error(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	log.Debugf("Stored %d time entries", copied)
	return nil
}

func (r *RepositoryImpl) ListAll(ctx context.Context) ([]Entry, error) {
	query := `SELECT import_batch::text, user_name, entry_date, activity_name, hours_worked
			  FROM time_entry ORDER BY user_name, entry_date, id`
	return r.queryEntries(ctx, query)
}

func (r *RepositoryImpl) ListByUser(ctx context.Context, userName string) ([]Entry, error) {
	query := `SELECT import_batch::text, user_name, entry_date, activity_name, hours_worked
			  FROM time_entry WHERE user_name = $1 ORDER BY entry_date, id`
	return r.queryEntries(ctx, query, userName)
}

func (r *RepositoryImpl) queryEntries(ctx context.Context, query string, args ...any) ([]Entry, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		err := fmt.Errorf("could not query time entries: %w", err)
		log.Error(err)
		return nil, err
	}
	entries, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (Entry, error) {
		var e Entry
		err := row.Scan(&e.ImportBatch, &e.UserName, &e.EntryDate, &e.ActivityName, &e.HoursWorked)
		return e, err
	})
	if err != nil {
		err := fmt.Errorf("error scanning time entries: %w", err)
		log.Error(err)
		return nil, err
	}
	return entries, nil
}

func (r *RepositoryImpl) ListUsers(ctx context.Context) ([]string, error) {
	query := `SELECT user_name FROM employee
			  UNION
			  SELECT DISTINCT user_name FROM time_entry
			  ORDER BY user_name`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		err := fmt.Errorf("could not query users: %w", err)
		log.Error(err)
		return nil, err
	}
	users, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		err := fmt.Errorf("error scanning users: %w", err)
		log.Error(err)
		return nil, err
	}
	return users, nil
}

func (r *RepositoryImpl) ReplaceRoster(ctx context.Context, userNames []string) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM employee`); err != nil {
		err := fmt.Errorf("could not clear roster: %w", err)
		log.Error(err)
		return err
	}
	for _, name := range userNames {
		if _, err := tx.Exec(ctx, `INSERT INTO employee (user_name) VALUES ($1) ON CONFLICT DO NOTHING`, name); err != nil {
			err := fmt.Errorf("could not store employee %s: %w", name, err)
			log.Error(err)
			return err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
