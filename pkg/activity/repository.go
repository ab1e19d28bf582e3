package activity

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	List(ctx context.Context) ([]Activity, error)
	Upsert(ctx context.Context, activity Activity) error
	ReplaceAll(ctx context.Context, activities []Activity) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) List(ctx context.Context) ([]Activity, error) {
	rows, err := r.db.Query(ctx, `SELECT activity_name, classification FROM activity ORDER BY activity_name`)
	if err != nil {
		err := fmt.Errorf("could not query activities: %w", err)
		log.Error(err)
		return nil, err
	}
	defer rows.Close()

	activities := make([]Activity, 0)
	for rows.Next() {
		var name, classification string
		if err := rows.Scan(&name, &classification); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return nil, err
		}
		activities = append(activities, Activity{Name: name, Classification: Classification(classification)})
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return nil, err
	}
	return activities, nil
}

func (r *RepositoryImpl) Upsert(ctx context.Context, activity Activity) error {
	query := `INSERT INTO activity (activity_name, classification) VALUES ($1, $2)
			  ON CONFLICT (activity_name) DO UPDATE SET classification = EXCLUDED.classification`
	if _, err := r.db.Exec(ctx, query, activity.Name, string(activity.Classification)); err != nil {
		err := fmt.Errorf("could not store activity %s: %w", activity.Name, err)
		log.Error(err)
		return err
	}
	return nil
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, activities []Activity) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM activity`); err != nil {
		err := fmt.Errorf("could not clear activities: %w", err)
		log.Error(err)
		return err
	}

	rows := make([][]any, 0, len(activities))
	for _, a := range activities {
		rows = append(rows, []any{a.Name, string(a.Classification)})
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"activity"}, []string{"activity_name", "classification"}, pgx.CopyFromRows(rows))
	if err != nil {
		err := fmt.Errorf("could not copy activities: %w", err)
		log.Error(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
