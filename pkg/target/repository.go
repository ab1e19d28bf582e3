package target

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/klokku/utilization/pkg/fiscal"
	log "github.com/sirupsen/logrus"
)

type Repository interface {
	Get(ctx context.Context, userName string) (Plan, error)
	ReplaceAll(ctx context.Context, plans []Plan) error
}

type RepositoryImpl struct {
	db *pgxpool.Pool
}

func NewRepository(db *pgxpool.Pool) *RepositoryImpl {
	return &RepositoryImpl{db: db}
}

func (r *RepositoryImpl) Get(ctx context.Context, userName string) (Plan, error) {
	rows, err := r.db.Query(ctx, `SELECT fiscal_month, target FROM utilization_target WHERE user_name = $1`, userName)
	if err != nil {
		err := fmt.Errorf("could not query targets: %w", err)
		log.Error(err)
		return Plan{}, err
	}
	defer rows.Close()

	plan := Plan{UserName: userName, Months: map[fiscal.Month]float64{}}
	for rows.Next() {
		var month string
		var value float64
		if err := rows.Scan(&month, &value); err != nil {
			err := fmt.Errorf("error scanning row: %w", err)
			log.Error(err)
			return Plan{}, err
		}
		plan.Months[fiscal.Month(month)] = value
	}
	if err := rows.Err(); err != nil {
		err := fmt.Errorf("error iterating over rows: %w", err)
		log.Error(err)
		return Plan{}, err
	}
	if len(plan.Months) == 0 {
		return Plan{}, ErrPlanNotFound
	}
	return plan, nil
}

func (r *RepositoryImpl) ReplaceAll(ctx context.Context, plans []Plan) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `DELETE FROM utilization_target`); err != nil {
		err := fmt.Errorf("could not clear targets: %w", err)
		log.Error(err)
		return err
	}
	var rows [][]any
	for _, p := range plans {
		for month, value := range p.Months {
			rows = append(rows, []any{p.UserName, string(month), value})
		}
	}
	_, err = tx.CopyFrom(ctx, pgx.Identifier{"utilization_target"}, []string{"user_name", "fiscal_month", "target"}, pgx.CopyFromRows(rows))
	if err != nil {
		err := fmt.Errorf("could not copy targets: %w", err)
		log.Error(err)
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("could not commit transaction: %w", err)
	}
	return nil
}
