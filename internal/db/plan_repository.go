package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/endgor/azure-ip-lookup/internal/domain"
)

type PlanRepository struct {
	pool *pgxpool.Pool
}

func NewPlanRepository(pool *pgxpool.Pool) *PlanRepository {
	return &PlanRepository{pool: pool}
}

const planColumns = "id, cidr, description, created_at, updated_at"

func (r *PlanRepository) List(ctx context.Context) ([]domain.Plan, error) {
	rows, err := r.pool.Query(ctx, "SELECT "+planColumns+" FROM plans ORDER BY id")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.Plan
	for rows.Next() {
		plan, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, plan)
	}
	return out, rows.Err()
}

func (r *PlanRepository) FindByID(ctx context.Context, id int64) (domain.Plan, error) {
	row := r.pool.QueryRow(ctx, "SELECT "+planColumns+" FROM plans WHERE id = $1", id)

	plan, err := scanPlan(row)
	if err != nil {
		if isNoRows(err) {
			return domain.Plan{}, domain.ErrPlanNotFound
		}
		return domain.Plan{}, err
	}
	return plan, nil
}

func (r *PlanRepository) Create(ctx context.Context, record domain.CreatePlanRecord) (domain.Plan, error) {
	row := r.pool.QueryRow(ctx,
		"INSERT INTO plans (cidr, description) VALUES ($1, $2) RETURNING "+planColumns,
		record.CIDR, record.Description)

	plan, err := scanPlan(row)
	if err != nil {
		return domain.Plan{}, err
	}
	return plan, nil
}

func (r *PlanRepository) Delete(ctx context.Context, id int64) (bool, error) {
	tag, err := r.pool.Exec(ctx, "DELETE FROM plans WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanPlan(row pgx.Row) (domain.Plan, error) {
	var plan domain.Plan
	err := row.Scan(&plan.ID, &plan.CIDR, &plan.Description, &plan.CreatedAt, &plan.UpdatedAt)
	return plan, err
}

func isNoRows(err error) bool {
	return errors.Is(err, pgx.ErrNoRows)
}
