package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/endgor/azure-ip-lookup/internal/domain"
)

type LeafRepository struct {
	pool *pgxpool.Pool
}

func NewLeafRepository(pool *pgxpool.Pool) *LeafRepository {
	return &LeafRepository{pool: pool}
}

const leafColumns = "id, cidr, comment, plan_id, created_at, updated_at"

func (r *LeafRepository) ListByPlanID(ctx context.Context, planID int64) ([]domain.LeafSubnet, error) {
	rows, err := r.pool.Query(ctx,
		"SELECT "+leafColumns+" FROM leaf_subnets WHERE plan_id = $1 ORDER BY cidr", planID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []domain.LeafSubnet
	for rows.Next() {
		leaf, err := scanLeaf(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, leaf)
	}
	return out, rows.Err()
}

func (r *LeafRepository) FindByIDAndPlan(ctx context.Context, id domain.LeafSubnetID, planID int64) (domain.LeafSubnet, error) {
	parsedID, err := parseLeafID(id)
	if err != nil {
		return domain.LeafSubnet{}, fmt.Errorf("%w: invalid leaf id", domain.ErrInvalidInput)
	}

	row := r.pool.QueryRow(ctx,
		"SELECT "+leafColumns+" FROM leaf_subnets WHERE id = $1 AND plan_id = $2", parsedID, planID)

	leaf, err := scanLeaf(row)
	if err != nil {
		if isNoRows(err) {
			return domain.LeafSubnet{}, domain.ErrNotFound
		}
		return domain.LeafSubnet{}, err
	}
	return leaf, nil
}

func (r *LeafRepository) Create(ctx context.Context, record domain.CreateLeafRecord, planID int64) (domain.LeafSubnet, error) {
	row := r.pool.QueryRow(ctx,
		"INSERT INTO leaf_subnets (cidr, comment, plan_id) VALUES ($1, $2, $3) RETURNING "+leafColumns,
		record.CIDR, record.Comment, planID)

	leaf, err := scanLeaf(row)
	if err != nil {
		if isUniqueLeafViolation(err) {
			return domain.LeafSubnet{}, domain.ErrConflict
		}
		return domain.LeafSubnet{}, err
	}
	return leaf, nil
}

func (r *LeafRepository) UpdateComment(ctx context.Context, id domain.LeafSubnetID, input domain.UpdateLeafInput) (domain.LeafSubnet, error) {
	parsedID, err := parseLeafID(id)
	if err != nil {
		return domain.LeafSubnet{}, fmt.Errorf("%w: invalid leaf id", domain.ErrInvalidInput)
	}

	row := r.pool.QueryRow(ctx,
		"UPDATE leaf_subnets SET comment = $1, updated_at = now() WHERE id = $2 RETURNING "+leafColumns,
		input.Comment, parsedID)

	leaf, err := scanLeaf(row)
	if err != nil {
		if isNoRows(err) {
			return domain.LeafSubnet{}, domain.ErrNotFound
		}
		return domain.LeafSubnet{}, err
	}
	return leaf, nil
}

func (r *LeafRepository) DeleteByIDAndPlan(ctx context.Context, id domain.LeafSubnetID, planID int64) (bool, error) {
	parsedID, err := parseLeafID(id)
	if err != nil {
		return false, fmt.Errorf("%w: invalid leaf id", domain.ErrInvalidInput)
	}

	tag, err := r.pool.Exec(ctx,
		"DELETE FROM leaf_subnets WHERE id = $1 AND plan_id = $2", parsedID, planID)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func scanLeaf(row pgx.Row) (domain.LeafSubnet, error) {
	var leaf domain.LeafSubnet
	var id pgtype.UUID
	if err := row.Scan(&id, &leaf.CIDR, &leaf.Comment, &leaf.PlanID, &leaf.CreatedAt, &leaf.UpdatedAt); err != nil {
		return domain.LeafSubnet{}, err
	}
	leaf.ID = domain.LeafSubnetID(id.String())
	return leaf, nil
}

func parseLeafID(id domain.LeafSubnetID) (pgtype.UUID, error) {
	u, err := uuid.Parse(string(id))
	if err != nil {
		return pgtype.UUID{}, err
	}

	var parsed pgtype.UUID
	copy(parsed.Bytes[:], u[:])
	parsed.Valid = true

	return parsed, nil
}

func isUniqueLeafViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.ConstraintName == "unique_leaf_cidr"
}
