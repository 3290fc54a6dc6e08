package goals

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
)

// Compile-time assertion.
var _ Store = (*PostgresStore)(nil)

const goalColumns = `id, rep_id, period, internet_target, mobile_target, commission_target,
	created_at, updated_at`

// PostgresStore persists goals in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL goals store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, g *Goal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO goals (id, rep_id, period, internet_target, mobile_target,
			commission_target, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		g.ID, g.RepID, g.Period, g.InternetTarget, g.MobileTarget,
		g.CommissionTarget, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrGoalExists
		}
		return err
	}
	return nil
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Goal, error) {
	g := &Goal{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+goalColumns+`
		FROM goals WHERE id = $1`, id,
	).Scan(
		&g.ID, &g.RepID, &g.Period, &g.InternetTarget, &g.MobileTarget,
		&g.CommissionTarget, &g.CreatedAt, &g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	return g, err
}

func (s *PostgresStore) GetByRepPeriod(ctx context.Context, repID, period string) (*Goal, error) {
	g := &Goal{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+goalColumns+`
		FROM goals WHERE rep_id = $1 AND period = $2`, repID, period,
	).Scan(
		&g.ID, &g.RepID, &g.Period, &g.InternetTarget, &g.MobileTarget,
		&g.CommissionTarget, &g.CreatedAt, &g.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrGoalNotFound
	}
	return g, err
}

func (s *PostgresStore) Update(ctx context.Context, g *Goal) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE goals SET period=$2, internet_target=$3, mobile_target=$4,
			commission_target=$5, updated_at=$6
		WHERE id = $1`,
		g.ID, g.Period, g.InternetTarget, g.MobileTarget,
		g.CommissionTarget, g.UpdatedAt,
	)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrGoalExists
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrGoalNotFound
	}
	return nil
}

func (s *PostgresStore) ListByRep(ctx context.Context, repID string) ([]*Goal, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+goalColumns+`
		FROM goals WHERE rep_id = $1 ORDER BY period DESC`,
		repID,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var result []*Goal
	for rows.Next() {
		g := &Goal{}
		err := rows.Scan(
			&g.ID, &g.RepID, &g.Period, &g.InternetTarget, &g.MobileTarget,
			&g.CommissionTarget, &g.CreatedAt, &g.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, g)
	}
	return result, rows.Err()
}
