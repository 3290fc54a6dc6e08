package orders

import (
	"context"
	"database/sql"
	"time"

	"github.com/FeliksML/sales-orders-manager-sub002/internal/pagination"
)

// Compile-time assertion.
var _ Store = (*PostgresStore)(nil)

const orderColumns = `id, rep_id, customer_name, customer_phone, has_internet, mobile_lines,
	voice_lines, has_tv, has_wib, has_gig_internet, sbc_seats, monthly_total,
	status, estimate, install_at, notes, created_at, updated_at`

// PostgresStore persists orders in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL orders store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, o *Order) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO orders (id, rep_id, customer_name, customer_phone, has_internet,
			mobile_lines, voice_lines, has_tv, has_wib, has_gig_internet, sbc_seats,
			monthly_total, status, estimate, install_at, notes, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`,
		o.ID, o.RepID, o.CustomerName, o.CustomerPhone, o.HasInternet,
		o.MobileLines, o.VoiceLines, o.HasTV, o.HasWIB, o.HasGigInternet, o.SBCSeats,
		o.MonthlyTotal, o.Status, o.Estimate, o.InstallAt, o.Notes, o.CreatedAt, o.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Order, error) {
	o := &Order{}
	err := s.db.QueryRowContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders WHERE id = $1`, id,
	).Scan(
		&o.ID, &o.RepID, &o.CustomerName, &o.CustomerPhone, &o.HasInternet,
		&o.MobileLines, &o.VoiceLines, &o.HasTV, &o.HasWIB, &o.HasGigInternet,
		&o.SBCSeats, &o.MonthlyTotal, &o.Status, &o.Estimate, &o.InstallAt,
		&o.Notes, &o.CreatedAt, &o.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrOrderNotFound
	}
	return o, err
}

func (s *PostgresStore) Update(ctx context.Context, o *Order) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE orders SET customer_name=$2, customer_phone=$3, has_internet=$4,
			mobile_lines=$5, voice_lines=$6, has_tv=$7, has_wib=$8,
			has_gig_internet=$9, sbc_seats=$10, monthly_total=$11, status=$12,
			estimate=$13, install_at=$14, notes=$15, updated_at=$16
		WHERE id = $1`,
		o.ID, o.CustomerName, o.CustomerPhone, o.HasInternet,
		o.MobileLines, o.VoiceLines, o.HasTV, o.HasWIB,
		o.HasGigInternet, o.SBCSeats, o.MonthlyTotal, o.Status,
		o.Estimate, o.InstallAt, o.Notes, o.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrOrderNotFound
	}
	return nil
}

func (s *PostgresStore) ListByRep(ctx context.Context, repID string, after *pagination.Cursor, limit int) ([]*Order, error) {
	var (
		rows *sql.Rows
		err  error
	)
	if after != nil {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+orderColumns+`
			FROM orders
			WHERE rep_id = $1 AND (created_at, id) < ($2, $3)
			ORDER BY created_at DESC, id DESC LIMIT $4`,
			repID, after.CreatedAt, after.ID, limit,
		)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT `+orderColumns+`
			FROM orders WHERE rep_id = $1
			ORDER BY created_at DESC, id DESC LIMIT $2`,
			repID, limit,
		)
	}
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanOrders(rows)
}

func (s *PostgresStore) ListByRepBetween(ctx context.Context, repID string, start, end time.Time) ([]*Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE rep_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC`,
		repID, start, end,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanOrders(rows)
}

func (s *PostgresStore) ListScheduledBetween(ctx context.Context, start, end time.Time) ([]*Order, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE status = 'scheduled' AND install_at >= $1 AND install_at < $2
		ORDER BY install_at ASC`,
		start, end,
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()
	return scanOrders(rows)
}

func scanOrders(rows *sql.Rows) ([]*Order, error) {
	var result []*Order
	for rows.Next() {
		o := &Order{}
		err := rows.Scan(
			&o.ID, &o.RepID, &o.CustomerName, &o.CustomerPhone, &o.HasInternet,
			&o.MobileLines, &o.VoiceLines, &o.HasTV, &o.HasWIB, &o.HasGigInternet,
			&o.SBCSeats, &o.MonthlyTotal, &o.Status, &o.Estimate, &o.InstallAt,
			&o.Notes, &o.CreatedAt, &o.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, o)
	}
	return result, rows.Err()
}
