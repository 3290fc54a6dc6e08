package reminders

import (
	"context"
	"database/sql"
	"time"
)

// Compile-time assertion.
var _ Store = (*PostgresStore)(nil)

const reminderColumns = `id, rep_id, order_id, note, due_at, status, created_at, updated_at`

// PostgresStore persists reminders in PostgreSQL.
type PostgresStore struct {
	db *sql.DB
}

// NewPostgresStore creates a new PostgreSQL reminders store.
func NewPostgresStore(db *sql.DB) *PostgresStore {
	return &PostgresStore{db: db}
}

func (s *PostgresStore) Create(ctx context.Context, r *Reminder) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO reminders (id, rep_id, order_id, note, due_at, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		r.ID, r.RepID, r.OrderID, r.Note, r.DueAt, r.Status, r.CreatedAt, r.UpdatedAt,
	)
	return err
}

func (s *PostgresStore) Get(ctx context.Context, id string) (*Reminder, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders WHERE id = $1`, id)
	return scanReminder(row)
}

func (s *PostgresStore) Update(ctx context.Context, r *Reminder) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE reminders SET note=$2, due_at=$3, status=$4, updated_at=$5
		WHERE id = $1`,
		r.ID, r.Note, r.DueAt, r.Status, r.UpdatedAt,
	)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (s *PostgresStore) Delete(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return ErrReminderNotFound
	}
	return nil
}

func (s *PostgresStore) ListByRep(ctx context.Context, repID string, limit int) ([]*Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders WHERE rep_id = $1
		ORDER BY due_at ASC LIMIT $2`,
		repID, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanReminders(rows)
}

func (s *PostgresStore) ListDueBefore(ctx context.Context, cutoff time.Time, limit int) ([]*Reminder, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+reminderColumns+`
		FROM reminders WHERE status = $1 AND due_at <= $2
		ORDER BY due_at ASC LIMIT $3`,
		StatusPending, cutoff, limit,
	)
	if err != nil {
		return nil, err
	}
	return scanReminders(rows)
}

func scanReminder(row *sql.Row) (*Reminder, error) {
	r := &Reminder{}
	err := row.Scan(
		&r.ID, &r.RepID, &r.OrderID, &r.Note, &r.DueAt, &r.Status,
		&r.CreatedAt, &r.UpdatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, ErrReminderNotFound
	}
	if err != nil {
		return nil, err
	}
	return r, nil
}

func scanReminders(rows *sql.Rows) ([]*Reminder, error) {
	defer func() { _ = rows.Close() }()

	var result []*Reminder
	for rows.Next() {
		r := &Reminder{}
		err := rows.Scan(
			&r.ID, &r.RepID, &r.OrderID, &r.Note, &r.DueAt, &r.Status,
			&r.CreatedAt, &r.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		result = append(result, r)
	}
	return result, rows.Err()
}
