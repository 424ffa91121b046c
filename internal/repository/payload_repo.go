package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/pkg/hash"
)

// ErrNotFound is returned when no payload is stored for a slot.
var ErrNotFound = errors.New("payload not found")

// DBTX is the subset of pgxpool.Pool used by the repository.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PayloadRepo struct {
	db DBTX
}

func NewPayloadRepo(db DBTX) *PayloadRepo {
	return &PayloadRepo{db: db}
}

const schema = `
	CREATE TABLE IF NOT EXISTS dashboard_payloads (
		slot       TEXT PRIMARY KEY,
		body       TEXT NOT NULL,
		digest     TEXT NOT NULL,
		updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`

// EnsureSchema creates the payload table if it does not exist.
func (r *PayloadRepo) EnsureSchema(ctx context.Context) error {
	_, err := r.db.Exec(ctx, schema)
	return err
}

// Upsert stores body as the current payload of slot.
func (r *PayloadRepo) Upsert(ctx context.Context, slot model.Slot, body []byte) (*model.StoredPayload, error) {
	query := `
		INSERT INTO dashboard_payloads (slot, body, digest, updated_at)
		VALUES ($1, $2, $3, NOW())
		ON CONFLICT (slot) DO UPDATE
		SET body = EXCLUDED.body, digest = EXCLUDED.digest, updated_at = NOW()
		RETURNING updated_at`

	p := model.StoredPayload{
		Slot:   slot,
		Body:   body,
		Digest: hash.SHA256Hex(body),
	}
	if err := r.db.QueryRow(ctx, query, string(slot), string(body), p.Digest).Scan(&p.UpdatedAt); err != nil {
		return nil, err
	}
	return &p, nil
}

// Find returns the stored payload of a slot.
func (r *PayloadRepo) Find(ctx context.Context, slot model.Slot) (*model.StoredPayload, error) {
	query := `
		SELECT slot, body, digest, updated_at
		FROM dashboard_payloads
		WHERE slot = $1`

	var (
		p        model.StoredPayload
		slotName string
		body     string
	)
	err := r.db.QueryRow(ctx, query, string(slot)).Scan(&slotName, &body, &p.Digest, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Slot = model.Slot(slotName)
	p.Body = []byte(body)
	return &p, nil
}

// All returns every stored payload ordered by slot name.
func (r *PayloadRepo) All(ctx context.Context) ([]model.StoredPayload, error) {
	query := `
		SELECT slot, body, digest, updated_at
		FROM dashboard_payloads
		ORDER BY slot`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var payloads []model.StoredPayload
	for rows.Next() {
		var (
			p        model.StoredPayload
			slotName string
			body     string
		)
		if err := rows.Scan(&slotName, &body, &p.Digest, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Slot = model.Slot(slotName)
		p.Body = []byte(body)
		payloads = append(payloads, p)
	}
	return payloads, rows.Err()
}

// Delete removes the stored payload of a slot.
func (r *PayloadRepo) Delete(ctx context.Context, slot model.Slot) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM dashboard_payloads WHERE slot = $1`, string(slot))
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
