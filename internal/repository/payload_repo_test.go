package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mathieu-neron/NewsBoard/newsboard-go/internal/model"
	"github.com/mathieu-neron/NewsBoard/newsboard-go/pkg/hash"
)

var payloadColumns = []string{"slot", "body", "digest", "updated_at"}

func newMock(t *testing.T) pgxmock.PgxPoolIface {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)
	return mock
}

func TestPayloadRepo_Upsert(t *testing.T) {
	mock := newMock(t)
	body := []byte(`{"labels":["positive"],"data":[1]}`)
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	mock.ExpectQuery(`(?s)INSERT INTO dashboard_payloads .* ON CONFLICT \(slot\) DO UPDATE`).
		WithArgs("sentiment", string(body), hash.SHA256Hex(body)).
		WillReturnRows(pgxmock.NewRows([]string{"updated_at"}).AddRow(now))

	p, err := NewPayloadRepo(mock).Upsert(context.Background(), model.SlotSentiment, body)

	require.NoError(t, err)
	assert.Equal(t, model.SlotSentiment, p.Slot)
	assert.Equal(t, body, p.Body)
	assert.Equal(t, hash.SHA256Hex(body), p.Digest)
	assert.Equal(t, now, p.UpdatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayloadRepo_Find(t *testing.T) {
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`(?s)SELECT slot, body, digest, updated_at\s+FROM dashboard_payloads\s+WHERE slot = \$1`).
			WithArgs("trend").
			WillReturnRows(pgxmock.NewRows(payloadColumns).AddRow("trend", `{"labels":[],"data":[]}`, "abc", now))

		p, err := NewPayloadRepo(mock).Find(context.Background(), model.SlotTrend)

		require.NoError(t, err)
		assert.Equal(t, model.SlotTrend, p.Slot)
		assert.Equal(t, `{"labels":[],"data":[]}`, string(p.Body))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		mock := newMock(t)
		mock.ExpectQuery(`SELECT slot, body`).
			WithArgs("trend").
			WillReturnError(pgx.ErrNoRows)

		_, err := NewPayloadRepo(mock).Find(context.Background(), model.SlotTrend)

		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("database error", func(t *testing.T) {
		mock := newMock(t)
		dbErr := errors.New("connection reset")
		mock.ExpectQuery(`SELECT slot, body`).
			WithArgs("trend").
			WillReturnError(dbErr)

		_, err := NewPayloadRepo(mock).Find(context.Background(), model.SlotTrend)

		assert.ErrorIs(t, err, dbErr)
		assert.NotErrorIs(t, err, ErrNotFound)
	})
}

func TestPayloadRepo_All(t *testing.T) {
	mock := newMock(t)
	now := time.Now().UTC()
	mock.ExpectQuery(`(?s)SELECT slot, body, digest, updated_at\s+FROM dashboard_payloads\s+ORDER BY slot`).
		WillReturnRows(pgxmock.NewRows(payloadColumns).
			AddRow("category", `{"labels":["politics"],"data":[3]}`, "d1", now).
			AddRow("sentiment", `not json`, "d2", now))

	payloads, err := NewPayloadRepo(mock).All(context.Background())

	require.NoError(t, err)
	require.Len(t, payloads, 2)
	assert.Equal(t, model.SlotCategory, payloads[0].Slot)
	assert.Equal(t, "not json", string(payloads[1].Body), "bodies are stored verbatim")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPayloadRepo_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		wantErr  error
	}{
		{"deleted", 1, nil},
		{"missing", 0, ErrNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := newMock(t)
			mock.ExpectExec(`DELETE FROM dashboard_payloads WHERE slot = \$1`).
				WithArgs("keyword").
				WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))

			err := NewPayloadRepo(mock).Delete(context.Background(), model.SlotKeyword)

			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestPayloadRepo_EnsureSchema(t *testing.T) {
	mock := newMock(t)
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS dashboard_payloads`).
		WillReturnResult(pgxmock.NewResult("CREATE TABLE", 0))

	require.NoError(t, NewPayloadRepo(mock).EnsureSchema(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
