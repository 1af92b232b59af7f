package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campus-hub/schedule-agent/internal/store"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// overlayKey фиксированный ключ, под которым хранится всё состояние
const overlayKey = "schedule"

// OverlayRepository хранит снимок состояния расписания в Postgres:
// одна строка на ключ, состояние целиком в jsonb
type OverlayRepository struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

func NewOverlayRepository(pool *pgxpool.Pool, logger *zap.Logger) *OverlayRepository {
	return &OverlayRepository{
		pool:   pool,
		logger: logger,
	}
}

// Save сохраняет снимок состояния, затирая предыдущий
func (r *OverlayRepository) Save(ctx context.Context, state store.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode overlay snapshot: %w", err)
	}

	query := `
		INSERT INTO overlay_state (key, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (key) DO UPDATE SET data = EXCLUDED.data, updated_at = now()
	`

	_, err = r.pool.Exec(ctx, query, overlayKey, data)
	if err != nil {
		return fmt.Errorf("save overlay snapshot: %w", err)
	}

	r.logger.Debug("Overlay snapshot saved", zap.Int("bytes", len(data)))
	return nil
}

// Load читает последний сохранённый снимок. Отсутствие строки не
// ошибка — возвращается nil.
func (r *OverlayRepository) Load(ctx context.Context) (*store.State, error) {
	query := `
		SELECT data
		FROM overlay_state
		WHERE key = $1
	`

	var data []byte
	err := r.pool.QueryRow(ctx, query, overlayKey).Scan(&data)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("read overlay snapshot: %w", err)
	}

	var state store.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode overlay snapshot: %w", err)
	}

	return &state, nil
}
