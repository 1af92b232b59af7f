package repository

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/campus-hub/schedule-agent/internal/store"
	"github.com/peterbourgon/diskv/v3"
	"go.uber.org/zap"
)

// FileOverlayRepository хранит снимок состояния в локальном
// key-value хранилище на диске. Используется, когда агент работает
// без Postgres (режим STORAGE_BACKEND=file).
type FileOverlayRepository struct {
	d      *diskv.Diskv
	logger *zap.Logger
}

func NewFileOverlayRepository(basePath string, logger *zap.Logger) *FileOverlayRepository {
	return &FileOverlayRepository{
		d: diskv.New(diskv.Options{
			BasePath:     basePath,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		logger: logger,
	}
}

// Save сохраняет снимок состояния под фиксированным ключом
func (r *FileOverlayRepository) Save(_ context.Context, state store.State) error {
	data, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode overlay snapshot: %w", err)
	}

	if err := r.d.Write(overlayKey, data); err != nil {
		return fmt.Errorf("write overlay snapshot: %w", err)
	}

	r.logger.Debug("Overlay snapshot written", zap.Int("bytes", len(data)))
	return nil
}

// Load читает последний сохранённый снимок. Отсутствие файла не
// ошибка — возвращается nil.
func (r *FileOverlayRepository) Load(_ context.Context) (*store.State, error) {
	if !r.d.Has(overlayKey) {
		return nil, nil
	}

	data, err := r.d.Read(overlayKey)
	if err != nil {
		return nil, fmt.Errorf("read overlay snapshot: %w", err)
	}

	var state store.State
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("decode overlay snapshot: %w", err)
	}

	return &state, nil
}
