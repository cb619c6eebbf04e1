package storage

import (
	"context"
	"sync"

	"github.com/annel0/blockverse/internal/vec"
)

// PositionRepo определяет интерфейс для сохранения и загрузки позиций
// игроков между сессиями. Позиции привязаны к идентификатору игрока,
// а не к сессии.
type PositionRepo interface {
	// Save сохраняет позицию игрока в хранилище.
	Save(ctx context.Context, playerID string, pos vec.Vec2Float) error

	// Load загружает позицию игрока.
	// Возвращает false вторым значением при первом входе.
	Load(ctx context.Context, playerID string) (vec.Vec2Float, bool, error)

	// Delete удаляет сохранённую позицию (для тестов или сброса).
	Delete(ctx context.Context, playerID string) error
}

// MemoryPositionRepo — потокобезопасная in-memory реализация.
// Используется по умолчанию, когда Redis не сконфигурирован.
type MemoryPositionRepo struct {
	mu        sync.RWMutex
	positions map[string]vec.Vec2Float
}

// NewMemoryPositionRepo создаёт пустой репозиторий позиций
func NewMemoryPositionRepo() *MemoryPositionRepo {
	return &MemoryPositionRepo{positions: make(map[string]vec.Vec2Float)}
}

// Save сохраняет позицию игрока
func (r *MemoryPositionRepo) Save(ctx context.Context, playerID string, pos vec.Vec2Float) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.positions[playerID] = pos
	return nil
}

// Load загружает позицию игрока
func (r *MemoryPositionRepo) Load(ctx context.Context, playerID string) (vec.Vec2Float, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pos, exists := r.positions[playerID]
	return pos, exists, nil
}

// Delete удаляет позицию игрока
func (r *MemoryPositionRepo) Delete(ctx context.Context, playerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.positions, playerID)
	return nil
}
