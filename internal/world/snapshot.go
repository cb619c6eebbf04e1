package world

import (
	"fmt"
	"time"

	"github.com/annel0/blockverse/internal/vec"
)

// Snapshot — сериализуемое представление мира для персистентности.
// Ключи чанков имеют вид "cx,cy", сетки тайлов хранятся row-major
// именами тайлов. Формат совместим с существующими сохранениями и
// потому фиксирован.
type Snapshot struct {
	Seed      string                `json:"seed"`
	Timestamp int64                 `json:"timestamp"`
	Chunks    map[string][][]string `json:"chunks"`
}

// ChunkKey возвращает ключ чанка в формате снимка
func ChunkKey(coords vec.Vec2) string {
	return fmt.Sprintf("%d,%d", coords.X, coords.Y)
}

// ParseChunkKey разбирает ключ чанка обратно в координаты
func ParseChunkKey(key string) (vec.Vec2, error) {
	var coords vec.Vec2
	if _, err := fmt.Sscanf(key, "%d,%d", &coords.X, &coords.Y); err != nil {
		return vec.Vec2{}, fmt.Errorf("неверный ключ чанка %q: %w", key, err)
	}
	return coords, nil
}

// Snapshot собирает снимок всех изменённых чанков
func (w *World) Snapshot() *Snapshot {
	snap := &Snapshot{
		Seed:      w.seed,
		Timestamp: time.Now().Unix(),
		Chunks:    make(map[string][][]string),
	}
	for _, chunk := range w.store.ModifiedChunks() {
		snap.Chunks[ChunkKey(chunk.Coords)] = chunk.Grid()
	}
	return snap
}

// ApplySnapshot накладывает сохранённые сетки поверх сгенерированных
// чанков. Используется при загрузке мира: чанк сначала генерируется
// детерминированно, затем перезаписывается сохранёнными данными.
func (w *World) ApplySnapshot(snap *Snapshot) error {
	for key, grid := range snap.Chunks {
		coords, err := ParseChunkKey(key)
		if err != nil {
			return err
		}
		chunk := w.store.Ensure(coords)
		if err := chunk.ApplyGrid(grid); err != nil {
			return fmt.Errorf("применение снимка: %w", err)
		}
	}
	return nil
}
