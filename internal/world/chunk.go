package world

import (
	"fmt"
	"sync"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/tile"
)

// ChunkSize — размер чанка в тайлах (32x32).
const ChunkSize = vec.ChunkSize

// Chunk представляет участок мира размером 32x32 тайла.
// Tiles индексируется [row][col]: row — вертикальная ось (гравитация),
// col — горизонтальная. Чанк создаётся генератором один раз и больше
// никогда не перегенерируется в рамках сессии.
type Chunk struct {
	Coords vec.Vec2 // Координаты чанка в чанковой сетке

	// Tiles[y][x]; нулевое значение — AIR.
	Tiles [ChunkSize][ChunkSize]tile.ID

	modified bool         // Установлен после любой записи после генерации
	Mu       sync.RWMutex // Мьютекс для безопасного доступа
}

// NewChunk создаёт пустой чанк с указанными координатами
func NewChunk(coords vec.Vec2) *Chunk {
	return &Chunk{Coords: coords}
}

// Get возвращает тайл по локальным координатам
func (c *Chunk) Get(local vec.Vec2) tile.ID {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	return c.Tiles[local.Y][local.X]
}

// Set устанавливает тайл по локальным координатам и помечает чанк
// изменённым. Флаг монотонен в рамках сессии: снимается только слоем
// персистентности после успешного сохранения.
func (c *Chunk) Set(local vec.Vec2, id tile.ID) {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.Tiles[local.Y][local.X] = id
	c.modified = true
}

// Modified возвращает true, если чанк менялся после генерации
func (c *Chunk) Modified() bool {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	return c.modified
}

// ClearModified снимает флаг изменения.
// Вызывается слоем персистентности после успешного сохранения.
func (c *Chunk) ClearModified() {
	c.Mu.Lock()
	defer c.Mu.Unlock()

	c.modified = false
}

// Grid возвращает снимок тайлов в виде имён (row-major).
// Формат используется слоем персистентности.
func (c *Chunk) Grid() [][]string {
	c.Mu.RLock()
	defer c.Mu.RUnlock()

	grid := make([][]string, ChunkSize)
	for y := 0; y < ChunkSize; y++ {
		row := make([]string, ChunkSize)
		for x := 0; x < ChunkSize; x++ {
			row[x] = tile.Name(c.Tiles[y][x])
		}
		grid[y] = row
	}
	return grid
}

// ApplyGrid перезаписывает тайлы чанка из сохранённой сетки имён.
// Флаг изменения не трогаем: загруженные данные уже сохранены.
func (c *Chunk) ApplyGrid(grid [][]string) error {
	if len(grid) != ChunkSize {
		return fmt.Errorf("chunk %v: ожидалось %d строк, получено %d", c.Coords, ChunkSize, len(grid))
	}

	c.Mu.Lock()
	defer c.Mu.Unlock()

	for y, row := range grid {
		if len(row) != ChunkSize {
			return fmt.Errorf("chunk %v: строка %d имеет длину %d", c.Coords, y, len(row))
		}
		for x, name := range row {
			id, ok := tile.FromName(name)
			if !ok {
				return fmt.Errorf("chunk %v: неизвестный тайл %q", c.Coords, name)
			}
			c.Tiles[y][x] = id
		}
	}
	return nil
}
