package world

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/tile"
)

func TestChunkCreateAndGetTile(t *testing.T) {
	coords := vec.Vec2{X: 5, Y: 10}
	chunk := NewChunk(coords)

	if chunk.Coords.X != 5 || chunk.Coords.Y != 10 {
		t.Errorf("Ожидались координаты {5,10}, получено {%d,%d}", chunk.Coords.X, chunk.Coords.Y)
	}

	// Тайлы инициализированы воздухом
	pos := vec.Vec2{X: 3, Y: 4}
	if id := chunk.Get(pos); id != tile.AirID {
		t.Errorf("Ожидался AIR, получен %d", id)
	}

	chunk.Set(pos, tile.StoneID)
	if id := chunk.Get(pos); id != tile.StoneID {
		t.Errorf("Ожидался STONE, получен %d", id)
	}
}

func TestChunkModifiedFlag(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 0, Y: 0})
	if chunk.Modified() {
		t.Error("Новый чанк помечен изменённым")
	}

	chunk.Set(vec.Vec2{X: 1, Y: 1}, tile.DirtID)
	if !chunk.Modified() {
		t.Error("Запись не пометила чанк изменённым")
	}

	chunk.ClearModified()
	if chunk.Modified() {
		t.Error("ClearModified не снял флаг")
	}
}

func TestChunkGridRoundTrip(t *testing.T) {
	src := NewGenerator("grid-seed").GenerateChunk(vec.Vec2{X: 0, Y: 0})
	grid := src.Grid()

	if len(grid) != ChunkSize || len(grid[0]) != ChunkSize {
		t.Fatalf("Размер сетки %dx%d", len(grid), len(grid[0]))
	}

	dst := NewChunk(vec.Vec2{X: 0, Y: 0})
	if err := dst.ApplyGrid(grid); err != nil {
		t.Fatalf("ApplyGrid: %v", err)
	}
	if dst.Tiles != src.Tiles {
		t.Error("Сетка не восстановила тайлы чанка")
	}

	// ApplyGrid не помечает чанк изменённым: это загрузка, а не правка
	if dst.Modified() {
		t.Error("ApplyGrid пометил чанк изменённым")
	}
}

func TestChunkApplyGridErrors(t *testing.T) {
	chunk := NewChunk(vec.Vec2{X: 0, Y: 0})

	if err := chunk.ApplyGrid([][]string{{"AIR"}}); err == nil {
		t.Error("Сетка неверного размера принята")
	}

	bad := NewGenerator("x").GenerateChunk(vec.Vec2{X: 0, Y: 0}).Grid()
	bad[0][0] = "BEDROCK"
	if err := chunk.ApplyGrid(bad); err == nil {
		t.Error("Сетка с неизвестным именем тайла принята")
	}
}
