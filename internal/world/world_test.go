package world

import (
	"testing"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/tile"
)

func TestWorldGetSetTile(t *testing.T) {
	w := NewWorld("42")
	pos := vec.Vec2{X: 10, Y: 20}

	w.SetTile(pos, tile.StoneID)
	if got := w.GetTile(pos); got != tile.StoneID {
		t.Errorf("Ожидался STONE, получен %s", tile.Name(got))
	}

	w.SetTile(pos, tile.AirID)
	if got := w.GetTile(pos); got != tile.AirID {
		t.Errorf("Ожидался AIR, получен %s", tile.Name(got))
	}
}

// Отрицательные мировые координаты разрешаются в чанк -1 и локаль 31
func TestWorldNegativeCoords(t *testing.T) {
	w := NewWorld("42")
	pos := vec.Vec2{X: -1, Y: -1}

	w.SetTile(pos, tile.CoalID)
	if got := w.GetTile(pos); got != tile.CoalID {
		t.Errorf("Ожидался COAL, получен %s", tile.Name(got))
	}

	chunk := w.Store().Get(vec.Vec2{X: -1, Y: -1})
	if chunk == nil {
		t.Fatal("Чанк (-1,-1) не создан")
	}
	if got := chunk.Get(vec.Vec2{X: 31, Y: 31}); got != tile.CoalID {
		t.Errorf("Локаль (31,31) чанка (-1,-1): ожидался COAL, получен %s", tile.Name(got))
	}

	// Соседний тайл (0,0) живёт уже в чанке (0,0)
	if w.Store().Get(vec.Vec2{X: 0, Y: 0}) != nil {
		t.Error("Чанк (0,0) сгенерирован без обращения к нему")
	}
}

func TestWorldModifiedFlag(t *testing.T) {
	w := NewWorld("42")
	pos := vec.Vec2{X: 5, Y: 5}

	// Чтение не помечает чанк изменённым
	_ = w.GetTile(pos)
	if len(w.ModifiedChunks()) != 0 {
		t.Error("Чтение тайла пометило чанк изменённым")
	}

	w.SetTile(pos, tile.DirtID)
	modified := w.ModifiedChunks()
	if len(modified) != 1 {
		t.Fatalf("Ожидался 1 изменённый чанк, получено %d", len(modified))
	}

	// Флаг монотонный: повторная запись не сбрасывает его
	w.SetTile(pos, tile.StoneID)
	if len(w.ModifiedChunks()) != 1 {
		t.Error("Флаг изменённости потерян после второй записи")
	}

	modified[0].ClearModified()
	if len(w.ModifiedChunks()) != 0 {
		t.Error("ClearModified не снял флаг")
	}
}

func TestWorldIsSolid(t *testing.T) {
	w := NewWorld("42")
	pos := vec.Vec2{X: 3, Y: 3}

	w.SetTile(pos, tile.StoneID)
	if !w.IsSolid(pos) {
		t.Error("STONE должен быть твёрдым")
	}

	w.SetTile(pos, tile.LeavesID)
	if w.IsSolid(pos) {
		t.Error("LEAVES не должна быть твёрдой")
	}
}

func TestWorldStreamWindow(t *testing.T) {
	w := NewWorld("42")
	w.SetVisibleRange(2)

	// Игрок в тайле (0,0) → окно чанков 5×5 вокруг чанка (0,0)
	w.Stream(vec.Vec2{X: 0, Y: 0})
	if got := w.Store().Count(); got != 25 {
		t.Errorf("Ожидалось 25 резидентных чанков, получено %d", got)
	}

	// Повторный стриминг той же позиции идемпотентен
	w.Stream(vec.Vec2{X: 0, Y: 0})
	if got := w.Store().Count(); got != 25 {
		t.Errorf("Повторный стриминг изменил число чанков: %d", got)
	}

	for dx := -2; dx <= 2; dx++ {
		for dy := -2; dy <= 2; dy++ {
			if w.Store().Get(vec.Vec2{X: dx, Y: dy}) == nil {
				t.Errorf("Чанк (%d,%d) не попал в окно стриминга", dx, dy)
			}
		}
	}

	// Сдвиг на один чанк добавляет ровно один новый столбец
	w.Stream(vec.Vec2{X: 32, Y: 0})
	if got := w.Store().Count(); got != 30 {
		t.Errorf("После сдвига ожидалось 30 чанков, получено %d", got)
	}
}

func TestWorldStreamIdenticalContent(t *testing.T) {
	// Чанк, созданный стримингом, совпадает с прямой генерацией
	w := NewWorld("42")
	w.Stream(vec.Vec2{X: 0, Y: 0})

	direct := NewGenerator("42").GenerateChunk(vec.Vec2{X: 1, Y: 1})
	streamed := w.Store().Get(vec.Vec2{X: 1, Y: 1})
	if streamed == nil {
		t.Fatal("Чанк (1,1) не резидентен")
	}
	if streamed.Tiles != direct.Tiles {
		t.Error("Стриминг породил чанк, отличный от прямой генерации")
	}
}
