package world

import (
	"context"
	"encoding/json"
	"time"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/tile"

	// Регистрация поведений всех тайлов
	_ "github.com/annel0/blockverse/internal/world/tile/implementations"
)

// DefaultVisibleRange — радиус стриминга чанков (расстояние Чебышёва).
const DefaultVisibleRange = 2

// World — аксессор мира и контроллер стриминга. Владеет хранилищем
// чанков и генератором; транслирует мировые координаты тайла в пару
// (чанк, локальные координаты) и предоставляет get/set тайла внешним
// подсистемам (физика, добыча, рендер, персистентность).
//
// Мир принадлежит игровой сессии: никакого скрытого разделяемого
// состояния между экземплярами нет.
type World struct {
	seed         string
	store        *ChunkStore
	visibleRange int
	bus          eventbus.EventBus // Может быть nil: события не публикуются
}

// NewWorld создаёт мир с указанным сидом
func NewWorld(seed string) *World {
	return &World{
		seed:         seed,
		store:        NewChunkStore(NewGenerator(seed)),
		visibleRange: DefaultVisibleRange,
	}
}

// SetEventBus подключает шину событий для уведомлений об изменениях тайлов
func (w *World) SetEventBus(bus eventbus.EventBus) {
	w.bus = bus
}

// SetVisibleRange меняет радиус стриминга чанков
func (w *World) SetVisibleRange(r int) {
	if r > 0 {
		w.visibleRange = r
	}
}

// Seed возвращает сид мира
func (w *World) Seed() string {
	return w.seed
}

// Store возвращает хранилище чанков
func (w *World) Store() *ChunkStore {
	return w.store
}

// GetTile возвращает тайл по мировым координатам. Операция тотальная:
// отсутствующий чанк генерируется на месте, отрицательные координаты
// разрешаются через floor-деление и положительный модуль.
func (w *World) GetTile(pos vec.Vec2) tile.ID {
	chunk := w.store.Ensure(pos.ToChunkCoords())
	return chunk.Get(pos.LocalInChunk())
}

// SetTile устанавливает тайл по мировым координатам, помечает чанк
// изменённым и публикует событие изменения на шине.
func (w *World) SetTile(pos vec.Vec2, id tile.ID) {
	chunk := w.store.Ensure(pos.ToChunkCoords())
	chunk.Set(pos.LocalInChunk(), id)
	metricTileWrites.Inc()

	w.publishTileChange(pos, id)
}

// IsSolid возвращает true, если тайл в указанной позиции непроходим.
// Используется физическим интегратором.
func (w *World) IsSolid(pos vec.Vec2) bool {
	return tile.Solid(w.GetTile(pos))
}

// Stream гарантирует резидентность квадратного окна чанков вокруг
// позиции игрока (в тайлах). Идемпотентна: уже сгенерированные чанки
// не трогаются. Вызывается раз в тик, чтобы горячие запросы коллизий
// не генерировали чанки на лету.
func (w *World) Stream(playerTile vec.Vec2) {
	center := playerTile.ToChunkCoords()
	for dy := -w.visibleRange; dy <= w.visibleRange; dy++ {
		for dx := -w.visibleRange; dx <= w.visibleRange; dx++ {
			w.store.Ensure(vec.Vec2{X: center.X + dx, Y: center.Y + dy})
		}
	}
}

// ModifiedChunks возвращает изменённые чанки для слоя персистентности
func (w *World) ModifiedChunks() []*Chunk {
	return w.store.ModifiedChunks()
}

// tileChangePayload — полезная нагрузка события изменения тайла
type tileChangePayload struct {
	X    int    `json:"x"`
	Y    int    `json:"y"`
	Tile string `json:"tile"`
}

// publishTileChange отправляет событие изменения тайла на шину.
// Ошибки публикации не влияют на состояние мира: ядро не знает,
// дошло ли уведомление до коллабораторов.
func (w *World) publishTileChange(pos vec.Vec2, id tile.ID) {
	if w.bus == nil {
		return
	}

	payload, err := json.Marshal(tileChangePayload{X: pos.X, Y: pos.Y, Tile: tile.Name(id)})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	ev := eventbus.NewEnvelope("world", eventbus.EventTileChange, payload)
	if err := w.bus.Publish(ctx, ev); err != nil {
		logging.Warn("Не удалось опубликовать событие тайла (%d,%d): %v", pos.X, pos.Y, err)
	}
}
