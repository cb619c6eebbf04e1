package game

import (
	"context"
	"encoding/json"
	"time"

	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/tile"
)

// Miner превращает выбранный указателем тайл в мутацию инвентаря и
// запись AIR через аксессор мира. Отображение тайл→ресурс фиксировано
// поведением тайла: WOOD→wood, COAL→coal, COPPER→copper,
// DIRT и GRASS→dirt, STONE→stone; AIR и LEAVES ресурса не дают.
type Miner struct {
	world *world.World
	inv   *Inventory
	bus   eventbus.EventBus // Может быть nil
}

// NewMiner создаёт обработчик добычи
func NewMiner(w *world.World, inv *Inventory) *Miner {
	return &Miner{world: w, inv: inv}
}

// SetEventBus подключает шину для событий добычи
func (m *Miner) SetEventBus(bus eventbus.EventBus) {
	m.bus = bus
}

// Mine добывает тайл в мировой позиции pos. Если тайл не даёт ресурса
// (AIR, LEAVES), ничего не происходит: ни записи, ни изменения
// инвентаря. Иначе тайл заменяется на AIR и начисляется ровно одна
// единица ресурса.
func (m *Miner) Mine(pos vec.Vec2) (string, bool) {
	id := m.world.GetTile(pos)
	resource, ok := tile.Resource(id)
	if !ok {
		return "", false
	}

	m.world.SetTile(pos, tile.AirID)
	m.inv.Add(resource, 1)
	metricResourcesMined.WithLabelValues(resource).Inc()

	m.publishResource(pos, resource)
	return resource, true
}

type resourcePayload struct {
	X        int    `json:"x"`
	Y        int    `json:"y"`
	Resource string `json:"resource"`
}

func (m *Miner) publishResource(pos vec.Vec2, resource string) {
	if m.bus == nil {
		return
	}

	payload, err := json.Marshal(resourcePayload{X: pos.X, Y: pos.Y, Resource: resource})
	if err != nil {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	_ = m.bus.Publish(ctx, eventbus.NewEnvelope("game", eventbus.EventResource, payload))
}
