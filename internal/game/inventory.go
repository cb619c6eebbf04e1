package game

import "sync"

// Inventory — счётчики ресурсов игрока. Мутируется только добычей;
// крафт и UI инвентаря — внешние потребители.
type Inventory struct {
	mu    sync.RWMutex
	items map[string]int
}

// NewInventory создаёт пустой инвентарь
func NewInventory() *Inventory {
	return &Inventory{items: make(map[string]int)}
}

// Add добавляет count единиц ресурса
func (inv *Inventory) Add(resource string, count int) {
	inv.mu.Lock()
	defer inv.mu.Unlock()

	inv.items[resource] += count
}

// Count возвращает количество ресурса
func (inv *Inventory) Count(resource string) int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	return inv.items[resource]
}

// All возвращает копию всех счётчиков
func (inv *Inventory) All() map[string]int {
	inv.mu.RLock()
	defer inv.mu.RUnlock()

	items := make(map[string]int, len(inv.items))
	for k, v := range inv.items {
		items[k] = v
	}
	return items
}
