package implementations

import "github.com/annel0/blockverse/internal/world/tile"

// DirtBehavior реализует поведение тайла земли
type DirtBehavior struct{}

// ID возвращает идентификатор тайла
func (b *DirtBehavior) ID() tile.ID {
	return tile.DirtID
}

// Name возвращает имя тайла
func (b *DirtBehavior) Name() string {
	return "DIRT"
}

// Solid возвращает true, земля непроходима
func (b *DirtBehavior) Solid() bool {
	return true
}

// Resource — при добыче выпадает земля
func (b *DirtBehavior) Resource() (string, bool) {
	return "dirt", true
}
