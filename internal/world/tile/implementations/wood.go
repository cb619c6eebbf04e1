package implementations

import "github.com/annel0/blockverse/internal/world/tile"

// WoodBehavior реализует поведение тайла ствола дерева
type WoodBehavior struct{}

// ID возвращает идентификатор тайла
func (b *WoodBehavior) ID() tile.ID {
	return tile.WoodID
}

// Name возвращает имя тайла
func (b *WoodBehavior) Name() string {
	return "WOOD"
}

// Solid возвращает true, ствол непроходим
func (b *WoodBehavior) Solid() bool {
	return true
}

// Resource — при добыче выпадает древесина
func (b *WoodBehavior) Resource() (string, bool) {
	return "wood", true
}
