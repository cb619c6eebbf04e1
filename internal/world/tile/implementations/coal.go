package implementations

import "github.com/annel0/blockverse/internal/world/tile"

// CoalBehavior реализует поведение тайла угольной руды
type CoalBehavior struct{}

// ID возвращает идентификатор тайла
func (b *CoalBehavior) ID() tile.ID {
	return tile.CoalID
}

// Name возвращает имя тайла
func (b *CoalBehavior) Name() string {
	return "COAL"
}

// Solid возвращает true, руда непроходима
func (b *CoalBehavior) Solid() bool {
	return true
}

// Resource — при добыче выпадает уголь
func (b *CoalBehavior) Resource() (string, bool) {
	return "coal", true
}
