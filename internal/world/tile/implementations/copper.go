package implementations

import "github.com/annel0/blockverse/internal/world/tile"

// CopperBehavior реализует поведение тайла медной руды
type CopperBehavior struct{}

// ID возвращает идентификатор тайла
func (b *CopperBehavior) ID() tile.ID {
	return tile.CopperID
}

// Name возвращает имя тайла
func (b *CopperBehavior) Name() string {
	return "COPPER"
}

// Solid возвращает true, руда непроходима
func (b *CopperBehavior) Solid() bool {
	return true
}

// Resource — при добыче выпадает медь
func (b *CopperBehavior) Resource() (string, bool) {
	return "copper", true
}
