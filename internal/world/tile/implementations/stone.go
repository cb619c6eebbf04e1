package implementations

import "github.com/annel0/blockverse/internal/world/tile"

// StoneBehavior реализует поведение тайла камня.
// Камень — основной материал подземного слоя; руды генерируются
// заменой камня на этапе генерации чанка.
type StoneBehavior struct{}

// ID возвращает идентификатор тайла
func (b *StoneBehavior) ID() tile.ID {
	return tile.StoneID
}

// Name возвращает имя тайла
func (b *StoneBehavior) Name() string {
	return "STONE"
}

// Solid возвращает true, камень непроходим
func (b *StoneBehavior) Solid() bool {
	return true
}

// Resource — при добыче выпадает камень
func (b *StoneBehavior) Resource() (string, bool) {
	return "stone", true
}
