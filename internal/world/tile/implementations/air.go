package implementations

import "github.com/annel0/blockverse/internal/world/tile"

// AirBehavior реализует поведение пустого тайла
type AirBehavior struct{}

// ID возвращает идентификатор тайла
func (b *AirBehavior) ID() tile.ID {
	return tile.AirID
}

// Name возвращает имя тайла
func (b *AirBehavior) Name() string {
	return "AIR"
}

// Solid возвращает false — воздух проходим
func (b *AirBehavior) Solid() bool {
	return false
}

// Resource ничего не возвращает — воздух нельзя добыть
func (b *AirBehavior) Resource() (string, bool) {
	return "", false
}
