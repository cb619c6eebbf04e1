package implementations

import "github.com/annel0/blockverse/internal/world/tile"

// GrassBehavior реализует поведение тайла травы.
// Трава образует поверхностный слой ландшафта.
type GrassBehavior struct{}

// ID возвращает идентификатор тайла
func (b *GrassBehavior) ID() tile.ID {
	return tile.GrassID
}

// Name возвращает имя тайла
func (b *GrassBehavior) Name() string {
	return "GRASS"
}

// Solid возвращает true, трава непроходима
func (b *GrassBehavior) Solid() bool {
	return true
}

// Resource — при добыче трава даёт землю
func (b *GrassBehavior) Resource() (string, bool) {
	return "dirt", true
}
