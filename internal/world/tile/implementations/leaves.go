package implementations

import "github.com/annel0/blockverse/internal/world/tile"

// LeavesBehavior реализует поведение тайла листвы.
// Листва проходима и не даёт ресурса при добыче.
type LeavesBehavior struct{}

// ID возвращает идентификатор тайла
func (b *LeavesBehavior) ID() tile.ID {
	return tile.LeavesID
}

// Name возвращает имя тайла
func (b *LeavesBehavior) Name() string {
	return "LEAVES"
}

// Solid возвращает false — сквозь листву можно пройти
func (b *LeavesBehavior) Solid() bool {
	return false
}

// Resource ничего не возвращает
func (b *LeavesBehavior) Resource() (string, bool) {
	return "", false
}
