package implementations

import "github.com/annel0/blockverse/internal/world/tile"

// Регистрируем все типы тайлов при импорте пакета
func init() {
	tile.Register(tile.AirID, &AirBehavior{})
	tile.Register(tile.GrassID, &GrassBehavior{})
	tile.Register(tile.DirtID, &DirtBehavior{})
	tile.Register(tile.StoneID, &StoneBehavior{})
	tile.Register(tile.CoalID, &CoalBehavior{})
	tile.Register(tile.CopperID, &CopperBehavior{})
	tile.Register(tile.WoodID, &WoodBehavior{})
	tile.Register(tile.LeavesID, &LeavesBehavior{})
}
