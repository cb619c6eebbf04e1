package tile_test

import (
	"testing"

	"github.com/annel0/blockverse/internal/world/tile"
	_ "github.com/annel0/blockverse/internal/world/tile/implementations"
)

func TestRegistryComplete(t *testing.T) {
	// Все восемь тайлов зарегистрированы
	for id := tile.ID(0); id < tile.IDCount; id++ {
		behavior, ok := tile.Get(id)
		if !ok {
			t.Fatalf("Тайл %d не зарегистрирован", id)
		}
		if behavior.ID() != id {
			t.Errorf("Поведение тайла %d возвращает ID %d", id, behavior.ID())
		}
		if !tile.IsValid(id) {
			t.Errorf("Зарегистрированный тайл %d считается невалидным", id)
		}
	}

	if tile.IsValid(tile.ID(200)) {
		t.Error("Незарегистрированный ID считается валидным")
	}
}

func TestNameRoundTrip(t *testing.T) {
	expected := map[tile.ID]string{
		tile.AirID:    "AIR",
		tile.GrassID:  "GRASS",
		tile.DirtID:   "DIRT",
		tile.StoneID:  "STONE",
		tile.CoalID:   "COAL",
		tile.CopperID: "COPPER",
		tile.WoodID:   "WOOD",
		tile.LeavesID: "LEAVES",
	}

	for id, name := range expected {
		if got := tile.Name(id); got != name {
			t.Errorf("Имя тайла %d: ожидалось %q, получено %q", id, name, got)
		}
		back, ok := tile.FromName(name)
		if !ok || back != id {
			t.Errorf("FromName(%q): ожидалось %d, получено %d (ok=%v)", name, id, back, ok)
		}
	}

	if _, ok := tile.FromName("OBSIDIAN"); ok {
		t.Error("Неизвестное имя разрешилось в ID")
	}
}

func TestSolidity(t *testing.T) {
	solid := map[tile.ID]bool{
		tile.AirID:    false,
		tile.GrassID:  true,
		tile.DirtID:   true,
		tile.StoneID:  true,
		tile.CoalID:   true,
		tile.CopperID: true,
		tile.WoodID:   true,
		tile.LeavesID: false,
	}

	for id, want := range solid {
		if got := tile.Solid(id); got != want {
			t.Errorf("Твёрдость %s: ожидалось %v, получено %v", tile.Name(id), want, got)
		}
	}
}

func TestResourceMapping(t *testing.T) {
	resources := map[tile.ID]string{
		tile.GrassID:  "dirt",
		tile.DirtID:   "dirt",
		tile.StoneID:  "stone",
		tile.CoalID:   "coal",
		tile.CopperID: "copper",
		tile.WoodID:   "wood",
	}

	for id, want := range resources {
		got, ok := tile.Resource(id)
		if !ok || got != want {
			t.Errorf("Ресурс %s: ожидалось %q, получено %q (ok=%v)", tile.Name(id), want, got, ok)
		}
	}

	// AIR и LEAVES не добываются
	if _, ok := tile.Resource(tile.AirID); ok {
		t.Error("AIR даёт ресурс")
	}
	if _, ok := tile.Resource(tile.LeavesID); ok {
		t.Error("LEAVES даёт ресурс")
	}
}
