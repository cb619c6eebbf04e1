package storage

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
	"github.com/annel0/blockverse/internal/world/tile"
)

func TestWorldStorageSaveAndLoad(t *testing.T) {
	dir := t.TempDir()

	w := world.NewWorld("42")
	w.SetTile(vec.Vec2{X: 10, Y: 15}, tile.StoneID)
	w.SetTile(vec.Vec2{X: -1, Y: -1}, tile.CoalID)

	ws, err := NewWorldStorage(dir)
	require.NoError(t, err)

	n, err := ws.SaveModified(w)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	// Флаги изменённости сняты после успешной записи
	assert.Empty(t, w.ModifiedChunks())

	// Повторное сохранение пусто
	n, err = ws.SaveModified(w)
	require.NoError(t, err)
	assert.Zero(t, n)
	require.NoError(t, ws.Close())

	// Свежий мир с тем же сидом видит правки после загрузки
	ws2, err := NewWorldStorage(dir)
	require.NoError(t, err)
	defer ws2.Close()

	restored := world.NewWorld("42")
	require.NoError(t, ws2.LoadInto(restored))
	assert.Equal(t, tile.StoneID, restored.GetTile(vec.Vec2{X: 10, Y: 15}))
	assert.Equal(t, tile.CoalID, restored.GetTile(vec.Vec2{X: -1, Y: -1}))

	// Загруженные чанки не считаются изменёнными
	assert.Empty(t, restored.ModifiedChunks())
}

func TestWorldStorageSeedMismatch(t *testing.T) {
	dir := t.TempDir()

	w := world.NewWorld("42")
	w.SetTile(vec.Vec2{X: 0, Y: 0}, tile.DirtID)

	ws, err := NewWorldStorage(dir)
	require.NoError(t, err)
	defer ws.Close()

	_, err = ws.SaveModified(w)
	require.NoError(t, err)

	other := world.NewWorld("999")
	err = ws.LoadInto(other)
	require.Error(t, err, "Сохранение чужого мира загрузилось без ошибки")
}

func TestWorldStorageLoadEmpty(t *testing.T) {
	dir := t.TempDir()

	ws, err := NewWorldStorage(dir)
	require.NoError(t, err)
	defer ws.Close()

	// Пустое хранилище — не ошибка
	w := world.NewWorld("42")
	require.NoError(t, ws.LoadInto(w))
	assert.Zero(t, w.Store().Count())
}

func TestWorldStorageClosed(t *testing.T) {
	dir := t.TempDir()

	ws, err := NewWorldStorage(dir)
	require.NoError(t, err)
	require.NoError(t, ws.Close())

	w := world.NewWorld("42")
	w.SetTile(vec.Vec2{X: 0, Y: 0}, tile.AirID)

	_, err = ws.SaveModified(w)
	assert.Error(t, err)
	assert.Error(t, ws.LoadInto(w))

	// Повторное закрытие безопасно
	assert.NoError(t, ws.Close())
}

func TestCompressGridRoundTrip(t *testing.T) {
	w := world.NewWorld("42")
	chunk := w.Store().Ensure(vec.Vec2{X: 0, Y: 0})
	grid := chunk.Grid()

	data, err := compressGrid(grid)
	require.NoError(t, err)
	assert.Less(t, len(data), 32*32*3, "Сжатие не уменьшило сетку")

	back, err := decompressGrid(data)
	require.NoError(t, err)
	assert.Equal(t, grid, back)
}
