package world

import (
	"math"

	"github.com/aquilax/go-perlin"

	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world/tile"
)

// Константы генерации ландшафта
const (
	SurfaceMin = 4             // Минимальный ряд поверхности
	SurfaceMax = ChunkSize - 6 // Максимальный ряд поверхности
	DirtDepth  = 4             // Толщина слоя земли под травой

	CaveChance        = 0.65 // Вероятность пещер в чанке
	CaveSurfaceChance = 0.12 // Вероятность вертикального выхода тоннеля на поверхность
	CaveMargin        = 2    // Отступ блуждания тоннеля от границ чанка

	CoalThreshold   = 0.02  // Доля камня, превращаемая в уголь
	CopperThreshold = 0.027 // Порог меди (проверяется после угля той же выборкой)

	TreeChance = 0.06 // Вероятность дерева в колонке
	TreeMargin = 2    // Отступ колонок с деревьями от границ чанка
	LeafRadius = 2    // Радиус ромба листвы (манхэттенское расстояние)
)

// Generator генерирует ландшафт мира: высотную карту, пещеры, руды
// и деревья. Генерация чистая и тотальная: для фиксированной пары
// (seed, координаты чанка) результат побитово воспроизводим, потому
// что вся случайность берётся из одного ChunkRand в фиксированном
// порядке выборок. Изменение числа или порядка выборок меняет весь
// чанк и ломает совместимость сохранений.
type Generator struct {
	seed       string
	noise      *perlin.Perlin // Низкочастотный рельеф поверх синусоиды
	noiseScale float64
}

// NewGenerator создаёт генератор мира с указанным сидом.
// Шум Перлина принадлежит генератору, а не глобальному состоянию.
func NewGenerator(seed string) *Generator {
	return &Generator{
		seed:       seed,
		noise:      perlin.NewPerlin(2.0, 2.0, 3, int64(int32(hashString(seed)))),
		noiseScale: 0.02,
	}
}

// Seed возвращает сид генератора
func (g *Generator) Seed() string {
	return g.seed
}

// GenerateChunk генерирует чанк по его координатам.
// Этапы выполняются строго по порядку: высотная карта, пещеры, руды,
// деревья. Каждый следующий этап может перезаписывать тайлы предыдущего.
func (g *Generator) GenerateChunk(coords vec.Vec2) *Chunk {
	chunk := NewChunk(coords)
	rng := NewChunkRand(g.seed, coords.X, coords.Y)

	g.generateTerrain(chunk, coords, rng)
	g.carveCaves(chunk, rng)
	g.scatterOres(chunk, rng)
	g.placeTrees(chunk, rng)

	return chunk
}

// generateTerrain заполняет чанк по высотной карте. Синусоидальная
// составляющая зависит только от мировых координат, что даёт
// непрерывность рельефа между соседними чанками; выборка RNG добавляет
// локальную вариативность.
func (g *Generator) generateTerrain(chunk *Chunk, coords vec.Vec2, rng *ChunkRand) {
	for x := 0; x < ChunkSize; x++ {
		worldX := coords.X*ChunkSize + x

		wave := math.Sin(float64(worldX)*0.13+float64(coords.Y)*0.7)*3.5 +
			math.Sin(float64(worldX)*0.045)*4.0
		relief := (g.noise.Noise2D(float64(worldX)*g.noiseScale, float64(coords.Y)*0.35) + 1.0) / 2.0

		row := int(12.0 + wave + relief*6.0 + rng.Next()*2.0)
		if row < SurfaceMin {
			row = SurfaceMin
		}
		if row > SurfaceMax {
			row = SurfaceMax
		}

		for y := 0; y < ChunkSize; y++ {
			switch {
			case y < row:
				chunk.Tiles[y][x] = tile.AirID
			case y == row:
				chunk.Tiles[y][x] = tile.GrassID
			case y <= row+DirtDepth:
				chunk.Tiles[y][x] = tile.DirtID
			default:
				chunk.Tiles[y][x] = tile.StoneID
			}
		}
	}
}

// carveCaves прорезает тоннели случайным блужданием. Каждый шаг
// вырезает диск случайного радиуса (евклидово расстояние), после чего
// точка блуждания смещается на ±1 по каждой оси и прижимается к
// внутренним границам чанка. Вырезание только превращает тайлы в AIR
// и никогда не добавляет твёрдые.
func (g *Generator) carveCaves(chunk *Chunk, rng *ChunkRand) {
	if !rng.Chance(CaveChance) {
		return
	}

	tunnels := rng.Range(1, 2)
	for t := 0; t < tunnels; t++ {
		x := rng.Range(CaveMargin, ChunkSize-CaveMargin-1)
		y := rng.Range(CaveMargin, ChunkSize-CaveMargin-1)
		steps := rng.Range(10, 40)

		for s := 0; s < steps; s++ {
			radius := rng.Range(1, 3)
			g.carveDisc(chunk, x, y, radius)

			x += rng.Range(-1, 1)
			y += rng.Range(-1, 1)
			x = clampInt(x, CaveMargin, ChunkSize-CaveMargin-1)
			y = clampInt(y, CaveMargin, ChunkSize-CaveMargin-1)
		}

		// Изредка тоннель выходит на поверхность: сверлим вверх до
		// первой травы или верхней границы чанка.
		if rng.Chance(CaveSurfaceChance) {
			for yy := y; yy >= 0; yy-- {
				if chunk.Tiles[yy][x] == tile.GrassID {
					break
				}
				chunk.Tiles[yy][x] = tile.AirID
			}
		}
	}
}

// carveDisc превращает в AIR все тайлы диска радиуса radius вокруг (cx, cy)
func (g *Generator) carveDisc(chunk *Chunk, cx, cy, radius int) {
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x := cx + dx
			y := cy + dy
			if x < 0 || x >= ChunkSize || y < 0 || y >= ChunkSize {
				continue
			}
			chunk.Tiles[y][x] = tile.AirID
		}
	}
}

// scatterOres превращает часть оставшегося камня в руду.
// Одна выборка на тайл: сначала проверяется порог угля, затем меди,
// превращения взаимоисключающие.
func (g *Generator) scatterOres(chunk *Chunk, rng *ChunkRand) {
	for y := 0; y < ChunkSize; y++ {
		for x := 0; x < ChunkSize; x++ {
			if chunk.Tiles[y][x] != tile.StoneID {
				continue
			}
			v := rng.Next()
			if v < CoalThreshold {
				chunk.Tiles[y][x] = tile.CoalID
			} else if v < CopperThreshold {
				chunk.Tiles[y][x] = tile.CopperID
			}
		}
	}
}

// placeTrees ставит деревья на траву во внутренних колонках чанка:
// ствол 3-5 тайлов вверх от поверхности и ромб листвы вокруг вершины.
// Листва пишется только в AIR, не более одного дерева на колонку.
func (g *Generator) placeTrees(chunk *Chunk, rng *ChunkRand) {
	for x := TreeMargin; x < ChunkSize-TreeMargin; x++ {
		if !rng.Chance(TreeChance) {
			continue
		}

		// Ищем первый тайл травы сверху вниз
		groundY := -1
		for y := 0; y < ChunkSize; y++ {
			if chunk.Tiles[y][x] == tile.GrassID {
				groundY = y
				break
			}
		}
		if groundY < 0 {
			continue
		}

		height := rng.Range(3, 5)
		topY := groundY - height
		for y := groundY - 1; y >= topY && y >= 0; y-- {
			chunk.Tiles[y][x] = tile.WoodID
		}

		for dy := -LeafRadius; dy <= LeafRadius; dy++ {
			for dx := -LeafRadius; dx <= LeafRadius; dx++ {
				if abs(dx)+abs(dy) > LeafRadius {
					continue
				}
				lx := x + dx
				ly := topY + dy
				if lx < 0 || lx >= ChunkSize || ly < 0 || ly >= ChunkSize {
					continue
				}
				if chunk.Tiles[ly][lx] == tile.AirID {
					chunk.Tiles[ly][lx] = tile.LeavesID
				}
			}
		}
	}
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
