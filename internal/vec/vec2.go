package vec

import "math"

// ChunkShift — степень двойки размера чанка (32 = 1<<5).
const ChunkShift = 5

// ChunkSize — размер чанка в тайлах по каждой оси.
const ChunkSize = 1 << ChunkShift

// Vec2 представляет 2D координаты тайла в мире
type Vec2 struct {
	X, Y int
}

// ToChunkCoords преобразует глобальные координаты тайла в координаты чанка.
// Арифметический сдвиг даёт floor-деление, корректное и для отрицательных координат.
func (v Vec2) ToChunkCoords() Vec2 {
	return Vec2{X: v.X >> ChunkShift, Y: v.Y >> ChunkShift}
}

// LocalInChunk возвращает локальные координаты внутри чанка.
// Маска даёт положительный модуль: -1 → 31.
func (v Vec2) LocalInChunk() Vec2 {
	return Vec2{X: v.X & (ChunkSize - 1), Y: v.Y & (ChunkSize - 1)}
}

// Add складывает два вектора
func (v Vec2) Add(other Vec2) Vec2 {
	return Vec2{X: v.X + other.X, Y: v.Y + other.Y}
}

// ChebyshevTo возвращает расстояние Чебышёва до другой точки.
// Используется контроллером стриминга чанков.
func (v Vec2) ChebyshevTo(other Vec2) int {
	dx := v.X - other.X
	if dx < 0 {
		dx = -dx
	}
	dy := v.Y - other.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}

// DistanceTo вычисляет евклидово расстояние до другой точки
func (v Vec2) DistanceTo(other Vec2) float64 {
	dx := float64(v.X - other.X)
	dy := float64(v.Y - other.Y)
	return math.Sqrt(dx*dx + dy*dy)
}
