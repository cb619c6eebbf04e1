package physics

import "github.com/annel0/blockverse/internal/vec"

// Player — кинематическое состояние игрока. Позиция задаёт верхний
// левый угол ограничивающего прямоугольника в дробных тайловых
// единицах; ось Y направлена вниз (по гравитации). Состояние мутирует
// только физический интегратор и ввод игровой сессии.
type Player struct {
	Pos      vec.Vec2Float // Верхний левый угол бокса
	Vel      vec.Vec2Float // Скорость, тайлов в секунду
	Width    float64       // Ширина бокса в тайлах
	Height   float64       // Высота бокса в тайлах
	Grounded bool          // Стоит ли игрок на твёрдом тайле
}

// NewPlayer создаёт игрока в указанной позиции со стандартным боксом
func NewPlayer(x, y float64) *Player {
	return &Player{
		Pos:    vec.Vec2Float{X: x, Y: y},
		Width:  0.8,
		Height: 1.8,
	}
}

// TilePos возвращает целочисленную тайловую позицию центра бокса.
// Используется контроллером стриминга.
func (p *Player) TilePos() vec.Vec2 {
	return vec.Vec2Float{X: p.Pos.X + p.Width/2, Y: p.Pos.Y + p.Height/2}.ToVec2()
}
