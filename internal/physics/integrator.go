package physics

import (
	"fmt"
	"math"

	"github.com/annel0/blockverse/internal/vec"
)

// SolidityChecker отвечает на запросы твёрдости тайла.
// Реализуется миром; запрос за пределами сгенерированной области
// просто дозапускает генерацию, поэтому проверка тотальна.
type SolidityChecker interface {
	IsSolid(pos vec.Vec2) bool
}

// Input — снимок ввода игрока на один тик
type Input struct {
	Left  bool
	Right bool
	Jump  bool
}

// Params — параметры интегратора
type Params struct {
	Gravity     float64 // Ускорение свободного падения, тайлов/с²
	MoveSpeed   float64 // Горизонтальная скорость, тайлов/с
	JumpImpulse float64 // Вертикальный импульс прыжка (отрицательный — вверх)
	Epsilon     float64 // Внутренний отступ бокса при пробе тайлов
	Increment   float64 // Шаг пошагового продвижения при коллизии
}

// DefaultParams возвращает параметры по умолчанию
func DefaultParams() Params {
	return Params{
		Gravity:     28.0,
		MoveSpeed:   6.0,
		JumpImpulse: -11.0,
		Epsilon:     0.01,
		Increment:   0.05,
	}
}

// Integrator — интегратор кинематики с фиксированным шагом.
// Коллизии разрешаются пораздельно по осям: сначала пробное смещение
// целиком, при пересечении твёрдого тайла — пошаговое продвижение до
// упора. Все ветви тотальны, ошибок нет.
type Integrator struct {
	world  SolidityChecker
	params Params
}

// NewIntegrator создаёт интегратор поверх проверки твёрдости мира
func NewIntegrator(world SolidityChecker, params Params) *Integrator {
	return &Integrator{world: world, params: params}
}

// Step продвигает состояние игрока на один тик длиной dt секунд.
// Неконечная позиция — ошибка программирования: молчаливое
// ограничение исказило бы детерминированность, поэтому паникуем.
func (pi *Integrator) Step(p *Player, in Input, dt float64) {
	if !p.Pos.IsFinite() {
		panic(fmt.Sprintf("physics: неконечная позиция игрока %+v", p.Pos))
	}

	// Горизонтальный ввод: целевая скорость -speed, +speed или 0
	switch {
	case in.Left && !in.Right:
		p.Vel.X = -pi.params.MoveSpeed
	case in.Right && !in.Left:
		p.Vel.X = pi.params.MoveSpeed
	default:
		p.Vel.X = 0
	}

	// Гравитация
	p.Vel.Y += pi.params.Gravity * dt

	// Прыжок разрешён только с опоры
	if in.Jump && p.Grounded {
		p.Vel.Y = pi.params.JumpImpulse
		p.Grounded = false
	}

	pi.moveHorizontal(p, dt)
	pi.moveVertical(p, dt)
}

// collides проверяет пересечение бокса с твёрдыми тайлами.
// Бокс сжимается на Epsilon внутрь, чтобы касание границы тайла
// не считалось пересечением.
func (pi *Integrator) collides(x, y, w, h float64) bool {
	eps := pi.params.Epsilon
	minX := int(math.Floor(x + eps))
	maxX := int(math.Floor(x + w - eps))
	minY := int(math.Floor(y + eps))
	maxY := int(math.Floor(y + h - eps))

	for ty := minY; ty <= maxY; ty++ {
		for tx := minX; tx <= maxX; tx++ {
			if pi.world.IsSolid(vec.Vec2{X: tx, Y: ty}) {
				return true
			}
		}
	}
	return false
}

// moveHorizontal разрешает горизонтальное смещение
func (pi *Integrator) moveHorizontal(p *Player, dt float64) {
	dx := p.Vel.X * dt
	if dx == 0 {
		return
	}

	nx := p.Pos.X + dx
	if !pi.collides(nx, p.Pos.Y, p.Width, p.Height) {
		p.Pos.X = nx
		return
	}

	// Упёрлись: продвигаемся малыми шагами, пока следующий шаг свободен
	step := pi.params.Increment
	if dx < 0 {
		step = -step
	}
	limit := int(math.Abs(dx)/pi.params.Increment) + 1
	for i := 0; i < limit; i++ {
		if pi.collides(p.Pos.X+step, p.Pos.Y, p.Width, p.Height) {
			break
		}
		p.Pos.X += step
	}
	p.Vel.X = 0
}

// moveVertical разрешает вертикальное смещение. При столкновении на
// падении низ бокса прижимается ровно к границе тайла и ставится
// флаг опоры.
func (pi *Integrator) moveVertical(p *Player, dt float64) {
	dy := p.Vel.Y * dt
	if dy == 0 {
		return
	}

	ny := p.Pos.Y + dy
	if !pi.collides(p.Pos.X, ny, p.Width, p.Height) {
		p.Pos.Y = ny
		if dy > 0 {
			// Опора сохраняется, пока твёрдый тайл в пределах одного
			// шага под боксом: иначе флаг дребезжал бы на каждой
			// микропросадке внутри Epsilon.
			p.Grounded = pi.collides(p.Pos.X, p.Pos.Y+pi.params.Increment, p.Width, p.Height)
			if p.Grounded {
				p.Vel.Y = 0
			}
		}
		return
	}

	if dy > 0 {
		// Падение: y = floor(y + h) - h сажает низ бокса на границу тайла.
		// При пролёте нескольких тайлов за тик поднимаемся по рядам,
		// пока бокс не освободится.
		snapped := math.Floor(ny+p.Height) - p.Height
		for snapped > p.Pos.Y && pi.collides(p.Pos.X, snapped, p.Width, p.Height) {
			snapped -= 1.0
		}
		if snapped > p.Pos.Y {
			p.Pos.Y = snapped
		}
		p.Grounded = true
	} else {
		// Движение вверх: пошагово до упора в потолок
		limit := int(-dy/pi.params.Increment) + 1
		for i := 0; i < limit; i++ {
			if pi.collides(p.Pos.X, p.Pos.Y-pi.params.Increment, p.Width, p.Height) {
				break
			}
			p.Pos.Y -= pi.params.Increment
		}
	}
	p.Vel.Y = 0
}
