package physics

import (
	"math"
	"testing"

	"github.com/annel0/blockverse/internal/vec"
)

// tileWorld — мир для тестов: плоский пол на ряду groundY плюс
// произвольные твёрдые тайлы.
type tileWorld struct {
	groundY int
	solid   map[vec.Vec2]bool
}

func newTileWorld(groundY int) *tileWorld {
	return &tileWorld{groundY: groundY, solid: make(map[vec.Vec2]bool)}
}

func (w *tileWorld) IsSolid(pos vec.Vec2) bool {
	return pos.Y >= w.groundY || w.solid[pos]
}

const dt = 1.0 / 60.0

func TestFallAndRest(t *testing.T) {
	world := newTileWorld(10)
	pi := NewIntegrator(world, DefaultParams())
	p := NewPlayer(2.0, 0.0)

	for i := 0; i < 300; i++ {
		pi.Step(p, Input{}, dt)
	}

	if !p.Grounded {
		t.Fatal("Игрок не встал на опору после падения")
	}
	bottom := p.Pos.Y + p.Height
	if math.Abs(bottom-10.0) > 0.05 {
		t.Errorf("Низ бокса далёк от границы пола: %v", bottom)
	}
	if p.Vel.Y != 0 {
		t.Errorf("Вертикальная скорость в покое: %v", p.Vel.Y)
	}
	if p.Pos.X != 2.0 {
		t.Errorf("Игрок сместился по X без ввода: %v", p.Pos.X)
	}
}

func TestJumpOnlyWhenGrounded(t *testing.T) {
	world := newTileWorld(10)
	pi := NewIntegrator(world, DefaultParams())
	p := NewPlayer(2.0, 10.0-1.8)
	p.Grounded = true

	pi.Step(p, Input{Jump: true}, dt)
	if p.Grounded {
		t.Error("Опора не снята после прыжка")
	}
	if p.Vel.Y >= 0 {
		t.Errorf("Прыжок не придал импульс вверх: %v", p.Vel.Y)
	}

	// В воздухе прыжок игнорируется
	velBefore := p.Vel.Y
	pi.Step(p, Input{Jump: true}, dt)
	expected := velBefore + DefaultParams().Gravity*dt
	if math.Abs(p.Vel.Y-expected) > 1e-9 {
		t.Errorf("Прыжок в воздухе изменил скорость: %v, ожидалось %v", p.Vel.Y, expected)
	}
}

func TestJumpAndLand(t *testing.T) {
	world := newTileWorld(10)
	pi := NewIntegrator(world, DefaultParams())
	p := NewPlayer(2.0, 10.0-1.8)
	p.Grounded = true

	startY := p.Pos.Y
	peak := startY

	pi.Step(p, Input{Jump: true}, dt)
	for i := 0; i < 120; i++ {
		pi.Step(p, Input{}, dt)
		if p.Pos.Y < peak {
			peak = p.Pos.Y
		}
	}

	if startY-peak < 1.0 {
		t.Errorf("Высота прыжка слишком мала: %v", startY-peak)
	}
	if !p.Grounded {
		t.Error("Игрок не приземлился после прыжка")
	}
	if math.Abs(p.Pos.Y+p.Height-10.0) > 0.05 {
		t.Errorf("После приземления низ бокса: %v", p.Pos.Y+p.Height)
	}
}

func TestWalkIntoWall(t *testing.T) {
	world := newTileWorld(10)
	for y := 0; y < 10; y++ {
		world.solid[vec.Vec2{X: 5, Y: y}] = true
	}
	pi := NewIntegrator(world, DefaultParams())
	p := NewPlayer(2.0, 10.0-1.8)
	p.Grounded = true

	for i := 0; i < 240; i++ {
		pi.Step(p, Input{Right: true}, dt)
	}

	right := p.Pos.X + p.Width
	if right > 5.0+DefaultParams().Epsilon {
		t.Errorf("Правый край бокса прошёл сквозь стену: %v", right)
	}
	if right < 4.5 {
		t.Errorf("Игрок остановился слишком далеко от стены: %v", right)
	}
	if p.Vel.X != 0 {
		t.Errorf("Горизонтальная скорость у стены: %v", p.Vel.X)
	}
}

func TestCeilingStopsJump(t *testing.T) {
	world := newTileWorld(10)
	// Потолок двумя тайлами выше головы стоящего игрока
	ceilY := 10 - 4
	for x := 0; x < 8; x++ {
		world.solid[vec.Vec2{X: x, Y: ceilY}] = true
	}
	pi := NewIntegrator(world, DefaultParams())
	p := NewPlayer(2.0, 10.0-1.8)
	p.Grounded = true

	pi.Step(p, Input{Jump: true}, dt)
	for i := 0; i < 60; i++ {
		pi.Step(p, Input{}, dt)
		if p.Pos.Y < float64(ceilY+1)-DefaultParams().Epsilon {
			t.Fatalf("Голова прошла сквозь потолок: %v", p.Pos.Y)
		}
	}
}

// Бокс никогда не пересекает твёрдые тайлы, с какой бы высоты ни
// начиналось падение и какой бы ни был ввод.
func TestNoTunneling(t *testing.T) {
	world := newTileWorld(40)
	pi := NewIntegrator(world, DefaultParams())

	starts := []float64{0, -20, -100, 35.5}
	for _, startY := range starts {
		p := NewPlayer(1.0, startY)
		for i := 0; i < 600; i++ {
			in := Input{Right: i%3 == 0, Left: i%7 == 0, Jump: i%5 == 0}
			pi.Step(p, in, dt)
			if pi.collides(p.Pos.X, p.Pos.Y, p.Width, p.Height) {
				t.Fatalf("Старт %v: бокс внутри твёрдого тайла на тике %d, Pos=%+v", startY, i, p.Pos)
			}
			if !p.Pos.IsFinite() {
				t.Fatalf("Старт %v: позиция стала неконечной на тике %d", startY, i)
			}
		}
	}
}

func TestStepPanicsOnNonFinitePos(t *testing.T) {
	world := newTileWorld(10)
	pi := NewIntegrator(world, DefaultParams())
	p := NewPlayer(0, 0)
	p.Pos.X = math.NaN()

	defer func() {
		if recover() == nil {
			t.Error("Step не паникует на неконечной позиции")
		}
	}()
	pi.Step(p, Input{}, dt)
}
