package game

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/vec"
	"github.com/annel0/blockverse/internal/world"
)

// InputState — снимок ввода игрока: движение, прыжок и добыча
// с целевым тайлом под указателем.
type InputState struct {
	physics.Input
	Mining bool     // Активна ли кнопка добычи
	Target vec.Vec2 // Мировой тайл под указателем
}

// Session — игровая сессия: владеет миром, игроком и инвентарём и
// крутит единственный цикл обновления с фиксированным тиком (ввод →
// физика → стриминг) плюс отдельный опрос добычи с собственным
// интервалом. Вся мутация мира и игрока происходит на этом логическом
// потоке, блокировок в горячем пути не требуется.
type Session struct {
	ID string // UUID сессии

	world      *world.World
	player     *physics.Player
	integrator *physics.Integrator
	inventory  *Inventory
	miner      *Miner

	mu    sync.Mutex
	input InputState

	playerMu sync.Mutex // Защищает player от конкурентного чтения рендером

	tickRate    int
	miningEvery time.Duration
	logger      *logging.Logger

	cancel context.CancelFunc
}

// NewSession создаёт сессию поверх мира. Игрок появляется над
// поверхностью в колонке 0.
func NewSession(w *world.World, params physics.Params, tickRate int, miningEvery time.Duration) *Session {
	s := &Session{
		ID:          uuid.NewString(),
		world:       w,
		inventory:   NewInventory(),
		tickRate:    tickRate,
		miningEvery: miningEvery,
		logger:      logging.GetGameLogger(),
	}
	s.integrator = physics.NewIntegrator(w, params)
	s.miner = NewMiner(w, s.inventory)
	s.player = s.spawnPlayer()
	return s
}

// spawnPlayer находит первый твёрдый тайл в колонке 0 и ставит игрока
// вплотную над ним.
func (s *Session) spawnPlayer() *physics.Player {
	s.world.Stream(vec.Vec2{X: 0, Y: 0})

	for y := 0; y < world.ChunkSize*4; y++ {
		if s.world.IsSolid(vec.Vec2{X: 0, Y: y}) {
			p := physics.NewPlayer(0, 0)
			p.Pos = vec.Vec2Float{X: 0.5 - p.Width/2, Y: float64(y) - p.Height}
			return p
		}
	}

	// Колонка оказалась пустой до самого низа окна — падаем с нуля
	return physics.NewPlayer(0.1, 0)
}

// SetInput публикует свежий снимок ввода (вызывается слоем захвата
// ввода, внешним по отношению к ядру).
func (s *Session) SetInput(in InputState) {
	s.mu.Lock()
	s.input = in
	s.mu.Unlock()
}

func (s *Session) currentInput() InputState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.input
}

// Advance продвигает сессию на один тик: интегрирует физику и
// обеспечивает резидентность чанков вокруг игрока. Возвращает копию
// кинематического состояния для рендера.
func (s *Session) Advance(dt float64, in physics.Input) physics.Player {
	s.playerMu.Lock()
	defer s.playerMu.Unlock()

	s.integrator.Step(s.player, in, dt)
	s.world.Stream(s.player.TilePos())
	return *s.player
}

// MinePoll выполняет один опрос добычи по текущему вводу
func (s *Session) MinePoll() {
	in := s.currentInput()
	if !in.Mining {
		return
	}
	if resource, ok := s.miner.Mine(in.Target); ok {
		s.logger.Debug("Добыт ресурс %s в (%d,%d)", resource, in.Target.X, in.Target.Y)
	}
}

// Run запускает циклы обновления и добычи до отмены контекста
func (s *Session) Run(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)

	go s.updateLoop(ctx)
	go s.miningLoop(ctx)
}

// Stop останавливает циклы сессии
func (s *Session) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}

func (s *Session) updateLoop(ctx context.Context) {
	dt := 1.0 / float64(s.tickRate)
	ticker := time.NewTicker(time.Second / time.Duration(s.tickRate))
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.Advance(dt, s.currentInput().Input)
		}
	}
}

func (s *Session) miningLoop(ctx context.Context) {
	ticker := time.NewTicker(s.miningEvery)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.MinePoll()
		}
	}
}

// World возвращает мир сессии
func (s *Session) World() *world.World {
	return s.world
}

// Inventory возвращает инвентарь игрока
func (s *Session) Inventory() *Inventory {
	return s.inventory
}

// Miner возвращает обработчик добычи
func (s *Session) Miner() *Miner {
	return s.miner
}

// Player возвращает копию кинематического состояния игрока
func (s *Session) Player() physics.Player {
	s.playerMu.Lock()
	defer s.playerMu.Unlock()
	return *s.player
}

// SetPlayerPos телепортирует игрока (используется при загрузке
// сохранённой позиции).
func (s *Session) SetPlayerPos(pos vec.Vec2Float) {
	s.playerMu.Lock()
	defer s.playerMu.Unlock()

	s.player.Pos = pos
	s.player.Vel = vec.Vec2Float{}
	s.player.Grounded = false
}
