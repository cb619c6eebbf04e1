package eventbus

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Типы событий ядра мира
const (
	EventTileChange = "TileChange" // Изменение тайла через World.SetTile
	EventResource   = "Resource"   // Добыт ресурс
)

// Envelope описывает универсальный контейнер события.
type Envelope struct {
	ID        string            // Глобально уникальный идентификатор (UUID)
	Timestamp time.Time         // Время создания события (UTC)
	Source    string            // Имя компонента-источника
	EventType string            // Тип события (TileChange, Resource…)
	Payload   []byte            // Сериализованная полезная нагрузка (JSON)
	Metadata  map[string]string // Произвольные метаданные
}

// NewEnvelope создаёт конверт события с заполненными ID и временем
func NewEnvelope(source, eventType string, payload []byte) *Envelope {
	return &Envelope{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
		Source:    source,
		EventType: eventType,
		Payload:   payload,
	}
}

// Filter позволяет подписаться только на нужные события.
type Filter struct {
	Types []string // Если пусто — все типы
}

func (f Filter) matches(ev *Envelope) bool {
	if len(f.Types) == 0 {
		return true
	}
	for _, t := range f.Types {
		if t == ev.EventType {
			return true
		}
	}
	return false
}

// Subscription возвращается при подписке; позволяет отписаться.
type Subscription interface {
	Unsubscribe()
}

// Handler потребляет события.
type Handler func(ctx context.Context, ev *Envelope)

// Stats — агрегированные метрики шины.
type Stats struct {
	Published uint64
	Dropped   uint64
}

// EventBus определяет абстракцию шины событий мира. Ядро публикует
// уведомления об изменениях тайлов и добыче; рендер и сетевая
// синхронизация (внешние коллабораторы) подписываются на них.
type EventBus interface {
	Publish(ctx context.Context, ev *Envelope) error
	Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error)
	Metrics() Stats
	Close() error
}

//================ In-Memory implementation =================//

type memoryBus struct {
	mu          sync.RWMutex
	subscribers map[int]memorySubscriber
	nextID      int
	stats       Stats
	buffer      chan *Envelope
	done        chan struct{}
	closeOnce   sync.Once
}

type memorySubscriber struct {
	filter  Filter
	handler Handler
	ctx     context.Context
	cancel  context.CancelFunc
}

// NewMemoryBus создаёт in-memory шину с указанным буфером.
// Используется по умолчанию, когда NATS не сконфигурирован.
func NewMemoryBus(capacity int) EventBus {
	mb := &memoryBus{
		subscribers: make(map[int]memorySubscriber),
		buffer:      make(chan *Envelope, capacity),
		done:        make(chan struct{}),
	}
	go mb.dispatchLoop()
	return mb
}

func (mb *memoryBus) Publish(ctx context.Context, ev *Envelope) error {
	select {
	case mb.buffer <- ev:
		mb.mu.Lock()
		mb.stats.Published++
		mb.mu.Unlock()
		return nil
	default:
		// Буфер заполнен — событие дропаем; ядро не блокируется
		mb.mu.Lock()
		mb.stats.Dropped++
		mb.mu.Unlock()
		return nil
	}
}

func (mb *memoryBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	mb.mu.Lock()
	id := mb.nextID
	mb.nextID++
	cctx, cancel := context.WithCancel(ctx)
	mb.subscribers[id] = memorySubscriber{filter: f, handler: h, ctx: cctx, cancel: cancel}
	mb.mu.Unlock()

	return &memorySub{bus: mb, id: id}, nil
}

func (mb *memoryBus) Metrics() Stats {
	mb.mu.RLock()
	defer mb.mu.RUnlock()
	return mb.stats
}

func (mb *memoryBus) Close() error {
	mb.closeOnce.Do(func() { close(mb.done) })
	return nil
}

func (mb *memoryBus) dispatchLoop() {
	for {
		select {
		case <-mb.done:
			return
		case ev := <-mb.buffer:
			mb.mu.RLock()
			subs := make([]memorySubscriber, 0, len(mb.subscribers))
			for _, s := range mb.subscribers {
				subs = append(subs, s)
			}
			mb.mu.RUnlock()

			for _, s := range subs {
				if s.ctx.Err() != nil || !s.filter.matches(ev) {
					continue
				}
				s.handler(s.ctx, ev)
			}
		}
	}
}

type memorySub struct {
	bus *memoryBus
	id  int
}

func (s *memorySub) Unsubscribe() {
	s.bus.mu.Lock()
	if sub, ok := s.bus.subscribers[s.id]; ok {
		sub.cancel()
		delete(s.bus.subscribers, s.id)
	}
	s.bus.mu.Unlock()
}
