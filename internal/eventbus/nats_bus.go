package eventbus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync/atomic"

	nats "github.com/nats-io/nats.go"
)

// NatsBus реализует EventBus поверх NATS. Используется, когда за
// изменениями мира должны следить внешние процессы (сетевой
// синхронизатор, внешний рендер).
type NatsBus struct {
	nc        *nats.Conn
	subject   string
	published uint64
	dropped   uint64
}

// NewNatsBus подключается к кластеру NATS.
// url: nats://127.0.0.1:4222, subject-префикс: "blockverse.events".
func NewNatsBus(url, subjectPrefix string) (*NatsBus, error) {
	if subjectPrefix == "" {
		subjectPrefix = "blockverse.events"
	}

	nc, err := nats.Connect(url)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &NatsBus{nc: nc, subject: subjectPrefix}, nil
}

// Publish сериализует Envelope в JSON и публикует в subject <prefix>.<type>.
func (b *NatsBus) Publish(ctx context.Context, ev *Envelope) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("marshal envelope: %w", err)
	}

	if err := b.nc.Publish(b.subject+"."+ev.EventType, data); err != nil {
		atomic.AddUint64(&b.dropped, 1)
		return fmt.Errorf("nats publish: %w", err)
	}

	atomic.AddUint64(&b.published, 1)
	return nil
}

// Subscribe подписывается на события; фильтр по типам применяется
// на стороне подписчика.
func (b *NatsBus) Subscribe(ctx context.Context, f Filter, h Handler) (Subscription, error) {
	sub, err := b.nc.Subscribe(b.subject+".>", func(msg *nats.Msg) {
		var ev Envelope
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			return
		}
		if !f.matches(&ev) {
			return
		}
		h(ctx, &ev)
	})
	if err != nil {
		return nil, fmt.Errorf("nats subscribe: %w", err)
	}

	return &natsSub{sub: sub}, nil
}

// Metrics возвращает счётчики шины
func (b *NatsBus) Metrics() Stats {
	return Stats{
		Published: atomic.LoadUint64(&b.published),
		Dropped:   atomic.LoadUint64(&b.dropped),
	}
}

// Close дренирует соединение с NATS
func (b *NatsBus) Close() error {
	return b.nc.Drain()
}

type natsSub struct {
	sub *nats.Subscription
}

func (s *natsSub) Unsubscribe() {
	_ = s.sub.Unsubscribe()
}
