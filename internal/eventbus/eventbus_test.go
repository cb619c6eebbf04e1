package eventbus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatal("Условие не наступило за отведённое время")
}

func TestMemoryBusPublishSubscribe(t *testing.T) {
	bus := NewMemoryBus(16)
	defer bus.Close()

	var mu sync.Mutex
	var received []*Envelope
	_, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		mu.Lock()
		received = append(received, ev)
		mu.Unlock()
	})
	require.NoError(t, err)

	ev := NewEnvelope("test", EventTileChange, []byte(`{"x":1}`))
	require.NoError(t, bus.Publish(context.Background(), ev))

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(received) == 1
	})

	mu.Lock()
	got := received[0]
	mu.Unlock()
	assert.Equal(t, ev.ID, got.ID)
	assert.Equal(t, EventTileChange, got.EventType)
	assert.Equal(t, "test", got.Source)
	assert.NotEmpty(t, got.ID)
}

func TestMemoryBusFilter(t *testing.T) {
	bus := NewMemoryBus(16)
	defer bus.Close()

	var mu sync.Mutex
	var tileEvents, resourceEvents int
	_, err := bus.Subscribe(context.Background(), Filter{Types: []string{EventTileChange}}, func(ctx context.Context, ev *Envelope) {
		mu.Lock()
		tileEvents++
		mu.Unlock()
	})
	require.NoError(t, err)
	_, err = bus.Subscribe(context.Background(), Filter{Types: []string{EventResource}}, func(ctx context.Context, ev *Envelope) {
		mu.Lock()
		resourceEvents++
		mu.Unlock()
	})
	require.NoError(t, err)

	bus.Publish(context.Background(), NewEnvelope("test", EventTileChange, nil))
	bus.Publish(context.Background(), NewEnvelope("test", EventTileChange, nil))
	bus.Publish(context.Background(), NewEnvelope("test", EventResource, nil))

	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return tileEvents == 2 && resourceEvents == 1
	})
}

func TestMemoryBusUnsubscribe(t *testing.T) {
	bus := NewMemoryBus(16)
	defer bus.Close()

	var mu sync.Mutex
	count := 0
	sub, err := bus.Subscribe(context.Background(), Filter{}, func(ctx context.Context, ev *Envelope) {
		mu.Lock()
		count++
		mu.Unlock()
	})
	require.NoError(t, err)

	bus.Publish(context.Background(), NewEnvelope("test", EventTileChange, nil))
	waitFor(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return count == 1
	})

	sub.Unsubscribe()
	bus.Publish(context.Background(), NewEnvelope("test", EventTileChange, nil))

	// Даём диспетчеру время: событие не должно дойти
	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, count, "Событие доставлено после отписки")
}

func TestMemoryBusDropsWhenFull(t *testing.T) {
	// Шина без подписчиков и с крошечным буфером: диспетчер вычитывает
	// буфер, поэтому публикуем больше, чем он успевает забрать
	bus := NewMemoryBus(1)
	defer bus.Close()

	for i := 0; i < 1000; i++ {
		require.NoError(t, bus.Publish(context.Background(), NewEnvelope("test", EventTileChange, nil)))
	}

	stats := bus.Metrics()
	assert.Equal(t, uint64(1000), stats.Published+stats.Dropped, "Потерян учёт событий")
}

func TestEnvelopeFields(t *testing.T) {
	before := time.Now().UTC()
	ev := NewEnvelope("world", EventResource, []byte("{}"))

	assert.NotEmpty(t, ev.ID)
	assert.Equal(t, "world", ev.Source)
	assert.Equal(t, EventResource, ev.EventType)
	assert.False(t, ev.Timestamp.Before(before))

	other := NewEnvelope("world", EventResource, nil)
	assert.NotEqual(t, ev.ID, other.ID, "ID конвертов совпали")
}
