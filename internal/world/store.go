package world

import (
	"sync"
	"time"

	"github.com/annel0/blockverse/internal/vec"
)

// ChunkStore владеет отображением координат чанка в сгенерированную
// сетку тайлов. Первое обращение к координате лениво запускает
// генератор и кэширует результат; повторные обращения возвращают тот
// же экземпляр. Чанки никогда не вытесняются: кэш живёт до конца
// сессии. Это единственное место чтения и записи тайлов.
type ChunkStore struct {
	mu     sync.RWMutex
	chunks map[vec.Vec2]*Chunk
	gen    *Generator
}

// NewChunkStore создаёт хранилище чанков поверх генератора
func NewChunkStore(gen *Generator) *ChunkStore {
	return &ChunkStore{
		chunks: make(map[vec.Vec2]*Chunk),
		gen:    gen,
	}
}

// Ensure возвращает чанк по координатам, генерируя его при первом
// обращении. Генерация выполняется вне блокировки записи, чтобы не
// задерживать читателей; при гонке побеждает первый опубликованный
// экземпляр, и читатель никогда не видит частично сгенерированный чанк.
func (cs *ChunkStore) Ensure(coords vec.Vec2) *Chunk {
	cs.mu.RLock()
	chunk, exists := cs.chunks[coords]
	cs.mu.RUnlock()
	if exists {
		return chunk
	}

	start := time.Now()
	generated := cs.gen.GenerateChunk(coords)

	cs.mu.Lock()
	// Проверяем ещё раз под блокировкой записи
	if existing, ok := cs.chunks[coords]; ok {
		cs.mu.Unlock()
		return existing
	}
	cs.chunks[coords] = generated
	cs.mu.Unlock()

	metricChunksGenerated.Inc()
	metricChunkGenDuration.Observe(time.Since(start).Seconds())
	metricChunksResident.Inc()

	return generated
}

// Get возвращает чанк, если он уже сгенерирован, иначе nil
func (cs *ChunkStore) Get(coords vec.Vec2) *Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return cs.chunks[coords]
}

// Count возвращает число резидентных чанков
func (cs *ChunkStore) Count() int {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	return len(cs.chunks)
}

// ModifiedChunks возвращает чанки, изменённые после генерации.
// Слой персистентности сериализует их и снимает флаг после успешного
// сохранения.
func (cs *ChunkStore) ModifiedChunks() []*Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	var modified []*Chunk
	for _, chunk := range cs.chunks {
		if chunk.Modified() {
			modified = append(modified, chunk)
		}
	}
	return modified
}

// All возвращает все резидентные чанки
func (cs *ChunkStore) All() []*Chunk {
	cs.mu.RLock()
	defer cs.mu.RUnlock()

	chunks := make([]*Chunk, 0, len(cs.chunks))
	for _, chunk := range cs.chunks {
		chunks = append(chunks, chunk)
	}
	return chunks
}
