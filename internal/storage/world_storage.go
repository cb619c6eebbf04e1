package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/dgraph-io/badger/v3"
	"github.com/klauspost/compress/gzip"

	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/world"
)

// WorldStorage — коллаборатор персистентности мира поверх BadgerDB.
// Сериализует изменённые чанки (сетки имён тайлов row-major, сжатые
// gzip) и метаданные мира. Ядро мира не знает об успехе сохранения:
// оно лишь выставляет флаги изменений, которые хранилище снимает
// после успешной записи.
type WorldStorage struct {
	db      *badger.DB
	dbPath  string
	mutex   sync.RWMutex
	isReady bool
	logger  *logging.Logger
}

// worldMeta — метаданные сохранения
type worldMeta struct {
	Seed      string `json:"seed"`
	Timestamp int64  `json:"timestamp"`
}

const (
	chunkKeyPrefix = "chunk:"
	metaKey        = "meta"
)

// NewWorldStorage создаёт хранилище мира в указанной директории
func NewWorldStorage(dataPath string) (*WorldStorage, error) {
	dbPath := filepath.Join(dataPath, "world")
	opts := badger.DefaultOptions(dbPath)
	opts.Logger = nil // Отключаем логирование BadgerDB

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("не удалось открыть BadgerDB: %w", err)
	}

	return &WorldStorage{
		db:      db,
		dbPath:  dbPath,
		isReady: true,
		logger:  logging.GetStorageLogger(),
	}, nil
}

// Close закрывает хранилище данных
func (ws *WorldStorage) Close() error {
	ws.mutex.Lock()
	defer ws.mutex.Unlock()

	if !ws.isReady {
		return nil
	}

	ws.isReady = false
	return ws.db.Close()
}

// SaveModified сохраняет все изменённые чанки мира и снимает с них
// флаг изменения. Возвращает число сохранённых чанков.
func (ws *WorldStorage) SaveModified(w *world.World) (int, error) {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return 0, fmt.Errorf("хранилище не готово")
	}

	chunks := w.ModifiedChunks()
	if len(chunks) == 0 {
		return 0, nil
	}

	err := ws.db.Update(func(txn *badger.Txn) error {
		for _, chunk := range chunks {
			data, err := compressGrid(chunk.Grid())
			if err != nil {
				return fmt.Errorf("сжатие чанка %v: %w", chunk.Coords, err)
			}
			key := chunkKeyPrefix + world.ChunkKey(chunk.Coords)
			if err := txn.Set([]byte(key), data); err != nil {
				return fmt.Errorf("запись чанка %v: %w", chunk.Coords, err)
			}
		}

		meta, err := json.Marshal(worldMeta{Seed: w.Seed(), Timestamp: time.Now().Unix()})
		if err != nil {
			return fmt.Errorf("сериализация метаданных: %w", err)
		}
		return txn.Set([]byte(metaKey), meta)
	})
	if err != nil {
		return 0, err
	}

	// Успешная запись: снимаем флаги изменений
	for _, chunk := range chunks {
		chunk.ClearModified()
	}

	ws.logger.Debug("Сохранено %d изменённых чанков", len(chunks))
	return len(chunks), nil
}

// LoadInto накладывает все сохранённые чанки поверх детерминированно
// сгенерированного мира. Несовпадение сида — ошибка: сохранение
// принадлежит другому миру.
func (ws *WorldStorage) LoadInto(w *world.World) error {
	ws.mutex.RLock()
	defer ws.mutex.RUnlock()

	if !ws.isReady {
		return fmt.Errorf("хранилище не готово")
	}

	return ws.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(metaKey))
		if err == badger.ErrKeyNotFound {
			return nil // Сохранений ещё нет
		}
		if err != nil {
			return fmt.Errorf("чтение метаданных: %w", err)
		}

		var meta worldMeta
		if err := item.Value(func(val []byte) error {
			return json.Unmarshal(val, &meta)
		}); err != nil {
			return fmt.Errorf("разбор метаданных: %w", err)
		}
		if meta.Seed != w.Seed() {
			return fmt.Errorf("сид сохранения %q не совпадает с сидом мира %q", meta.Seed, w.Seed())
		}

		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(chunkKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			key := strings.TrimPrefix(string(item.Key()), chunkKeyPrefix)
			coords, err := world.ParseChunkKey(key)
			if err != nil {
				return err
			}

			var grid [][]string
			if err := item.Value(func(val []byte) error {
				grid, err = decompressGrid(val)
				return err
			}); err != nil {
				return fmt.Errorf("чтение чанка %v: %w", coords, err)
			}

			chunk := w.Store().Ensure(coords)
			if err := chunk.ApplyGrid(grid); err != nil {
				return err
			}
		}
		return nil
	})
}

// AutosaveLoop периодически сохраняет изменённые чанки до отмены
// контекста. Интервал выполняет роль дебаунса записей.
func (ws *WorldStorage) AutosaveLoop(ctx context.Context, w *world.World, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			// Финальное сохранение при остановке
			if n, err := ws.SaveModified(w); err != nil {
				ws.logger.Error("Финальное сохранение не удалось: %v", err)
			} else if n > 0 {
				ws.logger.Info("Финально сохранено %d чанков", n)
			}
			return
		case <-ticker.C:
			if _, err := ws.SaveModified(w); err != nil {
				ws.logger.Error("Автосохранение не удалось: %v", err)
			}
		}
	}
}

// compressGrid сериализует сетку тайлов в gzip-сжатый JSON
func compressGrid(grid [][]string) ([]byte, error) {
	raw, err := json.Marshal(grid)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(raw); err != nil {
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decompressGrid распаковывает сетку тайлов
func decompressGrid(data []byte) ([][]string, error) {
	zr, err := gzip.NewReader(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	raw, err := io.ReadAll(zr)
	if err != nil {
		return nil, err
	}

	var grid [][]string
	if err := json.Unmarshal(raw, &grid); err != nil {
		return nil, err
	}
	return grid, nil
}
