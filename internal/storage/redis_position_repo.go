package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"github.com/annel0/blockverse/internal/vec"
)

// RedisPositionRepo хранит позиции игроков в Redis. Применяется, когда
// несколько процессов должны видеть одну и ту же позицию игрока
// (например, внешний синхронизатор).
type RedisPositionRepo struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// RedisConfig содержит настройки подключения к Redis
type RedisConfig struct {
	Addr      string        // Адрес Redis сервера
	Password  string        // Пароль (пустой если не требуется)
	DB        int           // Номер базы данных
	KeyPrefix string        // Префикс для ключей
	TTL       time.Duration // Время жизни записей (0 — без истечения)
}

// DefaultRedisConfig возвращает конфигурацию по умолчанию
func DefaultRedisConfig() *RedisConfig {
	return &RedisConfig{
		Addr:      "localhost:6379",
		Password:  "",
		DB:        0,
		KeyPrefix: "blockverse:pos:",
	}
}

// savedPosition — сериализуемая позиция игрока
type savedPosition struct {
	Position  vec.Vec2Float `json:"position"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// NewRedisPositionRepo создаёт репозиторий и проверяет подключение
func NewRedisPositionRepo(config *RedisConfig) (*RedisPositionRepo, error) {
	if config == nil {
		config = DefaultRedisConfig()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisPositionRepo{
		client:    client,
		keyPrefix: config.KeyPrefix,
		ttl:       config.TTL,
	}, nil
}

// Save сохраняет позицию игрока
func (r *RedisPositionRepo) Save(ctx context.Context, playerID string, pos vec.Vec2Float) error {
	data, err := json.Marshal(savedPosition{Position: pos, UpdatedAt: time.Now().UTC()})
	if err != nil {
		return fmt.Errorf("сериализация позиции: %w", err)
	}

	if err := r.client.Set(ctx, r.keyPrefix+playerID, data, r.ttl).Err(); err != nil {
		return fmt.Errorf("запись позиции в Redis: %w", err)
	}
	return nil
}

// Load загружает позицию игрока
func (r *RedisPositionRepo) Load(ctx context.Context, playerID string) (vec.Vec2Float, bool, error) {
	data, err := r.client.Get(ctx, r.keyPrefix+playerID).Bytes()
	if err == redis.Nil {
		return vec.Vec2Float{}, false, nil
	}
	if err != nil {
		return vec.Vec2Float{}, false, fmt.Errorf("чтение позиции из Redis: %w", err)
	}

	var saved savedPosition
	if err := json.Unmarshal(data, &saved); err != nil {
		return vec.Vec2Float{}, false, fmt.Errorf("разбор позиции: %w", err)
	}
	return saved.Position, true, nil
}

// Delete удаляет позицию игрока
func (r *RedisPositionRepo) Delete(ctx context.Context, playerID string) error {
	return r.client.Del(ctx, r.keyPrefix+playerID).Err()
}

// Close закрывает подключение к Redis
func (r *RedisPositionRepo) Close() error {
	return r.client.Close()
}
