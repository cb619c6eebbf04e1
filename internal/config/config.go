package config

import (
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config — корневая структура конфигурации приложения.

type Config struct {
	World    WorldConfig    `yaml:"world"`
	Game     GameConfig     `yaml:"game"`
	Physics  PhysicsConfig  `yaml:"physics"`
	Storage  StorageConfig  `yaml:"storage"`
	Server   ServerConfig   `yaml:"server"`
	EventBus EventBusConfig `yaml:"eventbus"`
	Redis    RedisConfig    `yaml:"redis"`
}

type WorldConfig struct {
	Seed         string `yaml:"seed"`
	VisibleRange int    `yaml:"visible_range"`
}

type GameConfig struct {
	TickRate     int `yaml:"tick_rate"`
	MiningPollMs int `yaml:"mining_poll_ms"`
}

type PhysicsConfig struct {
	Gravity     float64 `yaml:"gravity"`
	MoveSpeed   float64 `yaml:"move_speed"`
	JumpImpulse float64 `yaml:"jump_impulse"`
}

type StorageConfig struct {
	DataPath        string `yaml:"data_path"`
	AutosaveSeconds int    `yaml:"autosave_seconds"`
}

type ServerConfig struct {
	RESTPort int `yaml:"rest_port"`
}

type EventBusConfig struct {
	URL     string `yaml:"url"`     // Пустой URL — in-memory шина
	Subject string `yaml:"subject"` // Префикс subject'ов NATS
}

type RedisConfig struct {
	Addr     string `yaml:"addr"` // Пустой адрес — in-memory репозиторий позиций
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

// GetSeed возвращает сид мира с приоритетом: config -> env -> default
func (w *WorldConfig) GetSeed() string {
	if w.Seed != "" {
		return w.Seed
	}
	if env := os.Getenv("BLOCKVERSE_SEED"); env != "" {
		return env
	}
	return "42"
}

// GetVisibleRange возвращает радиус стриминга чанков
func (w *WorldConfig) GetVisibleRange() int {
	if w.VisibleRange > 0 {
		return w.VisibleRange
	}
	return 2
}

// GetTickRate возвращает частоту тиков
func (g *GameConfig) GetTickRate() int {
	if g.TickRate > 0 {
		return g.TickRate
	}
	return 60
}

// GetMiningPollMs возвращает интервал опроса добычи в миллисекундах
func (g *GameConfig) GetMiningPollMs() int {
	if g.MiningPollMs > 0 {
		return g.MiningPollMs
	}
	return 150
}

// GetDataPath возвращает директорию данных мира
func (s *StorageConfig) GetDataPath() string {
	if s.DataPath != "" {
		return s.DataPath
	}
	if env := os.Getenv("BLOCKVERSE_DATA"); env != "" {
		return env
	}
	return "data"
}

// GetAutosaveSeconds возвращает интервал автосохранения
func (s *StorageConfig) GetAutosaveSeconds() int {
	if s.AutosaveSeconds > 0 {
		return s.AutosaveSeconds
	}
	return 3
}

// GetRESTPort возвращает REST порт с поддержкой fallback значений
func (s *ServerConfig) GetRESTPort() int {
	return getPortWithEnvFallback(s.RESTPort, "BLOCKVERSE_REST_PORT", 8088)
}

// getPortWithEnvFallback возвращает порт с приоритетом: config -> env -> default
func getPortWithEnvFallback(configPort int, envVar string, defaultPort int) int {
	if configPort > 0 {
		return configPort
	}

	if envVal := os.Getenv(envVar); envVal != "" {
		if port, err := strconv.Atoi(envVal); err == nil && port > 0 {
			return port
		}
	}

	return defaultPort
}

// Load читает YAML файл конфигурации.
// Если path == "", пытается прочитать из ENV BLOCKVERSE_CONFIG или
// возвращает nil, nil (использовать дефолты).
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv("BLOCKVERSE_CONFIG")
		if path == "" {
			return nil, nil
		}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}
