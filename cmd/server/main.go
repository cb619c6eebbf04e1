package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/annel0/blockverse/internal/api"
	"github.com/annel0/blockverse/internal/config"
	"github.com/annel0/blockverse/internal/eventbus"
	"github.com/annel0/blockverse/internal/game"
	"github.com/annel0/blockverse/internal/logging"
	"github.com/annel0/blockverse/internal/physics"
	"github.com/annel0/blockverse/internal/storage"
	"github.com/annel0/blockverse/internal/world"
)

func main() {
	// Инициализируем систему логирования
	if err := logging.InitDefaultLogger("server"); err != nil {
		log.Fatalf("❌ Ошибка инициализации логирования: %v", err)
	}
	defer logging.CloseDefaultLogger()

	logging.Info("🌍 Запуск Blockverse World Server...")

	// === КОНФИГУРАЦИЯ ===
	cfg, err := config.Load(os.Getenv("BLOCKVERSE_CONFIG"))
	if err != nil {
		log.Fatalf("❌ Ошибка чтения конфигурации: %v", err)
	}
	if cfg == nil {
		cfg = &config.Config{}
		logging.Info("Конфигурационный файл не задан, используются значения по умолчанию")
	}

	seed := cfg.World.GetSeed()
	restPort := cfg.Server.GetRESTPort()
	dataPath := cfg.Storage.GetDataPath()
	tickRate := cfg.Game.GetTickRate()
	miningEvery := time.Duration(cfg.Game.GetMiningPollMs()) * time.Millisecond
	autosaveEvery := time.Duration(cfg.Storage.GetAutosaveSeconds()) * time.Second

	logging.Info("📡 Конфигурация: seed=%s, tick=%d Гц, REST=:%d, данные=%s", seed, tickRate, restPort, dataPath)

	// === ИНИЦИАЛИЗАЦИЯ КОМПОНЕНТОВ ===

	// Шина событий: NATS при наличии URL, иначе внутренняя in-memory шина
	var bus eventbus.EventBus
	if cfg.EventBus.URL != "" {
		natsBus, err := eventbus.NewNatsBus(cfg.EventBus.URL, cfg.EventBus.Subject)
		if err != nil {
			logging.Warn("⚠️ NATS недоступен (%v), переключаемся на in-memory шину", err)
			bus = eventbus.NewMemoryBus(1024)
		} else {
			logging.Info("✅ Подключена шина событий NATS: %s", cfg.EventBus.URL)
			bus = natsBus
		}
	} else {
		bus = eventbus.NewMemoryBus(1024)
		logging.Debug("Используется in-memory шина событий")
	}
	defer bus.Close()

	// Мир
	w := world.NewWorld(seed)
	w.SetVisibleRange(cfg.World.GetVisibleRange())
	w.SetEventBus(bus)

	// Хранилище мира (BadgerDB)
	worldStorage, err := storage.NewWorldStorage(dataPath)
	if err != nil {
		logging.Error("❌ Ошибка открытия хранилища мира: %v", err)
		log.Fatalf("❌ Ошибка открытия хранилища мира: %v", err)
	}
	defer worldStorage.Close()

	if err := worldStorage.LoadInto(w); err != nil {
		logging.Error("❌ Ошибка загрузки мира: %v", err)
		log.Fatalf("❌ Ошибка загрузки мира: %v", err)
	}

	// Репозиторий позиций: Redis при наличии адреса, иначе память
	var posRepo storage.PositionRepo
	if cfg.Redis.Addr != "" {
		redisCfg := storage.DefaultRedisConfig()
		redisCfg.Addr = cfg.Redis.Addr
		redisCfg.Password = cfg.Redis.Password
		redisCfg.DB = cfg.Redis.DB
		redisRepo, err := storage.NewRedisPositionRepo(redisCfg)
		if err != nil {
			logging.Warn("⚠️ Redis недоступен (%v), позиции хранятся в памяти", err)
			posRepo = storage.NewMemoryPositionRepo()
		} else {
			logging.Info("✅ Позиции игроков сохраняются в Redis: %s", cfg.Redis.Addr)
			posRepo = redisRepo
			defer redisRepo.Close()
		}
	} else {
		posRepo = storage.NewMemoryPositionRepo()
	}

	// Параметры физики
	params := physics.DefaultParams()
	if cfg.Physics.Gravity > 0 {
		params.Gravity = cfg.Physics.Gravity
	}
	if cfg.Physics.MoveSpeed > 0 {
		params.MoveSpeed = cfg.Physics.MoveSpeed
	}
	if cfg.Physics.JumpImpulse < 0 {
		params.JumpImpulse = cfg.Physics.JumpImpulse
	}

	// Игровая сессия
	logging.Debug("Создание игровой сессии...")
	session := game.NewSession(w, params, tickRate, miningEvery)
	session.Miner().SetEventBus(bus)

	// Восстанавливаем позицию игрока, если она сохранялась
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if pos, found, err := posRepo.Load(ctx, "last"); err == nil && found {
		session.SetPlayerPos(pos)
		logging.Info("Позиция игрока восстановлена: (%.2f, %.2f)", pos.X, pos.Y)
	}

	session.Run(ctx)

	// Автосохранение изменённых чанков
	go worldStorage.AutosaveLoop(ctx, w, autosaveEvery)

	// REST API
	logging.Debug("Запуск REST API сервера...")
	restServer := api.NewRestServer(session, restPort)
	restServer.Start()

	logging.Info("✅ Сервер запущен")
	logging.Info("   🌐 REST API: http://localhost:%d", restPort)
	logging.Info("   ❤️  Health check: http://localhost:%d/health", restPort)
	logging.Info("   📊 Метрики: http://localhost:%d/metrics", restPort)

	// Ждём сигнала для завершения
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logging.Info("📡 Получен сигнал %v, завершение работы...", sig)

	// === GRACEFUL SHUTDOWN ===
	cancel()
	session.Stop()

	// Финальное сохранение чанков и позиции игрока
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if n, err := worldStorage.SaveModified(w); err != nil {
		logging.Error("❌ Ошибка финального сохранения: %v", err)
	} else {
		logging.Info("💾 Сохранено чанков: %d", n)
	}

	player := session.Player()
	if err := posRepo.Save(shutdownCtx, "last", player.Pos); err != nil {
		logging.Warn("⚠️ Не удалось сохранить позицию игрока (сессия %s): %v", session.ID, err)
	}

	if err := restServer.Stop(shutdownCtx); err != nil {
		logging.Error("❌ Ошибка остановки REST API: %v", err)
	}

	logging.Info("👋 Сервер успешно остановлен")
}
