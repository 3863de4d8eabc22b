// Package main - точка входа движка courseit.
//
// Движок ведёт всё клиентское состояние обучения: каталог треков, прогресс по
// чекпоинтам, монеты, серии дней и достижения, поверх единого key-value
// хранилища. Поверх движка поднимается небольшой REST API.
//
// Архитектура следует принципам Clean Architecture и DDD:
// - Domain: чистая бизнес-логика состояния обучения
// - Application: use cases (Commands/Queries/Sagas)
// - Infrastructure: хранилища, внешний courseit API, шина событий
// - Interface: REST API
//
// Режимы запуска:
//
//	courseit serve     запустить REST API (по умолчанию)
//	courseit dump      вывести сырое содержимое хранилища
//	courseit profile   вывести профиль (статистика + достижения)
//	courseit clear     сбросить прогресс, монеты и пользовательские треки
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/courseit/courseit-core/config"
	"github.com/courseit/courseit-core/internal/application/command"
	"github.com/courseit/courseit-core/internal/application/eventhandler"
	"github.com/courseit/courseit-core/internal/application/query"
	"github.com/courseit/courseit-core/internal/application/saga"
	"github.com/courseit/courseit-core/internal/domain/achievement"
	"github.com/courseit/courseit-core/internal/domain/progress"
	"github.com/courseit/courseit-core/internal/domain/shared"
	"github.com/courseit/courseit-core/internal/domain/stats"
	"github.com/courseit/courseit-core/internal/domain/streak"
	"github.com/courseit/courseit-core/internal/domain/track"
	"github.com/courseit/courseit-core/internal/infrastructure/external/courseit"
	"github.com/courseit/courseit-core/internal/infrastructure/messaging"
	"github.com/courseit/courseit-core/internal/infrastructure/persistence/memory"
	"github.com/courseit/courseit-core/internal/infrastructure/persistence/postgres"
	redisstore "github.com/courseit/courseit-core/internal/infrastructure/persistence/redis"
	httpapi "github.com/courseit/courseit-core/internal/interface/http"
	"github.com/courseit/courseit-core/pkg/logger"
)

func main() {
	mode := "serve"
	if len(os.Args) > 1 {
		mode = os.Args[1]
	}

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, mode); err != nil {
		fmt.Fprintf(os.Stderr, "fatal error: %v\n", err)
		os.Exit(1)
	}
}

// engine объединяет все собранные компоненты движка.
type engine struct {
	catalog      *track.Catalog
	ledger       *progress.Ledger
	wallet       *progress.Wallet
	streaks      *streak.Engine
	achievements *achievement.Engine
	aggregator   *stats.Aggregator
	bus          *messaging.InMemoryEventBus
	client       *courseit.Client

	cleanup func()
}

func run(ctx context.Context, mode string) error {
	// ─────────────────────────────────────────────────────────────────────────
	// 1. КОНФИГУРАЦИЯ И ЛОГИРОВАНИЕ
	// ─────────────────────────────────────────────────────────────────────────
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	log := setupLogger(cfg)
	log.Info("starting courseit engine",
		"mode", mode,
		"env", cfg.App.Environment,
		"storage", cfg.Storage.Backend,
	)

	// ─────────────────────────────────────────────────────────────────────────
	// 2. ХРАНИЛИЩЕ
	// ─────────────────────────────────────────────────────────────────────────
	store, closeStore, err := buildStore(ctx, cfg, log)
	if err != nil {
		return fmt.Errorf("failed to init storage: %w", err)
	}
	defer closeStore()

	// ─────────────────────────────────────────────────────────────────────────
	// 3. ДВИЖОК
	// ─────────────────────────────────────────────────────────────────────────
	eng := buildEngine(cfg, store, log)
	defer eng.cleanup()

	switch mode {
	case "serve":
		return runServe(ctx, cfg, eng, log)
	case "dump":
		return runDump(ctx, cfg, eng)
	case "profile":
		return runProfile(ctx, eng, log)
	case "clear":
		return runClear(ctx, eng, log)
	default:
		return fmt.Errorf("unknown mode %q (expected serve, dump, profile or clear)", mode)
	}
}

// buildStore выбирает реализацию KeyValueStore по конфигурации.
func buildStore(ctx context.Context, cfg *config.Config, log *slog.Logger) (shared.KeyValueStore, func(), error) {
	switch cfg.Storage.Backend {
	case config.StorageRedis:
		store, err := redisstore.NewStore(redisstore.Config{
			Host:         cfg.Redis.Host,
			Port:         cfg.Redis.Port,
			Password:     cfg.Redis.Password,
			DB:           cfg.Redis.DB,
			PoolSize:     cfg.Redis.PoolSize,
			MinIdleConns: cfg.Redis.MinIdleConns,
			DialTimeout:  cfg.Redis.DialTimeout,
			ReadTimeout:  cfg.Redis.ReadTimeout,
			WriteTimeout: cfg.Redis.WriteTimeout,
		})
		if err != nil {
			return nil, nil, err
		}
		log.Info("redis storage ready", "host", cfg.Redis.Host, "port", cfg.Redis.Port)
		return store, func() { _ = store.Close() }, nil

	case config.StoragePostgres:
		conn, err := postgres.NewConnectionFromURL(ctx, cfg.Database.URL)
		if err != nil {
			return nil, nil, err
		}
		if err := conn.Migrate(ctx); err != nil {
			conn.Close()
			return nil, nil, err
		}
		log.Info("postgres storage ready")
		return postgres.NewStore(conn), conn.Close, nil

	default:
		log.Info("using in-memory storage, state will not survive restarts")
		return memory.NewStore(), func() {}, nil
	}
}

// buildEngine собирает доменные движки, API-клиент и шину событий.
func buildEngine(cfg *config.Config, store shared.KeyValueStore, log *slog.Logger) *engine {
	eng := &engine{
		catalog:      track.NewCatalog(store, log),
		ledger:       progress.NewLedger(store, log),
		wallet:       progress.NewWallet(store, log),
		streaks:      streak.NewEngine(store, log),
		achievements: achievement.NewEngine(store, log),
	}
	eng.aggregator = stats.NewAggregator(eng.ledger, eng.wallet, eng.streaks, eng.catalog)

	clientCfg := courseit.DefaultClientConfig(cfg.Courseit.BaseURL)
	clientCfg.Timeout = cfg.Courseit.RequestTimeout
	clientCfg.Logger = log
	clientCfg.Debug = cfg.App.Debug
	eng.client = courseit.NewClient(clientCfg)

	eng.bus = messaging.NewInMemoryEventBus(messaging.Config{Logger: log})

	// Достижения пересчитываются на каждое значимое событие.
	evaluator := eventhandler.NewAchievementEvaluator(eng.aggregator, eng.achievements, eng.bus, log)
	if err := evaluator.Register(eng.bus); err != nil {
		log.Error("failed to register achievement evaluator", "error", err)
	}

	eng.cleanup = func() { _ = eng.bus.Close() }
	return eng
}

// runServe поднимает REST API до сигнала остановки.
func runServe(ctx context.Context, cfg *config.Config, eng *engine, log *slog.Logger) error {
	handlers := httpapi.Handlers{
		Tracks:  query.NewGetTracksHandler(eng.catalog, eng.ledger),
		Profile: query.NewGetProfileHandler(eng.aggregator, eng.achievements, log),
		CompleteStage: command.NewCompleteStageHandler(
			eng.catalog, eng.ledger, eng.wallet, eng.streaks, eng.client, eng.bus,
			command.CompleteStageHandlerConfig{
				PassingScore: cfg.Learning.PassingScore,
				Logger:       log,
			},
		),
		ClearData: command.NewClearDataHandler(eng.catalog, eng.ledger, eng.wallet, eng.bus, log),
		TrackCreation: saga.NewTrackCreationSaga(
			eng.catalog, eng.wallet, eng.client, eng.bus,
			saga.TrackCreationSagaConfig{
				Cost:   cfg.Learning.TrackCreationCost,
				Logger: log,
			},
		),
	}

	serverCfg := httpapi.DefaultConfig()
	serverCfg.Logger = log
	serverCfg.ShutdownTimeout = cfg.App.ShutdownTimeout
	return httpapi.NewServer(serverCfg, handlers).Start(ctx)
}

// runDump выводит сырое содержимое хранилища для отладки.
func runDump(ctx context.Context, cfg *config.Config, eng *engine) error {
	console := logger.New(logger.Options{Output: os.Stdout, Level: logger.LevelDebug, AddCaller: false})

	envelope, err := eng.ledger.RawEnvelope(ctx)
	if err != nil {
		return fmt.Errorf("dump: %w", err)
	}
	console.Info("progress envelope", logger.Any("envelope", envelope))

	console.Info("coin balance", logger.CoinAmount(eng.wallet.Balance(ctx)))
	console.Info("current streak", logger.StreakDays(eng.streaks.CurrentStreak(ctx)))
	console.Info("earned achievements", logger.Any("ids", eng.achievements.Earned(ctx)))
	console.Info("user tracks", logger.Int("count", eng.catalog.UserTrackCount(ctx)))
	console.Info("track creation cost", logger.CoinAmount(cfg.Learning.TrackCreationCost))
	return nil
}

// runProfile выводит профиль в JSON.
func runProfile(ctx context.Context, eng *engine, log *slog.Logger) error {
	handler := query.NewGetProfileHandler(eng.aggregator, eng.achievements, log)
	profile, err := handler.Handle(ctx)
	if err != nil {
		return fmt.Errorf("profile: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(profile)
}

// runClear сбрасывает обучаемое состояние (серия и достижения сохраняются).
func runClear(ctx context.Context, eng *engine, log *slog.Logger) error {
	handler := command.NewClearDataHandler(eng.catalog, eng.ledger, eng.wallet, eng.bus, log)
	result, err := handler.Handle(ctx, command.ClearDataCommand{})
	if err != nil {
		return fmt.Errorf("clear: %w", err)
	}
	log.Info("cleared", "removed_keys", result.RemovedKeys)
	return nil
}

// setupLogger настраивает структурированное логирование.
func setupLogger(cfg *config.Config) *slog.Logger {
	opts := &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}
	if cfg.App.Debug {
		opts.Level = slog.LevelDebug
	}

	var handler slog.Handler
	if cfg.Observability.LogFormat == "json" && cfg.IsProduction() {
		handler = slog.NewJSONHandler(os.Stdout, opts)
	} else {
		handler = slog.NewTextHandler(os.Stdout, opts)
	}

	log := slog.New(handler)
	slog.SetDefault(log)
	return log
}
