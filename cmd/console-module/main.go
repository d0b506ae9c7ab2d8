// Точка входа Console Module — web-консоль администрирования.
// Загружает конфигурацию, создаёт фабрику состояний сессий и реестр,
// инициализирует i18n и шифрование cookie, запускает topologymetrics
// и HTTP-сервер с graceful shutdown.
package main

import (
	"context"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/bigkaa/goconsole/internal/config"
	"github.com/bigkaa/goconsole/internal/gateway"
	"github.com/bigkaa/goconsole/internal/server"
	"github.com/bigkaa/goconsole/internal/service"
	"github.com/bigkaa/goconsole/internal/state"
	"github.com/bigkaa/goconsole/internal/ui/auth"
	"github.com/bigkaa/goconsole/internal/ui/handlers"
	"github.com/bigkaa/goconsole/internal/ui/i18n"
)

func main() {
	// 1. Загрузка конфигурации из переменных окружения
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Ошибка загрузки конфигурации", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 2. Настройка логирования
	logger := config.SetupLogger(cfg)
	logger.Info("Console Module запускается",
		slog.String("version", config.Version),
		slog.Int("port", cfg.Port),
		slog.String("api_url", cfg.APIURL),
	)

	if os.Getenv("CM_DEPHEALTH_GROUP") == "" {
		logger.Warn("CM_DEPHEALTH_GROUP не задана, используется значение по умолчанию",
			slog.String("default", cfg.DephealthGroup),
		)
	}

	// 3. i18n — загрузка каталогов переводов
	bundle := i18n.Init(logger)
	if err := bundle.LoadFromEmbedFS(); err != nil {
		logger.Error("Ошибка загрузки каталогов i18n", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 4. Шифрование cookie сессии (AES-256-GCM).
	// Secure flag — если API доступен по https, консоль тоже за TLS.
	secureCookie := strings.HasPrefix(cfg.APIURL, "https")
	cookies, err := auth.NewCookieManager(cfg.SessionSecret, cfg.SessionTTL, secureCookie)
	if err != nil {
		logger.Error("Ошибка создания менеджера cookie", slog.String("error", err.Error()))
		os.Exit(1)
	}

	// 5. Фабрика состояний сессий и реестр с фоновой очисткой
	factory := state.NewFactory(cfg.APIURL, cfg.APICACertPath, logger)
	registry := state.NewRegistry(factory, logger)
	registry.StartSweeper(state.DefaultSweepInterval)
	defer registry.StopSweeper()

	// 6. Readiness checker — Ping Control Plane API
	pingClient, err := gateway.New(cfg.APIURL, cfg.APICACertPath, func() string { return "" }, logger)
	if err != nil {
		logger.Error("Ошибка создания клиента Control Plane API", slog.String("error", err.Error()))
		os.Exit(1)
	}
	apiChecker := handlers.NewAPIChecker(func(timeout time.Duration) error {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		return pingClient.Ping(ctx)
	})

	// 7. topologymetrics — мониторинг зависимостей (Control Plane API)
	ctx := context.Background()
	dephealthSvc, dephealthErr := service.NewDephealthService(
		"console-module",
		cfg.DephealthGroup,
		cfg.APIURL,
		cfg.DephealthCheckInterval,
		cfg.DephealthIsEntry,
		logger,
	)
	if dephealthErr != nil {
		logger.Warn("topologymetrics недоступен, запуск без мониторинга зависимостей",
			slog.String("error", dephealthErr.Error()),
		)
	} else {
		if startErr := dephealthSvc.Start(ctx); startErr != nil {
			logger.Warn("Ошибка запуска topologymetrics",
				slog.String("error", startErr.Error()),
			)
		} else {
			logger.Info("topologymetrics запущен",
				slog.String("group", cfg.DephealthGroup),
				slog.String("check_interval", cfg.DephealthCheckInterval.String()),
			)
			defer dephealthSvc.Stop()
		}
	}

	// 8. HTTP-сервер с graceful shutdown
	srv := server.New(cfg, server.Deps{
		Cookies:    cookies,
		Registry:   registry,
		APIChecker: apiChecker,
	}, logger)

	if err := srv.Run(); err != nil {
		logger.Error("Ошибка HTTP-сервера", slog.String("error", err.Error()))
		os.Exit(1)
	}
}
