// Пакет server — HTTP-сервер Console Module с graceful shutdown.
// Без TLS — HTTP внутри кластера, TLS termination на ingress.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/bigkaa/goconsole/internal/config"
	"github.com/bigkaa/goconsole/internal/middleware"
	"github.com/bigkaa/goconsole/internal/state"
	"github.com/bigkaa/goconsole/internal/ui/auth"
	"github.com/bigkaa/goconsole/internal/ui/handlers"
	"github.com/bigkaa/goconsole/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/goconsole/internal/ui/middleware"
	"github.com/bigkaa/goconsole/internal/ui/static"
)

// Deps — зависимости HTTP-сервера, собранные в main.
type Deps struct {
	Cookies    *auth.CookieManager
	Registry   *state.Registry
	APIChecker handlers.ReadinessChecker
}

// Server — HTTP-сервер Console Module.
type Server struct {
	httpServer *http.Server
	logger     *slog.Logger
	cfg        *config.Config
}

// New создаёт новый HTTP-сервер с настроенными routes и middleware.
func New(cfg *config.Config, deps Deps, logger *slog.Logger) *Server {
	router := chi.NewRouter()

	// Глобальные middleware (применяются ко ВСЕМ маршрутам)
	router.Use(middleware.MetricsMiddleware())
	router.Use(middleware.RequestLogger(logger))
	router.Use(i18n.Middleware())

	// Health и metrics — без аутентификации, проверяются Kubernetes напрямую
	healthHandler := handlers.NewHealthHandler(deps.APIChecker)
	router.Get("/health/live", healthHandler.HealthLive)
	router.Get("/health/ready", healthHandler.HealthReady)
	router.Get("/metrics", healthHandler.GetMetrics)

	// Статические ресурсы
	router.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(static.FileSystem())))

	authHandler := handlers.NewAuthHandler(deps.Cookies, deps.Registry, logger)

	// Страницы аутентификации — без проверки сессии
	router.Group(func(r chi.Router) {
		r.Get("/admin/login", authHandler.HandleLoginPage)
		r.Post("/admin/login", authHandler.HandleLogin)
		r.Get("/admin/register", authHandler.HandleRegisterPage)
		r.Post("/admin/register", authHandler.HandleRegister)
		r.Get("/admin/forgot-password", authHandler.HandleForgotPage)
		r.Post("/admin/forgot-password", authHandler.HandleForgot)
		r.Get("/admin/sso", authHandler.HandleSSO)
	})

	// Защищённые маршруты консоли
	uiAuth := uimiddleware.NewUIAuth(deps.Cookies, deps.Registry, logger)
	dashboardHandler := handlers.NewDashboardHandler(cfg.MenuApplication, logger)
	dataAccessHandler := handlers.NewDataAccessHandler(cfg.MenuApplication, logger)
	roleHandler := handlers.NewRoleHandler(cfg.MenuApplication, logger)
	jobTitleHandler := handlers.NewJobTitleHandler(cfg.MenuApplication, logger)

	router.Group(func(r chi.Router) {
		r.Use(uiAuth.Middleware())

		r.Get("/admin", dashboardHandler.HandleDashboard)
		r.Post("/admin/logout", authHandler.HandleLogout)
		r.Route("/admin/dataAccesses", dataAccessHandler.Register)
		r.Route("/admin/roles", roleHandler.Register)
		r.Route("/admin/jobTitles", jobTitleHandler.Register)
	})

	// Корень — на консоль
	router.Get("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/admin", http.StatusFound)
	})

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: srv,
		logger:     logger,
		cfg:        cfg,
	}
}

// Handler возвращает корневой http.Handler (для тестов).
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run запускает сервер и ожидает сигнала завершения (SIGINT, SIGTERM).
// При получении сигнала выполняется graceful shutdown.
func (s *Server) Run() error {
	// Канал для ошибок сервера
	errCh := make(chan error, 1)

	go func() {
		s.logger.Info("HTTP-сервер запущен",
			slog.String("addr", s.httpServer.Addr),
		)

		err := s.httpServer.ListenAndServe()
		if err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
		close(errCh)
	}()

	// Ожидание сигнала завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		s.logger.Info("Получен сигнал завершения", slog.String("signal", sig.String()))
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("ошибка HTTP-сервера: %w", err)
		}
	}

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	s.logger.Info("Выполняется graceful shutdown...")
	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("ошибка при graceful shutdown: %w", err)
	}

	s.logger.Info("HTTP-сервер остановлен")
	return nil
}
