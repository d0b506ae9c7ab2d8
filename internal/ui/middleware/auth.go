// Пакет middleware — HTTP middleware для UI консоли.
// auth.go — проверка сессии по зашифрованному cookie с токеном.
package middleware

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/bigkaa/goconsole/internal/state"
	"github.com/bigkaa/goconsole/internal/ui/auth"
)

// contextKey — тип для ключей контекста UI.
type contextKey string

const (
	// ContextKeyState — состояние сессии в контексте запроса.
	ContextKeyState contextKey = "session_state"
)

// UIAuth — middleware для проверки аутентификации UI-пользователей.
// Извлекает токен из зашифрованного cookie, восстанавливает состояние
// сессии из реестра, redirect на /admin/login при отсутствии или
// истечении токена.
type UIAuth struct {
	cookies  *auth.CookieManager
	registry *state.Registry
	logger   *slog.Logger
}

// NewUIAuth создаёт новый UIAuth middleware.
func NewUIAuth(cookies *auth.CookieManager, registry *state.Registry, logger *slog.Logger) *UIAuth {
	return &UIAuth{
		cookies:  cookies,
		registry: registry,
		logger:   logger.With(slog.String("component", "ui_auth_middleware")),
	}
}

// Middleware возвращает HTTP middleware для проверки UI-сессии.
// Применяется к маршрутам /admin/*, кроме страниц аутентификации.
func (ua *UIAuth) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// 1. Извлекаем токен из cookie
			tok, err := ua.cookies.TokenFromRequest(r)
			if err != nil {
				ua.logger.Debug("Ошибка чтения cookie сессии",
					slog.String("error", err.Error()),
					slog.String("remote_addr", r.RemoteAddr),
				)
				// Повреждённый cookie — очищаем и redirect на login
				ua.cookies.ClearTokenCookie(w)
				http.Redirect(w, r, "/admin/login", http.StatusFound)
				return
			}

			// 2. Если токена нет — redirect на login
			if tok == "" {
				http.Redirect(w, r, "/admin/login", http.StatusFound)
				return
			}

			// 3. Восстанавливаем состояние сессии из реестра.
			// Initialize отбраковывает истёкший или повреждённый токен.
			st, err := ua.registry.GetOrCreate(tok)
			if err != nil {
				ua.logger.Error("Ошибка восстановления состояния сессии",
					slog.String("error", err.Error()),
				)
				http.Error(w, "internal server error", http.StatusInternalServerError)
				return
			}
			if !st.Session.Authenticated() {
				ua.logger.Debug("Токен отбракован, redirect на login",
					slog.String("remote_addr", r.RemoteAddr),
				)
				ua.registry.Drop(tok)
				ua.cookies.ClearTokenCookie(w)
				http.Redirect(w, r, "/admin/login", http.StatusFound)
				return
			}

			// 4. Помещаем состояние в контекст
			ctx := context.WithValue(r.Context(), ContextKeyState, st)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// StateFromContext извлекает состояние сессии из контекста запроса.
// Возвращает nil если запрос не прошёл через UIAuth middleware.
func StateFromContext(ctx context.Context) *state.State {
	st, ok := ctx.Value(ContextKeyState).(*state.State)
	if !ok {
		return nil
	}
	return st
}
