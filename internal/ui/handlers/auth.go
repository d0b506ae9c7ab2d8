// auth.go — вход, регистрация, восстановление пароля, SSO и выход.
// Пароли пересылаются backend'у как есть; консоль хранит только токен
// (в зашифрованном cookie) и производное от него состояние сессии.
package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/bigkaa/goconsole/internal/gateway"
	"github.com/bigkaa/goconsole/internal/state"
	"github.com/bigkaa/goconsole/internal/ui/auth"
	"github.com/bigkaa/goconsole/internal/ui/i18n"
	uimiddleware "github.com/bigkaa/goconsole/internal/ui/middleware"
	"github.com/bigkaa/goconsole/internal/ui/pages"
)

// AuthHandler — обработчики аутентификации UI.
type AuthHandler struct {
	cookies  *auth.CookieManager
	registry *state.Registry
	logger   *slog.Logger
}

// NewAuthHandler создаёт новый AuthHandler.
func NewAuthHandler(cookies *auth.CookieManager, registry *state.Registry, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		cookies:  cookies,
		registry: registry,
		logger:   logger.With(slog.String("component", "ui_auth")),
	}
}

// HandleLoginPage — GET /admin/login: страница входа.
func (h *AuthHandler) HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, pages.Login(pages.LoginData{
		Alert:      flashFromQuery(r),
		SSOEnabled: true,
	}))
}

// HandleLogin — POST /admin/login: обмен логина/пароля на токен.
// Успех — токен в зашифрованный cookie и redirect на /admin;
// отказ backend'а — страница входа с его сообщением.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	password := r.PostFormValue("password")

	// Анонимное состояние — только ради Auth-клиента без bearer-заголовка
	anon, err := h.registry.GetOrCreate("")
	if err != nil {
		h.logger.Error("Ошибка создания анонимного состояния", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	tok, err := anon.Auth.Login(r.Context(), username, password)
	if err != nil {
		h.logger.Warn("Отказ входа",
			slog.String("username", username),
			slog.String("error", err.Error()),
		)
		render(w, r, h.logger, pages.Login(pages.LoginData{
			Username:   username,
			Alert:      &pages.Alert{Kind: "error", Message: loginErrorMessage(err)},
			SSOEnabled: true,
		}))
		return
	}

	h.establishSession(w, r, tok, false)
}

// HandleSSO — GET /admin/sso?token=...: вход по токену внешнего IdP.
// Токен проходит ту же проверку, что и токен после обычного входа, и
// дополнительно подтверждается backend'ом: claims разбираются без
// проверки подписи, а query-параметр доступен кому угодно — токен,
// который не принял backend, в реестре не удерживается.
func (h *AuthHandler) HandleSSO(w http.ResponseWriter, r *http.Request) {
	tok := r.URL.Query().Get("token")
	if tok == "" {
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}
	h.establishSession(w, r, tok, true)
}

// establishSession валидирует токен, создаёт состояние сессии и
// устанавливает cookie. Невалидный токен возвращает на страницу входа.
// confirm требует успешного запроса к backend'у с этим токеном до
// удержания состояния — для токенов, полученных не от самого backend'а.
func (h *AuthHandler) establishSession(w http.ResponseWriter, r *http.Request, tok string, confirm bool) {
	st, err := h.registry.GetOrCreate(tok)
	if err != nil {
		h.logger.Error("Ошибка создания состояния сессии", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}
	if !st.Session.Authenticated() {
		h.logger.Warn("Получен невалидный или истёкший токен")
		http.Redirect(w, r, "/admin/login", http.StatusFound)
		return
	}

	if confirm {
		user := st.Session.User()
		if _, err := st.Menu.Groups(r.Context(), user.RoleID); err != nil {
			h.registry.Drop(tok)
			h.logger.Warn("Токен не подтверждён backend'ом",
				slog.String("username", user.Username),
				slog.String("error", err.Error()),
			)
			http.Redirect(w, r, "/admin/login", http.StatusFound)
			return
		}
	}

	if err := h.cookies.SetTokenCookie(w, tok); err != nil {
		h.logger.Error("Ошибка установки cookie сессии", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	user := st.Session.User()
	h.logger.Info("Пользователь вошёл в консоль", slog.String("username", user.Username))
	http.Redirect(w, r, "/admin", http.StatusFound)
}

// HandleLogout — POST /admin/logout: завершение сессии.
// Сбрасывает состояние сессии (fan-out очищает все кэши), удаляет
// запись из реестра и cookie браузера.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	if st := uimiddleware.StateFromContext(r.Context()); st != nil {
		tok := st.Session.Token()
		st.Session.Logout()
		h.registry.Drop(tok)
	}
	h.cookies.ClearTokenCookie(w)
	http.Redirect(w, r, "/admin/login", http.StatusFound)
}

// HandleRegisterPage — GET /admin/register: страница регистрации.
func (h *AuthHandler) HandleRegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, pages.Register(pages.RegisterData{
		Alert: flashFromQuery(r),
	}))
}

// HandleRegister — POST /admin/register: регистрация нового пользователя.
// Успех — redirect на вход с сообщением backend'а.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}
	username := r.PostFormValue("username")
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	anon, err := h.registry.GetOrCreate("")
	if err != nil {
		h.logger.Error("Ошибка создания анонимного состояния", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	msg, err := anon.Auth.Register(r.Context(), username, email, password)
	if err != nil {
		render(w, r, h.logger, pages.Register(pages.RegisterData{
			Username: username,
			Email:    email,
			Alert:    &pages.Alert{Kind: "error", Message: loginErrorMessage(err)},
		}))
		return
	}

	redirectWithFlash(w, r, "/admin/login", "success", msg)
}

// HandleForgotPage — GET /admin/forgot-password: страница восстановления.
func (h *AuthHandler) HandleForgotPage(w http.ResponseWriter, r *http.Request) {
	render(w, r, h.logger, pages.Forgot(pages.ForgotData{
		Alert: flashFromQuery(r),
	}))
}

// HandleForgot — POST /admin/forgot-password: запрос сброса пароля.
// Пользователь всегда видит одно и то же сообщение — существование
// email не раскрывается. Ошибка backend'а логируется, но наружу не
// отдаётся по той же причине.
func (h *AuthHandler) HandleForgot(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Некорректная форма", http.StatusBadRequest)
		return
	}
	email := r.PostFormValue("email")

	anon, err := h.registry.GetOrCreate("")
	if err != nil {
		h.logger.Error("Ошибка создания анонимного состояния", slog.String("error", err.Error()))
		http.Error(w, "Внутренняя ошибка сервера", http.StatusInternalServerError)
		return
	}

	if err := anon.Auth.ForgotPassword(r.Context(), email); err != nil {
		h.logger.Warn("Ошибка запроса сброса пароля", slog.String("error", err.Error()))
	}

	render(w, r, h.logger, pages.Forgot(pages.ForgotData{
		Alert: &pages.Alert{Kind: "success", Message: i18n.T(r.Context(), "forgot.success")},
	}))
}

// loginErrorMessage возвращает сообщение backend'а или общий текст
// для транспортных ошибок.
func loginErrorMessage(err error) string {
	var gwErr *gateway.Error
	if errors.As(err, &gwErr) && gwErr.Message != "" {
		return gwErr.Message
	}
	return err.Error()
}
