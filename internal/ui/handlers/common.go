// Пакет handlers — HTTP-обработчики UI консоли.
// common.go — сборка каркаса страницы и flash-сообщения.
package handlers

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/a-h/templ"

	"github.com/bigkaa/goconsole/internal/middleware"
	"github.com/bigkaa/goconsole/internal/state"
	"github.com/bigkaa/goconsole/internal/ui/pages"
)

// areaRoutes — маппинг имён разделов серверного меню на маршруты UI.
// Разделы, которых консоль не знает, в навигации не отображаются.
var areaRoutes = map[string]string{
	"Data Access": "/admin/dataAccesses",
	"Roles":       "/admin/roles",
	"Job Titles":  "/admin/jobTitles",
}

// buildLayout собирает общие данные каркаса: имя пользователя и
// боковое меню из серверной конфигурации для роли.
// Ошибка загрузки меню не роняет страницу — навигация просто пустая.
func buildLayout(ctx context.Context, st *state.State, menuApplication, activePath string, logger *slog.Logger) pages.LayoutData {
	data := pages.LayoutData{
		ActivePath: activePath,
	}
	user := st.Session.User()
	if user == nil {
		return data
	}
	data.Username = user.Username

	areas, err := st.Menu.AreasFor(ctx, user.RoleID, menuApplication)
	if err != nil {
		logger.Warn("Ошибка загрузки конфигурации меню",
			slog.String("error", err.Error()),
			slog.String("request_id", middleware.RequestID(ctx)),
		)
		return data
	}
	for _, area := range areas {
		href, ok := areaRoutes[area]
		if !ok {
			continue
		}
		data.Nav = append(data.Nav, pages.NavItem{Label: area, Href: href})
	}
	return data
}

// flashFromQuery восстанавливает flash-сообщение из query-параметров
// после redirect (msg + kind).
func flashFromQuery(r *http.Request) *pages.Alert {
	msg := r.URL.Query().Get("msg")
	if msg == "" {
		return nil
	}
	kind := r.URL.Query().Get("kind")
	if kind != "error" {
		kind = "success"
	}
	return &pages.Alert{Kind: kind, Message: msg}
}

// redirectWithFlash делает redirect с flash-сообщением в query-параметрах.
func redirectWithFlash(w http.ResponseWriter, r *http.Request, path, kind, msg string) {
	q := url.Values{}
	q.Set("msg", msg)
	q.Set("kind", kind)
	http.Redirect(w, r, path+"?"+q.Encode(), http.StatusSeeOther)
}

// render рендерит страницу и логирует ошибку рендеринга.
func render(w http.ResponseWriter, r *http.Request, logger *slog.Logger, page templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Render(r.Context(), w); err != nil {
		logger.Error("Ошибка рендеринга страницы",
			slog.String("error", err.Error()),
			slog.String("path", r.URL.Path),
			slog.String("request_id", middleware.RequestID(r.Context())),
		)
		http.Error(w, "Ошибка рендеринга страницы", http.StatusInternalServerError)
	}
}
